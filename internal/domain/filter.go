package domain

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

type ListFilterKind int

const (
	FilterAll ListFilterKind = iota
	FilterRange
	FilterKeyword
)

// ListFilter menentukan bentuk query daftar: tanpa filter, rentang paginasi
// "start,end" (1-based, end inklusif), atau kata kunci pencarian. Bentuknya
// ditentukan sekali di boundary lewat ParseListFilter, bukan disniff berulang
// di lapisan bawah.
type ListFilter struct {
	Kind    ListFilterKind
	Start   int
	End     int
	Keyword string
}

var rangePattern = regexp.MustCompile(`^\d+,\d+$`)

func ParseListFilter(param string) (ListFilter, error) {
	if param == "" {
		return ListFilter{Kind: FilterAll}, nil
	}

	if rangePattern.MatchString(param) {
		parts := strings.SplitN(param, ",", 2)
		start, _ := strconv.Atoi(parts[0])
		end, _ := strconv.Atoi(parts[1])
		if start < 1 || end < start {
			return ListFilter{}, errors.New("parameter rentang tidak valid")
		}
		return ListFilter{Kind: FilterRange, Start: start, End: end}, nil
	}

	return ListFilter{Kind: FilterKeyword, Keyword: param}, nil
}

// Limit mengembalikan jumlah baris untuk rentang paginasi.
func (f ListFilter) Limit() int {
	return f.End - f.Start + 1
}

// Offset mengembalikan offset 0-based untuk rentang paginasi.
func (f ListFilter) Offset() int {
	return f.Start - 1
}
