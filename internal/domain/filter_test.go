package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListFilter(t *testing.T) {
	t.Run("Should return FilterAll when param is empty", func(t *testing.T) {
		filter, err := ParseListFilter("")
		require.NoError(t, err)
		assert.Equal(t, FilterAll, filter.Kind)
	})
	t.Run("Should parse a comma pair as an inclusive range", func(t *testing.T) {
		filter, err := ParseListFilter("2,4")
		require.NoError(t, err)
		assert.Equal(t, FilterRange, filter.Kind)
		assert.Equal(t, 2, filter.Start)
		assert.Equal(t, 4, filter.End)
		assert.Equal(t, 3, filter.Limit())
		assert.Equal(t, 1, filter.Offset())
	})
	t.Run("Should reject a range starting at zero", func(t *testing.T) {
		_, err := ParseListFilter("0,5")
		require.Error(t, err)
	})
	t.Run("Should reject a range whose end precedes its start", func(t *testing.T) {
		_, err := ParseListFilter("5,2")
		require.Error(t, err)
	})
	t.Run("Should accept a single-row range", func(t *testing.T) {
		filter, err := ParseListFilter("3,3")
		require.NoError(t, err)
		assert.Equal(t, FilterRange, filter.Kind)
		assert.Equal(t, 1, filter.Limit())
		assert.Equal(t, 2, filter.Offset())
	})
	t.Run("Should treat anything else as a keyword", func(t *testing.T) {
		for _, param := range []string{"fasilitas", "1,2,3", "12x", ",", "2, 4"} {
			filter, err := ParseListFilter(param)
			require.NoError(t, err, param)
			assert.Equal(t, FilterKeyword, filter.Kind, param)
			assert.Equal(t, param, filter.Keyword, param)
		}
	})
	t.Run("Should treat a numeric-only param as a keyword", func(t *testing.T) {
		filter, err := ParseListFilter("42")
		require.NoError(t, err)
		assert.Equal(t, FilterKeyword, filter.Kind)
	})
}
