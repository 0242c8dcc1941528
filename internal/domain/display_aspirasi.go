package domain

import (
	"time"
)

type DisplayStatus string

const (
	StatusDisplayed DisplayStatus = "displayed"
	StatusHidden    DisplayStatus = "hidden"
)

// DisplayAspirasi adalah aspirasi hasil kurasi admin untuk ditampilkan ke
// publik. Teksnya disalin dari Aspirasi saat dibuat dan setelah itu bisa
// diubah sendiri. Ilustrasi berisi nama objek di bucket penyimpanan, atau
// nil jika tidak ada ilustrasi.
type DisplayAspirasi struct {
	ID          int64         `json:"id_dispirasi"`
	Aspirasi    string        `json:"aspirasi"`
	Penulis     string        `json:"penulis"`
	Ilustrasi   *string       `json:"ilustrasi"`
	Kategori    Kategori      `json:"kategori"`
	AddedBy     string        `json:"added_by"`
	LastUpdated time.Time     `json:"last_updated"`
	Status      DisplayStatus `json:"status"`
}
