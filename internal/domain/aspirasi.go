package domain

import (
	"time"
)

type Kategori string

const (
	KategoriProdi Kategori = "prodi"
	KategoriHima  Kategori = "hima"
)

// Aspirasi adalah masukan mentah dari mahasiswa. Setelah dibuat, isinya tidak
// pernah diubah; hanya bisa dihapus atau disalin menjadi DisplayAspirasi.
type Aspirasi struct {
	ID        int64     `json:"id_aspirasi"`
	Aspirasi  string    `json:"aspirasi"`
	Penulis   *string   `json:"penulis"`
	Kategori  *Kategori `json:"kategori"`
	CreatedAt time.Time `json:"c_date"`
}
