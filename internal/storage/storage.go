// Package storage mengabstraksi penyimpanan objek ilustrasi. Implementasi
// produksinya adalah Supabase Storage; handler hanya bergantung pada
// interface ini sehingga bisa diberi test double.
package storage

import (
	"context"
	"fmt"
	"path"
	"time"
)

type Storage interface {
	// Upload menyimpan objek dengan nama yang diberikan. Satu kali coba,
	// tanpa retry; kegagalan langsung dikembalikan ke caller.
	Upload(ctx context.Context, filename string, data []byte, contentType string) error
	// Remove menghapus objek. Untuk pembersihan ilustrasi lama sifatnya
	// best-effort: caller mencatat kegagalan tanpa menggagalkan operasi.
	Remove(ctx context.Context, filename string) error
	// PublicURL mengembalikan URL publik objek.
	PublicURL(filename string) string
}

// ObjectKey membentuk nama objek dari nama file asli. Kunci diturunkan dari
// timestamp, jadi unggahan ganda menghasilkan objek duplikat, bukan konflik.
func ObjectKey(originalFilename string) string {
	return fmt.Sprintf("aspirasi-%d%s", time.Now().UnixMilli(), path.Ext(originalFilename))
}
