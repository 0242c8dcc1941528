package seed

import (
	"log/slog"

	"github.com/himarplupi/api-aspirasi-himarpl/internal/repository"
	"github.com/himarplupi/api-aspirasi-himarpl/internal/utils"
)

// InsertRandomUsers menyisipkan n user admin acak dengan password yang sama.
// Mengembalikan jumlah user yang berhasil disisipkan.
func InsertRandomUsers(repo *repository.Repository, n int, password string, emailDomainName string) int {
	cnt := 0
	for i := 0; i < n; i++ {
		user, err := utils.GenerateRandomUser(password, emailDomainName)
		if err != nil {
			slog.Error("gagal membuat user acak", slog.String("error", err.Error()))
			continue
		}

		if err := repo.CreateUser(user); err != nil {
			slog.Error("gagal menyisipkan user", slog.String("error", err.Error()))
			continue
		}

		cnt++
	}

	return cnt
}

// InsertSampleAspirasi menyisipkan n aspirasi contoh.
func InsertSampleAspirasi(repo *repository.Repository, n int) int {
	cnt := 0
	for i := 0; i < n; i++ {
		a := utils.GenerateRandomAspirasi()
		if err := repo.InsertAspirasi(a); err != nil {
			slog.Error("gagal menyisipkan aspirasi", slog.String("error", err.Error()))
			continue
		}

		cnt++
	}

	return cnt
}
