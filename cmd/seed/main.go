package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/himarplupi/api-aspirasi-himarpl/internal/config"
	"github.com/himarplupi/api-aspirasi-himarpl/internal/repository"
	"github.com/himarplupi/api-aspirasi-himarpl/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var password string
	var emailDomain string

	flag.IntVar(&op, "op", 0, "operasi yang dijalankan (1: sisipkan user acak, 2: sisipkan aspirasi contoh)")
	flag.IntVar(&n, "n", 5, "jumlah record yang disisipkan")
	flag.StringVar(&password, "password", "aspirasi@test", "password untuk user acak")
	flag.StringVar(&emailDomain, "email-domain", "upi.edu", "domain email untuk user acak")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// membaca konfigurasi
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("tidak dapat membaca konfigurasi", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// membuat pool koneksi database
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("tidak dapat membuat pool koneksi database", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open hanya membuat objek pool, perlu ping eksplisit
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("tidak dapat terhubung ke database", "error", err)
		return
	}

	// membuat repository
	repo := repository.NewRepository(cfg, dbpool)

	// menjalankan operasi
	switch op {
	case 0:
		slog.Error("operasi belum ditentukan")
	case 1:
		if n <= 0 {
			slog.Error("jumlah user tidak valid")
		} else {
			cnt := seed.InsertRandomUsers(repo, n, password, emailDomain)
			slog.Info("berhasil menyisipkan user", slog.Int("count", cnt))
		}
	case 2:
		if n <= 0 {
			slog.Error("jumlah aspirasi tidak valid")
		} else {
			cnt := seed.InsertSampleAspirasi(repo, n)
			slog.Info("berhasil menyisipkan aspirasi", slog.Int("count", cnt))
		}
	default:
		slog.Error("operasi tidak dikenali")
	}
}
