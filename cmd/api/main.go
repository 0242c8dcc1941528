package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/himarplupi/api-aspirasi-himarpl/internal/config"
	"github.com/himarplupi/api-aspirasi-himarpl/internal/handler"
	"github.com/himarplupi/api-aspirasi-himarpl/internal/repository"
	"github.com/himarplupi/api-aspirasi-himarpl/internal/storage"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	/**********************************************
	 * Membuat logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * Memuat konfigurasi
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("tidak dapat memuat konfigurasi", "error", err)
		return
	}

	/**********************************************
	 * Menghubungkan ke database
	 **********************************************/
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

	// sql.Open hanya membuat objek pool, belum benar-benar terhubung ke
	// database, jadi perlu ping eksplisit
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("tidak dapat terhubung ke database", "error", err)
		return
	}

	/**********************************************
	 * Membuat repository
	 **********************************************/
	repo := repository.NewRepository(cfg, dbpool)

	/**********************************************
	 * Menghubungkan ke redis
	 **********************************************/
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	/**********************************************
	 * Membuat klien blob storage
	 **********************************************/
	blob := storage.NewSupabaseStorage(
		cfg.Supabase.URL,
		cfg.Supabase.ServiceKey,
		cfg.Supabase.Bucket,
		time.Duration(cfg.Supabase.UploadTimeout)*time.Second,
	)

	/**********************************************
	 * Membuat handler
	 **********************************************/
	handler, err := handler.NewHandler(cfg, repo, blob, rdb)
	if err != nil {
		logger.Error("tidak dapat membuat handler", "error", err)
		return
	}
	handler.RegisterRoutes()

	/**********************************************
	 * Menjalankan server HTTP
	 **********************************************/
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      handler.Mux,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("menjalankan server...", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("tidak dapat menjalankan server", slog.String("error", err.Error()))
			return
		}
	}()

	<-quit
	logger.Info("mematikan server...")

	ctx, cancel = context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("gagal mematikan server", slog.String("error", err.Error()))
	}
	logger.Info("server berhenti dengan baik")
}
