package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/himarplupi/api-aspirasi-himarpl/internal/domain"
	"github.com/himarplupi/api-aspirasi-himarpl/internal/token"
)

type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)
		slog.Info("request selesai diproses", "status", rw.StatusCode, "ip", r.RemoteAddr, "method", r.Method, "path", r.URL.Path, "duration", duration)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.internalServerError(w, r, fmt.Errorf("panic: %v", err))
				stackTrace := string(debug.Stack())
				fmt.Print(stackTrace) // kalau pakai slog di sini hasilnya berantakan
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// auth memvalidasi bearer token. Jika token service menerbitkan token
// pengganti (sisa umur < jendela pembaruan), token baru dikirim lewat header
// X-Refreshed-Token tanpa mengubah bentuk body respons.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			h.unauthorized(w, r, "token tidak ditemukan di header")
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, renewed, err := h.tokens.Validate(tokenString)
		if err != nil {
			h.unauthorized(w, r, err.Error())
			return
		}

		if renewed != "" {
			w.Header().Set("X-Refreshed-Token", renewed)
		}

		ctx := context.WithValue(r.Context(), ClaimsCtxKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) requireSuperadmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := r.Context().Value(ClaimsCtxKey).(*token.Claims)
		if domain.Role(claims.Role) != domain.RoleSuperadmin {
			h.forbidden(w, r, "akses ditolak: hanya superadmin yang dapat mengakses endpoint ini")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) limitReached(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusTooManyRequests, Response{
		Success: false,
		Message: "terlalu banyak permintaan, coba lagi nanti",
		Data:    nil,
	})
}
