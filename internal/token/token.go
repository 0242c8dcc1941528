package token

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/himarplupi/api-aspirasi-himarpl/internal/domain"
)

var (
	ErrInvalid       = errors.New("token tidak valid")
	ErrExpired       = errors.New("token sudah kedaluwarsa")
	ErrMissingExpiry = errors.New("token tidak memiliki waktu kedaluwarsa")
)

type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// UserID mengurai id user dari klaim subject.
func (c *Claims) UserID() (int64, error) {
	return strconv.ParseInt(c.Subject, 10, 64)
}

// Service menerbitkan dan memverifikasi token sesi. Stateless: semua
// informasi berasal dari klaim bertanda tangan dan secret bersama, tidak ada
// penyimpanan sesi di server.
type Service struct {
	secret      []byte
	expiration  time.Duration
	renewWindow time.Duration
}

func NewService(secret string, expiration, renewWindow time.Duration) *Service {
	return &Service{
		secret:      []byte(secret),
		expiration:  expiration,
		renewWindow: renewWindow,
	}
}

func (s *Service) Issue(userID int64, email string, role domain.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		Role:  string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Validate memverifikasi token dan mengembalikan klaimnya. Jika sisa umur
// token kurang dari renewWindow, token baru dengan klaim yang sama ikut
// dikembalikan ("sliding renewal"); string kosong berarti tidak ada
// pembaruan. Token pengganti tidak mencabut token lama, caller diharapkan
// meneruskannya ke klien lewat header respons.
func (s *Service) Validate(tokenString string) (*Claims, string, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, "", ErrExpired
		}
		// Token yang sudah lewat masa berlakunya selalu dilaporkan sebagai
		// kedaluwarsa, apa pun status tanda tangannya.
		if decoded := s.Decode(tokenString); decoded != nil && decoded.ExpiresAt != nil && time.Now().After(decoded.ExpiresAt.Time) {
			return nil, "", ErrExpired
		}
		return nil, "", ErrInvalid
	}

	if claims.ExpiresAt == nil {
		return nil, "", ErrMissingExpiry
	}

	renewed := ""
	if time.Until(claims.ExpiresAt.Time) < s.renewWindow {
		userID, err := claims.UserID()
		if err != nil {
			return nil, "", ErrInvalid
		}
		renewed, err = s.Issue(userID, claims.Email, domain.Role(claims.Role))
		if err != nil {
			// pembaruan bersifat best-effort, token lama masih berlaku
			renewed = ""
		}
	}

	return claims, renewed, nil
}

// Decode mengembalikan klaim tanpa memeriksa tanda tangan maupun masa
// berlaku. Hanya untuk pengecekan advisory, jangan dipakai untuk otorisasi.
func (s *Service) Decode(tokenString string) *Claims {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil
	}
	return claims
}
