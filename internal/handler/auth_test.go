package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/himarplupi/api-aspirasi-himarpl/internal/domain"
)

func TestLogin(t *testing.T) {
	t.Run("Should return a token and the user on valid credentials", func(t *testing.T) {
		h, store, _ := newTestHandler(t)
		user, _ := seedUser(t, h, store, "admin@upi.edu", "password123", domain.RoleAdmin)

		rec := doJSON(t, h, http.MethodPost, "/auth/login", "", map[string]string{
			"email":    "admin@upi.edu",
			"password": "password123",
		})

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeResponse(t, rec)
		require.True(t, resp.Success)

		data := resp.Data.(map[string]any)
		assert.NotEmpty(t, data["token"])

		claims, renewed, err := h.tokens.Validate(data["token"].(string))
		require.NoError(t, err)
		assert.Empty(t, renewed)
		assert.Equal(t, user.Email, claims.Email)
	})
	t.Run("Should not leak the password hash in the response", func(t *testing.T) {
		h, store, _ := newTestHandler(t)
		seedUser(t, h, store, "admin@upi.edu", "password123", domain.RoleAdmin)

		rec := doJSON(t, h, http.MethodPost, "/auth/login", "", map[string]string{
			"email":    "admin@upi.edu",
			"password": "password123",
		})

		assert.NotContains(t, rec.Body.String(), "password_hash")
		assert.NotContains(t, rec.Body.String(), "$2a$")
	})
	t.Run("Should answer the same for an unknown email and a wrong password", func(t *testing.T) {
		h, store, _ := newTestHandler(t)
		seedUser(t, h, store, "admin@upi.edu", "password123", domain.RoleAdmin)

		recUnknown := doJSON(t, h, http.MethodPost, "/auth/login", "", map[string]string{
			"email":    "tidakada@upi.edu",
			"password": "password123",
		})
		recWrong := doJSON(t, h, http.MethodPost, "/auth/login", "", map[string]string{
			"email":    "admin@upi.edu",
			"password": "salah",
		})

		respUnknown := decodeResponse(t, recUnknown)
		respWrong := decodeResponse(t, recWrong)
		assert.False(t, respUnknown.Success)
		assert.False(t, respWrong.Success)
		assert.Equal(t, respUnknown.Message, respWrong.Message)
	})
	t.Run("Should reject a body without an email", func(t *testing.T) {
		h, _, _ := newTestHandler(t)

		rec := doJSON(t, h, http.MethodPost, "/auth/login", "", map[string]string{
			"password": "password123",
		})

		resp := decodeResponse(t, rec)
		assert.False(t, resp.Success)
	})
}

func TestInitSuperadmin(t *testing.T) {
	t.Run("Should create the first superadmin and return a token", func(t *testing.T) {
		h, store, _ := newTestHandler(t)

		rec := doJSON(t, h, http.MethodPost, "/auth/init-superadmin", "", map[string]string{
			"email":    "ketua@upi.edu",
			"nama":     "Ketua Himpunan",
			"password": "password123",
		})

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeResponse(t, rec)
		require.True(t, resp.Success)

		user, err := store.GetUserByEmail("ketua@upi.edu")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleSuperadmin, user.Role)
	})
	t.Run("Should refuse once any user exists", func(t *testing.T) {
		h, store, _ := newTestHandler(t)
		seedUser(t, h, store, "admin@upi.edu", "password123", domain.RoleAdmin)

		rec := doJSON(t, h, http.MethodPost, "/auth/init-superadmin", "", map[string]string{
			"email":    "ketua@upi.edu",
			"nama":     "Ketua Himpunan",
			"password": "password123",
		})

		assert.Equal(t, http.StatusForbidden, rec.Code)
		resp := decodeResponse(t, rec)
		assert.False(t, resp.Success)

		_, err := store.GetUserByEmail("ketua@upi.edu")
		assert.Error(t, err)
	})
}
