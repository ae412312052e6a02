package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uplifts-neel/lab-inventory-managment/models"
)

func TestMockVerifier(t *testing.T) {
	v := NewMockVerifier("mock-token")

	ident, err := v.Verify(context.Background(), "mock-token")
	require.NoError(t, err)
	assert.Equal(t, "Demo Admin", ident.Name)
	assert.Equal(t, models.RoleAdmin, ident.Role)
	assert.Equal(t, "60d5ec49f8c7d10015f8e123", ident.UserID.Hex())

	_, err = v.Verify(context.Background(), "wrong-token")
	assert.Error(t, err)

	_, err = v.Verify(context.Background(), "")
	assert.Error(t, err)
}

func TestAuthMiddleware(t *testing.T) {
	verifier := NewMockVerifier("mock-token")

	var seen *Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = IdentityFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := Auth(verifier)(next)

	t.Run("valid bearer token", func(t *testing.T) {
		seen = nil
		req := httptest.NewRequest("GET", "/api/assets", nil)
		req.Header.Set("Authorization", "Bearer mock-token")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, seen)
		assert.Equal(t, models.RoleAdmin, seen.Role)
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/assets", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/assets", nil)
		req.Header.Set("Authorization", "Basic abc123")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("bad token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/assets", nil)
		req.Header.Set("Authorization", "Bearer nope")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("websocket token via query", func(t *testing.T) {
		seen = nil
		req := httptest.NewRequest("GET", "/api/ws/audit?token=mock-token", nil)
		req.Header.Set("Upgrade", "websocket")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, seen)
	})
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	adminOnly := RequireRole(models.RoleAdmin)(next)

	t.Run("admin passes", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/api/users/abc", nil)
		ctx := WithIdentity(req.Context(), &Identity{Name: "A", Role: models.RoleAdmin})
		rec := httptest.NewRecorder()

		adminOnly.ServeHTTP(rec, req.WithContext(ctx))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("trainee forbidden", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/api/users/abc", nil)
		ctx := WithIdentity(req.Context(), &Identity{Name: "T", Role: models.RoleTrainee})
		rec := httptest.NewRecorder()

		adminOnly.ServeHTTP(rec, req.WithContext(ctx))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/api/users/abc", nil)
		rec := httptest.NewRecorder()

		adminOnly.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRoleMultiple(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	gate := RequireRole(models.RoleAdmin, models.RoleEngineer)(next)

	req := httptest.NewRequest("POST", "/api/assets", nil)
	ctx := WithIdentity(req.Context(), &Identity{Role: models.RoleEngineer})
	rec := httptest.NewRecorder()

	gate.ServeHTTP(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusOK, rec.Code)
}
