package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgAuth "github.com/stockroomhq/stockroom-backend/pkg/auth"
	"github.com/stockroomhq/stockroom-backend/pkg/config"
	"github.com/stockroomhq/stockroom-backend/pkg/enums"
)

type stubResolver struct {
	role enums.UserRole
	err  error
}

func (s stubResolver) ResolveRole(ctx context.Context, userID uuid.UUID) (enums.UserRole, error) {
	return s.role, s.err
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "stockroom-test",
		ExpirationMinutes: 15,
	}
}

func roleCapturingHandler(captured *enums.UserRole) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = RoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestIdentityNoTokenActsAsGuest(t *testing.T) {
	var seen enums.UserRole
	handler := Identity(testJWTConfig(), stubResolver{role: enums.UserRoleAdmin}, nil)(roleCapturingHandler(&seen))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if seen != enums.UserRoleGuest {
		t.Fatalf("expected guest, got %s", seen)
	}
}

func TestIdentityValidTokenResolvesRole(t *testing.T) {
	cfg := testJWTConfig()
	token, err := pkgAuth.MintAccessToken(cfg, time.Now(), pkgAuth.AccessTokenPayload{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	var seen enums.UserRole
	handler := Identity(cfg, stubResolver{role: enums.UserRoleManager}, nil)(roleCapturingHandler(&seen))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if seen != enums.UserRoleManager {
		t.Fatalf("expected manager, got %s", seen)
	}
}

func TestIdentityProfilelessUserActsAsClient(t *testing.T) {
	cfg := testJWTConfig()
	token, err := pkgAuth.MintAccessToken(cfg, time.Now(), pkgAuth.AccessTokenPayload{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	var seen enums.UserRole
	handler := Identity(cfg, stubResolver{role: enums.UserRoleClient}, nil)(roleCapturingHandler(&seen))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen != enums.UserRoleClient {
		t.Fatalf("expected client, got %s", seen)
	}
}

func TestIdentityRejectsInvalidToken(t *testing.T) {
	var seen enums.UserRole
	handler := Identity(testJWTConfig(), stubResolver{role: enums.UserRoleAdmin}, nil)(roleCapturingHandler(&seen))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid token, got %d", rec.Code)
	}
}

func TestIdentityRejectsExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	token, err := pkgAuth.MintAccessToken(cfg, time.Now().Add(-time.Hour), pkgAuth.AccessTokenPayload{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	handler := Identity(cfg, stubResolver{role: enums.UserRoleAdmin}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", rec.Code)
	}
}

func TestRequireStaff(t *testing.T) {
	cases := []struct {
		role enums.UserRole
		want int
	}{
		{enums.UserRoleGuest, http.StatusForbidden},
		{enums.UserRoleClient, http.StatusForbidden},
		{enums.UserRoleManager, http.StatusOK},
		{enums.UserRoleAdmin, http.StatusOK},
	}

	handler := RequireStaff(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
		req = req.WithContext(WithRole(req.Context(), tc.role))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Fatalf("role %s: expected %d, got %d", tc.role, tc.want, rec.Code)
		}
	}
}

func TestRequireRoleExactMatch(t *testing.T) {
	handler := RequireRole(enums.UserRoleAdmin, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/abc", nil)
	req = req.WithContext(WithRole(req.Context(), enums.UserRoleManager))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for manager on admin route, got %d", rec.Code)
	}
}
