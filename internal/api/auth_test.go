package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gatelogic/gatelogic-core/internal/infrastructure/config"
	"github.com/gatelogic/gatelogic-core/internal/infrastructure/logging"
)

const testJWTSecret = "0123456789abcdef0123456789abcdef"

func secured() config.SecurityConfig {
	return config.SecurityConfig{
		JWT: config.JWTConfig{Secret: testJWTSecret, AccessTokenTTL: 15},
	}
}

func TestAuthMiddleware_NoSecretPassesThrough(t *testing.T) {
	router, _ := newTestServer(t, config.SecurityConfig{})

	rec := doJSON(t, router, http.MethodGet, "/api/passcodes", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 when auth is not configured", rec.Code)
	}
}

func TestAuthMiddleware_RejectsMissingToken(t *testing.T) {
	router, _ := newTestServer(t, secured())

	rec := doJSON(t, router, http.MethodGet, "/api/passcodes", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuthMiddleware_RejectsBadToken(t *testing.T) {
	router, _ := newTestServer(t, secured())

	req := httptest.NewRequest(http.MethodGet, "/api/passcodes", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuthMiddleware_AcceptsMintedToken(t *testing.T) {
	router, _ := newTestServer(t, secured())

	// Mint through a second server sharing the same secret.
	srv, err := New(Deps{
		Security: secured(),
		Logger:   logging.Default(),
		Repo:     newTestRepo(t),
		Version:  "test",
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	token, err := srv.MintToken("admin")
	if err != nil {
		t.Fatalf("MintToken() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/passcodes", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
}

func TestAuthMiddleware_HealthStaysOpen(t *testing.T) {
	router, _ := newTestServer(t, secured())

	rec := doJSON(t, router, http.MethodGet, "/api/health", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 (health is unauthenticated)", rec.Code)
	}
}

func TestMintToken_RequiresSecret(t *testing.T) {
	srv, err := New(Deps{
		Logger:  logging.Default(),
		Repo:    newTestRepo(t),
		Version: "test",
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := srv.MintToken("admin"); err == nil {
		t.Error("MintToken() without secret should fail")
	}
}
