package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"condohub/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: logger.ERROR, Format: logger.JSON, Service: "test"})
}

func TestVerify_RoundTrip(t *testing.T) {
	v := NewVerifier("test-secret")

	token, err := v.IssueToken(Principal{UID: "uid-1", Email: "sindico@condo.com"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	principal, err := v.Verify(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if principal.UID != "uid-1" {
		t.Errorf("expected uid-1, got %s", principal.UID)
	}
	if principal.Email != "sindico@condo.com" {
		t.Errorf("unexpected email %s", principal.Email)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	token, err := NewVerifier("secret-a").IssueToken(Principal{UID: "uid-1"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := NewVerifier("secret-b").Verify(token); err == nil {
		t.Fatal("expected verification to fail with a different secret")
	}
}

func TestVerify_Expired(t *testing.T) {
	v := NewVerifier("test-secret")
	token, err := v.IssueToken(Principal{UID: "uid-1"}, jwt.MapClaims{
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := v.Verify(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestVerify_MissingSubject(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": "x@y.com"})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := NewVerifier("test-secret").Verify(signed); err == nil {
		t.Fatal("expected token without subject to be rejected")
	}
}

func TestMiddleware(t *testing.T) {
	v := NewVerifier("test-secret")
	token, err := v.IssueToken(Principal{UID: "uid-1"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var captured *Principal
	handler := Middleware(v, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"valid token", "Bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"malformed header", "Token abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-token", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captured = nil
			r := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
			if tt.authHeader != "" {
				r.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if tt.wantStatus == http.StatusOK && (captured == nil || captured.UID != "uid-1") {
				t.Errorf("expected principal uid-1 on context, got %+v", captured)
			}
		})
	}
}
