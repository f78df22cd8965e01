// Package auth verifies the identity provider's bearer tokens. The portal
// treats the token's subject as an opaque uid; administrator accounts use it
// as their condominium id.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	apperrors "condohub/pkg/errors"
	httputil "condohub/pkg/http"
	"condohub/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const principalKey contextKey = "principal"

type Principal struct {
	UID   string
	Email string
}

type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify parses and validates a signed token, returning the principal it
// carries. Expiry and signature are checked by the JWT library.
func (v *Verifier) Verify(tokenString string) (*Principal, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	uid, _ := claims["sub"].(string)
	if uid == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	email, _ := claims["email"].(string)

	return &Principal{UID: uid, Email: email}, nil
}

// IssueToken signs a token for a principal. Used by tests and local tooling;
// production tokens come from the identity provider.
func (v *Verifier) IssueToken(principal Principal, claims jwt.MapClaims) (string, error) {
	if claims == nil {
		claims = jwt.MapClaims{}
	}
	claims["sub"] = principal.UID
	if principal.Email != "" {
		claims["email"] = principal.Email
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}

func FromContext(ctx context.Context) (*Principal, bool) {
	principal, ok := ctx.Value(principalKey).(*Principal)
	return principal, ok
}

// Middleware rejects requests without a valid bearer token and stores the
// principal on the request context.
func Middleware(verifier *Verifier, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenString, found := strings.CutPrefix(header, "Bearer ")
			if !found || tokenString == "" {
				_ = httputil.WriteError(w, apperrors.Unauthorized("Credenciais ausentes."))
				return
			}

			principal, err := verifier.Verify(tokenString)
			if err != nil {
				log.Warn("Rejected invalid token", "path", r.URL.Path, "error", err)
				_ = httputil.WriteError(w, apperrors.Unauthorized("Credenciais inválidas."))
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
