// Package middleware provides the http.Handler plugins sitting in front of name lookups:
// query parameter parsing and OIDC bearer authentication.
package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/tschuyebuhl/soundex/data"
	"github.com/tschuyebuhl/soundex/userctx"
)

// DefaultNameClaim is the token claim whose code identifies the caller's own rows.
const DefaultNameClaim = "family_name"

var (
	errNoAuthorization = errors.New("authorization header is required")
	errNotBearer       = errors.New("invalid authorization format")
)

// Keycloak verifies bearer ID tokens and maps them into the request context.
type Keycloak struct {
	verifier    *oidc.IDTokenVerifier
	tokenMapper TokenMapper
}

type TokenMapper func(ctx context.Context, token *oidc.IDToken) (context.Context, error)

type KeycloakOption func(*Keycloak)

func WithTokenMapper(mapper TokenMapper) KeycloakOption {
	return func(k *Keycloak) {
		if mapper != nil {
			k.tokenMapper = mapper
		}
	}
}

// NewKeycloak maps tokens with NameCodeMapper(DefaultNameClaim) unless told otherwise.
// A nil provider rejects every request.
func NewKeycloak(provider *oidc.Provider, opts ...KeycloakOption) *Keycloak {
	k := &Keycloak{tokenMapper: NameCodeMapper(DefaultNameClaim)}
	for _, opt := range opts {
		opt(k)
	}
	if provider != nil {
		k.verifier = provider.Verifier(&oidc.Config{SkipClientIDCheck: true})
	}
	return k
}

func (k *Keycloak) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if k.verifier == nil {
			http.Error(w, "OIDC provider is required", http.StatusUnauthorized)
			return
		}
		ctx, err := k.authenticate(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (k *Keycloak) Middleware() func(http.Handler) http.Handler {
	return k.Handler
}

func (k *Keycloak) authenticate(r *http.Request) (context.Context, error) {
	raw, err := bearerToken(r.Header.Get("Authorization"))
	if err != nil {
		return nil, err
	}
	token, err := k.verifier.Verify(r.Context(), raw)
	if err != nil {
		return nil, fmt.Errorf("verify token: %w", err)
	}
	ctx, err := k.tokenMapper(r.Context(), token)
	if err != nil {
		return nil, fmt.Errorf("map token: %w", err)
	}
	return ctx, nil
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errNoAuthorization
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", errNotBearer
	}
	return token, nil
}

// NameCodeMapper stores the subject and the lookup code (data.Code) of the
// given name claim. A token without the claim is still accepted, with no code.
func NameCodeMapper(claim string) TokenMapper {
	if claim == "" {
		claim = DefaultNameClaim
	}
	return func(ctx context.Context, token *oidc.IDToken) (context.Context, error) {
		var claims map[string]any
		if err := token.Claims(&claims); err != nil {
			return nil, fmt.Errorf("decode claims: %w", err)
		}
		ctx = userctx.WithUserID(ctx, token.Subject)
		name, _ := claims[claim].(string)
		if code := data.Code(name); code != "" {
			ctx = userctx.WithNameCode(ctx, code)
		}
		return ctx, nil
	}
}
