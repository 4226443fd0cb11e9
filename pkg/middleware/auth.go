package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/rama-judicial/escalafon/pkg/handlers"
)

// Identity carries the authenticated caller and the capability flags
// granted by the identity provider.
type Identity struct {
	Subject      string
	Name         string
	Capabilities []string
}

type identityKey struct{}

// WithIdentity returns a context carrying the given identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom extracts the identity stored by Authenticate, if any.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// Authenticate returns middleware that verifies bearer tokens against the
// configured OIDC issuer and stores the resulting Identity on the request
// context. Capability flags are read from the token's "capabilities" claim.
// When disabled, the identity is taken from X-Actor-* headers instead so
// local development does not require an identity provider.
func Authenticate(cfg *AuthConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	log := logger.With("middleware", "auth")

	var (
		once     sync.Once
		verifier *oidc.IDTokenVerifier
		initErr  error
	)

	init := func(ctx context.Context) (*oidc.IDTokenVerifier, error) {
		once.Do(func() {
			provider, err := oidc.NewProvider(ctx, cfg.Issuer)
			if err != nil {
				initErr = fmt.Errorf("discover issuer %s: %w", cfg.Issuer, err)
				return
			}
			verifier = provider.Verifier(&oidc.Config{ClientID: cfg.Audience})
		})
		return verifier, initErr
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Enabled {
				next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), headerIdentity(r))))
				return
			}

			raw, ok := bearerToken(r)
			if !ok {
				handlers.RespondError(w, log, http.StatusUnauthorized, fmt.Errorf("missing bearer token"))
				return
			}

			v, err := init(r.Context())
			if err != nil {
				handlers.RespondError(w, log, http.StatusServiceUnavailable, err)
				return
			}

			token, err := v.Verify(r.Context(), raw)
			if err != nil {
				handlers.RespondError(w, log, http.StatusUnauthorized, fmt.Errorf("invalid token: %w", err))
				return
			}

			var claims struct {
				Name         string   `json:"name"`
				Capabilities []string `json:"capabilities"`
			}
			if err := token.Claims(&claims); err != nil {
				handlers.RespondError(w, log, http.StatusUnauthorized, fmt.Errorf("parse claims: %w", err))
				return
			}

			id := Identity{
				Subject:      token.Subject,
				Name:         claims.Name,
				Capabilities: claims.Capabilities,
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

func headerIdentity(r *http.Request) Identity {
	id := Identity{
		Subject: r.Header.Get("X-Actor-Id"),
		Name:    r.Header.Get("X-Actor-Name"),
	}
	if caps := r.Header.Get("X-Actor-Capabilities"); caps != "" {
		id.Capabilities = splitList(caps)
	}
	return id
}
