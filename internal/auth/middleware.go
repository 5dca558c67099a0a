package auth

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

type authUserKey struct{}

// UserFromContext returns the authenticated claims, or nil.
func UserFromContext(ctx context.Context) *Claims {
	if c, ok := ctx.Value(authUserKey{}).(*Claims); ok {
		return c
	}
	return nil
}

// WithClaims returns ctx carrying claims. Used by tests and the WebSocket
// handler, which authenticates from a query parameter.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, authUserKey{}, claims)
}

var publicPaths = map[string]bool{
	"/api/v1/auth/login":        true,
	"/api/v1/auth/refresh":      true,
	"/api/v1/auth/logout":       true,
	"/api/v1/auth/setup":        true,
	"/api/v1/auth/setup/status": true,
	"/api/v1/health":            true,
}

// AuthMiddleware validates bearer access tokens on /api/ routes other than
// the public auth endpoints and the WebSocket stream.
func AuthMiddleware(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.URL.Path, "/api/") ||
				strings.HasPrefix(r.URL.Path, "/api/v1/ws/") ||
				publicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(r)
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, "missing or invalid authorization header")
				return
			}
			claims, err := tokens.ValidateAccessToken(token)
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "invalid or expired access token")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(h, "Bearer ")
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// Authorizer checks role permissions for authenticated requests.
type Authorizer struct {
	service *Service
	logger  *zap.Logger
}

// NewAuthorizer creates an Authorizer backed by the role permission table.
func NewAuthorizer(service *Service, logger *zap.Logger) *Authorizer {
	return &Authorizer{service: service, logger: logger}
}

// Require wraps next so it only runs when the caller's role holds
// permission. It answers 401 without claims and 403 without the grant.
func (a *Authorizer) Require(permission string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := UserFromContext(r.Context())
		if claims == nil {
			writeAuthError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		ok, err := a.service.Authorized(r.Context(), claims.Role, permission)
		if err != nil {
			a.logger.Error("permission lookup failed",
				zap.String("permission", permission),
				zap.Error(err),
			)
			writeAuthError(w, http.StatusInternalServerError, "authorization failed")
			return
		}
		if !ok {
			writeAuthError(w, http.StatusForbidden, "role "+string(claims.Role)+" lacks permission "+permission)
			return
		}
		next(w, r)
	}
}

// RequireRole wraps next so it only runs for the listed roles.
func RequireRole(next http.HandlerFunc, roles ...Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := UserFromContext(r.Context())
		if claims == nil {
			writeAuthError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		for _, role := range roles {
			if claims.Role == role {
				next(w, r)
				return
			}
		}
		writeAuthError(w, http.StatusForbidden, "insufficient role")
	}
}
