package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/harithaceylon/storefront-backend/api/responses"
	pkgAuth "github.com/harithaceylon/storefront-backend/pkg/auth"
	"github.com/harithaceylon/storefront-backend/pkg/config"
	"github.com/harithaceylon/storefront-backend/pkg/enums"
	pkgerrors "github.com/harithaceylon/storefront-backend/pkg/errors"
	"github.com/harithaceylon/storefront-backend/pkg/logger"
)

// Session validates a bearer token and seeds the request context with
// the cart session id and role carried in the claims.
func Session(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseSessionToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			// Shopper tokens carry the cart session id; admin tokens do
			// not have a cart and keep a nil session id.
			if claims.Role == enums.SessionRoleShopper && claims.SessionID == uuid.Nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id"))
				return
			}

			ctx := WithSessionID(r.Context(), claims.SessionID)
			ctx = WithRole(ctx, string(claims.Role))

			if logg != nil {
				ctx = logg.WithSessionID(ctx, claims.SessionID.String())
				ctx = logg.WithField(ctx, "session_role", string(claims.Role))
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
