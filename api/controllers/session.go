package controllers

import (
	"net/http"
	"time"

	"github.com/harithaceylon/storefront-backend/api/responses"
	"github.com/harithaceylon/storefront-backend/api/validators"
	cartsvc "github.com/harithaceylon/storefront-backend/internal/cart"
	pkgAuth "github.com/harithaceylon/storefront-backend/pkg/auth"
	"github.com/harithaceylon/storefront-backend/pkg/config"
	"github.com/harithaceylon/storefront-backend/pkg/enums"
	pkgerrors "github.com/harithaceylon/storefront-backend/pkg/errors"
	"github.com/harithaceylon/storefront-backend/pkg/logger"
	"github.com/harithaceylon/storefront-backend/pkg/security"
)

type sessionResponse struct {
	SessionID string    `json:"session_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionCreate provisions a fresh cart session and returns the bearer
// token that addresses it.
func SessionCreate(svc cartsvc.Service, jwtCfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		sessionID, err := svc.CreateSession(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		now := time.Now()
		token, err := pkgAuth.MintSessionToken(jwtCfg, now, pkgAuth.SessionTokenPayload{
			SessionID: sessionID,
			Role:      enums.SessionRoleShopper,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint session token"))
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, sessionResponse{
			SessionID: sessionID.String(),
			Token:     token,
			ExpiresAt: now.Add(jwtCfg.TokenTTL()),
		})
	}
}

type adminTokenRequest struct {
	Credential string `json:"credential" validate:"required"`
}

// AdminToken exchanges the admin credential for an admin bearer token.
func AdminToken(cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cfg.Admin.CredentialHash == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "admin surface disabled"))
			return
		}

		var payload adminTokenRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ok, err := security.VerifyCredential(payload.Credential, cfg.Admin.CredentialHash)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify credential"))
			return
		}
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credential"))
			return
		}

		now := time.Now()
		token, err := pkgAuth.MintSessionToken(cfg.JWT, now, pkgAuth.SessionTokenPayload{
			Role: enums.SessionRoleAdmin,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint admin token"))
			return
		}

		responses.WriteSuccess(w, sessionResponse{
			Token:     token,
			ExpiresAt: now.Add(cfg.JWT.TokenTTL()),
		})
	}
}
