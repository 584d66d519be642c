package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/harithaceylon/storefront-backend/api/middleware"
	"github.com/harithaceylon/storefront-backend/api/responses"
	checkoutsvc "github.com/harithaceylon/storefront-backend/internal/checkout"
	pkgerrors "github.com/harithaceylon/storefront-backend/pkg/errors"
	"github.com/harithaceylon/storefront-backend/pkg/logger"
)

// Checkout hands the session's cart to order processing.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessionID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session context missing"))
			return
		}

		result, err := svc.Checkout(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
