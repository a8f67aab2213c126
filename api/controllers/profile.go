package controllers

import (
	"net/http"

	"github.com/eletrodesk/eletrodesk-backend/api/middleware"
	"github.com/eletrodesk/eletrodesk-backend/api/responses"
	"github.com/eletrodesk/eletrodesk-backend/api/validators"
	profile "github.com/eletrodesk/eletrodesk-backend/internal/profiles"
	pkgerrors "github.com/eletrodesk/eletrodesk-backend/pkg/errors"
	"github.com/eletrodesk/eletrodesk-backend/pkg/logger"
)

type updateProfilePayload struct {
	CompanyName  string `json:"company_name" validate:"required"`
	ContactEmail string `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone string `json:"contact_phone,omitempty"`
	ERPSystem    string `json:"erp_system,omitempty"`
}

// ProfileGet returns the distributor's company profile.
func ProfileGet(svc profile.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(ctx)
		if userID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		dto, err := svc.GetProfile(ctx, userID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// ProfileUpdate replaces the distributor's company profile.
func ProfileUpdate(svc profile.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(ctx)
		if userID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		var payload updateProfilePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.UpdateProfile(ctx, userID, profile.UpdateProfileInput{
			CompanyName:  payload.CompanyName,
			ContactEmail: payload.ContactEmail,
			ContactPhone: payload.ContactPhone,
			ERPSystem:    payload.ERPSystem,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}
