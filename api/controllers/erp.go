package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/eletrodesk/eletrodesk-backend/api/middleware"
	"github.com/eletrodesk/eletrodesk-backend/api/responses"
	"github.com/eletrodesk/eletrodesk-backend/internal/erp"
	pkgerrors "github.com/eletrodesk/eletrodesk-backend/pkg/errors"
	"github.com/eletrodesk/eletrodesk-backend/pkg/logger"
)

type erpSyncPayload struct {
	SourceSystem string    `json:"source_system,omitempty"`
	Rows         []erp.Row `json:"rows"`
}

// ERPSync imports a batch of ERP product rows into the tenant's catalog.
// Rows are free-form maps because every ERP exports different field names;
// the sync service resolves them.
func ERPSync(svc *erp.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "erp sync service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(ctx)
		if userID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		var payload erpSyncPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payload"))
			return
		}

		result, err := svc.Sync(ctx, userID, erp.SyncInput{
			SourceSystem: payload.SourceSystem,
			Rows:         payload.Rows,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
