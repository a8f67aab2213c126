package controllers

import (
	"context"
	"net/http"

	"github.com/eletrodesk/eletrodesk-backend/api/responses"
	pkgerrors "github.com/eletrodesk/eletrodesk-backend/pkg/errors"
	"github.com/eletrodesk/eletrodesk-backend/pkg/logger"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthLive reports process liveness.
func HealthLive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}

// HealthReady reports readiness by pinging the backing stores. Redis is
// optional; a nil Pinger is skipped.
func HealthReady(database, cache Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if database == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "database unavailable"))
			return
		}
		if err := database.Ping(ctx); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database ping"))
			return
		}

		status := map[string]string{"database": "ok"}
		if cache != nil {
			if err := cache.Ping(ctx); err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis ping"))
				return
			}
			status["redis"] = "ok"
		}

		responses.WriteSuccess(w, status)
	}
}
