package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/eletrodesk/eletrodesk-backend/api/responses"
	"github.com/eletrodesk/eletrodesk-backend/pkg/config"
	pkgerrors "github.com/eletrodesk/eletrodesk-backend/pkg/errors"
	"github.com/eletrodesk/eletrodesk-backend/pkg/logger"
)

type rateLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// ChatRateLimit throttles chat turns per user within a fixed window. The chat
// endpoint carries its user id in the body, so the limiter peeks at the
// payload and restores it for the handler. Limiter outages fail open: a broken
// Redis must not take the assistant down with it.
func ChatRateLimit(cfg config.ChatRateLimitConfig, limiter rateLimiter, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil || cfg.UserLimit <= 0 || cfg.Window <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			body, err := io.ReadAll(r.Body)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read request"))
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			userID := extractUserID(body)
			if userID == "" {
				// Missing identity is the handler's problem, not the limiter's.
				next.ServeHTTP(w, r)
				return
			}

			allowed, count, err := limiter.FixedWindowAllow(ctx, "chat:"+userID, int64(cfg.UserLimit), cfg.Window)
			if err != nil {
				if logg != nil {
					logg.Error(ctx, "chat rate limiter unavailable, allowing request", err)
				}
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				if logg != nil {
					logCtx := logg.WithFields(ctx, map[string]any{
						"user_id":        userID,
						"attempts":       count,
						"limit":          cfg.UserLimit,
						"window_seconds": int(cfg.Window.Seconds()),
					})
					logg.Warn(logCtx, "chat.rate_limit.blocked")
				}
				responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "muitas mensagens em sequência, aguarde um momento"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func extractUserID(payload []byte) string {
	var body struct {
		UserID string `json:"user_id"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	return body.UserID
}
