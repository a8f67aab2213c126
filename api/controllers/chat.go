package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/eletrodesk/eletrodesk-backend/api/responses"
	"github.com/eletrodesk/eletrodesk-backend/api/validators"
	"github.com/eletrodesk/eletrodesk-backend/internal/chat"
	pkgerrors "github.com/eletrodesk/eletrodesk-backend/pkg/errors"
	"github.com/eletrodesk/eletrodesk-backend/pkg/logger"
)

// maxChatMessageLen bounds what a single turn will carry into the prompt.
const maxChatMessageLen = 2000

// ChatMessage handles one assistant turn. The endpoint identifies the user by
// the user_id field in the body and answers with the bare chat envelope, not
// the standard success wrapper: the widget consuming it predates the API
// conventions. Pipeline failures still produce a 200 with fallback text; only
// a broken request or an explicit close can fail.
func ChatMessage(svc *chat.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "chat service unavailable"))
			return
		}

		var payload chat.MessageRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payload"))
			return
		}

		userID := strings.TrimSpace(payload.UserID)
		if userID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user_id is required"))
			return
		}

		if logg != nil {
			ctx = logg.WithUserID(ctx, userID)
		}

		if payload.Action == chat.ActionCloseChat {
			envelope, err := svc.CloseChat(ctx, userID)
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			responses.WriteJSON(w, http.StatusOK, envelope)
			return
		}

		message := validators.SanitizeString(payload.Message, maxChatMessageLen)
		if message == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "message is required"))
			return
		}

		envelope := svc.HandleMessage(ctx, userID, message)
		responses.WriteJSON(w, http.StatusOK, envelope)
	}
}
