package controllers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/eletrodesk/eletrodesk-backend/api/middleware"
	"github.com/eletrodesk/eletrodesk-backend/api/responses"
	"github.com/eletrodesk/eletrodesk-backend/api/validators"
	conversation "github.com/eletrodesk/eletrodesk-backend/internal/conversations"
	"github.com/eletrodesk/eletrodesk-backend/pkg/db/models"
	pkgerrors "github.com/eletrodesk/eletrodesk-backend/pkg/errors"
	"github.com/eletrodesk/eletrodesk-backend/pkg/logger"
)

type conversationDTO struct {
	ID          string     `json:"id"`
	Status      string     `json:"status"`
	LastMessage string     `json:"last_message,omitempty"`
	ClosedBy    *string    `json:"closed_by,omitempty"`
	ClosedAt    *time.Time `json:"closed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type chatMessageDTO struct {
	ID             string          `json:"id"`
	ConversationID string          `json:"conversation_id"`
	Role           string          `json:"role"`
	Content        string          `json:"content"`
	Metadata       json.RawMessage `json:"metadata,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ConversationList returns the distributor's conversations, newest first.
func ConversationList(mgr *conversation.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if mgr == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "conversation manager unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(ctx)
		if userID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, 100)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		rows, err := mgr.History(ctx, userID, limit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		out := make([]conversationDTO, 0, len(rows))
		for i := range rows {
			out = append(out, newConversationDTO(&rows[i]))
		}
		responses.WriteSuccess(w, out)
	}
}

// ConversationMessages returns one conversation's messages in order.
func ConversationMessages(mgr *conversation.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if mgr == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "conversation manager unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(ctx)
		if userID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		conversationID := strings.TrimSpace(chi.URLParam(r, "conversationId"))
		if conversationID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "conversation id is required"))
			return
		}

		rows, err := mgr.Messages(ctx, userID, conversationID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		out := make([]chatMessageDTO, 0, len(rows))
		for i := range rows {
			out = append(out, newChatMessageDTO(&rows[i]))
		}
		responses.WriteSuccess(w, out)
	}
}

func newConversationDTO(row *models.Conversation) conversationDTO {
	return conversationDTO{
		ID:          row.ID,
		Status:      row.Status.String(),
		LastMessage: row.LastMessage,
		ClosedBy:    row.ClosedBy,
		ClosedAt:    row.ClosedAt,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func newChatMessageDTO(row *models.ChatMessage) chatMessageDTO {
	return chatMessageDTO{
		ID:             row.ID.String(),
		ConversationID: row.ConversationID,
		Role:           row.Role.String(),
		Content:        row.Content,
		Metadata:       row.Metadata,
		CreatedAt:      row.CreatedAt,
	}
}
