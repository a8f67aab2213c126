package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eletrodesk/eletrodesk-backend/pkg/config"
	"github.com/eletrodesk/eletrodesk-backend/pkg/db"
	"github.com/eletrodesk/eletrodesk-backend/pkg/db/models"
	"github.com/eletrodesk/eletrodesk-backend/pkg/enums"
	pkgerrors "github.com/eletrodesk/eletrodesk-backend/pkg/errors"
	"github.com/eletrodesk/eletrodesk-backend/pkg/logger"
)

// activeUserIndex is the partial unique index that serializes concurrent
// find-or-create calls for the same user.
const activeUserIndex = "conversations_active_user_idx"

// Store is the persistence surface the manager needs.
type Store interface {
	FindActiveByUser(ctx context.Context, userID string) (*models.Conversation, error)
	Create(ctx context.Context, row *models.Conversation) error
	UpdateLastMessage(ctx context.Context, id, preview string) error
	CloseActive(ctx context.Context, userID, closedBy string) (int64, error)
	InsertMessages(ctx context.Context, rows []models.ChatMessage) error
	ListByUser(ctx context.Context, userID string, limit int) ([]models.Conversation, error)
	ListMessages(ctx context.Context, userID, conversationID string) ([]models.ChatMessage, error)
}

// Manager drives the per-user conversation state machine. A user has at most
// one active conversation; closed ones are never resumed.
type Manager struct {
	store      Store
	logg       *logger.Logger
	previewMax int
	now        func() time.Time
}

// NewManager constructs a conversation manager.
func NewManager(store Store, logg *logger.Logger, cfg config.ChatConfig) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("conversation store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	previewMax := cfg.PreviewMaxLen
	if previewMax <= 0 {
		previewMax = 120
	}
	return &Manager{
		store:      store,
		logg:       logg,
		previewMax: previewMax,
		now:        time.Now,
	}, nil
}

// EnsureActive returns the id of the user's active conversation, creating one
// when none exists. Store failures never propagate: the caller gets a
// synthesized time-based id so the chat turn can proceed.
func (m *Manager) EnsureActive(ctx context.Context, userID string) string {
	existing, err := m.store.FindActiveByUser(ctx, userID)
	if err == nil {
		return existing.ID
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		m.logg.Error(ctx, "conversation lookup failed, using synthesized id", err)
		return m.synthesizeID(userID)
	}

	row := &models.Conversation{
		ID:     m.synthesizeID(userID),
		UserID: userID,
		Status: enums.ConversationStatusActive,
	}
	if err := m.store.Create(ctx, row); err != nil {
		if db.IsUniqueViolation(err, activeUserIndex) {
			// Concurrent turn won the race; adopt its conversation.
			if winner, rereadErr := m.store.FindActiveByUser(ctx, userID); rereadErr == nil {
				return winner.ID
			}
		}
		m.logg.Error(ctx, "conversation create failed, using synthesized id", err)
		return row.ID
	}
	return row.ID
}

// Touch refreshes the conversation's last_message preview. Best effort.
func (m *Manager) Touch(ctx context.Context, conversationID, message string) {
	preview := truncate(message, m.previewMax)
	if err := m.store.UpdateLastMessage(ctx, conversationID, preview); err != nil {
		m.logg.Error(ctx, "conversation preview update failed", err)
	}
}

// Close transitions the user's active conversation to closed. Unlike the rest
// of the lifecycle this is not best effort: callers surface the failure.
func (m *Manager) Close(ctx context.Context, userID, closedBy string) error {
	affected, err := m.store.CloseActive(ctx, userID, closedBy)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "close conversation")
	}
	if affected == 0 {
		m.logg.Debug(ctx, "close requested with no active conversation")
	}
	return nil
}

// ExchangeMetadata annotates persisted chat turns.
type ExchangeMetadata struct {
	QueryType     string `json:"query_type,omitempty"`
	RelevantCount int    `json:"relevant_count,omitempty"`
	Fallback      bool   `json:"fallback,omitempty"`
}

// RecordExchange appends the user and assistant turns of one exchange.
// Failures are logged, never returned; message history is a side effect the
// chat response does not depend on.
func (m *Manager) RecordExchange(ctx context.Context, conversationID, userID, userMessage, assistantMessage string, meta ExchangeMetadata) {
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		metaJSON = []byte("{}")
	}
	rows := []models.ChatMessage{
		{
			ID:             uuid.New(),
			ConversationID: conversationID,
			UserID:         userID,
			Role:           enums.MessageRoleUser,
			Content:        userMessage,
			Metadata:       metaJSON,
		},
		{
			ID:             uuid.New(),
			ConversationID: conversationID,
			UserID:         userID,
			Role:           enums.MessageRoleAssistant,
			Content:        assistantMessage,
			Metadata:       metaJSON,
		},
	}
	if err := m.store.InsertMessages(ctx, rows); err != nil {
		m.logg.Error(ctx, "chat message persistence failed", err)
	}
}

// History lists the user's conversations, newest first.
func (m *Manager) History(ctx context.Context, userID string, limit int) ([]models.Conversation, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	rows, err := m.store.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list conversations")
	}
	return rows, nil
}

// Messages lists one conversation's messages in order.
func (m *Manager) Messages(ctx context.Context, userID, conversationID string) ([]models.ChatMessage, error) {
	rows, err := m.store.ListMessages(ctx, userID, conversationID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list messages")
	}
	return rows, nil
}

func (m *Manager) synthesizeID(userID string) string {
	return fmt.Sprintf("conv_%s_%d", userID, m.now().UnixMilli())
}

func truncate(value string, max int) string {
	runes := []rune(value)
	if len(runes) <= max {
		return value
	}
	return string(runes[:max])
}
