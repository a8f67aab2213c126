package conversation

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/eletrodesk/eletrodesk-backend/pkg/db/models"
	"github.com/eletrodesk/eletrodesk-backend/pkg/enums"
)

// Repository persists conversations and their messages.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindActiveByUser returns the user's single active conversation.
func (r *Repository) FindActiveByUser(ctx context.Context, userID string) (*models.Conversation, error) {
	var row models.Conversation
	err := r.db.WithContext(ctx).
		First(&row, "user_id = ? AND status = ?", userID, enums.ConversationStatusActive).
		Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Create inserts a new conversation row. A concurrent creator loses the race
// on conversations_active_user_idx and gets a unique violation back.
func (r *Repository) Create(ctx context.Context, row *models.Conversation) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// UpdateLastMessage refreshes the conversation preview.
func (r *Repository) UpdateLastMessage(ctx context.Context, id, preview string) error {
	return r.db.WithContext(ctx).
		Model(&models.Conversation{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"last_message": preview,
			"updated_at":   time.Now().UTC(),
		}).
		Error
}

// CloseActive transitions the user's active conversation to closed and returns
// how many rows changed. Zero means there was nothing to close.
func (r *Repository) CloseActive(ctx context.Context, userID, closedBy string) (int64, error) {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&models.Conversation{}).
		Where("user_id = ? AND status = ?", userID, enums.ConversationStatusActive).
		Updates(map[string]any{
			"status":     enums.ConversationStatusClosed,
			"closed_by":  closedBy,
			"closed_at":  now,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}

// InsertMessages appends chat message rows.
func (r *Repository) InsertMessages(ctx context.Context, rows []models.ChatMessage) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// ListByUser returns the user's conversations, newest activity first.
func (r *Repository) ListByUser(ctx context.Context, userID string, limit int) ([]models.Conversation, error) {
	var rows []models.Conversation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Limit(limit).
		Find(&rows).
		Error
	return rows, err
}

// ListMessages returns the messages of one conversation in chronological
// order, scoped to the owning user.
func (r *Repository) ListMessages(ctx context.Context, userID, conversationID string) ([]models.ChatMessage, error) {
	var rows []models.ChatMessage
	err := r.db.WithContext(ctx).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Order("created_at ASC").
		Find(&rows).
		Error
	return rows, err
}
