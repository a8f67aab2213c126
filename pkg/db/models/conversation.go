package models

import (
	"time"

	"github.com/eletrodesk/eletrodesk-backend/pkg/enums"
)

// Conversation is a per-user chat session. At most one row per user may be
// active; the partial unique index conversations_active_user_idx enforces it.
type Conversation struct {
	ID          string                   `gorm:"column:id;primaryKey"`
	UserID      string                   `gorm:"column:user_id;not null;index"`
	Status      enums.ConversationStatus `gorm:"column:status;not null;default:'active'"`
	LastMessage string                   `gorm:"column:last_message;not null;default:''"`
	ClosedBy    *string                  `gorm:"column:closed_by"`
	ClosedAt    *time.Time               `gorm:"column:closed_at"`
	CreatedAt   time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}
