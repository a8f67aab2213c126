package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/eletrodesk/eletrodesk-backend/pkg/enums"
)

// ChatMessage is one turn of a conversation. Rows are append-only.
type ChatMessage struct {
	ID             uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ConversationID string            `gorm:"column:conversation_id;not null;index"`
	UserID         string            `gorm:"column:user_id;not null"`
	Role           enums.MessageRole `gorm:"column:role;not null"`
	Content        string            `gorm:"column:content;not null"`
	Metadata       json.RawMessage   `gorm:"column:metadata;type:jsonb"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime"`
}
