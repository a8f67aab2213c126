package models

import (
	"time"

	"github.com/google/uuid"
)

// ERPSyncLog records the outcome of one ERP import batch.
type ERPSyncLog struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID       string    `gorm:"column:user_id;not null;index"`
	SourceSystem string    `gorm:"column:source_system;not null;default:''"`
	RowsReceived int       `gorm:"column:rows_received;not null;default:0"`
	RowsUpserted int       `gorm:"column:rows_upserted;not null;default:0"`
	RowsFailed   int       `gorm:"column:rows_failed;not null;default:0"`
	ErrorText    string    `gorm:"column:error_text;not null;default:''"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}
