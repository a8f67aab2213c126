package models

import "time"

// CompanyProfile holds per-tenant company settings shown to the assistant.
type CompanyProfile struct {
	UserID       string    `gorm:"column:user_id;primaryKey"`
	CompanyName  string    `gorm:"column:company_name;not null;default:''"`
	ContactEmail string    `gorm:"column:contact_email;not null;default:''"`
	ContactPhone string    `gorm:"column:contact_phone;not null;default:''"`
	ERPSystem    string    `gorm:"column:erp_system;not null;default:''"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
