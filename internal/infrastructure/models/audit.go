package models

import (
	"time"

	"github.com/google/uuid"
)

// KYCAuditLog is the KYC-specific audit sink, tried first.
type KYCAuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	AdminID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Action     string    `gorm:"type:varchar(100);not null"`
	TargetType string    `gorm:"type:varchar(50);not null"`
	TargetID   string    `gorm:"type:varchar(100);not null;index"`
	Note       string    `gorm:"type:text"`
	SourceIP   string    `gorm:"type:varchar(50)"`
	CreatedAt  time.Time
}

func (KYCAuditLog) TableName() string {
	return "kyc_audit_logs"
}

// AdminAction is the generic fallback sink with its own column naming.
type AdminAction struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ActorID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ActionType string    `gorm:"type:varchar(100);not null"`
	Entity     string    `gorm:"type:varchar(50);not null"`
	EntityID   string    `gorm:"type:varchar(100);not null"`
	Detail     string    `gorm:"type:text"`
	IPAddress  string    `gorm:"type:varchar(50)"`
	CreatedAt  time.Time
}

func (AdminAction) TableName() string {
	return "admin_actions"
}
