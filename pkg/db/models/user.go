package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents the canonical identity entity. Authorization never reads the
// user row directly; the role lives on the attached profile.
type User struct {
	ID           uuid.UUID    `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string       `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash string       `gorm:"column:password_hash;not null"`
	IsActive     bool         `gorm:"column:is_active;not null;default:true"`
	LastLoginAt  *time.Time   `gorm:"column:last_login_at"`
	Profile      *UserProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time    `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time    `gorm:"column:updated_at;autoUpdateTime"`
}
