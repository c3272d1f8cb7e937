package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile carries the public identity of a user. Its primary key is the
// owning user's id; it is created alongside the account and never deleted
// by this codebase.
type Profile struct {
	ID          uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	DisplayName string    `gorm:"size:255" json:"display_name"`
	AvatarURL   string    `gorm:"size:512" json:"avatar_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
