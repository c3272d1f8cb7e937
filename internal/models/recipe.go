package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StringList is a custom type for handling ordered string arrays in JSONB
type StringList []string

// Value implements the driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// Recipe is owned by exactly one user. UserID never changes after creation;
// every mutation is scoped by both id and user_id.
type Recipe struct {
	ID           uuid.UUID      `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Title        string         `gorm:"size:255;not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	Ingredients  StringList     `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Steps        StringList     `gorm:"type:jsonb;not null;default:'[]'" json:"steps"`
	PrepTimeMins *int           `json:"prep_time_mins"`
	CookTimeMins *int           `json:"cook_time_mins"`
	Category     string         `gorm:"size:50" json:"category"`
	ImageURL     string         `gorm:"size:512" json:"image_url"`
	IsPublic     bool           `gorm:"not null;default:true" json:"is_public"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
