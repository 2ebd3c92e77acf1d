package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vote is a single user's upvote on a report. At most one row exists per
// (user_id, report_id) pair; a repeat vote removes the row instead of
// duplicating it.
type Vote struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	ReportID  string    `gorm:"type:uuid;not null;index" json:"report_id"`
	UserID    string    `gorm:"not null;size:255" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	Report Report `gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Vote) TableName() string {
	return "votes"
}

func (v *Vote) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}
