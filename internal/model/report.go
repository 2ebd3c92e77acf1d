package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Report struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string    `gorm:"not null;size:255;index" json:"user_id"`
	Category    string    `gorm:"not null;size:50" json:"category"`
	Description string    `gorm:"type:text" json:"description"`
	Lat         float64   `gorm:"not null" json:"lat"`
	Lng         float64   `gorm:"not null" json:"lng"`
	PhotoURL    string    `gorm:"type:text" json:"photo_url"`
	Status      string    `gorm:"default:'OPEN';size:20" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Report) TableName() string {
	return "reports"
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// Category constants
const (
	CategoryPothole = "POTHOLE"
	CategoryTrash   = "TRASH"
	CategoryHazard  = "HAZARD"
	CategoryOther   = "OTHER"
)

// Status constants
const (
	StatusOpen       = "OPEN"
	StatusInProgress = "IN_PROGRESS"
	StatusResolved   = "RESOLVED"
)

// Categories lists every valid report category.
var Categories = []string{CategoryPothole, CategoryTrash, CategoryHazard, CategoryOther}

// Statuses lists every valid report status.
var Statuses = []string{StatusOpen, StatusInProgress, StatusResolved}
