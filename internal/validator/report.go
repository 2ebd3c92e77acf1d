package validator

import (
	"fmt"
	"strings"

	"github.com/guruwangchuk7/CivicPulse---Smart-Complain-System/internal/model"
)

const maxDescriptionLen = 5000

// ReportInput holds the client-supplied fields of a report submission before
// persistence.
type ReportInput struct {
	Category    string
	Description string
	Lat         float64
	Lng         float64
	PhotoURL    string
	UserID      string
}

// ValidateReport checks a submission against the field rules: category and
// userId present, category within the enum, lat/lng within geographic range.
// Returns a caller-safe error message on failure.
func ValidateReport(in ReportInput) error {
	if strings.TrimSpace(in.UserID) == "" {
		return fmt.Errorf("userId is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return fmt.Errorf("category is required")
	}
	if !ValidCategory(in.Category) {
		return fmt.Errorf("invalid category: must be one of %s", strings.Join(model.Categories, ", "))
	}
	if in.Lat < -90 || in.Lat > 90 {
		return fmt.Errorf("lat must be between -90 and 90")
	}
	if in.Lng < -180 || in.Lng > 180 {
		return fmt.Errorf("lng must be between -180 and 180")
	}
	if len(in.Description) > maxDescriptionLen {
		return fmt.Errorf("description too long (max %d characters)", maxDescriptionLen)
	}
	return nil
}

// ValidCategory reports whether c is one of the known report categories.
func ValidCategory(c string) bool {
	for _, known := range model.Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is one of the known report statuses.
func ValidStatus(s string) bool {
	for _, known := range model.Statuses {
		if s == known {
			return true
		}
	}
	return false
}
