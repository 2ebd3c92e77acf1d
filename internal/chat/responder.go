package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/guruwangchuk7/CivicPulse---Smart-Complain-System/internal/model"
	"gorm.io/gorm"
)

// Responder answers chat messages by keyword matching against a fixed
// priority list, optionally consulting the reports table. Rules are checked
// in order and the first match wins; a message mentioning both "trending" and
// "pothole" gets the trending answer.
type Responder struct {
	db *gorm.DB
}

// Rule names, reported alongside each reply for metrics.
const (
	RuleTrending = "trending"
	RulePothole  = "pothole"
	RuleTrash    = "trash"
	RuleGreeting = "greeting"
	RuleDefault  = "default"
)

const defaultReply = "I'm not sure about that. Try asking 'What's trending nearby?' or 'Show me potholes'."

func NewResponder(db *gorm.DB) *Responder {
	return &Responder{db: db}
}

// Respond produces the reply for a message and names the rule that matched.
func (r *Responder) Respond(ctx context.Context, message string) (string, string, error) {
	lowerMsg := strings.ToLower(message)

	switch {
	case strings.Contains(lowerMsg, "trending") || strings.Contains(lowerMsg, "popular"):
		reply, err := r.trendingReply(ctx)
		return reply, RuleTrending, err

	case strings.Contains(lowerMsg, "pothole"):
		count, err := r.countByCategory(ctx, model.CategoryPothole)
		if err != nil {
			return "", RulePothole, err
		}
		return fmt.Sprintf("There are currently %d potholes reported in this area. drive carefully!", count), RulePothole, nil

	case strings.Contains(lowerMsg, "trash"):
		count, err := r.countByCategory(ctx, model.CategoryTrash)
		if err != nil {
			return "", RuleTrash, err
		}
		return fmt.Sprintf("We have %d reports of trash piling up. Let's get it cleaned!", count), RuleTrash, nil

	case strings.Contains(lowerMsg, "hello") || strings.Contains(lowerMsg, "hi"):
		return "Hello citizen! I'm your Civic Assistant. Ask me about issues nearby.", RuleGreeting, nil

	default:
		return defaultReply, RuleDefault, nil
	}
}

func (r *Responder) trendingReply(ctx context.Context) (string, error) {
	var report model.Report
	err := r.db.WithContext(ctx).Limit(1).Take(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "Nothing is trending right now. It's quiet... too quiet.", nil
		}
		return "", err
	}

	return fmt.Sprintf(
		"The most trending issue nearby is a %s: %q. People are really concerned about it!",
		strings.ToLower(report.Category), report.Description,
	), nil
}

func (r *Responder) countByCategory(ctx context.Context, category string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Report{}).
		Where("category = ?", category).
		Count(&count).Error
	return count, err
}
