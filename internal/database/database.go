package database

import (
	"github.com/guruwangchuk7/CivicPulse---Smart-Complain-System/internal/config"
	"github.com/guruwangchuk7/CivicPulse---Smart-Complain-System/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.Report{},
		&model.Vote{},
	)
	if err != nil {
		return err
	}

	// The toggle-upvote path relies on this constraint: a second vote by the
	// same user must fail the insert so the handler can delete instead.
	db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_votes_user_report ON votes(user_id, report_id)")

	return nil
}
