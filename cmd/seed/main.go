package main

import (
	"flag"
	"log"

	"github.com/guruwangchuk7/CivicPulse---Smart-Complain-System/internal/config"
	"github.com/guruwangchuk7/CivicPulse---Smart-Complain-System/internal/database"
	"github.com/guruwangchuk7/CivicPulse---Smart-Complain-System/internal/model"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// Seeds a handful of demo reports and votes around Thimphu for local
// development. Skips seeding when reports already exist unless -force is set.
func main() {
	force := flag.Bool("force", false, "Seed even when reports already exist")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	var existing int64
	db.Model(&model.Report{}).Count(&existing)
	if existing > 0 && !*force {
		log.Printf("Found %d existing reports, skipping seed (use -force to override)", existing)
		return
	}

	inserted, err := seed(db)
	if err != nil {
		log.Fatalf("Seed failed: %v", err)
	}

	log.Printf("Seeded %d demo reports", inserted)
}

func seed(db *gorm.DB) (int, error) {
	demoUsers := []string{
		"demo-user-aria",
		"demo-user-bishal",
		"demo-user-chandra",
	}

	reports := []model.Report{
		{UserID: demoUsers[0], Category: model.CategoryPothole, Description: "Deep pothole near the clock tower roundabout", Lat: 27.4716, Lng: 89.6386},
		{UserID: demoUsers[0], Category: model.CategoryTrash, Description: "Overflowing bins behind the weekend market", Lat: 27.4687, Lng: 89.6354},
		{UserID: demoUsers[0], Category: model.CategoryHazard, Description: "Loose power cable hanging over the footpath", Lat: 27.4742, Lng: 89.6401},
		{UserID: demoUsers[1], Category: model.CategoryPothole, Description: "Road surface collapsing after the rains", Lat: 27.4655, Lng: 89.6412},
		{UserID: demoUsers[2], Category: model.CategoryOther, Description: "Broken streetlight on Norzin Lam", Lat: 27.4701, Lng: 89.6379},
	}

	for i := range reports {
		reports[i].Status = model.StatusOpen
		if err := db.Create(&reports[i]).Error; err != nil {
			return i, err
		}
	}

	// A few votes so the detail drawer and counts have something to show.
	votes := []model.Vote{
		{ReportID: reports[0].ID, UserID: demoUsers[1]},
		{ReportID: reports[0].ID, UserID: demoUsers[2]},
		{ReportID: reports[3].ID, UserID: demoUsers[0]},
	}
	for i := range votes {
		if err := db.Create(&votes[i]).Error; err != nil {
			return len(reports), err
		}
	}

	return len(reports), nil
}
