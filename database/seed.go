package database

import (
	"fmt"
	"time"

	"github.com/openfund-app/backend/models"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

// Seed wipes the funds and categories tables and loads a fixture data set.
// It is an explicit fixture loader for demos and tests; it must never run
// as part of normal process startup.
func Seed(db *gorm.DB) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM funds").Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM categories").Error; err != nil {
			return err
		}

		categories := []*models.Category{
			{Category: "Children"},
			{Category: "Health"},
			{Category: "Animals"},
			{Category: "Education"},
			{Category: "Ecology"},
			{Category: "Social support"},
			{Category: "Other"},
		}
		if err := tx.Create(&categories).Error; err != nil {
			return err
		}

		now := time.Now().UTC()
		funds := []*models.Fund{
			{
				CategoryID:  categories[0].ID,
				Title:       "Support for orphaned children",
				Description: "Clothing, school supplies and counseling for orphaned children.",
				Target:      300000,
				PhotoURL:    strPtr("/uploads/1.jpg"),
				TargetDate:  now.AddDate(0, 0, 30),
			},
			{
				CategoryID:  categories[1].ID,
				Title:       "Treatment for cancer patients",
				Description: "Funding expensive treatment and rehabilitation for cancer patients.",
				Target:      1200000,
				PhotoURL:    strPtr("/uploads/2.jpg"),
				TargetDate:  now.AddDate(0, 0, 35),
			},
			{
				CategoryID:  categories[2].ID,
				Title:       "Animal shelter construction",
				Description: "Building a new shelter for stray animals and a neutering program.",
				Target:      500000,
				PhotoURL:    strPtr("/uploads/3.jpg"),
				TargetDate:  now.AddDate(0, 0, 40),
			},
			{
				CategoryID:  categories[3].ID,
				Title:       "Education for everyone",
				Description: "Modern equipment and learning resources for remote schools.",
				Target:      800000,
				PhotoURL:    strPtr("/uploads/4.jpg"),
				TargetDate:  now.AddDate(0, 0, 49),
			},
			{
				CategoryID:  categories[4].ID,
				Title:       "Reforestation initiative",
				Description: "Planting 10,000 trees in fire-damaged regions and building eco trails.",
				Target:      350000,
				PhotoURL:    strPtr("/uploads/5.jpg"),
				TargetDate:  now.AddDate(0, 0, 33),
			},
			{
				CategoryID:  categories[5].ID,
				Title:       "Support for the elderly",
				Description: "Grocery and medicine delivery plus social visits for the elderly.",
				Target:      200000,
				PhotoURL:    strPtr("/uploads/6.jpg"),
				TargetDate:  now.AddDate(0, 0, 87),
			},
		}
		return tx.Create(&funds).Error
	})
	if err != nil {
		return fmt.Errorf("seed test data: %w", err)
	}
	return nil
}
