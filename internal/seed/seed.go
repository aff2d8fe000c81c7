// Package seed resets the database to a small demo dataset.
package seed

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/bhasbi-backend/internal/services"
	"gorm.io/gorm"
)

// Run wipes users, fish references, articles and reports and inserts the
// demo records. Both accounts share password.
func Run(ctx context.Context, db *gorm.DB, password string) error {
	hash, err := services.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wipe := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, m := range []interface{}{&models.Report{}, &models.Article{}, &models.FishReference{}, &models.User{}} {
			if err := wipe.Delete(m).Error; err != nil {
				return fmt.Errorf("failed to clear %T: %w", m, err)
			}
		}

		admin := models.User{
			Name:      "Admin User",
			Email:     "admin@bhasbi.com",
			Password:  hash,
			Role:      models.RoleAdmin,
			AvatarURL: "https://ui-avatars.com/api/?name=Admin+User",
		}
		user := models.User{
			Name:      "Regular User",
			Email:     "user@bhasbi.com",
			Password:  hash,
			Role:      models.RoleUser,
			AvatarURL: "https://ui-avatars.com/api/?name=Regular+User",
		}
		if err := tx.Create(&[]*models.User{&admin, &user}).Error; err != nil {
			return fmt.Errorf("failed to seed users: %w", err)
		}

		fish := []models.FishReference{
			{
				Name:           "Lionfish",
				ScientificName: "Pterois",
				Description:    "Lionfish are venomous marine fish in the genus Pterois.",
				ImageURL:       "https://upload.wikimedia.org/wikipedia/commons/thumb/c/c2/Lionfish_2.jpg/1200px-Lionfish_2.jpg",
				DangerLevel:    models.DangerHigh,
			},
			{
				Name:           "Stonefish",
				ScientificName: "Synanceia",
				Description:    "Stonefish are venomous, dangerous, and fatal to humans.",
				ImageURL:       "https://upload.wikimedia.org/wikipedia/commons/thumb/8/87/Stonefish_in_Egypt.jpg/1200px-Stonefish_in_Egypt.jpg",
				DangerLevel:    models.DangerHigh,
			},
			{
				Name:           "Clownfish",
				ScientificName: "Amphiprioninae",
				Description:    "Clownfish are small, brightly colored fish.",
				ImageURL:       "https://upload.wikimedia.org/wikipedia/commons/thumb/c/c3/Anemonefish_on_Isla_de_Chilo%C3%A9.jpg/1200px-Anemonefish_on_Isla_de_Chilo%C3%A9.jpg",
				DangerLevel:    models.DangerLow,
			},
		}
		if err := tx.Create(&fish).Error; err != nil {
			return fmt.Errorf("failed to seed fish references: %w", err)
		}

		article := models.Article{
			Title:        "Beware of Lionfish",
			Content:      "Lionfish are invasive and dangerous. Do not touch them.",
			ThumbnailURL: fish[0].ImageURL,
			SourceURL:    "https://en.wikipedia.org/wiki/Pterois",
		}
		if err := tx.Create(&article).Error; err != nil {
			return fmt.Errorf("failed to seed article: %w", err)
		}

		reports := []models.Report{
			{
				UserID:          user.ID,
				FishReferenceID: &fish[0].ID,
				Description:     "I saw a lionfish near the shore!",
				PhotoURL:        fish[0].ImageURL,
				Latitude:        -6.2,
				Longitude:       106.816666,
				AddressText:     "Jakarta, Indonesia",
				Status:          models.StatusPending,
			},
			{
				UserID:          user.ID,
				FishReferenceID: &fish[1].ID,
				Description:     "Dangerous stonefish spotted.",
				PhotoURL:        fish[1].ImageURL,
				Latitude:        -8.409518,
				Longitude:       115.188919,
				AddressText:     "Bali, Indonesia",
				Status:          models.StatusApproved,
			},
		}
		if err := tx.Omit("User", "FishReference").Create(&reports).Error; err != nil {
			return fmt.Errorf("failed to seed reports: %w", err)
		}
		return nil
	})
}
