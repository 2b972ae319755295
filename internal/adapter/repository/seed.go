package repository

import (
	"time"

	"trazot/internal/domain/entity"
)

// SeedListings is the built-in fallback served when the listings collection is
// absent or unreadable, so a fresh install never renders an empty marketplace.
func SeedListings() []entity.Listing {
	seededAt := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)

	return []entity.Listing{
		{
			ID:          "pro-seed0001",
			Title:       "5 Marla House in DHA Phase 6",
			Description: "Well maintained house near the main boulevard, ready for possession.",
			Price:       24500000,
			Currency:    "PKR",
			Category:    entity.CategoryProperties,
			Purpose:     entity.PurposeSale,
			Location:    entity.Location{Country: "Pakistan", City: "Lahore", Society: "DHA Phase 6"},
			Status:      entity.StatusActive,
			UserID:      entity.GuestID,
			Featured:    true,
			IsVerified:  true,

			CreatedAt:       seededAt,
			StatusChangedAt: seededAt,
		},
		{
			ID:          "veh-seed0002",
			Title:       "Toyota Corolla GLi 2019",
			Description: "First owner, complete service history, minor wear on the rear bumper.",
			Price:       4650000,
			Currency:    "PKR",
			Category:    entity.CategoryVehicles,
			Purpose:     entity.PurposeSale,
			Location:    entity.Location{Country: "Pakistan", City: "Karachi"},
			Status:      entity.StatusActive,
			UserID:      entity.GuestID,

			CreatedAt:       seededAt,
			StatusChangedAt: seededAt,
		},
		{
			ID:          "ele-seed0003",
			Title:       "Dell Latitude 7420, 16GB RAM",
			Description: "Corporate lease return, battery health above 90 percent.",
			Price:       165000,
			Currency:    "PKR",
			Category:    entity.CategoryElectronics,
			Purpose:     entity.PurposeSale,
			Location:    entity.Location{Country: "Pakistan", City: "Islamabad"},
			Status:      entity.StatusActive,
			UserID:      entity.GuestID,

			CreatedAt:       seededAt,
			StatusChangedAt: seededAt,
		},
	}
}
