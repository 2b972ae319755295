package entity

import (
	"time"
)

const (
	NewsCategoryMarket        = "market"
	NewsCategoryGuides        = "guides"
	NewsCategoryAnnouncements = "announcements"
	NewsCategoryCommunity     = "community"
)

// NewsArticle is created by admin action only and is immutable once merged,
// except for admin delete.
type NewsArticle struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	Content         string    `json:"content"`
	MetaDescription string    `json:"meta_description,omitempty"`
	Tags            []string  `json:"tags,omitempty"`
	Image           string    `json:"image,omitempty"`
	Category        string    `json:"category"`
	Author          string    `json:"author"`
	PublishedAt     time.Time `json:"published_at"`
}
