package seed

import (
	"fmt"

	"plume/internal/models"
	"plume/internal/validation"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BuiltInGroup is a permanent topic group.
type BuiltInGroup struct {
	Title       string
	Slug        string
	Description string
}

// BuiltInGroups defines the topic groups every fresh deployment starts with.
var BuiltInGroups = []BuiltInGroup{
	{Title: "General", Slug: "general", Description: "Anything that fits nowhere else."},
	{Title: "Technology", Slug: "technology", Description: "Software, hardware, and everything between."},
	{Title: "Books", Slug: "books", Description: "Reading lists and literary discussion."},
	{Title: "Music", Slug: "music", Description: "Music discovery and recommendations."},
	{Title: "Film", Slug: "film", Description: "Movies old and new."},
	{Title: "Travel", Slug: "travel", Description: "Trip reports and destination talk."},
	{Title: "Food", Slug: "food", Description: "Cooking, recipes, and restaurants."},
	{Title: "Science", Slug: "science", Description: "Research, discoveries, and explainers."},
}

// Groups seeds the permanent built-in groups. Existing rows keyed by slug are
// updated in place, so the call is idempotent.
func Groups(db *gorm.DB) error {
	for _, item := range BuiltInGroups {
		if err := validation.ValidateGroupSlug(item.Slug); err != nil {
			return fmt.Errorf("built-in group %q has invalid slug: %w", item.Title, err)
		}

		group := models.Group{
			Title:       item.Title,
			Slug:        item.Slug,
			Description: item.Description,
		}

		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "description", "updated_at"}),
		}).Create(&group).Error; err != nil {
			return fmt.Errorf("failed to seed group %q: %w", item.Slug, err)
		}
	}
	return nil
}
