package seed

import (
	"fmt"
	"os"

	"plume/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BuiltInGroup is a permanent publication category shipped with the app.
type BuiltInGroup struct {
	Title       string `yaml:"title"`
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
}

// BuiltInGroups defines the default publication categories.
var BuiltInGroups = []BuiltInGroup{
	{Title: "General", Slug: "general", Description: "Anything that fits nowhere else."},
	{Title: "Essays", Slug: "essays", Description: "Long-form writing and opinion pieces."},
	{Title: "Poetry", Slug: "poetry", Description: "Verse in all its forms."},
	{Title: "Travel", Slug: "travel", Description: "Trip reports and places worth seeing."},
	{Title: "Food", Slug: "food", Description: "Recipes, restaurants, and cooking notes."},
	{Title: "Technology", Slug: "technology", Description: "Software, hardware, and the craft."},
	{Title: "Photography", Slug: "photography", Description: "Photo essays and image-first posts."},
	{Title: "Books", Slug: "books", Description: "Reading lists and reviews."},
}

// Groups upserts the built-in publication groups by slug. Existing rows get
// their title and description refreshed; user-created groups are untouched.
func Groups(db *gorm.DB) error {
	return upsertGroups(db, BuiltInGroups)
}

// GroupsFromFile reads a YAML group preset and upserts its entries. The file
// is a plain list of {title, slug, description} items.
func GroupsFromFile(db *gorm.DB, path string) error {
	raw, err := os.ReadFile(path) // #nosec G304 -- operator-supplied preset path
	if err != nil {
		return fmt.Errorf("read group preset %s: %w", path, err)
	}

	var preset []BuiltInGroup
	if err := yaml.Unmarshal(raw, &preset); err != nil {
		return fmt.Errorf("parse group preset %s: %w", path, err)
	}

	for _, g := range preset {
		if g.Slug == "" || g.Title == "" {
			return fmt.Errorf("group preset %s: every entry needs a title and a slug", path)
		}
	}

	return upsertGroups(db, preset)
}

func upsertGroups(db *gorm.DB, items []BuiltInGroup) error {
	for _, item := range items {
		group := models.Group{
			Title:       item.Title,
			Slug:        item.Slug,
			Description: item.Description,
		}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "description", "updated_at"}),
		}).Create(&group).Error
		if err != nil {
			return fmt.Errorf("seed built-in group %s: %w", item.Slug, err)
		}
	}
	return nil
}
