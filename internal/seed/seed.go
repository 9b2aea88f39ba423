// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"

	"plume/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	NumComments int
	NumFollows  int
	ShouldClean bool
	// MaxDays bounds how far back publication dates are spread.
	MaxDays int
	// SkipBcrypt stores a plaintext placeholder password; dev fast mode only.
	SkipBcrypt bool
	// DryRun logs what would be created without touching the database.
	DryRun bool
	// GroupPresetFile optionally replaces the built-in groups with a YAML preset.
	GroupPresetFile string
}

// Seed populates the database with demo authors, groups, posts, comments,
// and follow subscriptions.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("seeding database: %d users, %d posts, %d comments, %d follows",
		opts.NumUsers, opts.NumPosts, opts.NumComments, opts.NumFollows)

	if opts.ShouldClean && !opts.DryRun {
		if err := clearData(db); err != nil {
			log.Println("warning: could not clear all existing data, continuing anyway")
		}
	}

	f := NewFactory(db, opts)

	if !opts.DryRun {
		if opts.GroupPresetFile != "" {
			if err := GroupsFromFile(db, opts.GroupPresetFile); err != nil {
				return fmt.Errorf("failed to seed groups from preset: %w", err)
			}
		} else if err := Groups(db); err != nil {
			return fmt.Errorf("failed to seed built-in groups: %w", err)
		}
	}

	var groups []models.Group
	if !opts.DryRun {
		if err := db.Find(&groups).Error; err != nil {
			return fmt.Errorf("failed to load groups: %w", err)
		}
	}

	users, err := createUsers(f, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("created %d users", len(users))

	posts, err := createPosts(f, users, groups, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("created %d posts", len(posts))

	if err := createComments(f, users, posts, opts.NumComments); err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("created %d comments", opts.NumComments)

	if err := createFollowMesh(f, users, opts.NumFollows); err != nil {
		return fmt.Errorf("failed to create follows: %w", err)
	}
	log.Printf("created up to %d follows", opts.NumFollows)

	log.Println("database seeding completed")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("clearing existing data...")
	if db.Dialector.Name() == "postgres" {
		return db.Exec(`TRUNCATE TABLE follows, comments, posts, groups, users RESTART IDENTITY CASCADE;`).Error
	}
	for _, table := range []string{"follows", "comments", "posts", "groups", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(f *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		user, err := f.CreateUser()
		if err != nil {
			log.Printf("failed to create seed user: %v", err)
			continue
		}
		users = append(users, user)
		if i > 0 && i%100 == 0 {
			log.Printf("created %d users...", i)
		}
	}
	if len(users) == 0 && count > 0 {
		return nil, fmt.Errorf("no users could be created")
	}
	return users, nil
}

func createPosts(f *Factory, users []*models.User, groups []models.Group, count int) ([]*models.Post, error) {
	if len(users) == 0 || count == 0 {
		return nil, nil
	}

	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		user := users[f.rng.Intn(len(users))]

		// Roughly 60% of posts land in a group.
		var group *models.Group
		if len(groups) > 0 && f.rng.Float32() < 0.6 {
			group = &groups[f.rng.Intn(len(groups))]
		}

		posts = append(posts, f.BuildPost(user, group))
	}

	if err := f.CreatePostsBatch(posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func createComments(f *Factory, users []*models.User, posts []*models.Post, count int) error {
	if len(users) == 0 || len(posts) == 0 {
		return nil
	}
	for i := 0; i < count; i++ {
		user := users[f.rng.Intn(len(users))]
		post := posts[f.rng.Intn(len(posts))]
		if _, err := f.CreateComment(user, post); err != nil {
			return err
		}
	}
	return nil
}

// createFollowMesh wires a random follow graph. Self-follows and duplicates
// are skipped, so the final edge count may come in under the requested one.
func createFollowMesh(f *Factory, users []*models.User, count int) error {
	if len(users) < 2 {
		return nil
	}
	for i := 0; i < count; i++ {
		follower := users[f.rng.Intn(len(users))]
		followed := users[f.rng.Intn(len(users))]
		if err := f.CreateFollow(follower, followed); err != nil {
			return err
		}
	}
	return nil
}
