// Command main runs the database seeder for Plume.
package main

import (
	"flag"
	"log"

	"plume/internal/config"
	"plume/internal/database"
	"plume/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 50, "Number of users to create")
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	numComments := flag.Int("comments", 400, "Number of comments to create")
	numFollows := flag.Int("follows", 150, "Number of follow edges to create")
	maxDays := flag.Int("max-days", 90, "Spread publication dates over this many days")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	dryRun := flag.Bool("dry-run", false, "Log what would be created without writing")
	skipBcrypt := flag.Bool("skip-bcrypt", false, "Store plaintext placeholder passwords (dev fast mode)")
	groupPreset := flag.String("groups", "", "YAML file with group definitions (replaces built-ins)")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d posts, %d comments, %d follows, clean=%v\n",
		*numUsers, *numPosts, *numComments, *numFollows, *shouldClean)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = seed.Seed(db, seed.Options{
		NumUsers:        *numUsers,
		NumPosts:        *numPosts,
		NumComments:     *numComments,
		NumFollows:      *numFollows,
		ShouldClean:     *shouldClean,
		MaxDays:         *maxDays,
		SkipBcrypt:      *skipBcrypt,
		DryRun:          *dryRun,
		GroupPresetFile: *groupPreset,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! Your database is now populated with test data.")
	log.Println("All test users have the password: password123")
}
