// Command main runs the database seeder for Aurum.
package main

import (
	"flag"
	"log"

	"aurum/internal/config"
	"aurum/internal/database"
	"aurum/internal/seed"
)

func main() {
	numAuthors := flag.Int("authors", 10, "Number of author accounts to create")
	numBlogs := flag.Int("blogs", 40, "Number of blogs to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d authors, %d blogs, clean=%v", *numAuthors, *numBlogs, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumAuthors:  *numAuthors,
		NumBlogs:    *numBlogs,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done. Test accounts use the password: password123")
}
