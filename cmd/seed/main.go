// Command seed populates the development database with fake users, posts,
// comments, and likes.
package main

import (
	"flag"
	"log"

	"buddyscript/internal/config"
	"buddyscript/internal/database"
	"buddyscript/internal/seed"
)

func main() {
	users := flag.Int("users", 8, "number of users to create")
	posts := flag.Int("posts", 4, "posts per user")
	comments := flag.Int("comments", 3, "comments per post")
	password := flag.String("password", "password123", "password for every seeded account")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	opts := seed.Options{
		Users:           *users,
		PostsPerUser:    *posts,
		CommentsPerPost: *comments,
		Password:        *password,
	}
	if err := seed.Run(db, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
