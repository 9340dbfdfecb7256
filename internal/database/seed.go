package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: a demo author,
// a starter category, and a published welcome post. It is a no-op when any
// user already exists.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	var authorID string
	err = db.QueryRow(`
		INSERT INTO users (username, email, password_hash, full_name, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, "demo", "demo@inkpress.local", string(hash), "Demo Author", "USER").Scan(&authorID)
	if err != nil {
		return fmt.Errorf("seed insert user: %w", err)
	}

	var categoryID string
	err = db.QueryRow(`
		INSERT INTO categories (name, description, slug)
		VALUES ($1, $2, $3)
		RETURNING id
	`, "General", "Everything else", "general").Scan(&categoryID)
	if err != nil {
		return fmt.Errorf("seed insert category: %w", err)
	}

	var postID string
	err = db.QueryRow(`
		INSERT INTO posts (title, content, excerpt, slug, author_id, status, published_at)
		VALUES ($1, $2, $3, $4, $5, 'PUBLISHED', NOW())
		RETURNING id
	`, "Welcome to Inkpress",
		"This is your first post. Edit or delete it, then start writing.",
		"A short hello from your new blog.",
		"welcome-to-inkpress", authorID).Scan(&postID)
	if err != nil {
		return fmt.Errorf("seed insert post: %w", err)
	}

	if _, err := db.Exec(`
		INSERT INTO post_categories (post_id, category_id) VALUES ($1, $2)
	`, postID, categoryID); err != nil {
		return fmt.Errorf("seed link category: %w", err)
	}
	if _, err := db.Exec(`
		INSERT INTO post_tags (post_id, tag) VALUES ($1, 'welcome')
	`, postID); err != nil {
		return fmt.Errorf("seed insert tag: %w", err)
	}

	slog.Info("database seeded with demo author and welcome post",
		"username", "demo",
		"password", "demo",
	)

	return nil
}
