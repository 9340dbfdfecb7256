// store_test.go provides a shared test database helper for the repository
// integration tests. Tests are skipped if PostgreSQL is not available.
package postgres

import (
	"context"
	"database/sql"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"inkpress/internal/database"
	"inkpress/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "inkpress")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "inkpress")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// uniq appends a random suffix so parallel test runs never collide on the
// schema's unique columns.
func uniq(prefix string) string {
	return prefix + "-" + strings.Split(uuid.NewString(), "-")[0]
}

// mustUser inserts a user and registers its cleanup.
func mustUser(t *testing.T, db *sql.DB) *models.User {
	t.Helper()
	repo := NewUserRepository(db)

	username := uniq("tester")
	user, err := repo.Create(context.Background(), &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "not-a-real-hash",
		FullName:     "Test User",
		Role:         models.RoleUser,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	t.Cleanup(func() {
		db.Exec("DELETE FROM users WHERE id = $1", user.ID)
	})
	return user
}

// mustCategory inserts a category and registers its cleanup.
func mustCategory(t *testing.T, db *sql.DB, name string) *models.Category {
	t.Helper()
	repo := NewCategoryRepository(db)

	c, err := repo.Create(context.Background(), &models.Category{
		Name: name,
		Slug: name,
	})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	t.Cleanup(func() {
		db.Exec("DELETE FROM categories WHERE id = $1", c.ID)
	})
	return c
}

func cleanupPost(t *testing.T, db *sql.DB, id uuid.UUID) {
	t.Helper()
	t.Cleanup(func() {
		db.Exec("DELETE FROM posts WHERE id = $1", id)
	})
}

func TestUserRepository(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := mustUser(t, db)

	found, err := repo.FindByUsername(ctx, user.Username)
	if err != nil {
		t.Fatalf("FindByUsername() error = %v", err)
	}
	if found == nil || found.ID != user.ID {
		t.Errorf("FindByUsername() = %v, want id %v", found, user.ID)
	}

	missing, err := repo.FindByUsername(ctx, "no-such-user-ever")
	if err != nil {
		t.Fatalf("FindByUsername() error = %v", err)
	}
	if missing != nil {
		t.Errorf("FindByUsername() unknown = %v, want nil", missing)
	}

	exists, err := repo.ExistsByUsername(ctx, user.Username)
	if err != nil || !exists {
		t.Errorf("ExistsByUsername() = %v, %v, want true", exists, err)
	}
	exists, err = repo.ExistsByEmail(ctx, user.Email)
	if err != nil || !exists {
		t.Errorf("ExistsByEmail() = %v, %v, want true", exists, err)
	}
}

func TestCategoryRepository(t *testing.T) {
	db := testDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	name := uniq("integration")
	c := mustCategory(t, db, name)

	if c.ID == uuid.Nil {
		t.Fatal("ID not assigned")
	}

	byID, err := repo.FindByID(ctx, c.ID)
	if err != nil || byID == nil || byID.Name != name {
		t.Errorf("FindByID() = %v, %v", byID, err)
	}
	bySlug, err := repo.FindBySlug(ctx, c.Slug)
	if err != nil || bySlug == nil || bySlug.ID != c.ID {
		t.Errorf("FindBySlug() = %v, %v", bySlug, err)
	}

	exists, err := repo.ExistsByName(ctx, name)
	if err != nil || !exists {
		t.Errorf("ExistsByName() = %v, %v, want true", exists, err)
	}
	exists, err = repo.ExistsBySlug(ctx, c.Slug)
	if err != nil || !exists {
		t.Errorf("ExistsBySlug() = %v, %v, want true", exists, err)
	}

	desc := "updated description"
	c.Name = name + "-renamed"
	c.Description = &desc
	c.Slug = c.Slug + "-renamed"
	updated, err := repo.Update(ctx, c)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Name != name+"-renamed" || updated.Description == nil || *updated.Description != desc {
		t.Errorf("Update() = %+v", updated)
	}

	found, err := repo.Search(ctx, strings.ToUpper(name))
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(found) == 0 {
		t.Error("Search() found nothing, want the renamed category")
	}

	if err := repo.Delete(ctx, c.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	gone, err := repo.FindByID(ctx, c.ID)
	if err != nil || gone != nil {
		t.Errorf("FindByID() after delete = %v, %v, want nil", gone, err)
	}
}

func TestPostRepository(t *testing.T) {
	db := testDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := mustUser(t, db)
	category := mustCategory(t, db, uniq("posts"))

	now := time.Now()
	excerpt := "short version"
	slug := uniq("integration-post")
	created, err := repo.Create(ctx, &models.Post{
		Title:       "Integration Post",
		Content:     "full body text",
		Excerpt:     &excerpt,
		Slug:        slug,
		AuthorID:    author.ID,
		Status:      models.PostStatusPublished,
		PublishedAt: &now,
		CategoryIDs: []uuid.UUID{category.ID},
		Tags:        []string{"integration", "pg"},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	cleanupPost(t, db, created.ID)

	if created.ID == uuid.Nil {
		t.Fatal("ID not assigned")
	}

	t.Run("find by id loads relations and author username", func(t *testing.T) {
		found, err := repo.FindByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if found == nil {
			t.Fatal("FindByID() = nil")
		}
		if found.AuthorUsername != author.Username {
			t.Errorf("AuthorUsername = %q, want %q", found.AuthorUsername, author.Username)
		}
		if len(found.CategoryIDs) != 1 || found.CategoryIDs[0] != category.ID {
			t.Errorf("CategoryIDs = %v", found.CategoryIDs)
		}
		if len(found.Tags) != 2 {
			t.Errorf("Tags = %v, want 2", found.Tags)
		}
	})

	t.Run("find by slug", func(t *testing.T) {
		found, err := repo.FindBySlug(ctx, slug)
		if err != nil || found == nil || found.ID != created.ID {
			t.Errorf("FindBySlug() = %v, %v", found, err)
		}
	})

	t.Run("exists by slug", func(t *testing.T) {
		exists, err := repo.ExistsBySlug(ctx, slug)
		if err != nil || !exists {
			t.Errorf("ExistsBySlug() = %v, %v, want true", exists, err)
		}
	})

	t.Run("published listings", func(t *testing.T) {
		posts, err := repo.ListPublished(ctx)
		if err != nil {
			t.Fatalf("ListPublished() error = %v", err)
		}
		if !containsPost(posts, created.ID) {
			t.Error("ListPublished() missing the created post")
		}

		posts, err = repo.SearchPublished(ctx, "FULL BODY")
		if err != nil {
			t.Fatalf("SearchPublished() error = %v", err)
		}
		if !containsPost(posts, created.ID) {
			t.Error("SearchPublished() missing the created post")
		}

		posts, err = repo.ListPublishedByCategory(ctx, category.ID)
		if err != nil {
			t.Fatalf("ListPublishedByCategory() error = %v", err)
		}
		if !containsPost(posts, created.ID) {
			t.Error("ListPublishedByCategory() missing the created post")
		}

		posts, err = repo.ListPublishedByTag(ctx, "integration")
		if err != nil {
			t.Fatalf("ListPublishedByTag() error = %v", err)
		}
		if !containsPost(posts, created.ID) {
			t.Error("ListPublishedByTag() missing the created post")
		}

		posts, err = repo.ListByAuthor(ctx, author.ID)
		if err != nil {
			t.Fatalf("ListByAuthor() error = %v", err)
		}
		if !containsPost(posts, created.ID) {
			t.Error("ListByAuthor() missing the created post")
		}

		tags, err := repo.ListTags(ctx)
		if err != nil {
			t.Fatalf("ListTags() error = %v", err)
		}
		found := false
		for _, tag := range tags {
			if tag == "integration" {
				found = true
			}
		}
		if !found {
			t.Errorf("ListTags() = %v, missing %q", tags, "integration")
		}
	})

	t.Run("update replaces relations and keeps slug", func(t *testing.T) {
		created.Title = "Integration Post v2"
		created.CategoryIDs = []uuid.UUID{}
		created.Tags = []string{"replaced"}

		updated, err := repo.Update(ctx, created)
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if updated.Title != "Integration Post v2" {
			t.Errorf("Title = %q", updated.Title)
		}

		found, err := repo.FindByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if found.Slug != slug {
			t.Errorf("Slug = %q, want unchanged %q", found.Slug, slug)
		}
		if len(found.CategoryIDs) != 0 {
			t.Errorf("CategoryIDs = %v, want cleared", found.CategoryIDs)
		}
		if len(found.Tags) != 1 || found.Tags[0] != "replaced" {
			t.Errorf("Tags = %v, want [replaced]", found.Tags)
		}
	})

	t.Run("delete cascades join rows", func(t *testing.T) {
		if err := repo.Delete(ctx, created.ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		gone, err := repo.FindByID(ctx, created.ID)
		if err != nil || gone != nil {
			t.Errorf("FindByID() after delete = %v, %v, want nil", gone, err)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM post_tags WHERE post_id = $1", created.ID).Scan(&count); err != nil {
			t.Fatalf("count tags: %v", err)
		}
		if count != 0 {
			t.Errorf("post_tags rows = %d, want 0 after cascade", count)
		}
	})
}

func containsPost(posts []models.Post, id uuid.UUID) bool {
	for _, p := range posts {
		if p.ID == id {
			return true
		}
	}
	return false
}
