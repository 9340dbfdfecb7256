// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package blog implements the content lifecycle: slug identity for posts and
// categories, draft/published/archived state with publish-once timestamping,
// owner-only mutation, and the published-content read queries.
//
// Persistence is injected through the repository interfaces below; both the
// PostgreSQL implementation and the in-memory test fake live under
// internal/store.
package blog

import (
	"context"

	"github.com/google/uuid"

	"inkpress/internal/models"
)

// UserRepository provides lookups and creation for registered users.
// Find methods return (nil, nil) when no row matches.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
}

// CategoryRepository persists categories. Find methods return (nil, nil)
// when no row matches.
type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	Search(ctx context.Context, term string) ([]models.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, c *models.Category) (*models.Category, error)
	Update(ctx context.Context, c *models.Category) (*models.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PostRepository persists posts together with their category and tag sets.
// Find methods return (nil, nil) when no row matches. List methods scoped to
// published posts order by published_at descending.
type PostRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	FindBySlug(ctx context.Context, slug string) (*models.Post, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, p *models.Post) (*models.Post, error)
	Update(ctx context.Context, p *models.Post) (*models.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListPublished(ctx context.Context) ([]models.Post, error)
	SearchPublished(ctx context.Context, term string) ([]models.Post, error)
	ListPublishedByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Post, error)
	ListPublishedByTag(ctx context.Context, tag string) ([]models.Post, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Post, error)
	ListTags(ctx context.Context) ([]string, error)
}
