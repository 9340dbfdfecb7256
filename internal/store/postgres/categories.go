// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"inkpress/internal/models"
)

const categoryColumns = `id, name, description, slug, created_at, updated_at`

// CategoryRepository handles all category-related database operations.
type CategoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a CategoryRepository with the given pool.
func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	c := &models.Category{}
	err := scanner.Scan(
		&c.ID, &c.Name, &c.Description, &c.Slug, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// collectCategories drains rows into a slice.
func collectCategories(rows *sql.Rows) ([]models.Category, error) {
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// List returns all categories ordered by name.
func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return collectCategories(rows)
}

// Search returns categories whose name or description contains term,
// case-insensitively, ordered by name.
func (r *CategoryRepository) Search(ctx context.Context, term string) ([]models.Category, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+categoryColumns+` FROM categories
		WHERE name ILIKE '%' || $1 || '%'
		   OR COALESCE(description, '') ILIKE '%' || $1 || '%'
		ORDER BY name
	`, term)
	if err != nil {
		return nil, fmt.Errorf("search categories: %w", err)
	}
	return collectCategories(rows)
}

// FindByID retrieves a category by id. Returns nil if not found.
func (r *CategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// FindBySlug retrieves a category by slug. Returns nil if not found.
func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, slug)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by slug: %w", err)
	}
	return c, nil
}

// ExistsByName reports whether a category with the given name exists.
func (r *CategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM categories WHERE name = $1)`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("category exists by name: %w", err)
	}
	return exists, nil
}

// ExistsBySlug reports whether a category with the given slug exists.
func (r *CategoryRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM categories WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("category exists by slug: %w", err)
	}
	return exists, nil
}

// Create inserts a new category and returns it with the generated id.
func (r *CategoryRepository) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO categories (name, description, slug)
		VALUES ($1, $2, $3)
		RETURNING `+categoryColumns,
		c.Name, c.Description, c.Slug,
	)
	created, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return created, nil
}

// Update modifies an existing category and returns the stored row.
func (r *CategoryRepository) Update(ctx context.Context, c *models.Category) (*models.Category, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE categories SET
			name = $1, description = $2, slug = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING `+categoryColumns,
		c.Name, c.Description, c.Slug, c.ID,
	)
	updated, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return updated, nil
}

// Delete removes a category by id. Join rows in post_categories cascade;
// posts themselves are untouched.
func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
