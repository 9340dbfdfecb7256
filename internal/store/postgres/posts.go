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

// postColumns are the post table columns joined with the author's username.
const postColumns = `p.id, p.title, p.content, p.excerpt, p.slug, p.author_id, u.username,
	       p.status, p.published_at, p.view_count, p.featured_image, p.created_at, p.updated_at`

const postBaseQuery = `
	SELECT ` + postColumns + `
	FROM posts p
	JOIN users u ON u.id = p.author_id`

// PostRepository handles all post-related database operations, including
// the category join table and the tag table.
type PostRepository struct {
	db *sql.DB
}

// NewPostRepository creates a PostRepository with the given connection pool.
func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

// scanPost scans a joined row into a Post struct.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	p := &models.Post{}
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Content, &p.Excerpt, &p.Slug, &p.AuthorID, &p.AuthorUsername,
		&p.Status, &p.PublishedAt, &p.ViewCount, &p.FeaturedImage, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// loadRelations fills a post's category id and tag sets.
func (r *PostRepository) loadRelations(ctx context.Context, p *models.Post) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT category_id FROM post_categories WHERE post_id = $1`, p.ID)
	if err != nil {
		return fmt.Errorf("load post categories: %w", err)
	}
	defer rows.Close()

	p.CategoryIDs = []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("scan post category: %w", err)
		}
		p.CategoryIDs = append(p.CategoryIDs, id)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	tagRows, err := r.db.QueryContext(ctx,
		`SELECT tag FROM post_tags WHERE post_id = $1 ORDER BY tag`, p.ID)
	if err != nil {
		return fmt.Errorf("load post tags: %w", err)
	}
	defer tagRows.Close()

	p.Tags = []string{}
	for tagRows.Next() {
		var tag string
		if err := tagRows.Scan(&tag); err != nil {
			return fmt.Errorf("scan post tag: %w", err)
		}
		p.Tags = append(p.Tags, tag)
	}
	return tagRows.Err()
}

// queryPosts runs a joined post query and loads each post's relations.
func (r *PostRepository) queryPosts(ctx context.Context, query string, args ...any) ([]models.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	var items []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range items {
		if err := r.loadRelations(ctx, &items[i]); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// findOne runs a single-row post query including relations.
func (r *PostRepository) findOne(ctx context.Context, query string, args ...any) (*models.Post, error) {
	row := r.db.QueryRowContext(ctx, query, args...)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post: %w", err)
	}
	if err := r.loadRelations(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// FindByID retrieves a post by id. Returns nil if not found.
func (r *PostRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	return r.findOne(ctx, postBaseQuery+` WHERE p.id = $1`, id)
}

// FindBySlug retrieves a post by slug. Returns nil if not found.
func (r *PostRepository) FindBySlug(ctx context.Context, slug string) (*models.Post, error) {
	return r.findOne(ctx, postBaseQuery+` WHERE p.slug = $1`, slug)
}

// ExistsBySlug reports whether a post with the given slug exists.
func (r *PostRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM posts WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("post exists by slug: %w", err)
	}
	return exists, nil
}

// saveRelations replaces the post's join rows inside tx.
func saveRelations(ctx context.Context, tx *sql.Tx, p *models.Post) error {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM post_categories WHERE post_id = $1`, p.ID); err != nil {
		return fmt.Errorf("clear post categories: %w", err)
	}
	for _, categoryID := range p.CategoryIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO post_categories (post_id, category_id) VALUES ($1, $2)`,
			p.ID, categoryID); err != nil {
			return fmt.Errorf("insert post category: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM post_tags WHERE post_id = $1`, p.ID); err != nil {
		return fmt.Errorf("clear post tags: %w", err)
	}
	for _, tag := range p.Tags {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO post_tags (post_id, tag) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			p.ID, tag); err != nil {
			return fmt.Errorf("insert post tag: %w", err)
		}
	}
	return nil
}

// Create inserts a new post with its category and tag sets in one
// transaction and returns the stored row.
func (r *PostRepository) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	created := *p
	err = tx.QueryRowContext(ctx, `
		INSERT INTO posts (title, content, excerpt, slug, author_id, status,
		                   published_at, featured_image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, view_count, created_at, updated_at
	`, p.Title, p.Content, p.Excerpt, p.Slug, p.AuthorID, p.Status,
		p.PublishedAt, p.FeaturedImage,
	).Scan(&created.ID, &created.ViewCount, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	if err := saveRelations(ctx, tx, &created); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create post: %w", err)
	}
	return &created, nil
}

// Update overwrites a post's editable columns and replaces its category and
// tag sets in one transaction. The slug column is deliberately not touched.
func (r *PostRepository) Update(ctx context.Context, p *models.Post) (*models.Post, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	updated := *p
	err = tx.QueryRowContext(ctx, `
		UPDATE posts SET
			title = $1, content = $2, excerpt = $3, status = $4,
			published_at = $5, featured_image = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING view_count, created_at, updated_at
	`, p.Title, p.Content, p.Excerpt, p.Status,
		p.PublishedAt, p.FeaturedImage, p.ID,
	).Scan(&updated.ViewCount, &updated.CreatedAt, &updated.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	if err := saveRelations(ctx, tx, &updated); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update post: %w", err)
	}
	return &updated, nil
}

// Delete removes a post by id; join rows cascade.
func (r *PostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// ListPublished returns all published posts, newest publication first.
func (r *PostRepository) ListPublished(ctx context.Context) ([]models.Post, error) {
	return r.queryPosts(ctx, postBaseQuery+`
		WHERE p.status = 'PUBLISHED'
		ORDER BY p.published_at DESC`)
}

// SearchPublished returns published posts whose title, content, or excerpt
// contains term, case-insensitively, newest publication first.
func (r *PostRepository) SearchPublished(ctx context.Context, term string) ([]models.Post, error) {
	return r.queryPosts(ctx, postBaseQuery+`
		WHERE p.status = 'PUBLISHED'
		  AND (p.title ILIKE '%' || $1 || '%'
		    OR p.content ILIKE '%' || $1 || '%'
		    OR COALESCE(p.excerpt, '') ILIKE '%' || $1 || '%')
		ORDER BY p.published_at DESC`, term)
}

// ListPublishedByCategory returns published posts joined to the category.
func (r *PostRepository) ListPublishedByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Post, error) {
	return r.queryPosts(ctx, postBaseQuery+`
		JOIN post_categories pc ON pc.post_id = p.id
		WHERE p.status = 'PUBLISHED' AND pc.category_id = $1
		ORDER BY p.published_at DESC`, categoryID)
}

// ListPublishedByTag returns published posts carrying the exact tag.
func (r *PostRepository) ListPublishedByTag(ctx context.Context, tag string) ([]models.Post, error) {
	return r.queryPosts(ctx, postBaseQuery+`
		JOIN post_tags pt ON pt.post_id = p.id
		WHERE p.status = 'PUBLISHED' AND pt.tag = $1
		ORDER BY p.published_at DESC`, tag)
}

// ListByAuthor returns all of an author's posts, newest creation first.
func (r *PostRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]models.Post, error) {
	return r.queryPosts(ctx, postBaseQuery+`
		WHERE p.author_id = $1
		ORDER BY p.created_at DESC`, authorID)
}

// ListTags returns the distinct tags appearing on published posts.
func (r *PostRepository) ListTags(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT pt.tag
		FROM post_tags pt
		JOIN posts p ON p.id = pt.post_id
		WHERE p.status = 'PUBLISHED'
		ORDER BY pt.tag
	`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}
