// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package memory

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"inkpress/internal/models"
)

// PostRepository is an in-memory blog.PostRepository.
type PostRepository struct {
	mu    sync.RWMutex
	posts map[uuid.UUID]models.Post
}

// NewPostRepository returns an empty in-memory post repository.
func NewPostRepository() *PostRepository {
	return &PostRepository{posts: make(map[uuid.UUID]models.Post)}
}

// clonePost deep-copies a post so callers cannot mutate stored state
// through the returned slices.
func clonePost(p models.Post) models.Post {
	p.CategoryIDs = slices.Clone(p.CategoryIDs)
	p.Tags = slices.Clone(p.Tags)
	return p
}

// FindByID returns the post with the given id, or nil.
func (r *PostRepository) FindByID(_ context.Context, id uuid.UUID) (*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	copied := clonePost(p)
	return &copied, nil
}

// FindBySlug returns the post with the given slug, or nil.
func (r *PostRepository) FindBySlug(_ context.Context, slug string) (*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.posts {
		if p.Slug == slug {
			copied := clonePost(p)
			return &copied, nil
		}
	}
	return nil, nil
}

// ExistsBySlug reports whether a post with the given slug exists.
func (r *PostRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	p, err := r.FindBySlug(ctx, slug)
	return p != nil, err
}

// Create stores a new post, assigning id and timestamps.
func (r *PostRepository) Create(_ context.Context, p *models.Post) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := clonePost(*p)
	stored.ID = uuid.New()
	now := time.Now()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.posts[stored.ID] = stored
	copied := clonePost(stored)
	return &copied, nil
}

// Update replaces an existing post's fields and refreshes updated_at.
// The created_at stamp is immutable.
func (r *PostRepository) Update(_ context.Context, p *models.Post) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.posts[p.ID]
	if !ok {
		return nil, nil
	}

	stored := clonePost(*p)
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = time.Now()

	r.posts[stored.ID] = stored
	copied := clonePost(stored)
	return &copied, nil
}

// Delete removes a post by id.
func (r *PostRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.posts, id)
	return nil
}

// publishedDesc sorts posts by published_at descending.
func publishedDesc(items []models.Post) {
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i].PublishedAt, items[j].PublishedAt
		if a == nil || b == nil {
			return b == nil
		}
		return a.After(*b)
	})
}

// listPublished returns a sorted snapshot of published posts matching keep.
func (r *PostRepository) listPublished(keep func(models.Post) bool) []models.Post {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]models.Post, 0)
	for _, p := range r.posts {
		if p.IsPublished() && keep(p) {
			items = append(items, clonePost(p))
		}
	}
	publishedDesc(items)
	return items
}

// ListPublished returns all published posts, newest publication first.
func (r *PostRepository) ListPublished(_ context.Context) ([]models.Post, error) {
	return r.listPublished(func(models.Post) bool { return true }), nil
}

// SearchPublished returns published posts whose title, content, or excerpt
// contains term, case-insensitively.
func (r *PostRepository) SearchPublished(_ context.Context, term string) ([]models.Post, error) {
	needle := strings.ToLower(term)
	return r.listPublished(func(p models.Post) bool {
		excerpt := ""
		if p.Excerpt != nil {
			excerpt = *p.Excerpt
		}
		return strings.Contains(strings.ToLower(p.Title), needle) ||
			strings.Contains(strings.ToLower(p.Content), needle) ||
			strings.Contains(strings.ToLower(excerpt), needle)
	}), nil
}

// ListPublishedByCategory returns published posts joined to the category.
func (r *PostRepository) ListPublishedByCategory(_ context.Context, categoryID uuid.UUID) ([]models.Post, error) {
	return r.listPublished(func(p models.Post) bool {
		return slices.Contains(p.CategoryIDs, categoryID)
	}), nil
}

// ListPublishedByTag returns published posts carrying the exact tag.
func (r *PostRepository) ListPublishedByTag(_ context.Context, tag string) ([]models.Post, error) {
	return r.listPublished(func(p models.Post) bool {
		return slices.Contains(p.Tags, tag)
	}), nil
}

// ListByAuthor returns all of an author's posts, newest creation first.
func (r *PostRepository) ListByAuthor(_ context.Context, authorID uuid.UUID) ([]models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]models.Post, 0)
	for _, p := range r.posts {
		if p.AuthorID == authorID {
			items = append(items, clonePost(p))
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

// ListTags returns the distinct tags over published posts.
func (r *PostRepository) ListTags(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	tags := make([]string, 0)
	for _, p := range r.posts {
		if !p.IsPublished() {
			continue
		}
		for _, tag := range p.Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	return tags, nil
}
