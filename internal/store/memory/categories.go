package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"inkpress/internal/models"
)

// CategoryRepository is an in-memory blog.CategoryRepository.
type CategoryRepository struct {
	mu         sync.RWMutex
	categories map[uuid.UUID]models.Category
}

// NewCategoryRepository returns an empty in-memory category repository.
func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{categories: make(map[uuid.UUID]models.Category)}
}

// List returns all categories ordered by name.
func (r *CategoryRepository) List(_ context.Context) ([]models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]models.Category, 0, len(r.categories))
	for _, c := range r.categories {
		items = append(items, c)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

// Search returns categories whose name or description contains term,
// case-insensitively, ordered by name.
func (r *CategoryRepository) Search(ctx context.Context, term string) ([]models.Category, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(term)
	var items []models.Category
	for _, c := range all {
		desc := ""
		if c.Description != nil {
			desc = *c.Description
		}
		if strings.Contains(strings.ToLower(c.Name), needle) ||
			strings.Contains(strings.ToLower(desc), needle) {
			items = append(items, c)
		}
	}
	return items, nil
}

// FindByID returns the category with the given id, or nil.
func (r *CategoryRepository) FindByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	copied := c
	return &copied, nil
}

// FindBySlug returns the category with the given slug, or nil.
func (r *CategoryRepository) FindBySlug(_ context.Context, slug string) (*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.categories {
		if c.Slug == slug {
			copied := c
			return &copied, nil
		}
	}
	return nil, nil
}

// ExistsByName reports whether a category with the given name exists.
func (r *CategoryRepository) ExistsByName(_ context.Context, name string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.categories {
		if c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// ExistsBySlug reports whether a category with the given slug exists.
func (r *CategoryRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	c, err := r.FindBySlug(ctx, slug)
	return c != nil, err
}

// Create stores a new category, assigning id and timestamps.
func (r *CategoryRepository) Create(_ context.Context, c *models.Category) (*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *c
	stored.ID = uuid.New()
	now := time.Now()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.categories[stored.ID] = stored
	copied := stored
	return &copied, nil
}

// Update replaces an existing category's fields and refreshes updated_at.
func (r *CategoryRepository) Update(_ context.Context, c *models.Category) (*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.categories[c.ID]
	if !ok {
		return nil, nil
	}

	stored := *c
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = time.Now()

	r.categories[stored.ID] = stored
	copied := stored
	return &copied, nil
}

// Delete removes a category by id.
func (r *CategoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.categories, id)
	return nil
}
