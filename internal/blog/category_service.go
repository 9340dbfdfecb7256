// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blog

import (
	"context"

	"github.com/google/uuid"

	"inkpress/internal/models"
	"inkpress/internal/slug"
)

// CategoryInput carries the caller-editable category fields.
type CategoryInput struct {
	Name        string
	Description *string
}

// CategoryService implements category CRUD with slug identity.
type CategoryService struct {
	categories CategoryRepository
}

// NewCategoryService returns a CategoryService backed by the given repository.
func NewCategoryService(categories CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// List returns all categories.
func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx)
}

// Search returns categories whose name or description contains term,
// case-insensitively.
func (s *CategoryService) Search(ctx context.Context, term string) ([]models.Category, error) {
	return s.categories.Search(ctx, term)
}

// GetByID returns the category with the given id, or ErrCategoryNotFound.
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}

// GetBySlug returns the category with the given slug, or ErrCategoryNotFound.
func (s *CategoryService) GetBySlug(ctx context.Context, categorySlug string) (*models.Category, error) {
	c, err := s.categories.FindBySlug(ctx, categorySlug)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}

// Create stores a new category with a fresh unique slug derived from its
// name. Returns ErrCategoryNameTaken if the name is already in use.
func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*models.Category, error) {
	taken, err := s.categories.ExistsByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrCategoryNameTaken
	}

	categorySlug, err := slug.Unique(in.Name, func(candidate string) (bool, error) {
		return s.categories.ExistsBySlug(ctx, candidate)
	})
	if err != nil {
		return nil, err
	}

	return s.categories.Create(ctx, &models.Category{
		Name:        in.Name,
		Description: in.Description,
		Slug:        categorySlug,
	})
}

// Update renames a category. Renaming onto a name already used by a
// different category fails with ErrCategoryNameTaken. Unlike posts, the slug
// is recomputed from the new name on every update; the uniqueness check sees
// the category's own current slug, so even an unchanged name yields a fresh
// suffixed slug.
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, in CategoryInput) (*models.Category, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if c.Name != in.Name {
		taken, err := s.categories.ExistsByName(ctx, in.Name)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrCategoryNameTaken
		}
	}

	categorySlug, err := slug.Unique(in.Name, func(candidate string) (bool, error) {
		return s.categories.ExistsBySlug(ctx, candidate)
	})
	if err != nil {
		return nil, err
	}

	c.Name = in.Name
	c.Description = in.Description
	c.Slug = categorySlug

	return s.categories.Update(ctx, c)
}

// Delete removes a category by id. Posts keep their other categories; there
// is no referential check beyond the join-table cleanup.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.categories.Delete(ctx, id)
}
