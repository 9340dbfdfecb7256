// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"inkpress/internal/models"
	"inkpress/internal/slug"
)

// PostInput carries the caller-editable post fields. On update, a nil
// CategoryIDs or Tags slice leaves the existing set untouched, while an
// empty non-nil slice replaces it wholesale.
type PostInput struct {
	Title         string
	Content       string
	Excerpt       *string
	Status        models.PostStatus
	FeaturedImage *string
	CategoryIDs   []uuid.UUID
	Tags          []string
}

// PostService implements the post lifecycle: creation with slug assignment,
// owner-only update and delete, publish-once timestamping, and the
// published-content read queries. The caller identity is always an explicit
// username parameter; the service never reads ambient request context.
type PostService struct {
	posts      PostRepository
	users      UserRepository
	categories CategoryRepository
}

// NewPostService returns a PostService backed by the given repositories.
func NewPostService(posts PostRepository, users UserRepository, categories CategoryRepository) *PostService {
	return &PostService{posts: posts, users: users, categories: categories}
}

// GetByID returns the post with the given id, or ErrPostNotFound.
func (s *PostService) GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	p, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPostNotFound
	}
	return p, nil
}

// GetBySlug returns the post with the given slug, or ErrPostNotFound.
func (s *PostService) GetBySlug(ctx context.Context, postSlug string) (*models.Post, error) {
	p, err := s.posts.FindBySlug(ctx, postSlug)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPostNotFound
	}
	return p, nil
}

// ListPublished returns all published posts, newest publication first.
func (s *PostService) ListPublished(ctx context.Context) ([]models.Post, error) {
	return s.posts.ListPublished(ctx)
}

// Search returns published posts whose title, content, or excerpt contains
// term, case-insensitively.
func (s *PostService) Search(ctx context.Context, term string) ([]models.Post, error) {
	return s.posts.SearchPublished(ctx, term)
}

// ByCategory returns published posts associated with the given category.
func (s *PostService) ByCategory(ctx context.Context, categoryID uuid.UUID) ([]models.Post, error) {
	return s.posts.ListPublishedByCategory(ctx, categoryID)
}

// ByTag returns published posts carrying the exact tag string.
func (s *PostService) ByTag(ctx context.Context, tag string) ([]models.Post, error) {
	return s.posts.ListPublishedByTag(ctx, tag)
}

// Tags returns the distinct tag strings appearing on published posts.
func (s *PostService) Tags(ctx context.Context) ([]string, error) {
	return s.posts.ListTags(ctx)
}

// ListByAuthor returns all of a user's posts including drafts, newest first.
func (s *PostService) ListByAuthor(ctx context.Context, username string) ([]models.Post, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return s.posts.ListByAuthor(ctx, user.ID)
}

// Create stores a new post owned by username. The slug is assigned here,
// once, from the title; later title edits never regenerate it. A post
// created directly as PUBLISHED gets its publishedAt stamp immediately.
func (s *PostService) Create(ctx context.Context, in PostInput, username string) (*models.Post, error) {
	author, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if author == nil {
		// The caller was supposedly authenticated, so a missing user is an
		// invariant violation; it still surfaces as a typed error.
		return nil, ErrUserNotFound
	}

	postSlug, err := slug.Unique(in.Title, func(candidate string) (bool, error) {
		return s.posts.ExistsBySlug(ctx, candidate)
	})
	if err != nil {
		return nil, err
	}

	categoryIDs, err := s.resolveCategories(ctx, in.CategoryIDs)
	if err != nil {
		return nil, err
	}

	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	post := &models.Post{
		Title:          in.Title,
		Content:        in.Content,
		Excerpt:        in.Excerpt,
		Slug:           postSlug,
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
		CategoryIDs:    categoryIDs,
		Tags:           tags,
		Status:         statusOrDraft(in.Status),
		FeaturedImage:  in.FeaturedImage,
	}

	if post.Status == models.PostStatusPublished {
		now := time.Now()
		post.PublishedAt = &now
	}

	return s.posts.Create(ctx, post)
}

// Update overwrites a post's editable fields. Only the author may update;
// the slug is never regenerated. publishedAt is stamped exactly once, the
// first time the status lands on PUBLISHED, and never cleared afterwards.
func (s *PostService) Update(ctx context.Context, id uuid.UUID, in PostInput, username string) (*models.Post, error) {
	post, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.AuthorUsername != username {
		return nil, ErrNotPostAuthor
	}

	post.Title = in.Title
	post.Content = in.Content
	post.Excerpt = in.Excerpt
	post.FeaturedImage = in.FeaturedImage
	post.Status = statusOrDraft(in.Status)

	if in.CategoryIDs != nil {
		categoryIDs, err := s.resolveCategories(ctx, in.CategoryIDs)
		if err != nil {
			return nil, err
		}
		post.CategoryIDs = categoryIDs
	}
	if in.Tags != nil {
		post.Tags = in.Tags
	}

	if post.Status == models.PostStatusPublished && post.PublishedAt == nil {
		now := time.Now()
		post.PublishedAt = &now
	}

	return s.posts.Update(ctx, post)
}

// Delete removes a post. Only the author may delete; the delete is
// unconditional, with no soft-delete.
func (s *PostService) Delete(ctx context.Context, id uuid.UUID, username string) error {
	post, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post.AuthorUsername != username {
		return ErrNotPostAuthor
	}
	return s.posts.Delete(ctx, id)
}

// resolveCategories looks up each supplied category id and silently drops
// the ones that do not resolve. The lenient drop is deliberate, mirrored
// from the original product behavior, and covered by tests.
func (s *PostService) resolveCategories(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	resolved := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		c, err := s.categories.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if c != nil {
			resolved = append(resolved, c.ID)
		}
	}
	return resolved, nil
}

// statusOrDraft defaults an empty status to DRAFT.
func statusOrDraft(status models.PostStatus) models.PostStatus {
	if status == "" {
		return models.PostStatusDraft
	}
	return status
}
