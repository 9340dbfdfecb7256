// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// PostStatus represents the publishing state of a post.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "DRAFT"
	PostStatusPublished PostStatus = "PUBLISHED"
	PostStatusArchived  PostStatus = "ARCHIVED"
)

// Valid reports whether s is one of the known post statuses.
func (s PostStatus) Valid() bool {
	switch s {
	case PostStatusDraft, PostStatusPublished, PostStatusArchived:
		return true
	}
	return false
}

// Post represents a blog post. AuthorUsername is denormalized from the users
// table on read so responses never need a second lookup. The slug is assigned
// once at creation and never regenerated, keeping permalinks stable.
type Post struct {
	ID             uuid.UUID   `json:"id"`
	Title          string      `json:"title"`
	Content        string      `json:"content"`
	Excerpt        *string     `json:"excerpt,omitempty"`
	Slug           string      `json:"slug"`
	AuthorID       uuid.UUID   `json:"authorId"`
	AuthorUsername string      `json:"authorUsername"`
	CategoryIDs    []uuid.UUID `json:"categoryIds"`
	Tags           []string    `json:"tags"`
	Status         PostStatus  `json:"status"`
	PublishedAt    *time.Time  `json:"publishedAt"`
	ViewCount      int64       `json:"viewCount"`
	FeaturedImage  *string     `json:"featuredImage,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// IsPublished returns true if the post is in published status.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}
