// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkpress/internal/blog"
	"inkpress/internal/cache"
	"inkpress/internal/middleware"
	"inkpress/internal/models"
)

// Posts groups the post HTTP handlers. The listing cache is optional;
// a nil cache serves every request from the database.
type Posts struct {
	posts *blog.PostService
	cache *cache.PostListCache
}

// NewPosts creates a new Posts handler group.
func NewPosts(posts *blog.PostService, listCache *cache.PostListCache) *Posts {
	return &Posts{posts: posts, cache: listCache}
}

type postRequest struct {
	Title         string            `json:"title" validate:"required,min=5,max=200"`
	Content       string            `json:"content" validate:"required,min=10"`
	Excerpt       *string           `json:"excerpt"`
	Status        models.PostStatus `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
	FeaturedImage *string           `json:"featuredImage"`
	CategoryIDs   []uuid.UUID       `json:"categoryIds"`
	Tags          []string          `json:"tags"`
}

func (req *postRequest) toInput() blog.PostInput {
	return blog.PostInput{
		Title:         req.Title,
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		Status:        req.Status,
		FeaturedImage: req.FeaturedImage,
		CategoryIDs:   req.CategoryIDs,
		Tags:          req.Tags,
	}
}

// invalidate clears the listing cache after a mutation.
func (h *Posts) invalidate(r *http.Request) {
	if h.cache != nil {
		h.cache.InvalidateAll(r.Context())
	}
}

// listCached serves a listing from the cache when possible, falling back to
// fetch and storing the serialized response for the next request.
func (h *Posts) listCached(w http.ResponseWriter, r *http.Request, key string, fetch func() (any, error)) {
	ctx := r.Context()

	if h.cache != nil {
		if body, ok := h.cache.Get(ctx, key); ok {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			w.Write(body)
			return
		}
	}

	v, err := fetch()
	if err != nil {
		slog.Error("post listing failed", "key", key, "error", err)
		respondError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("post listing encode failed", "error", err)
		respondError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	if h.cache != nil {
		h.cache.Set(ctx, key, body)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// List serves the public post listing. Exactly one filter applies per
// request: search wins over categoryId, which wins over tag; with no
// filters all published posts are returned, newest first.
func (h *Posts) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if search := q.Get("search"); search != "" {
		h.listCached(w, r, cache.SearchKey(search), func() (any, error) {
			return h.posts.Search(r.Context(), search)
		})
		return
	}

	if categoryID := q.Get("categoryId"); categoryID != "" {
		id, err := uuid.Parse(categoryID)
		if err != nil {
			respondError(w, r, http.StatusBadRequest, "Invalid category id")
			return
		}
		h.listCached(w, r, cache.CategoryKey(id.String()), func() (any, error) {
			return h.posts.ByCategory(r.Context(), id)
		})
		return
	}

	if tag := q.Get("tag"); tag != "" {
		h.listCached(w, r, cache.TagKey(tag), func() (any, error) {
			return h.posts.ByTag(r.Context(), tag)
		})
		return
	}

	h.listCached(w, r, cache.PublishedKey(), func() (any, error) {
		return h.posts.ListPublished(r.Context())
	})
}

// Tags serves the distinct tags across published posts.
func (h *Posts) Tags(w http.ResponseWriter, r *http.Request) {
	h.listCached(w, r, cache.TagsKey(), func() (any, error) {
		return h.posts.Tags(r.Context())
	})
}

// GetByID serves a single post by id. Malformed ids read as not found.
func (h *Posts) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, http.StatusNotFound, "Post not found")
		return
	}

	post, err := h.posts.GetByID(r.Context(), id)
	if err != nil {
		h.respondPostError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, post)
}

// GetBySlug serves a single post by slug.
func (h *Posts) GetBySlug(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.respondPostError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, post)
}

// My serves all posts of the authenticated user, drafts included.
func (h *Posts) My(w http.ResponseWriter, r *http.Request) {
	username := middleware.UsernameFromCtx(r.Context())

	posts, err := h.posts.ListByAuthor(r.Context(), username)
	if err != nil {
		h.respondPostError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, posts)
}

// Create creates a post authored by the authenticated user.
func (h *Posts) Create(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := validateStruct(req); msg != "" {
		respondError(w, r, http.StatusBadRequest, msg)
		return
	}

	username := middleware.UsernameFromCtx(r.Context())
	post, err := h.posts.Create(r.Context(), req.toInput(), username)
	if err != nil {
		h.respondPostError(w, r, err)
		return
	}

	h.invalidate(r)
	respondJSON(w, r, http.StatusCreated, post)
}

// Update applies changes to a post owned by the authenticated user.
func (h *Posts) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, http.StatusNotFound, "Post not found")
		return
	}

	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := validateStruct(req); msg != "" {
		respondError(w, r, http.StatusBadRequest, msg)
		return
	}

	username := middleware.UsernameFromCtx(r.Context())
	post, err := h.posts.Update(r.Context(), id, req.toInput(), username)
	if err != nil {
		h.respondPostError(w, r, err)
		return
	}

	h.invalidate(r)
	respondJSON(w, r, http.StatusOK, post)
}

// Delete removes a post owned by the authenticated user.
func (h *Posts) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, http.StatusNotFound, "Post not found")
		return
	}

	username := middleware.UsernameFromCtx(r.Context())
	if err := h.posts.Delete(r.Context(), id, username); err != nil {
		h.respondPostError(w, r, err)
		return
	}

	h.invalidate(r)
	respondMessage(w, r, "Post deleted successfully")
}

// respondPostError maps service errors onto HTTP status codes.
func (h *Posts) respondPostError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, blog.ErrPostNotFound):
		respondError(w, r, http.StatusNotFound, "Post not found")
	case errors.Is(err, blog.ErrNotPostAuthor):
		respondError(w, r, http.StatusForbidden, "You are not the author of this post")
	case errors.Is(err, blog.ErrUserNotFound):
		respondError(w, r, http.StatusBadRequest, "User not found")
	default:
		slog.Error("post request failed", "error", err)
		respondError(w, r, http.StatusInternalServerError, "Internal server error")
	}
}
