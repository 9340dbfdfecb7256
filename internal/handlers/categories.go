// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkpress/internal/blog"
	"inkpress/internal/cache"
)

// Categories groups the category HTTP handlers.
type Categories struct {
	categories *blog.CategoryService
	cache      *cache.PostListCache
}

// NewCategories creates a new Categories handler group.
func NewCategories(categories *blog.CategoryService, listCache *cache.PostListCache) *Categories {
	return &Categories{categories: categories, cache: listCache}
}

type categoryRequest struct {
	Name        string  `json:"name" validate:"required,max=50"`
	Description *string `json:"description"`
}

// invalidate clears the post listing cache; category changes affect the
// category-filtered listings.
func (h *Categories) invalidate(r *http.Request) {
	if h.cache != nil {
		h.cache.InvalidateAll(r.Context())
	}
}

// List serves all categories ordered by name, or a name/description search
// when the search query parameter is present.
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	var err error
	var categories any

	if search := r.URL.Query().Get("search"); search != "" {
		categories, err = h.categories.Search(r.Context(), search)
	} else {
		categories, err = h.categories.List(r.Context())
	}
	if err != nil {
		slog.Error("category listing failed", "error", err)
		respondError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, r, http.StatusOK, categories)
}

// GetByID serves a single category by id. Malformed ids read as not found.
func (h *Categories) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, http.StatusNotFound, "Category not found")
		return
	}

	category, err := h.categories.GetByID(r.Context(), id)
	if err != nil {
		h.respondReadError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, category)
}

// GetBySlug serves a single category by slug.
func (h *Categories) GetBySlug(w http.ResponseWriter, r *http.Request) {
	category, err := h.categories.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.respondReadError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, category)
}

// Create creates a new category.
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := validateStruct(req); msg != "" {
		respondError(w, r, http.StatusBadRequest, msg)
		return
	}

	category, err := h.categories.Create(r.Context(), blog.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.respondWriteError(w, r, err)
		return
	}

	h.invalidate(r)
	respondJSON(w, r, http.StatusCreated, category)
}

// Update renames a category. The slug is recomputed from the new name.
func (h *Categories) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "Category not found")
		return
	}

	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if msg := validateStruct(req); msg != "" {
		respondError(w, r, http.StatusBadRequest, msg)
		return
	}

	category, err := h.categories.Update(r.Context(), id, blog.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.respondWriteError(w, r, err)
		return
	}

	h.invalidate(r)
	respondJSON(w, r, http.StatusOK, category)
}

// Delete removes a category. Posts keep their other categories.
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "Category not found")
		return
	}

	if err := h.categories.Delete(r.Context(), id); err != nil {
		h.respondWriteError(w, r, err)
		return
	}

	h.invalidate(r)
	respondMessage(w, r, "Category deleted successfully")
}

// respondReadError maps lookup errors onto HTTP status codes.
func (h *Categories) respondReadError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, blog.ErrCategoryNotFound) {
		respondError(w, r, http.StatusNotFound, "Category not found")
		return
	}
	slog.Error("category request failed", "error", err)
	respondError(w, r, http.StatusInternalServerError, "Internal server error")
}

// respondWriteError maps mutation errors onto HTTP status codes. Write
// failures, missing records included, surface as 400 with the error text.
func (h *Categories) respondWriteError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, blog.ErrCategoryNotFound):
		respondError(w, r, http.StatusBadRequest, "Category not found")
	case errors.Is(err, blog.ErrCategoryNameTaken):
		respondError(w, r, http.StatusBadRequest, "Category with this name already exists")
	default:
		slog.Error("category request failed", "error", err)
		respondError(w, r, http.StatusInternalServerError, "Internal server error")
	}
}
