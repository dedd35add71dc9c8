package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/covercredit/cover-credit-backend/internal/usecase"
)

type BlogHandler struct {
	blog *usecase.BlogUseCase
}

func NewBlogHandler(blog *usecase.BlogUseCase) *BlogHandler {
	return &BlogHandler{blog: blog}
}

// ListPublic serves GET /api/blog for the website: published posts only.
func (h *BlogHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	filter := usecase.ParseBlogListQuery(r.URL.Query(), true)
	h.list(w, r, filter)
}

// ListAdmin serves GET /api/admin/blog: drafts included, status filterable.
func (h *BlogHandler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	filter := usecase.ParseBlogListQuery(r.URL.Query(), false)
	h.list(w, r, filter)
}

func (h *BlogHandler) list(w http.ResponseWriter, r *http.Request, filter usecase.BlogFilter) {
	posts, pagination, err := h.blog.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"data":       posts,
		"pagination": pagination,
	})
}

func (h *BlogHandler) ReadBySlug(w http.ResponseWriter, r *http.Request) {
	post, err := h.blog.ReadBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, post)
}

func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.SaveBlogPostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	post, err := h.blog.Create(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, post)
}

func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.SaveBlogPostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	post, err := h.blog.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, post)
}

func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.blog.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Post deleted")
}
