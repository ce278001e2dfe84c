package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ahmedwebmail/online-shop/internal/domain"
	"github.com/ahmedwebmail/online-shop/internal/service"
	apperrors "github.com/ahmedwebmail/online-shop/pkg/errors"
	"github.com/ahmedwebmail/online-shop/pkg/httputil"
	"github.com/ahmedwebmail/online-shop/pkg/validator"
)

// CreateResourceRequest is the JSON request body for creating a brand or
// category. Logo is accepted for brands only.
type CreateResourceRequest struct {
	Name string  `json:"name" validate:"required,min=1,max=255"`
	Logo *string `json:"logo" validate:"omitempty,url,max=2048"`
}

// UpdateResourceRequest is the JSON request body for renaming a resource.
type UpdateResourceRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

// ResourceHandler handles HTTP requests for one slug-addressed resource kind.
type ResourceHandler[T any, P domain.DocumentPtr[T]] struct {
	service *service.CatalogService[T, P]
	kind    string
	logger  *slog.Logger
}

// NewResourceHandler creates a handler bound to one catalog service.
func NewResourceHandler[T any, P domain.DocumentPtr[T]](
	svc *service.CatalogService[T, P],
	kind string,
	logger *slog.Logger,
) *ResourceHandler[T, P] {
	return &ResourceHandler[T, P]{
		service: svc,
		kind:    kind,
		logger:  logger,
	}
}

// List handles GET /{kind}-list.
func (h *ResourceHandler[T, P]) List(w http.ResponseWriter, r *http.Request) {
	docs, err := h.service.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, docs)
}

// Create handles POST /create-{kind}.
func (h *ResourceHandler[T, P]) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB limit
	var req CreateResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()))
		return
	}
	if err := validator.Validate(req); err != nil {
		h.writeError(w, r, err)
		return
	}

	doc, err := h.service.Create(r.Context(), service.CreateInput{Name: req.Name, Logo: req.Logo})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, doc)
}

// Get handles GET /select-{kind}/{slug}.
func (h *ResourceHandler[T, P]) Get(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	doc, err := h.service.GetBySlug(r.Context(), slug)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, doc)
}

// Update handles PUT /update-{kind}/{slug}.
func (h *ResourceHandler[T, P]) Update(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req UpdateResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()))
		return
	}
	if err := validator.Validate(req); err != nil {
		h.writeError(w, r, err)
		return
	}

	doc, err := h.service.Rename(r.Context(), slug, req.Name)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, doc)
}

// Delete handles DELETE /delete-{kind}/{slug}.
func (h *ResourceHandler[T, P]) Delete(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	deleted, err := h.service.Delete(r.Context(), slug)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if !deleted {
		h.writeError(w, r, apperrors.NotFound(h.kind, slug))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ResourceHandler[T, P]) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validator.ValidationError
	if errors.As(err, &verr) {
		httputil.WriteValidationError(w, verr)
		return
	}

	if apperrors.HTTPStatus(err) >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed",
			slog.String("kind", h.kind),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}
	httputil.WriteError(w, err)
}
