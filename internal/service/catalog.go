package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ahmedwebmail/online-shop/internal/domain"
	"github.com/ahmedwebmail/online-shop/internal/event"
	"github.com/ahmedwebmail/online-shop/internal/repository"
	apperrors "github.com/ahmedwebmail/online-shop/pkg/errors"
	slugify "github.com/ahmedwebmail/online-shop/pkg/slug"
)

// CreateInput holds the parameters for creating a catalog resource.
// Logo only applies to brands; other kinds ignore it.
type CreateInput struct {
	Name string
	Logo *string
}

// CatalogService implements the business logic shared by slug-addressed
// catalog resources. One instance serves one kind (brand, category).
type CatalogService[T any, P domain.DocumentPtr[T]] struct {
	kind      string
	repo      repository.ResourceRepository[T, P]
	publisher event.Publisher
	newDoc    func(name, slug string, logo *string) P
	logger    *slog.Logger
}

// NewCatalogService creates a service for one resource kind. newDoc builds
// a fresh document from a validated name and derived slug.
func NewCatalogService[T any, P domain.DocumentPtr[T]](
	kind string,
	repo repository.ResourceRepository[T, P],
	publisher event.Publisher,
	newDoc func(name, slug string, logo *string) P,
	logger *slog.Logger,
) *CatalogService[T, P] {
	return &CatalogService[T, P]{
		kind:      kind,
		repo:      repo,
		publisher: publisher,
		newDoc:    newDoc,
		logger:    logger,
	}
}

// NewBrandService builds the brand-kind service.
func NewBrandService(
	repo repository.ResourceRepository[domain.Brand, *domain.Brand],
	publisher event.Publisher,
	logger *slog.Logger,
) *CatalogService[domain.Brand, *domain.Brand] {
	return NewCatalogService(domain.KindBrand, repo, publisher,
		func(name, slug string, logo *string) *domain.Brand {
			return domain.NewBrand(name, slug, logo)
		}, logger)
}

// NewCategoryService builds the category-kind service.
func NewCategoryService(
	repo repository.ResourceRepository[domain.Category, *domain.Category],
	publisher event.Publisher,
	logger *slog.Logger,
) *CatalogService[domain.Category, *domain.Category] {
	return NewCatalogService(domain.KindCategory, repo, publisher,
		func(name, slug string, _ *string) *domain.Category {
			return domain.NewCategory(name, slug)
		}, logger)
}

// Create validates the name, derives the slug, and stores a new document.
// The returned document carries the assigned ID and timestamps.
func (s *CatalogService[T, P]) Create(ctx context.Context, input CreateInput) (P, error) {
	var zero P

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return zero, apperrors.InvalidInput(s.kind + " name is required")
	}

	slug := slugify.Generate(name)
	if slug == "" {
		return zero, apperrors.InvalidInput(s.kind + " name must contain at least one letter or digit")
	}

	doc := s.newDoc(name, slug, input.Logo)
	if err := s.repo.Insert(ctx, doc); err != nil {
		return zero, err
	}

	s.publish(ctx, func() error { return s.publisher.PublishCreated(ctx, s.kind, doc) })

	s.logger.InfoContext(ctx, "resource created",
		slog.String("kind", s.kind),
		slog.String("slug", slug),
	)
	return doc, nil
}

// List returns every document of this kind.
func (s *CatalogService[T, P]) List(ctx context.Context) ([]T, error) {
	return s.repo.FindAll(ctx)
}

// GetBySlug retrieves a single document by slug.
func (s *CatalogService[T, P]) GetBySlug(ctx context.Context, slug string) (P, error) {
	return s.repo.FindBySlug(ctx, slug)
}

// Rename changes the name of the document addressed by slug and re-derives
// its slug. The returned document reflects the new identity.
func (s *CatalogService[T, P]) Rename(ctx context.Context, slug, newName string) (P, error) {
	var zero P

	name := strings.TrimSpace(newName)
	if name == "" {
		return zero, apperrors.InvalidInput(s.kind + " name is required")
	}

	newSlug := slugify.Generate(name)
	if newSlug == "" {
		return zero, apperrors.InvalidInput(s.kind + " name must contain at least one letter or digit")
	}

	matched, err := s.repo.Rename(ctx, slug, name, newSlug)
	if err != nil {
		return zero, err
	}
	if !matched {
		return zero, apperrors.NotFound(s.kind, slug)
	}

	doc, err := s.repo.FindBySlug(ctx, newSlug)
	if err != nil {
		return zero, err
	}

	s.publish(ctx, func() error { return s.publisher.PublishRenamed(ctx, s.kind, slug, doc) })

	s.logger.InfoContext(ctx, "resource renamed",
		slog.String("kind", s.kind),
		slog.String("old_slug", slug),
		slog.String("slug", newSlug),
	)
	return doc, nil
}

// Delete removes the document addressed by slug. Returns false when no
// document matched.
func (s *CatalogService[T, P]) Delete(ctx context.Context, slug string) (bool, error) {
	deleted, err := s.repo.DeleteBySlug(ctx, slug)
	if err != nil || !deleted {
		return deleted, err
	}

	s.publish(ctx, func() error { return s.publisher.PublishDeleted(ctx, s.kind, slug) })

	s.logger.InfoContext(ctx, "resource deleted",
		slog.String("kind", s.kind),
		slog.String("slug", slug),
	)
	return true, nil
}

// publish runs fn and logs failures. Event delivery is best effort; the
// write has already been committed.
func (s *CatalogService[T, P]) publish(ctx context.Context, fn func() error) {
	if s.publisher == nil {
		return
	}
	if err := fn(); err != nil {
		s.logger.WarnContext(ctx, "event publish failed",
			slog.String("kind", s.kind),
			slog.String("error", err.Error()),
		)
	}
}
