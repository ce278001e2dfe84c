package repository

import (
	"context"

	"github.com/ahmedwebmail/online-shop/internal/domain"
)

// ResourceRepository defines persistence operations for a slug-addressed
// catalog resource. T is the concrete document type (domain.Brand,
// domain.Category) and P its pointer form.
type ResourceRepository[T any, P domain.DocumentPtr[T]] interface {
	// Insert stores a new document. The implementation assigns the ID and
	// timestamps on the passed document. Returns ErrAlreadyExists when the
	// name is already taken.
	Insert(ctx context.Context, doc P) error

	// FindBySlug retrieves a document by its slug. Returns ErrNotFound when
	// no document matches.
	FindBySlug(ctx context.Context, slug string) (P, error)

	// FindAll returns every document in the collection.
	FindAll(ctx context.Context) ([]T, error)

	// Rename updates the name and slug of the document currently addressed
	// by slug. Returns false when no document matched.
	Rename(ctx context.Context, slug, newName, newSlug string) (bool, error)

	// DeleteBySlug removes the document addressed by slug. Returns false
	// when no document matched.
	DeleteBySlug(ctx context.Context, slug string) (bool, error)
}
