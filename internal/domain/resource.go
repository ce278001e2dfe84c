package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Resource holds the fields shared by every slug-addressed catalog document.
// The slug is derived from the name and acts as the public identifier; the
// Mongo ObjectID stays internal.
type Resource struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Slug      string             `bson:"slug" json:"slug"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updated_at"`
}

// Document is the accessor/mutator surface the generic repository and service
// layers need from a catalog document.
type Document interface {
	ResourceID() primitive.ObjectID
	ResourceName() string
	ResourceSlug() string
	SetID(primitive.ObjectID)
	SetNameSlug(name, slug string)
	Touch(now time.Time)
}

// DocumentPtr constrains a pointer to a concrete document type. The pointer
// form lets generic code call the mutating methods on decoded values.
type DocumentPtr[T any] interface {
	*T
	Document
}

func (r *Resource) ResourceID() primitive.ObjectID { return r.ID }
func (r *Resource) ResourceName() string           { return r.Name }
func (r *Resource) ResourceSlug() string           { return r.Slug }

func (r *Resource) SetID(id primitive.ObjectID) { r.ID = id }

func (r *Resource) SetNameSlug(name, slug string) {
	r.Name = name
	r.Slug = slug
}

// Touch stamps UpdatedAt, and CreatedAt too if the document is new.
func (r *Resource) Touch(now time.Time) {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now
}

// Brand is a product manufacturer or seller label.
type Brand struct {
	Resource `bson:",inline"`
	Logo     *string `bson:"logo,omitempty" json:"logo,omitempty"`
}

// Category groups products for browsing.
type Category struct {
	Resource `bson:",inline"`
}

// NewBrand builds a Brand with the given name and derived slug.
func NewBrand(name, slug string, logo *string) *Brand {
	return &Brand{
		Resource: Resource{Name: name, Slug: slug},
		Logo:     logo,
	}
}

// NewCategory builds a Category with the given name and derived slug.
func NewCategory(name, slug string) *Category {
	return &Category{
		Resource: Resource{Name: name, Slug: slug},
	}
}

// Kind names used for collections, cache keys, events, and error messages.
const (
	KindBrand    = "brand"
	KindCategory = "category"
)
