package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ahmedwebmail/online-shop/internal/domain"
	apperrors "github.com/ahmedwebmail/online-shop/pkg/errors"
)

// Collection is a MongoDB-backed repository for a slug-addressed resource
// type. One instance manages one collection ("brands", "categories").
type Collection[T any, P domain.DocumentPtr[T]] struct {
	coll *mongo.Collection
	kind string
}

// NewCollection builds a repository over the named collection.
func NewCollection[T any, P domain.DocumentPtr[T]](db *mongo.Database, name, kind string) *Collection[T, P] {
	return &Collection[T, P]{
		coll: db.Collection(name),
		kind: kind,
	}
}

// EnsureIndexes creates the unique name index and the slug lookup index.
// Safe to call on every startup; existing indexes are left alone.
func (c *Collection[T, P]) EnsureIndexes(ctx context.Context) error {
	_, err := c.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "slug", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("create %s indexes: %w", c.kind, err)
	}
	return nil
}

// Insert stores a new document, stamping timestamps and assigning the ID.
func (c *Collection[T, P]) Insert(ctx context.Context, doc P) error {
	doc.Touch(time.Now().UTC())

	res, err := c.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.AlreadyExists(c.kind, "name", doc.ResourceName())
		}
		return apperrors.Wrap(err, fmt.Sprintf("insert %s", c.kind))
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.SetID(id)
	}
	return nil
}

// FindBySlug retrieves the document addressed by slug.
func (c *Collection[T, P]) FindBySlug(ctx context.Context, slug string) (P, error) {
	var doc T
	err := c.coll.FindOne(ctx, bson.M{"slug": slug}).Decode(&doc)
	if err != nil {
		var zero P
		if err == mongo.ErrNoDocuments {
			return zero, apperrors.NotFound(c.kind, slug)
		}
		return zero, apperrors.Wrap(err, fmt.Sprintf("find %s by slug", c.kind))
	}
	return P(&doc), nil
}

// FindAll returns every document in the collection, oldest first.
func (c *Collection[T, P]) FindAll(ctx context.Context) ([]T, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := c.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperrors.Wrap(err, fmt.Sprintf("list %ss", c.kind))
	}
	defer cursor.Close(ctx)

	docs := make([]T, 0)
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, apperrors.Wrap(err, fmt.Sprintf("decode %ss", c.kind))
	}
	return docs, nil
}

// Rename updates name and slug on the document currently addressed by slug.
func (c *Collection[T, P]) Rename(ctx context.Context, slug, newName, newSlug string) (bool, error) {
	update := bson.M{"$set": bson.M{
		"name":      newName,
		"slug":      newSlug,
		"updatedAt": time.Now().UTC(),
	}}

	res, err := c.coll.UpdateOne(ctx, bson.M{"slug": slug}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, apperrors.AlreadyExists(c.kind, "name", newName)
		}
		return false, apperrors.Wrap(err, fmt.Sprintf("rename %s", c.kind))
	}
	return res.MatchedCount > 0, nil
}

// DeleteBySlug removes the document addressed by slug.
func (c *Collection[T, P]) DeleteBySlug(ctx context.Context, slug string) (bool, error) {
	res, err := c.coll.DeleteOne(ctx, bson.M{"slug": slug})
	if err != nil {
		return false, apperrors.Wrap(err, fmt.Sprintf("delete %s", c.kind))
	}
	return res.DeletedCount > 0, nil
}
