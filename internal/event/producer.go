package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ahmedwebmail/online-shop/internal/domain"
	pkgkafka "github.com/ahmedwebmail/online-shop/pkg/kafka"
)

// Source identifier for events originating from the catalog service.
const SourceCatalogService = "catalog-service"

// Topic returns the Kafka topic for the given resource kind and action,
// e.g. "ecommerce.brand.created".
func Topic(kind, action string) string {
	return fmt.Sprintf("ecommerce.%s.%s", kind, action)
}

// Event actions for catalog resources.
const (
	ActionCreated = "created"
	ActionRenamed = "renamed"
	ActionDeleted = "deleted"
)

// CreatedData is the payload for a created event.
type CreatedData struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// RenamedData is the payload for a renamed event. OldSlug lets consumers
// re-key their projections.
type RenamedData struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	OldSlug string `json:"old_slug"`
}

// DeletedData is the payload for a deleted event.
type DeletedData struct {
	Slug string `json:"slug"`
}

// Publisher emits catalog domain events. The service layer treats publishing
// as best effort; callers may ignore returned errors after logging.
type Publisher interface {
	PublishCreated(ctx context.Context, kind string, doc domain.Document) error
	PublishRenamed(ctx context.Context, kind, oldSlug string, doc domain.Document) error
	PublishDeleted(ctx context.Context, kind, slug string) error
}

// Producer publishes catalog domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the catalog service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCreated publishes a {kind}.created event keyed by the new slug.
func (p *Producer) PublishCreated(ctx context.Context, kind string, doc domain.Document) error {
	topic := Topic(kind, ActionCreated)
	data := CreatedData{
		ID:   doc.ResourceID().Hex(),
		Name: doc.ResourceName(),
		Slug: doc.ResourceSlug(),
	}

	evt, err := pkgkafka.NewEvent(topic, doc.ResourceSlug(), kind, SourceCatalogService, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.kafka.Publish(ctx, topic, evt); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published created event",
		slog.String("kind", kind),
		slog.String("slug", doc.ResourceSlug()),
	)
	return nil
}

// PublishRenamed publishes a {kind}.renamed event keyed by the new slug.
func (p *Producer) PublishRenamed(ctx context.Context, kind, oldSlug string, doc domain.Document) error {
	topic := Topic(kind, ActionRenamed)
	data := RenamedData{
		ID:      doc.ResourceID().Hex(),
		Name:    doc.ResourceName(),
		Slug:    doc.ResourceSlug(),
		OldSlug: oldSlug,
	}

	evt, err := pkgkafka.NewEvent(topic, doc.ResourceSlug(), kind, SourceCatalogService, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.kafka.Publish(ctx, topic, evt); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published renamed event",
		slog.String("kind", kind),
		slog.String("old_slug", oldSlug),
		slog.String("slug", doc.ResourceSlug()),
	)
	return nil
}

// PublishDeleted publishes a {kind}.deleted event keyed by the removed slug.
func (p *Producer) PublishDeleted(ctx context.Context, kind, slug string) error {
	topic := Topic(kind, ActionDeleted)

	evt, err := pkgkafka.NewEvent(topic, slug, kind, SourceCatalogService, DeletedData{Slug: slug})
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.kafka.Publish(ctx, topic, evt); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published deleted event",
		slog.String("kind", kind),
		slog.String("slug", slug),
	)
	return nil
}
