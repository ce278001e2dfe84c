package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brandPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func TestNewEvent(t *testing.T) {
	event, err := NewEvent(
		"ecommerce.brand.created",
		"sony",
		"brand",
		"catalog-service",
		brandPayload{ID: "64f1", Name: "Sony", Slug: "sony"},
	)
	require.NoError(t, err)

	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "ecommerce.brand.created", event.EventType)
	assert.Equal(t, "sony", event.AggregateID)
	assert.Equal(t, "brand", event.AggregateType)
	assert.Equal(t, 1, event.Version)
	assert.Equal(t, "catalog-service", event.Source)
	assert.WithinDuration(t, time.Now().UTC(), event.Timestamp, 5*time.Second)
}

func TestEvent_RoundTrip(t *testing.T) {
	event, err := NewEvent(
		"ecommerce.category.renamed",
		"home-appliances",
		"category",
		"catalog-service",
		map[string]string{"old_slug": "appliances", "slug": "home-appliances"},
	)
	require.NoError(t, err)
	event.WithCorrelationID("corr-1").WithMetadata("region", "eu")

	data, err := event.Marshal()
	require.NoError(t, err)

	decoded, err := UnmarshalEvent(data)
	require.NoError(t, err)
	assert.Equal(t, event.EventID, decoded.EventID)
	assert.Equal(t, "corr-1", decoded.CorrelationID)
	assert.Equal(t, "eu", decoded.Metadata["region"])

	var payload map[string]string
	require.NoError(t, decoded.UnmarshalData(&payload))
	assert.Equal(t, "appliances", payload["old_slug"])
	assert.Equal(t, "home-appliances", payload["slug"])
}

func TestNewEvent_UnmarshalableData(t *testing.T) {
	_, err := NewEvent("ecommerce.brand.created", "sony", "brand", "catalog-service", make(chan int))
	assert.Error(t, err)
}

func TestEvent_UniqueEventIDs(t *testing.T) {
	a, err := NewEvent("ecommerce.brand.deleted", "sony", "brand", "catalog-service", nil)
	require.NoError(t, err)
	b, err := NewEvent("ecommerce.brand.deleted", "sony", "brand", "catalog-service", nil)
	require.NoError(t, err)
	assert.NotEqual(t, a.EventID, b.EventID)
}
