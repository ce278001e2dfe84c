package event

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopic(t *testing.T) {
	assert.Equal(t, "ecommerce.brand.created", Topic("brand", ActionCreated))
	assert.Equal(t, "ecommerce.brand.renamed", Topic("brand", ActionRenamed))
	assert.Equal(t, "ecommerce.category.deleted", Topic("category", ActionDeleted))
}

func TestRenamedData_CarriesOldSlug(t *testing.T) {
	data, err := json.Marshal(RenamedData{
		ID:      "64f1a2",
		Name:    "Sony Corp",
		Slug:    "sony-corp",
		OldSlug: "sony",
	})
	require.NoError(t, err)

	var out map[string]string
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "sony", out["old_slug"])
	assert.Equal(t, "sony-corp", out["slug"])
}
