package transforms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/app-functions-sdk-go/models"
)

func TestAddTags(t *testing.T) {
	event := newTestEvent()
	event.Tags = models.Tags{"GatewayId": "old", "Keep": "me"}

	ok, result := NewTags(map[string]any{"GatewayId": "HoustonStore000123", "Latitude": "29.630771"}).
		AddTags(newTestContext(t), event)
	require.True(t, ok)

	tagged := result.(models.Event)
	assert.Equal(t, models.Tags{
		"GatewayId": "HoustonStore000123",
		"Latitude":  "29.630771",
		"Keep":      "me",
	}, tagged.Tags)
	assert.Equal(t, "old", event.Tags["GatewayId"])
}

func TestAddTags_NoTags(t *testing.T) {
	event := newTestEvent()
	ok, result := NewTags(nil).AddTags(newTestContext(t), event)
	require.True(t, ok)
	assert.Equal(t, event, result)
}

func TestAddTags_Errors(t *testing.T) {
	ok, result := NewTags(map[string]any{"a": "b"}).AddTags(newTestContext(t), nil)
	assert.False(t, ok)
	assert.ErrorIs(t, result.(error), ErrNoData)

	ok, result = NewTags(map[string]any{"a": "b"}).AddTags(newTestContext(t), 42)
	assert.False(t, ok)
	assert.ErrorIs(t, result.(error), ErrUnexpectedType)
}
