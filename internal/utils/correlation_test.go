package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCorrelationID(t *testing.T) {
	first, second := NewCorrelationID(), NewCorrelationID()

	parsed, err := uuid.Parse(first)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
	assert.NotEqual(t, first, second)
}

func TestCorrelationIDOrNew(t *testing.T) {
	assert.Equal(t, "corr-7", CorrelationIDOrNew("corr-7"))

	generated := CorrelationIDOrNew("")
	_, err := uuid.Parse(generated)
	assert.NoError(t, err)
}
