package appsdk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/app-functions-sdk-go/models"
)

const configYAML = `
Service:
  Host: localhost
  Port: 59799
MessageBus:
  Disabled: true
Trigger:
  Type: http
`

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	original := os.Args
	os.Args = append([]string{"app-test"}, args...)
	t.Cleanup(func() { os.Args = original })
}

func TestNewAppService(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configuration.yaml"), []byte(configYAML), 0o600))
	withArgs(t, "-cd", dir)

	service, ok := NewAppService("app-test")
	require.True(t, ok)
	require.NotNil(t, service)
	defer service.Stop()

	ctx := service.BuildContext("id", models.ContentTypeJSON)
	assert.Equal(t, "id", ctx.CorrelationID())
}

func TestNewAppServiceWithTargetType_Fails(t *testing.T) {
	withArgs(t, "-cd", t.TempDir())

	service, ok := NewAppServiceWithTargetType("app-test", &[]byte{})
	assert.False(t, ok)
	assert.Nil(t, service)
}

func TestOrNA(t *testing.T) {
	assert.Equal(t, "N/A", orNA(""))
	assert.Equal(t, "1.2.3", orNA("1.2.3"))
}
