package transforms

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/app-functions-sdk-go/internal/appfunction"
	"github.com/MKhiriev/app-functions-sdk-go/internal/config"
	"github.com/MKhiriev/app-functions-sdk-go/internal/container"
	"github.com/MKhiriev/app-functions-sdk-go/internal/metrics"
	"github.com/MKhiriev/app-functions-sdk-go/internal/secret"
	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

const (
	testProfile = "Random-Profile"
	testDevice  = "Random-Float-Device"
	testSource  = "Float32"
)

func newTestContainer(t *testing.T) *container.Container {
	t.Helper()

	secrets, err := secret.NewInsecureProvider(map[string]config.SecretData{
		"aes":  {SecretName: "aes", SecretData: map[string]string{"key": "aes-secret"}},
		"http": {SecretName: "http", SecretData: map[string]string{"token": "Bearer abc"}},
	}, logger.Nop())
	require.NoError(t, err)

	dic := container.NewContainer(&config.StructuredConfig{}, logger.Nop())
	dic.SecretProvider = secrets
	dic.MetricsManager = metrics.NewManager(logger.Nop())
	return dic
}

func newTestContext(t *testing.T) *appfunction.Context {
	t.Helper()
	ctx := appfunction.NewContext("corr-1", newTestContainer(t), models.ContentTypeJSON)
	ctx.AddValue(interfaces.PIPELINEID, "test-pipeline")
	return ctx
}

func newTestEvent() models.Event {
	event := models.NewEvent(testProfile, testDevice, testSource)
	event.AddBaseReading("Float32", models.ValueTypeFloat32, "1.5")
	event.AddBaseReading("Int8", models.ValueTypeInt8, "3")
	return event
}
