package runtime

import (
	"errors"
	"strings"

	"github.com/MKhiriev/app-functions-sdk-go/internal/appfunction"
	"github.com/MKhiriev/app-functions-sdk-go/internal/config"
	"github.com/MKhiriev/app-functions-sdk-go/internal/container"
	"github.com/MKhiriev/app-functions-sdk-go/internal/metrics"
	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

const testServiceKey = "app-test"

var errExport = errors.New("export failed")

func newTestContainer(storeAndForward bool) *container.Container {
	cfg := &config.StructuredConfig{
		Writable: config.WritableInfo{
			StoreAndForward: config.StoreAndForwardInfo{
				Enabled:       storeAndForward,
				RetryInterval: "1s",
				MaxRetryCount: 3,
			},
		},
		MessageBus: config.MessageBusInfo{BaseTopicPrefix: models.DefaultBaseTopic},
	}

	dic := container.NewContainer(cfg, logger.Nop())
	dic.MetricsManager = metrics.NewManager(logger.Nop())
	return dic
}

func newTestRuntime(storeAndForward bool) (*FunctionsPipelineRuntime, *container.Container) {
	dic := newTestContainer(storeAndForward)
	return NewFunctionsPipelineRuntime(testServiceKey, nil, dic), dic
}

func newTestContext(dic *container.Container) *appfunction.Context {
	return appfunction.NewContext("corr-1", dic, models.ContentTypeJSON)
}

func upperCase(_ interfaces.AppFunctionContext, data any) (bool, any) {
	s, ok := data.(string)
	if !ok {
		return false, errors.New("not a string")
	}
	return true, strings.ToUpper(s)
}

func appendSuffix(_ interfaces.AppFunctionContext, data any) (bool, any) {
	return true, data.(string) + "-done"
}

func stopQuietly(_ interfaces.AppFunctionContext, _ any) (bool, any) {
	return false, nil
}

func passThrough(_ interfaces.AppFunctionContext, data any) (bool, any) {
	return true, data
}

// failingExport fails and asks for its input to be stored for a retry.
// Retried data arrives as []byte.
func failingExport(ctx interfaces.AppFunctionContext, data any) (bool, any) {
	switch v := data.(type) {
	case string:
		ctx.SetRetryData([]byte(v))
	case []byte:
		ctx.SetRetryData(v)
	}
	return false, errExport
}

// succeedingExport triggers a retry of previously failed data.
func succeedingExport(ctx interfaces.AppFunctionContext, data any) (bool, any) {
	ctx.SetResponseData([]byte(data.(string)))
	ctx.TriggerRetryFailedData()
	return true, data
}
