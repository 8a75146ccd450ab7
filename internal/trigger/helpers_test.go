package trigger

import (
	"github.com/MKhiriev/app-functions-sdk-go/internal/config"
	"github.com/MKhiriev/app-functions-sdk-go/internal/container"
	"github.com/MKhiriev/app-functions-sdk-go/internal/metrics"
	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

func newTestContainer(trigger config.TriggerInfo) *container.Container {
	cfg := &config.StructuredConfig{
		MessageBus: config.MessageBusInfo{BaseTopicPrefix: models.DefaultBaseTopic},
		Trigger:    trigger,
	}

	dic := container.NewContainer(cfg, logger.Nop())
	dic.MetricsManager = metrics.NewManager(logger.Nop())
	return dic
}

// respondWith returns a message handler that sets data as the response and
// calls the response handler.
func respondWith(data []byte, values map[string]string, received chan<- models.MessageEnvelope) interfaces.TriggerMessageHandler {
	return func(ctx interfaces.AppFunctionContext, envelope models.MessageEnvelope, handler interfaces.PipelineResponseHandler) error {
		if received != nil {
			received <- envelope
		}
		for k, v := range values {
			ctx.AddValue(k, v)
		}
		ctx.SetResponseData(data)
		return handler(ctx, &interfaces.FunctionPipeline{Id: "test-pipeline"})
	}
}
