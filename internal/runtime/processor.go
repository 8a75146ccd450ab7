package runtime

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/MKhiriev/app-functions-sdk-go/internal/appfunction"
	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

// MessageProcessor hands envelopes received by a trigger to the runtime.
type MessageProcessor struct {
	runtime *FunctionsPipelineRuntime
	log     *logger.Logger
}

func NewMessageProcessor(runtime *FunctionsPipelineRuntime, log *logger.Logger) *MessageProcessor {
	return &MessageProcessor{runtime: runtime, log: log}
}

// MessageReceived runs every pipeline matching the received topic
// concurrently. responseHandler is called after each successful pipeline.
func (p *MessageProcessor) MessageReceived(ctx interfaces.AppFunctionContext, envelope models.MessageEnvelope,
	responseHandler interfaces.PipelineResponseHandler) error {
	appContext, ok := ctx.(*appfunction.Context)
	if !ok {
		return fmt.Errorf("%w: %T", ErrInvalidContext, ctx)
	}

	log := p.log.WithCorrelationID(envelope.CorrelationID)
	log.Debug().Str("topic", envelope.ReceivedTopic).Str("contentType", envelope.ContentType).Msg("trigger received message")

	pipelines := p.runtime.GetMatchingPipelines(envelope.ReceivedTopic)
	if len(pipelines) == 0 {
		log.Debug().Str("topic", envelope.ReceivedTopic).Msg("no pipelines matched the received topic")
		return nil
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	appendErr := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		errs = append(errs, err)
	}

	for _, pipeline := range pipelines {
		wg.Add(1)
		go func(pipeline *interfaces.FunctionPipeline) {
			defer wg.Done()

			pipelineContext := appContext.Copy()
			data, err := p.runtime.DecodeMessage(pipelineContext, envelope)
			if err != nil {
				appendErr(fmt.Errorf("pipeline '%s': %w", pipeline.Id, err))
				return
			}

			if msgErr := p.runtime.ProcessMessage(pipelineContext, data, pipeline); msgErr != nil {
				appendErr(msgErr)
				return
			}

			if responseHandler == nil {
				return
			}
			if err = responseHandler(pipelineContext, pipeline); err != nil {
				log.Err(err).Str("pipeline", pipeline.Id).Msg("failed to handle pipeline response")
				appendErr(fmt.Errorf("pipeline '%s' response: %w", pipeline.Id, err))
			}
		}(pipeline)
	}

	wg.Wait()
	return errors.Join(errs...)
}

// ReceivedRequest runs the default pipeline for a message received over
// HTTP. Pipeline failures are returned as *MessageError.
func (p *MessageProcessor) ReceivedRequest(ctx interfaces.AppFunctionContext, envelope models.MessageEnvelope) error {
	appContext, ok := ctx.(*appfunction.Context)
	if !ok {
		return fmt.Errorf("%w: %T", ErrInvalidContext, ctx)
	}

	pipeline := p.runtime.GetPipelineById(interfaces.DefaultPipelineId)
	if pipeline == nil {
		return &MessageError{
			Err:       fmt.Errorf("%w: Id='%s'", ErrPipelineNotFound, interfaces.DefaultPipelineId),
			ErrorCode: http.StatusInternalServerError,
		}
	}

	data, err := p.runtime.DecodeMessage(appContext, envelope)
	if err != nil {
		return err
	}

	if msgErr := p.runtime.ProcessMessage(appContext, data, pipeline); msgErr != nil {
		return msgErr
	}
	return nil
}
