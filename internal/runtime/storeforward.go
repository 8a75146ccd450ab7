package runtime

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MKhiriev/app-functions-sdk-go/internal/appfunction"
	"github.com/MKhiriev/app-functions-sdk-go/internal/container"
	"github.com/MKhiriev/app-functions-sdk-go/internal/metrics"
	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

const (
	minRetryInterval = time.Second
	storeTimeout     = 30 * time.Second
)

// StoreForward persists the data of failed exports and retries it later.
type StoreForward struct {
	runtime    *FunctionsPipelineRuntime
	dic        *container.Container
	log        *logger.Logger
	serviceKey string

	dataCount       atomic.Int64
	retryInProgress atomic.Bool
}

func newStoreForward(runtime *FunctionsPipelineRuntime, dic *container.Container, serviceKey string) *StoreForward {
	sf := &StoreForward{
		runtime:    runtime,
		dic:        dic,
		log:        dic.Logger,
		serviceKey: serviceKey,
	}

	if dic.MetricsManager == nil {
		sf.log.Error().Str("metric", metrics.StoreForwardQueueSizeName).Msg("unable to register metric: metrics manager is not available")
		return sf
	}

	queueSize := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: metrics.StoreForwardQueueSizeName,
		Help: "Number of items stored for a later export retry",
	}, func() float64 { return float64(sf.dataCount.Load()) })

	if err := dic.MetricsManager.Register(metrics.StoreForwardQueueSizeName, queueSize, nil); err != nil {
		sf.log.Error().Err(err).Str("metric", metrics.StoreForwardQueueSizeName).Msg("unable to register metric, it will not be reported")
	}
	return sf
}

// QueueSize is the number of items waiting for a retry.
func (sf *StoreForward) QueueSize() int64 {
	return sf.dataCount.Load()
}

// StartStoreAndForwardRetryLoop retries the stored data every
// Writable.StoreAndForward.RetryInterval until appCtx or sfCtx is done.
func (sf *StoreForward) StartStoreAndForwardRetryLoop(appCtx context.Context, appWg *sync.WaitGroup,
	sfCtx context.Context, sfWg *sync.WaitGroup) {
	appWg.Add(1)
	sfWg.Add(1)

	cfg := sf.dic.Config().Writable.StoreAndForward

	if client := sf.dic.StoreClient; client != nil {
		ctx, cancel := context.WithTimeout(appCtx, storeTimeout)
		items, err := client.RetrieveFromStore(ctx, sf.serviceKey)
		cancel()
		if err != nil {
			sf.log.Err(err).Msg("unable to initialize store and forward data count")
		} else {
			sf.dataCount.Store(int64(len(items)))
		}
	}

	interval, err := time.ParseDuration(cfg.RetryInterval)
	if err != nil {
		sf.log.Warn().Err(err).Str("retryInterval", cfg.RetryInterval).Msg("store and forward RetryInterval failed to parse, using minimum")
		interval = minRetryInterval
	}
	if interval < minRetryInterval {
		sf.log.Warn().Dur("retryInterval", interval).Msg("store and forward RetryInterval is less than the allowed minimum, using minimum")
		interval = minRetryInterval
	}

	if cfg.MaxRetryCount < 0 {
		sf.log.Warn().Int("maxRetryCount", cfg.MaxRetryCount).Msg("store and forward MaxRetryCount can not be less than 0, using 1")
	}

	sf.log.Info().
		Dur("retryInterval", interval).
		Int("maxRetryCount", maxRetryCount(cfg.MaxRetryCount)).
		Int64("stored", sf.dataCount.Load()).
		Msg("starting store and forward retry loop")

	go func() {
		defer appWg.Done()
		defer sfWg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-appCtx.Done():
				sf.log.Info().Msg("exiting store and forward retry loop")
				return
			case <-sfCtx.Done():
				sf.log.Info().Msg("exiting store and forward retry loop")
				return
			case <-ticker.C:
				sf.RetryStoredData(sfCtx)
			}
		}
	}()
}

// StoreForLaterRetry stores payload with the values of appContext so the
// pipeline can resume at position.
func (sf *StoreForward) StoreForLaterRetry(payload []byte, appContext interfaces.AppFunctionContext,
	pipeline *interfaces.FunctionPipeline, position int) {
	log := appContext.LoggingClient()

	if !sf.dic.Config().Writable.StoreAndForward.Enabled {
		log.Error().Err(ErrStoreForwardDisabled).Str("pipeline", pipeline.Id).Msg("failed to store item for later retry")
		return
	}

	client := sf.dic.StoreClient
	if client == nil {
		log.Error().Err(ErrNoStoreClient).Str("pipeline", pipeline.Id).Msg("failed to store item for later retry")
		return
	}

	item := models.NewStoredObject(sf.serviceKey, payload, pipeline.Id, position, pipeline.Hash, appContext.GetAllValues())
	item.CorrelationID = appContext.CorrelationID()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(appContext.Context()), storeTimeout)
	defer cancel()

	if _, err := client.Store(ctx, item); err != nil {
		log.Err(err).Str("pipeline", pipeline.Id).Msg("failed to store item for later retry")
		return
	}

	log.Trace().Str("pipeline", pipeline.Id).Int("position", position).Msg("stored data for later retry")
	sf.dataCount.Add(1)
}

// RetryStoredData retries every stored item of the service. It returns at
// once when a retry is already running.
func (sf *StoreForward) RetryStoredData(ctx context.Context) {
	if !sf.retryInProgress.CompareAndSwap(false, true) {
		return
	}
	defer sf.retryInProgress.Store(false)

	client := sf.dic.StoreClient
	if client == nil {
		sf.log.Error().Err(ErrNoStoreClient).Msg("unable to retry stored data")
		return
	}

	items, err := client.RetrieveFromStore(ctx, sf.serviceKey)
	if err != nil {
		sf.log.Err(err).Msg("unable to load store and forward items")
		return
	}

	sf.log.Debug().Int("items", len(items)).Msg("stored data items found for retrying")
	if len(items) == 0 {
		return
	}

	toRemove, toUpdate := sf.processRetryItems(ctx, items)
	sf.log.Debug().Int("remove", len(toRemove)).Int("update", len(toUpdate)).Msg("stored data items processed")

	for _, item := range toRemove {
		if err = client.RemoveFromStore(ctx, item); err != nil {
			sf.log.Err(err).Str("pipeline", item.PipelineID).Str("id", item.ID).Msg("unable to remove stored data item")
		}
	}

	for _, item := range toUpdate {
		if err = client.Update(ctx, item); err != nil {
			sf.log.Err(err).Str("pipeline", item.PipelineID).Str("id", item.ID).Msg("unable to update stored data item")
		}
	}

	sf.dataCount.Add(-int64(len(toRemove)))
}

// TriggerRetry retries the stored data when there is any and store and
// forward is enabled.
func (sf *StoreForward) TriggerRetry() {
	if sf.dataCount.Load() <= 0 {
		return
	}

	if !sf.dic.Config().Writable.StoreAndForward.Enabled {
		sf.log.Debug().Msg("store and forward not enabled, skipping retry of failed data")
		return
	}

	sf.log.Debug().Msg("triggering store and forward retry of failed data")
	sf.RetryStoredData(context.Background())
}

// processRetryItems splits items into those to remove and those to keep
// with an incremented retry count.
func (sf *StoreForward) processRetryItems(ctx context.Context, items []models.StoredObject) ([]models.StoredObject, []models.StoredObject) {
	maxRetries := maxRetryCount(sf.dic.Config().Writable.StoreAndForward.MaxRetryCount)

	var toRemove, toUpdate []models.StoredObject
	for _, item := range items {
		log := sf.log.WithCorrelationID(item.CorrelationID)

		pipeline := sf.runtime.GetPipelineById(item.PipelineID)
		if pipeline == nil {
			log.Error().Str("pipeline", item.PipelineID).Msg("stored data item's pipeline no longer exists, removing item")
			toRemove = append(toRemove, item)
			continue
		}

		if item.Version != pipeline.Hash {
			log.Error().Str("pipeline", item.PipelineID).Msg("stored data item's version doesn't match the pipeline's version, removing item")
			toRemove = append(toRemove, item)
			continue
		}

		if sf.retryExportFunction(ctx, item, pipeline) {
			log.Trace().Str("pipeline", item.PipelineID).Msg("retry successful, removing item")
			toRemove = append(toRemove, item)
			continue
		}

		item.RetryCount++
		if maxRetries == 0 || item.RetryCount < maxRetries {
			log.Trace().Str("pipeline", item.PipelineID).Int("retries", item.RetryCount).Msg("export retry failed, incrementing retry count")
			toUpdate = append(toUpdate, item)
			continue
		}

		log.Trace().Str("pipeline", item.PipelineID).Int("retries", item.RetryCount).Msg("max retries exceeded, removing item")
		toRemove = append(toRemove, item)
	}

	return toRemove, toUpdate
}

func (sf *StoreForward) retryExportFunction(ctx context.Context, item models.StoredObject, pipeline *interfaces.FunctionPipeline) bool {
	appContext := appfunction.NewContextWithParent(ctx, item.CorrelationID, sf.dic, "")
	for key, value := range item.ContextData {
		appContext.AddValue(key, value)
	}

	appContext.LoggingClient().Trace().Str("pipeline", item.PipelineID).Msg("retrying stored data")
	return sf.runtime.ExecutePipeline(appContext, item.Payload, pipeline, item.PipelinePosition, true) == nil
}

// maxRetryCount treats negative values as 1. 0 means unlimited.
func maxRetryCount(configured int) int {
	if configured < 0 {
		return 1
	}
	return configured
}
