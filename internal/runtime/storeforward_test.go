package runtime

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/app-functions-sdk-go/internal/mock"
	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
)

func TestStoreForLaterRetry(t *testing.T) {
	ctrl := gomock.NewController(t)
	storeClient := mock.NewMockStoreClient(ctrl)

	r, dic := newTestRuntime(true)
	dic.StoreClient = storeClient
	require.NoError(t, r.AddFunctionsPipeline("p1", []string{"#"}, upperCase, failingExport))
	pipeline := r.GetPipelineById("p1")

	ctx := newTestContext(dic)
	ctx.AddValue(interfaces.DEVICENAME, "device1")

	storeClient.EXPECT().
		Store(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, o models.StoredObject) (string, error) {
			assert.Equal(t, testServiceKey, o.AppServiceKey)
			assert.Equal(t, []byte("HELLO"), o.Payload)
			assert.Equal(t, "p1", o.PipelineID)
			assert.Equal(t, 1, o.PipelinePosition)
			assert.Equal(t, pipeline.Hash, o.Version)
			assert.Equal(t, "corr-1", o.CorrelationID)
			assert.Equal(t, "device1", o.ContextData[interfaces.DEVICENAME])
			return "id-1", nil
		})

	msgErr := r.ProcessMessage(ctx, "hello", pipeline)
	require.NotNil(t, msgErr)
	assert.ErrorIs(t, msgErr, errExport)
	assert.Equal(t, int64(1), r.StoreForward.QueueSize())
}

func TestStoreForLaterRetry_NotStored(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		r, dic := newTestRuntime(false)
		dic.StoreClient = mock.NewMockStoreClient(ctrl)
		require.NoError(t, r.AddFunctionsPipeline("p1", []string{"#"}, failingExport))

		assert.NotNil(t, r.ProcessMessage(newTestContext(dic), "x", r.GetPipelineById("p1")))
		assert.Zero(t, r.StoreForward.QueueSize())
	})

	t.Run("store error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		storeClient := mock.NewMockStoreClient(ctrl)
		r, dic := newTestRuntime(true)
		dic.StoreClient = storeClient
		require.NoError(t, r.AddFunctionsPipeline("p1", []string{"#"}, failingExport))

		storeClient.EXPECT().Store(gomock.Any(), gomock.Any()).Return("", assert.AnError)

		assert.NotNil(t, r.ProcessMessage(newTestContext(dic), "x", r.GetPipelineById("p1")))
		assert.Zero(t, r.StoreForward.QueueSize())
	})

	t.Run("retry execution is not stored again", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		r, dic := newTestRuntime(true)
		dic.StoreClient = mock.NewMockStoreClient(ctrl)
		require.NoError(t, r.AddFunctionsPipeline("p1", []string{"#"}, failingExport))

		assert.NotNil(t, r.ExecutePipeline(newTestContext(dic), "x", r.GetPipelineById("p1"), 0, true))
	})
}

func TestRetryStoredData(t *testing.T) {
	ctrl := gomock.NewController(t)
	storeClient := mock.NewMockStoreClient(ctrl)

	r, dic := newTestRuntime(true)
	dic.StoreClient = storeClient
	require.NoError(t, r.AddFunctionsPipeline("ok", []string{"#"}, upperCase, passThrough))
	require.NoError(t, r.AddFunctionsPipeline("failing", []string{"#"}, upperCase, failingExport))

	okHash := r.GetPipelineById("ok").Hash
	failingHash := r.GetPipelineById("failing").Hash

	items := []models.StoredObject{
		{ID: "gone", PipelineID: "deleted", Version: okHash},
		{ID: "stale", PipelineID: "ok", Version: "old-hash"},
		{ID: "success", PipelineID: "ok", Version: okHash, Payload: []byte("A"), PipelinePosition: 1},
		{ID: "retry", PipelineID: "failing", Version: failingHash, Payload: []byte("B"), PipelinePosition: 1, RetryCount: 0},
		{ID: "exhausted", PipelineID: "failing", Version: failingHash, Payload: []byte("C"), PipelinePosition: 1, RetryCount: 2},
	}
	r.StoreForward.dataCount.Store(int64(len(items)))

	var removed []string
	storeClient.EXPECT().RetrieveFromStore(gomock.Any(), testServiceKey).Return(items, nil)
	storeClient.EXPECT().RemoveFromStore(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, o models.StoredObject) error {
			removed = append(removed, o.ID)
			return nil
		}).Times(4)
	storeClient.EXPECT().Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, o models.StoredObject) error {
			assert.Equal(t, "retry", o.ID)
			assert.Equal(t, 1, o.RetryCount)
			return nil
		})

	r.StoreForward.RetryStoredData(context.Background())

	assert.ElementsMatch(t, []string{"gone", "stale", "success", "exhausted"}, removed)
	assert.Equal(t, int64(1), r.StoreForward.QueueSize())
}

func TestRetryStoredData_UnlimitedRetries(t *testing.T) {
	ctrl := gomock.NewController(t)
	storeClient := mock.NewMockStoreClient(ctrl)

	r, dic := newTestRuntime(true)
	dic.StoreClient = storeClient
	cfg := *dic.Config()
	cfg.Writable.StoreAndForward.MaxRetryCount = 0
	dic.SetConfig(&cfg)

	require.NoError(t, r.AddFunctionsPipeline("failing", []string{"#"}, failingExport))
	item := models.StoredObject{ID: "x", PipelineID: "failing", Version: r.GetPipelineById("failing").Hash, Payload: []byte("x"), RetryCount: 100}

	storeClient.EXPECT().RetrieveFromStore(gomock.Any(), testServiceKey).Return([]models.StoredObject{item}, nil)
	storeClient.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

	r.StoreForward.RetryStoredData(context.Background())
}

func TestRetryStoredData_RetrieveError(t *testing.T) {
	ctrl := gomock.NewController(t)
	storeClient := mock.NewMockStoreClient(ctrl)

	r, dic := newTestRuntime(true)
	dic.StoreClient = storeClient
	r.StoreForward.dataCount.Store(2)

	storeClient.EXPECT().RetrieveFromStore(gomock.Any(), testServiceKey).Return(nil, assert.AnError)

	r.StoreForward.RetryStoredData(context.Background())
	assert.Equal(t, int64(2), r.StoreForward.QueueSize())
}

func TestTriggerRetry(t *testing.T) {
	t.Run("nothing stored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		r, dic := newTestRuntime(true)
		dic.StoreClient = mock.NewMockStoreClient(ctrl)

		r.StoreForward.TriggerRetry()
	})

	t.Run("disabled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		r, dic := newTestRuntime(false)
		dic.StoreClient = mock.NewMockStoreClient(ctrl)
		r.StoreForward.dataCount.Store(1)

		r.StoreForward.TriggerRetry()
	})

	t.Run("retries after a successful export", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		storeClient := mock.NewMockStoreClient(ctrl)
		r, dic := newTestRuntime(true)
		dic.StoreClient = storeClient
		r.StoreForward.dataCount.Store(1)

		require.NoError(t, r.AddFunctionsPipeline("p1", []string{"#"}, succeedingExport))

		done := make(chan struct{})
		storeClient.EXPECT().RetrieveFromStore(gomock.Any(), testServiceKey).
			DoAndReturn(func(context.Context, string) ([]models.StoredObject, error) {
				close(done)
				return nil, nil
			})

		ctx := newTestContext(dic)
		assert.Nil(t, r.ExecutePipeline(ctx, "data", r.GetPipelineById("p1"), 0, false))
		assert.False(t, ctx.IsRetryTriggered())

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("retry was not triggered")
		}
	})
}

func TestStartStoreAndForwardRetryLoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	storeClient := mock.NewMockStoreClient(ctrl)

	r, dic := newTestRuntime(true)
	dic.StoreClient = storeClient

	stored := []models.StoredObject{{ID: "a", PipelineID: "missing"}, {ID: "b", PipelineID: "missing"}}
	retried := make(chan struct{}, 1)

	gomock.InOrder(
		storeClient.EXPECT().RetrieveFromStore(gomock.Any(), testServiceKey).Return(stored, nil),
		storeClient.EXPECT().RetrieveFromStore(gomock.Any(), testServiceKey).
			DoAndReturn(func(context.Context, string) ([]models.StoredObject, error) {
				select {
				case retried <- struct{}{}:
				default:
				}
				return nil, nil
			}).MinTimes(1),
	)

	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()
	sfCtx, sfCancel := context.WithCancel(context.Background())

	var appWg, sfWg sync.WaitGroup
	r.StoreForward.StartStoreAndForwardRetryLoop(appCtx, &appWg, sfCtx, &sfWg)
	assert.Equal(t, int64(2), r.StoreForward.QueueSize())

	select {
	case <-retried:
	case <-time.After(3 * time.Second):
		t.Fatal("retry loop did not run")
	}

	sfCancel()
	sfWg.Wait()
	appWg.Wait()
}

func TestMaxRetryCount(t *testing.T) {
	assert.Equal(t, 1, maxRetryCount(-5))
	assert.Equal(t, 0, maxRetryCount(0))
	assert.Equal(t, 7, maxRetryCount(7))
}
