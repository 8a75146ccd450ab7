package runtime

import (
	"errors"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/app-functions-sdk-go/internal/metrics"
	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
)

func TestNewFunctionsPipelineRuntime_DefaultsToEvent(t *testing.T) {
	r, _ := newTestRuntime(false)
	assert.IsType(t, &models.Event{}, r.TargetType)
	assert.Equal(t, testServiceKey, r.ServiceKey)
}

func TestAddFunctionsPipeline(t *testing.T) {
	r, dic := newTestRuntime(false)

	require.NoError(t, r.AddFunctionsPipeline("p1", []string{"edgex/events/#"}, upperCase))

	pipeline := r.GetPipelineById("p1")
	require.NotNil(t, pipeline)
	assert.Equal(t, []string{"edgex/events/#"}, pipeline.Topics)
	assert.Len(t, pipeline.Transforms, 1)
	assert.Contains(t, pipeline.Hash, "upperCase")

	assert.True(t, dic.MetricsManager.IsRegistered("PipelineMessagesProcessed-p1"))
	assert.True(t, dic.MetricsManager.IsRegistered("PipelineMessageProcessingTime-p1"))
	assert.True(t, dic.MetricsManager.IsRegistered("PipelineProcessingErrors-p1"))

	err := r.AddFunctionsPipeline("p1", []string{"other"}, appendSuffix)
	assert.ErrorIs(t, err, ErrPipelineExists)
}

func TestSetDefaultFunctionsPipeline(t *testing.T) {
	r, _ := newTestRuntime(false)

	r.SetDefaultFunctionsPipeline(upperCase)
	pipeline := r.GetPipelineById(interfaces.DefaultPipelineId)
	require.NotNil(t, pipeline)
	assert.Equal(t, []string{models.TopicWildcard}, pipeline.Topics)
	firstHash := pipeline.Hash

	r.SetDefaultFunctionsPipeline(upperCase, appendSuffix)
	pipeline = r.GetPipelineById(interfaces.DefaultPipelineId)
	assert.Len(t, pipeline.Transforms, 2)
	assert.NotEqual(t, firstHash, pipeline.Hash)
}

func TestSetFunctionsPipelineTransforms_NotFound(t *testing.T) {
	r, _ := newTestRuntime(false)
	assert.ErrorIs(t, r.SetFunctionsPipelineTransforms("missing", upperCase), ErrPipelineNotFound)
}

func TestRemoveAllFunctionPipelines(t *testing.T) {
	r, dic := newTestRuntime(false)
	require.NoError(t, r.AddFunctionsPipeline("p1", []string{"a"}, upperCase))
	require.NoError(t, r.AddFunctionsPipeline("p2", []string{"b"}, upperCase))

	r.RemoveAllFunctionPipelines()

	assert.Nil(t, r.GetPipelineById("p1"))
	assert.Nil(t, r.GetPipelineById("p2"))
	assert.False(t, dic.MetricsManager.IsRegistered("PipelineMessagesProcessed-p1"))
	assert.False(t, dic.MetricsManager.IsRegistered("PipelineProcessingErrors-p2"))
	assert.True(t, dic.MetricsManager.IsRegistered(metrics.StoreForwardQueueSizeName))

	// ids can be reused
	assert.NoError(t, r.AddFunctionsPipeline("p1", []string{"a"}, upperCase))
}

func TestGetMatchingPipelines(t *testing.T) {
	r, _ := newTestRuntime(false)
	require.NoError(t, r.AddFunctionsPipeline("events", []string{"edgex/events/#"}, upperCase))
	require.NoError(t, r.AddFunctionsPipeline("device1", []string{"edgex/events/device/+/+/device1/#"}, upperCase))
	require.NoError(t, r.AddFunctionsPipeline("other", []string{"edgex/other"}, upperCase))

	matches := r.GetMatchingPipelines("edgex/events/device/svc/profile/device1/source")
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.Id)
	}
	assert.ElementsMatch(t, []string{"events", "device1"}, ids)

	assert.Empty(t, r.GetMatchingPipelines("nothing"))
}

func TestCalculatePipelineHash(t *testing.T) {
	assert.Equal(t, "Pipeline-functions: ", CalculatePipelineHash())
	assert.Equal(t, CalculatePipelineHash(upperCase, appendSuffix), CalculatePipelineHash(upperCase, appendSuffix))
	assert.NotEqual(t, CalculatePipelineHash(upperCase, appendSuffix), CalculatePipelineHash(appendSuffix, upperCase))
}

func TestProcessMessage(t *testing.T) {
	r, dic := newTestRuntime(false)
	require.NoError(t, r.AddFunctionsPipeline("p1", []string{"#"}, upperCase, appendSuffix))
	pipeline := r.GetPipelineById("p1")

	ctx := newTestContext(dic)
	assert.Nil(t, r.ProcessMessage(ctx, "hello", pipeline))

	assert.Equal(t, "p1", ctx.PipelineId())
	assert.Equal(t, 1.0, testutil.ToFloat64(pipeline.MessagesProcessed))
	assert.Equal(t, 0.0, testutil.ToFloat64(pipeline.ProcessingErrors))
}

func TestProcessMessage_NoTransforms(t *testing.T) {
	r, dic := newTestRuntime(false)
	require.NoError(t, r.AddFunctionsPipeline("empty", []string{"#"}))

	ctx := newTestContext(dic)
	assert.Nil(t, r.ProcessMessage(ctx, "hello", r.GetPipelineById("empty")))
	assert.Empty(t, ctx.PipelineId())
	assert.Equal(t, 0.0, testutil.ToFloat64(r.GetPipelineById("empty").MessagesProcessed))
}

func TestExecutePipeline(t *testing.T) {
	r, dic := newTestRuntime(false)

	var seen any
	capture := func(_ interfaces.AppFunctionContext, data any) (bool, any) {
		seen = data
		return true, data
	}

	require.NoError(t, r.AddFunctionsPipeline("chain", []string{"#"}, upperCase, appendSuffix, capture))
	require.NoError(t, r.AddFunctionsPipeline("stop", []string{"#"}, upperCase, stopQuietly, capture))
	require.NoError(t, r.AddFunctionsPipeline("start", []string{"#"}, upperCase, appendSuffix, capture))

	t.Run("output feeds the next function", func(t *testing.T) {
		seen = nil
		assert.Nil(t, r.ExecutePipeline(newTestContext(dic), "abc", r.GetPipelineById("chain"), 0, false))
		assert.Equal(t, "ABC-done", seen)
	})

	t.Run("stop without error", func(t *testing.T) {
		seen = nil
		assert.Nil(t, r.ExecutePipeline(newTestContext(dic), "abc", r.GetPipelineById("stop"), 0, false))
		assert.Nil(t, seen)
	})

	t.Run("start position skips functions", func(t *testing.T) {
		seen = nil
		assert.Nil(t, r.ExecutePipeline(newTestContext(dic), "abc", r.GetPipelineById("start"), 1, false))
		assert.Equal(t, "abc-done", seen)
	})
}

func TestExecutePipeline_ErrorResult(t *testing.T) {
	r, dic := newTestRuntime(false)
	require.NoError(t, r.AddFunctionsPipeline("p1", []string{"#"}, upperCase, appendSuffix))
	pipeline := r.GetPipelineById("p1")

	msgErr := r.ExecutePipeline(newTestContext(dic), 42, pipeline, 0, false)
	require.NotNil(t, msgErr)
	assert.Equal(t, http.StatusUnprocessableEntity, msgErr.ErrorCode)
	assert.ErrorIs(t, msgErr, ErrPipelineFunction)
	assert.Contains(t, msgErr.Error(), "not a string")
	assert.Equal(t, 1.0, testutil.ToFloat64(pipeline.ProcessingErrors))

	var target *MessageError
	assert.True(t, errors.As(error(msgErr), &target))
}

func TestExecutePipeline_ClearsRetryDataBetweenFunctions(t *testing.T) {
	r, dic := newTestRuntime(false)

	setRetry := func(ctx interfaces.AppFunctionContext, data any) (bool, any) {
		ctx.SetRetryData([]byte("stale"))
		return true, data
	}
	var retryData []byte
	readRetry := func(ctx interfaces.AppFunctionContext, data any) (bool, any) {
		retryData = ctx.RetryData()
		return true, data
	}

	require.NoError(t, r.AddFunctionsPipeline("p1", []string{"#"}, setRetry, readRetry))
	assert.Nil(t, r.ExecutePipeline(newTestContext(dic), "x", r.GetPipelineById("p1"), 0, false))
	assert.Nil(t, retryData)
}
