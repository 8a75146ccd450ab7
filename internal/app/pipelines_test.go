package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/app-functions-sdk-go/internal/config"
	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
)

func TestLoadConfigurableFunctionPipelines(t *testing.T) {
	svc, _ := newTestService(t, Options{})

	pipelines, err := svc.LoadConfigurableFunctionPipelines()
	require.NoError(t, err)
	require.Len(t, pipelines, 1)

	pipeline := pipelines[interfaces.DefaultPipelineId]
	assert.Equal(t, []string{models.TopicWildcard}, pipeline.Topics)
	assert.Len(t, pipeline.Transforms, 2)
	assert.True(t, svc.configurable)
}

func TestBuildConfigurablePipelines(t *testing.T) {
	svc, _ := newTestService(t, Options{})

	functions := map[string]config.PipelineFunction{
		"FilterByDeviceName": {Parameters: map[string]string{"FilterValues": "Random-Float-Device"}},
		"AddTags#1":          {Parameters: map[string]string{"Tags": "site:a"}},
		"addtags#2":          {Parameters: map[string]string{"Tags": "line:b"}},
		"Transform":          {Parameters: map[string]string{"Type": "json"}},
		"Compress":           {Parameters: map[string]string{"Algorithm": "lzma"}},
	}

	tests := []struct {
		name    string
		cfg     config.PipelineInfo
		want    map[string]int
		topics  map[string][]string
		wantErr error
	}{
		{
			name: "default and per topic pipelines",
			cfg: config.PipelineInfo{
				ExecutionOrder: "FilterByDeviceName, Transform",
				PerTopicPipelines: map[string]config.TopicPipeline{
					"floats": {Topics: "events/+/float, events/+/double", ExecutionOrder: "AddTags#1, AddTags#2, Transform"},
				},
				Functions: functions,
			},
			want:   map[string]int{interfaces.DefaultPipelineId: 2, "floats": 3},
			topics: map[string][]string{"floats": {"events/+/float", "events/+/double"}},
		},
		{
			name: "per topic id overrides key",
			cfg: config.PipelineInfo{
				PerTopicPipelines: map[string]config.TopicPipeline{
					"key": {Id: "named", Topics: "events/#", ExecutionOrder: "Transform"},
				},
				Functions: functions,
			},
			want: map[string]int{"named": 1},
		},
		{
			name:    "nothing configured",
			cfg:     config.PipelineInfo{Functions: functions},
			wantErr: ErrEmptyExecutionOrder,
		},
		{
			name: "per topic without functions",
			cfg: config.PipelineInfo{
				PerTopicPipelines: map[string]config.TopicPipeline{"p": {Topics: "events/#", ExecutionOrder: " , "}},
				Functions:         functions,
			},
			wantErr: ErrEmptyExecutionOrder,
		},
		{
			name: "per topic without topics",
			cfg: config.PipelineInfo{
				PerTopicPipelines: map[string]config.TopicPipeline{"p": {ExecutionOrder: "Transform"}},
				Functions:         functions,
			},
			wantErr: ErrNoPipelineTopics,
		},
		{
			name:    "unknown function",
			cfg:     config.PipelineInfo{ExecutionOrder: "Transform, Teleport", Functions: functions},
			wantErr: ErrUnknownFunction,
		},
		{
			name:    "invalid parameters",
			cfg:     config.PipelineInfo{ExecutionOrder: "Compress", Functions: functions},
			wantErr: ErrInvalidFunction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pipelines, err := svc.buildConfigurablePipelines(tt.cfg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, pipelines, len(tt.want))

			for id, count := range tt.want {
				assert.Equal(t, id, pipelines[id].Id)
				assert.Len(t, pipelines[id].Transforms, count, id)
			}
			for id, topics := range tt.topics {
				assert.Equal(t, topics, pipelines[id].Topics)
			}
		})
	}
}

func TestLookupParameters(t *testing.T) {
	functions := map[string]config.PipelineFunction{
		"HTTPExport#1": {Parameters: map[string]string{"Url": "http://a"}},
	}

	assert.Equal(t, "http://a", lookupParameters(functions, "HTTPExport#1")["Url"])
	assert.Equal(t, "http://a", lookupParameters(functions, "httpexport#1")["Url"])
	assert.Empty(t, lookupParameters(functions, "HTTPExport#2"))

	// the configuration is not modified through the returned map
	lookupParameters(functions, "HTTPExport#1")["Url"] = "changed"
	assert.Equal(t, "http://a", functions["HTTPExport#1"].Parameters["Url"])
}

func TestReloadConfigurablePipelines(t *testing.T) {
	svc, _ := newTestService(t, Options{})

	pipelines, err := svc.LoadConfigurableFunctionPipelines()
	require.NoError(t, err)
	require.NoError(t, svc.SetDefaultFunctionsPipeline(pipelines[interfaces.DefaultPipelineId].Transforms...))
	before := svc.runtime.GetPipelineById(interfaces.DefaultPipelineId).Hash

	previous := svc.dic.Config().Writable.Pipeline
	current := previous
	current.ExecutionOrder = "Transform"

	svc.reloadConfigurablePipelines(previous, current)

	after := svc.runtime.GetPipelineById(interfaces.DefaultPipelineId)
	assert.Len(t, after.Transforms, 1)
	assert.NotEqual(t, before, after.Hash)

	// an invalid change keeps the running pipeline
	broken := current
	broken.ExecutionOrder = "Teleport"
	svc.reloadConfigurablePipelines(current, broken)
	assert.Len(t, svc.runtime.GetPipelineById(interfaces.DefaultPipelineId).Transforms, 1)
}

func TestReloadConfigurablePipelines_NotLoaded(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	noop := func(interfaces.AppFunctionContext, any) (bool, any) { return true, nil }
	require.NoError(t, svc.SetDefaultFunctionsPipeline(noop, noop, noop))

	previous := svc.dic.Config().Writable.Pipeline
	current := previous
	current.ExecutionOrder = "Transform"
	svc.reloadConfigurablePipelines(previous, current)

	assert.Len(t, svc.runtime.GetPipelineById(interfaces.DefaultPipelineId).Transforms, 3)
}
