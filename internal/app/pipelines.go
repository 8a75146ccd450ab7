package app

import (
	"fmt"
	"maps"
	"reflect"
	"strings"

	"github.com/MKhiriev/app-functions-sdk-go/internal/config"
	"github.com/MKhiriev/app-functions-sdk-go/internal/utils"
	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/transforms"
)

// functionInstanceSeparator lets the same function appear more than once in
// an execution order, e.g. "HTTPExport#1, HTTPExport#2".
const functionInstanceSeparator = "#"

// LoadConfigurableFunctionPipelines builds the default pipeline from
// Writable.Pipeline.ExecutionOrder and one pipeline per entry of
// PerTopicPipelines. The pipelines are returned, not installed.
func (s *Service) LoadConfigurableFunctionPipelines() (map[string]interfaces.FunctionPipeline, error) {
	pipelines, err := s.buildConfigurablePipelines(s.dic.Config().Writable.Pipeline)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.configurable = true
	s.mu.Unlock()
	return pipelines, nil
}

func (s *Service) buildConfigurablePipelines(cfg config.PipelineInfo) (map[string]interfaces.FunctionPipeline, error) {
	configurable := transforms.NewConfigurableWithSecrets(s.lc, s.dic.SecretProvider)
	pipelines := make(map[string]interfaces.FunctionPipeline)

	if strings.TrimSpace(cfg.ExecutionOrder) != "" {
		functions, err := s.loadFunctions(configurable, cfg.ExecutionOrder, cfg.Functions)
		if err != nil {
			return nil, fmt.Errorf("default pipeline: %w", err)
		}
		pipelines[interfaces.DefaultPipelineId] = interfaces.FunctionPipeline{
			Id:         interfaces.DefaultPipelineId,
			Topics:     []string{models.TopicWildcard},
			Transforms: functions,
		}
	}

	for key, perTopic := range cfg.PerTopicPipelines {
		id := perTopic.Id
		if id == "" {
			id = key
		}

		topics := utils.SplitAndTrim(perTopic.Topics)
		if len(topics) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoPipelineTopics, id)
		}

		functions, err := s.loadFunctions(configurable, perTopic.ExecutionOrder, cfg.Functions)
		if err != nil {
			return nil, fmt.Errorf("pipeline %s: %w", id, err)
		}
		pipelines[id] = interfaces.FunctionPipeline{
			Id:         id,
			Topics:     topics,
			Transforms: functions,
		}
	}

	if len(pipelines) == 0 {
		return nil, ErrEmptyExecutionOrder
	}
	return pipelines, nil
}

func (s *Service) loadFunctions(configurable *transforms.Configurable, executionOrder string,
	functions map[string]config.PipelineFunction) ([]interfaces.AppFunction, error) {
	names := utils.SplitAndTrim(executionOrder)
	if len(names) == 0 {
		return nil, ErrEmptyExecutionOrder
	}

	result := make([]interfaces.AppFunction, 0, len(names))
	for _, name := range names {
		baseName, _, _ := strings.Cut(name, functionInstanceSeparator)

		build, ok := configurable.Function(baseName)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownFunction, name)
		}

		fn := build(lookupParameters(functions, name))
		if fn == nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidFunction, name)
		}

		s.lc.Debug().Str("function", name).Msg("configurable function loaded")
		result = append(result, fn)
	}
	return result, nil
}

// lookupParameters matches the function name case-insensitively, the way
// the configuration keys are matched everywhere else.
func lookupParameters(functions map[string]config.PipelineFunction, name string) map[string]string {
	if fn, ok := functions[name]; ok {
		return maps.Clone(fn.Parameters)
	}
	for key, fn := range functions {
		if strings.EqualFold(key, name) {
			return maps.Clone(fn.Parameters)
		}
	}
	return map[string]string{}
}

// reloadConfigurablePipelines rebuilds the configurable pipelines after a
// writable change and swaps the transforms of the installed ones.
func (s *Service) reloadConfigurablePipelines(previous, current config.PipelineInfo) {
	s.mu.Lock()
	loaded := s.configurable
	s.mu.Unlock()

	if !loaded || reflect.DeepEqual(previous, current) {
		return
	}

	pipelines, err := s.buildConfigurablePipelines(current)
	if err != nil {
		s.lc.Err(err).Msg("configurable pipelines not reloaded")
		return
	}

	for id, pipeline := range pipelines {
		if s.runtime.GetPipelineById(id) == nil {
			s.lc.Warn().Str("pipeline", id).Msg("new pipeline needs a restart to be added")
			continue
		}
		if err = s.runtime.SetFunctionsPipelineTransforms(id, pipeline.Transforms...); err != nil {
			s.lc.Err(err).Str("pipeline", id).Msg("failed to reload pipeline")
		}
	}
	s.lc.Info().Int("pipelines", len(pipelines)).Msg("configurable pipelines reloaded")
}
