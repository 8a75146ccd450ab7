package app

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/MKhiriev/app-functions-sdk-go/internal/config"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
)

// LoadCustomConfig decodes the custom section sectionName into target.
func (s *Service) LoadCustomConfig(target interfaces.UpdatableConfig, sectionName string) error {
	if isNil(target) {
		return ErrNilCustomConfig
	}
	if err := s.dic.Config().LoadCustomConfig(target, sectionName); err != nil {
		return fmt.Errorf("%w: %w", ErrCustomConfigSection, err)
	}

	s.lc.Info().Str("section", sectionName).Msg("custom configuration loaded")
	return nil
}

// ListenForCustomConfigChanges calls changedCallback with the raw section
// each time a reload changes sectionName. The section must exist when the
// listener is added.
func (s *Service) ListenForCustomConfigChanges(configToWatch any, sectionName string, changedCallback func(any)) error {
	if isNil(configToWatch) || changedCallback == nil {
		return ErrNilCustomConfig
	}

	previous, err := s.dic.Config().CustomSection(sectionName)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCustomConfigSection, err)
	}

	var mu sync.Mutex
	s.watcher.OnChange(func(cfg *config.StructuredConfig) {
		raw, err := cfg.CustomSection(sectionName)
		if err != nil {
			s.lc.Warn().Err(err).Str("section", sectionName).Msg("watched custom section removed")
			return
		}

		mu.Lock()
		changed := !reflect.DeepEqual(previous, raw)
		previous = raw
		mu.Unlock()

		if changed {
			s.lc.Info().Str("section", sectionName).Msg("custom configuration changed")
			changedCallback(raw)
		}
	})

	s.lc.Info().Str("section", sectionName).Msg("listening for custom configuration changes")
	return nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func:
		return rv.IsNil()
	}
	return false
}
