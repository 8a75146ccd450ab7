package app

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/app-functions-sdk-go/internal/utils"
)

func (s *Service) ApplicationSettings() map[string]string {
	return s.dic.Config().ApplicationSettings
}

// GetAppSetting splits the value of setting on commas and trims each
// entry. Empty entries are kept.
func (s *Service) GetAppSetting(setting string) ([]string, error) {
	settings := s.ApplicationSettings()
	if settings == nil {
		return nil, ErrNoApplicationSettings
	}

	value, ok := settings[setting]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSettingNotFound, setting)
	}

	values := strings.Split(value, ",")
	for i := range values {
		values[i] = strings.TrimSpace(values[i])
	}
	return values, nil
}

func (s *Service) GetAppSettingStrings(setting string) ([]string, error) {
	values, err := s.GetAppSetting(setting)
	if err != nil {
		return nil, err
	}
	return utils.DeleteEmptyAndTrim(values), nil
}
