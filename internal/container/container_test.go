package container

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/app-functions-sdk-go/internal/config"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/logger"
)

func TestContainer_UpdateWritable(t *testing.T) {
	original := &config.StructuredConfig{
		Writable: config.WritableInfo{LogLevel: "INFO"},
		Service:  config.ServiceInfo{Port: 59700},
	}
	c := NewContainer(original, logger.Nop())

	c.UpdateWritable(config.WritableInfo{LogLevel: "DEBUG"})

	assert.Equal(t, "DEBUG", c.Config().Writable.LogLevel)
	assert.Equal(t, 59700, c.Config().Service.Port)
	// earlier snapshots are not modified
	assert.Equal(t, "INFO", original.Writable.LogLevel)
}

func TestContainer_UpdateCustom(t *testing.T) {
	c := NewContainer(&config.StructuredConfig{
		Writable: config.WritableInfo{LogLevel: "INFO"},
		Custom:   map[string]any{"AppCustom": map[string]any{"Topic": "a"}},
	}, logger.Nop())

	c.UpdateCustom(map[string]any{"AppCustom": map[string]any{"Topic": "b"}})

	assert.Equal(t, map[string]any{"Topic": "b"}, c.Config().Custom["AppCustom"])
	assert.Equal(t, "INFO", c.Config().Writable.LogLevel)
}

func TestContainer_ConcurrentAccess(t *testing.T) {
	c := NewContainer(&config.StructuredConfig{}, logger.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c.SetConfig(&config.StructuredConfig{Writable: config.WritableInfo{LogLevel: "TRACE"}})
		}()
		go func() {
			defer wg.Done()
			_ = c.Config()
		}()
	}
	wg.Wait()

	assert.Equal(t, "TRACE", c.Config().Writable.LogLevel)
}
