package app

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/app-functions-sdk-go/internal/config"
	"github.com/MKhiriev/app-functions-sdk-go/internal/trigger"
	"github.com/MKhiriev/app-functions-sdk-go/models"
	"github.com/MKhiriev/app-functions-sdk-go/pkg/interfaces"
)

func runService(t *testing.T, svc *Service) <-chan error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- svc.Run() }()
	return done
}

func waitStopped(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("service did not stop")
		return nil
	}
}

func TestRun_HttpTrigger(t *testing.T) {
	svc, _ := newTestService(t, Options{TargetType: &[]byte{}})

	require.NoError(t, svc.SetDefaultFunctionsPipeline(func(ctx interfaces.AppFunctionContext, data any) (bool, any) {
		ctx.SetResponseData(append([]byte("echo:"), data.([]byte)...))
		return true, nil
	}))

	done := runService(t, svc)
	base := "http://" + svc.dic.Config().ListenAddress()

	require.Eventually(t, func() bool {
		resp, err := http.Get(base + models.ApiPingRoute)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 3*time.Second, 20*time.Millisecond)

	resp, err := http.Post(base+models.ApiTriggerRoute, models.ContentTypeText, strings.NewReader("hello"))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "echo:hello", string(body))
	assert.NotEmpty(t, resp.Header.Get(models.CorrelationHeader))

	assert.ErrorIs(t, svc.Run(), ErrAlreadyRunning)

	svc.Stop()
	assert.NoError(t, waitStopped(t, done))
	assert.Error(t, svc.AppContext().Err())
}

func TestRun_CustomRoute(t *testing.T) {
	svc, _ := newTestService(t, Options{})

	require.NoError(t, svc.AddCustomRoute("/api/v3/resource", interfaces.Unauthenticated, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("resource"))
	}, http.MethodGet))

	done := runService(t, svc)
	url := "http://" + svc.dic.Config().ListenAddress() + "/api/v3/resource"

	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK && string(body) == "resource"
	}, 3*time.Second, 20*time.Millisecond)

	svc.Stop()
	assert.NoError(t, waitStopped(t, done))
}

type stubTrigger struct {
	initialized atomic.Bool
	stopped     atomic.Bool
}

func (s *stubTrigger) Initialize(ctx context.Context, wg *sync.WaitGroup) (interfaces.Deferred, error) {
	s.initialized.Store(true)
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
	}()
	return func() { s.stopped.Store(true) }, nil
}

func TestRun_CustomTrigger(t *testing.T) {
	svc, _ := newTestService(t, Options{}, "Type: http", "Type: my-trigger")

	stub := &stubTrigger{}
	require.NoError(t, svc.RegisterCustomTriggerFactory("my-trigger", func(tc interfaces.TriggerConfig) (interfaces.Trigger, error) {
		assert.NotNil(t, tc.MessageReceived)
		assert.NotNil(t, tc.ContextBuilder)
		return stub, nil
	}))

	done := runService(t, svc)
	require.Eventually(t, stub.initialized.Load, 3*time.Second, 10*time.Millisecond)

	svc.Stop()
	assert.NoError(t, waitStopped(t, done))
	assert.True(t, stub.stopped.Load())
}

func TestRun_UnknownTrigger(t *testing.T) {
	svc, _ := newTestService(t, Options{}, "Type: http", "Type: carrier-pigeon")

	err := svc.Run()
	assert.ErrorIs(t, err, ErrTriggerSetup)
	assert.ErrorIs(t, err, trigger.ErrUnknownTriggerType)
	assert.Error(t, svc.AppContext().Err())
}

func TestOnConfigChange(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })
	svc, _ := newTestService(t, Options{})

	current := *svc.dic.Config()
	current.Writable.LogLevel = "DEBUG"
	current.Writable.InsecureSecrets = map[string]config.SecretData{
		"http": {SecretName: "http", SecretData: map[string]string{"token": "xyz"}},
	}
	current.Custom = map[string]any{"AppCustom": map[string]any{"Topic": "second"}}

	svc.onConfigChange(&current)

	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	assert.Equal(t, "DEBUG", svc.dic.Config().Writable.LogLevel)

	secret, err := svc.SecretProvider().GetSecret("http", "token")
	require.NoError(t, err)
	assert.Equal(t, "xyz", secret["token"])

	custom, err := svc.dic.Config().CustomSection("AppCustom")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"Topic": "second"}, custom)
}

type appCustom struct {
	Topic string `yaml:"Topic"`
}

func (c *appCustom) UpdateFromRaw(raw any) bool {
	return config.DecodeSection(raw, c) == nil
}

func TestLoadCustomConfig(t *testing.T) {
	svc, _ := newTestService(t, Options{})

	var custom appCustom
	require.NoError(t, svc.LoadCustomConfig(&custom, "AppCustom"))
	assert.Equal(t, "first", custom.Topic)

	assert.ErrorIs(t, svc.LoadCustomConfig(&custom, "Missing"), ErrCustomConfigSection)
	assert.ErrorIs(t, svc.LoadCustomConfig((*appCustom)(nil), "AppCustom"), ErrNilCustomConfig)
}

func TestListenForCustomConfigChanges(t *testing.T) {
	svc, dir := newTestService(t, Options{})

	var custom appCustom
	require.NoError(t, svc.LoadCustomConfig(&custom, "AppCustom"))

	assert.ErrorIs(t, svc.ListenForCustomConfigChanges(&custom, "Missing", func(any) {}), ErrCustomConfigSection)
	assert.ErrorIs(t, svc.ListenForCustomConfigChanges(nil, "AppCustom", func(any) {}), ErrNilCustomConfig)

	var mu sync.Mutex
	calls := 0
	require.NoError(t, svc.ListenForCustomConfigChanges(&custom, "AppCustom", func(raw any) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		custom.UpdateFromRaw(raw)
	}))

	svc.watcher.Start(svc.AppContext())
	t.Cleanup(svc.watcher.Stop)

	content := strings.ReplaceAll(testServiceYAML, "{{PORT}}", "59700")
	writeServiceConfig(t, dir, strings.Replace(content, "Topic: first", "Topic: second", 1))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return calls == 1 && custom.Topic == "second"
	}, 3*time.Second, 20*time.Millisecond)
}
