package blueprint

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelsos/task-orchestrator/internal/config"
)

type stubFetcher struct {
	calls atomic.Int32
	err   error
}

func (f *stubFetcher) Fetch(context.Context, string) error {
	f.calls.Add(1)
	return f.err
}

func TestExecute_Success(t *testing.T) {
	fetcher := &stubFetcher{}
	b := New(fetcher, "http://unused.test", 0)

	require.NoError(t, b.Execute(context.Background(), 101))
	assert.Equal(t, int32(1), fetcher.calls.Load())
}

func TestExecute_FetchFailure(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("HTTP request failed with status: 503 Service Unavailable")}
	b := New(fetcher, "http://unused.test", time.Hour)

	err := b.Execute(context.Background(), 101)

	require.Error(t, err)
	assert.Equal(t, "HTTP request failed with status: 503 Service Unavailable", err.Error())
}

func TestExecute_WaitsForDelay(t *testing.T) {
	b := New(&stubFetcher{}, "http://unused.test", 30*time.Millisecond)

	start := time.Now()
	require.NoError(t, b.Execute(context.Background(), 1))

	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestExecute_DelayHonoursContext(t *testing.T) {
	b := New(&stubFetcher{}, "http://unused.test", time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, b.Execute(ctx, 1), context.Canceled)
}

func TestNewFromConfig_AgainstServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/fail" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	cfg := config.NewConfig()
	cfg.FetchURL = server.URL + "/get"
	cfg.TaskDelay = 0
	require.NoError(t, NewFromConfig(cfg).Execute(context.Background(), 7))

	cfg.FetchURL = server.URL + "/fail"
	err := NewFromConfig(cfg).Execute(context.Background(), 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
