package appstate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ladderhq/ladder/pkg/apiclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// messageServer serves a fixed message log, honoring the after parameter
func messageServer(t *testing.T, messages []*apiclient.Message, delay time.Duration, requests *atomic.Int64) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if delay > 0 {
			time.Sleep(delay)
		}

		batch := messages
		if afterParam := r.URL.Query().Get("after"); afterParam != "" {
			after, err := time.Parse(time.RFC3339Nano, afterParam)
			require.NoError(t, err)
			batch = nil
			for _, m := range messages {
				if m.CreatedAt.After(after) {
					batch = append(batch, m)
				}
			}
		}

		payload, err := json.Marshal(map[string]interface{}{"data": batch})
		require.NoError(t, err)
		w.Write(payload)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestPollerDeliversIncrementsOnly(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	messages := []*apiclient.Message{
		{ID: 1, Content: "hi", CreatedAt: base},
		{ID: 2, Content: "there", CreatedAt: base.Add(time.Second)},
	}

	var requests atomic.Int64
	server := messageServer(t, messages, 0, &requests)

	var mu sync.Mutex
	var received []*apiclient.Message
	poller := NewMessagePoller(apiclient.New(server.URL), 1, func(batch []*apiclient.Message) {
		mu.Lock()
		received = append(received, batch...)
		mu.Unlock()
	}, WithPollInterval(20*time.Millisecond))

	poller.Start(context.Background())
	time.Sleep(100 * time.Millisecond)
	poller.Stop()

	mu.Lock()
	defer mu.Unlock()
	// The history arrives once; later polls carry after= past the last
	// message, so nothing is re-delivered
	require.Len(t, received, 2)
	assert.Equal(t, int64(1), received[0].ID)
	assert.Equal(t, int64(2), received[1].ID)
	assert.Greater(t, requests.Load(), int64(1))
}

func TestPollerCoalescesOverlappingTicks(t *testing.T) {
	var requests atomic.Int64
	server := messageServer(t, nil, 80*time.Millisecond, &requests)

	poller := NewMessagePoller(apiclient.New(server.URL), 1, func([]*apiclient.Message) {},
		WithPollInterval(10*time.Millisecond))

	poller.Start(context.Background())
	time.Sleep(100 * time.Millisecond)
	poller.Stop()

	// Ten ticks fired but each fetch takes eight intervals; skipped ticks
	// keep the request count near the fetch duration, not the tick rate
	assert.LessOrEqual(t, requests.Load(), int64(4))
}

func TestPollerStopWaitsForInFlightFetch(t *testing.T) {
	var requests atomic.Int64
	server := messageServer(t, nil, 50*time.Millisecond, &requests)

	var calls atomic.Int64
	poller := NewMessagePoller(apiclient.New(server.URL), 1, func([]*apiclient.Message) {
		calls.Add(1)
	}, WithPollInterval(10*time.Millisecond))

	poller.Start(context.Background())
	time.Sleep(20 * time.Millisecond)
	poller.Stop()

	after := calls.Load()
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, after, calls.Load())
}

func TestPollerReportsErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	errs := make(chan error, 1)
	poller := NewMessagePoller(apiclient.New(server.URL), 1, func([]*apiclient.Message) {},
		WithPollInterval(10*time.Millisecond),
		WithPollErrorHandler(func(err error) {
			select {
			case errs <- err:
			default:
			}
		}))

	poller.Start(context.Background())
	defer poller.Stop()

	select {
	case err := <-errs:
		var apiErr *apiclient.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, apiclient.ErrorTypeServer, apiErr.Type)
	case <-time.After(time.Second):
		t.Fatal("no error reported")
	}
}
