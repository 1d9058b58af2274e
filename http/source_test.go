package http_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/odin"
	odinhttp "github.com/fwojciec/odin/http"
	"github.com/fwojciec/odin/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ odin.Source = (*odinhttp.Source)(nil)

func TestSource_Load(t *testing.T) {
	t.Parallel()

	t.Run("returns the page body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>devices</html>"))
		}))
		defer server.Close()

		src := odinhttp.NewSource(odinhttp.NewFetcher(), server.URL)
		html, err := src.Load(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "<html>devices</html>", html)
		assert.Equal(t, server.URL, src.Origin())
	})

	t.Run("retries unavailable responses", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		var logged []string
		src := odinhttp.NewSource(odinhttp.NewFetcher(), server.URL)
		src.Delays = []time.Duration{time.Millisecond, time.Millisecond, time.Millisecond}
		src.Logger = func(format string, args ...any) {
			logged = append(logged, fmt.Sprintf(format, args...))
		}

		html, err := src.Load(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "ok", html)
		assert.Equal(t, int32(3), calls.Load())
		assert.Len(t, logged, 2)
	})
}

func TestFetchWithRetry(t *testing.T) {
	t.Parallel()

	delays := []time.Duration{time.Millisecond, time.Millisecond}

	t.Run("returns last error after all attempts", func(t *testing.T) {
		t.Parallel()

		attempts := 0
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				attempts++
				return "", odin.Errorf(odin.EUNAVAILABLE, "attempt %d", attempts)
			},
		}

		_, err := odinhttp.FetchWithRetry(context.Background(), fetcher, "https://example.com", delays, nil)

		require.Error(t, err)
		assert.Equal(t, 3, attempts)
		assert.Equal(t, "attempt 3", odin.ErrorMessage(err))
	})

	t.Run("does not retry errors that are not transient", func(t *testing.T) {
		t.Parallel()

		attempts := 0
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				attempts++
				return "", odin.Errorf(odin.EINVALID, "bad url")
			},
		}

		_, err := odinhttp.FetchWithRetry(context.Background(), fetcher, "::", delays, nil)

		require.Error(t, err)
		assert.Equal(t, 1, attempts)
		assert.Equal(t, odin.EINVALID, odin.ErrorCode(err))
	})

	t.Run("stops when the context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				cancel()
				return "", odin.Errorf(odin.EUNAVAILABLE, "down")
			},
		}

		_, err := odinhttp.FetchWithRetry(ctx, fetcher, "https://example.com", []time.Duration{time.Hour}, nil)

		require.True(t, errors.Is(err, context.Canceled))
	})
}
