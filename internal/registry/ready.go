package registry

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/schmitthub/regsmoke/internal/logger"
)

const (
	// readyPollInterval is how often the readiness probe retries.
	readyPollInterval = 500 * time.Millisecond

	// readyRequestTimeout bounds a single probe attempt. Deliberately
	// larger than the poll interval: right after launch the registry may
	// accept the connection but take a while answering its first request.
	readyRequestTimeout = 3 * time.Second
)

// WaitReady polls the registry's version-check endpoint until it answers
// or the timeout elapses. Any HTTP response counts as ready — a registry
// that requires authentication answers 401 here, which still proves the
// listener is up. Replaces fixed startup sleeps while preserving the
// ordering guarantee that the registry is reachable before the first
// client call.
func WaitReady(ctx context.Context, addr string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	url := fmt.Sprintf("http://%s/v2/", addr)
	client := &http.Client{Timeout: readyRequestTimeout}

	ticker := time.NewTicker(readyPollInterval)
	defer ticker.Stop()

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err == nil {
			resp.Body.Close()
			logger.Debug().Str("addr", addr).Int("status", resp.StatusCode).Msg("registry ready")
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for registry at %s: %w", addr, ctx.Err())
		case <-ticker.C:
		}
	}
}
