// Package verify issues the final protocol-level check against the
// registry, independent of either client tool's own success reporting.
package verify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"time"
)

// fetchTimeout bounds the verification request.
const fetchTimeout = 10 * time.Second

// Fetch issues a single unauthenticated GET for the pushed repository and
// dumps the full request and response to out. No assertion is made on the
// response — the dump exists for a human or log-scraper to inspect.
func Fetch(ctx context.Context, addr, repository string, out io.Writer) error {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	url := fmt.Sprintf("http://%s/%s", addr, repository)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build verification request: %w", err)
	}

	reqDump, err := httputil.DumpRequestOut(req, false)
	if err != nil {
		return fmt.Errorf("failed to dump verification request: %w", err)
	}
	fmt.Fprintf(out, "> %s\n%s", url, reqDump)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("verification request to %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	respDump, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return fmt.Errorf("failed to dump verification response: %w", err)
	}
	fmt.Fprintf(out, "%s\n", respDump)

	return nil
}
