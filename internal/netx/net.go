// Package netx holds small network helpers used by the client.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Probe reports whether url is reachable. Any HTTP response, whatever its
// status, counts as reachable; only transport failures and 5xx responses are
// errors. A nil client means http.DefaultClient.
func Probe(ctx context.Context, client *http.Client, url string) error {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("probe failed: %s", resp.Status)
	}
	return nil
}
