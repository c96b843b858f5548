package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/layoutdev-pt/prospout/internal/utils"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

func NewHTTPClient(timeout time.Duration) HTTPClient {
	return &http.Client{Timeout: timeout}
}

// GetJSONWithRetry fetches url and decodes the body into dst, retrying
// transient failures with exponential backoff and jitter. The request carries
// ctx, so an aborted caller cancels the fetch instead of letting it run out
// its retries.
func GetJSONWithRetry(ctx context.Context, c HTTPClient, url string, dst any) error {
	if url == "" {
		return errors.New("empty url")
	}
	bo := utils.NewBackoff(100*time.Millisecond, 150*time.Millisecond, 2)
	return bo.Do(func(i int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := c.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return errors.New(resp.Status)
		}
		return json.NewDecoder(resp.Body).Decode(dst)
	})
}
