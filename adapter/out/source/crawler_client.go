package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"crawler_server/pkg/httputil"
	"crawler_server/pkg/logger"

	"github.com/sony/gobreaker"
)

// browserUA keeps the listing sites from serving the bot-detection page.
const browserUA = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// siteClient is the shared fetch layer for one listing site: a pooled HTTP
// client behind a per-site circuit breaker, so a site that starts failing
// stops eating the run's time budget.
type siteClient struct {
	name   string
	client *http.Client
	cb     *gobreaker.CircuitBreaker
}

func newSiteClient(name string, client *http.Client) *siteClient {
	if client == nil {
		client = httputil.ListingClient()
	}

	cbSettings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 2,                // Half-open 상태에서 허용할 요청 수
		Interval:    60 * time.Second, // Closed 상태에서 카운터 리셋 간격
		Timeout:     2 * time.Minute,  // Open 상태 유지 시간 (이후 Half-open)
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(map[string]any{
				"site": name, "from": from.String(), "to": to.String(),
			}).Warn("site circuit breaker state changed")
		},
	}

	return &siteClient{
		name:   name,
		client: client,
		cb:     gobreaker.NewCircuitBreaker(cbSettings),
	}
}

// get fetches url and returns the response body. Non-2xx counts as a breaker
// failure.
func (c *siteClient) get(ctx context.Context, url string) ([]byte, error) {
	body, err := c.cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", browserUA)
		req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9")

		res, err := c.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer res.Body.Close()

		if res.StatusCode < 200 || res.StatusCode >= 300 {
			io.Copy(io.Discard, res.Body)
			return nil, fmt.Errorf("%s: unexpected status %d", url, res.StatusCode)
		}
		return io.ReadAll(res.Body)
	})
	if err != nil {
		return nil, err
	}
	return body.([]byte), nil
}
