// Package rtpi scrapes live bus arrival times from the RTPI text display site.
package rtpi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dublin-on-time/dublinontime/internal/arrivals"
	"github.com/dublin-on-time/dublinontime/internal/stop"
)

const defaultBaseURL = "http://rtpi.ie/Text/WebDisplay.aspx"

var (
	// ErrUnreachable means the RTPI site could not be fetched at all.
	ErrUnreachable = errors.New("rtpi site unreachable")
	// ErrNoArrivalsTable means the page was fetched but did not contain a
	// recognisable arrivals table. The site occasionally serves error pages
	// with a 200 status.
	ErrNoArrivalsTable = errors.New("no arrivals table in rtpi page")
)

// Client fetches the RTPI text display page for a stop.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates an RTPI client. An empty baseURL uses the public site;
// a zero timeout defaults to 30 seconds.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

// StopArrivals returns the scraped (service, time) rows for a stop, in the
// page's own order, soonest first.
func (c *Client) StopArrivals(ctx context.Context, id stop.ID) ([]arrivals.Row, error) {
	reqURL := c.baseURL + "?stopRef=" + url.QueryEscape(id.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "dublinontime/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code %d", ErrUnreachable, resp.StatusCode)
	}

	rows, err := extractRows(resp.Body)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
