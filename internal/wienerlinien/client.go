// Package wienerlinien queries the Wiener Linien real-time monitor and
// flattens its nested response into a list of departures.
package wienerlinien

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"transit_dashboard/internal/logger"
	"transit_dashboard/internal/metrics"
	"transit_dashboard/internal/models"
)

const (
	// DefaultEndpoint is the public monitor API.
	DefaultEndpoint = "http://www.wienerlinien.at/ogd_realtime/monitor"

	trafficInfoParam = "activateTrafficInfo"
	trafficInfoShort = "stoerungkurz"
	rblParam         = "rbl"

	maxBodyBytes = 5 << 20
	userAgent    = "transit-dashboard/1.0"
)

// Client fetches departures. A single attempt is made per call.
type Client struct {
	httpClient *http.Client
	endpoint   string
	log        *logger.Logger
	metrics    metrics.Recorder
}

// NewClient builds a client. Empty endpoint means DefaultEndpoint; nil log and
// rec are replaced with no-op implementations.
func NewClient(httpClient *http.Client, endpoint string, log *logger.Logger, rec metrics.Recorder) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if log == nil {
		log = logger.Nop()
	}
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &Client{httpClient: httpClient, endpoint: endpoint, log: log, metrics: rec}
}

// SplitStopIDs splits a comma separated list of RBL ids, trimming whitespace
// and dropping empty fragments.
func SplitStopIDs(stopIDs string) []string {
	parts := strings.Split(stopIDs, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}

// GetDepartures returns the departures for one or more comma separated stop
// ids, sorted by countdown. Any failure is logged and yields an empty list.
func (c *Client) GetDepartures(ctx context.Context, stopIDs string) []models.Departure {
	ids := SplitStopIDs(stopIDs)
	if len(ids) == 0 {
		return []models.Departure{}
	}

	start := time.Now()
	body, outcome, err := c.fetch(ctx, ids)
	if err != nil {
		c.log.Errorw("departures_fetch_failed", "rbl", ids, "outcome", outcome, "err", err)
		c.metrics.RecordUpstreamFetch(outcome, time.Since(start), 0)
		return []models.Departure{}
	}

	deps, err := parseMonitorResponse(body)
	if err != nil {
		c.log.Errorw("departures_decode_failed", "rbl", ids, "err", err)
		c.metrics.RecordUpstreamFetch(metrics.OutcomeDecodeError, time.Since(start), 0)
		return []models.Departure{}
	}

	c.metrics.RecordUpstreamFetch(metrics.OutcomeSuccess, time.Since(start), len(deps))
	c.log.Debugw("departures_fetched", "rbl", ids, "count", len(deps))
	return deps
}

func (c *Client) buildURL(ids []string) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("parse endpoint %q: %w", c.endpoint, err)
	}
	q := u.Query()
	q.Set(trafficInfoParam, trafficInfoShort)
	for _, id := range ids {
		q.Add(rblParam, id)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *Client) fetch(ctx context.Context, ids []string) ([]byte, string, error) {
	reqURL, err := c.buildURL(ids)
	if err != nil {
		return nil, metrics.OutcomeNetworkError, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, metrics.OutcomeNetworkError, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, metrics.OutcomeNetworkError, fmt.Errorf("monitor request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, metrics.OutcomeBadStatus, fmt.Errorf("monitor returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, metrics.OutcomeNetworkError, fmt.Errorf("read monitor body: %w", err)
	}
	return body, metrics.OutcomeSuccess, nil
}
