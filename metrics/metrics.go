// Package metrics pushes timetrack gauges to a VictoriaMetrics or
// Prometheus remote write endpoint.
//
// Push mode suits a short-lived tracker process better than scraping;
// the process may exit before a scraper ever sees it.
package metrics

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang/protobuf/proto"
	"github.com/golang/snappy"
	"github.com/prometheus/prometheus/prompb"
)

// DefaultTimeout is the default timeout for HTTP requests.
const DefaultTimeout = 30 * time.Second

// Metric represents a single metric point.
type Metric struct {
	Name      string
	Value     float64
	Labels    map[string]string
	Timestamp time.Time
}

// Client pushes metrics via the Prometheus remote write protocol.
type Client struct {
	url        string
	httpClient *http.Client
	prefix     string
	job        string
	instance   string
}

// Option configures a Client.
type Option func(*Client)

// WithPrefix sets a prefix prepended to every metric name with an
// underscore.
func WithPrefix(prefix string) Option {
	return func(c *Client) {
		c.prefix = prefix
	}
}

// WithJob sets the job label applied to every pushed series.
func WithJob(job string) Option {
	return func(c *Client) {
		c.job = job
	}
}

// WithInstance sets the instance label applied to every pushed series.
func WithInstance(instance string) Option {
	return func(c *Client) {
		c.instance = instance
	}
}

// WithTimeout replaces the default HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient creates a Client for the remote write endpoint at the given
// base URL (e.g., "http://localhost:8428").
func NewClient(url string, opts ...Option) *Client {
	c := &Client{
		url:        url + "/api/v1/write",
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PushMetrics sends the given metric points in a single write request.
// Pushing nothing is a no-op.
func (c *Client) PushMetrics(ctx context.Context, metrics ...Metric) error {
	if len(metrics) == 0 {
		return nil
	}

	timeseries := make([]prompb.TimeSeries, 0, len(metrics))
	for _, metric := range metrics {
		timeseries = append(timeseries, c.metricToTimeSeries(metric))
	}

	req := &prompb.WriteRequest{
		Timeseries: timeseries,
	}

	data, err := proto.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshaling write request: %w", err)
	}

	compressed := snappy.Encode(nil, data)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(compressed))
	if err != nil {
		return fmt.Errorf("creating HTTP request: %w", err)
	}

	httpReq.Header.Set("Content-Encoding", "snappy")
	httpReq.Header.Set("Content-Type", "application/x-protobuf")
	httpReq.Header.Set("X-Prometheus-Remote-Write-Version", "0.1.0")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

func (c *Client) metricToTimeSeries(metric Metric) prompb.TimeSeries {
	labels := make([]prompb.Label, 0, len(metric.Labels)+3)

	name := metric.Name
	if c.prefix != "" {
		name = c.prefix + "_" + name
	}
	labels = append(labels, prompb.Label{
		Name:  "__name__",
		Value: name,
	})
	if c.job != "" {
		labels = append(labels, prompb.Label{Name: "job", Value: c.job})
	}
	if c.instance != "" {
		labels = append(labels, prompb.Label{Name: "instance", Value: c.instance})
	}

	for k, v := range metric.Labels {
		labels = append(labels, prompb.Label{
			Name:  k,
			Value: v,
		})
	}

	timestamp := metric.Timestamp.UnixMilli()
	if metric.Timestamp.IsZero() {
		timestamp = time.Now().UnixMilli()
	}

	return prompb.TimeSeries{
		Labels: labels,
		Samples: []prompb.Sample{{
			Value:     metric.Value,
			Timestamp: timestamp,
		}},
	}
}
