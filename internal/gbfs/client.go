package gbfs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"viewer.bysykkel.dev/internal/clock"
	"viewer.bysykkel.dev/internal/logging"
	"viewer.bysykkel.dev/internal/metrics"
)

// ClientIdentifierHeader is required by the Urban Sharing GBFS endpoints.
const ClientIdentifierHeader = "Client-Identifier"

const maxBodySize = 10 * 1024 * 1024

// Config describes where the feeds live and how the client identifies itself.
type Config struct {
	StationInformationURL string
	StationStatusURL      string
	ClientIdentifier      string
	Timeout               time.Duration
}

// FetchObserver receives one call per completed fetch.
type FetchObserver interface {
	ObserveFetch(feed, outcome string, took time.Duration)
}

// Client fetches GBFS feeds over HTTP.
type Client struct {
	config     Config
	httpClient *http.Client
	observer   FetchObserver
	clock      clock.Clock
}

// newFeedHTTPClient clones http.DefaultTransport so proxy and keepalive
// defaults survive, then bounds every request with timeout.
func newFeedHTTPClient(timeout time.Duration) *http.Client {
	var transport *http.Transport
	if t, ok := http.DefaultTransport.(*http.Transport); ok {
		transport = t.Clone()
	} else {
		transport = &http.Transport{}
	}
	transport.MaxIdleConnsPerHost = 2
	transport.IdleConnTimeout = 90 * time.Second
	transport.TLSHandshakeTimeout = 10 * time.Second

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// NewClient creates a client with its own HTTP transport.
func NewClient(config Config, observer FetchObserver) *Client {
	return NewClientWithHTTP(config, newFeedHTTPClient(config.Timeout), observer)
}

// NewClientWithHTTP creates a client around an existing *http.Client.
func NewClientWithHTTP(config Config, httpClient *http.Client, observer FetchObserver) *Client {
	if observer == nil {
		observer = (*metrics.Metrics)(nil)
	}
	return &Client{
		config:     config,
		httpClient: httpClient,
		observer:   observer,
		clock:      clock.RealClock{},
	}
}

// WithClock replaces the clock used to time fetches.
func (c *Client) WithClock(clk clock.Clock) *Client {
	c.clock = clk
	return c
}

// StationInformation fetches the station directory records in feed order.
func (c *Client) StationInformation(ctx context.Context) ([]StationInformation, error) {
	var feed StationInformationFeed
	if err := c.fetch(ctx, FeedStationInformation, c.config.StationInformationURL, &feed); err != nil {
		return nil, err
	}
	return feed.Data.Stations, nil
}

// StationStatus fetches the live availability records.
func (c *Client) StationStatus(ctx context.Context) ([]StationStatus, error) {
	var feed StationStatusFeed
	if err := c.fetch(ctx, FeedStationStatus, c.config.StationStatusURL, &feed); err != nil {
		return nil, err
	}
	return feed.Data.Stations, nil
}

func (c *Client) fetch(ctx context.Context, feed, source string, out document) error {
	logger := logging.FromContext(ctx).With(slog.String("component", "gbfs_client"), slog.String("feed", feed))
	start := c.clock.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", feed, err)
	}
	req.Header.Set(ClientIdentifierHeader, c.config.ClientIdentifier)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observer.ObserveFetch(feed, metrics.OutcomeTransport, c.clock.Now().Sub(start))
		return &TransportError{Feed: feed, Err: err}
	}
	defer logging.SafeCloseWithLogging(resp.Body, logger, "http_response_body")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.observer.ObserveFetch(feed, metrics.OutcomeHTTPError, c.clock.Now().Sub(start))
		return &StatusError{
			Feed:       feed,
			URL:        source,
			Code:       resp.StatusCode,
			StatusText: statusText(resp),
		}
	}

	body, err := decodedBody(resp)
	if err != nil {
		c.observer.ObserveFetch(feed, metrics.OutcomeMalformed, c.clock.Now().Sub(start))
		return &PayloadError{Feed: feed, Err: err}
	}
	defer logging.SafeCloseWithLogging(body, logger, "gzip_reader")

	limited := io.LimitReader(body, maxBodySize+1)
	counter := &countingReader{r: limited}
	if err := json.NewDecoder(counter).Decode(out); err != nil {
		if counter.n > maxBodySize {
			err = fmt.Errorf("response exceeds size limit of %d bytes", maxBodySize)
		}
		c.observer.ObserveFetch(feed, metrics.OutcomeMalformed, c.clock.Now().Sub(start))
		return &PayloadError{Feed: feed, Err: err}
	}
	if err := out.validate(); err != nil {
		c.observer.ObserveFetch(feed, metrics.OutcomeMalformed, c.clock.Now().Sub(start))
		return &PayloadError{Feed: feed, Err: err}
	}

	took := c.clock.Now().Sub(start)
	c.observer.ObserveFetch(feed, metrics.OutcomeSuccess, took)
	logger.Debug("feed fetched", slog.Duration("took", took), slog.Int64("bytes", counter.n))
	return nil
}

// statusText returns the reason phrase of resp ("Not Found" for
// "404 Not Found"), falling back to the standard text for the code and
// then to "HTTP <code>". It is never empty.
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	if text == "" {
		text = fallbackStatusText(resp.StatusCode)
	}
	return text
}

func decodedBody(resp *http.Response) (io.ReadCloser, error) {
	if !strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		return io.NopCloser(resp.Body), nil
	}
	zr, err := gzip.NewReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gzip: %w", err)
	}
	return zr, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
