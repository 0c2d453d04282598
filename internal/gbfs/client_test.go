package gbfs

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"viewer.bysykkel.dev/internal/metrics"
)

const informationBody = `{
  "last_updated": 1700000000,
  "ttl": 10,
  "data": {
    "stations": [
      {"station_id": "1", "name": "A", "address": "Addr1", "lat": 59.91, "lon": 10.75, "capacity": 12},
      {"station_id": 2, "name": "B", "address": "Addr2", "lat": 59.92, "lon": 10.76}
    ]
  }
}`

const statusBody = `{
  "last_updated": 1700000000,
  "ttl": 10,
  "data": {
    "stations": [
      {"station_id": "1", "num_bikes_available": 5, "num_docks_available": 7, "is_renting": true}
    ]
  }
}`

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func newTestClient(server *httptest.Server, m *metrics.Metrics) *Client {
	cfg := Config{
		StationInformationURL: server.URL + "/station_information.json",
		StationStatusURL:      server.URL + "/station_status.json",
		ClientIdentifier:      "test-client",
		Timeout:               2 * time.Second,
	}
	return NewClient(cfg, m)
}

func TestStationInformation(t *testing.T) {
	var gotHeader string
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get(ClientIdentifierHeader)
		assert.Equal(t, "/station_information.json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(informationBody))
	})
	m := metrics.New()

	stations, err := newTestClient(server, m).StationInformation(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "test-client", gotHeader)
	require.Len(t, stations, 2)
	assert.Equal(t, StationID(1), stations[0].StationID)
	assert.Equal(t, "A", stations[0].Name)
	assert.Equal(t, "Addr1", stations[0].Address)
	require.NotNil(t, stations[0].Capacity)
	assert.Equal(t, 12, *stations[0].Capacity)
	assert.Equal(t, StationID(2), stations[1].StationID)
	assert.Nil(t, stations[1].Capacity)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.FeedFetchesTotal.WithLabelValues(FeedStationInformation, metrics.OutcomeSuccess)))
}

func TestStationStatus(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/station_status.json", r.URL.Path)
		assert.Equal(t, "test-client", r.Header.Get(ClientIdentifierHeader))
		_, _ = w.Write([]byte(statusBody))
	})

	stations, err := newTestClient(server, nil).StationStatus(context.Background())
	require.NoError(t, err)
	require.Len(t, stations, 1)
	assert.Equal(t, StationID(1), stations[0].StationID)
	require.NotNil(t, stations[0].NumBikesAvailable)
	assert.Equal(t, 5, *stations[0].NumBikesAvailable)
}

func TestGzipBody(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(statusBody))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "gzip", r.Header.Get("Accept-Encoding"))
		w.Header().Set("Content-Encoding", "gzip")
		_, _ = w.Write(buf.Bytes())
	})

	stations, err := newTestClient(server, nil).StationStatus(context.Background())
	require.NoError(t, err)
	require.Len(t, stations, 1)
}

func TestNonSuccessStatus(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	})
	m := metrics.New()

	_, err := newTestClient(server, m).StationInformation(context.Background())
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
	assert.Equal(t, "Not Found", statusErr.StatusText)
	assert.Equal(t, FeedStationInformation, statusErr.Feed)
	assert.Equal(t, "Not Found", DisplayMessage(err))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.FeedFetchesTotal.WithLabelValues(FeedStationInformation, metrics.OutcomeHTTPError)))
}

// rawStatusServer answers every connection with statusLine and an empty body.
// httptest cannot send a status line without a reason phrase.
func rawStatusServer(t *testing.T, statusLine string) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(conn net.Conn) {
				defer conn.Close()
				if _, err := http.ReadRequest(bufio.NewReader(conn)); err != nil {
					return
				}
				_, _ = conn.Write([]byte(statusLine + "\r\nContent-Length: 0\r\nConnection: close\r\n\r\n"))
			}(conn)
		}
	}()
	return "http://" + ln.Addr().String()
}

func TestNonSuccessStatusWithoutReasonPhrase(t *testing.T) {
	base := rawStatusServer(t, "HTTP/1.1 599")
	client := NewClient(Config{
		StationInformationURL: base + "/station_information.json",
		StationStatusURL:      base + "/station_status.json",
		ClientIdentifier:      "test-client",
		Timeout:               2 * time.Second,
	}, nil)

	_, err := client.StationInformation(context.Background())
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, 599, statusErr.Code)
	assert.Equal(t, "HTTP 599", statusErr.StatusText)
	assert.Equal(t, "HTTP 599", DisplayMessage(err))
}

func TestDisplayMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "status text", err: &StatusError{Feed: FeedStationStatus, Code: 503, StatusText: "Service Unavailable"}, want: "Service Unavailable"},
		{name: "empty status text", err: &StatusError{Feed: FeedStationStatus, Code: 599}, want: "HTTP 599"},
		{name: "wrapped status", err: fmt.Errorf("load: %w", &StatusError{Code: 404, StatusText: "Not Found"}), want: "Not Found"},
		{name: "payload", err: &PayloadError{Feed: FeedStationInformation, Err: errors.New("bad json")}, want: "station_information feed malformed: bad json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayMessage(tt.err))
		})
	}
}

func TestMalformedPayloads(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "not json", body: "<html>oops</html>", want: "station_status feed malformed"},
		{name: "missing data", body: `{"last_updated": 1}`, want: "missing data.stations"},
		{name: "missing stations", body: `{"data": {}}`, want: "missing data.stations"},
		{name: "non integer id", body: `{"data": {"stations": [{"station_id": "abc"}]}}`, want: `station_id "abc" is not an integer`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := newTestClient(server, nil).StationStatus(context.Background())
			require.Error(t, err)

			var payloadErr *PayloadError
			require.True(t, errors.As(err, &payloadErr))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEmptyStationListIsValid(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": {"stations": []}}`))
	})

	stations, err := newTestClient(server, nil).StationInformation(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stations)
}

func TestOversizedBody(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": {"stations": [{"station_id": 1, "name": "`))
		_, _ = w.Write([]byte(strings.Repeat("x", maxBodySize)))
		_, _ = w.Write([]byte(`"}]}}`))
	})

	_, err := newTestClient(server, nil).StationInformation(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds size limit")
}

func TestTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := newTestClient(server, nil)
	server.Close()

	_, err := client.StationInformation(context.Background())
	require.Error(t, err)

	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.True(t, strings.HasPrefix(DisplayMessage(err), "station_information feed unavailable"))
}

func TestContextCancellation(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(server, nil).StationStatus(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
