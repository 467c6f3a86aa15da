package mockserver

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/appetizers/internal/domain/appetizer"
	"github.com/xenking/appetizers/internal/transport"
)

func newTestServer(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()
	s, err := New(cfg, nil)
	require.NoError(t, err)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestCatalogEndpoint(t *testing.T) {
	srv := newTestServer(t, Config{})

	resp, err := http.Get(srv.URL + "/swiftui-fundamentals/appetizers")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	items, err := appetizer.DecodeCatalog(body)
	require.NoError(t, err)
	require.Len(t, items, 9)

	first := items[0]
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, "Asian Flank Steak", first.Name)
	assert.True(t, first.Price.Equal(decimal.RequireFromString("8.99")))
	assert.Equal(t, 300, first.Calories)

	// Image URLs are absolute, derived from the request host.
	assert.True(t, strings.HasPrefix(first.ImageURL, srv.URL+"/images/"),
		"imageURL %q should start with %q", first.ImageURL, srv.URL+"/images/")
}

func TestCatalogEndpoint_ConfiguredImageBase(t *testing.T) {
	srv := newTestServer(t, Config{ImageBaseURL: "https://cdn.example.com/"})

	resp, err := http.Get(srv.URL + "/swiftui-fundamentals/appetizers")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	items, err := appetizer.DecodeCatalog(body)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/images/appetizers/asian-flank-steak.jpg", items[0].ImageURL)
}

func TestCatalogEndpoint_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, Config{})

	resp, err := http.Post(srv.URL+"/swiftui-fundamentals/appetizers", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, Config{})

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Server is running", body.Status)
	assert.NotEmpty(t, body.Timestamp)
}

func TestImageEndpoint(t *testing.T) {
	srv := newTestServer(t, Config{})

	resp, err := http.Get(srv.URL + "/images/appetizers/asian-flank-steak.jpg")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotEmpty(t, body)
}

// TestTransportContract runs the real transport client against the mock
// server to pin the request/response contract between them.
func TestTransportContract(t *testing.T) {
	srv := newTestServer(t, Config{})
	client := transport.New(srv.URL+"/swiftui-fundamentals", srv.Client(), nil)

	items, err := client.FetchCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 9)
	assert.Equal(t, "Texas Cheese Fries", items[8].Name)

	// The advertised image URLs resolve to decodable images.
	data := client.DownloadImage(context.Background(), items[0].ImageURL)
	assert.NotNil(t, data)
}
