package ecourts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"causelist-backend/lib/telemetry"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/ecourts")
	t.Cleanup(cleanup)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(ClientOptions{
		BaseUrl: server.URL + "/ecourtindia_v6",
	})
	require.NoError(t, err)
	return client
}

func TestPrepareFormData(t *testing.T) {
	client, err := NewClient(ClientOptions{})
	require.NoError(t, err)

	data := client.prepareFormData(map[string]any{
		"state_code": "26",
		"count":      3,
		"skipped":    nil,
	})
	require.Equal(t, map[string]string{
		"ajax_req":   "true",
		"state_code": "26",
		"count":      "3",
	}, data)

	client.observePayload(map[string]any{"app_token": "tok-1"})
	data = client.prepareFormData(nil)
	require.Equal(t, map[string]string{
		"ajax_req":  "true",
		"app_token": "tok-1",
	}, data)
}

func TestObservePayloadReplacesToken(t *testing.T) {
	client, err := NewClient(ClientOptions{})
	require.NoError(t, err)

	client.observePayload(map[string]any{"app_token": "first"})
	require.Equal(t, "first", client.appToken)

	// newer values win outright
	client.observePayload(map[string]any{"app_token": "second"})
	require.Equal(t, "second", client.appToken)

	// payloads without a token leave the current one alone
	client.observePayload(map[string]any{"status": float64(1)})
	require.Equal(t, "second", client.appToken)
}

func TestObserveMarkupOnlySeedsToken(t *testing.T) {
	client, err := NewClient(ClientOptions{})
	require.NoError(t, err)

	client.observeMarkup(`<html><body><input id="app_token" value="seed"></body></html>`)
	require.Equal(t, "seed", client.appToken)

	client.observeMarkup(`<html><body><input id="app_token" value="later"></body></html>`)
	require.Equal(t, "seed", client.appToken)
}

func TestEnsureReadyIsIdempotent(t *testing.T) {
	var warmups int64
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&warmups, 1)
		w.Write([]byte(`<html><input id="app_token" value="warm"></html>`))
	}))

	ctx := context.Background()
	client.ensureReady(ctx)
	client.ensureReady(ctx)
	client.ensureReady(ctx)

	require.EqualValues(t, 1, atomic.LoadInt64(&warmups))
	require.Equal(t, "warm", client.appToken)
}

func TestEnsureReadyToleratesFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client, err := NewClient(ClientOptions{BaseUrl: server.URL + "/ecourtindia_v6"})
	require.NoError(t, err)

	// a dead portal must not panic or mark the session ready
	client.ensureReady(context.Background())
	require.False(t, client.warmedUp)
	require.Empty(t, client.appToken)
}

func TestResolvePortalURL(t *testing.T) {
	client, err := NewClient(ClientOptions{})
	require.NoError(t, err)

	testCases := []struct {
		ref      string
		expected string
	}{
		{
			ref:      "securimage/securimage_show.php",
			expected: "https://services.ecourts.gov.in/securimage/securimage_show.php",
		},
		{
			ref:      "/securimage/securimage_show.php",
			expected: "https://services.ecourts.gov.in/securimage/securimage_show.php",
		},
		{
			ref:      "https://elsewhere.gov.in/img.png",
			expected: "https://elsewhere.gov.in/img.png",
		},
	}
	for _, test := range testCases {
		require.Equal(t, test.expected, client.resolvePortalURL(test.ref))
	}
}
