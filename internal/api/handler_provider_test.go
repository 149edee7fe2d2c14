package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	membalances "github.com/yongtae/pointsvc/internal/repos/balances/memory"
	memhistories "github.com/yongtae/pointsvc/internal/repos/histories/memory"
	"github.com/yongtae/pointsvc/internal/services/points"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	svc := points.New(membalances.New(), memhistories.New())
	srv := httptest.NewServer(NewRouter(svc))
	t.Cleanup(srv.Close)

	return srv
}

func doJSON(t *testing.T, method, url, body string) (*http.Response, map[string]any) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequestWithContext(t.Context(), method, url, reader)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	t.Cleanup(func() { _ = resp.Body.Close() })

	var decoded map[string]any
	err = json.NewDecoder(resp.Body).Decode(&decoded)
	require.NoError(t, err)

	return resp, decoded
}

func TestChargeEndpoint_Succeeds(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodPatch, srv.URL+"/point/10/charge", `{"amount":3000}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(10), body["userId"])
	assert.Equal(t, float64(3000), body["point"])
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}

func TestChargeEndpoint_LimitExceededMapsToConflict(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPatch, srv.URL+"/point/10/charge", `{"amount":5000}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, http.MethodPatch, srv.URL+"/point/10/charge", `{"amount":100}`)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, body["error"], "maximum balance")
}

func TestUseEndpoint_Succeeds(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPatch, srv.URL+"/point/20/charge", `{"amount":1000}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, http.MethodPatch, srv.URL+"/point/20/use", `{"amount":300}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(700), body["point"])
}

func TestUseEndpoint_InsufficientMapsToConflict(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodPatch, srv.URL+"/point/30/use", `{"amount":100}`)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, body["error"], "insufficient")
}

func TestMutationEndpoints_ValidationMapsToBadRequest(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPatch, srv.URL+"/point/10/charge", `{"amount":99}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPatch, srv.URL+"/point/0/charge", `{"amount":100}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPatch, srv.URL+"/point/abc/charge", `{"amount":100}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPatch, srv.URL+"/point/10/charge", `{"amount":100,"bogus":1}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPatch, srv.URL+"/point/10/charge", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetPointEndpoint(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/point/55", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(55), body["userId"])
	assert.Equal(t, float64(0), body["point"])
}

func TestGetHistoriesEndpoint(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPatch, srv.URL+"/point/40/charge", `{"amount":500}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPatch, srv.URL+"/point/40/use", `{"amount":200}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, srv.URL+"/point/40/histories", nil)
	require.NoError(t, err)

	histResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	defer histResp.Body.Close()

	require.Equal(t, http.StatusOK, histResp.StatusCode)

	var entries []map[string]any
	require.NoError(t, json.NewDecoder(histResp.Body).Decode(&entries))
	require.Len(t, entries, 2)

	assert.Equal(t, "charge", entries[0]["type"])
	assert.Equal(t, float64(500), entries[0]["amount"])
	assert.Equal(t, "use", entries[1]["type"])
	assert.Equal(t, float64(200), entries[1]["amount"])
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/healthz", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}
