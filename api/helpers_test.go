package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/proago/crm-engine/api"
	"github.com/proago/crm-engine/generic/store"
)

var testNow = time.Date(2025, time.April, 10, 9, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, opts ...api.Option) (*httptest.Server, *api.Handler) {
	t.Helper()
	opts = append([]api.Option{api.WithClock(func() time.Time { return testNow })}, opts...)
	h := api.NewHandler(store.NewTxMemory(), opts...)
	srv := httptest.NewServer(api.NewRouter(h, nil))
	t.Cleanup(srv.Close)
	return srv, h
}

// call sends body (a string is sent verbatim, anything else as JSON).
func call(t *testing.T, srv *httptest.Server, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func requireStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		body, _ := io.ReadAll(resp.Body)
		require.Equal(t, want, resp.StatusCode, "body: %s", body)
	}
}

// settingsWithBox2 is a settings document where a full-price D2D box2 is worth value.
func settingsWithBox2(value string) string {
	return `{
		"rateBands": [{"startISO": "2025-01-01", "rate": "15"}],
		"conversionType": {
			"D2D":   {"noDiscount": {"box2": "` + value + `", "box4": 90}, "discount": {"box2": 35, "box4": 70}},
			"EVENT": {"noDiscount": {"box2": 40, "box4": 80}, "discount": {"box2": 30, "box4": 60}}
		}
	}`
}

func addRecruiter(t *testing.T, srv *httptest.Server, id, name, role string) {
	t.Helper()
	resp := call(t, srv, http.MethodPost, "/api/recruiters", api.RecruiterRequest{ID: id, Name: name, Role: role})
	requireStatus(t, resp, http.StatusCreated)
}
