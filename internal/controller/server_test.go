package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"launchplane/internal/launches"
	"launchplane/internal/store"
	"launchplane/internal/store/memory"
	"launchplane/pkg/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	ctx := context.Background()
	mem := memory.New()
	require.NoError(t, mem.SavePlanet(ctx, &store.Planet{KeplerName: "Kepler-442 b"}))

	svc, err := launches.New(launches.Deps{
		Launches:  mem,
		Planets:   mem,
		Allocator: mem,
	})
	require.NoError(t, err)

	srv, err := New(Options{Addr: ":0", Service: svc, DB: mem})
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestServer_ScheduleListAbort(t *testing.T) {
	ts := newTestServer(t)

	body := `{"mission":"Kepler Exploration X","rocket":"Explorer IS1","target":"Kepler-442 b","launchDate":"2030-12-27"}`
	resp, err := http.Post(ts.URL+"/v1/launches", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	var created api.Launch
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, 100, created.FlightNumber)
	assert.Equal(t, []string{"Zero To Mastery", "NASA"}, created.Customers)

	resp, err = http.Get(ts.URL + "/v1/launches")
	require.NoError(t, err)
	defer resp.Body.Close()
	var list []api.Launch
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 1)

	abort := func(id string) (int, string) {
		req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/v1/launches/"+id, nil)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		out, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, string(out)
	}

	code, out := abort("100")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"ok":true}`, out)

	code, out = abort("100")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"ok":false}`, out)

	code, out = abort("555")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, out, "Launch not found")

	for _, id := range []string{"0", "-1"} {
		code, out = abort(id)
		assert.Equal(t, http.StatusNotFound, code, id)
		assert.Contains(t, out, "Launch not found", id)
	}
}

func TestServer_UnknownTarget(t *testing.T) {
	ts := newTestServer(t)

	body := `{"mission":"m","rocket":"r","target":"Kepler-1649 c","launchDate":"2030-12-27"}`
	resp, err := http.Post(ts.URL+"/v1/launches", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_Probes(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz", "/v1/planets"} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	mem := memory.New()
	svc, err := launches.New(launches.Deps{Launches: mem, Planets: mem, Allocator: mem})
	require.NoError(t, err)

	srv, err := New(Options{Addr: "127.0.0.1:0", Service: svc, DB: mem})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
