package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajkula/livetext/adapter/outbound/filesource"
	"github.com/ajkula/livetext/adapter/outbound/storage/memory"
	"github.com/ajkula/livetext/config"
	"github.com/ajkula/livetext/domain/model"
	"github.com/ajkula/livetext/domain/port/inbound"
	"github.com/ajkula/livetext/domain/port/outbound"
	"github.com/ajkula/livetext/domain/service"
)

type mockLogger struct{}

func (m *mockLogger) Info(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Error(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Warn(msg string, keysAndValues ...interface{})  {}

const testInterval = 10 * time.Millisecond

var baseTime = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

type testServer struct {
	router  *mux.Router
	fs      afero.Fs
	manager inbound.ResourceManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	memFs := afero.NewMemMapFs()
	manager := service.NewResourceManagerService(
		filesource.NewAferoSource(memFs),
		&mockLogger{},
		service.WatchOptions{Interval: testInterval},
	)
	t.Cleanup(manager.Shutdown)

	handler := NewHandler(manager, memory.NewResourceRegistry(), config.DefaultConfig(), &mockLogger{})
	router := mux.NewRouter()
	handler.SetupRoutes(router)

	return &testServer{router: router, fs: memFs, manager: manager}
}

// writeFile replaces path atomically so the watcher never sees a partial write
func (s *testServer) writeFile(t *testing.T, path, text string, modTime time.Time) {
	t.Helper()
	tmp := path + ".tmp"
	require.NoError(t, afero.WriteFile(s.fs, tmp, []byte(text), 0644))
	require.NoError(t, s.fs.Chtimes(tmp, modTime, modTime))
	require.NoError(t, s.fs.Rename(tmp, path))
}

func (s *testServer) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if raw, ok := body.(string); ok {
		reader = bytes.NewReader([]byte(raw))
	} else if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func (s *testServer) register(t *testing.T, path string) ResourceResponse {
	t.Helper()
	rr := s.do("POST", "/api/resources", RegisterResourceRequest{Path: path})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp ResourceResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func (s *testServer) fetch(t *testing.T, path string) (int, ResourceResponse, ErrorResponse) {
	t.Helper()
	rr := s.do("GET", path, nil)

	var resp ResourceResponse
	var errResp ErrorResponse
	if rr.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	} else {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errResp))
	}
	return rr.Code, resp, errResp
}

func TestHandler_RegisterAndGet(t *testing.T) {
	srv := newTestServer(t)
	srv.writeFile(t, "/data/a.txt", "v1", baseTime)

	created := srv.register(t, "/data/a.txt")
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "/data/a.txt", created.Path)
	assert.Equal(t, "v1", created.Text)

	code, resp, _ := srv.fetch(t, "/api/resources/"+created.ID)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "v1", resp.Text)

	rr := srv.do("GET", "/api/resources", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), created.ID)
	assert.Contains(t, rr.Body.String(), `"count":1`)
}

func TestHandler_ServesUpdatedContent(t *testing.T) {
	srv := newTestServer(t)
	srv.writeFile(t, "/data/a.txt", "v1", baseTime)
	created := srv.register(t, "/data/a.txt")

	srv.writeFile(t, "/data/a.txt", "v2", baseTime.Add(time.Second))

	assert.Eventually(t, func() bool {
		code, resp, _ := srv.fetch(t, "/api/resources/"+created.ID)
		return code == http.StatusOK && resp.Text == "v2"
	}, 2*time.Second, testInterval)
}

func TestHandler_StrictGetReportsDeletedFile(t *testing.T) {
	srv := newTestServer(t)
	srv.writeFile(t, "/data/a.txt", "v1", baseTime)
	created := srv.register(t, "/data/a.txt")

	require.NoError(t, srv.fs.Remove("/data/a.txt"))

	var lastErr ErrorResponse
	require.Eventually(t, func() bool {
		code, _, errResp := srv.fetch(t, "/api/resources/"+created.ID+"/strict")
		lastErr = errResp
		return code == http.StatusNotFound
	}, 2*time.Second, testInterval)
	assert.Contains(t, lastErr.Error, "stat")

	// the lenient read keeps serving the last good text
	code, resp, _ := srv.fetch(t, "/api/resources/"+created.ID)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "v1", resp.Text)
}

func TestHandler_RegisterErrors(t *testing.T) {
	srv := newTestServer(t)

	rr := srv.do("POST", "/api/resources", "{not json")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = srv.do("POST", "/api/resources", RegisterResourceRequest{Path: ""})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = srv.do("POST", "/api/resources", RegisterResourceRequest{Path: "/data/missing.txt"})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandler_UnknownResource(t *testing.T) {
	srv := newTestServer(t)

	code, _, errResp := srv.fetch(t, "/api/resources/does-not-exist")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "resource not found", errResp.Error)
}

func TestHandler_WatchControl(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		wantStatus int
	}{
		{name: "stop", method: "POST", path: "/api/watch/stop", wantStatus: http.StatusAccepted},
		{name: "start", method: "POST", path: "/api/watch/start", wantStatus: http.StatusAccepted},
		{name: "interval", method: "PUT", path: "/api/watch/interval", body: WatchIntervalRequest{Interval: "50ms"}, wantStatus: http.StatusAccepted},
		{name: "zero interval", method: "PUT", path: "/api/watch/interval", body: WatchIntervalRequest{Interval: "0s"}, wantStatus: http.StatusBadRequest},
		{name: "unparsable interval", method: "PUT", path: "/api/watch/interval", body: WatchIntervalRequest{Interval: "soon"}, wantStatus: http.StatusBadRequest},
		{name: "invalid body", method: "PUT", path: "/api/watch/interval", body: "{", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := srv.do(tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
		})
	}
}

func TestHandler_DeadWatcher(t *testing.T) {
	srv := newTestServer(t)
	srv.writeFile(t, "/data/a.txt", "v1", baseTime)
	srv.manager.Shutdown()

	for _, path := range []string{"/api/watch/start", "/api/watch/stop"} {
		rr := srv.do("POST", path, nil)
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	}

	rr := srv.do("PUT", "/api/watch/interval", WatchIntervalRequest{Interval: "1s"})
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	rr = srv.do("POST", "/api/resources", RegisterResourceRequest{Path: "/data/a.txt"})
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "no longer running"))
}

func TestHandler_Settings(t *testing.T) {
	srv := newTestServer(t)

	rr := srv.do("GET", "/api/settings", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp SettingsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotNil(t, resp.Config)
	assert.Equal(t, "1s", resp.Config.Watch.Interval)
}

// snapshotManager registers every path with a fixed text and exposes the mailbox
type snapshotManager struct {
	inbound.ResourceManager
	text    string
	mailbox *model.Mailbox
}

func (m *snapshotManager) Register(path string) (string, *model.ResourceHandle, error) {
	return m.text, model.NewResourceHandle(path, m.mailbox), nil
}

// updatingRegistry publishes a new version as soon as a resource is stored
type updatingRegistry struct {
	outbound.ResourceRegistry
	mailbox *model.Mailbox
}

func (r *updatingRegistry) Add(ctx context.Context, res *model.TextResource) (string, error) {
	id, err := r.ResourceRegistry.Add(ctx, res)
	r.mailbox.Push(model.Update{Text: "v2"})
	return id, err
}

func TestHandler_RegisterDoesNotReadStoredResource(t *testing.T) {
	mailbox := model.NewMailbox()
	manager := &snapshotManager{text: "v1", mailbox: mailbox}
	registry := &updatingRegistry{ResourceRegistry: memory.NewResourceRegistry(), mailbox: mailbox}

	router := mux.NewRouter()
	NewHandler(manager, registry, config.DefaultConfig(), &mockLogger{}).SetupRoutes(router)
	srv := &testServer{router: router}

	created := srv.register(t, "/data/a.txt")
	assert.Equal(t, "v1", created.Text)

	// the update published after Add is still waiting for the next locked read
	code, resp, _ := srv.fetch(t, "/api/resources/"+created.ID)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "v2", resp.Text)
}
