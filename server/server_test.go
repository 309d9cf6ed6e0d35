package server

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomis52/timetrack/ledger"
)

func newTestServer(t *testing.T, ledgerContent string) *http.ServeMux {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	path := filepath.Join(t.TempDir(), "activities.csv")
	if ledgerContent != "" {
		require.NoError(t, os.WriteFile(path, []byte(ledgerContent), 0o644))
	}

	srv, err := New(8080, ledger.NewFileStore(path, logger), NewAuth("s3cret", ""), logger)
	require.NoError(t, err)

	mux := http.NewServeMux()
	srv.registerRoutes(mux)
	return mux
}

func TestNew_RequiresPort(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	_, err := New(0, ledger.NewFileStore("x.csv", logger), NewAuth("s", ""), logger)
	assert.Error(t, err)
}

func TestRoutes_RootServesLedger(t *testing.T) {
	mux := newTestServer(t, "Activity,Start,End\n")

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Activity,Start,End\n", w.Body.String())
}

func TestRoutes_UnknownPathIs404(t *testing.T) {
	mux := newTestServer(t, "Activity,Start,End\n")

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/no/such/path", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRoutes_SyncRoundTrip(t *testing.T) {
	mux := newTestServer(t, "")

	body := `{"password":"s3cret","data":"Activity,Start,End\n"}`
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sync", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/retrieve", strings.NewReader(`{"password":"s3cret"}`)))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Activity,Start,End\n", w.Body.String())
}

func TestRoutes_Health(t *testing.T) {
	mux := newTestServer(t, "")

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestRoutes_Metrics(t *testing.T) {
	mux := newTestServer(t, "")

	// Drive one counted request first.
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sync", strings.NewReader("{")))
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "timetrack_requests_total")
}
