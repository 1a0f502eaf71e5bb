package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	cfgpkg "github.com/rzbill/flake/internal/config"
	"github.com/rzbill/flake/internal/runtime"
	pebblestore "github.com/rzbill/flake/internal/storage/pebble"
	logpkg "github.com/rzbill/flake/pkg/log"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := cfgpkg.Default()
	cfg.MachineID = 7
	cfg.DatacenterID = 3
	rt, err := runtime.Open(runtime.Options{
		DataDir: t.TempDir(),
		Fsync:   pebblestore.FsyncModeNever,
		Config:  cfg,
		Logger:  errorLogger(),
	})
	if err != nil {
		t.Fatalf("rt open: %v", err)
	}
	t.Cleanup(func() { rt.Close() })
	return New(rt, errorLogger())
}

func errorLogger() logpkg.Logger {
	return logpkg.NewLogger(
		logpkg.WithLevel(logpkg.ErrorLevel),
		logpkg.WithOutput(logpkg.NullOutput{}),
	)
}

func TestHealthHandler(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/v1/healthz", nil)
	w := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}
}

func TestNextHandler(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/id/next", nil)
	w := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}
	var resp idResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !regexp.MustCompile(`^[0-9]+$`).MatchString(resp.ID) {
		t.Fatalf("id not decimal: %q", resp.ID)
	}
	if w.Header().Get("X-Request-Id") == "" {
		t.Fatalf("missing request id header")
	}
}

func TestNextHandlerRejectsGet(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/v1/id/next", nil)
	w := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status: %d", w.Code)
	}
}

func TestBatchHandler(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/id/batch", strings.NewReader(`{"count":5}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}
	var resp batchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(resp.IDs) != 5 {
		t.Fatalf("expected 5 ids, got %d", len(resp.IDs))
	}
	seen := map[string]struct{}{}
	for _, id := range resp.IDs {
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = struct{}{}
	}
}

func TestBatchHandlerRejectsBadCount(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/id/batch", strings.NewReader(`{"count":0}`))
	w := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: %d", w.Code)
	}
}

func TestDecodeHandlerRoundTrip(t *testing.T) {
	s := newTestServer(t)

	// Issue, then decode what was issued.
	req := httptest.NewRequest(http.MethodPost, "/v1/id/next", nil)
	w := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(w, req)
	var issued idResponse
	if err := json.Unmarshal(w.Body.Bytes(), &issued); err != nil {
		t.Fatalf("json: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/id/decode?id="+issued.ID, nil)
	w = httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}
	var dec decodeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &dec); err != nil {
		t.Fatalf("json: %v", err)
	}
	if dec.MachineID != 7 || dec.DatacenterID != 3 {
		t.Fatalf("identity mismatch: %+v", dec)
	}
	if dec.TimestampMs <= 0 {
		t.Fatalf("timestamp: %d", dec.TimestampMs)
	}
}

func TestDecodeHandlerRejectsBadID(t *testing.T) {
	s := newTestServer(t)
	for _, q := range []string{"", "?id=abc", "?id=-5"} {
		req := httptest.NewRequest(http.MethodGet, "/v1/id/decode"+q, nil)
		w := httptest.NewRecorder()
		s.srv.Handler.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("query %q: status %d", q, w.Code)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/v1/id/next", nil)
	w := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("status: %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("missing CORS header")
	}
}
