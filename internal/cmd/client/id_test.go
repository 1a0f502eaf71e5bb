package client

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func fakeServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/id/next", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.Write([]byte(`{"id":"123456789"}`))
	})
	mux.HandleFunc("/v1/id/batch", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ids":["1","2","3"]}`))
	})
	mux.HandleFunc("/v1/id/decode", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("id") == "" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"missing id parameter"}`))
			return
		}
		w.Write([]byte(`{"id":"123456789","timestampMs":1704067200042,"datacenterId":3,"machineId":7,"sequence":0}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestIDNext(t *testing.T) {
	srv := fakeServer(t)
	cmd := NewIDCommand(func() string { return srv.URL })
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"next"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if strings.TrimSpace(out.String()) != "123456789" {
		t.Fatalf("output: %q", out.String())
	}
}

func TestIDNextCount(t *testing.T) {
	srv := fakeServer(t)
	cmd := NewIDCommand(func() string { return srv.URL })
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"next", "--count", "3"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	lines := strings.Fields(out.String())
	if len(lines) != 3 {
		t.Fatalf("expected 3 ids, got %v", lines)
	}
}

func TestIDDecode(t *testing.T) {
	srv := fakeServer(t)
	cmd := NewIDCommand(func() string { return srv.URL })
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"decode", "123456789"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out.String(), `"machineId": 7`) {
		t.Fatalf("output: %q", out.String())
	}
}

func TestIDDecodeServerError(t *testing.T) {
	srv := fakeServer(t)
	cmd := NewIDCommand(func() string { return srv.URL })
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"decode", ""})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for empty id")
	}
}
