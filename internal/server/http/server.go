package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rzbill/flake/internal/runtime"
	logpkg "github.com/rzbill/flake/pkg/log"
	"github.com/rzbill/flake/pkg/snowflake"
)

type Server struct {
	rt     *runtime.Runtime
	srv    *http.Server
	lis    net.Listener
	logger logpkg.Logger
}

// New constructs the HTTP server and registers all routes.
func New(rt *runtime.Runtime, logger logpkg.Logger) *Server {
	mux := http.NewServeMux()
	s := &Server{
		rt:     rt,
		logger: logger.WithComponent("http"),
	}
	s.srv = &http.Server{Handler: cors(requestID(accessLog(s.logger, mux)))}
	mux.HandleFunc("/v1/healthz", s.handleHealth)
	mux.HandleFunc("/v1/id/next", s.handleNext)
	mux.HandleFunc("/v1/id/batch", s.handleBatch)
	mux.HandleFunc("/v1/id/decode", s.handleDecode)
	return s
}

// ListenAndServe binds to addr and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.lis = l
	s.logger.Info("http listening", logpkg.Str("addr", l.Addr().String()))
	errCh := make(chan error, 1)
	go func() { errCh <- s.srv.Serve(l) }()
	select {
	case <-ctx.Done():
		cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(cctx)
		return nil
	case err := <-errCh:
		return err
	}
}

// Close stops the server and closes the listener.
func (s *Server) Close() {
	if s.lis != nil {
		_ = s.lis.Close()
	}
}

// Addr returns the bound listener address, if listening.
func (s *Server) Addr() string {
	if s.lis == nil {
		return ""
	}
	return s.lis.Addr().String()
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.rt.CheckHealth(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not_serving"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type idResponse struct {
	ID string `json:"id"`
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id, err := s.rt.NextIDString()
	if err != nil {
		s.failIssue(w, err)
		return
	}
	writeJSON(w, http.StatusOK, idResponse{ID: id})
}

type batchRequest struct {
	Count int `json:"count"`
}

type batchResponse struct {
	IDs []string `json:"ids"`
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Count <= 0 {
		writeError(w, http.StatusBadRequest, errors.New("count must be positive"))
		return
	}
	ids, err := s.rt.NextIDs(req.Count)
	if err != nil {
		s.failIssue(w, err)
		return
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = strconv.FormatInt(id, 10)
	}
	writeJSON(w, http.StatusOK, batchResponse{IDs: out})
}

type decodeResponse struct {
	ID           string `json:"id"`
	TimestampMs  int64  `json:"timestampMs"`
	DatacenterID int64  `json:"datacenterId"`
	MachineID    int64  `json:"machineId"`
	Sequence     int64  `json:"sequence"`
}

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	raw := r.URL.Query().Get("id")
	if raw == "" {
		writeError(w, http.StatusBadRequest, errors.New("missing id parameter"))
		return
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		writeError(w, http.StatusBadRequest, errors.New("id must be a positive 64-bit decimal"))
		return
	}
	g := s.rt.Generator()
	writeJSON(w, http.StatusOK, decodeResponse{
		ID:           raw,
		TimestampMs:  g.Timestamp(id),
		DatacenterID: g.DatacenterIDOf(id),
		MachineID:    g.MachineIDOf(id),
		Sequence:     g.SequenceOf(id),
	})
}

// failIssue maps issuance failures onto status codes. Clock regression is a
// server-side fault; the gateway reports it and leaves retry policy to the
// caller.
func (s *Server) failIssue(w http.ResponseWriter, err error) {
	var cbe *snowflake.ClockBackwardsError
	if errors.As(err, &cbe) {
		s.logger.Error("clock moved backwards",
			logpkg.Int64("backwards_ms", cbe.BackwardsMs),
			logpkg.Int64("last_ms", cbe.LastMs),
			logpkg.Int64("now_ms", cbe.NowMs),
		)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeError(w, http.StatusInternalServerError, err)
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
