package server

import (
	"net/http"
)

// handleSnapshot serves the latest snapshot frame, JSON unless
// ?format=msgpack is given.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	latest := s.latest.Load()
	if latest == nil {
		http.Error(w, ErrNoSnapshot.Error(), http.StatusServiceUnavailable)
		return
	}

	format := FormatJSON
	w.Header().Set("Content-Type", "application/json")
	if r.URL.Query().Get("format") == "msgpack" {
		format = FormatMsgpack
		w.Header().Set("Content-Type", "application/msgpack")
	}
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(latest.bytes(format))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
