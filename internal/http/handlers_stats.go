package http

import (
	"net/http"
	"strconv"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	days := queryInt(r, "days", 0) // 0 means the configured default

	key := strconv.Itoa(days)
	if cached, ok := s.statsCache.Get(key); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	window := s.stats.Window(days)
	s.statsCache.Set(key, window)
	writeJSON(w, http.StatusOK, window)
}
