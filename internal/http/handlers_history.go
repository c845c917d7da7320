package http

import (
	"net/http"

	"cassa/internal/log"
)

func (s *Server) handleCloseDay(w http.ResponseWriter, r *http.Request) {
	entry, err := s.dayClose.Close()
	if err != nil {
		s.logger.Error("Day close failed",
			log.FieldOperation, log.OpClose, log.FieldError, err.Error())
		writeServiceError(w, err)
		return
	}

	s.invalidateStats()
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"history": s.dayClose.History(),
	})
}

func (s *Server) handleRecentHistory(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 3)
	writeJSON(w, http.StatusOK, map[string]any{
		"history": s.stats.Recent(limit),
	})
}

func (s *Server) handleHistoryChart(w http.ResponseWriter, r *http.Request) {
	days := queryInt(r, "days", 7)
	writeJSON(w, http.StatusOK, map[string]any{
		"chart": s.stats.Chart(days),
	})
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := s.dayClose.ClearHistory(); err != nil {
		writeServiceError(w, err)
		return
	}

	s.invalidateStats()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleResetAll(w http.ResponseWriter, r *http.Request) {
	if err := s.dayClose.ResetAll(); err != nil {
		writeServiceError(w, err)
		return
	}

	s.invalidateStats()
	w.WriteHeader(http.StatusNoContent)
}
