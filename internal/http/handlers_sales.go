package http

import "net/http"

func (s *Server) handleTally(w http.ResponseWriter, r *http.Request) {
	tally, total := s.sales.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"tally": tally,
		"total": total,
	})
}

func (s *Server) handleRecordSale(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	count, err := s.sales.Record(name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"name":  name,
		"count": count,
		"total": s.sales.CurrentTotal(),
	})
}

func (s *Server) handleUndoSale(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	count, err := s.sales.Undo(name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"name":  name,
		"count": count,
		"total": s.sales.CurrentTotal(),
	})
}
