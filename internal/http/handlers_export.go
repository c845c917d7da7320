package http

import (
	"fmt"
	"net/http"

	"cassa/internal/core"
	"cassa/internal/export"
	"cassa/internal/log"
)

func (s *Server) handleExportHistory(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("format")
	if name == "" {
		name = string(export.FormatJSON)
	}
	format, err := export.ParseFormat(name)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out, err := export.Export(s.dayClose.History(), format)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	s.logger.Info("History exported",
		log.FieldOperation, log.OpExport,
		log.FieldFormat, string(format))

	w.Header().Set("Content-Type", export.ContentType(format))
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.Filename(format, core.Today())))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}
