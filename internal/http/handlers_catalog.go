package http

import (
	"encoding/json"
	"net/http"

	"cassa/internal/core"
	"cassa/internal/log"
	"cassa/internal/services"
)

// productPayload is the write shape for add and update. Icon is a short
// glyph; Image is a large string-encoded payload destined for the icon
// store. On update, empty means "keep the current one".
type productPayload struct {
	Name  string `json:"name"`
	Price int    `json:"price"`
	Icon  string `json:"icon"`
	Image string `json:"image"`
}

// productView is the read shape: the catalog entry plus its resolved
// display icon, so the renderer never reaches into the icon store itself.
type productView struct {
	Name        string `json:"name"`
	Price       int    `json:"price"`
	Icon        string `json:"icon"`
	DisplayIcon string `json:"display_icon"`
	IsImage     bool   `json:"is_image"`
}

func (s *Server) productViews(catalog core.Catalog) []productView {
	views := make([]productView, len(catalog))
	for i, p := range catalog {
		display, isImage := s.catalog.ResolveIcon(p.Name)
		views[i] = productView{
			Name:        p.Name,
			Price:       p.Price,
			Icon:        p.Icon,
			DisplayIcon: display,
			IsImage:     isImage,
		}
	}
	return views
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"products": s.productViews(s.catalog.List()),
	})
}

func (s *Server) handleAddProduct(w http.ResponseWriter, r *http.Request) {
	var payload productPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := s.catalog.Add(payload.Name, payload.Price, services.IconSpec{
		Glyph: payload.Icon,
		Image: payload.Image,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	var payload productPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := s.catalog.Update(index, services.ProductUpdate{
		Name:  payload.Name,
		Price: payload.Price,
		Icon:  services.IconSpec{Glyph: payload.Icon, Image: payload.Image},
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if err := s.catalog.Delete(index); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExportCatalog(w http.ResponseWriter, r *http.Request) {
	out, err := s.catalog.ExportCSV()
	if err != nil {
		s.logger.Error("Catalog export failed",
			log.FieldOperation, log.OpExport, log.FieldError, err.Error())
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="products.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func (s *Server) handleImportCatalog(w http.ResponseWriter, r *http.Request) {
	added, err := s.catalog.ImportCSV(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"added": added})
}
