package api

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/banshee-data/welllog/internal/db"
	"github.com/banshee-data/welllog/internal/httputil"
	"github.com/banshee-data/welllog/internal/las"
	"github.com/banshee-data/welllog/internal/logplot"
)

func (s *Server) storeAvailable(w http.ResponseWriter) bool {
	if s.store == nil {
		httputil.WriteJSONError(w, http.StatusServiceUnavailable, "well store not configured")
		return false
	}
	return true
}

func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, db.ErrNotFound) {
		httputil.NotFound(w, err.Error())
		return
	}
	httputil.InternalServerError(w, err.Error())
}

// handleWells lists stored wells (GET) or imports the LAS body (POST). The
// optional ?source= names the upload in the store.
func (s *Server) handleWells(w http.ResponseWriter, r *http.Request) {
	if !s.storeAvailable(w) {
		return
	}
	switch r.Method {
	case http.MethodGet:
		wells, err := s.store.List()
		if err != nil {
			httputil.InternalServerError(w, err.Error())
			return
		}
		if wells == nil {
			wells = []db.WellRecord{}
		}
		httputil.WriteJSONOK(w, wells)
	case http.MethodPost:
		doc, ok := s.readDocument(w, r)
		if !ok {
			return
		}
		id, err := s.store.Insert(doc, r.URL.Query().Get("source"))
		if err != nil {
			httputil.InternalServerError(w, err.Error())
			return
		}
		summary := summarise(doc)
		summary.WellID = id
		httputil.WriteJSON(w, http.StatusCreated, summary)
	default:
		httputil.MethodNotAllowed(w)
	}
}

func (s *Server) handleWell(w http.ResponseWriter, r *http.Request) {
	if !s.storeAvailable(w) {
		return
	}
	id := r.PathValue("id")
	switch r.Method {
	case http.MethodGet:
		rec, err := s.store.Get(id)
		if err != nil {
			s.writeStoreError(w, err)
			return
		}
		httputil.WriteJSONOK(w, rec)
	case http.MethodDelete:
		if err := s.store.Delete(id); err != nil {
			s.writeStoreError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		httputil.MethodNotAllowed(w)
	}
}

// loadWell fetches the stored document for a GET on a well sub-resource.
func (s *Server) loadWell(w http.ResponseWriter, r *http.Request) (*las.Document, bool) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return nil, false
	}
	if !s.storeAvailable(w) {
		return nil, false
	}
	doc, err := s.store.LoadDocument(r.PathValue("id"))
	if err != nil {
		s.writeStoreError(w, err)
		return nil, false
	}
	return doc, true
}

func (s *Server) exportWell(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.loadWell(w, r)
	if !ok {
		return
	}
	s.writeLAS(w, doc, curvesParam(r), r.PathValue("id")+".las")
}

func (s *Server) chartWell(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.loadWell(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	err := logplot.RenderHTML(&buf, doc, curvesParam(r), logplot.ChartOptions{AssetsHost: s.opts.ChartAssetsHost})
	if err != nil {
		writeLASError(w, err)
		return
	}
	httputil.WriteBody(w, "text/html; charset=utf-8", "", &buf)
}

func (s *Server) plotWell(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.loadWell(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := logplot.RenderPNG(&buf, doc, curvesParam(r), s.opts.PlotWidthIn, s.opts.PlotHeightIn); err != nil {
		writeLASError(w, err)
		return
	}
	httputil.WriteBody(w, "image/png", "", &buf)
}
