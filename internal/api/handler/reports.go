package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/onedaone/reco-ai-demo/internal/api/response"
	"github.com/onedaone/reco-ai-demo/internal/export"
	"github.com/onedaone/reco-ai-demo/internal/store"
	"github.com/onedaone/reco-ai-demo/pkg/models"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

type listResponse struct {
	Analyses []*models.AnalysisRecord `json:"analyses"`
	Total    int                      `json:"total"`
	Limit    int                      `json:"limit"`
	Offset   int                      `json:"offset"`
}

// NewListAnalysesHandler returns an http.HandlerFunc for GET /api/v1/analyses.
func NewListAnalysesHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := queryInt(r, "limit", defaultListLimit)
		if limit < 1 {
			limit = 1
		}
		if limit > maxListLimit {
			limit = maxListLimit
		}
		offset := queryInt(r, "offset", 0)
		if offset < 0 {
			offset = 0
		}

		recs, total, err := st.ListAnalyses(r.Context(), limit, offset)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "Failed to list analyses")
			return
		}
		if recs == nil {
			recs = []*models.AnalysisRecord{}
		}

		response.JSON(w, http.StatusOK, listResponse{
			Analyses: recs,
			Total:    total,
			Limit:    limit,
			Offset:   offset,
		})
	}
}

// NewGetAnalysisHandler returns an http.HandlerFunc for GET /api/v1/analyses/{id}.
func NewGetAnalysisHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, ok := fetchAnalysis(w, r, st)
		if !ok {
			return
		}
		response.JSON(w, http.StatusOK, rec)
	}
}

// NewExportAnalysisHandler returns an http.HandlerFunc for
// GET /api/v1/analyses/{id}/export, serving the estimate as an XLSX download.
func NewExportAnalysisHandler(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, ok := fetchAnalysis(w, r, st)
		if !ok {
			return
		}

		data, err := export.AnalysisXLSX(rec)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "Failed to export analysis")
			return
		}

		w.Header().Set("Content-Type",
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", "analysis-"+rec.ID.String()+".xlsx"))
		w.Write(data)
	}
}

func fetchAnalysis(w http.ResponseWriter, r *http.Request, st store.Store) (*models.AnalysisRecord, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid analysis ID")
		return nil, false
	}

	rec, err := st.GetAnalysis(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			response.Error(w, http.StatusNotFound, "Analysis not found")
		} else {
			response.Error(w, http.StatusInternalServerError, "Failed to load analysis")
		}
		return nil, false
	}
	return rec, true
}

func queryInt(r *http.Request, key string, defaultVal int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}
