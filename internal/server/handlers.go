package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sohailshk/SEC-Filings-QA-Agent/internal/models"
	"github.com/sohailshk/SEC-Filings-QA-Agent/internal/storage"
	"github.com/sohailshk/SEC-Filings-QA-Agent/internal/vector"
)

type ingestRequest struct {
	Ticker     string `json:"ticker"`
	FilingType string `json:"filing_type"`
	Limit      int    `json:"limit"`
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Ticker == "" {
		s.respondError(w, http.StatusBadRequest, "ticker is required")
		return
	}
	if req.FilingType == "" {
		req.FilingType = "10-K"
	}
	if req.Limit <= 0 {
		req.Limit = 10
	}

	s.logger.Info("ingest request",
		zap.String("ticker", req.Ticker),
		zap.String("filing_type", req.FilingType),
		zap.Int("limit", req.Limit))

	results, err := s.indexer.ProcessCompanyFilings(r.Context(), req.Ticker, req.FilingType, req.Limit)
	if err != nil {
		s.logger.Error("ingest failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"ticker":  req.Ticker,
		"filings": results,
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == "" {
		s.respondError(w, http.StatusBadRequest, "query is required")
		return
	}
	if req.K <= 0 {
		req.K = s.config.Search.DefaultK
	}
	if req.K > s.config.Search.MaxK {
		req.K = s.config.Search.MaxK
	}

	start := time.Now()
	results, err := s.index.Search(r.Context(), req.Query, req.K, vector.Filter(req.Filter))
	if err != nil {
		s.logger.Error("search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, &models.SearchResponse{
		Results:   results,
		Total:     len(results),
		QueryTime: time.Since(start).Milliseconds(),
		Query:     req.Query,
	})
}

func (s *Server) handleListFilings(w http.ResponseWriter, r *http.Request) {
	ticker := chi.URLParam(r, "ticker")
	filings, err := s.storage.ListFilingsByTicker(r.Context(), ticker)
	if err != nil {
		s.logger.Error("list filings failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if filings == nil {
		filings = []*models.Filing{}
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"ticker":  ticker,
		"filings": filings,
		"total":   len(filings),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	companies, err := s.storage.CountCompanies(ctx)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	filings, err := s.storage.CountFilings(ctx)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	chunks, err := s.storage.CountChunks(ctx)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	stats := s.index.Stats()
	resp := map[string]any{
		"companies":    companies,
		"filings":      filings,
		"chunks":       chunks,
		"vector_index": stats,
		"config": map[string]any{
			"embedding_dimensions": s.config.Embedding.Dimensions,
			"chunk_size":           s.config.Chunking.ChunkSize,
			"chunk_overlap":        s.config.Chunking.ChunkOverlap,
			"database_path":        s.config.Storage.DatabasePath,
			"vector_index_dir":     s.config.Storage.VectorIndexDir,
		},
	}
	if diskBytes, err := storage.DiskUsageBytes(
		s.config.Storage.DatabasePath,
		s.config.Storage.VectorIndexDir,
	); err == nil {
		resp["disk_usage_bytes"] = diskBytes
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
