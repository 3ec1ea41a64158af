package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/sohailshk/SEC-Filings-QA-Agent/internal/config"
	"github.com/sohailshk/SEC-Filings-QA-Agent/internal/embedding"
	"github.com/sohailshk/SEC-Filings-QA-Agent/internal/extract"
	"github.com/sohailshk/SEC-Filings-QA-Agent/internal/indexer"
	"github.com/sohailshk/SEC-Filings-QA-Agent/internal/models"
	"github.com/sohailshk/SEC-Filings-QA-Agent/internal/secapi"
	"github.com/sohailshk/SEC-Filings-QA-Agent/internal/storage"
	"github.com/sohailshk/SEC-Filings-QA-Agent/internal/vector"
)

func newTestServer(t *testing.T) (*Server, *vector.FlatIndex, storage.Storage) {
	t.Helper()
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	cfg.Storage.DatabasePath = filepath.Join(t.TempDir(), "test.db")
	cfg.Storage.VectorIndexDir = t.TempDir()
	cfg.Embedding.Dimensions = 8

	st, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })

	embedder := embedding.NewMockEmbedder(8)
	index, err := vector.NewFlatIndex(embedder, 8)
	if err != nil {
		t.Fatal(err)
	}
	chunker, err := indexer.NewChunker(cfg.Chunking.ChunkSize, cfg.Chunking.ChunkOverlap)
	if err != nil {
		t.Fatal(err)
	}
	idx := indexer.NewIndexer(st, index,
		vector.NewIndexStore(cfg.Storage.VectorIndexDir),
		secapi.NewClient("test-key", cfg.SECAPI.BaseURL),
		extract.NewExtractor(), chunker)

	return NewServer(index, idx, st, cfg, zap.NewNop()), index, st
}

func doRequest(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	srv, _, _ := newTestServer(t)
	rec := doRequest(t, srv, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestHandleSearch(t *testing.T) {
	srv, index, _ := newTestServer(t)
	ctx := context.Background()
	if _, err := index.Add(ctx,
		[]string{"revenue increased due to strong iPhone sales", "risk factors include supply chain disruption"},
		[]map[string]any{
			{"ticker": "AAPL", "filing_type": "10-K"},
			{"ticker": "AAPL", "filing_type": "10-K"},
		}); err != nil {
		t.Fatal(err)
	}

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/search", models.SearchRequest{
		Query: "revenue increased due to strong iPhone sales",
		K:     1,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp models.SearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Total != 1 || len(resp.Results) != 1 {
		t.Fatalf("resp = %+v", resp)
	}
	if resp.Results[0].VectorID != 0 {
		t.Errorf("top hit id = %d, want 0", resp.Results[0].VectorID)
	}
}

func TestHandleSearch_Validation(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/search", models.SearchRequest{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty query: status = %d, want 400", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", bytes.NewBufferString("{not json"))
	rec2 := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec2, req)
	if rec2.Code != http.StatusBadRequest {
		t.Errorf("bad json: status = %d, want 400", rec2.Code)
	}
}

func TestHandleSearch_EmptyIndex(t *testing.T) {
	srv, _, _ := newTestServer(t)
	rec := doRequest(t, srv, http.MethodPost, "/api/v1/search", models.SearchRequest{Query: "anything"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp models.SearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Total != 0 {
		t.Errorf("total = %d, want 0", resp.Total)
	}
}

func TestHandleSearch_Filter(t *testing.T) {
	srv, index, _ := newTestServer(t)
	if _, err := index.Add(context.Background(),
		[]string{"apple revenue", "microsoft revenue"},
		[]map[string]any{{"ticker": "AAPL"}, {"ticker": "MSFT"}}); err != nil {
		t.Fatal(err)
	}

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/search", models.SearchRequest{
		Query:  "revenue",
		K:      10,
		Filter: map[string]any{"ticker": "MSFT"},
	})
	var resp models.SearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Total != 1 {
		t.Fatalf("total = %d, want 1", resp.Total)
	}
	if resp.Results[0].Metadata["ticker"] != "MSFT" {
		t.Errorf("filter leaked: %v", resp.Results[0].Metadata)
	}
}

func TestHandleListFilings(t *testing.T) {
	srv, _, st := newTestServer(t)
	ctx := context.Background()

	companyID, err := st.UpsertCompany(ctx, &models.Company{Ticker: "AAPL", Name: "Apple Inc."})
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := st.InsertFiling(ctx, &models.Filing{
		CompanyID:       companyID,
		FilingType:      "10-K",
		FilingDate:      "2023-11-03",
		AccessionNumber: "acc-1",
	}); err != nil {
		t.Fatal(err)
	}

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/filings/AAPL", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Ticker  string           `json:"ticker"`
		Filings []*models.Filing `json:"filings"`
		Total   int              `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Total != 1 || resp.Filings[0].AccessionNumber != "acc-1" {
		t.Errorf("resp = %+v", resp)
	}

	// Unknown ticker returns an empty list, not an error.
	rec = doRequest(t, srv, http.MethodGet, "/api/v1/filings/ZZZZ", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unknown ticker status = %d", rec.Code)
	}
}

func TestHandleIngest_Validation(t *testing.T) {
	srv, _, _ := newTestServer(t)
	rec := doRequest(t, srv, http.MethodPost, "/api/v1/ingest", ingestRequest{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing ticker: status = %d, want 400", rec.Code)
	}
}

func TestHandleStatus(t *testing.T) {
	srv, index, _ := newTestServer(t)
	if _, err := index.Add(context.Background(), []string{"a chunk"}, []map[string]any{{}}); err != nil {
		t.Fatal(err)
	}

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/status", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	vi, ok := resp["vector_index"].(map[string]any)
	if !ok {
		t.Fatalf("vector_index missing: %v", resp)
	}
	if vi["total_vectors"] != float64(1) {
		t.Errorf("total_vectors = %v, want 1", vi["total_vectors"])
	}
	if _, ok := resp["config"]; !ok {
		t.Error("config section missing from status")
	}
}
