package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/sohailshk/SEC-Filings-QA-Agent/internal/models"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	s, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestUpsertCompany(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	id, err := s.UpsertCompany(ctx, &models.Company{Ticker: "AAPL", Name: "Apple Inc."})
	if err != nil {
		t.Fatal(err)
	}
	if id == 0 {
		t.Fatal("expected non-zero id")
	}

	// Same ticker updates in place, keeping the ID.
	again, err := s.UpsertCompany(ctx, &models.Company{Ticker: "AAPL", Name: "Apple Inc.", Sector: "Technology"})
	if err != nil {
		t.Fatal(err)
	}
	if again != id {
		t.Errorf("upsert changed id: %d -> %d", id, again)
	}

	c, err := s.GetCompanyByTicker(ctx, "AAPL")
	if err != nil {
		t.Fatal(err)
	}
	if c.Sector != "Technology" {
		t.Errorf("sector = %q, want Technology", c.Sector)
	}

	if _, err := s.GetCompanyByTicker(ctx, "NOPE"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestInsertFiling_AccessionIdempotent(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	companyID, err := s.UpsertCompany(ctx, &models.Company{Ticker: "MSFT", Name: "Microsoft"})
	if err != nil {
		t.Fatal(err)
	}

	filing := &models.Filing{
		CompanyID:       companyID,
		FilingType:      "10-K",
		FilingDate:      "2024-07-30",
		AccessionNumber: "0000789019-24-000057",
	}
	id, created, err := s.InsertFiling(ctx, filing)
	if err != nil {
		t.Fatal(err)
	}
	if !created || id == 0 {
		t.Fatalf("first insert: id=%d created=%v", id, created)
	}
	if filing.Status != models.StatusPending {
		t.Errorf("default status = %q, want pending", filing.Status)
	}

	dupID, created, err := s.InsertFiling(ctx, &models.Filing{
		CompanyID:       companyID,
		FilingType:      "10-K",
		FilingDate:      "2024-07-30",
		AccessionNumber: "0000789019-24-000057",
	})
	if err != nil {
		t.Fatal(err)
	}
	if created {
		t.Error("duplicate accession should not create a new row")
	}
	if dupID != id {
		t.Errorf("duplicate returned id %d, want %d", dupID, id)
	}

	count, err := s.CountFilings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("filing count = %d, want 1", count)
	}
}

func TestUpdateFilingStatus(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	companyID, _ := s.UpsertCompany(ctx, &models.Company{Ticker: "IBM", Name: "IBM"})
	filing := &models.Filing{
		CompanyID:       companyID,
		FilingType:      "10-Q",
		FilingDate:      "2024-04-24",
		AccessionNumber: "0000051143-24-000012",
	}
	id, _, err := s.InsertFiling(ctx, filing)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.UpdateFilingStatus(ctx, id, models.StatusCompleted); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetFilingByAccession(ctx, filing.AccessionNumber)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.StatusCompleted {
		t.Errorf("status = %q, want completed", got.Status)
	}

	if err := s.UpdateFilingStatus(ctx, 9999, models.StatusFailed); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListFilingsByTicker(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	companyID, _ := s.UpsertCompany(ctx, &models.Company{Ticker: "AAPL", Name: "Apple Inc."})
	otherID, _ := s.UpsertCompany(ctx, &models.Company{Ticker: "MSFT", Name: "Microsoft"})

	for i, f := range []*models.Filing{
		{CompanyID: companyID, FilingType: "10-K", FilingDate: "2023-11-03", AccessionNumber: "acc-1"},
		{CompanyID: companyID, FilingType: "10-Q", FilingDate: "2024-02-02", AccessionNumber: "acc-2"},
		{CompanyID: otherID, FilingType: "10-K", FilingDate: "2024-07-30", AccessionNumber: "acc-3"},
	} {
		if _, _, err := s.InsertFiling(ctx, f); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}

	filings, err := s.ListFilingsByTicker(ctx, "AAPL")
	if err != nil {
		t.Fatal(err)
	}
	if len(filings) != 2 {
		t.Fatalf("got %d filings, want 2", len(filings))
	}
	if filings[0].FilingDate != "2024-02-02" {
		t.Errorf("newest first: got %s", filings[0].FilingDate)
	}

	empty, err := s.ListFilingsByTicker(ctx, "TSLA")
	if err != nil {
		t.Fatal(err)
	}
	if len(empty) != 0 {
		t.Errorf("unknown ticker returned %d filings", len(empty))
	}
}

func TestBatchCreateChunks(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	companyID, _ := s.UpsertCompany(ctx, &models.Company{Ticker: "AAPL", Name: "Apple Inc."})
	filing := &models.Filing{
		CompanyID:       companyID,
		FilingType:      "10-K",
		FilingDate:      "2023-11-03",
		AccessionNumber: "acc-chunks",
	}
	filingID, _, err := s.InsertFiling(ctx, filing)
	if err != nil {
		t.Fatal(err)
	}

	chunks := []*models.FilingChunk{
		{FilingID: filingID, ChunkIndex: 0, SectionLabel: "Item 1 - Business", Text: "first chunk", Size: 11, VectorID: 0},
		{FilingID: filingID, ChunkIndex: 1, Text: "second chunk", Size: 12, VectorID: 1},
	}
	if err := s.BatchCreateChunks(ctx, chunks); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetChunksByFilingID(ctx, filingID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d chunks, want 2", len(got))
	}
	if got[0].ChunkIndex != 0 || got[1].ChunkIndex != 1 {
		t.Error("chunks not ordered by index")
	}
	if got[0].SectionLabel != "Item 1 - Business" {
		t.Errorf("section label = %q", got[0].SectionLabel)
	}
	if got[1].VectorID != 1 {
		t.Errorf("vector id = %d, want 1", got[1].VectorID)
	}

	count, err := s.CountChunks(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("chunk count = %d, want 2", count)
	}
}
