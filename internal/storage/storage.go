// Package storage persists companies, filings, and their indexed chunks.
package storage

import (
	"context"
	"errors"

	"github.com/sohailshk/SEC-Filings-QA-Agent/internal/models"
)

// ErrNotFound reports that the requested row does not exist.
var ErrNotFound = errors.New("not found")

// Storage defines the relational persistence operations of the ingest
// pipeline. The vector index is persisted separately; this layer records
// which filings were processed and how their chunks map to vector IDs.
type Storage interface {
	// Company operations
	UpsertCompany(ctx context.Context, company *models.Company) (int64, error)
	GetCompanyByTicker(ctx context.Context, ticker string) (*models.Company, error)

	// Filing operations. InsertFiling is idempotent on accession number:
	// inserting a filing that already exists returns the existing row's ID
	// with created=false.
	InsertFiling(ctx context.Context, filing *models.Filing) (id int64, created bool, err error)
	GetFilingByAccession(ctx context.Context, accessionNumber string) (*models.Filing, error)
	UpdateFilingStatus(ctx context.Context, filingID int64, status string) error
	ListFilingsByTicker(ctx context.Context, ticker string) ([]*models.Filing, error)

	// Chunk operations
	BatchCreateChunks(ctx context.Context, chunks []*models.FilingChunk) error
	GetChunksByFilingID(ctx context.Context, filingID int64) ([]*models.FilingChunk, error)

	// Stats
	CountCompanies(ctx context.Context) (int64, error)
	CountFilings(ctx context.Context) (int64, error)
	CountChunks(ctx context.Context) (int64, error)

	Close() error
}
