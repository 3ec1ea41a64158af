package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sohailshk/SEC-Filings-QA-Agent/internal/models"
)

// SQLiteStorage implements Storage on SQLite with WAL enabled.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens or creates the database at dbPath and initializes
// the schema. Parent directories are created if missing.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS companies (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ticker TEXT NOT NULL UNIQUE,
		company_name TEXT NOT NULL,
		cik TEXT,
		sector TEXT,
		industry TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS filings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		company_id INTEGER NOT NULL,
		filing_type TEXT NOT NULL,
		filing_date TEXT NOT NULL,
		period_end_date TEXT,
		accession_number TEXT NOT NULL UNIQUE,
		document_url TEXT,
		processing_status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (company_id) REFERENCES companies(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_filings_company_id ON filings(company_id);
	CREATE INDEX IF NOT EXISTS idx_filings_status ON filings(processing_status);

	CREATE TABLE IF NOT EXISTS filing_chunks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		filing_id INTEGER NOT NULL,
		chunk_index INTEGER NOT NULL,
		section_label TEXT,
		chunk_text TEXT NOT NULL,
		chunk_size INTEGER NOT NULL,
		vector_id INTEGER NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (filing_id) REFERENCES filings(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_chunks_filing_id ON filing_chunks(filing_id);
	CREATE INDEX IF NOT EXISTS idx_chunks_vector_id ON filing_chunks(vector_id);
	`
	_, err := db.Exec(schema)
	return err
}

// UpsertCompany inserts the company or updates its descriptive fields when
// the ticker already exists. Returns the row ID either way.
func (s *SQLiteStorage) UpsertCompany(ctx context.Context, company *models.Company) (int64, error) {
	now := time.Now()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO companies (ticker, company_name, cik, sector, industry, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(ticker) DO UPDATE SET
			company_name = excluded.company_name,
			cik = excluded.cik,
			sector = excluded.sector,
			industry = excluded.industry,
			updated_at = excluded.updated_at`,
		company.Ticker, company.Name, company.CIK, company.Sector, company.Industry, now, now,
	)
	if err != nil {
		return 0, err
	}

	var id int64
	err = s.db.QueryRowContext(ctx,
		`SELECT id FROM companies WHERE ticker = ?`, company.Ticker,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	company.ID = id
	return id, nil
}

// GetCompanyByTicker returns the company with the given ticker.
func (s *SQLiteStorage) GetCompanyByTicker(ctx context.Context, ticker string) (*models.Company, error) {
	var c models.Company
	var cik, sector, industry sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, ticker, company_name, cik, sector, industry, created_at, updated_at
		 FROM companies WHERE ticker = ?`, ticker,
	).Scan(&c.ID, &c.Ticker, &c.Name, &cik, &sector, &industry, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("company %s: %w", ticker, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	c.CIK = cik.String
	c.Sector = sector.String
	c.Industry = industry.String
	return &c, nil
}

// InsertFiling inserts the filing unless its accession number already exists.
// The accession number is the SEC-wide unique identifier of a filing, so a
// duplicate means the filing was seen before; the existing row's ID is
// returned with created=false.
func (s *SQLiteStorage) InsertFiling(ctx context.Context, filing *models.Filing) (int64, bool, error) {
	var existingID int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM filings WHERE accession_number = ?`, filing.AccessionNumber,
	).Scan(&existingID)
	if err == nil {
		filing.ID = existingID
		return existingID, false, nil
	}
	if err != sql.ErrNoRows {
		return 0, false, err
	}

	now := time.Now()
	status := filing.Status
	if status == "" {
		status = models.StatusPending
	}
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO filings (company_id, filing_type, filing_date, period_end_date,
			accession_number, document_url, processing_status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		filing.CompanyID, filing.FilingType, filing.FilingDate, filing.PeriodEndDate,
		filing.AccessionNumber, filing.DocumentURL, status, now, now,
	)
	if err != nil {
		return 0, false, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, false, err
	}
	filing.ID = id
	filing.Status = status
	return id, true, nil
}

// GetFilingByAccession returns the filing with the given accession number.
func (s *SQLiteStorage) GetFilingByAccession(ctx context.Context, accessionNumber string) (*models.Filing, error) {
	var f models.Filing
	var period, url sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, company_id, filing_type, filing_date, period_end_date,
			accession_number, document_url, processing_status, created_at, updated_at
		 FROM filings WHERE accession_number = ?`, accessionNumber,
	).Scan(&f.ID, &f.CompanyID, &f.FilingType, &f.FilingDate, &period,
		&f.AccessionNumber, &url, &f.Status, &f.CreatedAt, &f.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("filing %s: %w", accessionNumber, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	f.PeriodEndDate = period.String
	f.DocumentURL = url.String
	return &f, nil
}

// UpdateFilingStatus moves a filing through its processing lifecycle.
func (s *SQLiteStorage) UpdateFilingStatus(ctx context.Context, filingID int64, status string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE filings SET processing_status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now(), filingID,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("filing %d: %w", filingID, ErrNotFound)
	}
	return nil
}

// ListFilingsByTicker returns all filings of a company, newest first.
func (s *SQLiteStorage) ListFilingsByTicker(ctx context.Context, ticker string) ([]*models.Filing, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT f.id, f.company_id, f.filing_type, f.filing_date, f.period_end_date,
			f.accession_number, f.document_url, f.processing_status, f.created_at, f.updated_at
		 FROM filings f
		 JOIN companies c ON c.id = f.company_id
		 WHERE c.ticker = ?
		 ORDER BY f.filing_date DESC, f.id DESC`, ticker,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var filings []*models.Filing
	for rows.Next() {
		var f models.Filing
		var period, url sql.NullString
		if err := rows.Scan(&f.ID, &f.CompanyID, &f.FilingType, &f.FilingDate, &period,
			&f.AccessionNumber, &url, &f.Status, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		f.PeriodEndDate = period.String
		f.DocumentURL = url.String
		filings = append(filings, &f)
	}
	return filings, rows.Err()
}

// BatchCreateChunks inserts chunks in one transaction.
func (s *SQLiteStorage) BatchCreateChunks(ctx context.Context, chunks []*models.FilingChunk) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO filing_chunks (filing_id, chunk_index, section_label, chunk_text, chunk_size, vector_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now()
	for _, chunk := range chunks {
		chunk.CreatedAt = now
		result, err := stmt.ExecContext(ctx,
			chunk.FilingID, chunk.ChunkIndex, chunk.SectionLabel, chunk.Text, chunk.Size, chunk.VectorID, now,
		)
		if err != nil {
			return err
		}
		if id, err := result.LastInsertId(); err == nil {
			chunk.ID = id
		}
	}
	return tx.Commit()
}

// GetChunksByFilingID returns all chunks of a filing ordered by chunk index.
func (s *SQLiteStorage) GetChunksByFilingID(ctx context.Context, filingID int64) ([]*models.FilingChunk, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, filing_id, chunk_index, section_label, chunk_text, chunk_size, vector_id, created_at
		 FROM filing_chunks WHERE filing_id = ? ORDER BY chunk_index`, filingID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chunks []*models.FilingChunk
	for rows.Next() {
		var c models.FilingChunk
		var label sql.NullString
		if err := rows.Scan(&c.ID, &c.FilingID, &c.ChunkIndex, &label, &c.Text, &c.Size, &c.VectorID, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.SectionLabel = label.String
		chunks = append(chunks, &c)
	}
	return chunks, rows.Err()
}

// CountCompanies returns the number of companies.
func (s *SQLiteStorage) CountCompanies(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM companies`).Scan(&count)
	return count, err
}

// CountFilings returns the number of filings.
func (s *SQLiteStorage) CountFilings(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM filings`).Scan(&count)
	return count, err
}

// CountChunks returns the number of stored chunks.
func (s *SQLiteStorage) CountChunks(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM filing_chunks`).Scan(&count)
	return count, err
}

// Close closes the database.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
