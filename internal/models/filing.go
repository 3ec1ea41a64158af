package models

import "time"

// Filing processing status values.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Company is a registrant known to the relational store.
type Company struct {
	ID        int64     `json:"id" db:"id"`
	Ticker    string    `json:"ticker" db:"ticker"`
	Name      string    `json:"name" db:"company_name"`
	CIK       string    `json:"cik,omitempty" db:"cik"`
	Sector    string    `json:"sector,omitempty" db:"sector"`
	Industry  string    `json:"industry,omitempty" db:"industry"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Filing is one SEC filing tracked through the ingest lifecycle
// (pending → processing → completed/failed).
type Filing struct {
	ID              int64     `json:"id" db:"id"`
	CompanyID       int64     `json:"company_id" db:"company_id"`
	FilingType      string    `json:"filing_type" db:"filing_type"`
	FilingDate      string    `json:"filing_date" db:"filing_date"`
	PeriodEndDate   string    `json:"period_end_date,omitempty" db:"period_end_date"`
	AccessionNumber string    `json:"accession_number" db:"accession_number"`
	DocumentURL     string    `json:"document_url" db:"document_url"`
	Status          string    `json:"processing_status" db:"processing_status"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// FilingChunk is the relational projection of an indexed chunk: the chunk text
// together with the vector id it was assigned by the vector index.
type FilingChunk struct {
	ID           int64     `json:"id" db:"id"`
	FilingID     int64     `json:"filing_id" db:"filing_id"`
	ChunkIndex   int       `json:"chunk_index" db:"chunk_index"`
	SectionLabel string    `json:"section_label,omitempty" db:"section_label"`
	Text         string    `json:"chunk_text" db:"chunk_text"`
	Size         int       `json:"chunk_size" db:"chunk_size"`
	VectorID     int       `json:"vector_id" db:"vector_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
