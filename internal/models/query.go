package models

// SearchRequest is a similarity query against the vector index.
// K defaults to the configured value when zero. Filter is an exact/membership
// constraint on result metadata (a []any or []string filter value matches when
// the metadata value is a member).
type SearchRequest struct {
	Query  string         `json:"query"`
	K      int            `json:"k,omitempty"`
	Filter map[string]any `json:"filter,omitempty"`
}

// SearchResponse is the response for a search request.
type SearchResponse struct {
	Results   []*SearchResult `json:"results"`
	Total     int             `json:"total"`
	QueryTime int64           `json:"query_time_ms"`
	Query     string          `json:"query"`
}

// IngestResult summarizes one filing run through the ingest pipeline.
type IngestResult struct {
	AccessionNumber string `json:"accession_number,omitempty"`
	FilingID        int64  `json:"filing_id,omitempty"`
	Status          string `json:"status"`
	NumSections     int    `json:"num_sections"`
	NumChunks       int    `json:"num_chunks"`
	VectorIDs       []int  `json:"vector_ids,omitempty"`
}
