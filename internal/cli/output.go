// Package cli renders command output for the secfilings CLI.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/sohailshk/SEC-Filings-QA-Agent/internal/models"
	"github.com/sohailshk/SEC-Filings-QA-Agent/pkg/utils"
)

// OutputFormat selects how results are rendered.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseFormat maps a flag value to an OutputFormat.
func ParseFormat(s string) (OutputFormat, error) {
	switch s {
	case "", "text":
		return OutputText, nil
	case "json":
		return OutputJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q; use text or json", s)
	}
}

// WriteSearchResults writes a search response to w in the given format.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format OutputFormat) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response)
	}

	fmt.Fprintf(w, "\nFound %d results in %dms for %q\n\n", response.Total, response.QueryTime, response.Query)
	for i, result := range response.Results {
		fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
		fmt.Fprintf(w, "Rank: %d | Similarity: %.4f | Vector: %d\n", i+1, result.Similarity, result.VectorID)
		if line := metadataLine(result.Metadata); line != "" {
			fmt.Fprintf(w, "%s\n", line)
		}
		fmt.Fprintf(w, "\n%s\n\n", utils.Truncate(result.Text, 300))
	}
	return nil
}

// metadataLine renders the filing identity fields of a result, skipping the
// positional fields the chunker adds.
func metadataLine(metadata map[string]any) string {
	var parts []string
	for _, key := range []string{"ticker", "filing_type", "filing_date", "accession_number", "section_label", "source_file"} {
		if v, ok := metadata[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				parts = append(parts, fmt.Sprintf("%s: %s", key, s))
			}
		}
	}
	return strings.Join(parts, " | ")
}

// WriteIngestResults writes the outcome of an ingest run to w.
func WriteIngestResults(w io.Writer, ticker string, results []*models.IngestResult, format OutputFormat) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"ticker": ticker, "filings": results})
	}

	fmt.Fprintf(w, "Ingested %d filing(s) for %s\n", len(results), ticker)
	for _, r := range results {
		fmt.Fprintf(w, "  %-24s %-10s sections=%d chunks=%d\n",
			r.AccessionNumber, r.Status, r.NumSections, r.NumChunks)
	}
	return nil
}
