package indexer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sohailshk/SEC-Filings-QA-Agent/internal/extract"
	"github.com/sohailshk/SEC-Filings-QA-Agent/internal/models"
	"github.com/sohailshk/SEC-Filings-QA-Agent/internal/secapi"
	"github.com/sohailshk/SEC-Filings-QA-Agent/internal/segment"
	"github.com/sohailshk/SEC-Filings-QA-Agent/internal/storage"
	"github.com/sohailshk/SEC-Filings-QA-Agent/internal/vector"
)

// Indexer runs filings through the full pipeline: fetch, extract, segment,
// chunk, embed, and record the chunk-to-vector mapping in storage.
type Indexer struct {
	storage   storage.Storage
	index     *vector.FlatIndex
	store     *vector.IndexStore
	client    *secapi.Client
	extractor *extract.Extractor
	chunker   *Chunker
	logger    *zap.Logger
}

// Option configures an Indexer.
type Option func(*Indexer)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(idx *Indexer) { idx.logger = l }
}

// NewIndexer wires the pipeline together. client may be nil when only local
// ingest is used; store may be nil when snapshots are not persisted.
func NewIndexer(
	st storage.Storage,
	index *vector.FlatIndex,
	store *vector.IndexStore,
	client *secapi.Client,
	extractor *extract.Extractor,
	chunker *Chunker,
	opts ...Option,
) *Indexer {
	idx := &Indexer{
		storage:   st,
		index:     index,
		store:     store,
		client:    client,
		extractor: extractor,
		chunker:   chunker,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// ProcessCompanyFilings fetches a company's filings of one form type and
// ingests each. A filing that fails leaves a failed status behind and does
// not stop the rest of the batch. The snapshot is saved once at the end.
func (idx *Indexer) ProcessCompanyFilings(ctx context.Context, ticker, filingType string, limit int) ([]*models.IngestResult, error) {
	if idx.client == nil {
		return nil, fmt.Errorf("no SEC API client configured")
	}

	info := idx.client.CompanyInfo(ticker)
	companyID, err := idx.storage.UpsertCompany(ctx, &models.Company{
		Ticker:   strings.ToUpper(ticker),
		Name:     info.Name,
		CIK:      info.CIK,
		Sector:   info.Sector,
		Industry: info.Industry,
	})
	if err != nil {
		return nil, fmt.Errorf("upsert company: %w", err)
	}

	filings, err := idx.client.SearchFilings(ctx, ticker, filingType, "", "", limit)
	if err != nil {
		return nil, fmt.Errorf("search filings: %w", err)
	}
	idx.logger.Info("processing company filings",
		zap.String("ticker", ticker),
		zap.String("filing_type", filingType),
		zap.Int("found", len(filings)))

	results := make([]*models.IngestResult, 0, len(filings))
	for _, filing := range filings {
		result, err := idx.IngestFiling(ctx, companyID, strings.ToUpper(ticker), filing)
		if err != nil {
			idx.logger.Error("filing ingest failed",
				zap.String("accession", filing.AccessionNumber),
				zap.Error(err))
			results = append(results, &models.IngestResult{
				AccessionNumber: filing.AccessionNumber,
				Status:          models.StatusFailed,
			})
			continue
		}
		results = append(results, result)
	}

	if err := idx.SaveSnapshot(); err != nil {
		return results, fmt.Errorf("save index snapshot: %w", err)
	}
	return results, nil
}

// IngestFiling runs one filing through the pipeline. Filings already marked
// completed are skipped; anything else is (re)processed and its status moved
// to completed or failed.
func (idx *Indexer) IngestFiling(ctx context.Context, companyID int64, ticker string, filing *secapi.FilingInfo) (*models.IngestResult, error) {
	record := &models.Filing{
		CompanyID:       companyID,
		FilingType:      filing.FormType,
		FilingDate:      filingDate(filing.FiledAt),
		PeriodEndDate:   filing.PeriodOfReport,
		AccessionNumber: filing.AccessionNumber,
		DocumentURL:     filing.DocumentURL(),
	}
	filingID, created, err := idx.storage.InsertFiling(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("insert filing: %w", err)
	}
	if !created {
		existing, err := idx.storage.GetFilingByAccession(ctx, filing.AccessionNumber)
		if err == nil && existing.Status == models.StatusCompleted {
			idx.logger.Info("filing already ingested, skipping",
				zap.String("accession", filing.AccessionNumber))
			return &models.IngestResult{
				AccessionNumber: filing.AccessionNumber,
				FilingID:        filingID,
				Status:          models.StatusCompleted,
			}, nil
		}
	}

	if err := idx.storage.UpdateFilingStatus(ctx, filingID, models.StatusProcessing); err != nil {
		return nil, fmt.Errorf("mark processing: %w", err)
	}

	result, err := idx.ingestDocument(ctx, filingID, record, ticker)
	if err != nil {
		_ = idx.storage.UpdateFilingStatus(ctx, filingID, models.StatusFailed)
		return nil, err
	}
	if err := idx.storage.UpdateFilingStatus(ctx, filingID, models.StatusCompleted); err != nil {
		return nil, fmt.Errorf("mark completed: %w", err)
	}
	result.Status = models.StatusCompleted
	return result, nil
}

func (idx *Indexer) ingestDocument(ctx context.Context, filingID int64, filing *models.Filing, ticker string) (*models.IngestResult, error) {
	markup, err := idx.client.FetchDocument(ctx, filing.DocumentURL)
	if err != nil {
		return nil, fmt.Errorf("fetch document: %w", err)
	}

	text := idx.extractor.Extract(markup)
	if text == "" {
		return nil, fmt.Errorf("filing %s produced no text", filing.AccessionNumber)
	}

	sections := segment.Segment(text)
	idx.logger.Debug("segmented filing",
		zap.String("accession", filing.AccessionNumber),
		zap.Int("sections", len(sections)))

	template := map[string]any{
		"ticker":           ticker,
		"filing_type":      filing.FilingType,
		"filing_date":      filing.FilingDate,
		"accession_number": filing.AccessionNumber,
	}
	chunks := idx.chunker.Chunk(text, template)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("filing %s produced no chunks", filing.AccessionNumber)
	}

	vectorIDs, err := idx.addChunks(ctx, filingID, chunks)
	if err != nil {
		return nil, err
	}

	idx.logger.Info("filing ingested",
		zap.String("accession", filing.AccessionNumber),
		zap.Int("sections", len(sections)),
		zap.Int("chunks", len(chunks)))
	return &models.IngestResult{
		AccessionNumber: filing.AccessionNumber,
		FilingID:        filingID,
		NumSections:     len(sections),
		NumChunks:       len(chunks),
		VectorIDs:       vectorIDs,
	}, nil
}

// addChunks embeds the chunks into the vector index and records the assigned
// vector IDs in storage.
func (idx *Indexer) addChunks(ctx context.Context, filingID int64, chunks []*models.Chunk) ([]int, error) {
	texts := make([]string, len(chunks))
	metadata := make([]map[string]any, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Text
		metadata[i] = ch.Metadata
	}
	vectorIDs, err := idx.index.Add(ctx, texts, metadata)
	if err != nil {
		return nil, fmt.Errorf("index chunks: %w", err)
	}

	rows := make([]*models.FilingChunk, len(chunks))
	for i, ch := range chunks {
		rows[i] = &models.FilingChunk{
			FilingID:     filingID,
			ChunkIndex:   ch.Index,
			SectionLabel: ch.SectionLabel,
			Text:         ch.Text,
			Size:         ch.Length,
			VectorID:     vectorIDs[i],
		}
	}
	if err := idx.storage.BatchCreateChunks(ctx, rows); err != nil {
		return nil, fmt.Errorf("store chunks: %w", err)
	}
	return vectorIDs, nil
}

// IngestLocalFile indexes a filing document dropped on disk, outside the SEC
// API flow. HTML and text files go through the markup extractor; PDFs through
// the PDF extractor. Metadata identifies the source file instead of an
// accession number.
func (idx *Indexer) IngestLocalFile(ctx context.Context, path string) (*models.IngestResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var text string
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		text, err = idx.extractor.ExtractPDF(content)
		if err != nil {
			return nil, fmt.Errorf("extract pdf: %w", err)
		}
	} else {
		text = idx.extractor.Extract(string(content))
	}
	if text == "" {
		return nil, fmt.Errorf("file %s produced no text", path)
	}

	sections := segment.Segment(text)
	docID := uuid.NewString()
	template := map[string]any{
		"source_file": filepath.Base(path),
		"document_id": docID,
	}
	chunks := idx.chunker.Chunk(text, template)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("file %s produced no chunks", path)
	}

	texts := make([]string, len(chunks))
	metadata := make([]map[string]any, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Text
		metadata[i] = ch.Metadata
	}
	vectorIDs, err := idx.index.Add(ctx, texts, metadata)
	if err != nil {
		return nil, fmt.Errorf("index chunks: %w", err)
	}

	idx.logger.Info("local file ingested",
		zap.String("path", path),
		zap.Int("chunks", len(chunks)))
	return &models.IngestResult{
		AccessionNumber: docID,
		Status:          models.StatusCompleted,
		NumSections:     len(sections),
		NumChunks:       len(chunks),
		VectorIDs:       vectorIDs,
	}, nil
}

// SaveSnapshot persists the vector index when a store is configured.
func (idx *Indexer) SaveSnapshot() error {
	if idx.store == nil {
		return nil
	}
	return idx.store.Save(idx.index)
}

// filingDate reduces a sec-api filedAt timestamp to its date part.
func filingDate(filedAt string) string {
	if len(filedAt) >= 10 {
		return filedAt[:10]
	}
	return filedAt
}
