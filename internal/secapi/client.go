// Package secapi is a client for the sec-api.io full-text filing search and
// the filing documents it links to.
package secapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// maxPageSize is the largest result page sec-api.io serves per query.
const maxPageSize = 50

const userAgent = "SEC-Filings-QA-Agent/1.0"

// FilingInfo is one filing returned by the search endpoint.
type FilingInfo struct {
	Ticker              string `json:"ticker"`
	CompanyName         string `json:"companyName"`
	CIK                 string `json:"cik"`
	FormType            string `json:"formType"`
	FiledAt             string `json:"filedAt"`
	PeriodOfReport      string `json:"periodOfReport"`
	AccessionNumber     string `json:"accessionNo"`
	LinkToTxt           string `json:"linkToTxt"`
	LinkToFilingDetails string `json:"linkToFilingDetails"`
	LinkToHTML          string `json:"linkToHtml"`
}

// DocumentURL returns the best URL to fetch the filing's primary document
// from, preferring the filing detail page over the raw full-text submission.
func (f *FilingInfo) DocumentURL() string {
	for _, url := range []string{f.LinkToFilingDetails, f.LinkToTxt, f.LinkToHTML} {
		if url != "" {
			return url
		}
	}
	return ""
}

// CompanyInfo is basic registrant information for a ticker.
type CompanyInfo struct {
	Name     string `json:"name"`
	CIK      string `json:"cik"`
	Sector   string `json:"sector"`
	Industry string `json:"industry"`
}

// Client talks to sec-api.io. It is safe for concurrent use.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(cl *Client) {
		cl.logger = logger
	}
}

// NewClient creates a client authenticated with apiKey against baseURL.
func NewClient(apiKey, baseURL string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchRequest struct {
	Query string           `json:"query"`
	From  string           `json:"from"`
	Size  string           `json:"size"`
	Sort  []map[string]any `json:"sort"`
}

type searchResponse struct {
	Filings []*FilingInfo `json:"filings"`
}

// SearchFilings queries for a company's filings of one form type, newest
// first. startDate and endDate (YYYY-MM-DD, either may be empty) bound the
// filedAt range; limit caps the result count at the API's page size.
func (c *Client) SearchFilings(ctx context.Context, ticker, filingType, startDate, endDate string, limit int) ([]*FilingInfo, error) {
	queryParts := []string{
		"ticker:" + ticker,
		fmt.Sprintf("formType:%q", filingType),
	}
	if startDate != "" || endDate != "" {
		if startDate == "" {
			startDate = "2020-01-01"
		}
		if endDate == "" {
			endDate = "2025-12-31"
		}
		queryParts = append(queryParts, fmt.Sprintf("filedAt:[%s TO %s]", startDate, endDate))
	}

	if limit <= 0 || limit > maxPageSize {
		limit = maxPageSize
	}
	body, err := json.Marshal(searchRequest{
		Query: strings.Join(queryParts, " AND "),
		From:  "0",
		Size:  strconv.Itoa(limit),
		Sort:  []map[string]any{{"filedAt": map[string]string{"order": "desc"}}},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("filing search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("filing search returned status %d", resp.StatusCode)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	c.logger.Info("filing search completed",
		zap.String("ticker", ticker),
		zap.String("filing_type", filingType),
		zap.Int("results", len(result.Filings)))
	return result.Filings, nil
}

// FetchDocument downloads the raw markup of a filing document.
func (c *Client) FetchDocument(ctx context.Context, url string) (string, error) {
	if url == "" {
		return "", fmt.Errorf("filing has no document URL")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build document request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download filing document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("filing document %s returned status %d", url, resp.StatusCode)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read filing document: %w", err)
	}
	c.logger.Debug("downloaded filing document",
		zap.String("url", url),
		zap.Int("bytes", len(content)))
	return string(content), nil
}

// knownCompanies is a small static registry for tickers the service is most
// often asked about. Unknown tickers get a generic record; the SEC metadata
// in search results fills in the rest during ingest.
var knownCompanies = map[string]CompanyInfo{
	"AAPL":  {Name: "Apple Inc.", CIK: "0000320193", Sector: "Technology", Industry: "Consumer Electronics"},
	"MSFT":  {Name: "Microsoft Corporation", CIK: "0000789019", Sector: "Technology", Industry: "Software"},
	"GOOGL": {Name: "Alphabet Inc.", CIK: "0001652044", Sector: "Technology", Industry: "Internet Services"},
	"AMZN":  {Name: "Amazon.com Inc.", CIK: "0001018724", Sector: "Consumer Discretionary", Industry: "E-commerce"},
}

// CompanyInfo returns registrant information for a ticker.
func (c *Client) CompanyInfo(ticker string) CompanyInfo {
	if info, ok := knownCompanies[strings.ToUpper(ticker)]; ok {
		return info
	}
	return CompanyInfo{
		Name:     ticker + " Inc.",
		Sector:   "Unknown",
		Industry: "Unknown",
	}
}
