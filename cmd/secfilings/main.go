// Package main is the secfilings CLI entry point.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/sohailshk/SEC-Filings-QA-Agent/internal/cli"
	"github.com/sohailshk/SEC-Filings-QA-Agent/internal/config"
	"github.com/sohailshk/SEC-Filings-QA-Agent/internal/embedding"
	"github.com/sohailshk/SEC-Filings-QA-Agent/internal/extract"
	"github.com/sohailshk/SEC-Filings-QA-Agent/internal/indexer"
	"github.com/sohailshk/SEC-Filings-QA-Agent/internal/models"
	"github.com/sohailshk/SEC-Filings-QA-Agent/internal/secapi"
	"github.com/sohailshk/SEC-Filings-QA-Agent/internal/server"
	"github.com/sohailshk/SEC-Filings-QA-Agent/internal/storage"
	"github.com/sohailshk/SEC-Filings-QA-Agent/internal/vector"
	"github.com/sohailshk/SEC-Filings-QA-Agent/internal/watcher"
	"github.com/sohailshk/SEC-Filings-QA-Agent/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/secfilings/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists it
// is used, so that "secfilings server" from the project dir uses the project's
// config. Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "ingest":
		runIngest()
	case "search":
		runSearch()
	case "filings":
		runFilings()
	case "status":
		runStatus()
	case "version", "--version", "-v":
		fmt.Printf("secfilings version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components, err := initializeComponents(cfg, logger, debugMode)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer components.Close()

	idx := components.Indexer
	var watchSvc *watcher.Watcher
	watchCtx, watchCancel := context.WithCancel(context.Background())
	defer watchCancel()
	if cfg.Watch.Directory != "" {
		watchOpts := []watcher.Option{}
		if debugMode {
			watchOpts = append(watchOpts, watcher.WithLogger(logger))
		}
		watchSvc = watcher.NewWatcher(
			cfg.Watch.Directory,
			cfg.Watch.Extensions,
			func(path string) {
				if _, err := idx.IngestLocalFile(context.Background(), path); err != nil {
					logger.Warn("drop file ingest failed", zap.String("path", path), zap.Error(err))
					return
				}
				if err := idx.SaveSnapshot(); err != nil {
					logger.Warn("snapshot save failed", zap.Error(err))
				}
			},
			watchOpts...,
		)
		if err := watchSvc.Start(watchCtx); err != nil {
			logger.Fatal("Failed to start watcher", zap.Error(err))
		}
		watchSvc.SyncExistingFiles()
	}

	srv := server.NewServer(
		components.Index,
		components.Indexer,
		components.Storage,
		cfg,
		logger,
	)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	if err := components.Indexer.SaveSnapshot(); err != nil {
		logger.Warn("vector index save failed", zap.Error(err))
	}
	if watchSvc != nil {
		watchSvc.Stop()
	}
	watchCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runIngest() {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = run the pipeline in-process)")
	filingType := fs.String("filing-type", "10-K", "SEC form type to ingest")
	limit := fs.Int("limit", 10, "maximum filings to ingest")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: secfilings ingest [flags] <ticker>")
		os.Exit(1)
	}
	ticker := strings.ToUpper(fs.Arg(0))

	format, err := cli.ParseFormat(*outputFormat)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if *serverURL != "" {
		// Use the HTTP API when the server is running (avoids a SQLite lock
		// conflict between two processes).
		results, err := ingestViaHTTP(*serverURL, ticker, *filingType, *limit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Ingest failed: %v\n", err)
			os.Exit(1)
		}
		if err := cli.WriteIngestResults(os.Stdout, ticker, results, format); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger, cfg.Debug)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer components.Close()

	results, err := components.Indexer.ProcessCompanyFilings(context.Background(), ticker, *filingType, *limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ingest failed: %v\n", err)
		os.Exit(1)
	}
	if err := cli.WriteIngestResults(os.Stdout, ticker, results, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func ingestViaHTTP(serverURL, ticker, filingType string, limit int) ([]*models.IngestResult, error) {
	body, err := json.Marshal(map[string]any{
		"ticker":      ticker,
		"filing_type": filingType,
		"limit":       limit,
	})
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/api/v1/ingest", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var out struct {
		Filings []*models.IngestResult `json:"filings"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return out.Filings, nil
}

// buildSearchQuery joins all positional args with spaces so multi-word queries
// work the same with or without shell quoting.
func buildSearchQuery(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// searchArgsReorder moves any flags (and their values) that appear after the
// query to the front of the slice so that flag.Parse() sees them. Go's flag
// package stops at the first non-flag argument.
func searchArgsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

func printSearchUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage: secfilings search [flags] <query>\n\n")
	fmt.Fprintf(fs.Output(), "Query is all remaining arguments joined by spaces.\n\n")
	fs.PrintDefaults()
	fmt.Fprintf(fs.Output(), `
Examples:
  secfilings search revenue growth drivers
  secfilings search "supply chain risks"            # same as above
  secfilings search --ticker AAPL "iPhone revenue"  # restrict to one company
  secfilings search --ticker AAPL --filing-type 10-K --k 10 risk factors
  secfilings search --output json "segment reporting"
`)
}

func runSearch() {
	searchArgs := searchArgsReorder(os.Args[2:])

	fs := flag.NewFlagSet("search", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = search the local index directly)")
	k := fs.Int("k", 5, "number of results")
	ticker := fs.String("ticker", "", "restrict results to one ticker")
	filingType := fs.String("filing-type", "", "restrict results to one form type")
	outputFormat := fs.String("output", "text", "output format: text or json")
	fs.Usage = func() { printSearchUsage(fs) }
	_ = fs.Parse(searchArgs)

	if fs.NArg() < 1 {
		printSearchUsage(fs)
		os.Exit(1)
	}
	queryStr := buildSearchQuery(fs.Args())
	if queryStr == "" {
		printSearchUsage(fs)
		os.Exit(1)
	}

	format, err := cli.ParseFormat(*outputFormat)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	request := &models.SearchRequest{
		Query: queryStr,
		K:     *k,
	}
	if *ticker != "" || *filingType != "" {
		request.Filter = map[string]any{}
		if *ticker != "" {
			request.Filter["ticker"] = strings.ToUpper(*ticker)
		}
		if *filingType != "" {
			request.Filter["filing_type"] = *filingType
		}
	}

	if *serverURL != "" {
		response, err := searchViaHTTP(*serverURL, request)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
			os.Exit(1)
		}
		if err := cli.WriteSearchResults(os.Stdout, response, format); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Direct index access (when the server is not running).
	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components, err := initializeComponents(cfg, logger, cfg.Debug)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer components.Close()

	if request.K > cfg.Search.MaxK {
		request.K = cfg.Search.MaxK
	}
	start := time.Now()
	results, err := components.Index.Search(context.Background(), request.Query, request.K, vector.Filter(request.Filter))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Search failed: %v\n", err)
		os.Exit(1)
	}
	response := &models.SearchResponse{
		Results:   results,
		Total:     len(results),
		QueryTime: time.Since(start).Milliseconds(),
		Query:     request.Query,
	}
	if err := cli.WriteSearchResults(os.Stdout, response, format); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func searchViaHTTP(serverURL string, request *models.SearchRequest) (*models.SearchResponse, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}
	resp, err := http.Post(serverURL+"/api/v1/search", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var response models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &response, nil
}

func runFilings() {
	fs := flag.NewFlagSet("filings", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = read the local database directly)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: secfilings filings [flags] <ticker>")
		os.Exit(1)
	}
	ticker := strings.ToUpper(fs.Arg(0))

	var filings []*models.Filing
	if *serverURL != "" {
		res, err := filingsViaHTTP(*serverURL, ticker)
		if err != nil {
			fmt.Fprintf(os.Stderr, "List filings failed: %v\n", err)
			os.Exit(1)
		}
		filings = res
	} else {
		cfg, _, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		st, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
			os.Exit(1)
		}
		defer st.Close()
		filings, err = st.ListFilingsByTicker(context.Background(), ticker)
		if err != nil {
			fmt.Fprintf(os.Stderr, "List filings failed: %v\n", err)
			os.Exit(1)
		}
	}

	if *outputFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(map[string]any{"ticker": ticker, "filings": filings}); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
		return
	}
	fmt.Printf("%d filing(s) for %s\n", len(filings), ticker)
	for _, f := range filings {
		fmt.Printf("  %-12s %-10s %-24s %s\n", f.FilingDate, f.FilingType, f.AccessionNumber, f.Status)
	}
}

func filingsViaHTTP(serverURL, ticker string) ([]*models.Filing, error) {
	resp, err := http.Get(serverURL + "/api/v1/filings/" + ticker)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var out struct {
		Filings []*models.Filing `json:"filings"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return out.Filings, nil
}

// statusResponse is the shape of the GET /api/v1/status response.
type statusResponse struct {
	Companies      int64             `json:"companies"`
	Filings        int64             `json:"filings"`
	Chunks         int64             `json:"chunks"`
	VectorIndex    vector.IndexStats `json:"vector_index"`
	DiskUsageBytes *int64            `json:"disk_usage_bytes,omitempty"`
	Config         map[string]any    `json:"config,omitempty"`
}

func runStatus() {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	serverURL := fs.String("server", "http://localhost:8080", "server URL (empty = read local state directly)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	var status statusResponse
	if *serverURL != "" {
		res, err := statusViaHTTP(*serverURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Status failed: %v\n", err)
			os.Exit(1)
		}
		status = *res
	} else {
		cfg, _, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		logger, err := utils.NewLogger(cfg.Debug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		components, err := initializeComponents(cfg, logger, cfg.Debug)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
			os.Exit(1)
		}
		defer components.Close()
		ctx := context.Background()
		companies, err := components.Storage.CountCompanies(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Count companies failed: %v\n", err)
			os.Exit(1)
		}
		filings, err := components.Storage.CountFilings(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Count filings failed: %v\n", err)
			os.Exit(1)
		}
		chunks, err := components.Storage.CountChunks(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Count chunks failed: %v\n", err)
			os.Exit(1)
		}
		status = statusResponse{
			Companies:   companies,
			Filings:     filings,
			Chunks:      chunks,
			VectorIndex: components.Index.Stats(),
			Config: map[string]any{
				"embedding_dimensions": cfg.Embedding.Dimensions,
				"chunk_size":           cfg.Chunking.ChunkSize,
				"chunk_overlap":        cfg.Chunking.ChunkOverlap,
				"database_path":        cfg.Storage.DatabasePath,
				"vector_index_dir":     cfg.Storage.VectorIndexDir,
			},
		}
		if diskBytes, err := storage.DiskUsageBytes(cfg.Storage.DatabasePath, cfg.Storage.VectorIndexDir); err == nil {
			status.DiskUsageBytes = &diskBytes
		}
	}

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(status); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Printf("companies:        %d\n", status.Companies)
		fmt.Printf("filings:          %d\n", status.Filings)
		fmt.Printf("chunks:           %d\n", status.Chunks)
		fmt.Printf("vectors:          %d\n", status.VectorIndex.TotalVectors)
		fmt.Printf("dimensions:       %d\n", status.VectorIndex.Dimensions)
		if status.DiskUsageBytes != nil {
			fmt.Printf("disk_usage_bytes: %d\n", *status.DiskUsageBytes)
		}
		if len(status.Config) > 0 {
			fmt.Println()
			fmt.Println("# configuration")
			for _, key := range []string{"embedding_dimensions", "chunk_size", "chunk_overlap", "database_path", "vector_index_dir"} {
				if v, ok := status.Config[key]; ok {
					fmt.Printf("%-20s %v\n", key+":", v)
				}
			}
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
}

func statusViaHTTP(serverURL string) (*statusResponse, error) {
	resp, err := http.Get(serverURL + "/api/v1/status")
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(b))
	}
	var s statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &s, nil
}

// Components holds initialized services.
type Components struct {
	Storage  storage.Storage
	Embedder embedding.Embedder
	Index    *vector.FlatIndex
	Store    *vector.IndexStore
	Indexer  *indexer.Indexer
}

func (c *Components) Close() {
	if c.Storage != nil {
		_ = c.Storage.Close()
	}
	if c.Embedder != nil {
		_ = c.Embedder.Close()
	}
}

func initializeComponents(cfg *config.Config, logger *zap.Logger, debug bool) (*Components, error) {
	store, err := storage.NewSQLiteStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	var embedder embedding.Embedder
	onnxEmbedder, err := embedding.NewONNXEmbedder(
		cfg.Embedding.ModelPath,
		cfg.Embedding.Dimensions,
		cfg.Embedding.MaxTokens,
		cfg.Embedding.CacheSize,
	)
	if err != nil {
		logger.Warn("ONNX embedder unavailable, using mock embedder", zap.Error(err))
		embedder = embedding.NewMockEmbedder(cfg.Embedding.Dimensions)
	} else {
		embedder = onnxEmbedder
	}

	indexStore := vector.NewIndexStore(cfg.Storage.VectorIndexDir, vector.WithStoreLogger(logger))
	index, err := indexStore.Load(embedder, cfg.Embedding.Dimensions)
	if err != nil {
		if !errors.Is(err, vector.ErrIndexCorrupt) {
			store.Close()
			return nil, fmt.Errorf("failed to load vector index: %w", err)
		}
		// The empty index is still usable; filings can be re-ingested.
		logger.Warn("vector index snapshot unusable, starting empty",
			zap.String("dir", cfg.Storage.VectorIndexDir),
			zap.Error(err))
	}

	chunker, err := indexer.NewChunker(cfg.Chunking.ChunkSize, cfg.Chunking.ChunkOverlap)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to initialize chunker: %w", err)
	}

	var client *secapi.Client
	if cfg.SECAPI.APIKey != "" {
		client = secapi.NewClient(cfg.SECAPI.APIKey, cfg.SECAPI.BaseURL)
	} else {
		logger.Warn("no SEC API key configured; only local file ingest will work")
	}

	idxOpts := []indexer.Option{}
	if debug {
		idxOpts = append(idxOpts, indexer.WithLogger(logger))
	}
	idx := indexer.NewIndexer(store, index, indexStore, client, extract.NewExtractor(), chunker, idxOpts...)

	return &Components{
		Storage:  store,
		Embedder: embedder,
		Index:    index,
		Store:    indexStore,
		Indexer:  idx,
	}, nil
}

func printUsage() {
	fmt.Println(`secfilings - SEC filings retrieval and semantic search

Usage:
  secfilings server [flags]            Start the HTTP API server
  secfilings ingest [flags] <ticker>   Fetch and index a company's filings
  secfilings search [flags] <query>    Search indexed filings
  secfilings filings [flags] <ticker>  List a company's tracked filings
  secfilings status [flags]            Show storage and index status
  secfilings version                   Show version
  secfilings help                      Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/secfilings/config.yaml)
  --debug            Enable debug logging

Ingest Flags:
  --config string       Config file path (for in-process mode)
  --server string       Server URL (default: http://localhost:8080). Use empty (--server "") to run the pipeline in-process.
  --filing-type string  SEC form type (default: 10-K)
  --limit int           Maximum filings to ingest (default: 10)
  --output string       Output format: text or json (default: text)

Search Flags:
  --config string       Config file path (for direct index mode)
  --server string       Server URL (default: http://localhost:8080). Use empty (--server "") to search the local index.
  --k int               Number of results (default: 5)
  --ticker string       Restrict results to one ticker
  --filing-type string  Restrict results to one form type
  --output string       Output format: text or json (default: text)

Status Flags:
  --config string    Config file path (for direct mode)
  --server string    Server URL (default: http://localhost:8080). Use empty (--server "") for direct access.
  --output string    Output format: text or json (default: text)

Environment:
  SEC_API_KEY        sec-api.io API key (overrides an empty api_key in config)

Examples:
  secfilings server
  secfilings ingest AAPL
  secfilings ingest --filing-type 10-Q --limit 4 MSFT
  secfilings search "revenue growth drivers"
  secfilings search --ticker AAPL --k 10 "risk factors"
  secfilings filings AAPL
  secfilings status --output json`)
}
