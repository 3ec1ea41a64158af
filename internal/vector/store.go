package vector

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/sohailshk/SEC-Filings-QA-Agent/internal/embedding"
	"github.com/sohailshk/SEC-Filings-QA-Agent/internal/models"
)

// Snapshot file names inside the index directory.
const (
	vectorsFile  = "vectors.bin"
	metadataFile = "metadata.json"
)

// ErrIndexCorrupt reports that a snapshot on disk is unreadable or internally
// inconsistent. Load returns it alongside a usable empty index; the caller
// decides whether an empty start is acceptable.
var ErrIndexCorrupt = errors.New("vector index snapshot corrupt")

// IndexStore persists FlatIndex snapshots to a directory as a binary vector
// file plus a JSON metadata file.
type IndexStore struct {
	dir    string
	logger *zap.Logger
}

// StoreOption configures an IndexStore.
type StoreOption func(*IndexStore)

// WithStoreLogger sets the logger.
func WithStoreLogger(logger *zap.Logger) StoreOption {
	return func(s *IndexStore) {
		s.logger = logger
	}
}

// NewIndexStore creates a store rooted at dir. The directory is created on
// first save.
func NewIndexStore(dir string, opts ...StoreOption) *IndexStore {
	s := &IndexStore{
		dir:    dir,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save writes the index to the store directory, replacing any previous
// snapshot. Files are written to temporary names and renamed into place so a
// crash mid-save leaves the previous snapshot intact.
func (s *IndexStore) Save(idx *FlatIndex) error {
	vectors, records := idx.snapshot()

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}

	if err := s.writeVectors(vectors, idx.Dimensions()); err != nil {
		return err
	}
	if err := s.writeMetadata(records); err != nil {
		return err
	}

	s.logger.Info("saved vector index snapshot",
		zap.String("dir", s.dir),
		zap.Int("vectors", len(vectors)))
	return nil
}

func (s *IndexStore) writeVectors(vectors [][]float32, dimensions int) error {
	path := filepath.Join(s.dir, vectorsFile)
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create vectors file: %w", err)
	}
	w := bufio.NewWriter(f)

	writeErr := func() error {
		if err := binary.Write(w, binary.LittleEndian, uint32(dimensions)); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, uint32(len(vectors))); err != nil {
			return err
		}
		for _, vec := range vectors {
			if err := binary.Write(w, binary.LittleEndian, vec); err != nil {
				return err
			}
		}
		return w.Flush()
	}()
	if writeErr != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write vectors: %w", writeErr)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close vectors file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename vectors file: %w", err)
	}
	return nil
}

func (s *IndexStore) writeMetadata(records []*models.VectorRecord) error {
	path := filepath.Join(s.dir, metadataFile)
	tmp := path + ".tmp"
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write metadata file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename metadata file: %w", err)
	}
	return nil
}

// Load reads the snapshot in the store directory into a new index backed by
// embedder. When no snapshot exists the index starts empty with no error.
// When the snapshot is unreadable, incomplete, or inconsistent, Load returns
// an empty index together with an error wrapping ErrIndexCorrupt.
func (s *IndexStore) Load(embedder embedding.Embedder, dimensions int) (*FlatIndex, error) {
	idx, err := NewFlatIndex(embedder, dimensions)
	if err != nil {
		return nil, err
	}

	vectorsPath := filepath.Join(s.dir, vectorsFile)
	metadataPath := filepath.Join(s.dir, metadataFile)
	_, vErr := os.Stat(vectorsPath)
	_, mErr := os.Stat(metadataPath)

	if os.IsNotExist(vErr) && os.IsNotExist(mErr) {
		return idx, nil
	}
	if os.IsNotExist(vErr) || os.IsNotExist(mErr) {
		return idx, fmt.Errorf("%w: snapshot has only one of %s and %s", ErrIndexCorrupt, vectorsFile, metadataFile)
	}

	vectors, err := s.readVectors(vectorsPath, dimensions)
	if err != nil {
		return idx, fmt.Errorf("%w: %v", ErrIndexCorrupt, err)
	}
	records, err := s.readMetadata(metadataPath)
	if err != nil {
		return idx, fmt.Errorf("%w: %v", ErrIndexCorrupt, err)
	}
	if len(vectors) != len(records) {
		return idx, fmt.Errorf("%w: %d vectors but %d metadata records", ErrIndexCorrupt, len(vectors), len(records))
	}
	for i, record := range records {
		if record.VectorID != i {
			return idx, fmt.Errorf("%w: record %d carries vector_id %d", ErrIndexCorrupt, i, record.VectorID)
		}
	}

	idx.restore(vectors, records)
	s.logger.Info("loaded vector index snapshot",
		zap.String("dir", s.dir),
		zap.Int("vectors", len(vectors)))
	return idx, nil
}

func (s *IndexStore) readVectors(path string, dimensions int) ([][]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vectors file: %v", err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat vectors file: %v", err)
	}
	r := bufio.NewReader(f)

	var dim, count uint32
	if err := binary.Read(r, binary.LittleEndian, &dim); err != nil {
		return nil, fmt.Errorf("read dimensions: %v", err)
	}
	if int(dim) != dimensions {
		return nil, fmt.Errorf("snapshot dimension %d, index expects %d", dim, dimensions)
	}
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("read count: %v", err)
	}
	// The header is not trusted until the declared payload matches the bytes
	// actually on disk; a bogus count must not drive the allocation below.
	payload := info.Size() - 8
	if int64(count)*int64(dimensions)*4 != payload {
		return nil, fmt.Errorf("count %d claims %d payload bytes, file has %d",
			count, int64(count)*int64(dimensions)*4, payload)
	}

	vectors := make([][]float32, 0, count)
	for i := uint32(0); i < count; i++ {
		vec := make([]float32, dimensions)
		if err := binary.Read(r, binary.LittleEndian, vec); err != nil {
			return nil, fmt.Errorf("read vector %d: %v", i, err)
		}
		vectors = append(vectors, vec)
	}
	return vectors, nil
}

func (s *IndexStore) readMetadata(path string) ([]*models.VectorRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read metadata file: %v", err)
	}
	var records []*models.VectorRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse metadata: %v", err)
	}
	return records, nil
}
