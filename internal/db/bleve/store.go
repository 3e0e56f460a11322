package bleve

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	blevesearch "github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/kailas-cloud/searchgate/internal/db"
)

// Compile-time check: Store implements db.Engine.
var _ db.Engine = (*Store)(nil)

// Config holds settings for the embedded engine.
type Config struct {
	// Path is the directory holding one sub-directory per index; empty keeps indexes in memory.
	Path string
	// Timeout bounds every search; 0 disables it.
	Timeout time.Duration
}

type openIndex struct {
	idx blevesearch.Index
}

// Store implements db.Engine on top of bleve. bleve.Index is safe for
// concurrent use; mu only guards the name -> index registry.
type Store struct {
	cfg Config

	mu      sync.RWMutex
	indexes map[string]*openIndex
	closed  bool
}

// NewStore creates an embedded store. For on-disk stores the directory is created eagerly.
func NewStore(cfg Config) (*Store, error) {
	if cfg.Path != "" {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create index dir %s: %w: %w", cfg.Path, db.ErrUnavailable, err)
		}
	}
	return &Store{cfg: cfg, indexes: make(map[string]*openIndex)}, nil
}

// Ping reports ErrUnavailable once the store is closed.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return &db.Error{Op: db.OpPing, Err: fmt.Errorf("%w: %w", db.ErrUnavailable, err)}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return &db.Error{Op: db.OpPing, Err: fmt.Errorf("%w: store closed", db.ErrUnavailable)}
	}
	return nil
}

// Close closes every open index.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name, oi := range s.indexes {
		_ = oi.idx.Close()
		delete(s.indexes, name)
	}
	s.closed = true
}

// CreateIndex builds a bleve mapping from the definition and creates the index.
func (s *Store) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if err := def.Validate(); err != nil {
		return err
	}
	im, err := buildMapping(def)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return unavailable(db.OpCreateIndex, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return unavailable(db.OpCreateIndex, errStoreClosed)
	}
	if _, ok := s.indexes[def.Name]; ok {
		return db.ErrIndexExists
	}

	var idx blevesearch.Index
	if s.cfg.Path == "" {
		idx, err = blevesearch.NewMemOnly(im)
	} else {
		idx, err = blevesearch.New(s.indexPath(def.Name), im)
		if errors.Is(err, blevesearch.ErrorIndexPathExists) {
			return db.ErrIndexExists
		}
	}
	if err != nil {
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}

	s.indexes[def.Name] = &openIndex{idx: idx}
	return nil
}

// IndexExists reports whether the index is open or present on disk.
// An on-disk index found here is opened and kept for later calls.
func (s *Store) IndexExists(_ context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.lookupLocked(name)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, db.ErrIndexNotFound):
		return false, nil
	default:
		return false, err
	}
}

// PutDocument indexes the fields under the request ID, assigning a UUID when empty.
// bleve applies the batch before Index returns, so the write is immediately searchable.
func (s *Store) PutDocument(ctx context.Context, req *db.WriteRequest) (string, error) {
	if len(req.Fields) == 0 {
		return "", errors.New("at least one field is required")
	}
	if err := ctx.Err(); err != nil {
		return "", unavailable(db.OpHSet, err)
	}

	oi, err := s.get(req.Index)
	if err != nil {
		return "", err
	}

	id := req.ID
	if id == "" {
		id = newID()
	}

	if err := oi.idx.Index(id, toDocument(req.Fields)); err != nil {
		return "", &db.Error{Op: db.OpHSet, Err: err}
	}
	return id, nil
}

// SearchText runs a match query on the field. Terms are OR-ed and hits come back by score.
func (s *Store) SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error) {
	if q.IndexName == "" {
		return nil, fmt.Errorf("index name is required")
	}
	if q.Field == "" {
		return nil, fmt.Errorf("field is required")
	}
	if q.Limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}
	if isBlank(q.Query) {
		return nil, fmt.Errorf("query is required")
	}

	oi, err := s.get(q.IndexName)
	if err != nil {
		return nil, err
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	req := blevesearch.NewSearchRequestOptions(buildMatchQuery(q), q.Limit, 0, false)
	req.Fields = q.ReturnFields

	res, err := oi.idx.SearchInContext(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, unavailable(db.OpSearch, err)
		}
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	entries := make([]db.SearchEntry, 0, len(res.Hits))
	for _, hit := range res.Hits {
		entries = append(entries, db.SearchEntry{
			Key:    hit.ID,
			Score:  hit.Score,
			Fields: stringFields(hit.Fields),
		})
	}
	return &db.SearchResult{Total: int(res.Total), Entries: entries}, nil
}

var errStoreClosed = errors.New("store closed")

func (s *Store) get(name string) (*openIndex, error) {
	s.mu.RLock()
	oi, ok := s.indexes[name]
	closed := s.closed
	s.mu.RUnlock()
	if ok {
		return oi, nil
	}
	if closed {
		return nil, unavailable(db.OpIndexInfo, errStoreClosed)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookupLocked(name)
}

// lookupLocked returns an open index, opening it from disk if needed. Caller holds mu.
func (s *Store) lookupLocked(name string) (*openIndex, error) {
	if s.closed {
		return nil, unavailable(db.OpIndexInfo, errStoreClosed)
	}
	if oi, ok := s.indexes[name]; ok {
		return oi, nil
	}
	if s.cfg.Path == "" {
		return nil, db.ErrIndexNotFound
	}

	idx, err := blevesearch.Open(s.indexPath(name))
	if errors.Is(err, blevesearch.ErrorIndexPathDoesNotExist) {
		return nil, db.ErrIndexNotFound
	}
	if err != nil {
		return nil, &db.Error{Op: db.OpIndexInfo, Err: err}
	}

	oi := &openIndex{idx: idx}
	s.indexes[name] = oi
	return oi, nil
}

func (s *Store) indexPath(name string) string {
	return filepath.Join(s.cfg.Path, name+".bleve")
}

func unavailable(op string, err error) error {
	return &db.Error{Op: op, Err: fmt.Errorf("%w: %w", db.ErrUnavailable, err)}
}

// textAnalyzer splits on Unicode word boundaries and lowercases, with no stop-word
// filter, so every word of the text stays searchable.
const textAnalyzer = "searchgate_text"

// buildMapping translates the definition into a non-dynamic document mapping:
// TAG becomes a keyword field, TEXT a field analyzed by textAnalyzer.
func buildMapping(def *db.IndexDefinition) (*mapping.IndexMappingImpl, error) {
	im := blevesearch.NewIndexMapping()
	err := im.AddCustomAnalyzer(textAnalyzer, map[string]any{
		"type":          custom.Name,
		"tokenizer":     unicode.Name,
		"token_filters": []string{lowercase.Name},
	})
	if err != nil {
		return nil, fmt.Errorf("define analyzer: %w", err)
	}

	doc := blevesearch.NewDocumentMapping()
	doc.Dynamic = false

	for _, f := range def.Fields {
		var fm *mapping.FieldMapping
		switch f.Type {
		case db.IndexFieldTag:
			fm = blevesearch.NewKeywordFieldMapping()
		case db.IndexFieldText:
			fm = blevesearch.NewTextFieldMapping()
			fm.Analyzer = textAnalyzer
		default:
			return nil, fmt.Errorf("unknown field type for %q", f.Name)
		}
		fm.Store = true
		doc.AddFieldMappingsAt(f.Name, fm)
	}

	im.DefaultMapping = doc
	im.DefaultAnalyzer = textAnalyzer
	return im, nil
}

func toDocument(fields map[string]string) map[string]any {
	doc := make(map[string]any, len(fields))
	for k, v := range fields {
		doc[k] = v
	}
	return doc
}

func stringFields(in map[string]any) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		if sv, ok := v.(string); ok {
			out[k] = sv
			continue
		}
		out[k] = fmt.Sprint(v)
	}
	return out
}
