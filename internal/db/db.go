package db

import "context"

// Engine is the search engine facade combining all sub-interfaces.
type Engine interface {
	Pinger
	IndexManager
	DocumentWriter
	Searcher
	Close()
}

// Pinger checks engine connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// IndexManager provides index lifecycle operations.
type IndexManager interface {
	CreateIndex(ctx context.Context, def *IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// WriteRequest describes a single document write.
// An empty ID lets the engine client assign a random one.
type WriteRequest struct {
	Index  string
	Prefix string // key prefix for hash-backed engines
	ID     string
	Fields map[string]string
}

// DocumentWriter writes documents into an index.
// Writes are visible to searches issued after PutDocument returns.
type DocumentWriter interface {
	PutDocument(ctx context.Context, req *WriteRequest) (id string, err error)
}

// Searcher provides full-text search over indexes.
type Searcher interface {
	SearchText(ctx context.Context, q *TextQuery) (*SearchResult, error)
}
