package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kailas-cloud/searchgate/internal/db"
	"github.com/kailas-cloud/searchgate/internal/domain"
	domsearch "github.com/kailas-cloud/searchgate/internal/domain/search"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	SearchText(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
}

// Repo implements usecase/search.Repository.
type Repo struct {
	store store
	index string
}

// New creates a search repository bound to one index.
func New(s store, index string) *Repo {
	return &Repo{store: s, index: index}
}

// Search runs a full-text match on the text field and returns up to limit hits in relevance order.
func (r *Repo) Search(ctx context.Context, query string, limit int) ([]domsearch.Hit, error) {
	sr, err := r.store.SearchText(ctx, &db.TextQuery{
		IndexName:    r.index,
		Field:        domain.FieldText,
		Query:        query,
		Limit:        limit,
		ReturnFields: []string{domain.FieldID, domain.FieldText},
	})
	if err != nil {
		if errors.Is(err, db.ErrUnavailable) {
			return nil, fmt.Errorf("search %s: %w: %w", r.index, domain.ErrConnection, err)
		}
		return nil, fmt.Errorf("search %s: %w", r.index, err)
	}

	prefix := domain.KeyPrefix(r.index)
	hits := make([]domsearch.Hit, 0, len(sr.Entries))
	for _, e := range sr.Entries {
		id := e.Fields[domain.FieldID]
		if id == "" {
			id = strings.TrimPrefix(e.Key, prefix)
		}
		hits = append(hits, domsearch.Hit{ID: id, Text: e.Fields[domain.FieldText]})
	}
	return hits, nil
}
