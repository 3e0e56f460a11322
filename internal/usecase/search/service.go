package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/searchgate/internal/domain"
	"github.com/kailas-cloud/searchgate/internal/domain/activity"
	domsearch "github.com/kailas-cloud/searchgate/internal/domain/search"
)

// Service runs full-text queries.
type Service struct {
	repo     Repository
	activity ActivityRecorder
	limit    int
}

// New creates a search service capped at domsearch.DefaultLimit hits.
func New(repo Repository, activity ActivityRecorder) *Service {
	return &Service{repo: repo, activity: activity, limit: domsearch.DefaultLimit}
}

// Search returns hits in engine relevance order. An empty slice means nothing matched.
func (s *Service) Search(ctx context.Context, query string) ([]domsearch.Hit, error) {
	q, err := domsearch.NormalizeQuery(query)
	if err != nil {
		return nil, err
	}

	hits, err := s.repo.Search(ctx, q, s.limit)
	if err != nil {
		s.activity.Record(activity.ActionError, fmt.Sprintf("Search error: %v", err))
		if errors.Is(err, domain.ErrConnection) {
			return nil, fmt.Errorf("search: %w", err)
		}
		return nil, fmt.Errorf("search: %w: %w", domain.ErrQuery, err)
	}

	s.activity.Record(activity.ActionSearch, fmt.Sprintf("Query: '%s' returned %d results", q, len(hits)))
	return hits, nil
}
