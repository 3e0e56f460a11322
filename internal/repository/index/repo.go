package index

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/searchgate/internal/db"
	"github.com/kailas-cloud/searchgate/internal/domain"
)

// store is the consumer interface for index lifecycle (ISP).
type store interface {
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Repo implements usecase/bootstrap.IndexRepository.
type Repo struct {
	store store
}

// New creates an index repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// EnsureIndex creates the index with the fixed schema if it is absent.
// Returns true only when this call created it; losing a creation race counts as existing.
func (r *Repo) EnsureIndex(ctx context.Context, name string) (bool, error) {
	exists, err := r.store.IndexExists(ctx, name)
	if err != nil {
		if errors.Is(err, db.ErrUnavailable) {
			return false, fmt.Errorf("check index %s: %w: %w", name, domain.ErrConnection, err)
		}
		return false, fmt.Errorf("check index %s: %w", name, err)
	}
	if exists {
		return false, nil
	}

	def, err := Definition(name)
	if err != nil {
		return false, err
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return false, nil
		}
		return false, fmt.Errorf("create index %s: %w", name, err)
	}
	return true, nil
}

// Definition builds the schema: exact-match id, full-text text, keyed by "<name>:".
func Definition(name string) (*db.IndexDefinition, error) {
	def, err := db.NewIndex(name).
		Prefix(domain.KeyPrefix(name)).
		Tag(domain.FieldID).
		Text(domain.FieldText).
		Build()
	if err != nil {
		return nil, fmt.Errorf("build index %s: %w", name, err)
	}
	return def, nil
}
