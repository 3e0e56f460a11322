package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/searchgate/internal/db"
	"github.com/kailas-cloud/searchgate/internal/domain"
	domdoc "github.com/kailas-cloud/searchgate/internal/domain/document"
)

// store is the consumer interface for documents (ISP).
type store interface {
	PutDocument(ctx context.Context, req *db.WriteRequest) (string, error)
}

// Repo implements usecase/document.Repository and usecase/bootstrap.DocumentRepository.
type Repo struct {
	store store
	index string
}

// New creates a document repository bound to one index.
func New(s store, index string) *Repo {
	return &Repo{store: s, index: index}
}

// Index writes the document and returns its id, assigned by the engine when the document has none.
// The id field is only stored when the caller supplied one.
func (r *Repo) Index(ctx context.Context, doc domdoc.Document) (string, error) {
	fields := map[string]string{domain.FieldText: doc.Text()}
	if doc.ID() != "" {
		fields[domain.FieldID] = doc.ID()
	}

	id, err := r.store.PutDocument(ctx, &db.WriteRequest{
		Index:  r.index,
		Prefix: domain.KeyPrefix(r.index),
		ID:     doc.ID(),
		Fields: fields,
	})
	if err != nil {
		if errors.Is(err, db.ErrUnavailable) {
			return "", fmt.Errorf("index document in %s: %w: %w", r.index, domain.ErrConnection, err)
		}
		return "", fmt.Errorf("index document in %s: %w", r.index, err)
	}
	return id, nil
}
