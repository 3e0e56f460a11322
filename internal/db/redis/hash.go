package redis

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/kailas-cloud/searchgate/internal/db"
)

// PutDocument stores a document as a hash under Prefix+ID. The search module
// indexes hashes on write, so the document is searchable once HSET returns.
func (s *Store) PutDocument(ctx context.Context, req *db.WriteRequest) (string, error) {
	if len(req.Fields) == 0 {
		return "", errors.New("at least one field is required")
	}

	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}

	cmd := s.b().Hset().Key(req.Prefix + id).FieldValue()
	for k, v := range req.Fields {
		cmd = cmd.FieldValue(k, v)
	}
	if err := s.do(ctx, cmd.Build()).Error(); err != nil {
		return "", wrapErr(db.OpHSet, err)
	}
	return id, nil
}
