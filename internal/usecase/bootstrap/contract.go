package bootstrap

import (
	"context"

	"github.com/kailas-cloud/searchgate/internal/domain/activity"
	domdoc "github.com/kailas-cloud/searchgate/internal/domain/document"
)

// Conn is a dialed engine client.
type Conn interface {
	Ping(ctx context.Context) error
	Close()
}

// IndexRepository ensures the target index exists.
type IndexRepository interface {
	EnsureIndex(ctx context.Context, name string) (created bool, err error)
}

// DocumentRepository writes seed documents.
type DocumentRepository interface {
	Index(ctx context.Context, doc domdoc.Document) (id string, err error)
}

// ActivityRecorder appends entries to the activity log. It never fails.
type ActivityRecorder interface {
	Record(action activity.Action, message string)
}
