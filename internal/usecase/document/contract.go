package document

import (
	"context"

	"github.com/kailas-cloud/searchgate/internal/domain/activity"
	domdoc "github.com/kailas-cloud/searchgate/internal/domain/document"
)

// Repository defines the storage contract for documents.
type Repository interface {
	Index(ctx context.Context, doc domdoc.Document) (id string, err error)
}

// ActivityRecorder appends entries to the activity log. It never fails.
type ActivityRecorder interface {
	Record(action activity.Action, message string)
}
