package search

import (
	"context"

	"github.com/kailas-cloud/searchgate/internal/domain/activity"
	domsearch "github.com/kailas-cloud/searchgate/internal/domain/search"
)

// Repository defines the storage contract for search operations.
type Repository interface {
	Search(ctx context.Context, query string, limit int) ([]domsearch.Hit, error)
}

// ActivityRecorder appends entries to the activity log. It never fails.
type ActivityRecorder interface {
	Record(action activity.Action, message string)
}
