package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/searchgate/internal/domain"
	"github.com/kailas-cloud/searchgate/internal/domain/activity"
	domdoc "github.com/kailas-cloud/searchgate/internal/domain/document"
)

// PreviewRunes is how much of the text an INSERT entry carries.
const PreviewRunes = 50

// Service handles document inserts.
type Service struct {
	repo     Repository
	activity ActivityRecorder
}

// New creates a document service.
func New(repo Repository, activity ActivityRecorder) *Service {
	return &Service{repo: repo, activity: activity}
}

// Insert validates the text and indexes it with an engine-assigned id.
// Validation failures never reach the engine and are not recorded as errors.
func (s *Service) Insert(ctx context.Context, text string) (string, error) {
	doc, err := domdoc.New("", text)
	if err != nil {
		return "", err
	}

	id, err := s.repo.Index(ctx, doc)
	if err != nil {
		s.activity.Record(activity.ActionError, fmt.Sprintf("Insert error: %v", err))
		if errors.Is(err, domain.ErrConnection) {
			return "", fmt.Errorf("insert document: %w", err)
		}
		return "", fmt.Errorf("insert document: %w: %w", domain.ErrWrite, err)
	}

	s.activity.Record(activity.ActionInsert, "Inserted document: "+doc.Preview(PreviewRunes)+"...")
	return id, nil
}
