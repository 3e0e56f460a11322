package document

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/searchgate/internal/domain"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Document is an indexed text (immutable value object).
type Document struct {
	id   string
	text string
}

// New validates and creates a Document.
// ID is optional (empty = assigned by the engine client); when set it must match ^[a-zA-Z0-9_-]+$.
// Text is trimmed and must be non-empty. Its size is bounded only by the request body limit.
func New(id, text string) (Document, error) {
	if id != "" {
		if len(id) > 256 {
			return Document{}, fmt.Errorf("document ID too long (max 256): %w", domain.ErrValidation)
		}
		if !idRegex.MatchString(id) {
			return Document{}, fmt.Errorf(
				"document ID must be alphanumeric with underscores and hyphens: %w", domain.ErrValidation,
			)
		}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return Document{}, fmt.Errorf("text is required: %w", domain.ErrValidation)
	}

	return Document{id: id, text: text}, nil
}

// Reconstruct creates a Document without validation (storage hydration).
func Reconstruct(id, text string) Document {
	return Document{id: id, text: text}
}

// ID returns the document identifier, empty if not yet assigned.
func (d Document) ID() string { return d.id }

// Text returns the searchable text.
func (d Document) Text() string { return d.text }

// WithID returns a copy carrying the given identifier.
func (d Document) WithID(id string) Document {
	d.id = id
	return d
}

// Preview returns at most n runes of the text.
func (d Document) Preview(n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(d.text) <= n {
		return d.text
	}
	runes := []rune(d.text)
	return string(runes[:n])
}
