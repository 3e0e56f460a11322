// Package search holds the search result value types.
package search

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/searchgate/internal/domain"
)

// DefaultLimit caps the number of hits returned per query.
const DefaultLimit = 10

// Hit is a single ranked search result.
type Hit struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// NormalizeQuery trims the query and validates it.
func NormalizeQuery(q string) (string, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return "", fmt.Errorf("query is required: %w", domain.ErrValidation)
	}
	return q, nil
}
