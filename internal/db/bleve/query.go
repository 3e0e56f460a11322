package bleve

import (
	"strings"

	blevesearch "github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/google/uuid"

	"github.com/kailas-cloud/searchgate/internal/db"
)

// buildMatchQuery runs the raw text through textAnalyzer, the analyzer the
// TEXT field was indexed with, and ORs the terms.
func buildMatchQuery(q *db.TextQuery) query.Query {
	mq := blevesearch.NewMatchQuery(q.Query)
	mq.SetField(q.Field)
	mq.Analyzer = textAnalyzer
	mq.SetOperator(query.MatchQueryOperatorOr)
	return mq
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func newID() string {
	return uuid.NewString()
}
