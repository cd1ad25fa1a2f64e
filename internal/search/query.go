// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// BuildQueryURL returns the arXiv API URL matching any keyword in either
// the title or the abstract, newest submissions first. The result depends
// only on its arguments.
//
// Keywords are used verbatim; arXiv treats "+" inside a term as a space, so
// "causal+inference" matches the phrase. An empty keyword list yields an
// empty search_query. maxResults <= 0 falls back to DefaultMaxResults.
func BuildQueryURL(keywords []string, maxResults int) string {
	if maxResults <= 0 {
		maxResults = types.DefaultMaxResults
	}

	params := url.Values{}
	params.Set("search_query", buildSearchQuery(keywords))
	params.Set("sortBy", "submittedDate")
	params.Set("sortOrder", "descending")
	params.Set("max_results", strconv.Itoa(maxResults))

	return arxivAPIBase + "?" + params.Encode()
}

// buildSearchQuery ORs together one (ti:kw OR abs:kw) clause per keyword.
func buildSearchQuery(keywords []string) string {
	clauses := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		clauses = append(clauses, fmt.Sprintf("(ti:%s OR abs:%s)", kw, kw))
	}
	return strings.Join(clauses, " OR ")
}
