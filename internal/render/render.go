// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns parsed papers into the published HTML page.
package render

import (
	"bytes"
	"html"
	"html/template"
	"strings"
	"time"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// Placeholder tokens recognized in the page template.
const (
	TokenPaperItems       = "{{PAPER_ITEMS}}"
	TokenLastUpdated      = "{{LAST_UPDATED}}"
	TokenQueryDescription = "{{QUERY_DESCRIPTION}}"
)

// UnknownAuthors is shown when an entry lists no authors.
const UnknownAuthors = "Unknown authors"

const emptyMessage = `<p style="font-size:0.9rem;color:#9ca3af;margin:0.4rem 0 0;">
  No papers were returned from the arXiv API for the current query.
  This could be a temporary network issue or simply no recent matches.
</p>`

var cardTemplate = template.Must(template.New("card").Parse(`<article class="paper-card">
  <h3 class="paper-title">
    <a href="{{.PDFURL}}" target="_blank" rel="noopener noreferrer">
      {{.Title}}
    </a>
  </h3>
  <p class="paper-meta">
    <span class="paper-authors">{{.Authors}}</span>
    <span class="paper-dot">•</span>
    <span class="paper-date">{{.Date}}</span>
  </p>
  <p class="paper-abstract">{{.Abstract}}</p>
  <a class="paper-link" href="{{.PDFURL}}" target="_blank" rel="noopener noreferrer">
    View PDF →
  </a>
</article>`))

// card is the display form of one Paper. Every field is plain text; the
// template escapes it for its context.
type card struct {
	Title    string
	Authors  string
	Date     string
	Abstract string
	PDFURL   string
}

func newCard(p types.Paper) card {
	authors := strings.Join(p.Authors, ", ")
	if authors == "" {
		authors = UnknownAuthors
	}
	return card{
		Title:    p.Title,
		Authors:  authors,
		Date:     FormatDate(p.Updated),
		Abstract: CollapseWhitespace(p.Abstract),
		PDFURL:   p.PDFURL,
	}
}

// RenderItems renders one article block per paper, in order, separated by
// a blank line. With no papers it returns an explanatory message instead.
func RenderItems(papers []types.Paper) (string, error) {
	if len(papers) == 0 {
		return emptyMessage, nil
	}

	blocks := make([]string, 0, len(papers))
	var buf bytes.Buffer
	for _, p := range papers {
		buf.Reset()
		if err := cardTemplate.Execute(&buf, newCard(p)); err != nil {
			return "", err
		}
		blocks = append(blocks, buf.String())
	}
	return strings.Join(blocks, "\n\n"), nil
}

// RenderPage substitutes the rendered papers, the last-updated string and
// the query description into tmpl. Tokens missing from tmpl are skipped and
// repeated tokens are all replaced. Substitution is a single pass, so token
// text arriving through feed content is left as is.
func RenderPage(tmpl string, papers []types.Paper, lastUpdated, queryDescription string) (string, error) {
	items, err := RenderItems(papers)
	if err != nil {
		return "", err
	}

	r := strings.NewReplacer(
		TokenPaperItems, items,
		TokenLastUpdated, html.EscapeString(lastUpdated),
		TokenQueryDescription, html.EscapeString(queryDescription),
	)
	return r.Replace(tmpl), nil
}

// CollapseWhitespace trims s and replaces every interior whitespace run
// with a single space.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// LastUpdated formats t in UTC to minute precision, e.g. "2024-03-01 12:00 UTC".
func LastUpdated(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04") + " UTC"
}

// QueryDescription is the human-readable keyword list shown on the page.
func QueryDescription(keywords []string) string {
	return strings.Join(keywords, ", ")
}
