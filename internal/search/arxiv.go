// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

const pdfMediaType = "application/pdf"

// arXiv Atom feed XML structures. Only elements in the Atom namespace are
// matched; arxiv: and opensearch: extensions are ignored.
type arxivFeed struct {
	Entries []arxivEntry `xml:"http://www.w3.org/2005/Atom entry"`
}

type arxivEntry struct {
	Titles    []leadingText `xml:"http://www.w3.org/2005/Atom title"`
	Summaries []leadingText `xml:"http://www.w3.org/2005/Atom summary"`
	Updated   []leadingText `xml:"http://www.w3.org/2005/Atom updated"`
	Authors   []arxivAuthor `xml:"http://www.w3.org/2005/Atom author"`
	Links     []arxivLink   `xml:"http://www.w3.org/2005/Atom link"`
}

type arxivAuthor struct {
	Names []leadingText `xml:"http://www.w3.org/2005/Atom name"`
}

type arxivLink struct {
	Href string `xml:"href,attr"`
	Type string `xml:"type,attr"`
}

// leadingText is the character data of an element up to its first child
// element. "<title>A <i>b</i> c</title>" yields "A ".
type leadingText string

func (t *leadingText) UnmarshalXML(d *xml.Decoder, _ xml.StartElement) error {
	var b strings.Builder
	seenChild := false
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch tt := tok.(type) {
		case xml.CharData:
			if !seenChild {
				b.Write(tt)
			}
		case xml.StartElement:
			seenChild = true
			if err := d.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			*t = leadingText(b.String())
			return nil
		}
	}
}

// first returns the text of the first occurrence of a repeated element, or
// "" when the element is absent.
func first(texts []leadingText) string {
	if len(texts) == 0 {
		return ""
	}
	return string(texts[0])
}

// ParseFeed parses an Atom document into Papers in document order. Missing
// entry fields become empty values; only a document that is not well-formed
// XML is an error.
func ParseFeed(text string) ([]types.Paper, error) {
	dec := newDecoder(text)

	var feed arxivFeed
	if err := dec.Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv feed: %w", err)
	}
	if err := expectEOF(dec); err != nil {
		return nil, fmt.Errorf("parsing arXiv feed: %w", err)
	}
	if err := checkPrefixes(text); err != nil {
		return nil, fmt.Errorf("parsing arXiv feed: %w", err)
	}

	papers := make([]types.Paper, 0, len(feed.Entries))
	for _, e := range feed.Entries {
		papers = append(papers, entryToPaper(e))
	}
	return papers, nil
}

func newDecoder(text string) *xml.Decoder {
	dec := xml.NewDecoder(strings.NewReader(text))
	// The text is already UTF-8; ignore whatever encoding the prolog declares.
	dec.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}
	return dec
}

// expectEOF consumes the rest of the document and rejects anything other
// than whitespace, comments and processing instructions after the root.
func expectEOF(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.CharData:
			if strings.TrimSpace(string(t)) != "" {
				return fmt.Errorf("unexpected text after document element")
			}
		case xml.Comment, xml.ProcInst:
		default:
			return fmt.Errorf("unexpected content after document element")
		}
	}
}

// checkPrefixes rejects element and attribute prefixes with no namespace
// declaration in scope. encoding/xml tolerates them; a namespace-aware
// parser treats them as malformed.
func checkPrefixes(text string) error {
	dec := newDecoder(text)
	var scopes []map[string]bool
	bound := func(prefix string) bool {
		if prefix == "" || prefix == "xml" || prefix == "xmlns" {
			return true
		}
		for i := len(scopes) - 1; i >= 0; i-- {
			if scopes[i][prefix] {
				return true
			}
		}
		return false
	}

	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			scope := make(map[string]bool)
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" {
					scope[a.Name.Local] = true
				}
			}
			scopes = append(scopes, scope)

			if !bound(t.Name.Space) {
				return fmt.Errorf("unbound namespace prefix %q on element <%s:%s>", t.Name.Space, t.Name.Space, t.Name.Local)
			}
			for _, a := range t.Attr {
				if !bound(a.Name.Space) {
					return fmt.Errorf("unbound namespace prefix %q on attribute %s:%s", a.Name.Space, a.Name.Space, a.Name.Local)
				}
			}
		case xml.EndElement:
			if len(scopes) > 0 {
				scopes = scopes[:len(scopes)-1]
			}
		}
	}
}

func entryToPaper(e arxivEntry) types.Paper {
	p := types.Paper{
		Title:    strings.TrimSpace(first(e.Titles)),
		Abstract: strings.Join(strings.Fields(first(e.Summaries)), " "),
		Updated:  first(e.Updated),
		Authors:  []string{},
	}

	for _, a := range e.Authors {
		if name := strings.TrimSpace(first(a.Names)); name != "" {
			p.Authors = append(p.Authors, name)
		}
	}

	for _, l := range e.Links {
		if l.Type == pdfMediaType {
			p.PDFURL = l.Href
			break
		}
	}
	return p
}

// LooksLikeAtom reports whether text sniffs as an Atom feed. It is a
// diagnostic only; ParseFeed does not depend on it.
func LooksLikeAtom(text string) bool {
	return gofeed.DetectFeedType(strings.NewReader(text)) == gofeed.FeedTypeAtom
}
