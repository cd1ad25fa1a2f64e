// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the arxiv-digest pipeline.
// Implements: the Paper record produced by the feed parser and consumed by the
// page renderer, and the configuration that drives a single run.
package types

// Paper holds the metadata extracted from one Atom entry. A Paper is built
// once by the feed parser and never modified afterwards; its only identity
// is its position in the parsed sequence.
type Paper struct {
	// Title is the entry title with surrounding whitespace removed.
	Title string `json:"title" yaml:"title"`

	// Abstract is the entry summary with every whitespace run collapsed to a
	// single space and the ends trimmed.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Authors lists the non-empty author names in feed order.
	Authors []string `json:"authors" yaml:"authors"`

	// Updated is the raw <updated> timestamp as provided by the feed.
	Updated string `json:"updated" yaml:"updated"`

	// PDFURL is the href of the first application/pdf link, or "" if none.
	PDFURL string `json:"pdf_url" yaml:"pdf_url"`
}
