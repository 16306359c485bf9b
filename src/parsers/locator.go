package parsers

import (
	"strings"
	"unicode/utf8"

	"github.com/username/fundadvisor/backend/src/profiles"
)

// Section is a bounded window of folded document text following an anchor
// occurrence. Offset is the window's byte position within the folded
// document, so later stages can order findings by document position.
type Section struct {
	Text   string
	Offset int
}

// LocateSections isolates the region(s) most likely to contain the
// performance table. Anchors are tried in the profile's priority order; the
// first anchor with at least one occurrence wins, and every occurrence of
// that anchor yields one window. Returns false when no anchor matches at
// all — the caller must treat that as an explicit "section not found", not
// scan the whole document. Financial boilerplate (disclaimers, fee
// schedules) is full of percentages, so a whole-document fallback would
// drown the extractor in false positives.
func LocateSections(text string, profile *profiles.CompanyParsingProfile) ([]Section, bool) {
	for _, anchor := range profile.Anchors {
		var sections []Section
		searchFrom := 0
		for {
			idx := strings.Index(text[searchFrom:], anchor)
			if idx < 0 {
				break
			}
			start := searchFrom + idx + len(anchor)
			end := start + profile.WindowSize
			if end > len(text) {
				end = len(text)
			}
			// Never cut a multi-byte rune at the window edge.
			for end > start && end < len(text) && !utf8.RuneStart(text[end]) {
				end--
			}
			sections = append(sections, Section{Text: text[start:end], Offset: start})
			searchFrom = start
		}
		if len(sections) > 0 {
			return sections, true
		}
	}
	return nil, false
}
