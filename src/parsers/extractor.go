package parsers

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/username/fundadvisor/backend/src/models"
	"github.com/username/fundadvisor/backend/src/profiles"
)

// Entry is one fund row pulled out of a located region: the raw account name
// exactly as the carrier prints it, its byte position in the folded document,
// and whatever value columns were found nearby. Canonical mapping happens
// later; the extractor never interprets names.
type Entry struct {
	RawName       string
	Position      int
	Values        map[string]float64
	UnitPrice     *float64
	LowConfidence bool
}

type nameMatch struct {
	name  string
	start int
	end   int
}

// ExtractEntries scans every located section for the profile's account names
// and captures the percentage tokens in a bounded window after each name,
// assigned to the profile's value columns in order. An account name with no
// number nearby still yields an entry with performance 0 and a low-confidence
// flag; a known fund must never silently drop out of the result.
func ExtractEntries(sections []Section, profile *profiles.CompanyParsingProfile) ([]Entry, []models.Warning) {
	var entries []Entry
	var warnings []models.Warning

	for _, section := range sections {
		var matches []nameMatch
		if len(profile.Accounts.Names) > 0 {
			matches = matchLiteralNames(section.Text, profile.Accounts.Names)
		} else if profile.Accounts.Pattern != "" {
			matches = matchGenericPattern(section.Text, profile.Accounts.Pattern)
		}

		for i, m := range matches {
			windowEnd := m.end + profile.ValueWindow
			if windowEnd > len(section.Text) {
				windowEnd = len(section.Text)
			}
			// Numbers past the next account name belong to that row.
			if i+1 < len(matches) && matches[i+1].start < windowEnd {
				windowEnd = matches[i+1].start
			}
			for windowEnd > m.end && windowEnd < len(section.Text) && !utf8.RuneStart(section.Text[windowEnd]) {
				windowEnd--
			}
			window := section.Text[m.end:windowEnd]

			entry := Entry{
				RawName:  m.name,
				Position: section.Offset + m.start,
				Values:   make(map[string]float64, len(profile.ValueColumns)),
			}

			tokens := findPercentTokens(window, len(profile.ValueColumns))
			for j, token := range tokens {
				if j >= len(profile.ValueColumns) {
					break
				}
				if v, ok := ParsePercent(token); ok {
					entry.Values[profile.ValueColumns[j]] = v
				}
			}

			if _, ok := entry.Values[models.FieldPerformance1Y]; !ok {
				entry.Values[models.FieldPerformance1Y] = 0
				entry.LowConfidence = true
				warnings = append(warnings, models.NewWarning(models.WarnValueNotFound,
					"account %q has no one-year figure nearby, recorded as 0%% (low confidence)", m.name))
			}

			if profile.UnitPrice {
				if price, ok := findUnitPrice(window); ok {
					entry.UnitPrice = &price
				}
			}

			entries = append(entries, entry)
		}
	}

	return entries, warnings
}

// matchLiteralNames finds every occurrence of the profile's account names in
// the section, longest name first so that 株式型 never claims the tail of
// 日本成長株式型. Matches are returned in document order.
func matchLiteralNames(text string, names []string) []nameMatch {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Slice(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })

	var matches []nameMatch
	for _, name := range sorted {
		from := 0
		for {
			idx := strings.Index(text[from:], name)
			if idx < 0 {
				break
			}
			start := from + idx
			end := start + len(name)
			if !overlapsAny(matches, start, end) {
				matches = append(matches, nameMatch{name: name, start: start, end: end})
			}
			from = start + 1
		}
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].start < matches[j].start })
	return matches
}

func overlapsAny(matches []nameMatch, start, end int) bool {
	for _, m := range matches {
		if start < m.end && m.start < end {
			return true
		}
	}
	return false
}

// matchGenericPattern captures "<name ending in a type suffix>" rows for
// carriers without a fixed account list.
func matchGenericPattern(text string, pattern string) []nameMatch {
	re := regexp.MustCompile(pattern)
	var matches []nameMatch
	for _, idx := range re.FindAllStringSubmatchIndex(text, -1) {
		if len(idx) < 4 || idx[2] < 0 {
			continue
		}
		matches = append(matches, nameMatch{
			name:  text[idx[2]:idx[3]],
			start: idx[2],
			end:   idx[3],
		})
	}
	return matches
}
