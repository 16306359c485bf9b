package parsers

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

// signReplacer maps the glyph variants carriers use for signed figures onto
// ASCII. ▲ (and its outline form △) is the convention for a negative figure
// in Japanese financial documents; U+2212 and the dash family are what PDF
// text extraction yields for a typeset minus.
var signReplacer = strings.NewReplacer(
	"▲", "-",
	"△", "-",
	"−", "-", // MINUS SIGN
	"‐", "-", // HYPHEN
	"–", "-", // EN DASH
	"—", "-", // EM DASH
)

// FoldText canonicalizes rune widths so that full-width digits, signs and
// percent glyphs become ASCII while half-width katakana becomes standard
// katakana, keeping account names matchable. Every scan in this package
// expects folded text; callers fold the document once up front.
func FoldText(s string) string {
	return signReplacer.Replace(width.Fold.String(s))
}

// percentRe matches a percentage-shaped token in folded text: optional sign,
// digits, optional decimal part, percent glyph.
var percentRe = regexp.MustCompile(`[+\-]?\s?\d{1,3}(?:\.\d+)?\s?%`)

// yenRe matches a unit-price token: comma-grouped digits followed by 円.
var yenRe = regexp.MustCompile(`(\d{1,3}(?:,\d{3})*(?:\.\d+)?)\s?円`)

// ParsePercent converts a folded percentage token to a signed decimal.
func ParsePercent(token string) (float64, bool) {
	t := strings.TrimSpace(token)
	t = strings.TrimSuffix(t, "%")
	t = strings.ReplaceAll(t, " ", "")
	v, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// findPercentTokens returns up to max percentage tokens from the window, in
// document order.
func findPercentTokens(window string, max int) []string {
	return percentRe.FindAllString(window, max)
}

// findUnitPrice returns the first yen amount in the window, if any.
func findUnitPrice(window string) (float64, bool) {
	m := yenRe.FindStringSubmatch(window)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
