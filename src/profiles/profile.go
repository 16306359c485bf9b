package profiles

import (
	"github.com/username/fundadvisor/backend/src/models"
)

// Named date patterns a profile can list, in the order they should be tried.
// The actual regexes and era conversion live in the parsers package; profiles
// only declare which patterns apply to a carrier and in what priority.
const (
	DateGregorianYMD      = "gregorian_ymd"       // 2025年7月31日現在
	DateGregorianMonthEnd = "gregorian_month_end" // 2025年7月末現在
	DateImperialEra       = "imperial_era"        // 令和7年7月31日現在, incl. 元年
)

// AccountMatching declares how a carrier labels its fund accounts. Exactly one
// of the two modes is used: a fixed list of literal names to search for, or a
// generic pattern capturing any name ending in a type suffix.
type AccountMatching struct {
	// Names are literal account names. Longer names win when a shorter name
	// is a substring of a longer one (株式型 inside 日本成長株式型).
	Names []string

	// Pattern is a regex with one capture group for the account name. Only
	// consulted when Names is empty.
	Pattern string
}

// CompanyParsingProfile bundles every per-carrier heuristic: anchor phrases,
// date patterns, account matching, column layout and the alias table. It is
// immutable at runtime and versioned by hand when a carrier changes its
// report format; nothing here is learned from data.
type CompanyParsingProfile struct {
	Company models.CompanyCode
	Version int

	// Anchors are tried in priority order. The first anchor with at least one
	// occurrence selects the working region(s); later anchors are fallbacks.
	Anchors []string

	// WindowSize bounds the region taken after each anchor occurrence, in
	// bytes of folded text.
	WindowSize int

	// DatePatterns is the ordered list of named date patterns to try.
	DatePatterns []string

	Accounts AccountMatching

	// ValueColumns names the percentage columns that follow each account
	// name, in document order, using the models.Field* keys. One of them
	// must be models.FieldPerformance1Y.
	ValueColumns []string

	// ValueWindow bounds the scan for percentage tokens after an account
	// name, in bytes of folded text.
	ValueWindow int

	// UnitPrice enables the yen-amount scan in the value window.
	UnitPrice bool

	// Aliases maps raw account names to canonical fund types. Names missing
	// here fall through to the canonicalizer's suffix heuristic.
	Aliases map[string]models.FundType
}
