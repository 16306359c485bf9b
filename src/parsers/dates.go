package parsers

import (
	"regexp"
	"strconv"
	"time"

	"github.com/username/fundadvisor/backend/src/logger"
	"github.com/username/fundadvisor/backend/src/profiles"
)

// Era base years: era year 1 corresponds to base+1 in the Gregorian calendar.
var eraBases = map[string]int{
	"令和": 2018,
	"平成": 1988,
	"昭和": 1925,
}

var (
	gregorianYMDRe      = regexp.MustCompile(`(\d{4})年\s?(\d{1,2})月\s?(\d{1,2})日\s?現在`)
	gregorianMonthEndRe = regexp.MustCompile(`(\d{4})年\s?(\d{1,2})月\s?末\s?現在`)
	imperialEraRe       = regexp.MustCompile(`(令和|平成|昭和)\s?(元|\d{1,2})\s?年\s?(\d{1,2})月\s?(?:(\d{1,2})日|末)\s?現在`)
)

// ExtractDate scans folded region text against the profile's ordered date
// patterns. The first pattern that matches wins. Returns the zero time and
// false when nothing matched: an unknown date is reported, never guessed.
func ExtractDate(region string, patternNames []string) (time.Time, bool) {
	for _, name := range patternNames {
		switch name {
		case profiles.DateGregorianYMD:
			if m := gregorianYMDRe.FindStringSubmatch(region); m != nil {
				return makeDate(atoi(m[1]), atoi(m[2]), atoi(m[3]))
			}
		case profiles.DateGregorianMonthEnd:
			if m := gregorianMonthEndRe.FindStringSubmatch(region); m != nil {
				return makeMonthEnd(atoi(m[1]), atoi(m[2]))
			}
		case profiles.DateImperialEra:
			if m := imperialEraRe.FindStringSubmatch(region); m != nil {
				year := eraBases[m[1]] + eraYear(m[2])
				if m[4] == "" {
					return makeMonthEnd(year, atoi(m[3]))
				}
				return makeDate(year, atoi(m[3]), atoi(m[4]))
			}
		default:
			if logger.L != nil {
				logger.L.Warn("Unknown date pattern name in profile, skipping", "pattern", name)
			}
		}
	}
	return time.Time{}, false
}

func eraYear(s string) int {
	if s == "元" {
		return 1
	}
	return atoi(s)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func makeDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// makeMonthEnd resolves 月末現在 to the last calendar day of the month.
func makeMonthEnd(year, month int) (time.Time, bool) {
	if month < 1 || month > 12 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC), true
}
