package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ParsedDate is a calendar date or the explicit unparseable state.
// Unparseable is a value, not an error: downstream counts it as an
// unknown date rather than dropping the row.
type ParsedDate struct {
	Time time.Time
	OK   bool
}

// Month returns the calendar-month bucket label ("2006-01"), "" when unparseable.
func (d ParsedDate) Month() string {
	if !d.OK {
		return ""
	}
	return d.Time.Format("2006-01")
}

var (
	isoDateRe      = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	slashISODateRe = regexp.MustCompile(`^(\d{4})/(\d{1,2})/(\d{1,2})$`)
	usDateRe       = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	compactDateRe  = regexp.MustCompile(`^\d{8}$`)
)

// excelEpoch is the spreadsheet serial origin. 1899-12-30 absorbs the
// historical Lotus 1-2-3 leap-year off-by-one carried by Excel serials.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Serials outside this range are treated as plain numbers, not dates.
const (
	minExcelSerial = 1
	maxExcelSerial = 60000
)

// fallbackLayouts is the permissive last resort, attempted only after
// every explicit form has failed.
var fallbackLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"01-02-2006",
	"2006.01.02",
	"2 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// ParseMixedDate parses one raw cell value into a calendar date, applying
// a fixed precedence order: ISO YYYY-MM-DD, slash YYYY/MM/DD, US
// MM/DD/YYYY, compact MMDDYYYY, spreadsheet serial, then the permissive
// fallback. The order is load-bearing: ambiguous strings must resolve the
// same way every run. Empty, whitespace-only and unrecognized values
// return the Unparseable state, never an error.
func ParseMixedDate(raw string) ParsedDate {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ParsedDate{}
	}

	if m := isoDateRe.FindStringSubmatch(s); m != nil {
		return makeDate(m[1], m[2], m[3])
	}
	if m := slashISODateRe.FindStringSubmatch(s); m != nil {
		return makeDate(m[1], m[2], m[3])
	}
	if m := usDateRe.FindStringSubmatch(s); m != nil {
		return makeDate(m[3], m[1], m[2])
	}
	if compactDateRe.MatchString(s) {
		return makeDate(s[4:8], s[0:2], s[2:4])
	}
	if d, ok := parseExcelSerial(s); ok {
		return d
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return ParsedDate{Time: t.Truncate(24 * time.Hour), OK: true}
		}
	}
	return ParsedDate{}
}

// makeDate validates component ranges; time.Date silently normalizes
// overflow, so the result is checked by round-trip.
func makeDate(year, month, day string) ParsedDate {
	y, _ := strconv.Atoi(year)
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return ParsedDate{}
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || t.Month() != time.Month(m) || t.Day() != d {
		return ParsedDate{}
	}
	return ParsedDate{Time: t, OK: true}
}

func parseExcelSerial(s string) (ParsedDate, bool) {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return ParsedDate{}, false
	}
	if n < minExcelSerial || n > maxExcelSerial {
		return ParsedDate{}, false
	}
	// Fractional part is time of day; the bucket only needs the date.
	t := excelEpoch.AddDate(0, 0, int(n))
	return ParsedDate{Time: t, OK: true}, true
}
