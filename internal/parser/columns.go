package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// NormalizeColumnName trims and case-folds a header for comparison.
func NormalizeColumnName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// CanonicalColumnName reduces a header to its alphanumeric core, so that
// "SF + JSWP Completed (5)" and "sf_jswp_completed_5" compare equal.
func CanonicalColumnName(name string) string {
	return nonAlnumRe.ReplaceAllString(NormalizeColumnName(name), "")
}

// LetterToIndex converts a spreadsheet column letter ("A", "AL") to a
// zero-based index. Non-letter characters are ignored.
func LetterToIndex(letter string) int {
	n := 0
	for _, ch := range strings.ToUpper(strings.TrimSpace(letter)) {
		if ch < 'A' || ch > 'Z' {
			continue
		}
		n = n*26 + int(ch-'A') + 1
	}
	if n == 0 {
		return -1
	}
	return n - 1
}

// MakeUniqueColumns disambiguates duplicate headers the way the exports
// are read: the second "Gender" becomes "Gender__1", and so on.
func MakeUniqueColumns(columns []string) []string {
	seen := make(map[string]int, len(columns))
	out := make([]string, len(columns))
	for i, col := range columns {
		col = strings.TrimSpace(col)
		if n, ok := seen[col]; ok {
			seen[col] = n + 1
			out[i] = col + "__" + strconv.Itoa(n+1)
		} else {
			seen[col] = 0
			out[i] = col
		}
	}
	return out
}

// truthySet are the values a completion flag accepts as true.
var truthySet = map[string]struct{}{
	"yes": {}, "y": {}, "true": {}, "1": {}, "completed": {}, "done": {},
}

// TruthyFlag reports whether a raw cell marks a program as completed.
func TruthyFlag(raw string) bool {
	_, ok := truthySet[NormalizeColumnName(raw)]
	return ok
}

// ParseCount parses a session count; blank and non-numeric cells count as 0.
func ParseCount(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return n
}
