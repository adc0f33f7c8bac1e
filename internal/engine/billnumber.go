package engine

import (
	"regexp"
	"strings"
)

// billPathPattern matches /bill/<parliament>-<session>/<letter>-<digits>,
// the token ending at a path, query or fragment boundary.
var billPathPattern = regexp.MustCompile(`/bill/\d+-\d+/([A-Za-z]-\d+)(?:[/?#]|$)`)

// billNumberPattern is the shape a normalized bill number must have
var billNumberPattern = regexp.MustCompile(`^[a-z]-\d+$`)

// ExtractBillNumber returns the bill code embedded in a bill URL.
// The second result is false when the URL does not have the expected path shape.
func ExtractBillNumber(url string) (string, bool) {
	m := billPathPattern.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// NormalizeBillNumber lower-cases and trims a bill number.
// The second result reports whether the normalized value has the letter-hyphen-digits shape.
func NormalizeBillNumber(number string) (string, bool) {
	n := strings.ToLower(strings.TrimSpace(number))
	return n, billNumberPattern.MatchString(n)
}
