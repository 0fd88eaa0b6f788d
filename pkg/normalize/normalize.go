// Package normalize provides per-field value repair for supplier feed data:
// image URL encoding, weight unit conversion, title truncation, quantity and
// cost parsing. All functions are pure and never fail; values that cannot be
// repaired pass through with a Warning for the caller to count.
package normalize

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// MaxTitleLength is the Shopify product title limit.
const MaxTitleLength = 255

// Warning describes a value that could not be normalized. It is a data-quality
// signal, never an error.
type Warning struct {
	Field  string `json:"field"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

func (w *Warning) String() string {
	return fmt.Sprintf("%s: %s (%q)", w.Field, w.Reason, w.Value)
}

// ImageURL percent-encodes the path and query of an image URL, leaving the
// scheme and host untouched. Encoding is idempotent: the value is
// percent-decoded before re-encoding, so %20 never becomes %2520.
func ImageURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return s
	}

	prefix := ""
	rest := s
	if i := strings.Index(s, "://"); i >= 0 {
		j := strings.IndexByte(s[i+3:], '/')
		if j < 0 {
			// Scheme and host only, nothing to encode.
			return s
		}
		prefix = s[:i+3+j]
		rest = s[i+3+j:]
	}

	path, query, hasQuery := strings.Cut(rest, "?")
	out := prefix + encodeComponent(path, "/")
	if hasQuery {
		out += "?" + encodeComponent(query, "=&")
	}
	return out
}

// encodeComponent decodes any existing percent escapes, then re-encodes every
// byte outside the unreserved set and the given safe set.
func encodeComponent(s, safe string) string {
	const upperhex = "0123456789ABCDEF"

	decoded := percentDecode(s)
	var b strings.Builder
	b.Grow(len(decoded))
	for i := 0; i < len(decoded); i++ {
		c := decoded[i]
		if isUnreserved(c) || strings.IndexByte(safe, c) >= 0 {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0xF])
	}
	return b.String()
}

// percentDecode resolves valid %XX escapes and leaves stray percent signs
// alone, so malformed input survives the round trip.
func percentDecode(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			b.WriteByte(unhex(s[i+1])<<4 | unhex(s[i+2]))
			i += 2
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	}
	return false
}

func isHex(c byte) bool {
	switch {
	case '0' <= c && c <= '9', 'a' <= c && c <= 'f', 'A' <= c && c <= 'F':
		return true
	}
	return false
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

var weightPattern = regexp.MustCompile(`^([\d,]*\.?\d+)\s*(g|kg|kgs|lb|lbs|oz)?\.?\s*$`)

// Grams per recognized unit. Bare numbers are treated as kilograms, which is
// what the supplier feeds ship.
var gramsPerUnit = map[string]float64{
	"g":   1,
	"kg":  1000,
	"kgs": 1000,
	"lb":  453.59237,
	"lbs": 453.59237,
	"oz":  28.349523125,
	"":    1000,
}

// WeightGrams converts a weight value with an optional unit suffix
// (g, kg, lb, oz) to integral grams. Unparsable values pass through unchanged
// with a Warning.
func WeightGrams(raw string) (string, *Warning) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "0", nil
	}

	m := weightPattern.FindStringSubmatch(strings.ToLower(s))
	if m == nil {
		return raw, &Warning{
			Field:  "Variant Grams",
			Value:  raw,
			Reason: "unrecognized weight format",
		}
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return raw, &Warning{
			Field:  "Variant Grams",
			Value:  raw,
			Reason: "unparsable weight value",
		}
	}

	grams := value * gramsPerUnit[m[2]]
	return strconv.Itoa(int(math.Round(grams))), nil
}

// Title trims and truncates a title to MaxTitleLength runes, cutting at a
// word boundary when one falls in the second half of the limit. Truncated
// titles end in "...".
func Title(raw string) string {
	s := strings.TrimSpace(raw)
	if utf8.RuneCountInString(s) <= MaxTitleLength {
		return s
	}

	cut := string([]rune(s)[:MaxTitleLength-3])
	if i := strings.LastIndexByte(cut, ' '); i > len(cut)/2 {
		cut = strings.TrimRight(cut[:i], " ")
	}
	return cut + "..."
}

var digitsPattern = regexp.MustCompile(`\d+`)

// Quantity extracts an inventory quantity from free-text stock values.
// Stock phrases map to fixed quantities; otherwise the first number wins.
func Quantity(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	switch s {
	case "":
		return "0"
	case "IN STOCK", "AVAILABLE", "YES":
		return "999"
	case "OUT OF STOCK", "NO", "DISCONTINUED":
		return "0"
	}
	if m := digitsPattern.FindString(s); m != "" {
		return m
	}
	return "0"
}

// Cost parses a monetary value, tolerating currency symbols and thousands
// separators. The second return is false when the value does not parse.
func Cost(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
