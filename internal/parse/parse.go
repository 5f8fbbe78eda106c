// Package parse provides primitive extractors that pull typed values out of
// noisy free-text table cells: integers, floats, and calendar dates in a
// handful of hand-authored formats. All extractors fail with *parse.Error,
// which callers are expected to catch at the field level rather than let
// abort a whole record.
package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Error reports that a piece of text did not meet a parser's assumptions.
type Error struct {
	Text string
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %q", e.Msg, e.Text)
}

func newError(text, msg string) *Error {
	return &Error{Text: text, Msg: msg}
}

// Int extracts an integer from text by stripping every non-digit character
// and parsing the remaining digit run. "12 000 zł" yields 12000.
func Int(text string) (int, error) {
	var b strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, newError(text, "no digits in text")
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0, newError(text, "digit run too long")
	}
	return n, nil
}

// Float extracts a floating point number from text. Digits, commas and
// periods are kept, everything else is dropped. A single comma with no
// period is a decimal comma ("45,5" -> 45.5); otherwise commas are
// thousands separators ("1,234.5" -> 1234.5).
func Float(text string) (float64, error) {
	var b strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' {
			b.WriteRune(r)
		}
	}
	num := b.String()
	if num == "" {
		return 0, newError(text, "no digits or decimal point in text")
	}
	commas := strings.Count(num, ",")
	switch {
	case commas == 1 && !strings.Contains(num, "."):
		num = strings.ReplaceAll(num, ",", ".")
	case commas > 0:
		num = strings.ReplaceAll(num, ",", "")
	}
	// Only a trailing sentence period is noise; a leading period is a
	// decimal point (".5").
	num = strings.TrimRight(num, ".")
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, newError(text, "not a number")
	}
	return f, nil
}

// dateSeparators in detection order. The hyphen subsumes the en-dash and
// minus glyphs, which callers normalize away beforehand.
var dateSeparators = []string{"-", ".", "/"}

// Date extracts a calendar date from text. The separator glyph is detected
// first, then all non-digit, non-separator characters are stripped and the
// remainder split. Supported shapes:
//
//	"1955"        -> 1955-01-01 (year only)
//	"06.1955"     -> 1955-06-01 (the 4-digit token is the year, day = 1)
//	"23.06.1955"  -> 1955-06-23 (the 4-digit token is the year, first or last)
//
// With three tokens, monthInMiddle treats the middle token as the month,
// which covers both "23.06.1955" and "1955.06.23". Passing false reads the
// middle token as the day instead.
func Date(text string, monthInMiddle bool) (time.Time, error) {
	var sep string
	for _, s := range dateSeparators {
		if strings.Contains(text, s) {
			sep = s
			break
		}
	}

	var b strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || (sep != "" && string(r) == sep) {
			b.WriteRune(r)
		}
	}
	datestr := b.String()
	if datestr == "" {
		return time.Time{}, newError(text, "not a date text")
	}

	var tokens []string
	if len(datestr) == 4 {
		tokens = []string{datestr}
	} else {
		if sep == "" {
			return time.Time{}, newError(text, "not a date text")
		}
		tokens = strings.Split(datestr, sep)
	}

	var year, month, day string
	switch len(tokens) {
	case 3:
		first, second, third := tokens[0], tokens[1], tokens[2]
		switch {
		case len(first) == 4:
			year, month, day = first, second, third
		case len(third) == 4:
			year, month, day = third, second, first
		default:
			return time.Time{}, newError(text, "not a date text")
		}
		if !monthInMiddle {
			month, day = day, month
		}
	case 2:
		day = "1"
		first, second := tokens[0], tokens[1]
		switch {
		case len(first) == 4:
			year, month = first, second
		case len(second) == 4:
			year, month = second, first
		default:
			return time.Time{}, newError(text, "not a date text")
		}
	case 1:
		year, month, day = tokens[0], "1", "1"
	default:
		return time.Time{}, newError(text, "not a date text")
	}

	y, err := strconv.Atoi(year)
	if err != nil {
		return time.Time{}, newError(text, "not a date text")
	}
	m, err := strconv.Atoi(month)
	if err != nil {
		return time.Time{}, newError(text, "not a date text")
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return time.Time{}, newError(text, "not a date text")
	}
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, newError(text, "not a date text")
	}
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC), nil
}

var (
	spacedParens = regexp.MustCompile(`\s\(.*?\)`)
	bareParens   = regexp.MustCompile(`\(.*?\)`)
)

// CleanParenthesized removes any parenthesized asides from text, including
// the space preceding them.
func CleanParenthesized(text string) string {
	if strings.Contains(text, " (") {
		text = spacedParens.ReplaceAllString(text, "")
	}
	if strings.Contains(text, "(") {
		text = bareParens.ReplaceAllString(text, "")
	}
	return text
}

// SplitParenthesized splits a "MAIN (DETAIL)" pattern into its two sides,
// trimmed. The detail is empty when there is no opening parenthesis.
func SplitParenthesized(text string) (main, detail string) {
	main, detail, _ = strings.Cut(text, "(")
	detail = strings.TrimSuffix(detail, ")")
	return strings.TrimSpace(main), strings.TrimSpace(detail)
}

// FirstWhere returns the first item satisfying the predicate, or the zero
// value and false.
func FirstWhere[T any](items []T, pred func(T) bool) (T, bool) {
	for _, item := range items {
		if pred(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}
