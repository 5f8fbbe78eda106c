package stadium

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/mkarpinski/stadiums/internal/logger"
	"github.com/mkarpinski/stadiums/internal/parse"
)

const dateLayout = "2006-01-02"

// Date is a calendar date with day precision, serialized as an ISO-8601
// string. Year-only and month-year source values are normalized to the
// first day.
type Date struct {
	time.Time
}

// NewDate builds a Date at UTC midnight.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(dateLayout))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// Span is either a single date (End unset) or a start-end duration. A single
// date marshals as a bare ISO string, a duration as {"start","end"}.
type Span struct {
	Start Date
	End   Date
}

// SingleDate wraps one date as a Span.
func SingleDate(d Date) Span {
	return Span{Start: d}
}

// IsRange reports whether the span covers a start-end duration.
func (s Span) IsRange() bool {
	return !s.End.IsZero()
}

// Latest returns the span's most recent date: the end of a duration, or the
// date itself.
func (s Span) Latest() Date {
	if s.IsRange() {
		return s.End
	}
	return s.Start
}

func (s Span) MarshalJSON() ([]byte, error) {
	if !s.IsRange() {
		return s.Start.MarshalJSON()
	}
	return json.Marshal(struct {
		Start Date `json:"start"`
		End   Date `json:"end"`
	}{s.Start, s.End})
}

func (s *Span) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var d Date
		if err := d.UnmarshalJSON(data); err != nil {
			return err
		}
		*s = Span{Start: d}
		return nil
	}
	var aux struct {
		Start Date `json:"start"`
		End   Date `json:"end"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*s = Span{Start: aux.Start, End: aux.End}
	return nil
}

// spanSeparators are the recognized range glyphs; en-dash and minus variants
// are normalized to the plain hyphen before parsing.
var spanSeparators = []string{"-", "/"}

// ParseSpan resolves a free-text temporal cell into a single date or a
// start-end duration, or nil when the text encodes neither. Recognized
// shapes include plain dates in any of the extractor's formats, compact
// year ranges ("1990-95" and "1990-1995"), and two full dates around a
// separator glyph. A slash-separated text of total length 7 or 10 is a
// plain slash-formatted date, not a range.
func ParseSpan(text string) *Span {
	sep, ok := parse.FirstWhere(spanSeparators, func(s string) bool {
		return strings.Contains(text, s)
	})
	if !ok || (sep == "/" && (len(text) == 7 || len(text) == 10)) {
		t, err := parse.Date(text, true)
		if err != nil {
			return nil
		}
		return &Span{Start: DateOf(t)}
	}

	parts := strings.Split(text, sep)
	if len(parts) != 2 {
		return nil
	}
	first, second := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])

	// Years-only range; a 2-digit end year borrows the start's century.
	if len(first) == 4 && (len(second) == 2 || len(second) == 4) {
		if len(second) == 2 {
			second = first[:2] + second
		}
		start, err1 := strconv.Atoi(first)
		end, err2 := strconv.Atoi(second)
		if err1 != nil || err2 != nil {
			return nil
		}
		return newRange(NewDate(start, time.January, 1), NewDate(end, time.January, 1))
	}

	startT, err := parse.Date(first, true)
	if err != nil {
		return nil
	}
	endT, err := parse.Date(second, true)
	if err != nil {
		return nil
	}
	return newRange(DateOf(startT), DateOf(endT))
}

// newRange builds a duration span. An inverted range is kept as parsed but
// flagged, since source pages occasionally swap the bounds.
func newRange(start, end Date) *Span {
	if end.Before(start.Time) {
		logger.Warn("duration ends before it starts", logger.Fields{
			"start": start.Format(dateLayout),
			"end":   end.Format(dateLayout),
		})
	}
	return &Span{Start: start, End: end}
}

// ParseRenovations splits a comma-delimited list of renovation entries,
// stripping parenthesized asides first. Entries that fail to parse are
// dropped; partial results are kept.
func ParseRenovations(text string) []Span {
	text = strings.TrimSuffix(text, ".")
	cleaned := parse.CleanParenthesized(text)
	var spans []Span
	for _, token := range strings.Split(cleaned, ",") {
		if s := ParseSpan(strings.TrimSpace(token)); s != nil {
			spans = append(spans, *s)
		}
	}
	return spans
}
