package scraper

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"

	"github.com/mkarpinski/stadiums/internal/locale"
	"github.com/mkarpinski/stadiums/internal/logger"
	"github.com/mkarpinski/stadiums/internal/parse"
	"github.com/mkarpinski/stadiums/internal/stadium"
)

// assembler accumulates parsed fields for one detail page and produces the
// finished record. Every field-level parse failure is caught here, logged
// with the source URL, and leaves that field unset.
type assembler struct {
	basic stadium.BasicStadium
	loc   *locale.Locale
	diag  *Diagnostics

	subCapacities           []stadium.SubCapacity
	address                 string
	otherNames              []stadium.Nickname
	floodlights             *int
	recordAttendance        *int
	recordAttendanceDetails string
	cost                    *stadium.Cost
	design                  *stadium.Span
	construction            *stadium.Span
	inauguration            *stadium.Date
	inaugurationDetails     string
	renovations             []stadium.Span
	designer                string
	structuralEngineer      string
	contractor              string
	investor                string
	note                    string
	trackLength             *int
}

func newAssembler(basic stadium.BasicStadium, loc *locale.Locale, diag *Diagnostics) *assembler {
	return &assembler{basic: basic, loc: loc, diag: diag}
}

// assemble walks the details table rows, dispatches each through the header
// alias sets, and builds the record. The record is immutable once returned.
func (a *assembler) assemble(doc *goquery.Document, table *goquery.Selection) *stadium.Stadium {
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		header := strings.TrimSpace(row.Find("th").Text())
		text := normalize(strings.TrimSpace(row.Find("td").First().Text()))
		a.dispatch(header, text, row)
	})

	return &stadium.Stadium{
		BasicStadium:            a.basic,
		CapacityDetails:         a.subCapacities,
		Address:                 a.address,
		OtherNames:              a.otherNames,
		FloodlightsLux:          a.floodlights,
		RecordAttendance:        a.recordAttendance,
		RecordAttendanceDetails: a.recordAttendanceDetails,
		Cost:                    a.cost,
		Design:                  a.design,
		Construction:            a.construction,
		Inauguration:            a.inauguration,
		InaugurationDetails:     a.inaugurationDetails,
		Renovations:             a.renovations,
		Designer:                a.designer,
		StructuralEngineer:      a.structuralEngineer,
		Contractor:              a.contractor,
		Investor:                a.investor,
		Note:                    a.note,
		TrackLengthMetres:       a.trackLength,
		Description:             a.parseDescription(doc),
	}
}

// dispatch routes one label/value row to its field parser. An unlabeled row
// is a sub-capacity continuation of the previous section; an unknown label
// goes to diagnostics, never errors.
func (a *assembler) dispatch(header, text string, row *goquery.Selection) {
	if header == "" {
		if sub := a.parseSubCapacity(text, row); sub != nil {
			a.subCapacities = append(a.subCapacities, *sub)
		} else if text != "" {
			a.warnField("sub-capacity", logger.Fields{"text": text})
		}
		return
	}

	field, ok := a.loc.Resolve(header)
	if !ok {
		a.diag.Record(header, a.basic.URL)
		return
	}

	switch field {
	case locale.FieldAddress:
		a.address = strings.TrimSuffix(text, ".")
	case locale.FieldOtherNames:
		a.otherNames = stadium.ParseNicknames(text)
		if len(a.otherNames) == 0 {
			a.warnField("other names", nil)
		}
	case locale.FieldIllumination:
		a.floodlights = parseIllumination(text)
		if a.floodlights == nil {
			a.warnField("illumination", nil)
		}
	case locale.FieldRecordAttendance:
		a.recordAttendance, a.recordAttendanceDetails = parseRecordAttendance(text)
		if a.recordAttendance == nil {
			a.warnField("record attendance", nil)
		}
	case locale.FieldCost:
		// Duplicate rows happen; the first successfully parsed wins.
		if a.cost == nil {
			a.cost = stadium.ParseCost(text, a.loc.Vocab)
			if a.cost == nil {
				a.warnField("cost", nil)
			}
		}
	case locale.FieldDesign:
		a.design = stadium.ParseSpan(trimMultiples(text))
		if a.design == nil {
			a.warnField("design", nil)
		}
	case locale.FieldConstruction:
		if a.construction == nil {
			a.construction = stadium.ParseSpan(trimMultiples(text))
			if a.construction == nil {
				a.warnField("construction", nil)
			}
		}
	case locale.FieldInauguration:
		if a.inauguration == nil {
			a.inauguration, a.inaugurationDetails = parseInauguration(text)
			if a.inauguration == nil {
				a.warnField("inauguration", nil)
			}
		}
	case locale.FieldRenovations:
		a.renovations = stadium.ParseRenovations(text)
		if len(a.renovations) == 0 {
			a.warnField("renovations", nil)
		}
	case locale.FieldDesigner:
		designer, design := parseDesigner(text)
		if designer == "" {
			a.warnField("designer", nil)
			return
		}
		a.designer = designer
		if design != nil && a.design == nil {
			a.design = design
		}
	case locale.FieldStructuralEngineer:
		a.structuralEngineer = strings.TrimSuffix(text, ".")
	case locale.FieldContractor:
		a.contractor = strings.TrimSuffix(parse.CleanParenthesized(text), ".")
	case locale.FieldInvestor:
		a.investor = strings.TrimSuffix(text, ".")
	case locale.FieldNote:
		a.appendNote(text)
	case locale.FieldTrackLength:
		if n, err := parse.Int(text); err == nil {
			a.trackLength = &n
		} else {
			a.warnField("track length", nil)
		}
	}
}

func (a *assembler) warnField(field string, fields logger.Fields) {
	if fields == nil {
		fields = logger.Fields{}
	}
	fields["url"] = a.basic.URL
	logger.Warn("unable to parse "+field, fields)
}

// trimMultiples keeps only the first of a comma-joined list of values.
func trimMultiples(text string) string {
	text, _, _ = strings.Cut(text, ", ")
	return text
}

// parseIllumination reads a floodlight power cell; a literal "none" is a
// known zero, not a failure.
func parseIllumination(text string) *int {
	if text == "none" {
		zero := 0
		return &zero
	}
	n, err := parse.Int(text)
	if err != nil {
		return nil
	}
	return &n
}

// parseRecordAttendance reads "NUMBER (DETAIL)" cells; the detail aside is
// optional.
func parseRecordAttendance(text string) (*int, string) {
	main, detail := text, ""
	if strings.Contains(text, "(") {
		main, detail = parse.SplitParenthesized(text)
	}
	n, err := parse.Int(main)
	if err != nil {
		return nil, ""
	}
	return &n, strings.TrimSuffix(detail, ".")
}

// multiValueSeparators join alternate values within one cell.
var multiValueSeparators = []string{", ", " / "}

// parseInauguration resolves the messiest cell on these pages: a date with
// an optional parenthesized aside, possibly listing several alternates of
// which only the first counts, with the date on either side of the aside.
func parseInauguration(text string) (*stadium.Date, string) {
	text = strings.TrimSpace(text)

	if !strings.Contains(text, ")") {
		if sep, ok := parse.FirstWhere(multiValueSeparators, func(s string) bool {
			return strings.Contains(text, s)
		}); ok {
			text, _, _ = strings.Cut(text, sep)
			text = strings.TrimSpace(text)
		}
		t, err := parse.Date(text, true)
		if err != nil {
			return nil, ""
		}
		d := stadium.DateOf(t)
		return &d, ""
	}

	// Keep only the first parenthesized group.
	text, _, _ = strings.Cut(text, ")")
	text += ")"

	// An alternate-value separator before the parenthesis means the whole
	// aside belongs to a later alternate; keep the bare first value.
	if sep, ok := parse.FirstWhere(multiValueSeparators, func(s string) bool {
		return strings.Contains(text, s)
	}); ok {
		if strings.Index(text, sep) < strings.Index(text, "(") {
			first, _, _ := strings.Cut(text, sep)
			t, err := parse.Date(strings.TrimSpace(first), true)
			if err != nil {
				return nil, ""
			}
			d := stadium.DateOf(t)
			return &d, ""
		}
	}

	// Usual "MAIN (DETAIL)"; the date sits on whichever side starts with a
	// digit.
	main, detail := parse.SplitParenthesized(text)
	dateText, detailText := main, detail
	if !startsWithDigit(text) {
		dateText, detailText = detail, main
	}
	t, err := parse.Date(dateText, true)
	if err != nil {
		return nil, ""
	}
	d := stadium.DateOf(t)
	return &d, strings.TrimSuffix(detailText, ".")
}

func startsWithDigit(s string) bool {
	for _, r := range s {
		return unicode.IsDigit(r)
	}
	return false
}

// parseDesigner reads a designer cell, which may carry the design period as
// a parenthesized aside. Multi-name cells just get their asides stripped.
func parseDesigner(text string) (string, *stadium.Span) {
	if strings.Contains(text, ", ") || strings.Contains(text, " / ") {
		return strings.TrimSuffix(parse.CleanParenthesized(text), "."), nil
	}
	main, detail := text, ""
	if strings.Contains(text, "(") {
		main, detail = parse.SplitParenthesized(text)
	}
	var design *stadium.Span
	if detail != "" {
		design = stadium.ParseSpan(detail)
	}
	return strings.TrimSuffix(main, "."), design
}

// appendNote accumulates note rows into one running sentence with a
// lower-cased join.
func (a *assembler) appendNote(text string) {
	if a.note != "" && text != "" {
		runes := []rune(text)
		a.note += ", " + strings.ToLower(string(runes[0])) + string(runes[1:])
	} else if text != "" {
		a.note = text
	}
	a.note = strings.TrimSuffix(a.note, ".")
}

// parseSubCapacity reads an unlabeled continuation row as a partial seating
// count: "AMOUNT (NOTE)" with an optional designation span and "A + B"
// additive notation.
func (a *assembler) parseSubCapacity(text string, row *goquery.Selection) *stadium.SubCapacity {
	designation := ""
	if span := row.Find("span").First(); span.Length() > 0 {
		designation = strings.TrimSpace(span.Text())
		designation = strings.TrimSuffix(strings.TrimPrefix(designation, "("), ")")
	}

	// A doubled aside folds into one: "10 000 (north (lower))" style.
	if strings.Count(text, "(") == 2 {
		parts := strings.SplitN(text, "(", 3)
		text = strings.TrimSpace(parts[0]) + " (" + strings.TrimSpace(parts[1])
	}

	main, note := text, ""
	if strings.Contains(text, "(") {
		main, note = parse.SplitParenthesized(text)
	}
	capacity, err := parseSubCapacityAmount(main)
	if err != nil {
		return nil
	}
	if note != "" && designation != "" && strings.Contains(designation, note) {
		note = ""
	}
	return &stadium.SubCapacity{Capacity: capacity, Designation: designation, Note: note}
}

// parseSubCapacityAmount handles the "A + B" additive capacity notation.
func parseSubCapacityAmount(text string) (int, error) {
	if !strings.Contains(text, "+") {
		return parse.Int(text)
	}
	total := 0
	for _, token := range strings.Split(text, "+") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		n, err := parse.Int(token)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

// parseDescription pulls the free-text article below the details table.
func (a *assembler) parseDescription(doc *goquery.Document) string {
	article := doc.Find("article.stadium-description").First()
	if article.Length() == 0 {
		return ""
	}
	var lines []string
	if h2 := article.Find("h2").First(); h2.Length() > 0 {
		lines = append(lines, h2.Text())
	}
	article.Find("p").Each(func(_ int, p *goquery.Selection) {
		lines = append(lines, p.Text())
	})
	if len(lines) == 0 {
		return ""
	}
	return normalize(strings.Join(lines, "\n"))
}
