// Package locale carries the per-source vocabularies the parsers depend on:
// magnitude qualifier spellings, approximation prefixes, and the sets of
// header spelling variants observed in the wild on each site. Dispatch is
// data-driven; adding a newly-observed misspelling means extending a table,
// not touching control flow.
package locale

import "strings"

// Field names a semantic detail-table field a header row can resolve to.
type Field string

const (
	FieldAddress            Field = "address"
	FieldOtherNames         Field = "other_names"
	FieldIllumination       Field = "illumination"
	FieldRecordAttendance   Field = "record_attendance"
	FieldCost               Field = "cost"
	FieldDesign             Field = "design"
	FieldConstruction       Field = "construction"
	FieldInauguration       Field = "inauguration"
	FieldRenovations        Field = "renovations"
	FieldDesigner           Field = "designer"
	FieldStructuralEngineer Field = "structural_engineer"
	FieldContractor         Field = "contractor"
	FieldInvestor           Field = "investor"
	FieldNote               Field = "note"
	FieldTrackLength        Field = "track_length"
)

// Vocabulary holds the cost-parser word sets for one locale. Qualifier
// matching is order-sensitive: earlier entries win, so longer spellings
// come before their one-letter abbreviations.
type Vocabulary struct {
	Million       []string
	Billion       []string
	Trillion      []string
	Approximators []string
}

// Locale bundles everything locale-specific a scraper needs.
type Locale struct {
	Name    string
	Vocab   Vocabulary
	Headers map[Field][]string

	byHeader map[string]Field
}

// Resolve maps a header label to its semantic field by set membership.
func (l *Locale) Resolve(header string) (Field, bool) {
	if l.byHeader == nil {
		l.byHeader = make(map[string]Field)
		for field, aliases := range l.Headers {
			for _, alias := range aliases {
				l.byHeader[alias] = field
			}
		}
	}
	field, ok := l.byHeader[header]
	return field, ok
}

// English is the vocabulary for stadiumdb.com pages. The alias sets
// accumulate every misspelling seen on the site so far.
func English() *Locale {
	return &Locale{
		Name: "en",
		Vocab: Vocabulary{
			Million:       []string{"million", "mln", "M", "m", "milion", "Million", "millones"},
			Billion:       []string{"billion", "bln", "B", "b", "N", "miliard", "mld"},
			Trillion:      []string{"trillion"},
			Approximators: []string{"approx. ", "app. ", "ok. "},
		},
		Headers: map[Field][]string{
			FieldAddress:    {"Address", "Addres", "Adfress"},
			FieldOtherNames: {"Nicknames", "Former name", "Other name", "Other names"},
			FieldIllumination: {
				"Floodlights",
			},
			FieldRecordAttendance: {
				"Record attendance", "Record Attendance", "Recod attendance",
				"Record attendance (MLS)", "Record attendance (football)", "Record attendence",
				"Record attnedance", "Record audience", "Rekord frekwencji", "Rercord attendance",
				"Attendance record",
			},
			FieldCost:   {"Cost", "cost", "Koszt", "Kost", "Renovation Cost", "Renovation cost"},
			FieldDesign: {"Design time", "Date of project", "Project date"},
			FieldConstruction: {
				"Construction", "Concstruction", "Construction time", "Costruction", "Czas budowy",
			},
			FieldInauguration: {
				"Inauguration", "Ianuguration", "Iauguration", "Inauguaration", "Inauguartion",
				"Inauguation", "Inauguracja", "Inauguration (club establishment)", "Inaugurtion",
				"Inuguration", "First match", "First event", "First game", "Opening game",
			},
			FieldRenovations: {"Renovations", "Renovation", "Renovatons"},
			FieldDesigner: {
				"Design", "Deisgn", "Architect", "Designer", "Designs", "Project", "Projekt", "project",
			},
			FieldStructuralEngineer: {
				"Structural Engineer", "Structural engineer", "Engineer", "Roof structure",
			},
			FieldContractor: {"Contractor", "Contracor", "Constractor"},
			FieldInvestor:   {"Client", "Investors", "Operator", "Owner", "Ownership", "ownership"},
			FieldNote: {
				"Hints", "Note", "Notes", "Notice", "Notices", "Other", "Others", "Within the project",
				"Dentro del proyecto",
			},
			FieldTrackLength: {},
		},
	}
}

// Polish is the vocabulary for stadiony.net pages.
func Polish() *Locale {
	return &Locale{
		Name: "pl",
		Vocab: Vocabulary{
			Million:       []string{"milion", "mln", "million", "M", "m"},
			Billion:       []string{"miliard", "mld", "billion", "bln", "B", "b"},
			Trillion:      []string{"bilion", "trillion"},
			Approximators: []string{"ok. ", "approx. ", "app. "},
		},
		Headers: map[Field][]string{
			FieldAddress:            {"Adres"},
			FieldOtherNames:         {"Inne nazwy", "Nazwy potoczne"},
			FieldIllumination:       {"Moc oświetlenia", "Oświetlenie"},
			FieldRecordAttendance:   {"Rekord frekwencji"},
			FieldCost:               {"Koszt"},
			FieldDesign:             {"Data projektu"},
			FieldConstruction:       {"Budowa", "Czas budowy", "Czas budowa", "Rok budowy"},
			FieldInauguration:       {"Inauguracja", "Inauguration", "Pierwszy mecz"},
			FieldRenovations:        {"Renowacja", "Renowacje"},
			FieldDesigner:           {"Projekt"},
			FieldStructuralEngineer: {},
			FieldContractor:         {"Wykonawca"},
			FieldInvestor:           {"Właściciel"},
			FieldNote:               {"Inne", "Uwagi", "W ramach projektu"},
			FieldTrackLength:        {"Długość toru"},
		},
	}
}

// ForURL picks the locale matching a stadium page URL.
func ForURL(url string) *Locale {
	if strings.Contains(url, "stadiony.net") {
		return Polish()
	}
	return English()
}
