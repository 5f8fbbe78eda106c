package scraper

// Diagnostics accumulates detail-table headers that no alias set recognizes,
// keyed by header label with the source URLs they were seen on. It surfaces
// "this site has a field we don't recognize yet" for maintenance; an unknown
// header is never an error. The accumulator is threaded through a run
// explicitly so the parsing core stays free of global state.
type Diagnostics struct {
	unknown map[string][]string
}

// NewDiagnostics creates an empty accumulator.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{unknown: make(map[string][]string)}
}

// Record notes one unrecognized header and the page it appeared on.
func (d *Diagnostics) Record(header, url string) {
	d.unknown[header] = append(d.unknown[header], url)
}

// Empty reports whether anything was recorded.
func (d *Diagnostics) Empty() bool {
	return len(d.unknown) == 0
}

// Unknown returns a copy of the accumulated header-to-URLs multimap.
func (d *Diagnostics) Unknown() map[string][]string {
	out := make(map[string][]string, len(d.unknown))
	for header, urls := range d.unknown {
		out[header] = append([]string(nil), urls...)
	}
	return out
}
