package locale

import "testing"

func TestResolve(t *testing.T) {
	en := English()
	tests := []struct {
		header string
		want   Field
	}{
		{"Cost", FieldCost},
		{"Koszt", FieldCost},
		{"Inauguration", FieldInauguration},
		{"Inauguaration", FieldInauguration},
		{"First match", FieldInauguration},
		{"Record attendance", FieldRecordAttendance},
		{"Floodlights", FieldIllumination},
		{"Design", FieldDesigner},
		{"Design time", FieldDesign},
		{"Owner", FieldInvestor},
	}
	for _, tt := range tests {
		got, ok := en.Resolve(tt.header)
		if !ok {
			t.Errorf("Resolve(%q) not found", tt.header)
			continue
		}
		if got != tt.want {
			t.Errorf("Resolve(%q) = %s, want %s", tt.header, got, tt.want)
		}
	}

	if _, ok := en.Resolve("Capacity of beer stands"); ok {
		t.Error("unknown header resolved")
	}
}

func TestResolvePolish(t *testing.T) {
	pl := Polish()
	tests := []struct {
		header string
		want   Field
	}{
		{"Adres", FieldAddress},
		{"Koszt", FieldCost},
		{"Pierwszy mecz", FieldInauguration},
		{"Długość toru", FieldTrackLength},
	}
	for _, tt := range tests {
		got, ok := pl.Resolve(tt.header)
		if !ok || got != tt.want {
			t.Errorf("Resolve(%q) = %s, %v, want %s", tt.header, got, ok, tt.want)
		}
	}
}

func TestForURL(t *testing.T) {
	if got := ForURL("http://stadiony.net/stadiony/pol"); got.Name != "pl" {
		t.Errorf("stadiony.net resolved to %s", got.Name)
	}
	if got := ForURL("http://stadiumdb.com/stadiums/eng"); got.Name != "en" {
		t.Errorf("stadiumdb.com resolved to %s", got.Name)
	}
}
