package parse

import (
	"errors"
	"testing"
	"time"
)

func TestInt(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    int
		wantErr bool
	}{
		{"plain", "12000", 12000, false},
		{"spaced thousands", "12 000", 12000, false},
		{"with currency suffix", "12 000 zł", 12000, false},
		{"embedded in prose", "approx. 42 seats", 42, false},
		{"no digits", "n/a", 0, true},
		{"empty", "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Int(tt.text)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Int(%q) expected error, got %d", tt.text, got)
				}
				var perr *Error
				if !errors.As(err, &perr) {
					t.Errorf("Int(%q) error is %T, want *parse.Error", tt.text, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Int(%q) unexpected error: %v", tt.text, err)
			}
			if got != tt.want {
				t.Errorf("Int(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestFloat(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    float64
		wantErr bool
	}{
		{"plain", "45", 45, false},
		{"decimal point", "45.5", 45.5, false},
		{"decimal comma", "45,5", 45.5, false},
		{"thousands comma with point", "1,234.5", 1234.5, false},
		{"multiple thousands commas", "1,234,567", 1234567, false},
		{"trailing period", "120.", 120, false},
		{"leading decimal point", ".5", 0.5, false},
		{"embedded in prose", "45.5 million", 45.5, false},
		{"no digits", "unknown", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Float(tt.text)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Float(%q) expected error, got %v", tt.text, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Float(%q) unexpected error: %v", tt.text, err)
			}
			if got != tt.want {
				t.Errorf("Float(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestDate(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	tests := []struct {
		name          string
		text          string
		monthInMiddle bool
		want          time.Time
		wantErr       bool
	}{
		{"day first dotted", "23.06.1955", true, day(1955, time.June, 23), false},
		{"month first slashed", "06/23/1955", false, day(1955, time.June, 23), false},
		{"year leading", "1955-06-23", true, day(1955, time.June, 23), false},
		{"month and year", "06.1955", true, day(1955, time.June, 1), false},
		{"year and month", "1955-06", true, day(1955, time.June, 1), false},
		{"year only", "1955", true, day(1955, time.January, 1), false},
		{"year with noise", "circa 1955", true, day(1955, time.January, 1), false},
		{"month out of range", "23.13.1955", true, time.Time{}, true},
		{"no year token", "23.06.55", true, time.Time{}, true},
		{"not a date", "n/a", true, time.Time{}, true},
		{"empty", "", true, time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Date(tt.text, tt.monthInMiddle)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Date(%q) expected error, got %v", tt.text, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Date(%q) unexpected error: %v", tt.text, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Date(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestCleanParenthesized(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Wembley Stadium (London)", "Wembley Stadium"},
		{"Wembley(old)", "Wembley"},
		{"no parens here", "no parens here"},
		{"two (a) asides (b)", "two asides"},
	}
	for _, tt := range tests {
		if got := CleanParenthesized(tt.text); got != tt.want {
			t.Errorf("CleanParenthesized(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestSplitParenthesized(t *testing.T) {
	main, detail := SplitParenthesized("1974 (upper tier)")
	if main != "1974" || detail != "upper tier" {
		t.Errorf("got (%q, %q), want (%q, %q)", main, detail, "1974", "upper tier")
	}
	main, detail = SplitParenthesized("1974")
	if main != "1974" || detail != "" {
		t.Errorf("got (%q, %q), want (%q, %q)", main, detail, "1974", "")
	}
}

func TestFirstWhere(t *testing.T) {
	got, ok := FirstWhere([]int{1, 3, 4, 6}, func(n int) bool { return n%2 == 0 })
	if !ok || got != 4 {
		t.Errorf("got (%d, %v), want (4, true)", got, ok)
	}
	_, ok = FirstWhere([]int{1, 3}, func(n int) bool { return n%2 == 0 })
	if ok {
		t.Error("expected no match")
	}
}
