package stadium

import (
	"testing"

	"github.com/mkarpinski/stadiums/internal/locale"
)

func TestParseCost(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		vocab locale.Vocabulary
		want  *Cost
	}{
		{
			name:  "three tokens",
			text:  "€ 45 million",
			vocab: locale.English().Vocab,
			want:  &Cost{Amount: 45_000_000, Currency: "€"},
		},
		{
			name:  "currency leading",
			text:  "PLN 45 million",
			vocab: locale.English().Vocab,
			want:  &Cost{Amount: 45_000_000, Currency: "PLN"},
		},
		{
			name:  "merged currency and amount",
			text:  "$45 million",
			vocab: locale.English().Vocab,
			want:  &Cost{Amount: 45_000_000, Currency: "$"},
		},
		{
			name:  "single token with suffixed qualifier",
			text:  "£120m",
			vocab: locale.English().Vocab,
			want:  &Cost{Amount: 120_000_000, Currency: "£"},
		},
		{
			name:  "decimal comma amount",
			text:  "45,5 mln zł",
			vocab: locale.Polish().Vocab,
			want:  &Cost{Amount: 45_500_000, Currency: "zł"},
		},
		{
			name:  "leading-decimal amount",
			text:  ".5 mln zł",
			vocab: locale.Polish().Vocab,
			want:  &Cost{Amount: 500_000, Currency: "zł"},
		},
		{
			name:  "billion qualifier",
			text:  "€ 1.2 billion",
			vocab: locale.English().Vocab,
			want:  &Cost{Amount: 1_200_000_000, Currency: "€"},
		},
		{
			name:  "approximation prefix",
			text:  "approx. €45 million",
			vocab: locale.English().Vocab,
			want:  &Cost{Amount: 45_000_000, Currency: "€"},
		},
		{
			name:  "parenthesized aside cut",
			text:  "$45 million (renovation)",
			vocab: locale.English().Vocab,
			want:  &Cost{Amount: 45_000_000, Currency: "$"},
		},
		{
			name:  "alternate value after slash",
			text:  "€45 million / $50 million",
			vocab: locale.English().Vocab,
			want:  &Cost{Amount: 45_000_000, Currency: "€"},
		},
		{
			name:  "space-delimited amount",
			text:  "12 000 000 zł",
			vocab: locale.Polish().Vocab,
			want:  &Cost{Amount: 12_000_000, Currency: "zł"},
		},
		{
			name:  "two tokens no qualifier",
			text:  "12000000 zł",
			vocab: locale.Polish().Vocab,
			want:  &Cost{Amount: 12_000_000, Currency: "zł"},
		},
		{
			name:  "compound same currency",
			text:  "$10 million + $5 million",
			vocab: locale.English().Vocab,
			want:  &Cost{Amount: 15_000_000, Currency: "$"},
		},
		{
			name:  "compound mismatched currency drops term",
			text:  "$10 million + €5 million",
			vocab: locale.English().Vocab,
			want:  &Cost{Amount: 10_000_000, Currency: "$"},
		},
		{
			name:  "comma-joined phases",
			text:  "€10 million, €5 million",
			vocab: locale.English().Vocab,
			want:  &Cost{Amount: 15_000_000, Currency: "€"},
		},
		{
			name:  "unparseable",
			text:  "unknown",
			vocab: locale.English().Vocab,
			want:  nil,
		},
		{
			name:  "too many tokens with trailing digits",
			text:  "about 45 or 50 million 2",
			vocab: locale.English().Vocab,
			want:  nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCost(tt.text, tt.vocab)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("ParseCost(%q) = %+v, want nil", tt.text, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("ParseCost(%q) = nil, want %+v", tt.text, tt.want)
			}
			if *got != *tt.want {
				t.Errorf("ParseCost(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestCostAdd(t *testing.T) {
	a := Cost{Amount: 10, Currency: "€"}
	b := Cost{Amount: 5, Currency: "€"}
	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if sum.Amount != 15 || sum.Currency != "€" {
		t.Errorf("Add = %+v, want {15 €}", sum)
	}

	c := Cost{Amount: 5, Currency: "$"}
	if _, err := a.Add(c); err == nil {
		t.Error("expected currency mismatch error")
	}
}
