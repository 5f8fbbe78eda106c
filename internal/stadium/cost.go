package stadium

import (
	"slices"
	"strings"
	"unicode"

	"github.com/mkarpinski/stadiums/internal/locale"
	"github.com/mkarpinski/stadiums/internal/logger"
	"github.com/mkarpinski/stadiums/internal/parse"
)

// Magnitude multipliers applied to qualified amounts.
const (
	million  = 1_000_000
	billion  = 1_000_000_000
	trillion = 1_000_000_000_000
)

// compoundSeparators join the components of a compound cost, e.g.
// "$10 million + $5 million" or a comma-joined list of phases.
var compoundSeparators = []string{" + ", ", "}

// ParseCost resolves a free-text monetary cell into a Cost, or nil when the
// text matches none of the known shapes. The vocabulary supplies the
// locale's qualifier spellings and approximation prefixes.
//
// Compound cells are split and summed; a component whose currency differs
// from the running sum's is dropped, not fatal. The first currency wins.
func ParseCost(text string, vocab locale.Vocabulary) *Cost {
	return newCostParser(text, vocab).parse()
}

type costParser struct {
	text   string
	tokens []string
	vocab  locale.Vocabulary
}

func newCostParser(text string, vocab locale.Vocabulary) *costParser {
	text = prepareCostText(text, vocab.Approximators)
	return &costParser{text: text, tokens: strings.Fields(text), vocab: vocab}
}

// prepareCostText strips a parenthesized aside, an " / " alternate value,
// and a leading approximation prefix.
func prepareCostText(text string, approximators []string) string {
	text, _, _ = strings.Cut(text, "(")
	text = strings.TrimSpace(text)
	text, _, _ = strings.Cut(text, " / ")
	text = strings.TrimSpace(text)
	approx, ok := parse.FirstWhere(approximators, func(a string) bool {
		return strings.HasPrefix(text, a)
	})
	if ok {
		text = strings.TrimPrefix(text, approx)
	}
	return text
}

func (p *costParser) parse() *Cost {
	for _, sep := range compoundSeparators {
		if strings.Contains(p.text, sep) {
			return p.parseCompound()
		}
	}

	switch n := len(p.tokens); {
	case n == 1:
		return p.parseSingleToken()
	case n == 2:
		return p.parseTwoTokens()
	case n == 3:
		return p.parseThreeTokens()
	case n > 3 && hasNoDigits(p.tokens[n-1]):
		return p.parseSpaceDelimitedAmount()
	}

	logger.Warn("unexpected cost string", logger.Fields{"text": p.text})
	return nil
}

// parseCompound splits on the compound separator and sums the components.
// A component with a mismatched currency is dropped.
func (p *costParser) parseCompound() *Cost {
	sep := compoundSeparators[1]
	if strings.Contains(p.text, compoundSeparators[0]) {
		sep = compoundSeparators[0]
	}

	var compound *Cost
	for _, part := range strings.Split(p.text, sep) {
		cost := ParseCost(part, p.vocab)
		if cost == nil {
			continue
		}
		if compound == nil {
			compound = cost
			continue
		}
		sum, err := compound.Add(*cost)
		if err != nil {
			continue
		}
		compound = &sum
	}
	return compound
}

// qualifiers returns every known qualifier spelling, longest-first within
// each magnitude so suffix matching does not stop at an abbreviation.
func (p *costParser) qualifiers() []string {
	all := make([]string, 0, len(p.vocab.Million)+len(p.vocab.Billion)+len(p.vocab.Trillion))
	all = append(all, p.vocab.Million...)
	all = append(all, p.vocab.Billion...)
	all = append(all, p.vocab.Trillion...)
	return all
}

// identifyQualifier finds the first token carrying a qualifier. With strict
// set, only whole-token matches count; otherwise a suffix match does.
func (p *costParser) identifyQualifier(tokens []string, strict bool) (int, string) {
	for i, token := range tokens {
		for _, q := range p.qualifiers() {
			if strict {
				if token == q {
					return i, q
				}
			} else if strings.HasSuffix(token, q) {
				return i, q
			}
		}
	}
	return -1, ""
}

// qualifiedAmount expands a numeric text by the qualifier's multiplier,
// truncating to an integer.
func (p *costParser) qualifiedAmount(amount, qualifier string) (int64, bool) {
	base, err := parse.Float(amount)
	if err != nil {
		return 0, false
	}
	switch {
	case slices.Contains(p.vocab.Million, qualifier):
		return int64(base * million), true
	case slices.Contains(p.vocab.Billion, qualifier):
		return int64(base * billion), true
	default:
		return int64(base * trillion), true
	}
}

// splitMerged separates a leading currency symbol from the numeric text by
// locating the first digit. Returns ok=false when no digit exists.
func splitMerged(text string) (currency, amount string, ok bool) {
	idx := strings.IndexFunc(text, unicode.IsDigit)
	if idx < 0 {
		return "", "", false
	}
	return text[:idx], text[idx:], true
}

func (p *costParser) parseSingleToken() *Cost {
	_, qualifier := p.identifyQualifier([]string{p.text}, false)
	text := p.text
	if qualifier != "" {
		text = text[:len(text)-len(qualifier)]
	}
	currency, amountStr, ok := splitMerged(text)
	if !ok {
		return nil
	}
	if qualifier != "" {
		amount, ok := p.qualifiedAmount(amountStr, qualifier)
		if !ok {
			return nil
		}
		return &Cost{Amount: amount, Currency: currency}
	}
	n, err := parse.Int(amountStr)
	if err != nil {
		return nil
	}
	return &Cost{Amount: int64(n), Currency: currency}
}

func (p *costParser) parseTwoTokensNoQualifier() *Cost {
	first, second := p.tokens[0], p.tokens[1]
	var currency, amountStr string
	switch {
	case hasNoDigits(first):
		currency, amountStr = first, second
	case hasNoDigits(second):
		amountStr, currency = first, second
	default:
		return nil
	}
	n, err := parse.Int(amountStr)
	if err != nil {
		return nil
	}
	return &Cost{Amount: int64(n), Currency: currency}
}

// parseTwoTokensOneMerged handles a whole-token qualifier next to a merged
// currency-amount token ("$10 million").
func (p *costParser) parseTwoTokensOneMerged(qualifierIdx int, qualifier string) *Cost {
	merged := p.tokens[0]
	if qualifierIdx == 0 {
		merged = p.tokens[1]
	}
	currency, amountStr, ok := splitMerged(merged)
	if !ok {
		return nil
	}
	amount, ok := p.qualifiedAmount(amountStr, qualifier)
	if !ok {
		return nil
	}
	return &Cost{Amount: amount, Currency: currency}
}

func (p *costParser) parseTwoTokens() *Cost {
	idx, found := p.identifyQualifier(p.tokens, false)
	if idx == -1 {
		return p.parseTwoTokensNoQualifier()
	}

	// The qualifier stands alone, so the other token merges currency and
	// amount.
	if p.tokens[0] == found || p.tokens[1] == found {
		return p.parseTwoTokensOneMerged(idx, found)
	}

	// The qualifier is suffixed onto the amount token; Float filtering
	// discards its letters.
	var amountStr, currency string
	if idx == 0 {
		amountStr, currency = p.tokens[0], p.tokens[1]
	} else {
		currency, amountStr = p.tokens[0], p.tokens[1]
	}
	amount, ok := p.qualifiedAmount(amountStr, found)
	if !ok {
		return nil
	}
	return &Cost{Amount: amount, Currency: currency}
}

// parseThreeTokens requires exactly one whole token to equal a qualifier;
// its position decides between "amount qualifier currency" and
// "currency amount qualifier".
func (p *costParser) parseThreeTokens() *Cost {
	idx, found := p.identifyQualifier(p.tokens, true)
	var amountStr, currency string
	switch idx {
	case 1:
		amountStr, currency = p.tokens[0], p.tokens[2]
	case 2:
		currency, amountStr = p.tokens[0], p.tokens[1]
	default:
		return nil
	}
	amount, ok := p.qualifiedAmount(amountStr, found)
	if !ok {
		return nil
	}
	return &Cost{Amount: amount, Currency: currency}
}

// parseSpaceDelimitedAmount treats all but the last token as one
// space-delimited amount ("12 000 000 zł") and the last as the currency.
func (p *costParser) parseSpaceDelimitedAmount() *Cost {
	currency := p.tokens[len(p.tokens)-1]
	amountStr := strings.Join(p.tokens[:len(p.tokens)-1], "")
	amount, err := parse.Float(amountStr)
	if err != nil {
		return nil
	}
	return &Cost{Amount: int64(amount), Currency: currency}
}

func hasNoDigits(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) < 0
}
