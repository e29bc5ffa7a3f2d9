// Package resolver maps a free-text company name to an ordered list of
// candidate ticker symbols. Resolution is pure string work: a static
// name→symbol table first, then heuristic variants. It never fails — the
// uppercased input is always a candidate of last resort.
package resolver

import "strings"

// Market hints which providers a candidate symbol is most likely to match.
type Market string

const (
	MarketGlobal  Market = "global"
	MarketIndia   Market = "india"
	MarketUnknown Market = "unknown"
)

// Candidate is one symbol to try against a provider. Order matters: the
// first candidate is tried first.
type Candidate struct {
	Symbol string
	Market Market
}

// Resolve returns candidate symbols for a company name, best first:
// exact table hit (with .NS/.BO variants for Indian listings), then
// heuristic transformations of the raw input, then the raw uppercase
// fallback. Always returns at least one candidate.
func Resolve(name string) []Candidate {
	raw := strings.TrimSpace(name)
	raw = strings.TrimPrefix(raw, "$")
	if raw == "" {
		return nil
	}

	var out []Candidate
	seen := make(map[string]bool)
	add := func(symbol string, market Market) {
		symbol = strings.TrimSpace(symbol)
		if symbol == "" || seen[symbol] {
			return
		}
		seen[symbol] = true
		out = append(out, Candidate{Symbol: symbol, Market: market})
	}

	key := strings.ToLower(raw)

	// 1. Exact table hit — highest priority.
	if m, ok := symbolTable[key]; ok {
		add(m.Symbol, m.Market)
		if m.Market == MarketIndia {
			// Yahoo-style exchange-qualified variants for NSE/BSE listings.
			add(m.Symbol+".NS", MarketIndia)
			add(m.Symbol+".BO", MarketIndia)
		}
	}

	// 2. Suffix-stripped table hit ("tata motors limited" → "tata motors").
	if stripped := stripSuffix(key); stripped != key {
		if m, ok := symbolTable[stripped]; ok {
			add(m.Symbol, m.Market)
			if m.Market == MarketIndia {
				add(m.Symbol+".NS", MarketIndia)
			}
		}
	}

	// 3. Heuristic variants of the raw input.
	upper := strings.ToUpper(raw)
	add(strings.ReplaceAll(upper, " ", ""), MarketUnknown)
	if strings.Contains(upper, " ") {
		add(strings.ReplaceAll(upper, " ", "."), MarketUnknown)
		add(strings.ReplaceAll(upper, " ", "-"), MarketUnknown)
	}
	if stripped := stripSuffix(key); stripped != key {
		add(strings.ToUpper(stripped), MarketUnknown)
	}
	compact := strings.ReplaceAll(upper, " ", "")
	if len(compact) > 4 {
		add(compact[:4], MarketUnknown)
	}
	if len(compact) > 3 {
		add(compact[:3], MarketUnknown)
	}

	// 4. Raw uppercase fallback. Usually already present via the
	// space-stripped variant; add guards the single-word case.
	add(upper, MarketUnknown)

	return out
}

// ForMarket filters candidates to those plausible for the given market,
// keeping order. Unknown-market candidates are kept for any market; an
// empty filter result falls back to the full list.
func ForMarket(candidates []Candidate, market Market) []Candidate {
	var out []Candidate
	for _, c := range candidates {
		if c.Market == market || c.Market == MarketUnknown {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return candidates
	}
	return out
}

// stripSuffix removes one trailing corporate suffix token, if present.
func stripSuffix(name string) string {
	for _, suffix := range corporateSuffixes {
		if strings.HasSuffix(name, " "+suffix) {
			return strings.TrimSpace(strings.TrimSuffix(name, " "+suffix))
		}
	}
	return name
}
