package provider

// Validate is the validity gate: it decides whether a Result carries a
// minimal viable signal or is a placeholder for a nonexistent symbol.
//
// For company payloads the rule is: no identifying name/symbol echo, or
// principal numeric indicator (price, market cap) both zero/absent, means
// invalid. Providers return syntactically well-formed but empty documents
// for unknown symbols; treating a zero price as valid would fabricate
// financial data for delisted or nonexistent entities.
//
// For article payloads the signal is simply a non-empty list.
//
// Returns nil for a valid result, *ErrInvalidPayload otherwise.
func Validate(r *Result) error {
	if r == nil {
		return &ErrInvalidPayload{Reason: "nil result"}
	}

	if r.Company != nil {
		c := r.Company
		if c.Name == "" && c.Symbol == "" {
			return &ErrInvalidPayload{
				Provider: r.Provider,
				Symbol:   r.Symbol,
				Reason:   "no identifying name or symbol echo",
			}
		}
		// Zero market cap also rejects legitimately tiny or just-listed
		// companies when the price is missing too. Kept deliberately:
		// a price-less, cap-less quote is indistinguishable from a
		// delisted shell.
		if c.Price == 0 && c.MarketCap == 0 {
			return &ErrInvalidPayload{
				Provider: r.Provider,
				Symbol:   r.Symbol,
				Reason:   "no price or market capitalization",
			}
		}
		return nil
	}

	if len(r.Articles) > 0 {
		return nil
	}

	return &ErrInvalidPayload{
		Provider: r.Provider,
		Symbol:   r.Symbol,
		Reason:   "empty payload",
	}
}
