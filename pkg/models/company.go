package models

// CompanyProfile holds the identifying and price information a provider
// returns for a tradable entity. Price and MarketCap are raw values in the
// provider's listing currency; both zero means the provider had no real data.
type CompanyProfile struct {
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	Exchange  string  `json:"exchange,omitempty"`
	Currency  string  `json:"currency,omitempty"`
	Sector    string  `json:"sector,omitempty"`
	Industry  string  `json:"industry,omitempty"`
	Country   string  `json:"country,omitempty"`
	Website   string  `json:"website,omitempty"`
	Price     float64 `json:"price"`
	Change    float64 `json:"change,omitempty"`
	ChangePct float64 `json:"change_pct,omitempty"`
	MarketCap float64 `json:"market_cap"`
	PE        float64 `json:"pe,omitempty"`
	EPS       float64 `json:"eps,omitempty"`
}

// StatementPeriod is one reporting period of a financial statement.
// Items keeps the provider's line items as reported; keys differ between
// providers and are passed through untouched.
type StatementPeriod struct {
	FiscalDate string            `json:"fiscal_date"`
	Currency   string            `json:"currency,omitempty"`
	Items      map[string]string `json:"items"`
}

// FinancialStatements groups the three standard statements.
type FinancialStatements struct {
	Income       []StatementPeriod `json:"income_statement,omitempty"`
	BalanceSheet []StatementPeriod `json:"balance_sheet,omitempty"`
	CashFlow     []StatementPeriod `json:"cash_flow,omitempty"`
}

// Empty reports whether no statement has any period.
func (f *FinancialStatements) Empty() bool {
	if f == nil {
		return true
	}
	return len(f.Income) == 0 && len(f.BalanceSheet) == 0 && len(f.CashFlow) == 0
}

// SymbolSuggestion is a "did you mean" candidate returned when a lookup
// fails but the provider's symbol search had near matches.
type SymbolSuggestion struct {
	Symbol string  `json:"symbol"`
	Name   string  `json:"name"`
	Region string  `json:"region,omitempty"`
	Score  float64 `json:"match_score,omitempty"`
}
