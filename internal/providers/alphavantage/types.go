package alphavantage

// --- Alpha Vantage API response types ---

// avOverview is the OVERVIEW function response. Numeric fields arrive as
// strings; absent values arrive as the literal string "None".
type avOverview struct {
	Symbol               string `json:"Symbol"`
	Name                 string `json:"Name"`
	Exchange             string `json:"Exchange"`
	Currency             string `json:"Currency"`
	Country              string `json:"Country"`
	Sector               string `json:"Sector"`
	Industry             string `json:"Industry"`
	MarketCapitalization string `json:"MarketCapitalization"`
	PERatio              string `json:"PERatio"`
	EPS                  string `json:"EPS"`

	// Set when the free-tier rate limit is hit; the payload carries no
	// data in that case.
	Note        string `json:"Note"`
	Information string `json:"Information"`
}

// avStatements is the shape shared by INCOME_STATEMENT, BALANCE_SHEET and
// CASH_FLOW. Report line items are kept as raw strings; Alpha Vantage
// mixes integers, floats and "None" freely.
type avStatements struct {
	Symbol        string              `json:"symbol"`
	AnnualReports []map[string]string `json:"annualReports"`
	Note          string              `json:"Note"`
}

// avSearch is the SYMBOL_SEARCH response.
type avSearch struct {
	BestMatches []avMatch `json:"bestMatches"`
}

type avMatch struct {
	Symbol   string `json:"1. symbol"`
	Name     string `json:"2. name"`
	Type     string `json:"3. type"`
	Region   string `json:"4. region"`
	Currency string `json:"8. currency"`
	Score    string `json:"9. matchScore"`
}
