package tickertape

// --- TickerTape API response types ---

// ttSearch is the /search response, restricted to stock results.
type ttSearch struct {
	Data struct {
		Stocks []ttStock `json:"stocks"`
	} `json:"data"`
}

type ttStock struct {
	SID    string `json:"sid"`
	Name   string `json:"name"`
	Ticker string `json:"ticker"`
	Sector string `json:"sector"`
	Slug   string `json:"slug"`
}

// ttQuotes is the /stocks/quotes response.
type ttQuotes struct {
	Data []ttQuote `json:"data"`
}

type ttQuote struct {
	SID       string  `json:"sid"`
	Price     float64 `json:"price"`
	Change    float64 `json:"change"`
	ChangePct float64 `json:"changePer"`
	MarketCap float64 `json:"marketCap"`
}
