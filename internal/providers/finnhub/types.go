package finnhub

// --- Finnhub API response types ---

// fhProfile is the /stock/profile2 response.
type fhProfile struct {
	Country              string  `json:"country"`
	Currency             string  `json:"currency"`
	Exchange             string  `json:"exchange"`
	Name                 string  `json:"name"`
	Ticker               string  `json:"ticker"`
	MarketCapitalization float64 `json:"marketCapitalization"` // millions
	FinnhubIndustry      string  `json:"finnhubIndustry"`
	WebURL               string  `json:"weburl"`
}

// fhQuote is the /quote response. Finnhub returns all zeros, not an
// error, for symbols it does not know.
type fhQuote struct {
	Current       float64 `json:"c"`
	Change        float64 `json:"d"`
	ChangePercent float64 `json:"dp"`
	High          float64 `json:"h"`
	Low           float64 `json:"l"`
	Open          float64 `json:"o"`
	PrevClose     float64 `json:"pc"`
}

// fhNewsItem is one element of the /company-news response.
type fhNewsItem struct {
	Category string `json:"category"`
	Datetime int64  `json:"datetime"` // unix seconds
	Headline string `json:"headline"`
	Image    string `json:"image"`
	Related  string `json:"related"`
	Source   string `json:"source"`
	Summary  string `json:"summary"`
	URL      string `json:"url"`
}
