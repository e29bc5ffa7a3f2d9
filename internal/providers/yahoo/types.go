package yahoo

// --- Yahoo Finance API response types ---

// yhQuoteResponse is the v7 quote envelope.
type yhQuoteResponse struct {
	QuoteResponse struct {
		Result []yhQuote `json:"result"`
	} `json:"quoteResponse"`
}

type yhQuote struct {
	Symbol                     string  `json:"symbol"`
	LongName                   string  `json:"longName"`
	ShortName                  string  `json:"shortName"`
	Currency                   string  `json:"currency"`
	FullExchangeName           string  `json:"fullExchangeName"`
	RegularMarketPrice         float64 `json:"regularMarketPrice"`
	RegularMarketChange        float64 `json:"regularMarketChange"`
	RegularMarketChangePercent float64 `json:"regularMarketChangePercent"`
	MarketCap                  float64 `json:"marketCap"`
	TrailingPE                 float64 `json:"trailingPE"`
	EpsTrailingTwelveMonths    float64 `json:"epsTrailingTwelveMonths"`
}

// yhSummaryResponse is the v10 quoteSummary envelope, restricted to the
// assetProfile module.
type yhSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			AssetProfile yhAssetProfile `json:"assetProfile"`
		} `json:"result"`
	} `json:"quoteSummary"`
}

type yhAssetProfile struct {
	Sector   string `json:"sector"`
	Industry string `json:"industry"`
	Country  string `json:"country"`
	Website  string `json:"website"`
}

// yhSearchResponse is the v1 search envelope; only the news block is used.
type yhSearchResponse struct {
	News []yhNewsItem `json:"news"`
}

type yhNewsItem struct {
	Title               string   `json:"title"`
	Link                string   `json:"link"`
	Publisher           string   `json:"publisher"`
	ProviderPublishTime int64    `json:"providerPublishTime"` // unix seconds
	RelatedTickers      []string `json:"relatedTickers"`
}
