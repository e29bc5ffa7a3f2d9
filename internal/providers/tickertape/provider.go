// Package tickertape implements the TickerTape data provider, the last
// fallback tier and the one with real coverage of NSE/BSE listings.
// TickerTape is keyless; lookups go search-first because its internal
// stock IDs, not exchange symbols, key the quote endpoint.
package tickertape

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/fintellect/fintellect/internal/infra"
	"github.com/fintellect/fintellect/internal/provider"
	"github.com/fintellect/fintellect/internal/resolver"
	"github.com/fintellect/fintellect/pkg/models"
)

const (
	providerName = "tickertape"

	// DefaultBaseURL is the production API root. Overridable for tests.
	DefaultBaseURL = "https://api.tickertape.in"
)

// Provider fetches Indian equity data from TickerTape.
type Provider struct {
	BaseURL string
	tier    int
}

// New creates a TickerTape provider at the given tier.
func New(tier int) *Provider {
	return &Provider{BaseURL: DefaultBaseURL, tier: tier}
}

func (p *Provider) Name() string { return providerName }
func (p *Provider) Tier() int    { return p.tier }

// Market scopes this provider to Indian listings; the controller filters
// symbol candidates accordingly.
func (p *Provider) Market() resolver.Market { return resolver.MarketIndia }

// Fetch searches for the symbol, then quotes the best match. Exchange
// suffixes (.NS, .BO) are stripped before searching; TickerTape tickers
// carry no suffix.
func (p *Provider) Fetch(ctx context.Context, symbol string) (*provider.Result, error) {
	query := strings.TrimSuffix(strings.TrimSuffix(symbol, ".NS"), ".BO")

	stock, err := p.search(ctx, query)
	if err != nil {
		return nil, err
	}

	company := &models.CompanyProfile{
		Symbol:   symbol,
		Name:     stock.Name,
		Exchange: "NSE",
		Currency: "INR",
		Sector:   stock.Sector,
		Country:  "India",
	}

	// Quote failure leaves price and market cap zero; the validity gate
	// then rejects the result rather than this adapter guessing.
	if quote, err := p.quote(ctx, stock.SID); err == nil {
		company.Price = quote.Price
		company.Change = quote.Change
		company.ChangePct = quote.ChangePct
		company.MarketCap = quote.MarketCap
	}

	return &provider.Result{
		Provider:  providerName,
		Tier:      p.tier,
		Symbol:    symbol,
		Company:   company,
		FetchedAt: time.Now(),
	}, nil
}

func (p *Provider) search(ctx context.Context, query string) (*ttStock, error) {
	u := p.BaseURL + "/search?text=" + url.QueryEscape(query) + "&types=stock"
	var resp ttSearch
	if err := infra.GetJSON(ctx, u, nil, &resp); err != nil {
		return nil, fmt.Errorf("tickertape search %q: %w", query, err)
	}
	if len(resp.Data.Stocks) == 0 {
		return nil, &provider.ErrNoData{Provider: providerName, Symbol: query}
	}

	// Prefer an exact ticker match over the first fuzzy hit.
	for i := range resp.Data.Stocks {
		if strings.EqualFold(resp.Data.Stocks[i].Ticker, query) {
			return &resp.Data.Stocks[i], nil
		}
	}
	return &resp.Data.Stocks[0], nil
}

func (p *Provider) quote(ctx context.Context, sid string) (*ttQuote, error) {
	u := p.BaseURL + "/stocks/quotes?sids=" + url.QueryEscape(sid)
	var resp ttQuotes
	if err := infra.GetJSON(ctx, u, nil, &resp); err != nil {
		return nil, fmt.Errorf("tickertape quote %s: %w", sid, err)
	}
	if len(resp.Data) == 0 {
		return nil, &provider.ErrNoData{Provider: providerName, Symbol: sid}
	}
	return &resp.Data[0], nil
}
