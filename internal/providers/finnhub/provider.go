// Package finnhub implements the Finnhub data provider, the first stop
// for global equities. Finnhub serves company profiles and real-time
// quotes via a REST API with API key authentication.
//
// Free tier: 60 requests/minute.
// Docs: https://finnhub.io/docs/api
package finnhub

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/fintellect/fintellect/internal/infra"
	"github.com/fintellect/fintellect/internal/provider"
	"github.com/fintellect/fintellect/pkg/models"
)

const (
	providerName = "finnhub"
	newsName     = "finnhub-news"

	// DefaultBaseURL is the production API root. Overridable for tests.
	DefaultBaseURL = "https://finnhub.io/api/v1"

	// newsLookback bounds the company-news window.
	newsLookback = 7 * 24 * time.Hour
)

// Provider fetches company profile and quote data from Finnhub.
type Provider struct {
	BaseURL string
	apiKey  string
	tier    int
}

// New creates a Finnhub company-data provider at the given tier.
func New(apiKey string, tier int) *Provider {
	return &Provider{BaseURL: DefaultBaseURL, apiKey: apiKey, tier: tier}
}

func (p *Provider) Name() string { return providerName }
func (p *Provider) Tier() int    { return p.tier }

// Fetch retrieves profile and quote for one symbol and normalizes them
// into a company payload. A quote of all zeros means Finnhub does not
// track the symbol; the payload is returned as-is and the validity gate
// rejects it downstream.
func (p *Provider) Fetch(ctx context.Context, symbol string) (*provider.Result, error) {
	var profile fhProfile
	if err := p.getJSON(ctx, "/stock/profile2", url.Values{"symbol": {symbol}}, &profile); err != nil {
		return nil, fmt.Errorf("finnhub profile %s: %w", symbol, err)
	}
	if profile.Name == "" && profile.Ticker == "" {
		return nil, &provider.ErrNoData{Provider: providerName, Symbol: symbol}
	}

	var quote fhQuote
	if err := p.getJSON(ctx, "/quote", url.Values{"symbol": {symbol}}, &quote); err != nil {
		return nil, fmt.Errorf("finnhub quote %s: %w", symbol, err)
	}

	company := &models.CompanyProfile{
		Symbol:    symbol,
		Name:      profile.Name,
		Exchange:  profile.Exchange,
		Currency:  profile.Currency,
		Industry:  profile.FinnhubIndustry,
		Country:   profile.Country,
		Website:   profile.WebURL,
		Price:     quote.Current,
		Change:    quote.Change,
		ChangePct: quote.ChangePercent,
		MarketCap: profile.MarketCapitalization * 1e6,
	}
	if company.Name == "" {
		company.Name = profile.Ticker
	}

	return &provider.Result{
		Provider:  providerName,
		Tier:      p.tier,
		Symbol:    symbol,
		Company:   company,
		FetchedAt: time.Now(),
	}, nil
}

func (p *Provider) getJSON(ctx context.Context, path string, q url.Values, dest any) error {
	return getJSON(ctx, p.BaseURL, path, q, p.apiKey, dest)
}

// --- News provider ---

// NewsProvider fetches recent company headlines from Finnhub.
type NewsProvider struct {
	BaseURL string
	apiKey  string
	tier    int
}

// NewNews creates a Finnhub company-news provider at the given tier.
func NewNews(apiKey string, tier int) *NewsProvider {
	return &NewsProvider{BaseURL: DefaultBaseURL, apiKey: apiKey, tier: tier}
}

func (p *NewsProvider) Name() string { return newsName }
func (p *NewsProvider) Tier() int    { return p.tier }

// Fetch retrieves company news for the last week.
func (p *NewsProvider) Fetch(ctx context.Context, symbol string) (*provider.Result, error) {
	now := time.Now()
	q := url.Values{
		"symbol": {symbol},
		"from":   {now.Add(-newsLookback).Format("2006-01-02")},
		"to":     {now.Format("2006-01-02")},
	}

	var items []fhNewsItem
	if err := getJSON(ctx, p.BaseURL, "/company-news", q, p.apiKey, &items); err != nil {
		return nil, fmt.Errorf("finnhub news %s: %w", symbol, err)
	}

	articles := make([]models.Article, 0, len(items))
	for _, it := range items {
		if it.Headline == "" {
			continue
		}
		a := models.Article{
			Title:   it.Headline,
			URL:     it.URL,
			Source:  it.Source,
			Summary: it.Summary,
		}
		if it.Datetime > 0 {
			a.PublishedAt = time.Unix(it.Datetime, 0).UTC()
		}
		articles = append(articles, a)
	}

	return &provider.Result{
		Provider:  newsName,
		Tier:      p.tier,
		Symbol:    symbol,
		Articles:  articles,
		FetchedAt: now,
	}, nil
}

// --- Shared helpers ---

func getJSON(ctx context.Context, base, path string, q url.Values, apiKey string, dest any) error {
	u := base + path + "?" + q.Encode()
	headers := map[string]string{"X-Finnhub-Token": apiKey}
	return infra.GetJSON(ctx, u, headers, dest)
}
