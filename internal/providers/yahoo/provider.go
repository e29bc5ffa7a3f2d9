// Package yahoo implements the Yahoo Finance data provider, the third
// fallback tier. Yahoo needs no API key, which makes it the workhorse
// when the keyed tiers are exhausted or unconfigured, at the cost of an
// unofficial and occasionally moody API surface.
package yahoo

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
	providerName = "yahoo"
	newsName     = "yahoo-news"

	// DefaultBaseURL is the production API root. Overridable for tests.
	DefaultBaseURL = "https://query1.finance.yahoo.com"

	// maxNewsItems bounds one search response's contribution.
	maxNewsItems = 10
)

// Provider fetches quotes and company profiles from Yahoo Finance.
type Provider struct {
	BaseURL string
	tier    int
}

// New creates a Yahoo company-data provider at the given tier.
func New(tier int) *Provider {
	return &Provider{BaseURL: DefaultBaseURL, tier: tier}
}

func (p *Provider) Name() string { return providerName }
func (p *Provider) Tier() int    { return p.tier }

// Fetch retrieves the quote for one symbol, then enriches it with the
// asset profile. Profile failure is tolerated; the quote alone carries
// everything the validity gate needs.
func (p *Provider) Fetch(ctx context.Context, symbol string) (*provider.Result, error) {
	var resp yhQuoteResponse
	u := p.BaseURL + "/v7/finance/quote?symbols=" + url.QueryEscape(symbol)
	if err := infra.GetJSON(ctx, u, nil, &resp); err != nil {
		return nil, fmt.Errorf("yahoo quote %s: %w", symbol, err)
	}
	if len(resp.QuoteResponse.Result) == 0 {
		return nil, &provider.ErrNoData{Provider: providerName, Symbol: symbol}
	}

	q := resp.QuoteResponse.Result[0]
	company := &models.CompanyProfile{
		Symbol:    q.Symbol,
		Name:      q.LongName,
		Exchange:  q.FullExchangeName,
		Currency:  q.Currency,
		Price:     q.RegularMarketPrice,
		Change:    q.RegularMarketChange,
		ChangePct: q.RegularMarketChangePercent,
		MarketCap: q.MarketCap,
		PE:        q.TrailingPE,
		EPS:       q.EpsTrailingTwelveMonths,
	}
	if company.Name == "" {
		company.Name = q.ShortName
	}

	if prof, err := p.fetchProfile(ctx, symbol); err == nil {
		company.Sector = prof.Sector
		company.Industry = prof.Industry
		company.Country = prof.Country
		company.Website = prof.Website
	}

	return &provider.Result{
		Provider:  providerName,
		Tier:      p.tier,
		Symbol:    symbol,
		Company:   company,
		FetchedAt: time.Now(),
	}, nil
}

func (p *Provider) fetchProfile(ctx context.Context, symbol string) (*yhAssetProfile, error) {
	u := p.BaseURL + "/v10/finance/quoteSummary/" + url.PathEscape(symbol) + "?modules=assetProfile"
	var resp yhSummaryResponse
	if err := infra.GetJSON(ctx, u, nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, &provider.ErrNoData{Provider: providerName, Symbol: symbol}
	}
	return &resp.QuoteSummary.Result[0].AssetProfile, nil
}

// --- News provider ---

// NewsProvider fetches recent headlines from Yahoo's search endpoint.
type NewsProvider struct {
	BaseURL string
	tier    int
}

// NewNews creates a Yahoo news provider at the given tier.
func NewNews(tier int) *NewsProvider {
	return &NewsProvider{BaseURL: DefaultBaseURL, tier: tier}
}

func (p *NewsProvider) Name() string { return newsName }
func (p *NewsProvider) Tier() int    { return p.tier }

// Fetch retrieves headlines attached to the symbol's search results.
func (p *NewsProvider) Fetch(ctx context.Context, symbol string) (*provider.Result, error) {
	u := p.BaseURL + "/v1/finance/search?q=" + url.QueryEscape(symbol)
	var resp yhSearchResponse
	if err := infra.GetJSON(ctx, u, nil, &resp); err != nil {
		return nil, fmt.Errorf("yahoo news %s: %w", symbol, err)
	}

	articles := make([]models.Article, 0, len(resp.News))
	for _, it := range resp.News {
		if it.Title == "" {
			continue
		}
		a := models.Article{
			Title:  it.Title,
			URL:    it.Link,
			Source: it.Publisher,
		}
		if it.ProviderPublishTime > 0 {
			a.PublishedAt = time.Unix(it.ProviderPublishTime, 0).UTC()
		}
		articles = append(articles, a)
		if len(articles) >= maxNewsItems {
			break
		}
	}

	return &provider.Result{
		Provider:  newsName,
		Tier:      p.tier,
		Symbol:    symbol,
		Articles:  articles,
		FetchedAt: time.Now(),
	}, nil
}
