// Package alphavantage implements the Alpha Vantage data provider, the
// second fallback tier. Alpha Vantage serves company fundamentals and
// annual financial statements via a REST API keyed by a single "function"
// query parameter.
//
// Free tier: 25 requests/day.
// Docs: https://www.alphavantage.co/documentation/
package alphavantage

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/fintellect/fintellect/internal/infra"
	"github.com/fintellect/fintellect/internal/provider"
	"github.com/fintellect/fintellect/pkg/models"
)

const (
	providerName = "alphavantage"

	// DefaultBaseURL is the production API root. Overridable for tests.
	DefaultBaseURL = "https://www.alphavantage.co"
)

// Provider fetches company overview and financial statements from
// Alpha Vantage.
type Provider struct {
	BaseURL string
	apiKey  string
	tier    int

	// WithStatements controls whether Fetch also pulls the three annual
	// statements. Off by default: they cost three extra calls against a
	// 25/day budget.
	WithStatements bool
}

// New creates an Alpha Vantage provider at the given tier.
func New(apiKey string, tier int) *Provider {
	return &Provider{BaseURL: DefaultBaseURL, apiKey: apiKey, tier: tier}
}

func (p *Provider) Name() string { return providerName }
func (p *Provider) Tier() int    { return p.tier }

// Fetch retrieves the company overview (and optionally annual statements)
// for one symbol. An overview whose market cap reads "None" or "0" is
// normalized to a zero value so the validity gate rejects it.
func (p *Provider) Fetch(ctx context.Context, symbol string) (*provider.Result, error) {
	var ov avOverview
	if err := p.call(ctx, "OVERVIEW", symbol, &ov); err != nil {
		return nil, fmt.Errorf("alphavantage overview %s: %w", symbol, err)
	}
	if ov.Note != "" || ov.Information != "" {
		return nil, fmt.Errorf("alphavantage throttled: %s%s", ov.Note, ov.Information)
	}
	if ov.Symbol == "" && ov.Name == "" {
		return nil, &provider.ErrNoData{Provider: providerName, Symbol: symbol}
	}

	company := &models.CompanyProfile{
		Symbol:    ov.Symbol,
		Name:      ov.Name,
		Exchange:  ov.Exchange,
		Currency:  ov.Currency,
		Country:   ov.Country,
		Sector:    ov.Sector,
		Industry:  ov.Industry,
		MarketCap: parseFloat(ov.MarketCapitalization),
		PE:        parseFloat(ov.PERatio),
		EPS:       parseFloat(ov.EPS),
	}
	if company.Symbol == "" {
		company.Symbol = symbol
	}

	res := &provider.Result{
		Provider:  providerName,
		Tier:      p.tier,
		Symbol:    symbol,
		Company:   company,
		FetchedAt: time.Now(),
	}

	if p.WithStatements {
		st, err := p.fetchStatements(ctx, symbol)
		if err != nil {
			// Statements are an enrichment; the overview already stands
			// or falls on its own at the validity gate. Record that they
			// were requested and unavailable.
			res.Warnings = append(res.Warnings, fmt.Sprintf("statements unavailable: %v", err))
			return res, nil
		}
		res.Statements = st
	}
	return res, nil
}

// Suggest returns symbol suggestions for a free-text query, used for
// not-found diagnostics.
func (p *Provider) Suggest(ctx context.Context, query string) ([]models.SymbolSuggestion, error) {
	q := url.Values{
		"function": {"SYMBOL_SEARCH"},
		"keywords": {query},
		"apikey":   {p.apiKey},
	}
	var resp avSearch
	if err := infra.GetJSON(ctx, p.BaseURL+"/query?"+q.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("alphavantage search %q: %w", query, err)
	}

	out := make([]models.SymbolSuggestion, 0, len(resp.BestMatches))
	for _, m := range resp.BestMatches {
		out = append(out, models.SymbolSuggestion{
			Symbol: m.Symbol,
			Name:   m.Name,
			Region: m.Region,
			Score:  parseFloat(m.Score),
		})
	}
	return out, nil
}

func (p *Provider) fetchStatements(ctx context.Context, symbol string) (*models.FinancialStatements, error) {
	st := &models.FinancialStatements{}
	for _, part := range []struct {
		function string
		dest     *[]models.StatementPeriod
	}{
		{"INCOME_STATEMENT", &st.Income},
		{"BALANCE_SHEET", &st.BalanceSheet},
		{"CASH_FLOW", &st.CashFlow},
	} {
		var resp avStatements
		if err := p.call(ctx, part.function, symbol, &resp); err != nil {
			return nil, err
		}
		for _, report := range resp.AnnualReports {
			period := models.StatementPeriod{
				FiscalDate: report["fiscalDateEnding"],
				Currency:   report["reportedCurrency"],
				Items:      make(map[string]string, len(report)),
			}
			for k, v := range report {
				if k == "fiscalDateEnding" || k == "reportedCurrency" {
					continue
				}
				period.Items[k] = v
			}
			*part.dest = append(*part.dest, period)
		}
	}
	if st.Empty() {
		return nil, &provider.ErrNoData{Provider: providerName, Symbol: symbol}
	}
	return st, nil
}

func (p *Provider) call(ctx context.Context, function, symbol string, dest any) error {
	q := url.Values{
		"function": {function},
		"symbol":   {symbol},
		"apikey":   {p.apiKey},
	}
	return infra.GetJSON(ctx, p.BaseURL+"/query?"+q.Encode(), nil, dest)
}

// parseFloat converts Alpha Vantage's stringified numbers; "None", "-"
// and empty all collapse to zero.
func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
