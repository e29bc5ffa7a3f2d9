package aggregate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/fintellect/fintellect/internal/provider"
	"github.com/fintellect/fintellect/internal/resolver"
	"github.com/fintellect/fintellect/internal/scrape"
	"github.com/fintellect/fintellect/pkg/models"
)

// fakeProvider serves canned results per symbol and records every call.
type fakeProvider struct {
	name    string
	tier    int
	results map[string]*provider.Result
	err     error
	hang    bool // block until the per-call context expires

	mu    sync.Mutex
	calls []string
}

func (f *fakeProvider) Name() string { return f.name }
func (f *fakeProvider) Tier() int    { return f.tier }

func (f *fakeProvider) Fetch(ctx context.Context, symbol string) (*provider.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, symbol)
	f.mu.Unlock()

	if f.hang {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	if r, ok := f.results[symbol]; ok {
		return r, nil
	}
	return nil, &provider.ErrNoData{Provider: f.name, Symbol: symbol}
}

func (f *fakeProvider) called() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// indiaProvider is a fakeProvider scoped to Indian listings.
type indiaProvider struct{ fakeProvider }

func (f *indiaProvider) Market() resolver.Market { return resolver.MarketIndia }

func companyResult(providerName string, tier int, symbol string, price float64) *provider.Result {
	return &provider.Result{
		Provider: providerName,
		Tier:     tier,
		Symbol:   symbol,
		Company:  &models.CompanyProfile{Symbol: symbol, Name: symbol + " Inc", Price: price, MarketCap: price * 1e9},
	}
}

func newController(t *testing.T, providers ...provider.Provider) *Controller {
	t.Helper()
	reg, err := provider.NewRegistry(providers...)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return New(reg)
}

func TestPrimaryFromFirstTier(t *testing.T) {
	tier1 := &fakeProvider{name: "t1", tier: 1, results: map[string]*provider.Result{
		"AAPL": companyResult("t1", 1, "AAPL", 229.5),
	}}
	tier2 := &fakeProvider{name: "t2", tier: 2, results: map[string]*provider.Result{
		"AAPL": companyResult("t2", 2, "AAPL", 229.0),
	}}

	c := newController(t, tier1, tier2)
	res, err := c.Aggregate(context.Background(), "apple", Options{})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if res.Primary == nil || res.Primary.Provider != "t1" {
		t.Fatalf("primary = %+v, want tier-1 result", res.Primary)
	}
	if res.Primary.Symbol != "AAPL" {
		t.Errorf("primary symbol = %q, want AAPL from exact mapping", res.Primary.Symbol)
	}
	if len(res.SourcesUsed) != 1 || res.SourcesUsed[0] != "t1" {
		t.Errorf("sources_used = %v, want [t1]", res.SourcesUsed)
	}
	if len(tier2.called()) != 0 {
		t.Errorf("tier 2 called %v without supplementary sweep", tier2.called())
	}
}

func TestPriorityMonotonicity(t *testing.T) {
	// Both tiers would succeed; tier order, not registration order, must win.
	tier2 := &fakeProvider{name: "t2", tier: 2, results: map[string]*provider.Result{
		"AAPL": companyResult("t2", 2, "AAPL", 229.0),
	}}
	tier1 := &fakeProvider{name: "t1", tier: 1, results: map[string]*provider.Result{
		"AAPL": companyResult("t1", 1, "AAPL", 229.5),
	}}

	c := newController(t, tier2, tier1) // registered out of order
	res, err := c.Aggregate(context.Background(), "apple", Options{})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if res.Primary.Provider != "t1" {
		t.Errorf("primary = %s, want highest-priority tier", res.Primary.Provider)
	}
}

func TestFallbackOnInvalidPayload(t *testing.T) {
	// Tier 1 echoes the symbol with zero price and market cap.
	tier1 := &fakeProvider{name: "t1", tier: 1, results: map[string]*provider.Result{
		"AAPL": {Provider: "t1", Tier: 1, Symbol: "AAPL", Company: &models.CompanyProfile{Symbol: "AAPL", Name: "Apple"}},
	}}
	tier2 := &fakeProvider{name: "t2", tier: 2, results: map[string]*provider.Result{
		"AAPL": companyResult("t2", 2, "AAPL", 229.0),
	}}

	c := newController(t, tier1, tier2)
	res, err := c.Aggregate(context.Background(), "apple", Options{})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if res.Primary.Provider != "t2" {
		t.Fatalf("primary = %s, want fallback to tier 2", res.Primary.Provider)
	}

	sawInvalid := false
	for _, a := range res.Attempts {
		if a.Provider == "t1" && a.Outcome == OutcomeInvalid {
			sawInvalid = true
		}
	}
	if !sawInvalid {
		t.Errorf("attempt ledger %v missing invalid outcome for tier 1", res.Attempts)
	}
}

func TestFallbackOnTimeout(t *testing.T) {
	tier1 := &fakeProvider{name: "t1", tier: 1, hang: true}
	tier2 := &fakeProvider{name: "t2", tier: 2, results: map[string]*provider.Result{
		"AAPL": companyResult("t2", 2, "AAPL", 229.0),
	}}

	c := newController(t, tier1, tier2)
	res, err := c.Aggregate(context.Background(), "apple", Options{Timeout: 20 * time.Millisecond})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if res.Primary.Provider != "t2" {
		t.Fatalf("primary = %s, want tier 2 after tier-1 timeout", res.Primary.Provider)
	}
	for _, src := range res.SourcesUsed {
		if src == "t1" {
			t.Error("timed-out tier must not appear in sources_used")
		}
	}

	sawUnreachable := false
	for _, a := range res.Attempts {
		if a.Provider == "t1" && a.Outcome == OutcomeUnreachable {
			sawUnreachable = true
		}
	}
	if !sawUnreachable {
		t.Errorf("attempt ledger %v missing unreachable outcome for tier 1", res.Attempts)
	}
}

func TestTotalExhaustion(t *testing.T) {
	tier1 := &fakeProvider{name: "t1", tier: 1}
	tier2 := &fakeProvider{name: "t2", tier: 2}

	c := newController(t, tier1, tier2)
	res, err := c.Aggregate(context.Background(), "nonexistentcorp123", Options{Supplementary: true})
	if res != nil {
		t.Fatalf("result = %+v, want nil on exhaustion", res)
	}

	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error = %v, want *NotFoundError", err)
	}
	if nf.Query != "nonexistentcorp123" {
		t.Errorf("query = %q", nf.Query)
	}
	if nf.Reason != ReasonMisspelling {
		t.Errorf("reason = %s, want misspelling for unmapped name", nf.Reason)
	}
	if len(nf.Hints()) == 0 {
		t.Error("expected actionable hints")
	}
	// Each tier must close with an exhausted-candidates entry.
	exhausted := 0
	for _, a := range nf.Attempts {
		if a.Outcome == OutcomeExhausted {
			exhausted++
		}
	}
	if exhausted != 2 {
		t.Errorf("got %d exhausted entries, want one per tier", exhausted)
	}
}

func TestExhaustionReasonUnreachable(t *testing.T) {
	tier1 := &fakeProvider{name: "t1", tier: 1, err: errors.New("connection refused")}

	c := newController(t, tier1)
	_, err := c.Aggregate(context.Background(), "apple", Options{})
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error = %v, want *NotFoundError", err)
	}
	if nf.Reason != ReasonUnreachable {
		t.Errorf("reason = %s, want unreachable when no provider answered", nf.Reason)
	}
}

func TestExhaustionReasonDelisted(t *testing.T) {
	// Known name, provider echoes it with placeholder data.
	tier1 := &fakeProvider{name: "t1", tier: 1, results: map[string]*provider.Result{
		"AAPL": {Provider: "t1", Tier: 1, Symbol: "AAPL", Company: &models.CompanyProfile{Symbol: "AAPL", Name: "Apple"}},
	}}

	c := newController(t, tier1)
	_, err := c.Aggregate(context.Background(), "apple", Options{})
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error = %v, want *NotFoundError", err)
	}
	if nf.Reason != ReasonDelisted {
		t.Errorf("reason = %s, want delisted for mapped name with junk payloads", nf.Reason)
	}
}

type fakeSuggester struct{}

func (fakeSuggester) Suggest(_ context.Context, _ string) ([]models.SymbolSuggestion, error) {
	return []models.SymbolSuggestion{
		{Symbol: "AAPL", Name: "Apple Inc", Score: 0.9},
		{Symbol: "APLE", Name: "Apple Hospitality REIT", Score: 0.6},
		{Symbol: "APP", Name: "AppLovin", Score: 0.5},
		{Symbol: "APPN", Name: "Appian", Score: 0.4},
	}, nil
}

func TestExhaustionCarriesSuggestions(t *testing.T) {
	c := newController(t, &fakeProvider{name: "t1", tier: 1}).WithSuggester(fakeSuggester{})

	_, err := c.Aggregate(context.Background(), "aple", Options{})
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error = %v, want *NotFoundError", err)
	}
	if len(nf.Suggestions) != 3 {
		t.Errorf("got %d suggestions, want capped at 3", len(nf.Suggestions))
	}
}

func TestSupplementarySweep(t *testing.T) {
	tier1 := &fakeProvider{name: "t1", tier: 1, results: map[string]*provider.Result{
		"AAPL": companyResult("t1", 1, "AAPL", 229.5),
	}}
	tier2 := &fakeProvider{name: "t2", tier: 2, results: map[string]*provider.Result{
		"AAPL": companyResult("t2", 2, "AAPL", 229.0),
	}}
	tier3 := &fakeProvider{name: "t3", tier: 3, err: errors.New("down")}

	c := newController(t, tier1, tier2, tier3)
	res, err := c.Aggregate(context.Background(), "apple", Options{Supplementary: true})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if res.Primary.Provider != "t1" {
		t.Fatalf("primary = %s", res.Primary.Provider)
	}
	if len(res.Supplementary) != 1 || res.Supplementary[0].Provider != "t2" {
		t.Fatalf("supplementary = %+v, want only tier 2", res.Supplementary)
	}
	// Partial sweep failure is a normal DONE outcome, not an error.
	want := []string{"t1", "t2"}
	if len(res.SourcesUsed) != len(want) {
		t.Fatalf("sources_used = %v, want %v", res.SourcesUsed, want)
	}
	for i := range want {
		if res.SourcesUsed[i] != want[i] {
			t.Errorf("sources_used = %v, want %v", res.SourcesUsed, want)
		}
	}
	// Sweep uses the winning symbol, once, per remaining tier.
	if calls := tier2.called(); len(calls) != 1 || calls[0] != "AAPL" {
		t.Errorf("tier 2 calls = %v, want single attempt with winning symbol", calls)
	}
}

func TestSupplementaryNeverDuplicatesPrimary(t *testing.T) {
	tier1 := &fakeProvider{name: "t1", tier: 1, results: map[string]*provider.Result{
		"AAPL": companyResult("t1", 1, "AAPL", 229.5),
	}}

	c := newController(t, tier1)
	res, err := c.Aggregate(context.Background(), "apple", Options{Supplementary: true})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(res.Supplementary) != 0 {
		t.Errorf("supplementary = %+v, want empty when primary is the only tier", res.Supplementary)
	}
	if calls := tier1.called(); len(calls) != 1 {
		t.Errorf("primary provider called %d times, want 1", len(calls))
	}
}

func TestMarketScopedCandidates(t *testing.T) {
	india := &indiaProvider{fakeProvider{name: "in", tier: 1, results: map[string]*provider.Result{
		"TATAMOTORS": companyResult("in", 1, "TATAMOTORS", 975.4),
	}}}

	c := newController(t, india)
	res, err := c.Aggregate(context.Background(), "tata motors", Options{})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if res.Primary.Symbol != "TATAMOTORS" {
		t.Errorf("symbol = %q, want Indian mapping", res.Primary.Symbol)
	}
}

func TestMergedArticlesDedupAcrossTiers(t *testing.T) {
	tier1 := &fakeProvider{name: "t1", tier: 1, results: map[string]*provider.Result{
		"AAPL": {Provider: "t1", Tier: 1, Symbol: "AAPL", Articles: []models.Article{
			{Title: "Apple Q3 Earnings Beat Estimates", Source: "Finnhub"},
		}},
	}}
	tier3 := &fakeProvider{name: "t3", tier: 3, results: map[string]*provider.Result{
		"AAPL": {Provider: "t3", Tier: 3, Symbol: "AAPL", Articles: []models.Article{
			{Title: "apple q3 earnings beat estimates ", Source: "Google News"},
			{Title: "Apple supplier reports strong quarter", Source: "Google News"},
		}},
	}}

	c := newController(t, tier1, tier3)
	res, err := c.Aggregate(context.Background(), "apple", Options{Supplementary: true})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(res.Articles) != 2 {
		t.Fatalf("got %d merged articles, want 2 after dedup", len(res.Articles))
	}
	for _, a := range res.Articles {
		if a.Title == "Apple Q3 Earnings Beat Estimates" && a.Source != "Finnhub" {
			t.Errorf("duplicate retained from %q, want higher-priority source", a.Source)
		}
		if a.Sentiment == "" {
			t.Errorf("article %q missing sentiment annotation", a.Title)
		}
	}
}

func TestScrapedContentFeedsSentiment(t *testing.T) {
	// Neutral headline; the scraped body carries the actual signal.
	tier1 := &fakeProvider{name: "t1", tier: 1, results: map[string]*provider.Result{
		"AAPL": {Provider: "t1", Tier: 1, Symbol: "AAPL", Articles: []models.Article{
			{Title: "Apple publishes quarterly report", URL: "https://example.com/aapl-q3"},
		}},
	}}

	var scrapedURL string
	c := newController(t, tier1).WithScraper(func(_ context.Context, url string) (*scrape.Content, error) {
		scrapedURL = url
		return &scrape.Content{
			Text:   "Shares crash as a fraud investigation widens; analysts expect heavy losses.",
			Author: "Wire Desk",
		}, nil
	})

	res, err := c.Aggregate(context.Background(), "apple", Options{})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if scrapedURL != "https://example.com/aapl-q3" {
		t.Fatalf("scraped %q, want the article URL", scrapedURL)
	}
	a := res.Articles[0]
	if a.Content == "" {
		t.Fatal("article content not populated from scrape")
	}
	if a.Author != "Wire Desk" {
		t.Errorf("author = %q, want scraped author", a.Author)
	}
	if a.Sentiment != models.SentimentNegative {
		t.Errorf("sentiment = %s, want negative from scraped body", a.Sentiment)
	}
}

func TestScrapeFailureKeepsSummary(t *testing.T) {
	tier1 := &fakeProvider{name: "t1", tier: 1, results: map[string]*provider.Result{
		"AAPL": {Provider: "t1", Tier: 1, Symbol: "AAPL", Articles: []models.Article{
			{
				Title:   "Apple publishes quarterly report",
				URL:     "https://example.com/aapl-q3",
				Summary: "Analysts upgrade the stock as profit surges past estimates.",
			},
		}},
	}}

	c := newController(t, tier1).WithScraper(func(_ context.Context, _ string) (*scrape.Content, error) {
		return nil, errors.New("blocked")
	})

	res, err := c.Aggregate(context.Background(), "apple", Options{})
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	a := res.Articles[0]
	if a.Content != "" {
		t.Errorf("content = %q, want empty after failed scrape", a.Content)
	}
	if a.Sentiment != models.SentimentPositive {
		t.Errorf("sentiment = %s, want positive from the summary fallback", a.Sentiment)
	}
}

func TestScrapeCappedAtTopArticles(t *testing.T) {
	articles := make([]models.Article, 8)
	for i := range articles {
		articles[i] = models.Article{
			Title: fmt.Sprintf("Apple development story number %d today", i),
			URL:   fmt.Sprintf("https://example.com/story-%d", i),
		}
	}
	tier1 := &fakeProvider{name: "t1", tier: 1, results: map[string]*provider.Result{
		"AAPL": {Provider: "t1", Tier: 1, Symbol: "AAPL", Articles: articles},
	}}

	calls := 0
	c := newController(t, tier1).WithScraper(func(_ context.Context, _ string) (*scrape.Content, error) {
		calls++
		return &scrape.Content{Text: "Body text long enough to matter."}, nil
	})

	if _, err := c.Aggregate(context.Background(), "apple", Options{}); err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if calls != maxScraped {
		t.Errorf("scraper called %d times, want %d", calls, maxScraped)
	}
}

func TestEmptyQuery(t *testing.T) {
	c := newController(t, &fakeProvider{name: "t1", tier: 1})
	_, err := c.Aggregate(context.Background(), "   ", Options{})

	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error = %v, want *NotFoundError for blank query", err)
	}
	if nf.Reason != ReasonMisspelling {
		t.Errorf("reason = %s, want misspelling", nf.Reason)
	}
}
