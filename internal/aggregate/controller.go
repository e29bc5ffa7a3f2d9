// Package aggregate implements the tiered fallback controller: it walks
// providers in fixed priority order, promotes the first validated result
// to primary, sweeps the remaining tiers for supplementary data, and
// assembles the per-invocation aggregate with full attempt provenance.
package aggregate

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fintellect/fintellect/internal/news"
	"github.com/fintellect/fintellect/internal/provider"
	"github.com/fintellect/fintellect/internal/resolver"
	"github.com/fintellect/fintellect/internal/scrape"
	"github.com/fintellect/fintellect/internal/sentiment"
	"github.com/fintellect/fintellect/pkg/models"
)

// DefaultTimeout bounds one provider call. A call that exceeds it is
// treated identically to a provider failure, never retried.
const DefaultTimeout = 10 * time.Second

// Outcome classifies one provider attempt in the provenance ledger.
type Outcome string

const (
	// OutcomeOK: fetched and passed the validity gate.
	OutcomeOK Outcome = "ok"
	// OutcomeInvalid: provider answered but the payload failed the
	// validity gate — "exists but junk data".
	OutcomeInvalid Outcome = "invalid"
	// OutcomeUnreachable: network, timeout or protocol error.
	OutcomeUnreachable Outcome = "unreachable"
	// OutcomeExhausted: every candidate symbol failed for this tier.
	OutcomeExhausted Outcome = "exhausted-candidates"
)

// Attempt is one entry of the provenance ledger. The engine records
// outcomes here instead of logging; the CLI decides what to print.
type Attempt struct {
	Provider string  `json:"provider"`
	Tier     int     `json:"tier"`
	Symbol   string  `json:"symbol,omitempty"`
	Outcome  Outcome `json:"outcome"`
	Detail   string  `json:"detail,omitempty"`
}

// Options configures one aggregation run.
type Options struct {
	// Supplementary enables the post-primary sweep of remaining tiers.
	// Static policy per invocation, not a dynamic cancellation signal.
	Supplementary bool

	// Timeout bounds each provider call. Zero means DefaultTimeout.
	Timeout time.Duration

	// MaxArticles caps the merged article list. Zero means the merge
	// engine's default.
	MaxArticles int
}

// Result is the aggregate for one query. Read-only after construction.
type Result struct {
	Query         string             `json:"query"`
	Primary       *provider.Result   `json:"primary,omitempty"`
	Supplementary []*provider.Result `json:"supplementary,omitempty"`
	SourcesUsed   []string           `json:"sources_used"`
	Articles      []models.Article   `json:"articles,omitempty"`
	Attempts      []Attempt          `json:"attempts"`
	FetchedAt     time.Time          `json:"fetched_at"`
}

// MarketScoped is implemented by providers that only cover one market;
// the controller filters symbol candidates accordingly.
type MarketScoped interface {
	Market() resolver.Market
}

// Suggester provides "did you mean" symbol suggestions for not-found
// diagnostics. Optional.
type Suggester interface {
	Suggest(ctx context.Context, query string) ([]models.SymbolSuggestion, error)
}

// ScrapeFunc fetches the full text of one article page. Optional; any
// failure leaves the provider-supplied summary in place.
type ScrapeFunc func(ctx context.Context, url string) (*scrape.Content, error)

// maxScraped bounds full-content fetches per invocation. The rest of the
// merged list keeps its provider summaries.
const maxScraped = 5

// Controller orchestrates the tier walk over one provider registry.
type Controller struct {
	registry  *provider.Registry
	suggester Suggester
	scraper   ScrapeFunc
}

// New creates a controller over the given registry.
func New(registry *provider.Registry) *Controller {
	return &Controller{registry: registry}
}

// WithSuggester attaches a suggestion source used when every tier fails.
func (c *Controller) WithSuggester(s Suggester) *Controller {
	c.suggester = s
	return c
}

// WithScraper attaches a full-content fetcher used to enrich the top
// merged articles before sentiment scoring.
func (c *Controller) WithScraper(fn ScrapeFunc) *Controller {
	c.scraper = fn
	return c
}

// Aggregate runs the full fallback flow for one company query. All
// per-provider errors are absorbed; the only error returned is
// *NotFoundError on total exhaustion (or an empty query).
func (c *Controller) Aggregate(ctx context.Context, query string, opts Options) (*Result, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	candidates := resolver.Resolve(query)
	if len(candidates) == 0 {
		// Blank input resolves to nothing; report it through the same
		// not-found channel as any other unrecognized name.
		return nil, &NotFoundError{Query: query, Reason: ReasonMisspelling}
	}

	res := &Result{Query: query, FetchedAt: time.Now()}

	// Searching: walk tiers in fixed priority order; first validated
	// result becomes primary.
	primary := c.findPrimary(ctx, candidates, opts, res)
	if primary == nil {
		return nil, c.notFound(ctx, query, candidates, res.Attempts)
	}
	res.Primary = primary
	res.SourcesUsed = append(res.SourcesUsed, primary.Provider)

	// PrimaryFound: sweep the remaining tiers concurrently. Failures here
	// never touch the primary.
	if opts.Supplementary {
		c.sweep(ctx, candidates, primary, opts, res)
	}

	// Merge list-valued payloads, primary first so its version of a
	// duplicate story wins.
	all := append([]*provider.Result{res.Primary}, res.Supplementary...)
	res.Articles = news.Merge(all, opts.MaxArticles)
	c.enrich(ctx, res.Articles, opts.Timeout)
	for i := range res.Articles {
		sentiment.Annotate(&res.Articles[i])
	}

	return res, nil
}

// enrich fetches full article text for the top merged articles so
// sentiment scoring sees more than the headline. Best-effort: a failed
// scrape keeps the provider summary.
func (c *Controller) enrich(ctx context.Context, articles []models.Article, timeout time.Duration) {
	if c.scraper == nil {
		return
	}
	scraped := 0
	for i := range articles {
		if scraped >= maxScraped {
			break
		}
		if articles[i].URL == "" {
			continue
		}
		scraped++

		sctx, cancel := context.WithTimeout(ctx, timeout)
		content, err := c.scraper(sctx, articles[i].URL)
		cancel()
		if err != nil {
			continue
		}
		articles[i].Content = content.Text
		if articles[i].Author == "" {
			articles[i].Author = content.Author
		}
		if articles[i].PublishedAt.IsZero() {
			articles[i].PublishedAt = content.PublishedAt
		}
	}
}

// findPrimary walks the tiers and returns the first validated result.
// Every call is recorded in the attempt ledger.
func (c *Controller) findPrimary(ctx context.Context, candidates []resolver.Candidate, opts Options, res *Result) *provider.Result {
	for _, p := range c.registry.Tiers() {
		for _, cand := range candidatesFor(p, candidates) {
			r, attempt := c.try(ctx, p, cand.Symbol, opts.Timeout)
			res.Attempts = append(res.Attempts, attempt)
			if r != nil {
				return r
			}
		}
		res.Attempts = append(res.Attempts, Attempt{
			Provider: p.Name(),
			Tier:     p.Tier(),
			Outcome:  OutcomeExhausted,
		})
	}
	return nil
}

// sweep attempts every non-primary tier once, concurrently, with a
// single best candidate each. Results join back into tier order.
func (c *Controller) sweep(ctx context.Context, candidates []resolver.Candidate, primary *provider.Result, opts Options, res *Result) {
	tiers := c.registry.Tiers()
	results := make([]*provider.Result, len(tiers))
	attempts := make([]*Attempt, len(tiers))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range tiers {
		i, p := i, p
		if p.Name() == primary.Provider {
			continue
		}
		symbol := bestCandidate(p, candidates, primary.Symbol)
		g.Go(func() error {
			r, attempt := c.try(gctx, p, symbol, opts.Timeout)
			results[i] = r
			attempts[i] = &attempt
			return nil
		})
	}
	// Workers never return errors; Wait is the join point.
	_ = g.Wait()

	for i := range tiers {
		if attempts[i] != nil {
			res.Attempts = append(res.Attempts, *attempts[i])
		}
		if results[i] != nil {
			res.Supplementary = append(res.Supplementary, results[i])
			res.SourcesUsed = append(res.SourcesUsed, results[i].Provider)
		}
	}
}

// try performs one provider call under the per-call timeout and
// classifies the outcome. Returns the result only when it passed the
// validity gate.
func (c *Controller) try(ctx context.Context, p provider.Provider, symbol string, timeout time.Duration) (*provider.Result, Attempt) {
	attempt := Attempt{Provider: p.Name(), Tier: p.Tier(), Symbol: symbol}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	r, err := p.Fetch(callCtx, symbol)
	if err != nil {
		attempt.Outcome = classify(err)
		attempt.Detail = err.Error()
		return nil, attempt
	}
	if err := provider.Validate(r); err != nil {
		attempt.Outcome = OutcomeInvalid
		attempt.Detail = err.Error()
		return nil, attempt
	}

	attempt.Outcome = OutcomeOK
	return r, attempt
}

// classify separates "provider answered with nothing" from transport
// failures, so the ledger distinguishes junk data from unreachable.
func classify(err error) Outcome {
	var noData *provider.ErrNoData
	var invalid *provider.ErrInvalidPayload
	if errors.As(err, &noData) || errors.As(err, &invalid) {
		return OutcomeInvalid
	}
	return OutcomeUnreachable
}

// candidatesFor filters the candidate list for a market-scoped provider.
func candidatesFor(p provider.Provider, candidates []resolver.Candidate) []resolver.Candidate {
	if scoped, ok := p.(MarketScoped); ok {
		return resolver.ForMarket(candidates, scoped.Market())
	}
	return candidates
}

// bestCandidate picks the single symbol for a supplementary attempt:
// the symbol that won the primary, unless the provider is scoped to a
// market where that symbol was never a candidate.
func bestCandidate(p provider.Provider, candidates []resolver.Candidate, primarySymbol string) string {
	scoped := candidatesFor(p, candidates)
	for _, c := range scoped {
		if c.Symbol == primarySymbol {
			return primarySymbol
		}
	}
	if len(scoped) > 0 {
		return scoped[0].Symbol
	}
	return primarySymbol
}
