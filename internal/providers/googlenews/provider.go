// Package googlenews implements the Google News RSS provider, the
// keyless news tier of last resort. One query fans out into a handful of
// search-term feeds fetched concurrently, then the items are scored for
// relevance against the company name and merged.
package googlenews

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"github.com/fintellect/fintellect/internal/infra"
	"github.com/fintellect/fintellect/internal/provider"
	"github.com/fintellect/fintellect/internal/scrape"
	"github.com/fintellect/fintellect/pkg/models"
)

const (
	providerName = "googlenews"

	// DefaultBaseURL is the RSS search root. Overridable for tests.
	DefaultBaseURL = "https://news.google.com/rss/search"

	// maxSearchTerms bounds the fan-out per query.
	maxSearchTerms = 4

	// maxItemsPerTerm bounds one feed's contribution before merging.
	maxItemsPerTerm = 6

	// minRelevance drops items that only incidentally matched the query.
	minRelevance = 0.3
)

// Provider fetches company headlines from Google News RSS search feeds.
type Provider struct {
	BaseURL string
	tier    int
	parser  *gofeed.Parser
	limiter *infra.RateLimiter
}

// New creates a Google News provider at the given tier.
func New(tier int) *Provider {
	return &Provider{
		BaseURL: DefaultBaseURL,
		tier:    tier,
		parser:  gofeed.NewParser(),
		limiter: infra.NewRateLimiter(2, time.Second), // conservative: 2 req/s
	}
}

func (p *Provider) Name() string { return providerName }
func (p *Provider) Tier() int    { return p.tier }

// Fetch runs the search-term fan-out for one company name or symbol.
// Individual feed failures are tolerated; the fetch fails only when
// every term failed.
func (p *Provider) Fetch(ctx context.Context, query string) (*provider.Result, error) {
	terms := searchTerms(query)

	perTerm := make([][]models.Article, len(terms))
	okCount := 0
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for i, term := range terms {
		i, term := i, term
		g.Go(func() error {
			articles, err := p.fetchTerm(gctx, term)
			if err != nil {
				// Non-critical: skip failed terms.
				return nil
			}
			mu.Lock()
			perTerm[i] = articles
			okCount++
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if okCount == 0 {
		return nil, fmt.Errorf("googlenews: all %d feeds failed for %q", len(terms), query)
	}

	// Merge in term order, dedup by link then title.
	seen := make(map[string]bool)
	var articles []models.Article
	for _, batch := range perTerm {
		for _, a := range batch {
			key := a.URL
			if key == "" {
				key = strings.ToLower(a.Title)
			}
			if seen[key] {
				continue
			}
			seen[key] = true

			a.Relevance = relevance(query, a.Title, a.Summary)
			if a.Relevance < minRelevance {
				continue
			}
			articles = append(articles, a)
		}
	}

	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].Relevance > articles[j].Relevance
	})

	return &provider.Result{
		Provider:  providerName,
		Tier:      p.tier,
		Symbol:    query,
		Articles:  articles,
		FetchedAt: time.Now(),
	}, nil
}

func (p *Provider) fetchTerm(ctx context.Context, term string) ([]models.Article, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	feedURL := p.BaseURL + "?q=" + url.QueryEscape(term) + "&hl=en-US&gl=US&ceid=US:en"
	feed, err := p.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse RSS %q: %w", term, err)
	}

	articles := make([]models.Article, 0, maxItemsPerTerm)
	for _, item := range feed.Items {
		if len(articles) >= maxItemsPerTerm {
			break
		}
		a := models.Article{
			Title:   item.Title,
			URL:     item.Link,
			Source:  feedSource(item),
			Summary: scrape.StripTags(item.Description),
		}
		if item.PublishedParsed != nil {
			a.PublishedAt = *item.PublishedParsed
		}
		articles = append(articles, a)
	}
	return articles, nil
}

// --- Helpers ---

// searchTerms builds the fan-out queries for a company name.
func searchTerms(query string) []string {
	terms := []string{
		query,
		query + " stock",
		query + " share price",
		query + " news",
	}
	if len(terms) > maxSearchTerms {
		terms = terms[:maxSearchTerms]
	}
	return terms
}

// relevance scores how strongly an item matches the queried company.
// Full-name hit in the title dominates; token hits in title and summary
// degrade gracefully.
func relevance(query, title, summary string) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	t := strings.ToLower(title)
	s := strings.ToLower(summary)

	if q == "" {
		return 0
	}
	if strings.Contains(t, q) {
		return 1.0
	}

	tokens := strings.Fields(q)
	hits := 0
	for _, tok := range tokens {
		if strings.Contains(t, tok) {
			hits++
		}
	}
	score := 0.0
	if len(tokens) > 0 {
		score = 0.8 * float64(hits) / float64(len(tokens))
	}
	if strings.Contains(s, q) {
		score += 0.3
	}
	if score > 1 {
		score = 1
	}
	return score
}

// feedSource extracts the publisher name Google News tucks into the
// item, falling back to the title's " - Publisher" suffix.
func feedSource(item *gofeed.Item) string {
	if item.Custom != nil {
		if src := item.Custom["source"]; src != "" {
			return src
		}
	}
	if idx := strings.LastIndex(item.Title, " - "); idx > 0 {
		return strings.TrimSpace(item.Title[idx+3:])
	}
	return "Google News"
}
