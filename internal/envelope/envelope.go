// Package envelope assembles the final serializable document from an
// aggregate result. Building is a pure transformation; writing to a file
// or stdout is the caller's concern and kept in separate helpers.
package envelope

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fintellect/fintellect/internal/aggregate"
	"github.com/fintellect/fintellect/internal/provider"
	"github.com/fintellect/fintellect/pkg/models"
)

// QueryMeta identifies one invocation.
type QueryMeta struct {
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
}

// Envelope is the output document. Top-level keys are stable; consumers
// key on them, not on provider-specific payload shapes.
type Envelope struct {
	QueryMeta        QueryMeta               `json:"query_meta"`
	SourcesUsed      []string                `json:"sources_used"`
	Primary          *provider.Result        `json:"primary"`
	Supplementary    []*provider.Result      `json:"supplementary,omitempty"`
	MergedItems      []models.Article        `json:"merged_items,omitempty"`
	SentimentSummary models.SentimentSummary `json:"sentiment_summary"`
	SourceCounts     map[string]int          `json:"source_counts,omitempty"`
	Attempts         []aggregate.Attempt     `json:"attempts,omitempty"`
}

// Build assembles the envelope from an aggregate result.
func Build(res *aggregate.Result) *Envelope {
	env := &Envelope{
		QueryMeta: QueryMeta{
			Name:      res.Query,
			Timestamp: res.FetchedAt,
		},
		SourcesUsed:      res.SourcesUsed,
		Primary:          res.Primary,
		Supplementary:    res.Supplementary,
		MergedItems:      res.Articles,
		SentimentSummary: models.SummarizeSentiment(res.Articles),
		Attempts:         res.Attempts,
	}
	if env.SourcesUsed == nil {
		env.SourcesUsed = []string{}
	}

	if len(res.Articles) > 0 {
		counts := make(map[string]int, 4)
		for _, a := range res.Articles {
			src := a.Source
			if src == "" {
				src = "unknown"
			}
			counts[src]++
		}
		env.SourceCounts = counts
	}
	return env
}

// Write serializes the envelope as indented JSON.
func (e *Envelope) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(e); err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}
	return nil
}

// WriteFile writes the envelope to dir under the conventional name
// <name>_universal_<timestamp>.json and returns the full path.
func (e *Envelope) WriteFile(dir string) (string, error) {
	name := slug(e.QueryMeta.Name)
	ts := e.QueryMeta.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_universal_%s.json", name, ts.Format("20060102_150405")))

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir %s: %w", dir, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := e.Write(f); err != nil {
		return "", err
	}
	return path, nil
}

// slug makes a query name filesystem-safe.
func slug(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_', r == '.':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "query"
	}
	return b.String()
}
