// Package models defines the core data structures shared across FinTellect:
// news articles, company profiles, and financial statements.
package models

import "time"

// SentimentLabel classifies the tone of an article.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentNegative SentimentLabel = "negative"
)

// Article represents a single news article, normalized across providers.
// PublishedAt is the zero time when the provider supplied no parseable date.
type Article struct {
	Title          string         `json:"title"`
	URL            string         `json:"url"`
	Source         string         `json:"source"`
	Summary        string         `json:"summary,omitempty"`
	Content        string         `json:"content,omitempty"`
	Author         string         `json:"author,omitempty"`
	PublishedAt    time.Time      `json:"published_at,omitzero"`
	Sentiment      SentimentLabel `json:"sentiment"`
	SentimentScore float64        `json:"sentiment_score"` // -1.0 (bearish) .. +1.0 (bullish)
	Relevance      float64        `json:"relevance,omitempty"`
}

// SentimentSummary aggregates sentiment across a set of articles.
type SentimentSummary struct {
	Positive      int     `json:"positive"`
	Negative      int     `json:"negative"`
	Neutral       int     `json:"neutral"`
	AverageScore  float64 `json:"average_sentiment"`
	TotalArticles int     `json:"total_articles"`
}

// SummarizeSentiment computes counts and the average score over articles.
func SummarizeSentiment(articles []Article) SentimentSummary {
	s := SentimentSummary{TotalArticles: len(articles)}
	if len(articles) == 0 {
		return s
	}
	sum := 0.0
	for _, a := range articles {
		switch a.Sentiment {
		case SentimentPositive:
			s.Positive++
		case SentimentNegative:
			s.Negative++
		default:
			s.Neutral++
		}
		sum += a.SentimentScore
	}
	s.AverageScore = sum / float64(len(articles))
	return s
}
