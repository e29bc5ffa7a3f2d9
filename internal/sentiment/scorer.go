// Package sentiment scores news text with a keyword lexicon. Deterministic
// and offline — no model or service dependency — which keeps scoring
// reproducible across invocations.
package sentiment

import (
	"math"
	"strings"

	"github.com/fintellect/fintellect/pkg/models"
)

// bullish / bearish keyword dictionaries (lowercase).
var bullishWords = map[string]float64{
	"bullish": 0.7, "rally": 0.6, "surge": 0.7, "soar": 0.7, "upbeat": 0.5,
	"positive": 0.4, "growth": 0.4, "upgrade": 0.6, "outperform": 0.6,
	"buy": 0.5, "strong": 0.4, "recovery": 0.5, "breakout": 0.6,
	"record high": 0.7, "all-time high": 0.7, "beat": 0.5, "beats": 0.5,
	"exceeds": 0.5, "expansion": 0.4, "profit": 0.3, "dividend": 0.4,
	"gains": 0.4, "jumps": 0.5, "accumulate": 0.5,
}

var bearishWords = map[string]float64{
	"bearish": 0.7, "crash": 0.8, "plunge": 0.7, "slump": 0.6, "tumble": 0.6,
	"negative": 0.4, "downgrade": 0.6, "underperform": 0.6,
	"sell": 0.5, "weak": 0.4, "decline": 0.5, "loss": 0.4, "losses": 0.4,
	"selloff": 0.7, "fall": 0.4, "falls": 0.4, "correction": 0.5,
	"default": 0.7, "fraud": 0.8, "scam": 0.8, "investigation": 0.5,
	"lawsuit": 0.5, "miss": 0.5, "misses": 0.5, "warning": 0.5, "concern": 0.3,
	"layoff": 0.6, "layoffs": 0.6, "recall": 0.4,
}

// Label thresholds: polarity within (-0.1, +0.1) is neutral.
const neutralBand = 0.1

// Score returns a polarity in [-1, 1] and a confidence in [0, 1] for the
// given text. Zero polarity with low confidence means "no signal".
func Score(text string) (polarity float64, confidence float64) {
	lower := strings.ToLower(text)

	bullScore := 0.0
	bearScore := 0.0
	matches := 0

	for word, weight := range bullishWords {
		if strings.Contains(lower, word) {
			bullScore += weight
			matches++
		}
	}
	for word, weight := range bearishWords {
		if strings.Contains(lower, word) {
			bearScore += weight
			matches++
		}
	}

	if matches == 0 {
		return 0, 0.1
	}

	total := bullScore + bearScore
	if total == 0 {
		return 0, 0.1
	}

	polarity = (bullScore - bearScore) / total
	confidence = math.Min(float64(matches)*0.15+0.2, 0.85)
	return polarity, confidence
}

// Classify maps a polarity to a sentiment label using the neutral band.
func Classify(polarity float64) models.SentimentLabel {
	switch {
	case polarity > neutralBand:
		return models.SentimentPositive
	case polarity < -neutralBand:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// Annotate scores an article in place from its title and summary, or the
// scraped content when available.
func Annotate(a *models.Article) {
	text := a.Title
	if a.Content != "" {
		text += " " + a.Content
	} else if a.Summary != "" {
		text += " " + a.Summary
	}

	polarity, _ := Score(text)
	a.SentimentScore = polarity
	a.Sentiment = Classify(polarity)
}
