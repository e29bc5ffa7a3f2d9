package sentiment

import (
	"testing"

	"github.com/fintellect/fintellect/pkg/models"
)

func TestScoreBullish(t *testing.T) {
	polarity, confidence := Score("Shares surge after earnings beat, analysts upgrade to buy")
	if polarity <= 0 {
		t.Errorf("polarity = %v, want > 0 for bullish headline", polarity)
	}
	if confidence <= 0.1 {
		t.Errorf("confidence = %v, want above no-signal floor", confidence)
	}
}

func TestScoreBearish(t *testing.T) {
	polarity, _ := Score("Stock plunges amid fraud investigation, analysts downgrade")
	if polarity >= 0 {
		t.Errorf("polarity = %v, want < 0 for bearish headline", polarity)
	}
}

func TestScoreNoSignal(t *testing.T) {
	polarity, confidence := Score("Quarterly report scheduled for Tuesday")
	if polarity != 0 {
		t.Errorf("polarity = %v, want 0 for neutral text", polarity)
	}
	if confidence != 0.1 {
		t.Errorf("confidence = %v, want 0.1 no-signal floor", confidence)
	}
}

func TestScoreBounds(t *testing.T) {
	texts := []string{
		"surge rally breakout record high beats exceeds strong growth profit",
		"crash plunge slump selloff fraud scam default decline loss warning",
	}
	for _, text := range texts {
		polarity, _ := Score(text)
		if polarity < -1 || polarity > 1 {
			t.Errorf("Score(%q) polarity %v out of [-1,1]", text, polarity)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		polarity float64
		want     models.SentimentLabel
	}{
		{0.5, models.SentimentPositive},
		{0.11, models.SentimentPositive},
		{0.1, models.SentimentNeutral},
		{0, models.SentimentNeutral},
		{-0.1, models.SentimentNeutral},
		{-0.11, models.SentimentNegative},
		{-0.9, models.SentimentNegative},
	}
	for _, tt := range tests {
		if got := Classify(tt.polarity); got != tt.want {
			t.Errorf("Classify(%v) = %q, want %q", tt.polarity, got, tt.want)
		}
	}
}

func TestAnnotatePrefersContent(t *testing.T) {
	a := models.Article{
		Title:   "Quarterly update",
		Summary: "Stock crashes amid fraud probe",
		Content: "The company reported record high profit and strong growth this quarter.",
	}
	Annotate(&a)
	if a.Sentiment != models.SentimentPositive {
		t.Errorf("sentiment = %q, want positive (content should outweigh summary)", a.Sentiment)
	}
}

func TestAnnotateFallsBackToSummary(t *testing.T) {
	a := models.Article{
		Title:   "Market update",
		Summary: "Shares plunge on weak demand warning",
	}
	Annotate(&a)
	if a.Sentiment != models.SentimentNegative {
		t.Errorf("sentiment = %q, want negative from summary", a.Sentiment)
	}
	if a.SentimentScore >= 0 {
		t.Errorf("score = %v, want negative", a.SentimentScore)
	}
}
