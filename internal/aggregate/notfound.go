package aggregate

import (
	"context"
	"fmt"
	"time"

	"github.com/fintellect/fintellect/internal/resolver"
	"github.com/fintellect/fintellect/pkg/models"
)

// Reason classifies why a query exhausted every tier.
type Reason string

const (
	// ReasonMisspelling: no mapping hit; the name probably is not one we
	// or any provider recognizes as written.
	ReasonMisspelling Reason = "possible-misspelling"
	// ReasonDelisted: a provider echoed the symbol but with placeholder
	// data, the signature of a delisted or shell entity.
	ReasonDelisted Reason = "possibly-delisted"
	// ReasonUnsupportedMarket: known name, no junk payloads seen — the
	// listing is likely on a market no configured tier covers.
	ReasonUnsupportedMarket Reason = "unsupported-market"
	// ReasonUnreachable: every tier failed at the transport level; says
	// nothing about the company at all.
	ReasonUnreachable Reason = "providers-unreachable"
)

// NotFoundError is the only error that reaches the caller: total
// exhaustion, with enough diagnostics to act on.
type NotFoundError struct {
	Query       string
	Reason      Reason
	Suggestions []models.SymbolSuggestion
	Attempts    []Attempt
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no provider returned valid data for %q (%s)", e.Query, e.Reason)
}

// Hints returns actionable next steps for the user, tuned to the reason.
func (e *NotFoundError) Hints() []string {
	hints := []string{}
	switch e.Reason {
	case ReasonMisspelling:
		hints = append(hints,
			"check the spelling of the company name",
			"try the exchange ticker symbol directly (e.g. AAPL, TSLA)")
	case ReasonDelisted:
		hints = append(hints,
			"verify the company is still publicly listed",
			"try the exchange ticker symbol directly")
	case ReasonUnsupportedMarket:
		hints = append(hints,
			"verify which exchange the company is listed on",
			"try an exchange-qualified symbol (e.g. TATAMOTORS.NS)")
	case ReasonUnreachable:
		hints = append(hints,
			"check network connectivity",
			"verify provider API keys are configured (fintellect status)")
	}
	for _, s := range e.Suggestions {
		hints = append(hints, fmt.Sprintf("did you mean %s (%s)?", s.Name, s.Symbol))
	}
	return hints
}

// notFound builds the terminal error for an exhausted query, classifying
// the reason from the attempt ledger and attaching suggestions when a
// suggester is configured.
func (c *Controller) notFound(ctx context.Context, query string, candidates []resolver.Candidate, attempts []Attempt) error {
	e := &NotFoundError{
		Query:    query,
		Attempts: attempts,
		Reason:   classifyExhaustion(candidates, attempts),
	}

	if c.suggester != nil {
		sctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if sugg, err := c.suggester.Suggest(sctx, query); err == nil && len(sugg) > 0 {
			if len(sugg) > 3 {
				sugg = sugg[:3]
			}
			e.Suggestions = sugg
		}
	}
	return e
}

func classifyExhaustion(candidates []resolver.Candidate, attempts []Attempt) Reason {
	sawInvalid := false
	sawReachable := false
	for _, a := range attempts {
		switch a.Outcome {
		case OutcomeInvalid:
			sawInvalid = true
			sawReachable = true
		case OutcomeOK:
			sawReachable = true
		}
	}
	if !sawReachable {
		return ReasonUnreachable
	}

	// A table hit means the name is known; heuristic-only candidates
	// suggest the user typed something no mapping recognizes.
	tableHit := false
	for _, c := range candidates {
		if c.Market != resolver.MarketUnknown {
			tableHit = true
			break
		}
	}
	switch {
	case !tableHit:
		return ReasonMisspelling
	case sawInvalid:
		return ReasonDelisted
	default:
		return ReasonUnsupportedMarket
	}
}
