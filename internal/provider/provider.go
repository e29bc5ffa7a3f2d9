// Package provider defines the uniform adapter contract every data
// provider implements, the normalized result record, the validity gate
// that separates real data from placeholder responses, and a registry
// that keeps providers in fixed tier order.
package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/fintellect/fintellect/pkg/models"
)

// Provider is the uniform contract for one data source tier. Fetch takes a
// single candidate symbol and returns a normalized Result or an error.
// Implementations absorb all provider-specific response shapes; callers
// never see raw payloads.
type Provider interface {
	// Name returns the provider's short name, e.g. "finnhub".
	Name() string

	// Tier returns the provider's fixed priority (1 = highest). Tier
	// order is total and never reordered at runtime.
	Tier() int

	// Fetch retrieves data for one candidate symbol. A transport or
	// protocol failure is an error; a well-formed but empty payload is
	// returned as a Result that will fail Validate.
	Fetch(ctx context.Context, symbol string) (*Result, error)
}

// Result is the normalized payload from one provider for one symbol.
// It is owned by the fallback controller once produced and never mutated
// after validation.
type Result struct {
	Provider   string                      `json:"provider"`
	Tier       int                         `json:"tier"`
	Symbol     string                      `json:"symbol"`
	Company    *models.CompanyProfile      `json:"company,omitempty"`
	Statements *models.FinancialStatements `json:"statements,omitempty"`
	Articles   []models.Article            `json:"articles,omitempty"`
	FetchedAt  time.Time                   `json:"fetched_at"`

	// Warnings carries non-fatal adapter notes, e.g. a requested
	// enrichment that was unavailable. Never affects validity.
	Warnings []string `json:"warnings,omitempty"`
}

// ErrInvalidPayload marks a response that was syntactically well-formed
// but semantically empty — the provider's way of saying the symbol does
// not exist. Distinguished from transport failures in the attempt ledger.
type ErrInvalidPayload struct {
	Provider string
	Symbol   string
	Reason   string
}

func (e *ErrInvalidPayload) Error() string {
	return fmt.Sprintf("%s: invalid payload for %q: %s", e.Provider, e.Symbol, e.Reason)
}

// ErrNoData is returned by adapters when the provider answered but had
// nothing at all for the symbol (empty search result, no feed items).
type ErrNoData struct {
	Provider string
	Symbol   string
}

func (e *ErrNoData) Error() string {
	return fmt.Sprintf("%s: no data for %q", e.Provider, e.Symbol)
}
