package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fintellect/fintellect/internal/provider"
)

func TestFetchQuoteWithProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/v7/finance/quote":
			w.Write([]byte(`{"quoteResponse":{"result":[{
				"symbol":"AAPL","longName":"Apple Inc.","currency":"USD",
				"fullExchangeName":"NasdaqGS","regularMarketPrice":229.5,
				"regularMarketChange":1.2,"regularMarketChangePercent":0.53,
				"marketCap":3400000000000,"trailingPE":35.2,"epsTrailingTwelveMonths":6.52
			}]}}`))
		case strings.HasPrefix(r.URL.Path, "/v10/finance/quoteSummary/"):
			w.Write([]byte(`{"quoteSummary":{"result":[{"assetProfile":{
				"sector":"Technology","industry":"Consumer Electronics",
				"country":"United States","website":"https://www.apple.com"
			}}]}}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	p := New(3)
	p.BaseURL = srv.URL

	res, err := p.Fetch(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	c := res.Company
	if c.Name != "Apple Inc." || c.Price != 229.5 {
		t.Errorf("company = %+v", c)
	}
	if c.Sector != "Technology" || c.Website != "https://www.apple.com" {
		t.Errorf("profile enrichment missing: %+v", c)
	}
	if err := provider.Validate(res); err != nil {
		t.Errorf("expected valid payload, got %v", err)
	}
}

func TestFetchSurvivesProfileFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v7/finance/quote" {
			w.Write([]byte(`{"quoteResponse":{"result":[{"symbol":"AAPL","shortName":"Apple","regularMarketPrice":229.5}]}}`))
			return
		}
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	p := New(3)
	p.BaseURL = srv.URL

	res, err := p.Fetch(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if res.Company.Name != "Apple" {
		t.Errorf("name = %q, want shortName fallback", res.Company.Name)
	}
	if res.Company.Sector != "" {
		t.Errorf("sector = %q, want empty when profile fails", res.Company.Sector)
	}
}

func TestFetchEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quoteResponse":{"result":[]}}`))
	}))
	defer srv.Close()

	p := New(3)
	p.BaseURL = srv.URL

	if _, err := p.Fetch(context.Background(), "ZZZZZZ"); err == nil {
		t.Fatal("expected error for empty quote result")
	}
}

func TestNewsFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/finance/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"news":[
			{"title":"Apple announces new products","link":"https://y.example/1","publisher":"Yahoo Finance","providerPublishTime":1755600000},
			{"title":"","link":"https://y.example/2"}
		]}`))
	}))
	defer srv.Close()

	p := NewNews(2)
	p.BaseURL = srv.URL

	res, err := p.Fetch(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(res.Articles) != 1 {
		t.Fatalf("got %d articles, want 1", len(res.Articles))
	}
	if res.Articles[0].Source != "Yahoo Finance" {
		t.Errorf("source = %q", res.Articles[0].Source)
	}
	if res.Articles[0].PublishedAt.IsZero() {
		t.Error("published time not mapped")
	}
}

func TestNewsCapped(t *testing.T) {
	var b strings.Builder
	b.WriteString(`{"news":[`)
	for i := 0; i < 20; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(`{"title":"Recurring market headline number `)
		b.WriteString(strings.Repeat("x", i+1))
		b.WriteString(`","link":"https://y.example"}`)
	}
	b.WriteString(`]}`)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(b.String()))
	}))
	defer srv.Close()

	p := NewNews(2)
	p.BaseURL = srv.URL

	res, err := p.Fetch(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(res.Articles) != maxNewsItems {
		t.Errorf("got %d articles, want cap of %d", len(res.Articles), maxNewsItems)
	}
}
