// Package scrape extracts readable content from news article pages.
// Scraping is best-effort by contract: any failure means the caller keeps
// the provider-supplied summary instead. Never fatal.
package scrape

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/fintellect/fintellect/internal/infra"
)

// maxContentChars bounds extracted text so envelopes stay small.
const maxContentChars = 4000

// Content is the extracted portion of an article page.
type Content struct {
	Text        string
	Author      string
	PublishedAt time.Time
}

// Scrape fetches a page and extracts body text, author, and publication
// date. Returns an error when the page yields no usable text.
func Scrape(ctx context.Context, url string) (*Content, error) {
	body, err := infra.DoGet(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch article: %w", err)
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse article HTML: %w", err)
	}

	c := &Content{
		Text:        extractText(doc),
		Author:      extractAuthor(doc),
		PublishedAt: extractPublished(doc),
	}
	if c.Text == "" {
		return nil, fmt.Errorf("no article text found at %s", url)
	}
	return c, nil
}

// StripTags flattens an HTML fragment (e.g. an RSS description) to plain
// text. Returns the input unchanged if it does not parse.
func StripTags(fragment string) string {
	if fragment == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + fragment + "</body>"))
	if err != nil {
		return fragment
	}
	return strings.TrimSpace(doc.Text())
}

// extractText gathers paragraph text, preferring article/main containers
// over the whole page to dodge navigation and footer noise.
func extractText(doc *goquery.Document) string {
	var sb strings.Builder
	scopes := []string{"article p", "main p", "div.article-body p", "p"}
	for _, scope := range scopes {
		doc.Find(scope).Each(func(_ int, s *goquery.Selection) {
			if sb.Len() >= maxContentChars {
				return
			}
			text := strings.TrimSpace(s.Text())
			// Skip boilerplate fragments.
			if len(text) < 40 {
				return
			}
			sb.WriteString(text)
			sb.WriteString("\n")
		})
		if sb.Len() > 0 {
			break
		}
	}

	text := strings.TrimSpace(sb.String())
	if len(text) > maxContentChars {
		text = text[:maxContentChars]
	}
	return text
}

func extractAuthor(doc *goquery.Document) string {
	selectors := []string{
		`meta[name="author"]`,
		`meta[property="article:author"]`,
	}
	for _, sel := range selectors {
		if v, ok := doc.Find(sel).Attr("content"); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return strings.TrimSpace(doc.Find(`[rel="author"]`).First().Text())
}

func extractPublished(doc *goquery.Document) time.Time {
	selectors := []string{
		`meta[property="article:published_time"]`,
		`meta[name="pubdate"]`,
		`meta[name="date"]`,
	}
	for _, sel := range selectors {
		v, ok := doc.Find(sel).Attr("content")
		if !ok {
			continue
		}
		if ts, err := parseDate(strings.TrimSpace(v)); err == nil {
			return ts
		}
	}
	if v, ok := doc.Find("time[datetime]").Attr("datetime"); ok {
		if ts, err := parseDate(strings.TrimSpace(v)); err == nil {
			return ts
		}
	}
	return time.Time{}
}

func parseDate(v string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, v); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", v)
}
