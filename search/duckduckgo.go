// Package search implements the assistant's nutrition web search. It scrapes
// the DuckDuckGo HTML endpoint, which needs no API key, and caches formatted
// results in the store so repeat lookups for common foods stay local.
package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"bitebook/config"
	"bitebook/store"
)

const (
	searchEndpoint = "https://html.duckduckgo.com/html/"
	maxResults     = 5
	requestTimeout = 15 * time.Second

	// The endpoint serves a captcha to clients without a browser-ish agent.
	userAgent = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15"
)

var (
	resultPattern  = regexp.MustCompile(`(?s)<a[^>]*class="result__a"[^>]*>(.*?)</a>.*?<a[^>]*class="result__snippet"[^>]*>(.*?)</a>`)
	snippetPattern = regexp.MustCompile(`(?s)class="result__snippet"[^>]*>(.*?)</(?:a|td|div)>`)
	tagPattern     = regexp.MustCompile(`<[^>]*>`)
	spacePattern   = regexp.MustCompile(`\s+`)
)

type result struct {
	title   string
	snippet string
}

// Client is a caching DuckDuckGo search client.
type Client struct {
	store      *store.Store
	httpClient *http.Client
}

func NewClient(st *store.Store) *Client {
	return &Client{
		store:      st,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// Search returns formatted results for query, serving from cache when fresh.
// Network failures degrade to a friendly fallback string so the model can
// still answer from its own knowledge; only the context error propagates.
func (c *Client) Search(ctx context.Context, query string) (string, error) {
	if cached, ok, err := c.store.CachedSearch(query); err == nil && ok {
		return cached, nil
	}

	results, err := c.fetch(ctx, query)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if config.DebugLog != nil {
			config.DebugLog.Printf("search: %q failed: %v", query, err)
		}
		return fmt.Sprintf("Could not search for %q. Please estimate the calorie count based on your knowledge.", query), nil
	}

	if len(results) == 0 {
		return fmt.Sprintf("No search results found for %q.", query), nil
	}

	if len(results) > maxResults {
		results = results[:maxResults]
	}
	parts := make([]string, len(results))
	for i, r := range results {
		parts[i] = r.title + ": " + r.snippet
	}
	formatted := strings.Join(parts, "\n\n")

	if err := c.store.StoreSearch(query, formatted); err != nil && config.DebugLog != nil {
		config.DebugLog.Printf("search: caching %q failed: %v", query, err)
	}

	return formatted, nil
}

func (c *Client) fetch(ctx context.Context, query string) ([]result, error) {
	endpoint := searchEndpoint + "?q=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search request failed: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return parseResults(string(body)), nil
}

// parseResults extracts title/snippet pairs from the result page. When the
// primary pattern finds nothing it falls back to bare snippets.
func parseResults(html string) []result {
	var results []result

	for _, match := range resultPattern.FindAllStringSubmatch(html, -1) {
		title := stripHTML(match[1])
		snippet := stripHTML(match[2])
		if title != "" && snippet != "" {
			results = append(results, result{title: title, snippet: snippet})
		}
	}

	if len(results) == 0 {
		for _, match := range snippetPattern.FindAllStringSubmatch(html, -1) {
			snippet := stripHTML(match[1])
			if len(snippet) > 20 {
				results = append(results, result{title: "Search Result", snippet: snippet})
			}
		}
	}

	return results
}

func stripHTML(html string) string {
	text := tagPattern.ReplaceAllString(html, "")
	replacer := strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#x27;", "'",
		"&nbsp;", " ",
	)
	text = replacer.Replace(text)
	return strings.TrimSpace(spacePattern.ReplaceAllString(text, " "))
}
