package scrape

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"sitefinder/internal/config"
	"sitefinder/internal/scrape/util"

	"github.com/PuerkitoBio/goquery"
)

const (
	GoogleBaseURL     = "https://www.google.com"
	DuckDuckGoBaseURL = "https://html.duckduckgo.com"

	DefaultResultCount = 100
)

// Searcher returns candidate URLs for query, in result order.
type Searcher interface {
	Name() string
	Search(ctx context.Context, query string, n int) ([]string, error)
}

// NewSearcher builds the engine named in cfg.
func NewSearcher(cfg config.Config) (Searcher, error) {
	timeout := time.Duration(cfg.Search.TimeoutSeconds) * time.Second
	hc := &http.Client{Timeout: timeout}

	switch cfg.Search.Engine {
	case config.EngineGoogle, "":
		return NewGoogleSearch(cfg.Search.BaseURL, cfg.Search.UserAgent, hc), nil
	case config.EngineDuckDuckGo:
		return NewDuckDuckGoSearch(cfg.Search.BaseURL, cfg.Search.UserAgent, hc), nil
	default:
		return nil, fmt.Errorf("unknown search engine %q", cfg.Search.Engine)
	}
}

// GoogleSearch scrapes the classic HTML result page: every result sits in a
// ".g" container whose first link is the target.
type GoogleSearch struct {
	base      *url.URL
	userAgent string
	hc        *http.Client
}

func NewGoogleSearch(baseURL, userAgent string, hc *http.Client) *GoogleSearch {
	return &GoogleSearch{base: baseURLOr(baseURL, GoogleBaseURL), userAgent: userAgent, hc: hc}
}

func (g *GoogleSearch) Name() string { return "google" }

func (g *GoogleSearch) Search(ctx context.Context, query string, n int) ([]string, error) {
	if n <= 0 {
		n = DefaultResultCount
	}
	u := *g.base
	u.Path = strings.TrimRight(u.Path, "/") + "/search"
	params := url.Values{}
	params.Set("q", query)
	params.Set("num", strconv.Itoa(n))
	u.RawQuery = params.Encode()

	doc, err := fetchResultPage(ctx, g.hc, u.String(), g.userAgent)
	if err != nil {
		return nil, fmt.Errorf("google search %q: %w", query, err)
	}

	var out []string
	doc.Find(".g").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, ok := sel.Find("a[href]").First().Attr("href")
		if !ok {
			return true
		}
		if target := util.CandidateURL(g.base, href); target != "" {
			out = append(out, target)
		}
		return len(out) < n
	})

	log.Printf("[search:google] found=%d query=%q", len(out), query)
	return out, nil
}

// DuckDuckGoSearch scrapes the no-JS endpoint: <a class="result__a" href="...">.
type DuckDuckGoSearch struct {
	base      *url.URL
	userAgent string
	hc        *http.Client
}

func NewDuckDuckGoSearch(baseURL, userAgent string, hc *http.Client) *DuckDuckGoSearch {
	return &DuckDuckGoSearch{base: baseURLOr(baseURL, DuckDuckGoBaseURL), userAgent: userAgent, hc: hc}
}

func (d *DuckDuckGoSearch) Name() string { return "duckduckgo" }

// Search returns at most one result page; DDG has no result count parameter.
func (d *DuckDuckGoSearch) Search(ctx context.Context, query string, n int) ([]string, error) {
	if n <= 0 {
		n = DefaultResultCount
	}
	u := *d.base
	u.Path = strings.TrimRight(u.Path, "/") + "/html/"
	u.RawQuery = url.Values{"q": {query}}.Encode()

	doc, err := fetchResultPage(ctx, d.hc, u.String(), d.userAgent)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo search %q: %w", query, err)
	}

	var out []string
	doc.Find("a.result__a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, ok := a.Attr("href")
		if !ok {
			return true
		}
		if target := util.CandidateURL(d.base, href); target != "" {
			out = append(out, target)
		}
		return len(out) < n
	})

	log.Printf("[search:duckduckgo] found=%d query=%q", len(out), query)
	return out, nil
}

func fetchResultPage(ctx context.Context, hc *http.Client, rawURL, userAgent string) (*goquery.Document, error) {
	req, err := newPageRequest(ctx, rawURL, userAgent)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")

	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("status %s body=%q", resp.Status, string(b))
	}

	body, err := decodedBody(resp)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

func baseURLOr(raw, fallback string) *url.URL {
	if raw == "" {
		raw = fallback
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		u, _ = url.Parse(fallback)
	}
	return u
}
