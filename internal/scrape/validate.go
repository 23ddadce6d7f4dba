package scrape

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"sitefinder/internal/config"
	"sitefinder/internal/scrape/util"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"
)

type Verdict int

const (
	VerdictNotOfficial Verdict = iota
	VerdictOfficial
	VerdictFetchError
)

func (v Verdict) String() string {
	switch v {
	case VerdictOfficial:
		return "official"
	case VerdictNotOfficial:
		return "not_official"
	case VerdictFetchError:
		return "fetch_error"
	default:
		return "unknown"
	}
}

// PageSummary is the part of a page the verdict is based on, lower-cased
// with whitespace collapsed.
type PageSummary struct {
	Title       string
	Description string
}

// Validator decides whether a candidate page is a company's own site.
type Validator struct {
	hc           *http.Client
	userAgent    string
	maxBodyBytes int64
}

func NewValidator(hc *http.Client, userAgent string, maxBodyBytes int64) *Validator {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = 5 << 20
	}
	return &Validator{hc: hc, userAgent: userAgent, maxBodyBytes: maxBodyBytes}
}

func NewValidatorFromConfig(cfg config.Config) *Validator {
	hc := &http.Client{Timeout: time.Duration(cfg.Validate.TimeoutSeconds) * time.Second}
	return NewValidator(hc, cfg.Search.UserAgent, cfg.Validate.MaxBodyBytes)
}

// IsOfficial collapses Check to a bool; fetch errors count as false.
func (v *Validator) IsOfficial(ctx context.Context, rawURL, company string) bool {
	verdict, err := v.Check(ctx, rawURL, company)
	if err != nil {
		log.Printf("[validate] error url=%s company=%q err=%v", rawURL, company, err)
	}
	return verdict == VerdictOfficial
}

// Check fetches rawURL and matches company against its title and meta
// description. A non-nil error is always paired with VerdictFetchError.
func (v *Validator) Check(ctx context.Context, rawURL, company string) (Verdict, error) {
	needle := strings.ToLower(strings.TrimSpace(company))
	if needle == "" {
		return VerdictNotOfficial, nil
	}

	page, status, err := v.fetchSummary(ctx, rawURL)
	if err != nil {
		return VerdictFetchError, err
	}
	if status != http.StatusOK {
		return VerdictNotOfficial, nil
	}
	if MatchesCompany(page, needle) {
		return VerdictOfficial, nil
	}
	return VerdictNotOfficial, nil
}

// MatchesCompany reports whether the lower-cased company name occurs in the
// page title or description.
func MatchesCompany(page PageSummary, company string) bool {
	needle := strings.ToLower(company)
	if needle == "" {
		return false
	}
	return strings.Contains(page.Title, needle) || strings.Contains(page.Description, needle)
}

func (v *Validator) fetchSummary(ctx context.Context, rawURL string) (PageSummary, int, error) {
	req, err := newPageRequest(ctx, rawURL, v.userAgent)
	if err != nil {
		return PageSummary{}, 0, fmt.Errorf("build request: %w", err)
	}

	resp, err := v.hc.Do(req)
	if err != nil {
		return PageSummary{}, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return PageSummary{}, resp.StatusCode, nil
	}

	// charset.NewReader honors the Content-Type charset, a BOM, or a <meta>
	// declaration, falling back to windows-1252 sniffing.
	body, err := charset.NewReader(io.LimitReader(resp.Body, v.maxBodyBytes), resp.Header.Get("Content-Type"))
	if err != nil {
		return PageSummary{}, resp.StatusCode, fmt.Errorf("detect charset: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return PageSummary{}, resp.StatusCode, fmt.Errorf("parse html: %w", err)
	}
	return summarize(doc), resp.StatusCode, nil
}

func summarize(doc *goquery.Document) PageSummary {
	var page PageSummary
	page.Title = strings.ToLower(util.CleanText(doc.Find("title").First().Text()))

	doc.Find("meta[name]").EachWithBreak(func(_ int, m *goquery.Selection) bool {
		name, _ := m.Attr("name")
		if !strings.EqualFold(strings.TrimSpace(name), "description") {
			return true
		}
		content, _ := m.Attr("content")
		page.Description = strings.ToLower(util.CleanText(content))
		return false
	})
	return page
}
