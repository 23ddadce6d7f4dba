package util

import (
	"net/url"
	"strings"
)

// CandidateURL turns a search result href into an absolute http(s) URL.
// Search engine redirect wrappers (Google /url?q=, DuckDuckGo uddg=) are
// unwrapped and relative links resolved against base. Links that stay on the
// engine itself are dropped, as is anything that is not a fetchable page
// link; both yield "". The kept URL is the href as extracted, minus its
// fragment.
func CandidateURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base != nil {
		u = base.ResolveReference(u)
	}

	if isEngineHost(base, u.Host) {
		q := u.Query()
		switch {
		case u.Path == "/url" && q.Get("q") != "":
			return CandidateURL(nil, q.Get("q"))
		case u.Path == "/url" && q.Get("url") != "":
			return CandidateURL(nil, q.Get("url"))
		case q.Get("uddg") != "":
			return CandidateURL(nil, q.Get("uddg"))
		}
		// result paging, image tabs, cached copies: the engine's own pages
		return ""
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	if u.Host == "" {
		return ""
	}
	u.Fragment = ""
	u.RawFragment = ""
	return u.String()
}

func isEngineHost(base *url.URL, host string) bool {
	host = strings.ToLower(host)
	if base != nil && host == strings.ToLower(base.Host) {
		return true
	}
	return strings.Contains(host, "google.") || strings.Contains(host, "duckduckgo.")
}

// HostOf returns the lower-cased host of raw without a leading "www.".
func HostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}

// HostMatches reports whether host is one of domains or a subdomain of one.
func HostMatches(host string, domains []string) bool {
	for _, d := range domains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}
