package config

import (
	"fmt"
	"net/url"
	"strings"
)

const MaxWorkers = 64

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy together with everything
// wrong with it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.ToLower(strings.TrimSpace(x))
			x = strings.TrimPrefix(x, "www.")
			if x == "" || seen[x] {
				continue
			}
			seen[x] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Search.Engine = strings.ToLower(strings.TrimSpace(out.Search.Engine))
	out.Search.BaseURL = strings.TrimRight(strings.TrimSpace(out.Search.BaseURL), "/")
	out.Search.UserAgent = strings.TrimSpace(out.Search.UserAgent)
	out.Search.SkipDomains = trimList(out.Search.SkipDomains)
	out.Export.SQLitePath = strings.TrimSpace(out.Export.SQLitePath)

	// search
	switch out.Search.Engine {
	case EngineGoogle, EngineDuckDuckGo:
	default:
		res.addErr("search.engine must be %q or %q, got %q", EngineGoogle, EngineDuckDuckGo, out.Search.Engine)
	}
	if out.Search.BaseURL != "" {
		u, err := url.Parse(out.Search.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			res.addErr("search.base_url must be an absolute http(s) url")
		}
	}
	if out.Search.ResultCount <= 0 {
		res.addErr("search.result_count must be > 0")
	} else if out.Search.ResultCount > 100 {
		res.addWarn("search.result_count is %d; search engines usually cap a page at 100 results.", out.Search.ResultCount)
	}
	if out.Search.UserAgent == "" {
		res.addWarn("search.user_agent is empty; search engines often reject requests without a browser user agent.")
	}
	if out.Search.TimeoutSeconds <= 0 {
		res.addErr("search.timeout_seconds must be > 0")
	}

	// validate
	if out.Validate.TimeoutSeconds <= 0 {
		res.addErr("validate.timeout_seconds must be > 0")
	} else if out.Validate.TimeoutSeconds > 60 {
		res.addWarn("validate.timeout_seconds is %d; one slow site can hold a worker that long.", out.Validate.TimeoutSeconds)
	}
	if out.Validate.MaxBodyBytes <= 0 {
		res.addErr("validate.max_body_bytes must be > 0")
	}

	// batch
	if out.Batch.Workers <= 0 || out.Batch.Workers > MaxWorkers {
		res.addErr("batch.workers must be 1..%d", MaxWorkers)
	} else if out.Batch.Workers > 32 {
		res.addWarn("batch.workers is %d; the search engine may throttle this many parallel queries.", out.Batch.Workers)
	}
	if out.Batch.Limit < 0 {
		res.addErr("batch.limit must be >= 0 (0 means every row)")
	}

	return out, res
}
