package util

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeCompanyName(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"ABC Ltd.", "ABC"},
		{"X (Y) [Z]", "X Y Z"},
		{"Alpha Finance Ltd", "Alpha Finance"},
		{"Beta Capital Limited", "Beta Capital"},
		{"*Gamma* {NBFC}", "Gamma NBFC"},
		{"Ltdx Holdings", "Ltdx Holdings"},
		{"Private limited", "Private limited"},
		{"  spaced   out  ", "spaced out"},
		{"", ""},
		{nil, ""},
		{42, ""},
		{3.14, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeCompanyName(tt.in), "input %#v", tt.in)
	}
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "a b c", CleanText(" a  b\n\tc "))
	assert.Equal(t, "Alpha Finance", CleanText("Alpha\u00a0Finance\u00a0"))
}

func TestCandidateURL(t *testing.T) {
	google, _ := url.Parse("https://www.google.com/search?q=x")
	ddg, _ := url.Parse("https://html.duckduckgo.com/html/?q=x")

	tests := []struct {
		name string
		base *url.URL
		href string
		want string
	}{
		{"absolute", google, "https://Alpha.com/about", "https://Alpha.com/about"},
		{"google redirect", google, "/url?q=https://alpha.com/&sa=U&ved=abc", "https://alpha.com/"},
		{"ddg redirect", ddg, "//duckduckgo.com/l/?uddg=https%3A%2F%2Fbeta.in%2F&rut=1", "https://beta.in/"},
		{"query kept as extracted", nil, "https://alpha.com/?utm_source=g&b=2&a=1", "https://alpha.com/?utm_source=g&b=2&a=1"},
		{"fragment dropped", nil, "https://alpha.com/#top", "https://alpha.com/"},
		{"google paging link", google, "/search?q=more&start=10", ""},
		{"google absolute self link", google, "https://www.google.com/search?q=more", ""},
		{"other google host", google, "https://maps.google.com/?q=alpha", ""},
		{"ddg self link", ddg, "/html/?q=more&s=30", ""},
		{"redirect to an engine page", google, "/url?q=https://www.google.com/search%3Fq%3Dx", ""},
		{"foreign /url path kept", google, "https://alpha.com/url?q=https://evil.com", "https://alpha.com/url?q=https://evil.com"},
		{"javascript", google, "javascript:void(0)", ""},
		{"mailto", nil, "mailto:info@alpha.com", ""},
		{"anchor only", google, "#", ""},
		{"empty", google, "  ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CandidateURL(tt.base, tt.href))
		})
	}
}

func TestHostMatches(t *testing.T) {
	skip := []string{"wikipedia.org", "zaubacorp.com"}

	assert.Equal(t, "en.wikipedia.org", HostOf("https://en.wikipedia.org/wiki/X"))
	assert.Equal(t, "alpha.com", HostOf("https://WWW.alpha.com:443/"))
	assert.Equal(t, "", HostOf("not a url"))

	assert.True(t, HostMatches("en.wikipedia.org", skip))
	assert.True(t, HostMatches("zaubacorp.com", skip))
	assert.False(t, HostMatches("notwikipedia.org", skip))
	assert.False(t, HostMatches("alpha.com", nil))
}
