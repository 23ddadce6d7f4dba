package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pageServer(t *testing.T, status int, contentType, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestValidatorCheck(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		company string
		want    Verdict
	}{
		{
			name:    "title match is case insensitive",
			status:  http.StatusOK,
			body:    `<html><head><title>ABC Corp - Home</title></head></html>`,
			company: "abc corp",
			want:    VerdictOfficial,
		},
		{
			name:    "description match",
			status:  http.StatusOK,
			body:    `<html><head><title>Home</title><meta name="description" content="Welcome to Alpha Finance, a registered NBFC"></head></html>`,
			company: "Alpha Finance",
			want:    VerdictOfficial,
		},
		{
			name:    "description name attribute case",
			status:  http.StatusOK,
			body:    `<html><head><meta name="Description" content="Beta Capital"></head></html>`,
			company: "beta capital",
			want:    VerdictOfficial,
		},
		{
			name:    "non-breaking spaces in title",
			status:  http.StatusOK,
			body:    `<html><head><title>Alpha&nbsp;Finance &nbsp; | Home</title></head></html>`,
			company: "Alpha Finance",
			want:    VerdictOfficial,
		},
		{
			name:    "neither title nor description",
			status:  http.StatusOK,
			body:    `<html><head><title>Top 10 NBFCs in India</title><meta name="description" content="a list"></head></html>`,
			company: "Gamma NBFC",
			want:    VerdictNotOfficial,
		},
		{
			name:    "no title no meta",
			status:  http.StatusOK,
			body:    `<html><body><p>Gamma NBFC</p></body></html>`,
			company: "Gamma NBFC",
			want:    VerdictNotOfficial,
		},
		{
			name:    "only 200 is accepted",
			status:  http.StatusCreated,
			body:    `<html><head><title>ABC Corp</title></head></html>`,
			company: "abc corp",
			want:    VerdictNotOfficial,
		},
		{
			name:    "not found",
			status:  http.StatusNotFound,
			body:    `<html><head><title>ABC Corp - 404</title></head></html>`,
			company: "abc corp",
			want:    VerdictNotOfficial,
		},
		{
			name:    "empty company never matches",
			status:  http.StatusOK,
			body:    `<html><head><title>Anything</title></head></html>`,
			company: "  ",
			want:    VerdictNotOfficial,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := pageServer(t, tt.status, "text/html; charset=utf-8", tt.body)
			v := NewValidator(srv.Client(), "test-agent", 0)

			got, err := v.Check(context.Background(), srv.URL, tt.company)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want == VerdictOfficial, v.IsOfficial(context.Background(), srv.URL, tt.company))
		})
	}
}

func TestValidatorDecodesDeclaredCharset(t *testing.T) {
	// "Café Finance" in windows-1252
	body := "<html><head><title>Caf\xe9 Finance Ltd</title></head></html>"
	srv := pageServer(t, http.StatusOK, "text/html; charset=windows-1252", body)

	v := NewValidator(srv.Client(), "", 0)
	assert.True(t, v.IsOfficial(context.Background(), srv.URL, "Café Finance"))
}

func TestValidatorDecodesMetaCharset(t *testing.T) {
	body := "<html><head><meta charset=\"iso-8859-1\"><title>Soci\xe9t\xe9 G\xe9n\xe9rale</title></head></html>"
	srv := pageServer(t, http.StatusOK, "text/html", body)

	v := NewValidator(srv.Client(), "", 0)
	assert.True(t, v.IsOfficial(context.Background(), srv.URL, "société générale"))
}

func TestValidatorFetchErrors(t *testing.T) {
	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		addr := srv.URL
		srv.Close()

		v := NewValidator(&http.Client{Timeout: time.Second}, "", 0)
		got, err := v.Check(context.Background(), addr, "abc")
		assert.Error(t, err)
		assert.Equal(t, VerdictFetchError, got)
		assert.False(t, v.IsOfficial(context.Background(), addr, "abc"))
	})

	t.Run("timeout", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(release)

		v := NewValidator(&http.Client{Timeout: 50 * time.Millisecond}, "", 0)
		got, err := v.Check(context.Background(), srv.URL, "abc")
		assert.Error(t, err)
		assert.Equal(t, VerdictFetchError, got)
	})

	t.Run("malformed url", func(t *testing.T) {
		v := NewValidator(nil, "", 0)
		assert.False(t, v.IsOfficial(context.Background(), "http://[::1", "abc"))
	})
}

func TestMatchesCompany(t *testing.T) {
	page := PageSummary{Title: "abc corp - home", Description: ""}
	assert.True(t, MatchesCompany(page, "ABC Corp"))
	assert.False(t, MatchesCompany(page, "xyz"))
	assert.False(t, MatchesCompany(page, ""))
}
