// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package digest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-digest/internal/search"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

const pageTemplate = `<html><head><title>Papers</title></head><body>
<p id="updated">{{LAST_UPDATED}}</p>
<p id="query">{{QUERY_DESCRIPTION}}</p>
<main>{{PAPER_ITEMS}}</main>
</body></html>`

const threeEntryFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <title>First &amp; Foremost</title>
    <summary>One.</summary>
    <updated>2024-03-01T12:00:00Z</updated>
    <author><name>A. Author</name></author>
    <link href="http://arxiv.org/pdf/1" type="application/pdf"/>
  </entry>
  <entry>
    <title>Second</title>
    <updated>not-a-date</updated>
  </entry>
  <entry>
    <title>Third</title>
    <updated>2024-02-28T09:00:00Z</updated>
  </entry>
</feed>`

// redirectTransport sends every request to the test server, keeping the
// path and query of the original URL.
type redirectTransport struct {
	target *url.URL
	seen   atomic.Value
}

func (rt *redirectTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	rt.seen.Store(req.URL.String())
	r := req.Clone(req.Context())
	r.URL.Scheme = rt.target.Scheme
	r.URL.Host = rt.target.Host
	r.Host = rt.target.Host
	return http.DefaultTransport.RoundTrip(r)
}

func newFetcher(t *testing.T, handler http.HandlerFunc) (*search.Fetcher, *redirectTransport) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	target, err := url.Parse(ts.URL)
	require.NoError(t, err)
	rt := &redirectTransport{target: target}
	return &search.Fetcher{
		Client:    &http.Client{Transport: rt, Timeout: 5 * time.Second},
		UserAgent: "digest-test/0.1",
	}, rt
}

func testConfig(t *testing.T) types.DigestConfig {
	t.Helper()
	dir := t.TempDir()
	cfg := types.DefaultDigestConfig()
	cfg.Keywords = []string{"causal+inference", "<b>bold</b>"}
	cfg.MaxResults = 3
	cfg.TemplatePath = filepath.Join(dir, "arxiv_template.html")
	cfg.OutputPath = filepath.Join(dir, "arxiv.html")
	require.NoError(t, os.WriteFile(cfg.TemplatePath, []byte(pageTemplate), 0o644))
	return cfg
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRun_EndToEnd(t *testing.T) {
	cfg := testConfig(t)
	fetcher, rt := newFetcher(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, threeEntryFeed)
	})
	now := time.Date(2024, 3, 2, 8, 15, 42, 0, time.UTC)

	res, err := Run(context.Background(), cfg, fetcher, now, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Papers)
	assert.Equal(t, cfg.OutputPath, res.OutputPath)
	assert.Equal(t, search.BuildQueryURL(cfg.Keywords, 3), res.URL)
	assert.Equal(t, res.URL, rt.seen.Load())

	data, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)
	out := string(data)

	for _, tok := range []string{"{{PAPER_ITEMS}}", "{{LAST_UPDATED}}", "{{QUERY_DESCRIPTION}}"} {
		assert.NotContains(t, out, tok)
	}
	assert.Contains(t, out, `<p id="updated">2024-03-02 08:15 UTC</p>`)
	assert.Contains(t, out, `<p id="query">causal+inference, &lt;b&gt;bold&lt;/b&gt;</p>`)
	assert.Contains(t, out, "First &amp; Foremost")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
	require.NoError(t, err)
	cards := doc.Find("main article.paper-card")
	require.Equal(t, 3, cards.Length())
	assert.Equal(t, "2024-03-01", cards.Eq(0).Find(".paper-date").Text())
	assert.Equal(t, "not-a-date", cards.Eq(1).Find(".paper-date").Text())
	assert.Equal(t, "Unknown authors", cards.Eq(2).Find(".paper-authors").Text())
}

func TestRun_EmptyFeed(t *testing.T) {
	cfg := testConfig(t)
	fetcher, _ := newFetcher(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<feed xmlns="http://www.w3.org/2005/Atom"></feed>`)
	})

	res, err := Run(context.Background(), cfg, fetcher, time.Now(), quietLogger())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Papers)

	data, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "No papers were returned from the arXiv API")
	assert.NotContains(t, string(data), "paper-card")
}

func TestRun_FatalErrorsKeepPreviousPage(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		errMsg  string
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			errMsg: "HTTP 500",
		},
		{
			name: "malformed feed",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, `<feed xmlns="http://www.w3.org/2005/Atom"><entry>`)
			},
			errMsg: "parsing arXiv feed",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			previous := []byte("<html>last good page</html>")
			require.NoError(t, os.WriteFile(cfg.OutputPath, previous, 0o644))

			fetcher, _ := newFetcher(t, tt.handler)
			_, err := Run(context.Background(), cfg, fetcher, time.Now(), quietLogger())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)

			data, err := os.ReadFile(cfg.OutputPath)
			require.NoError(t, err)
			assert.Equal(t, previous, data)
		})
	}
}

func TestRun_MissingTemplateSkipsFetch(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.Remove(cfg.TemplatePath))

	var calls int32
	fetcher, _ := newFetcher(t, func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
	})

	_, err := Run(context.Background(), cfg, fetcher, time.Now(), quietLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading template")
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	assert.NoFileExists(t, cfg.OutputPath)
}

func TestRun_LogsWarnings(t *testing.T) {
	cfg := testConfig(t)
	cfg.Keywords = nil
	fetcher, _ := newFetcher(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body>maintenance</body></html>`)
	})

	var logs bytes.Buffer
	res, err := Run(context.Background(), cfg, fetcher, time.Now(), slog.New(slog.NewTextHandler(&logs, nil)))
	require.NoError(t, err)
	assert.Equal(t, 0, res.Papers)
	assert.Contains(t, logs.String(), "no keywords configured")
	assert.Contains(t, logs.String(), "does not look like an Atom feed")
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site", "arxiv.html")

	require.NoError(t, WriteFileAtomic(path, []byte("v1")))
	require.NoError(t, WriteFileAtomic(path, []byte("v2")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files should not be left behind")
}
