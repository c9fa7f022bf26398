package extract

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/panorama-labs/survey-engine/internal/config"
	"github.com/panorama-labs/survey-engine/pkg/firecrawl"
	"github.com/panorama-labs/survey-engine/pkg/jina"
)

const (
	fetchUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"

	// Settle delay after the render's content-loaded signal, in ms.
	renderSettleMS = 2000

	maxResponseBytes = 5 << 20
)

// Page is a fetched page in whatever forms the fetch strategy produced.
// Markdown is only present after a render or reader fetch.
type Page struct {
	URL      string
	HTML     string
	Markdown string
	Rendered bool
}

// Fetcher retrieves event pages, choosing between plain HTTP and headless
// rendering per URL. Known JS-rendered ticketing platforms go straight to
// the renderer; everything else gets a plain fetch first and escalates only
// when the response looks like an unhydrated app shell.
type Fetcher struct {
	http    *http.Client
	render  firecrawl.Client
	reader  jina.Client
	limiter *rate.Limiter
	cfg     config.ExtractConfig
}

// NewFetcher builds a Fetcher. render may be nil, in which case JS-rendered
// pages degrade to whatever the plain fetch returned. reader may be nil.
func NewFetcher(render firecrawl.Client, reader jina.Client, cfg config.ExtractConfig) *Fetcher {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}
	return &Fetcher{
		http:    &http.Client{Timeout: cfg.FetchTimeout()},
		render:  render,
		reader:  reader,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		cfg:     cfg,
	}
}

// Fetch retrieves the page at rawURL. The URL must already be normalized.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*Page, error) {
	if IsJSRenderedDomain(pageURL) {
		return f.renderPage(ctx, pageURL)
	}

	page, err := f.plainFetch(ctx, pageURL)
	if err != nil {
		zap.L().Warn("plain fetch failed, trying render",
			zap.String("url", pageURL), zap.Error(err))
		return f.renderPage(ctx, pageURL)
	}
	if IsJSShell(page.HTML) {
		zap.L().Debug("js shell detected, escalating to render", zap.String("url", pageURL))
		rendered, rerr := f.renderPage(ctx, pageURL)
		if rerr == nil {
			return rendered, nil
		}
		zap.L().Warn("render escalation failed, keeping shell html",
			zap.String("url", pageURL), zap.Error(rerr))
	}
	return page, nil
}

func (f *Fetcher) plainFetch(ctx context.Context, pageURL string) (*Page, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "extract: rate limit wait")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "extract: build fetch request")
	}
	req.Header.Set("User-Agent", fetchUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "extract: fetch page")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, eris.Errorf("extract: fetch page: HTTP %d for %s", resp.StatusCode, pageURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, eris.Wrap(err, "extract: read response body")
	}
	return &Page{URL: pageURL, HTML: string(body)}, nil
}

// renderPage fetches through the headless renderer, falling back to the
// markdown reader if rendering is unavailable or fails.
func (f *Fetcher) renderPage(ctx context.Context, pageURL string) (*Page, error) {
	if f.render != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "extract: rate limit wait")
		}
		renderCtx, cancel := context.WithTimeout(ctx, f.cfg.RenderTimeout()+time.Duration(renderSettleMS)*time.Millisecond)
		defer cancel()

		resp, err := f.render.Scrape(renderCtx, firecrawl.ScrapeRequest{
			URL:     pageURL,
			Formats: []string{"html", "markdown"},
			WaitFor: renderSettleMS,
		})
		if err == nil && resp.Success {
			return &Page{
				URL:      pageURL,
				HTML:     resp.Data.HTML,
				Markdown: resp.Data.Markdown,
				Rendered: true,
			}, nil
		}
		if err != nil {
			zap.L().Warn("render failed", zap.String("url", pageURL), zap.Error(err))
		}
	}

	if f.reader != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "extract: rate limit wait")
		}
		resp, err := f.reader.Read(ctx, pageURL)
		if err != nil {
			return nil, eris.Wrap(err, "extract: reader fetch")
		}
		return &Page{URL: pageURL, Markdown: resp.Data.Content, Rendered: true}, nil
	}

	return nil, eris.Errorf("extract: no renderer available for %s", pageURL)
}
