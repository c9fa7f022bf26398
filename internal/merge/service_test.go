package merge

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panorama-labs/survey-engine/internal/cache"
	"github.com/panorama-labs/survey-engine/internal/config"
	"github.com/panorama-labs/survey-engine/internal/extract"
)

const marketingPageHTML = `<html><head><script type="application/ld+json">
{"@type": "MusicEvent",
 "description": "A full weekend of live music across three stages on the harbour, with food trucks, art installations, and a sunset headline set each night. Now in its fifth year, the festival brings international and local acts together for the biggest weekend on the summer calendar.",
 "location": {"name": "Harbour Park"},
 "performer": [{"@type": "MusicGroup", "name": "Big Act"}]}
</script></head><body></body></html>`

const ticketingPageHTML = `<html><head><script type="application/ld+json">
{"@type": "Event",
 "location": {"name": "Harbour Park Main Arena"},
 "offers": [{"name": "General Admission", "price": "89.00"}, {"name": "VIP", "price": "199.00"}]}
</script></head><body></body></html>`

func testExtractConfig() config.ExtractConfig {
	return config.ExtractConfig{
		FetchTimeoutSecs:  5,
		RenderTimeoutSecs: 5,
		MaxContentChars:   50000,
		RequestsPerSecond: 100,
		MaxConcurrent:     5,
	}
}

func newTestService(c cache.Cache) *Service {
	extractCfg := testExtractConfig()
	fetcher := extract.NewFetcher(nil, nil, extractCfg)
	extractor := extract.NewExtractor(fetcher, nil, extractCfg)
	merger := NewMerger(nil, "", testMergeConfig())
	return NewService(extractor, merger, c, testMergeConfig(), extractCfg)
}

func TestExtractFromURLsMergesSources(t *testing.T) {
	t.Parallel()

	marketing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(marketingPageHTML))
	}))
	defer marketing.Close()
	ticketing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(ticketingPageHTML))
	}))
	defer ticketing.Close()

	got, err := newTestService(nil).ExtractFromURLs(context.Background(), []string{marketing.URL, ticketing.URL})
	require.NoError(t, err)

	assert.Equal(t, "Harbour Park Main Arena", got.Venue, "ticketing page wins venue")
	assert.Contains(t, got.Description, "full weekend of live music")
	require.Len(t, got.Lineup, 1)
	assert.Equal(t, "Big Act", got.Lineup[0].Name)
	require.Len(t, got.PricingTiers, 2)
	assert.Equal(t, "General Admission", got.PricingTiers[0].Name)
}

func TestExtractFromURLsEmptyInputRejected(t *testing.T) {
	t.Parallel()

	_, err := newTestService(nil).ExtractFromURLs(context.Background(), nil)
	require.Error(t, err)
}

func TestExtractFromURLsFailedSourceSkipped(t *testing.T) {
	t.Parallel()

	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(ticketingPageHTML))
	}))
	defer good.Close()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer bad.Close()

	got, err := newTestService(nil).ExtractFromURLs(context.Background(), []string{bad.URL, good.URL})
	require.NoError(t, err)
	assert.Equal(t, "Harbour Park Main Arena", got.Venue)
}

func TestExtractFromURLsAllSourcesFailReturnsEmpty(t *testing.T) {
	t.Parallel()

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer bad.Close()

	got, err := newTestService(nil).ExtractFromURLs(context.Background(), []string{bad.URL, bad.URL + "/other"})
	require.NoError(t, err)
	assert.False(t, got.HasData())
}

func TestExtractFromURLsCaching(t *testing.T) {
	t.Parallel()

	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Write([]byte(ticketingPageHTML))
	}))
	defer srv.Close()

	svc := newTestService(cache.NewMemory())

	first, err := svc.ExtractFromURLs(context.Background(), []string{srv.URL + "/a", srv.URL + "/b"})
	require.NoError(t, err)
	fetchesAfterFirst := hits.Load()

	second, err := svc.ExtractFromURLs(context.Background(), []string{srv.URL + "/b", srv.URL + "/a"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, fetchesAfterFirst, hits.Load(), "reordered url set should hit the cache")
}
