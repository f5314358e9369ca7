package ingest

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"ewintr.nl/shorts/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type fakeSearchClient struct {
	pages     [][]SearchResult
	calls     int
	errOnPage int // 1-based, 0 means never
}

func (f *fakeSearchClient) SearchPage(_ context.Context, _ model.YoutubeChannelID, _ time.Time, _ string) ([]SearchResult, string, error) {
	f.calls++
	if f.errOnPage > 0 && f.calls == f.errOnPage {
		return nil, "", errors.New("search exploded")
	}
	if f.calls > len(f.pages) {
		return []SearchResult{}, "", nil
	}
	results := f.pages[f.calls-1]
	token := ""
	if f.calls < len(f.pages) {
		token = fmt.Sprintf("page-%d", f.calls+1)
	}

	return results, token, nil
}

type fakeDetailClient struct {
	batches    [][]model.YoutubeVideoID
	err        error
	shortCount int // how many ids per batch come back with a short duration
}

func (f *fakeDetailClient) VideoDetails(_ context.Context, ids []model.YoutubeVideoID) ([]VideoDetail, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.batches = append(f.batches, ids)

	details := make([]VideoDetail, 0, len(ids))
	for i, id := range ids {
		duration := "PT20M"
		if i < f.shortCount {
			duration = "PT30S"
		}
		details = append(details, VideoDetail{
			ID:          id,
			Title:       fmt.Sprintf("video %s", id),
			Duration:    duration,
			PublishedAt: fmt.Sprintf("2025-04-%02dT10:00:00Z", i%28+1),
			Embeddable:  true,
		})
	}

	return details, nil
}

func searchPage(page, n int) []SearchResult {
	results := make([]SearchResult, 0, n)
	for i := 0; i < n; i++ {
		results = append(results, SearchResult{
			VideoID: model.YoutubeVideoID(fmt.Sprintf("vid-%d-%d", page, i)),
		})
	}

	return results
}

func newTestCollector(search SearchClient, details DetailClient) *Collector {
	return NewCollector(search, details, rate.NewLimiter(rate.Inf, 0), testLogger())
}

func TestChannelShortsEmptyWindow(t *testing.T) {
	search := &fakeSearchClient{pages: [][]SearchResult{{}}}
	details := &fakeDetailClient{}
	c := newTestCollector(search, details)

	shorts, err := c.ChannelShorts(context.Background(), "chan-1", 10)

	require.NoError(t, err)
	assert.Empty(t, shorts)
	assert.Empty(t, details.batches, "no detail calls for an empty window")
}

func TestChannelShortsEarlyExit(t *testing.T) {
	// two full search pages -> 100 candidates -> two potential detail batches
	search := &fakeSearchClient{pages: [][]SearchResult{
		searchPage(1, MaxPageSize),
		searchPage(2, MaxPageSize),
	}}
	details := &fakeDetailClient{shortCount: 12}
	c := newTestCollector(search, details)

	shorts, err := c.ChannelShorts(context.Background(), "chan-1", 10)

	require.NoError(t, err)
	require.Len(t, details.batches, 1, "target reached after first batch, second must not be fetched")
	assert.Len(t, shorts, 12, "the whole batch counts, not truncated to target")
}

func TestChannelShortsProcessesAllBatchesBelowTarget(t *testing.T) {
	search := &fakeSearchClient{pages: [][]SearchResult{
		searchPage(1, MaxPageSize),
		searchPage(2, 30),
	}}
	details := &fakeDetailClient{shortCount: 3}
	c := newTestCollector(search, details)

	shorts, err := c.ChannelShorts(context.Background(), "chan-1", 100)

	require.NoError(t, err)
	require.Len(t, details.batches, 2)
	assert.Len(t, details.batches[0], MaxPageSize)
	assert.Len(t, details.batches[1], 30)
	assert.Len(t, shorts, 6)
}

func TestChannelShortsSortsByPublishedAtDesc(t *testing.T) {
	search := &fakeSearchClient{pages: [][]SearchResult{searchPage(1, 5)}}
	details := &fakeDetailClient{shortCount: 5}
	c := newTestCollector(search, details)

	shorts, err := c.ChannelShorts(context.Background(), "chan-1", 100)

	require.NoError(t, err)
	require.Len(t, shorts, 5)
	for i := 1; i < len(shorts); i++ {
		prev, err := time.Parse(time.RFC3339, shorts[i-1].PublishedAt)
		require.NoError(t, err)
		cur, err := time.Parse(time.RFC3339, shorts[i].PublishedAt)
		require.NoError(t, err)
		assert.False(t, prev.Before(cur), "expected descending publish order")
	}
}

func TestChannelShortsPageCap(t *testing.T) {
	pages := make([][]SearchResult, 20)
	for i := range pages {
		pages[i] = searchPage(i, 10)
	}
	search := &fakeSearchClient{pages: pages}
	details := &fakeDetailClient{shortCount: 0}
	c := newTestCollector(search, details)
	c.maxPages = 3

	_, err := c.ChannelShorts(context.Background(), "chan-1", 100)

	require.NoError(t, err)
	assert.Equal(t, 3, search.calls)
}

func TestChannelShortsCandidateCap(t *testing.T) {
	pages := make([][]SearchResult, 10)
	for i := range pages {
		pages[i] = searchPage(i, MaxPageSize)
	}
	search := &fakeSearchClient{pages: pages}
	details := &fakeDetailClient{shortCount: 0}
	c := newTestCollector(search, details)
	c.maxCandidates = 100

	_, err := c.ChannelShorts(context.Background(), "chan-1", 100)

	require.NoError(t, err)
	assert.Equal(t, 2, search.calls, "pagination stops once the candidate cap is reached")
}

func TestChannelShortsSearchErrorAborts(t *testing.T) {
	search := &fakeSearchClient{
		pages:     [][]SearchResult{searchPage(1, MaxPageSize), searchPage(2, MaxPageSize)},
		errOnPage: 2,
	}
	details := &fakeDetailClient{}
	c := newTestCollector(search, details)

	shorts, err := c.ChannelShorts(context.Background(), "chan-1", 100)

	assert.Error(t, err)
	assert.Nil(t, shorts, "no partial data on failure")
	assert.Empty(t, details.batches)
}

func TestChannelShortsDetailErrorAborts(t *testing.T) {
	search := &fakeSearchClient{pages: [][]SearchResult{searchPage(1, 10)}}
	details := &fakeDetailClient{err: errors.New("quota exceeded")}
	c := newTestCollector(search, details)

	shorts, err := c.ChannelShorts(context.Background(), "chan-1", 100)

	assert.ErrorContains(t, err, "quota exceeded")
	assert.Nil(t, shorts)
}
