package ingest

import (
	"context"
	"fmt"
	"sort"
	"time"

	"ewintr.nl/shorts/model"
	"golang.org/x/exp/slog"
	"golang.org/x/time/rate"
)

const (
	// maxSearchPages caps continuation-token walking per channel to protect
	// the API quota.
	maxSearchPages = 10
	// maxCandidates caps the raw results collected across pages.
	maxCandidates = 500
	// recencyYears bounds the publishedAfter window of a run.
	recencyYears = 3
)

// Collector produces the normalized short list for one channel in one run.
// The limiter paces consecutive detail-fetch batches.
type Collector struct {
	search        SearchClient
	details       DetailClient
	limiter       *rate.Limiter
	maxPages      int
	maxCandidates int
	now           func() time.Time
	logger        *slog.Logger
}

func NewCollector(search SearchClient, details DetailClient, limiter *rate.Limiter, logger *slog.Logger) *Collector {
	return &Collector{
		search:        search,
		details:       details,
		limiter:       limiter,
		maxPages:      maxSearchPages,
		maxCandidates: maxCandidates,
		now:           time.Now,
		logger:        logger,
	}
}

// ChannelShorts collects, classifies and sorts shorts for a channel.
//
// Detail batches stop as soon as the accepted count reaches target, so the
// result can exceed target by at most one batch's worth. An empty result is
// a normal outcome. Any search or detail failure aborts the channel and is
// returned without partial data.
func (c *Collector) ChannelShorts(ctx context.Context, channelID model.YoutubeChannelID, target int) ([]model.Short, error) {
	if target <= 0 {
		target = DefaultTargetCount
	}
	publishedAfter := c.now().AddDate(-recencyYears, 0, 0)

	candidates, err := c.collectCandidates(ctx, channelID, publishedAfter)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		c.logger.Info("no videos in window", slog.String("channelid", string(channelID)))

		return []model.Short{}, nil
	}

	shorts := []model.Short{}
	for start := 0; start < len(candidates); start += MaxPageSize {
		if len(shorts) >= target {
			c.logger.Info("target reached, skipping remaining batches",
				slog.String("channelid", string(channelID)),
				slog.Int("collected", len(shorts)))
			break
		}
		if start > 0 {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		end := start + MaxPageSize
		if end > len(candidates) {
			end = len(candidates)
		}
		ids := make([]model.YoutubeVideoID, 0, end-start)
		for _, candidate := range candidates[start:end] {
			ids = append(ids, candidate.VideoID)
		}

		details, err := c.details.VideoDetails(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("detail batch for channel %s: %w", channelID, err)
		}
		shorts = append(shorts, FilterShorts(details, c.logger)...)
		c.logger.Info("processed detail batch",
			slog.String("channelid", string(channelID)),
			slog.Int("batchsize", len(ids)),
			slog.Int("collected", len(shorts)))
	}

	sort.SliceStable(shorts, func(i, j int) bool {
		return publishedAfterThan(shorts[i].PublishedAt, shorts[j].PublishedAt)
	})

	return shorts, nil
}

// collectCandidates walks the search pages until the API runs out of
// continuation tokens, the page cap is hit, or the candidate cap is hit.
func (c *Collector) collectCandidates(ctx context.Context, channelID model.YoutubeChannelID, publishedAfter time.Time) ([]SearchResult, error) {
	candidates := []SearchResult{}
	token := ""
	for page := 1; page <= c.maxPages; page++ {
		results, next, err := c.search.SearchPage(ctx, channelID, publishedAfter, token)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, results...)
		c.logger.Info("fetched search page",
			slog.String("channelid", string(channelID)),
			slog.Int("page", page),
			slog.Int("candidates", len(candidates)))

		if next == "" || len(candidates) >= c.maxCandidates {
			break
		}
		token = next
	}

	return candidates, nil
}

// publishedAfterThan orders two RFC 3339 timestamps descending, falling back
// to string comparison when one does not parse.
func publishedAfterThan(a, b string) bool {
	ta, errA := time.Parse(time.RFC3339, a)
	tb, errB := time.Parse(time.RFC3339, b)
	if errA != nil || errB != nil {
		return a > b
	}

	return ta.After(tb)
}
