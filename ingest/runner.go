package ingest

import (
	"context"
	"fmt"
	"time"

	"ewintr.nl/shorts/model"
	"ewintr.nl/shorts/storage"
	"golang.org/x/exp/slog"
	"golang.org/x/time/rate"
)

// ShortsCollector is the per-channel orchestration the runner drives.
type ShortsCollector interface {
	ChannelShorts(ctx context.Context, channelID model.YoutubeChannelID, target int) ([]model.Short, error)
}

// Runner drives ingestion across the active channel set, one channel at a
// time. A channel's failure is recorded in its result and never stops the
// run for the others. The limiter paces consecutive channels.
type Runner struct {
	collector ShortsCollector
	channels  storage.ChannelRepository
	shorts    storage.ShortRepository
	limiter   *rate.Limiter
	now       func() time.Time
	logger    *slog.Logger
}

func NewRunner(collector ShortsCollector, channels storage.ChannelRepository, shorts storage.ShortRepository, limiter *rate.Limiter, logger *slog.Logger) *Runner {
	return &Runner{
		collector: collector,
		channels:  channels,
		shorts:    shorts,
		limiter:   limiter,
		now:       time.Now,
		logger:    logger,
	}
}

// RunAll ingests every active channel in list order and aggregates the
// per-channel results. It only fails as a whole when the channel list itself
// cannot be read.
func (r *Runner) RunAll(ctx context.Context) (model.RunSummary, error) {
	channels, err := r.channels.FindActive(ctx)
	if err != nil {
		return model.RunSummary{}, fmt.Errorf("find active channels: %w", err)
	}
	r.logger.Info("starting ingestion run", slog.Int("channels", len(channels)))

	total := 0
	results := make([]model.ChannelResult, 0, len(channels))
	for _, channel := range channels {
		result := r.ingestChannel(ctx, channel, DefaultTargetCount, 3)
		results = append(results, result)
		total += result.Collected

		if err := r.limiter.Wait(ctx); err != nil {
			return model.RunSummary{}, err
		}
	}
	r.logger.Info("ingestion run done", slog.Int("total", total))

	return model.RunSummary{
		Success:   true,
		Message:   fmt.Sprintf("collected %d shorts across %d channels", total, len(channels)),
		Results:   results,
		Timestamp: r.now().UTC().Format(time.RFC3339),
	}, nil
}

// RunOne ingests a single channel with a caller-supplied target count, for
// manual and backfill runs.
func (r *Runner) RunOne(ctx context.Context, channel model.Channel, target int) model.ChannelResult {
	return r.ingestChannel(ctx, channel, target, 5)
}

func (r *Runner) ingestChannel(ctx context.Context, channel model.Channel, target, sampleTitles int) model.ChannelResult {
	r.logger.Info("ingesting channel",
		slog.String("channel", channel.ChannelName),
		slog.Int("target", target))

	shorts, err := r.collector.ChannelShorts(ctx, channel.ChannelID, target)
	if err != nil {
		r.logger.Error("channel ingestion failed", err, slog.String("channel", channel.ChannelName))

		return model.ChannelResult{
			Channel: channel.ChannelName,
			Outcome: model.OutcomeFailed,
			Error:   err.Error(),
		}
	}
	if len(shorts) == 0 {
		return model.ChannelResult{
			Channel: channel.ChannelName,
			Outcome: model.OutcomeEmpty,
			Message: "no new shorts",
		}
	}

	if err := r.shorts.Upsert(ctx, shorts); err != nil {
		r.logger.Error("failed to save shorts", err, slog.String("channel", channel.ChannelName))

		return model.ChannelResult{
			Channel: channel.ChannelName,
			Outcome: model.OutcomeFailed,
			Error:   err.Error(),
		}
	}

	titles := make([]string, 0, sampleTitles)
	for _, short := range shorts {
		if len(titles) == sampleTitles {
			break
		}
		titles = append(titles, short.Title)
	}
	r.logger.Info("channel ingested",
		slog.String("channel", channel.ChannelName),
		slog.Int("collected", len(shorts)))

	return model.ChannelResult{
		Channel:   channel.ChannelName,
		Outcome:   model.OutcomeCollected,
		Collected: len(shorts),
		Titles:    titles,
	}
}
