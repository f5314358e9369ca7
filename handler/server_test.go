package handler

import (
	"context"
	"fmt"
	"io"
	"time"

	"ewintr.nl/shorts/model"
	"golang.org/x/exp/slog"
)

type fakeChannelRepo struct {
	channels []model.Channel
	err      error
}

func (f *fakeChannelRepo) FindActive(_ context.Context) ([]model.Channel, error) {
	return f.channels, f.err
}

type fakeShortRepo struct {
	shorts    []model.Short
	count     int
	err       error
	pageCalls int
}

func (f *fakeShortRepo) Upsert(_ context.Context, _ []model.Short) error {
	return f.err
}

func (f *fakeShortRepo) FindPage(_ context.Context, page, limit int, _ string) ([]model.Short, error) {
	f.pageCalls++
	if f.err != nil {
		return nil, f.err
	}
	offset := (page - 1) * limit
	if offset >= len(f.shorts) {
		return []model.Short{}, nil
	}
	end := offset + limit
	if end > len(f.shorts) {
		end = len(f.shorts)
	}

	return f.shorts[offset:end], nil
}

func (f *fakeShortRepo) Count(_ context.Context) (int, error) {
	return f.count, f.err
}

type fakeRunner struct {
	summary model.RunSummary
	result  model.ChannelResult
	err     error
	ranOne  []model.Channel
	targets []int
}

func (f *fakeRunner) RunAll(_ context.Context) (model.RunSummary, error) {
	return f.summary, f.err
}

func (f *fakeRunner) RunOne(_ context.Context, channel model.Channel, target int) model.ChannelResult {
	f.ranOne = append(f.ranOne, channel)
	f.targets = append(f.targets, target)

	return f.result
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard))
}

func makeShorts(n int) []model.Short {
	shorts := make([]model.Short, 0, n)
	for i := 0; i < n; i++ {
		shorts = append(shorts, model.Short{
			VideoID:      model.YoutubeVideoID(fmt.Sprintf("vid-%d", i)),
			Title:        fmt.Sprintf("title %d", i),
			ChannelName:  "Channel One",
			PublishedAt:  time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -i).Format(time.RFC3339),
			Duration:     30,
			IsEmbeddable: true,
		})
	}

	return shorts
}
