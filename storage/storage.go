package storage

import (
	"context"

	"ewintr.nl/shorts/model"
)

type ChannelRepository interface {
	FindActive(ctx context.Context) ([]model.Channel, error)
}

type ShortRepository interface {
	// Upsert stores the records keyed by video id, overwriting existing
	// rows. An empty list is a no-op.
	Upsert(ctx context.Context, shorts []model.Short) error
	// FindPage returns one 1-based page of embeddable shorts, newest first,
	// optionally filtered by channel name.
	FindPage(ctx context.Context, page, limit int, channelName string) ([]model.Short, error)
	Count(ctx context.Context) (int, error)
}
