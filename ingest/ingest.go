package ingest

import (
	"context"
	"time"

	"ewintr.nl/shorts/model"
)

const (
	// MaxPageSize is the largest result count the search endpoint allows
	// per call, and also the id cap on one video details call.
	MaxPageSize = 50

	// ShortMaxSeconds is the duration bound for a video to count as a short.
	ShortMaxSeconds = 70

	// DefaultTargetCount is the per-channel collection target for a run.
	DefaultTargetCount = 100
)

// SearchResult is one candidate from a search page. Only the video id is
// carried forward into the detail fetch; the snippet fields are transient.
type SearchResult struct {
	VideoID      model.YoutubeVideoID
	Title        string
	ChannelID    model.YoutubeChannelID
	ChannelName  string
	ThumbnailURL string
	PublishedAt  string
}

type Thumbnails struct {
	Maxres string
	High   string
	Medium string
}

// VideoDetail is the full external record for one video, as returned by the
// detail batch endpoint.
type VideoDetail struct {
	ID          model.YoutubeVideoID
	Title       string
	ChannelID   model.YoutubeChannelID
	ChannelName string
	Thumbnails  Thumbnails
	PublishedAt string
	Duration    string
	ViewCount   int64
	Embeddable  bool
}

type SearchClient interface {
	SearchPage(ctx context.Context, channelID model.YoutubeChannelID, publishedAfter time.Time, pageToken string) ([]SearchResult, string, error)
}

type DetailClient interface {
	VideoDetails(ctx context.Context, ids []model.YoutubeVideoID) ([]VideoDetail, error)
}
