package ingest

import (
	"ewintr.nl/shorts/model"
	"golang.org/x/exp/slog"
)

// PlaceholderThumbnail is served when a video carries none of the preferred
// thumbnail variants.
const PlaceholderThumbnail = "https://via.placeholder.com/480x360?text=No+Thumbnail"

// FilterShorts keeps the details whose duration falls in (0, ShortMaxSeconds]
// and maps them to normalized records, preserving input order. A non-empty
// duration string that parses to zero is logged and excluded, not an error.
func FilterShorts(details []VideoDetail, logger *slog.Logger) []model.Short {
	shorts := make([]model.Short, 0, len(details))
	for _, detail := range details {
		seconds := ParseDuration(detail.Duration)
		if seconds == 0 && detail.Duration != "" {
			logger.Debug("excluding video with unparseable duration",
				slog.String("id", string(detail.ID)),
				slog.String("duration", detail.Duration))
		}
		if seconds <= 0 || seconds > ShortMaxSeconds {
			continue
		}

		shorts = append(shorts, model.Short{
			VideoID:      detail.ID,
			Title:        detail.Title,
			ChannelID:    detail.ChannelID,
			ChannelName:  detail.ChannelName,
			ThumbnailURL: pickThumbnail(detail.Thumbnails),
			PublishedAt:  detail.PublishedAt,
			Duration:     seconds,
			ViewCount:    detail.ViewCount,
			IsEmbeddable: detail.Embeddable,
		})
	}

	return shorts
}

// pickThumbnail prefers the highest resolution variant present.
func pickThumbnail(t Thumbnails) string {
	switch {
	case t.Maxres != "":
		return t.Maxres
	case t.High != "":
		return t.High
	case t.Medium != "":
		return t.Medium
	}

	return PlaceholderThumbnail
}
