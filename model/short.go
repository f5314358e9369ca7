package model

type YoutubeVideoID string

type YoutubeChannelID string

// Short is the persisted record for one short-form video. VideoID is the
// upsert key; re-ingesting the same video overwrites the row.
type Short struct {
	VideoID      YoutubeVideoID   `json:"video_id"`
	Title        string           `json:"title"`
	ChannelID    YoutubeChannelID `json:"channel_id"`
	ChannelName  string           `json:"channel_name"`
	ThumbnailURL string           `json:"thumbnail_url"`
	PublishedAt  string           `json:"published_at"`
	Duration     int              `json:"duration"`
	ViewCount    int64            `json:"view_count"`
	IsEmbeddable bool             `json:"is_embeddable"`
}
