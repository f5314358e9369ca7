package model

import "github.com/google/uuid"

// Channel is a curated source. Rows are managed out-of-band; ingestion only
// reads the active subset.
type Channel struct {
	ID          uuid.UUID        `json:"id"`
	ChannelID   YoutubeChannelID `json:"channel_id"`
	ChannelName string           `json:"channel_name"`
	IsActive    bool             `json:"is_active"`
}
