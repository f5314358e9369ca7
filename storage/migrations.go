package storage

var pgMigration = []string{
	`CREATE TABLE channels (
id uuid PRIMARY KEY,
channel_id VARCHAR(255) NOT NULL UNIQUE,
channel_name VARCHAR(255) NOT NULL,
is_active BOOLEAN NOT NULL DEFAULT TRUE
)`,
	`CREATE TABLE shorts (
video_id VARCHAR(255) PRIMARY KEY,
title TEXT NOT NULL,
channel_id VARCHAR(255) NOT NULL,
channel_name VARCHAR(255) NOT NULL,
thumbnail_url TEXT NOT NULL,
published_at VARCHAR(255) NOT NULL,
duration INTEGER NOT NULL,
view_count BIGINT NOT NULL DEFAULT 0,
is_embeddable BOOLEAN NOT NULL DEFAULT TRUE
)`,
	`CREATE INDEX shorts_published_at ON shorts (published_at DESC)`,
	`CREATE INDEX shorts_channel_name ON shorts (channel_name)`,
}
