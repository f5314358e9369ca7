package storage

import (
	"context"
	"fmt"

	"ewintr.nl/shorts/model"
)

// upsertShortQuery overwrites all record fields on a video id conflict, so a
// re-ingested video is replaced rather than duplicated or merged.
const upsertShortQuery = `
INSERT INTO shorts
(video_id, title, channel_id, channel_name, thumbnail_url, published_at, duration, view_count, is_embeddable)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (video_id) DO UPDATE SET
title = EXCLUDED.title,
channel_id = EXCLUDED.channel_id,
channel_name = EXCLUDED.channel_name,
thumbnail_url = EXCLUDED.thumbnail_url,
published_at = EXCLUDED.published_at,
duration = EXCLUDED.duration,
view_count = EXCLUDED.view_count,
is_embeddable = EXCLUDED.is_embeddable`

type PostgresShortRepository struct {
	postgres *Postgres
}

func NewPostgresShortRepository(postgres *Postgres) *PostgresShortRepository {
	return &PostgresShortRepository{postgres: postgres}
}

func (r *PostgresShortRepository) Upsert(ctx context.Context, shorts []model.Short) error {
	if len(shorts) == 0 {
		return nil
	}

	tx, err := r.postgres.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert: %w", err)
	}
	for _, short := range shorts {
		if _, err := tx.ExecContext(ctx, upsertShortQuery,
			short.VideoID, short.Title, short.ChannelID, short.ChannelName,
			short.ThumbnailURL, short.PublishedAt, short.Duration,
			short.ViewCount, short.IsEmbeddable); err != nil {
			tx.Rollback()

			return fmt.Errorf("upsert short %s: %w", short.VideoID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert: %w", err)
	}

	return nil
}

func (r *PostgresShortRepository) FindPage(ctx context.Context, page, limit int, channelName string) ([]model.Short, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	query := `
SELECT video_id, title, channel_id, channel_name, thumbnail_url, published_at, duration, view_count, is_embeddable
FROM shorts
WHERE is_embeddable = TRUE`
	args := []any{}
	if channelName != "" {
		query += ` AND channel_name = $1`
		args = append(args, channelName)
	}
	query += fmt.Sprintf(`
ORDER BY published_at DESC
LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.postgres.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find shorts page: %w", err)
	}
	defer rows.Close()

	shorts := []model.Short{}
	for rows.Next() {
		var short model.Short
		if err := rows.Scan(&short.VideoID, &short.Title, &short.ChannelID, &short.ChannelName,
			&short.ThumbnailURL, &short.PublishedAt, &short.Duration,
			&short.ViewCount, &short.IsEmbeddable); err != nil {
			return nil, fmt.Errorf("scan short: %w", err)
		}
		shorts = append(shorts, short)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shorts, nil
}

func (r *PostgresShortRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.postgres.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM shorts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count shorts: %w", err)
	}

	return count, nil
}
