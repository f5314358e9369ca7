package storage

import (
	"context"
	"fmt"

	"ewintr.nl/shorts/model"
)

type PostgresChannelRepository struct {
	postgres *Postgres
}

func NewPostgresChannelRepository(postgres *Postgres) *PostgresChannelRepository {
	return &PostgresChannelRepository{postgres: postgres}
}

func (r *PostgresChannelRepository) FindActive(ctx context.Context) ([]model.Channel, error) {
	rows, err := r.postgres.db.QueryContext(ctx, `
SELECT id, channel_id, channel_name, is_active
FROM channels
WHERE is_active = TRUE
ORDER BY channel_name`)
	if err != nil {
		return nil, fmt.Errorf("find active channels: %w", err)
	}
	defer rows.Close()

	channels := []model.Channel{}
	for rows.Next() {
		var channel model.Channel
		if err := rows.Scan(&channel.ID, &channel.ChannelID, &channel.ChannelName, &channel.IsActive); err != nil {
			return nil, fmt.Errorf("scan channel: %w", err)
		}
		channels = append(channels, channel)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return channels, nil
}
