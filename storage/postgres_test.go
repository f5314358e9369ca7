package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareMigrations(t *testing.T) {
	tests := []struct {
		name     string
		wanted   []string
		existing []string
		want     []string
		wantErr  bool
	}{
		{
			name:   "fresh database needs everything",
			wanted: []string{"a", "b"},
			want:   []string{"a", "b"},
		},
		{
			name:     "up to date needs nothing",
			wanted:   []string{"a", "b"},
			existing: []string{"a", "b"},
			want:     []string{},
		},
		{
			name:     "partial needs the tail",
			wanted:   []string{"a", "b", "c"},
			existing: []string{"a"},
			want:     []string{"b", "c"},
		},
		{
			name:     "diverged history is an error",
			wanted:   []string{"a", "x"},
			existing: []string{"a", "b"},
			wantErr:  true,
		},
		{
			name:     "more applied than known is an error",
			wanted:   []string{"a"},
			existing: []string{"a", "b"},
			wantErr:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := compareMigrations(tt.wanted, tt.existing)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUpsertShortQueryConflictTarget(t *testing.T) {
	// re-ingesting a video must overwrite by video_id, never duplicate
	assert.Contains(t, upsertShortQuery, "ON CONFLICT (video_id) DO UPDATE")
	for _, column := range []string{"title", "channel_id", "channel_name", "thumbnail_url", "published_at", "duration", "view_count", "is_embeddable"} {
		assert.Contains(t, upsertShortQuery, column+" = EXCLUDED."+column, "column %s must be overwritten on conflict", column)
	}
	assert.Equal(t, 1, strings.Count(upsertShortQuery, "ON CONFLICT"))
}
