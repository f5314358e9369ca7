package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ewintr.nl/shorts/model"
	"google.golang.org/api/youtube/v3"
)

// Youtube talks to the YouTube Data API v3. It implements both SearchClient
// and DetailClient. Calls are retried on transient failures; a final error
// propagates to the caller untouched.
type Youtube struct {
	client *youtube.Service
	retry  RetryConfig
}

func NewYoutube(client *youtube.Service) *Youtube {
	return &Youtube{
		client: client,
		retry:  DefaultRetryConfig,
	}
}

// SearchPage fetches one page of video results for a channel, newest first,
// bounded by publishedAfter. The returned token is empty on the last page.
func (y *Youtube) SearchPage(ctx context.Context, channelID model.YoutubeChannelID, publishedAfter time.Time, pageToken string) ([]SearchResult, string, error) {
	response, err := RetryDo(ctx, y.retry, func() (*youtube.SearchListResponse, error) {
		call := y.client.Search.
			List([]string{"snippet"}).
			ChannelId(string(channelID)).
			Type("video").
			Order("date").
			PublishedAfter(publishedAfter.UTC().Format(time.RFC3339)).
			MaxResults(MaxPageSize).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		return call.Do()
	})
	if err != nil {
		return nil, "", fmt.Errorf("search page for channel %s: %w", channelID, err)
	}

	results := make([]SearchResult, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		results = append(results, SearchResult{
			VideoID:      model.YoutubeVideoID(item.Id.VideoId),
			Title:        item.Snippet.Title,
			ChannelID:    model.YoutubeChannelID(item.Snippet.ChannelId),
			ChannelName:  item.Snippet.ChannelTitle,
			ThumbnailURL: thumbnailsOf(item.Snippet.Thumbnails).Medium,
			PublishedAt:  item.Snippet.PublishedAt,
		})
	}

	return results, response.NextPageToken, nil
}

// VideoDetails fetches full records for up to MaxPageSize video ids. Ids the
// API no longer knows are simply absent from the result.
func (y *Youtube) VideoDetails(ctx context.Context, ids []model.YoutubeVideoID) ([]VideoDetail, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if len(ids) > MaxPageSize {
		return nil, fmt.Errorf("requested %d video details, the API allows %d per call", len(ids), MaxPageSize)
	}

	strIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		strIDs = append(strIDs, string(id))
	}

	response, err := RetryDo(ctx, y.retry, func() (*youtube.VideoListResponse, error) {
		return y.client.Videos.
			List([]string{"snippet", "contentDetails", "statistics", "status"}).
			Id(strings.Join(strIDs, ",")).
			Context(ctx).
			Do()
	})
	if err != nil {
		return nil, fmt.Errorf("video details: %w", err)
	}

	details := make([]VideoDetail, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Snippet == nil {
			continue
		}
		detail := VideoDetail{
			ID:          model.YoutubeVideoID(item.Id),
			Title:       item.Snippet.Title,
			ChannelID:   model.YoutubeChannelID(item.Snippet.ChannelId),
			ChannelName: item.Snippet.ChannelTitle,
			Thumbnails:  thumbnailsOf(item.Snippet.Thumbnails),
			PublishedAt: item.Snippet.PublishedAt,
			Embeddable:  true,
		}
		if item.ContentDetails != nil {
			detail.Duration = item.ContentDetails.Duration
		}
		if item.Statistics != nil {
			detail.ViewCount = int64(item.Statistics.ViewCount)
		}
		if item.Status != nil && !item.Status.Embeddable {
			detail.Embeddable = false
		}
		details = append(details, detail)
	}

	return details, nil
}

func thumbnailsOf(td *youtube.ThumbnailDetails) Thumbnails {
	var t Thumbnails
	if td == nil {
		return t
	}
	if td.Maxres != nil {
		t.Maxres = td.Maxres.Url
	}
	if td.High != nil {
		t.High = td.High.Url
	}
	if td.Medium != nil {
		t.Medium = td.Medium.Url
	}

	return t
}
