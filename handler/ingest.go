package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"ewintr.nl/shorts/ingest"
	"ewintr.nl/shorts/model"
	"ewintr.nl/shorts/storage"
	"golang.org/x/exp/slog"
)

// IngestRunner is what the ingest endpoints need from the run controller.
type IngestRunner interface {
	RunAll(ctx context.Context) (model.RunSummary, error)
	RunOne(ctx context.Context, channel model.Channel, target int) model.ChannelResult
}

// IngestAPI triggers ingestion runs. Callers authenticate with a shared
// bearer secret; requests run under a deadline so a stalled upstream cannot
// hang the process.
type IngestAPI struct {
	runner      IngestRunner
	channelRepo storage.ChannelRepository
	secret      string
	timeout     time.Duration
	logger      *slog.Logger
}

func NewIngestAPI(runner IngestRunner, channelRepo storage.ChannelRepository, secret string, timeout time.Duration, logger *slog.Logger) *IngestAPI {
	return &IngestAPI{
		runner:      runner,
		channelRepo: channelRepo,
		secret:      secret,
		timeout:     timeout,
		logger:      logger,
	}
}

func (i *IngestAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if i.secret == "" {
		Error(w, http.StatusInternalServerError, "ingest secret not configured", errors.New("INGEST_SECRET is empty"))
		return
	}
	if r.Header.Get("Authorization") != "Bearer "+i.secret {
		Error(w, http.StatusUnauthorized, "unauthorized", errors.New("invalid bearer token"))
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		Error(w, http.StatusNotFound, "not found", fmt.Errorf("method %s was not registered in the ingest api", r.Method))
		return
	}

	sub, _ := ShiftPath(r.URL.Path)
	switch sub {
	case "":
		i.RunAll(w, r)
	case "channel":
		i.RunChannel(w, r)
	default:
		Error(w, http.StatusNotFound, "not found", fmt.Errorf("subpath %q was not registered in the ingest api", sub))
	}
}

func (i *IngestAPI) RunAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), i.timeout)
	defer cancel()

	summary, err := i.runner.RunAll(ctx)
	if err != nil {
		i.logger.Error("ingestion run failed", err)
		Error(w, http.StatusInternalServerError, "ingestion run failed", err)
		return
	}

	body, err := json.Marshal(summary)
	if err != nil {
		Error(w, http.StatusInternalServerError, "could not marshal response", err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (i *IngestAPI) RunChannel(w http.ResponseWriter, r *http.Request) {
	channelID := r.URL.Query().Get("channelId")
	channelName := r.URL.Query().Get("channelName")
	if (channelID == "") == (channelName == "") {
		Error(w, http.StatusBadRequest, "bad request", errors.New("exactly one of channelId or channelName is required"))
		return
	}

	target := ingest.DefaultTargetCount
	if raw := r.URL.Query().Get("targetCount"); raw != "" {
		val, err := strconv.Atoi(raw)
		if err != nil || val < 1 {
			Error(w, http.StatusBadRequest, "bad request", fmt.Errorf("targetCount must be a positive integer, got %q", raw))
			return
		}
		target = val
	}

	ctx, cancel := context.WithTimeout(r.Context(), i.timeout)
	defer cancel()

	channels, err := i.channelRepo.FindActive(ctx)
	if err != nil {
		i.logger.Error("could not list channels", err)
		Error(w, http.StatusInternalServerError, "could not list channels", err)
		return
	}

	var channel *model.Channel
	for idx, c := range channels {
		if (channelID != "" && string(c.ChannelID) == channelID) ||
			(channelName != "" && c.ChannelName == channelName) {
			channel = &channels[idx]
			break
		}
	}
	if channel == nil {
		available := make([]map[string]string, 0, len(channels))
		for _, c := range channels {
			available = append(available, map[string]string{
				"name": c.ChannelName,
				"id":   string(c.ChannelID),
			})
		}
		Error(w, http.StatusNotFound, "channel not found",
			fmt.Errorf("no active channel matches %s", firstNonEmpty(channelName, channelID)),
			available)
		return
	}

	result := i.runner.RunOne(ctx, *channel, target)
	message := fmt.Sprintf("collected %d shorts from %s", result.Collected, channel.ChannelName)
	if result.Outcome == model.OutcomeFailed {
		message = fmt.Sprintf("ingestion of %s failed", channel.ChannelName)
	}

	body, err := json.Marshal(struct {
		Success   bool                `json:"success"`
		Message   string              `json:"message"`
		Result    model.ChannelResult `json:"result"`
		Timestamp string              `json:"timestamp"`
	}{
		Success:   result.Outcome != model.OutcomeFailed,
		Message:   message,
		Result:    result,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		Error(w, http.StatusInternalServerError, "could not marshal response", err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
