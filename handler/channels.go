package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"ewintr.nl/shorts/storage"
	"golang.org/x/exp/slog"
)

type ChannelAPI struct {
	channelRepo storage.ChannelRepository
	logger      *slog.Logger
}

func NewChannelAPI(channelRepo storage.ChannelRepository, logger *slog.Logger) *ChannelAPI {
	return &ChannelAPI{
		channelRepo: channelRepo,
		logger:      logger,
	}
}

func (c *ChannelAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sub, _ := ShiftPath(r.URL.Path)

	switch {
	case r.Method == http.MethodGet && sub == "":
		c.List(w, r)
	default:
		Error(w, http.StatusNotFound, "not found", fmt.Errorf("method %s with subpath %q was not registered in the channels api", r.Method, sub))
	}
}

func (c *ChannelAPI) List(w http.ResponseWriter, r *http.Request) {
	channels, err := c.channelRepo.FindActive(r.Context())
	if err != nil {
		c.logger.Error("could not list channels", err)
		Error(w, http.StatusInternalServerError, "could not list channels", err)
		return
	}

	body, err := json.Marshal(channels)
	if err != nil {
		Error(w, http.StatusInternalServerError, "could not marshal response", err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
