package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"ewintr.nl/shorts/storage"
	"golang.org/x/exp/slog"
)

type StatsAPI struct {
	shortRepo storage.ShortRepository
	logger    *slog.Logger
}

func NewStatsAPI(shortRepo storage.ShortRepository, logger *slog.Logger) *StatsAPI {
	return &StatsAPI{
		shortRepo: shortRepo,
		logger:    logger,
	}
}

func (s *StatsAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sub, _ := ShiftPath(r.URL.Path)

	switch {
	case r.Method == http.MethodGet && sub == "":
		s.Totals(w, r)
	default:
		Error(w, http.StatusNotFound, "not found", fmt.Errorf("method %s with subpath %q was not registered in the stats api", r.Method, sub))
	}
}

func (s *StatsAPI) Totals(w http.ResponseWriter, r *http.Request) {
	count, err := s.shortRepo.Count(r.Context())
	if err != nil {
		s.logger.Error("could not count shorts", err)
		Error(w, http.StatusInternalServerError, "could not count shorts", err)
		return
	}

	body, err := json.Marshal(struct {
		TotalShorts int `json:"totalShorts"`
	}{TotalShorts: count})
	if err != nil {
		Error(w, http.StatusInternalServerError, "could not marshal response", err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
