package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"ewintr.nl/shorts/cache"
	"ewintr.nl/shorts/model"
	"ewintr.nl/shorts/storage"
	"golang.org/x/exp/slog"
)

const (
	defaultPageLimit = 20
)

type ShortsAPI struct {
	shortRepo storage.ShortRepository
	pageCache *cache.PageCache
	logger    *slog.Logger
}

func NewShortsAPI(shortRepo storage.ShortRepository, pageCache *cache.PageCache, logger *slog.Logger) *ShortsAPI {
	return &ShortsAPI{
		shortRepo: shortRepo,
		pageCache: pageCache,
		logger:    logger,
	}
}

func (s *ShortsAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sub, _ := ShiftPath(r.URL.Path)

	switch {
	case r.Method == http.MethodGet && sub == "":
		s.List(w, r)
	default:
		Error(w, http.StatusNotFound, "not found", fmt.Errorf("method %s with subpath %q was not registered in the shorts api", r.Method, sub))
	}
}

// List serves one feed page. hasMore is true iff the page came back exactly
// limit-sized.
func (s *ShortsAPI) List(w http.ResponseWriter, r *http.Request) {
	page, err := positiveIntParam(r, "page", 1)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid page parameter", err)
		return
	}
	limit, err := positiveIntParam(r, "limit", defaultPageLimit)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid limit parameter", err)
		return
	}
	channel := r.URL.Query().Get("channel")

	key := cache.Key("shorts", strconv.Itoa(page), strconv.Itoa(limit), channel)
	if body, ok := s.pageCache.Get(r.Context(), key); ok {
		w.WriteHeader(http.StatusOK)
		w.Write(body)
		return
	}

	shorts, err := s.shortRepo.FindPage(r.Context(), page, limit, channel)
	if err != nil {
		s.logger.Error("could not list shorts", err)
		Error(w, http.StatusInternalServerError, "could not list shorts", err)
		return
	}

	response := struct {
		Data    []model.Short `json:"data"`
		Page    int           `json:"page"`
		Limit   int           `json:"limit"`
		HasMore bool          `json:"hasMore"`
	}{
		Data:    shorts,
		Page:    page,
		Limit:   limit,
		HasMore: len(shorts) == limit,
	}
	body, err := json.Marshal(response)
	if err != nil {
		Error(w, http.StatusInternalServerError, "could not marshal response", err)
		return
	}

	s.pageCache.Set(r.Context(), key, body)
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func positiveIntParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < 1 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, raw)
	}

	return val, nil
}
