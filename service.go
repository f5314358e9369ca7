package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"ewintr.nl/shorts/cache"
	"ewintr.nl/shorts/handler"
	"ewintr.nl/shorts/ingest"
	"ewintr.nl/shorts/storage"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/exp/slog"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

func main() {
	godotenv.Load()

	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stderr))

	postgres, err := storage.NewPostgres(storage.PostgresInfo{
		Host:     getParam("POSTGRES_HOST", "localhost"),
		Port:     getParam("POSTGRES_PORT", "5432"),
		User:     getParam("POSTGRES_USER", "shorts"),
		Password: getParam("POSTGRES_PASSWORD", "shorts"),
		Database: getParam("POSTGRES_DB", "shorts"),
	})
	if err != nil {
		logger.Error("unable to connect to postgres", err)
		os.Exit(1)
	}
	channelRepo := storage.NewPostgresChannelRepository(postgres)
	shortRepo := storage.NewPostgresShortRepository(postgres)

	ytClient, err := youtube.NewService(ctx, option.WithAPIKey(getParam("YOUTUBE_API_KEY", "")))
	if err != nil {
		logger.Error("unable to create youtube service", err)
		os.Exit(1)
	}
	yt := ingest.NewYoutube(ytClient)

	batchPace, err := time.ParseDuration(getParam("BATCH_PACE", "100ms"))
	if err != nil {
		logger.Error("unable to parse batch pace", err)
		os.Exit(1)
	}
	channelPace, err := time.ParseDuration(getParam("CHANNEL_PACE", "2s"))
	if err != nil {
		logger.Error("unable to parse channel pace", err)
		os.Exit(1)
	}
	ingestTimeout, err := time.ParseDuration(getParam("INGEST_TIMEOUT", "10m"))
	if err != nil {
		logger.Error("unable to parse ingest timeout", err)
		os.Exit(1)
	}

	collector := ingest.NewCollector(yt, yt, rate.NewLimiter(rate.Every(batchPace), 1), logger)
	runner := ingest.NewRunner(collector, channelRepo, shortRepo, rate.NewLimiter(rate.Every(channelPace), 1), logger)

	cacheTTL, err := time.ParseDuration(getParam("CACHE_TTL", "5m"))
	if err != nil {
		logger.Error("unable to parse cache ttl", err)
		os.Exit(1)
	}
	cacheOpts := []cache.Option{}
	if redisURL := getParam("REDIS_URL", ""); redisURL != "" {
		redisOpts, err := redis.ParseURL(redisURL)
		if err != nil {
			logger.Error("unable to parse redis url", err)
			os.Exit(1)
		}
		cacheOpts = append(cacheOpts, cache.WithRedis(redis.NewClient(redisOpts)))
		logger.Info("page cache redis tier enabled", slog.String("addr", redisOpts.Addr))
	}
	pageCache := cache.New(cacheTTL, 128, cacheOpts...)

	port, err := strconv.Atoi(getParam("API_PORT", "8080"))
	if err != nil {
		logger.Error("invalid port", err)
		os.Exit(1)
	}
	srv := handler.NewServer(shortRepo, channelRepo, runner, pageCache, getParam("INGEST_SECRET", ""), ingestTimeout, logger)
	go http.ListenAndServe(fmt.Sprintf(":%d", port), srv)
	logger.Info("http server started", slog.Int("port", port))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt)
	<-done

	logger.Info("service stopped")
}

func getParam(param, def string) string {
	if val, ok := os.LookupEnv(param); ok {
		return val
	}
	return def
}
