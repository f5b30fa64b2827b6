package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Nicolasff12/PrediccionFutbol/internal/app"
	"github.com/Nicolasff12/PrediccionFutbol/internal/config"
	"github.com/Nicolasff12/PrediccionFutbol/internal/usecase"
)

func main() {
	var (
		country  = flag.String("country", "", "provider country filter (defaults to BESOCCER_DEFAULT_COUNTRY)")
		leagues  = flag.String("leagues", "", "comma-separated league refs (defaults to SYNC_LEAGUE_REFS)")
		workers  = flag.Int("workers", 0, "worker pool size (defaults to SYNC_WORKERS)")
		seedOnly = flag.Bool("seed", false, "bootstrap the demo dataset and exit without syncing")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *seedOnly {
		// Wiring the repositories already runs the bootstrap seed.
		if _, err := app.NewSyncService(cfg, logger); err != nil {
			logger.Error("seed failed", "error", err)
			os.Exit(1)
		}
		logger.Info("seed finished")
		return
	}

	refs := splitRefs(*leagues)
	if len(refs) == 0 {
		refs = cfg.SyncLeagueRefs
	}
	if len(refs) == 0 {
		logger.Error("no league refs given (use -leagues or SYNC_LEAGUE_REFS)")
		os.Exit(2)
	}

	syncCountry := strings.TrimSpace(*country)
	if syncCountry == "" {
		syncCountry = cfg.BesoccerDefaultCountry
	}
	workerCount := *workers
	if workerCount <= 0 {
		workerCount = cfg.SyncWorkers
	}

	svc, err := app.NewSyncService(cfg, logger)
	if err != nil {
		logger.Error("build sync service", "error", err)
		os.Exit(1)
	}

	result, err := svc.SyncLeagues(ctx, usecase.MultiSyncInput{
		Country:    syncCountry,
		LeagueRefs: refs,
		MaxWorkers: workerCount,
	})
	if err != nil {
		logger.Error("sync failed", "error", err)
		os.Exit(1)
	}

	for _, item := range result.Leagues {
		logger.Info("league synced",
			"league_ref", item.LeagueRef,
			"status", item.Status,
			"teams_created", item.TeamsCreated,
			"teams_updated", item.TeamsUpdated,
			"matches_created", item.MatchesCreated,
			"matches_updated", item.MatchesUpdated,
			"matches_skipped", item.MatchesSkipped,
			"duration_ms", item.DurationMs,
		)
	}

	logger.Info("sync finished",
		"leagues", result.LeagueCount,
		"succeeded", result.SuccessCount,
		"failed", result.FailedCount,
		"workers", result.WorkerCount,
	)
	if result.FailedCount > 0 {
		os.Exit(1)
	}
}

func splitRefs(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
