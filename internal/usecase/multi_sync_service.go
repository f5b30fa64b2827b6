package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
)

// MultiSyncInput fans SyncLeague out over several competitions. Leagues
// are distinct by construction, so running them in parallel does not
// violate the per-league serialization the sync relies on.
type MultiSyncInput struct {
	Country    string
	LeagueRefs []string
	MaxWorkers int
}

type MultiSyncResult struct {
	LeagueCount  int                   `json:"league_count"`
	SuccessCount int                   `json:"success_count"`
	FailedCount  int                   `json:"failed_count"`
	WorkerCount  int                   `json:"worker_count"`
	Leagues      []MultiSyncLeagueItem `json:"leagues"`
}

type MultiSyncLeagueItem struct {
	LeagueRef      string `json:"league_ref"`
	LeagueID       string `json:"league_id,omitempty"`
	Status         string `json:"status"`
	TeamsCreated   int    `json:"teams_created"`
	TeamsUpdated   int    `json:"teams_updated"`
	MatchesCreated int    `json:"matches_created"`
	MatchesUpdated int    `json:"matches_updated"`
	MatchesSkipped int    `json:"matches_skipped"`
	DurationMs     int64  `json:"duration_ms"`
	Message        string `json:"message,omitempty"`
}

const (
	multiSyncStatusSuccess = "success"
	multiSyncStatusFailed  = "failed"
)

// SyncLeagues runs one SyncLeague per distinct league ref on a bounded
// worker pool.
func (s *SyncService) SyncLeagues(ctx context.Context, input MultiSyncInput) (MultiSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "SyncService.SyncLeagues")
	defer span.End()

	refs := dedupeRefs(input.LeagueRefs)
	if len(refs) == 0 {
		return MultiSyncResult{}, fmt.Errorf("%w: at least one league ref is required", ErrInvalidInput)
	}

	workerCount := normalizeSyncWorkerCount(input.MaxWorkers, len(refs))
	result := MultiSyncResult{
		LeagueCount: len(refs),
		WorkerCount: workerCount,
		Leagues:     make([]MultiSyncLeagueItem, 0, len(refs)),
	}

	results := make(chan MultiSyncLeagueItem, len(refs))
	var successCount atomic.Int32
	var failedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return MultiSyncResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, ref := range refs {
		ref := ref
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			item := MultiSyncLeagueItem{LeagueRef: ref}

			report, syncErr := s.SyncLeague(ctx, input.Country, ref)
			item.LeagueID = report.LeagueID
			item.TeamsCreated = report.TeamsCreated
			item.TeamsUpdated = report.TeamsUpdated
			item.MatchesCreated = report.MatchesCreated
			item.MatchesUpdated = report.MatchesUpdated
			item.MatchesSkipped = report.MatchesSkipped
			item.DurationMs = time.Since(start).Milliseconds()
			if syncErr != nil {
				item.Status = multiSyncStatusFailed
				item.Message = syncErr.Error()
				failedCount.Add(1)
			} else {
				item.Status = multiSyncStatusSuccess
				successCount.Add(1)
			}

			results <- item
		}); err != nil {
			workers.Done()
			return MultiSyncResult{}, fmt.Errorf("submit league sync to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for item := range results {
		result.Leagues = append(result.Leagues, item)
	}
	sort.SliceStable(result.Leagues, func(i, j int) bool {
		return result.Leagues[i].LeagueRef < result.Leagues[j].LeagueRef
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	return result, nil
}

func dedupeRefs(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, exists := seen[item]; exists {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

func normalizeSyncWorkerCount(value, leagueCount int) int {
	if leagueCount <= 0 {
		return 1
	}
	if value <= 0 {
		value = 1
	}
	if value > 4 {
		value = 4
	}
	if value > leagueCount {
		value = leagueCount
	}
	return value
}
