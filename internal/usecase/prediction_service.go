package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Nicolasff12/PrediccionFutbol/internal/domain/league"
	"github.com/Nicolasff12/PrediccionFutbol/internal/domain/match"
	"github.com/Nicolasff12/PrediccionFutbol/internal/domain/prediction"
	"github.com/Nicolasff12/PrediccionFutbol/internal/domain/team"
	"github.com/Nicolasff12/PrediccionFutbol/internal/domain/user"
	"github.com/Nicolasff12/PrediccionFutbol/internal/platform/id"
	"github.com/Nicolasff12/PrediccionFutbol/internal/platform/logging"
)

// MatchContext is the structured payload handed to the generative model.
// Every enrichment beyond the two team identities is best-effort: a
// failed lookup leaves its field zero-valued instead of failing the call.
type MatchContext struct {
	Match      match.Match
	HomeTeam   team.Team
	AwayTeam   team.Team
	League     league.League
	HomeStats  TeamStats
	AwayStats  TeamStats
	HomeForm   string
	AwayForm   string
	HeadToHead []match.Match
	Standings  []StandingRow
}

// UserPredictionStats summarizes one user's verified record.
type UserPredictionStats struct {
	Total     int
	Correct   int
	Incorrect int
	Pending   int
	Accuracy  float64
}

type PredictionService struct {
	matchRepo      match.Repository
	teamRepo       team.Repository
	leagueRepo     league.Repository
	predictionRepo prediction.Repository
	userRepo       user.Repository
	stats          *StatsService
	model          GenerativeModel
	idgen          id.Generator
	logger         *logging.Logger
}

func NewPredictionService(
	matchRepo match.Repository,
	teamRepo team.Repository,
	leagueRepo league.Repository,
	predictionRepo prediction.Repository,
	userRepo user.Repository,
	stats *StatsService,
	model GenerativeModel,
	idgen id.Generator,
	logger *logging.Logger,
) *PredictionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PredictionService{
		matchRepo:      matchRepo,
		teamRepo:       teamRepo,
		leagueRepo:     leagueRepo,
		predictionRepo: predictionRepo,
		userRepo:       userRepo,
		stats:          stats,
		model:          model,
		idgen:          idgen,
		logger:         logger,
	}
}

// CreateAIPrediction asks the generative model for a forecast and stores
// it. It always produces a Prediction row: when the model is unreachable
// or its output unusable, the canned 1-1 default is stored instead.
func (s *PredictionService) CreateAIPrediction(ctx context.Context, userID, matchID string) (prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "PredictionService.CreateAIPrediction")
	defer span.End()

	userID = strings.TrimSpace(userID)
	matchID = strings.TrimSpace(matchID)
	if userID == "" || matchID == "" {
		return prediction.Prediction{}, fmt.Errorf("%w: user id and match id are required", ErrInvalidInput)
	}

	matchCtx, err := s.buildMatchContext(ctx, matchID)
	if err != nil {
		return prediction.Prediction{}, err
	}

	forecast := s.requestForecast(ctx, matchCtx)
	return s.upsert(ctx, userID, matchID, prediction.Prediction{
		HomeGoals:  prediction.ClampGoals(forecast.HomeGoals),
		AwayGoals:  prediction.ClampGoals(forecast.AwayGoals),
		Analysis:   forecast.Analysis,
		Confidence: prediction.ClampConfidence(forecast.Confidence),
	})
}

// CreateManualPrediction stores a user-entered scoreline with confidence
// pinned to zero and no analysis text.
func (s *PredictionService) CreateManualPrediction(ctx context.Context, userID, matchID string, homeGoals, awayGoals int) (prediction.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "PredictionService.CreateManualPrediction")
	defer span.End()

	userID = strings.TrimSpace(userID)
	matchID = strings.TrimSpace(matchID)
	if userID == "" || matchID == "" {
		return prediction.Prediction{}, fmt.Errorf("%w: user id and match id are required", ErrInvalidInput)
	}
	if homeGoals < 0 || awayGoals < 0 {
		return prediction.Prediction{}, fmt.Errorf("%w: goals must not be negative", ErrInvalidInput)
	}

	if _, exists, err := s.matchRepo.GetByID(ctx, matchID); err != nil {
		return prediction.Prediction{}, fmt.Errorf("get match: %w", err)
	} else if !exists {
		return prediction.Prediction{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	return s.upsert(ctx, userID, matchID, prediction.Prediction{
		HomeGoals:  prediction.ClampGoals(homeGoals),
		AwayGoals:  prediction.ClampGoals(awayGoals),
		Confidence: 0,
	})
}

// VerifyPending marks every unverified prediction whose match has
// finished, comparing predicted and actual scorelines exactly. This is
// the only writer of the correctness flag. Returns the count processed.
func (s *PredictionService) VerifyPending(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "PredictionService.VerifyPending")
	defer span.End()

	pending, err := s.predictionRepo.ListUnverified(ctx)
	if err != nil {
		return 0, fmt.Errorf("list unverified predictions: %w", err)
	}

	processed := 0
	for _, item := range pending {
		played, exists, err := s.matchRepo.GetByID(ctx, item.MatchID)
		if err != nil {
			return processed, fmt.Errorf("get match: %w", err)
		}
		if !exists || !played.IsFinished() {
			continue
		}

		correct := item.HomeGoals == played.HomeGoals && item.AwayGoals == played.AwayGoals
		if err := s.predictionRepo.SetCorrect(ctx, item.ID, correct); err != nil {
			return processed, fmt.Errorf("set prediction correctness: %w", err)
		}
		processed++
	}
	return processed, nil
}

// ListByUser lists a user's predictions, newest first.
func (s *PredictionService) ListByUser(ctx context.Context, userID string, limit int) ([]prediction.Prediction, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	items, err := s.predictionRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list predictions: %w", err)
	}
	return items, nil
}

// StatsByUser summarizes a user's verified record; accuracy is 0 when no
// prediction has been verified yet.
func (s *PredictionService) StatsByUser(ctx context.Context, userID string) (UserPredictionStats, error) {
	ctx, span := startUsecaseSpan(ctx, "PredictionService.StatsByUser")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return UserPredictionStats{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	items, err := s.predictionRepo.ListByUser(ctx, userID, 0)
	if err != nil {
		return UserPredictionStats{}, fmt.Errorf("list predictions: %w", err)
	}

	stats := UserPredictionStats{Total: len(items)}
	for _, item := range items {
		switch {
		case item.Correct == nil:
			stats.Pending++
		case *item.Correct:
			stats.Correct++
		default:
			stats.Incorrect++
		}
	}
	if verified := stats.Correct + stats.Incorrect; verified > 0 {
		stats.Accuracy = round2(100 * float64(stats.Correct) / float64(verified))
	}
	return stats, nil
}

// BuildMatchContext exposes the assembled context for the comparison view.
func (s *PredictionService) BuildMatchContext(ctx context.Context, matchID string) (MatchContext, error) {
	ctx, span := startUsecaseSpan(ctx, "PredictionService.BuildMatchContext")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return MatchContext{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	return s.buildMatchContext(ctx, matchID)
}

func (s *PredictionService) buildMatchContext(ctx context.Context, matchID string) (MatchContext, error) {
	played, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return MatchContext{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return MatchContext{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	matchCtx := MatchContext{Match: played, HomeForm: FormNoData, AwayForm: FormNoData}
	if home, found, lookupErr := s.teamRepo.GetByID(ctx, played.HomeTeamID); lookupErr == nil && found {
		matchCtx.HomeTeam = home
	}
	if away, found, lookupErr := s.teamRepo.GetByID(ctx, played.AwayTeamID); lookupErr == nil && found {
		matchCtx.AwayTeam = away
	}
	if item, found, lookupErr := s.leagueRepo.GetByID(ctx, played.LeagueID); lookupErr == nil && found {
		matchCtx.League = item
	}

	if stats, statsErr := s.stats.TeamStatistics(ctx, played.HomeTeamID, played.LeagueID); statsErr == nil {
		matchCtx.HomeStats = stats
	} else {
		s.logger.WarnContext(ctx, "home team statistics unavailable", "match_id", matchID, "error", statsErr)
	}
	if stats, statsErr := s.stats.TeamStatistics(ctx, played.AwayTeamID, played.LeagueID); statsErr == nil {
		matchCtx.AwayStats = stats
	} else {
		s.logger.WarnContext(ctx, "away team statistics unavailable", "match_id", matchID, "error", statsErr)
	}
	if form, formErr := s.stats.TeamForm(ctx, played.HomeTeamID, played.LeagueID, DefaultFormLength); formErr == nil {
		matchCtx.HomeForm = form
	}
	if form, formErr := s.stats.TeamForm(ctx, played.AwayTeamID, played.LeagueID, DefaultFormLength); formErr == nil {
		matchCtx.AwayForm = form
	}
	if meetings, h2hErr := s.stats.HeadToHead(ctx, played.HomeTeamID, played.AwayTeamID, "", DefaultFormLength); h2hErr == nil {
		matchCtx.HeadToHead = meetings
	}
	if rows, standErr := s.stats.Standings(ctx, played.LeagueID); standErr == nil {
		if len(rows) > 10 {
			rows = rows[:10]
		}
		matchCtx.Standings = rows
	}

	return matchCtx, nil
}

func (s *PredictionService) requestForecast(ctx context.Context, matchCtx MatchContext) Forecast {
	if s.model == nil || !s.model.Configured() {
		s.logger.WarnContext(ctx, "generative model not configured, using default forecast", "match_id", matchCtx.Match.ID)
		return DefaultForecast()
	}

	raw, err := s.model.Generate(ctx, BuildForecastPrompt(matchCtx))
	if err != nil {
		s.logger.WarnContext(ctx, "generative call failed, using default forecast", "match_id", matchCtx.Match.ID, "error", err)
		return DefaultForecast()
	}
	return ParseForecast(raw)
}

// ensureUser provisions a user row on first contact. Identity arrives
// verified from upstream, so an unknown id means a first prediction,
// not an auth failure.
func (s *PredictionService) ensureUser(ctx context.Context, userID string) error {
	_, exists, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if exists {
		return nil
	}
	if _, err := s.userRepo.Upsert(ctx, user.User{ID: userID, Username: userID}); err != nil {
		return fmt.Errorf("provision user: %w", err)
	}
	return nil
}

func (s *PredictionService) upsert(ctx context.Context, userID, matchID string, values prediction.Prediction) (prediction.Prediction, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return prediction.Prediction{}, err
	}

	now := time.Now().UTC()
	existing, found, err := s.predictionRepo.GetByUserAndMatch(ctx, userID, matchID)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("get prediction: %w", err)
	}

	item := prediction.Prediction{
		UserID:     userID,
		MatchID:    matchID,
		HomeGoals:  values.HomeGoals,
		AwayGoals:  values.AwayGoals,
		Analysis:   values.Analysis,
		Confidence: values.Confidence,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if found {
		item.ID = existing.ID
		item.CreatedAt = existing.CreatedAt
	} else {
		newID, idErr := s.idgen.NewID()
		if idErr != nil {
			return prediction.Prediction{}, fmt.Errorf("generate prediction id: %w", idErr)
		}
		item.ID = newID
	}

	saved, err := s.predictionRepo.Upsert(ctx, item)
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("upsert prediction: %w", err)
	}
	return saved, nil
}
