package httpapi

import (
	"context"
	"time"

	"github.com/Nicolasff12/PrediccionFutbol/internal/domain/league"
	"github.com/Nicolasff12/PrediccionFutbol/internal/domain/prediction"
	"github.com/Nicolasff12/PrediccionFutbol/internal/domain/team"
	"github.com/Nicolasff12/PrediccionFutbol/internal/usecase"
)

type leagueDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	LogoURL string `json:"logoUrl"`
}

type teamDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Short    string `json:"short"`
	CrestURL string `json:"crestUrl"`
}

type matchDTO struct {
	ID        string    `json:"id"`
	LeagueID  string    `json:"leagueId"`
	HomeTeam  teamDTO   `json:"homeTeam"`
	AwayTeam  teamDTO   `json:"awayTeam"`
	KickoffAt time.Time `json:"kickoffAt"`
	HomeGoals int       `json:"homeGoals"`
	AwayGoals int       `json:"awayGoals"`
	Status    string    `json:"status"`
}

type standingRowDTO struct {
	Position       int    `json:"position"`
	TeamID         string `json:"teamId"`
	TeamName       string `json:"teamName"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Draw           int    `json:"draw"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goalsFor"`
	GoalsAgainst   int    `json:"goalsAgainst"`
	GoalDifference int    `json:"goalDifference"`
	Points         int    `json:"points"`
}

type venueStatsDTO struct {
	Played       int     `json:"played"`
	Wins         int     `json:"wins"`
	Draws        int     `json:"draws"`
	Losses       int     `json:"losses"`
	GoalsFor     int     `json:"goalsFor"`
	GoalsAgainst int     `json:"goalsAgainst"`
	AvgFor       float64 `json:"avgFor"`
	AvgAgainst   float64 `json:"avgAgainst"`
}

type teamStatsDTO struct {
	TeamID         string        `json:"teamId"`
	Played         int           `json:"played"`
	Wins           int           `json:"wins"`
	Draws          int           `json:"draws"`
	Losses         int           `json:"losses"`
	GoalsFor       int           `json:"goalsFor"`
	GoalsAgainst   int           `json:"goalsAgainst"`
	GoalDifference int           `json:"goalDifference"`
	AvgFor         float64       `json:"avgFor"`
	AvgAgainst     float64       `json:"avgAgainst"`
	WinPercentage  float64       `json:"winPercentage"`
	DrawPercentage float64       `json:"drawPercentage"`
	LossPercentage float64       `json:"lossPercentage"`
	Points         int           `json:"points"`
	Home           venueStatsDTO `json:"home"`
	Away           venueStatsDTO `json:"away"`
}

type probabilitiesDTO struct {
	Home float64 `json:"home"`
	Draw float64 `json:"draw"`
	Away float64 `json:"away"`
}

type comparisonDTO struct {
	Match         matchDTO         `json:"match"`
	HomeStats     teamStatsDTO     `json:"homeStats"`
	AwayStats     teamStatsDTO     `json:"awayStats"`
	HomeForm      string           `json:"homeForm"`
	AwayForm      string           `json:"awayForm"`
	HeadToHead    []matchDTO       `json:"headToHead"`
	Standings     []standingRowDTO `json:"standings"`
	Probabilities probabilitiesDTO `json:"probabilities"`
}

type predictionDTO struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	MatchID    string    `json:"matchId"`
	HomeGoals  int       `json:"homeGoals"`
	AwayGoals  int       `json:"awayGoals"`
	Analysis   string    `json:"analysis"`
	Confidence float64   `json:"confidence"`
	Correct    *bool     `json:"correct"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type predictionStatsDTO struct {
	Total     int     `json:"total"`
	Correct   int     `json:"correct"`
	Incorrect int     `json:"incorrect"`
	Pending   int     `json:"pending"`
	Accuracy  float64 `json:"accuracy"`
}

type leagueSummaryDTO struct {
	TotalMatches    int `json:"totalMatches"`
	FinishedMatches int `json:"finishedMatches"`
	UpcomingMatches int `json:"upcomingMatches"`
	LiveMatches     int `json:"liveMatches"`
}

type homeViewDTO struct {
	League    leagueDTO        `json:"league"`
	Upcoming  []matchDTO       `json:"upcoming"`
	Recent    []matchDTO       `json:"recent"`
	Standings []standingRowDTO `json:"standings"`
	Summary   leagueSummaryDTO `json:"summary"`
}

type topScorerDTO struct {
	PlayerName string `json:"playerName"`
	TeamName   string `json:"teamName"`
	Goals      int    `json:"goals"`
}

func leagueToDTO(ctx context.Context, v league.League) leagueDTO {
	_, span := startSpan(ctx, "httpapi.leagueToDTO")
	defer span.End()

	return leagueDTO{
		ID:      v.ID,
		Name:    v.Name,
		Country: v.Country,
		LogoURL: v.LogoURL,
	}
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:       v.ID,
		Name:     v.Name,
		Short:    v.Short,
		CrestURL: v.CrestURL,
	}
}

func matchDetailToDTO(ctx context.Context, v usecase.MatchDetail) matchDTO {
	_, span := startSpan(ctx, "httpapi.matchDetailToDTO")
	defer span.End()

	return matchDTO{
		ID:        v.Match.ID,
		LeagueID:  v.Match.LeagueID,
		HomeTeam:  teamToDTO(v.HomeTeam),
		AwayTeam:  teamToDTO(v.AwayTeam),
		KickoffAt: v.Match.KickoffAt,
		HomeGoals: v.Match.HomeGoals,
		AwayGoals: v.Match.AwayGoals,
		Status:    v.Match.Status,
	}
}

func matchDetailsToDTO(ctx context.Context, items []usecase.MatchDetail) []matchDTO {
	out := make([]matchDTO, 0, len(items))
	for _, item := range items {
		out = append(out, matchDetailToDTO(ctx, item))
	}
	return out
}

func standingsToDTO(rows []usecase.StandingRow) []standingRowDTO {
	out := make([]standingRowDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, standingRowDTO{
			Position:       row.Position,
			TeamID:         row.TeamID,
			TeamName:       row.TeamName,
			Played:         row.Played,
			Won:            row.Won,
			Draw:           row.Draw,
			Lost:           row.Lost,
			GoalsFor:       row.GoalsFor,
			GoalsAgainst:   row.GoalsAgainst,
			GoalDifference: row.GoalDifference,
			Points:         row.Points,
		})
	}
	return out
}

func venueStatsToDTO(v usecase.VenueStats) venueStatsDTO {
	return venueStatsDTO{
		Played:       v.Played,
		Wins:         v.Wins,
		Draws:        v.Draws,
		Losses:       v.Losses,
		GoalsFor:     v.GoalsFor,
		GoalsAgainst: v.GoalsAgainst,
		AvgFor:       v.AvgFor,
		AvgAgainst:   v.AvgAgainst,
	}
}

func teamStatsToDTO(v usecase.TeamStats) teamStatsDTO {
	return teamStatsDTO{
		TeamID:         v.TeamID,
		Played:         v.Played,
		Wins:           v.Wins,
		Draws:          v.Draws,
		Losses:         v.Losses,
		GoalsFor:       v.GoalsFor,
		GoalsAgainst:   v.GoalsAgainst,
		GoalDifference: v.GoalDifference,
		AvgFor:         v.AvgFor,
		AvgAgainst:     v.AvgAgainst,
		WinPercentage:  v.WinPercentage,
		DrawPercentage: v.DrawPercentage,
		LossPercentage: v.LossPercentage,
		Points:         v.Points,
		Home:           venueStatsToDTO(v.Home),
		Away:           venueStatsToDTO(v.Away),
	}
}

func predictionToDTO(v prediction.Prediction) predictionDTO {
	return predictionDTO{
		ID:         v.ID,
		UserID:     v.UserID,
		MatchID:    v.MatchID,
		HomeGoals:  v.HomeGoals,
		AwayGoals:  v.AwayGoals,
		Analysis:   v.Analysis,
		Confidence: v.Confidence,
		Correct:    v.Correct,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
}

func homeViewToDTO(ctx context.Context, v usecase.HomeView) homeViewDTO {
	ctx, span := startSpan(ctx, "httpapi.homeViewToDTO")
	defer span.End()

	return homeViewDTO{
		League:    leagueToDTO(ctx, v.League),
		Upcoming:  matchDetailsToDTO(ctx, v.Upcoming),
		Recent:    matchDetailsToDTO(ctx, v.Recent),
		Standings: standingsToDTO(v.Standings),
		Summary: leagueSummaryDTO{
			TotalMatches:    v.Summary.TotalMatches,
			FinishedMatches: v.Summary.FinishedMatches,
			UpcomingMatches: v.Summary.UpcomingMatches,
			LiveMatches:     v.Summary.LiveMatches,
		},
	}
}
