package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/Nicolasff12/PrediccionFutbol/internal/domain/match"
	"github.com/Nicolasff12/PrediccionFutbol/internal/infrastructure/repository/memory"
	"github.com/Nicolasff12/PrediccionFutbol/internal/platform/logging"
)

type stubProvider struct {
	leagues   []ProviderLeague
	teams     []ProviderTeam
	matches   []ProviderMatch
	recent    []ProviderMatch
	standings []ProviderStanding
	scorers   []ProviderScorer
	players   []ProviderPlayer
}

func (p *stubProvider) LeaguesByCountry(context.Context, string) []ProviderLeague {
	return p.leagues
}

func (p *stubProvider) TeamsByLeague(context.Context, string) []ProviderTeam {
	return p.teams
}

func (p *stubProvider) MatchesByLeague(context.Context, string, time.Time, time.Time) []ProviderMatch {
	return p.matches
}

func (p *stubProvider) RecentMatchesByTeam(context.Context, string, int) []ProviderMatch {
	return p.recent
}

func (p *stubProvider) StandingsByLeague(context.Context, string) []ProviderStanding {
	return p.standings
}

func (p *stubProvider) TopScorersByLeague(context.Context, string, int) []ProviderScorer {
	return p.scorers
}

func (p *stubProvider) PlayersByTeam(context.Context, string) []ProviderPlayer {
	return p.players
}

func finishedMatch(id, home, away string, homeGoals, awayGoals int, kickoff time.Time) match.Match {
	return match.Match{
		ID:         id,
		LeagueID:   "lg-1",
		HomeTeamID: home,
		AwayTeamID: away,
		HomeGoals:  homeGoals,
		AwayGoals:  awayGoals,
		Status:     match.StatusFinished,
		KickoffAt:  kickoff,
	}
}

func TestComputeTeamStats(t *testing.T) {
	base := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	items := []match.Match{
		finishedMatch("m1", "alpha", "beta", 2, 0, base),
		finishedMatch("m2", "gamma", "alpha", 1, 1, base.Add(7*24*time.Hour)),
		finishedMatch("m3", "alpha", "delta", 0, 3, base.Add(14*24*time.Hour)),
		// Scheduled matches never count.
		{ID: "m4", HomeTeamID: "alpha", AwayTeamID: "beta", Status: match.StatusScheduled, KickoffAt: base.Add(21 * 24 * time.Hour)},
	}

	stats := ComputeTeamStats("alpha", items)

	if stats.Played != 3 {
		t.Fatalf("played: got=%d want=3", stats.Played)
	}
	if stats.Wins != 1 || stats.Draws != 1 || stats.Losses != 1 {
		t.Fatalf("record: got W%d D%d L%d want W1 D1 L1", stats.Wins, stats.Draws, stats.Losses)
	}
	if stats.GoalsFor != 3 || stats.GoalsAgainst != 4 {
		t.Fatalf("goals: got %d-%d want 3-4", stats.GoalsFor, stats.GoalsAgainst)
	}
	if stats.GoalDifference != -1 {
		t.Fatalf("goal difference: got=%d want=-1", stats.GoalDifference)
	}
	if stats.AvgFor != 1.0 {
		t.Fatalf("avg for: got=%v want=1.0", stats.AvgFor)
	}
	if stats.AvgAgainst != 1.33 {
		t.Fatalf("avg against: got=%v want=1.33", stats.AvgAgainst)
	}
	if stats.Points != 4 {
		t.Fatalf("points: got=%d want=4", stats.Points)
	}

	// Venue splits: home matches m1 (W 2-0) and m3 (L 0-3), away m2 (D 1-1).
	if stats.Home.Played != 2 || stats.Home.Wins != 1 || stats.Home.Losses != 1 {
		t.Fatalf("home venue: got %+v", stats.Home)
	}
	if stats.Away.Played != 1 || stats.Away.Draws != 1 {
		t.Fatalf("away venue: got %+v", stats.Away)
	}
	if stats.Home.AvgFor != 1.0 || stats.Home.AvgAgainst != 1.5 {
		t.Fatalf("home venue averages: got for=%v against=%v", stats.Home.AvgFor, stats.Home.AvgAgainst)
	}
}

func TestComputeTeamStats_OpposingSidesMirror(t *testing.T) {
	base := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	items := []match.Match{
		finishedMatch("m1", "alpha", "beta", 2, 0, base),
		finishedMatch("m2", "beta", "alpha", 1, 1, base.Add(7*24*time.Hour)),
		finishedMatch("m3", "alpha", "beta", 0, 3, base.Add(14*24*time.Hour)),
	}

	alpha := ComputeTeamStats("alpha", items)
	beta := ComputeTeamStats("beta", items)

	// Each win is the opponent's loss; draws count for both sides.
	if alpha.Wins != beta.Losses || alpha.Losses != beta.Wins {
		t.Fatalf("wins and losses must mirror: alpha W%d L%d, beta W%d L%d",
			alpha.Wins, alpha.Losses, beta.Wins, beta.Losses)
	}
	if alpha.Draws != beta.Draws {
		t.Fatalf("draws must match: alpha=%d beta=%d", alpha.Draws, beta.Draws)
	}
	if alpha.GoalsFor != beta.GoalsAgainst || alpha.GoalsAgainst != beta.GoalsFor {
		t.Fatalf("goals must mirror: alpha %d-%d, beta %d-%d",
			alpha.GoalsFor, alpha.GoalsAgainst, beta.GoalsFor, beta.GoalsAgainst)
	}
	if alpha.GoalDifference != -beta.GoalDifference {
		t.Fatalf("goal difference must negate: alpha=%d beta=%d",
			alpha.GoalDifference, beta.GoalDifference)
	}

	alphaForm := ComputeTeamForm("alpha", items, DefaultFormLength)
	betaForm := ComputeTeamForm("beta", items, DefaultFormLength)
	if alphaForm != "LDW" || betaForm != "WDL" {
		t.Fatalf("forms must mirror per match: alpha=%q beta=%q", alphaForm, betaForm)
	}
}

func TestComputeTeamStats_NoMatches(t *testing.T) {
	stats := ComputeTeamStats("alpha", nil)
	if stats.Played != 0 || stats.AvgFor != 0 || stats.AvgAgainst != 0 {
		t.Fatalf("empty history must yield zeroes, got %+v", stats)
	}
}

func TestComputeTeamForm(t *testing.T) {
	base := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	items := []match.Match{
		finishedMatch("m1", "alpha", "beta", 2, 0, base),                       // W, oldest
		finishedMatch("m2", "gamma", "alpha", 1, 1, base.Add(24*time.Hour)),    // D
		finishedMatch("m3", "alpha", "delta", 0, 3, base.Add(48*time.Hour)),    // L
		finishedMatch("m4", "beta", "alpha", 0, 2, base.Add(72*time.Hour)),     // W, newest
		finishedMatch("mx", "gamma", "delta", 5, 0, base.Add(100*time.Hour)),   // not alpha's
		{ID: "m5", HomeTeamID: "alpha", AwayTeamID: "beta", Status: match.StatusScheduled, KickoffAt: base.Add(96 * time.Hour)},
	}

	if got := ComputeTeamForm("alpha", items, 5); got != "WLDW" {
		t.Fatalf("form: got=%q want=%q", got, "WLDW")
	}
	if got := ComputeTeamForm("alpha", items, 2); got != "WL" {
		t.Fatalf("clipped form: got=%q want=%q", got, "WL")
	}
	if got := ComputeTeamForm("unknown", items, 5); got != FormNoData {
		t.Fatalf("no-data form: got=%q want=%q", got, FormNoData)
	}
}

func TestStatsService_Standings_LocalOrder(t *testing.T) {
	base := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues())
	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	matchRepo := memory.NewMatchRepository([]match.Match{
		// alpha 6 pts GD+4, beta 6 pts GD+4 GF5, gamma 0 pts.
		{ID: "m1", LeagueID: memory.LeagueIDLaLiga, HomeTeamID: "alpha", AwayTeamID: "gamma", HomeGoals: 3, AwayGoals: 1, Status: match.StatusFinished, KickoffAt: base},
		{ID: "m2", LeagueID: memory.LeagueIDLaLiga, HomeTeamID: "gamma", AwayTeamID: "alpha", HomeGoals: 0, AwayGoals: 2, Status: match.StatusFinished, KickoffAt: base.Add(24 * time.Hour)},
		{ID: "m3", LeagueID: memory.LeagueIDLaLiga, HomeTeamID: "beta", AwayTeamID: "gamma", HomeGoals: 4, AwayGoals: 1, Status: match.StatusFinished, KickoffAt: base.Add(48 * time.Hour)},
		{ID: "m4", LeagueID: memory.LeagueIDLaLiga, HomeTeamID: "gamma", AwayTeamID: "beta", HomeGoals: 0, AwayGoals: 1, Status: match.StatusFinished, KickoffAt: base.Add(72 * time.Hour)},
	})

	service := NewStatsService(teamRepo, leagueRepo, matchRepo, nil, nil, logging.NewNop())

	rows, err := service.Standings(t.Context(), memory.LeagueIDLaLiga)
	if err != nil {
		t.Fatalf("standings failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("row count: got=%d want=3", len(rows))
	}

	// alpha and beta tie on points, goal difference and goals scored, so
	// the ascending team id tie-break decides.
	wantOrder := []string{"alpha", "beta", "gamma"}
	for idx, want := range wantOrder {
		if rows[idx].TeamID != want {
			t.Fatalf("position %d: got=%s want=%s", idx+1, rows[idx].TeamID, want)
		}
		if rows[idx].Position != idx+1 {
			t.Fatalf("position field: got=%d want=%d", rows[idx].Position, idx+1)
		}
	}
	if rows[2].Points != 0 || rows[2].Lost != 4 {
		t.Fatalf("bottom row: got %+v", rows[2])
	}
}

func TestStatsService_Standings_ProviderOrderWins(t *testing.T) {
	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues())
	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	matchRepo := memory.NewMatchRepository(nil)
	provider := &stubProvider{standings: []ProviderStanding{
		{TeamRef: "real-madrid", Position: 1, Played: 10, Won: 8, Draw: 1, Lost: 1, GoalsFor: 24, GoalsAgainst: 8, GoalDifference: 16, Points: 25},
		{TeamRef: "unknown-ref", TeamName: "Mystery FC", Position: 2, Played: 10, Points: 20},
	}}

	service := NewStatsService(teamRepo, leagueRepo, matchRepo, provider, nil, logging.NewNop())

	rows, err := service.Standings(t.Context(), memory.LeagueIDLaLiga)
	if err != nil {
		t.Fatalf("standings failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("row count: got=%d want=2", len(rows))
	}
	if rows[0].TeamID == "" || rows[0].TeamName == "" {
		t.Fatalf("provider ref must resolve to the stored team, got %+v", rows[0])
	}
	if rows[1].TeamID != "" || rows[1].TeamName != "Mystery FC" {
		t.Fatalf("unresolvable ref keeps the provider name, got %+v", rows[1])
	}
}

func TestStatsService_LeagueSummary(t *testing.T) {
	now := time.Now().UTC()
	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues())
	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	matchRepo := memory.NewMatchRepository(memory.SeedMatches(now))

	service := NewStatsService(teamRepo, leagueRepo, matchRepo, nil, nil, logging.NewNop())

	summary, err := service.LeagueSummaryByID(t.Context(), memory.LeagueIDLaLiga)
	if err != nil {
		t.Fatalf("league summary failed: %v", err)
	}
	if summary.TotalMatches != summary.FinishedMatches+summary.UpcomingMatches+summary.LiveMatches {
		t.Fatalf("summary buckets do not add up: %+v", summary)
	}
	if summary.FinishedMatches == 0 || summary.UpcomingMatches == 0 {
		t.Fatalf("seed data must contain finished and upcoming matches: %+v", summary)
	}
}

func TestStatsService_TeamStatistics_UnknownTeam(t *testing.T) {
	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues())
	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	matchRepo := memory.NewMatchRepository(nil)

	service := NewStatsService(teamRepo, leagueRepo, matchRepo, nil, nil, logging.NewNop())

	if _, err := service.TeamStatistics(t.Context(), "missing-team", ""); err == nil {
		t.Fatal("expected error for unknown team")
	}
}
