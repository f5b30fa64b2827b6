package memory

import (
	"time"

	"github.com/Nicolasff12/PrediccionFutbol/internal/domain/league"
	"github.com/Nicolasff12/PrediccionFutbol/internal/domain/match"
	"github.com/Nicolasff12/PrediccionFutbol/internal/domain/team"
	"github.com/Nicolasff12/PrediccionFutbol/internal/domain/user"
)

const (
	LeagueIDLaLiga        = "esp-laliga"
	LeagueIDPremierLeague = "eng-premier-league"

	UserIDDemo = "demo-user"
)

func SeedLeagues() []league.League {
	return []league.League{
		{
			ID:      LeagueIDLaLiga,
			APIRef:  "laliga-2026",
			Name:    "LaLiga",
			Country: "spain",
		},
		{
			ID:      LeagueIDPremierLeague,
			APIRef:  "premier-league-2026",
			Name:    "Premier League",
			Country: "england",
		},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "esp-rma", APIRef: "real-madrid", Name: "Real Madrid", Short: "RMA"},
		{ID: "esp-fcb", APIRef: "fc-barcelona", Name: "FC Barcelona", Short: "FCB"},
		{ID: "esp-atm", APIRef: "atletico-madrid", Name: "Atletico Madrid", Short: "ATM"},
		{ID: "esp-sev", APIRef: "sevilla-fc", Name: "Sevilla FC", Short: "SEV"},
		{ID: "esp-val", APIRef: "valencia-cf", Name: "Valencia CF", Short: "VAL"},
		{ID: "esp-bet", APIRef: "real-betis", Name: "Real Betis", Short: "BET"},
	}
}

func SeedMatches(now time.Time) []match.Match {
	day := 24 * time.Hour

	return []match.Match{
		{
			ID: "esp-m1", APIRef: "laliga-m1", LeagueID: LeagueIDLaLiga,
			HomeTeamID: "esp-rma", AwayTeamID: "esp-sev",
			KickoffAt: now.Add(-21 * day), HomeGoals: 2, AwayGoals: 0,
			Status: match.StatusFinished, UpdatedAt: now.Add(-21 * day),
		},
		{
			ID: "esp-m2", APIRef: "laliga-m2", LeagueID: LeagueIDLaLiga,
			HomeTeamID: "esp-val", AwayTeamID: "esp-rma",
			KickoffAt: now.Add(-14 * day), HomeGoals: 1, AwayGoals: 1,
			Status: match.StatusFinished, UpdatedAt: now.Add(-14 * day),
		},
		{
			ID: "esp-m3", APIRef: "laliga-m3", LeagueID: LeagueIDLaLiga,
			HomeTeamID: "esp-fcb", AwayTeamID: "esp-atm",
			KickoffAt: now.Add(-14 * day), HomeGoals: 3, AwayGoals: 1,
			Status: match.StatusFinished, UpdatedAt: now.Add(-14 * day),
		},
		{
			ID: "esp-m4", APIRef: "laliga-m4", LeagueID: LeagueIDLaLiga,
			HomeTeamID: "esp-bet", AwayTeamID: "esp-fcb",
			KickoffAt: now.Add(-7 * day), HomeGoals: 0, AwayGoals: 2,
			Status: match.StatusFinished, UpdatedAt: now.Add(-7 * day),
		},
		{
			ID: "esp-m5", APIRef: "laliga-m5", LeagueID: LeagueIDLaLiga,
			HomeTeamID: "esp-rma", AwayTeamID: "esp-fcb",
			KickoffAt: now.Add(3 * day),
			Status:    match.StatusScheduled, UpdatedAt: now,
		},
		{
			ID: "esp-m6", APIRef: "laliga-m6", LeagueID: LeagueIDLaLiga,
			HomeTeamID: "esp-atm", AwayTeamID: "esp-sev",
			KickoffAt: now.Add(5 * day),
			Status:    match.StatusScheduled, UpdatedAt: now,
		},
	}
}

func SeedUsers() []user.User {
	return []user.User{
		{ID: UserIDDemo, Username: "demo", Email: "demo@prediccionfutbol.local"},
	}
}
