package usecase

import (
	"math"
	"testing"
)

func sampleStats(played, wins, draws, losses, goalsFor, goalsAgainst int) TeamStats {
	stats := TeamStats{
		Played:       played,
		Wins:         wins,
		Draws:        draws,
		Losses:       losses,
		GoalsFor:     goalsFor,
		GoalsAgainst: goalsAgainst,
	}
	if played > 0 {
		stats.AvgFor = round2(float64(goalsFor) / float64(played))
		stats.AvgAgainst = round2(float64(goalsAgainst) / float64(played))
		stats.WinPercentage = round2(100 * float64(wins) / float64(played))
	}
	return stats
}

func TestOutcomeProbabilities_SumTo100(t *testing.T) {
	cases := []struct {
		name             string
		home, away       TeamStats
		homeF, awayF     string
	}{
		{"balanced", sampleStats(10, 4, 3, 3, 12, 11), sampleStats(10, 4, 3, 3, 11, 12), "WDLWD", "DWLDW"},
		{"strong home", sampleStats(10, 9, 1, 0, 30, 4), sampleStats(10, 1, 1, 8, 5, 25), "WWWWW", "LLLLL"},
		{"strong away", sampleStats(8, 0, 2, 6, 3, 18), sampleStats(8, 7, 1, 0, 22, 5), "LLDLL", "WWWWD"},
		{"no form data", sampleStats(5, 2, 2, 1, 7, 6), sampleStats(5, 1, 3, 1, 5, 5), FormNoData, FormNoData},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := OutcomeProbabilities(tc.home, tc.away, tc.homeF, tc.awayF)

			sum := got.Home + got.Draw + got.Away
			if math.Abs(sum-100.0) > 0.1 {
				t.Fatalf("probabilities must sum to 100, got %.1f (%+v)", sum, got)
			}
			if got.Home < 0 || got.Draw < 0 || got.Away < 0 {
				t.Fatalf("negative probability: %+v", got)
			}
		})
	}
}

func TestOutcomeProbabilities_Deterministic(t *testing.T) {
	home := sampleStats(12, 6, 3, 3, 20, 12)
	away := sampleStats(12, 5, 4, 3, 15, 13)

	first := OutcomeProbabilities(home, away, "WWDLW", "DDWLL")
	for i := 0; i < 50; i++ {
		if got := OutcomeProbabilities(home, away, "WWDLW", "DDWLL"); got != first {
			t.Fatalf("run %d diverged: got=%+v want=%+v", i, got, first)
		}
	}
}

func TestOutcomeProbabilities_DefaultWithoutHistory(t *testing.T) {
	want := Probabilities{Home: 40.0, Draw: 30.0, Away: 30.0}

	if got := OutcomeProbabilities(TeamStats{}, sampleStats(5, 3, 1, 1, 9, 4), FormNoData, "WWDLW"); got != want {
		t.Fatalf("home without history: got=%+v want=%+v", got, want)
	}
	if got := OutcomeProbabilities(sampleStats(5, 3, 1, 1, 9, 4), TeamStats{}, "WWDLW", FormNoData); got != want {
		t.Fatalf("away without history: got=%+v want=%+v", got, want)
	}
}

func TestOutcomeProbabilities_FloorKeepsWeakSidePositive(t *testing.T) {
	// A side with zero wins, terrible goal numbers and an all-loss run
	// would go negative without the floor.
	weak := sampleStats(10, 0, 0, 10, 1, 40)
	strong := sampleStats(10, 10, 0, 0, 40, 1)

	got := OutcomeProbabilities(strong, weak, "WWWWW", "LLLLL")
	if got.Away <= 0 {
		t.Fatalf("away probability must stay positive, got %+v", got)
	}
	if got.Home <= got.Away {
		t.Fatalf("favourite must outrank the weak side: %+v", got)
	}
}

func TestFormFactor(t *testing.T) {
	cases := []struct {
		form string
		want float64
	}{
		{"WWWWW", 0.5},
		{"LLLLL", -0.5},
		{"WDLWD", 0.1},
		{"DDDDD", 0},
		{FormNoData, 0},
		{"", 0},
	}
	for _, tc := range cases {
		if got := formFactor(tc.form); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("formFactor(%q): got=%v want=%v", tc.form, got, tc.want)
		}
	}
}
