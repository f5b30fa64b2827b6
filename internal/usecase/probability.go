package usecase

import (
	"math"
	"strings"
)

const (
	probabilityBase     = 0.33
	probabilityDrawBase = 0.34
	winRateWeight       = 0.2
	goalFactorWeight    = 0.05
	formFactorStep      = 0.1
	homeAdvantage       = 0.15
	probabilityFloor    = 0.1
)

// Probabilities is a three-way outcome distribution in percent. The
// components sum to 100.0 within one-decimal rounding.
type Probabilities struct {
	Home float64
	Draw float64
	Away float64
}

// DefaultProbabilities is used whenever either side has no finished
// match history to score from.
func DefaultProbabilities() Probabilities {
	return Probabilities{Home: 40.0, Draw: 30.0, Away: 30.0}
}

// OutcomeProbabilities scores a fixture from both teams' aggregates and
// last-5 form. The model is a heuristic, not a calibrated one, and is
// fully deterministic for identical inputs.
func OutcomeProbabilities(home, away TeamStats, homeForm, awayForm string) Probabilities {
	if home.Played == 0 || away.Played == 0 {
		return DefaultProbabilities()
	}

	winRateHome := home.WinPercentage / 100
	winRateAway := away.WinPercentage / 100
	goalFactorHome := home.AvgFor - away.AvgAgainst
	goalFactorAway := away.AvgFor - home.AvgAgainst

	baseHome := probabilityBase + winRateWeight*winRateHome + goalFactorWeight*goalFactorHome + homeAdvantage + formFactor(homeForm)
	baseAway := probabilityBase + winRateWeight*winRateAway + goalFactorWeight*goalFactorAway + formFactor(awayForm)
	baseDraw := probabilityDrawBase - formFactorStep*math.Abs(winRateHome-winRateAway)

	baseHome = math.Max(baseHome, probabilityFloor)
	baseAway = math.Max(baseAway, probabilityFloor)
	baseDraw = math.Max(baseDraw, probabilityFloor)

	total := baseHome + baseAway + baseDraw
	return Probabilities{
		Home: round1(100 * baseHome / total),
		Draw: round1(100 * baseDraw / total),
		Away: round1(100 * baseAway / total),
	}
}

// formFactor rewards each recent win by one step and penalizes each loss
// by one; draws and the no-data sentinel contribute nothing.
func formFactor(form string) float64 {
	if form == FormNoData {
		return 0
	}
	factor := 0.0
	for _, result := range strings.ToUpper(form) {
		switch result {
		case 'W':
			factor += formFactorStep
		case 'L':
			factor -= formFactorStep
		}
	}
	return factor
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}
