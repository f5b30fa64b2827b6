package match

import (
	"fmt"
	"strings"
	"time"
)

const (
	StatusScheduled = "NS"
	StatusLive      = "LIVE"
	StatusFinished  = "FT"
	StatusPostponed = "POST"
	StatusCancelled = "CANC"
)

// Match represents one fixture between two stored teams.
type Match struct {
	ID         string
	APIRef     string
	LeagueID   string
	HomeTeamID string
	AwayTeamID string
	KickoffAt  time.Time
	HomeGoals  int
	AwayGoals  int
	Status     string
	UpdatedAt  time.Time
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.HomeTeamID == "" || m.AwayTeamID == "" {
		return fmt.Errorf("match team ids are required")
	}
	if m.HomeTeamID == m.AwayTeamID {
		return fmt.Errorf("match teams must differ")
	}
	if m.HomeGoals < 0 || m.AwayGoals < 0 {
		return fmt.Errorf("match goals must not be negative")
	}
	if !IsKnownStatus(m.Status) {
		return fmt.Errorf("match status %q is unknown", m.Status)
	}

	return nil
}

func (m Match) IsFinished() bool {
	return NormalizeStatus(m.Status) == StatusFinished
}

func (m Match) Involves(teamID string) bool {
	return m.HomeTeamID == teamID || m.AwayTeamID == teamID
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func IsKnownStatus(value string) bool {
	switch NormalizeStatus(value) {
	case StatusScheduled, StatusLive, StatusFinished, StatusPostponed, StatusCancelled:
		return true
	default:
		return false
	}
}

func IsLiveStatus(status string) bool {
	return NormalizeStatus(status) == StatusLive
}

func IsFinishedStatus(status string) bool {
	return NormalizeStatus(status) == StatusFinished
}

func IsCancelledLikeStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusPostponed, StatusCancelled:
		return true
	default:
		return false
	}
}
