package besoccer

import (
	"strconv"
	"strings"
	"time"

	"github.com/Nicolasff12/PrediccionFutbol/internal/usecase"
)

// The map* functions below are the only code that knows the provider's
// key-name aliases; everything downstream works with the normalized
// records and canonical match statuses.

// statusByProviderCode is the closed translation table; anything the
// provider sends outside it becomes NS.
var statusByProviderCode = map[string]string{
	"NS":          "NS",
	"LIVE":        "LIVE",
	"FT":          "FT",
	"POST":        "POST",
	"CANC":        "CANC",
	"not_started": "NS",
	"notstarted":  "NS",
	"live":        "LIVE",
	"1H":          "LIVE",
	"2H":          "LIVE",
	"HT":          "LIVE",
	"finished":    "FT",
	"full_time":   "FT",
	"postponed":   "POST",
	"cancelled":   "CANC",
	"canceled":    "CANC",
}

func MapStatus(raw string) string {
	if mapped, ok := statusByProviderCode[strings.TrimSpace(raw)]; ok {
		return mapped
	}
	return "NS"
}

func mapLeague(item map[string]any) usecase.ProviderLeague {
	return usecase.ProviderLeague{
		APIRef:  getStringAny(item, "id", "league_id"),
		Name:    getStringAny(item, "name", "nameShow", "league_name"),
		Country: getStringAny(item, "country", "country_name"),
		LogoURL: getStringAny(item, "logo", "image", "flag"),
	}
}

func mapTeam(item map[string]any) usecase.ProviderTeam {
	name := getStringAny(item, "nameShowTeam", "nameShow", "name", "fullName")
	short := getStringAny(item, "short_name", "short", "basealias")
	if runes := []rune(name); short == "" && len(runes) >= 3 {
		short = strings.ToUpper(string(runes[:3]))
	}
	return usecase.ProviderTeam{
		APIRef:   getStringAny(item, "id", "team_id"),
		Name:     name,
		Short:    short,
		CrestURL: getStringAny(item, "shield_big", "shield", "logo", "image"),
	}
}

func mapMatch(item map[string]any) usecase.ProviderMatch {
	homeRef := getStringAny(item, "home_team_id", "local_id", "idlocal")
	awayRef := getStringAny(item, "away_team_id", "visitor_id", "idvisitor")
	homeName := getStringAny(item, "home_team_name", "local", "local_name")
	awayName := getStringAny(item, "away_team_name", "visitor", "visitor_name")

	// Newer payloads nest each side as an object.
	if home := childMap(item, "home_team", "local_team"); home != nil {
		homeRef = firstNonEmpty(getStringAny(home, "id", "team_id"), homeRef)
		homeName = firstNonEmpty(getStringAny(home, "nameShowTeam", "nameShow", "name", "fullName"), homeName)
	}
	if away := childMap(item, "away_team", "visitor_team"); away != nil {
		awayRef = firstNonEmpty(getStringAny(away, "id", "team_id"), awayRef)
		awayName = firstNonEmpty(getStringAny(away, "nameShowTeam", "nameShow", "name", "fullName"), awayName)
	}

	return usecase.ProviderMatch{
		APIRef:      getStringAny(item, "id", "match_id"),
		HomeTeamRef: homeRef,
		AwayTeamRef: awayRef,
		HomeName:    homeName,
		AwayName:    awayName,
		HomeGoals:   getIntAny(item, "home_score", "goles_local", "local_goals"),
		AwayGoals:   getIntAny(item, "away_score", "goles_visitante", "visitor_goals"),
		Status:      MapStatus(getStringAny(item, "status", "estado", "status_text")),
		KickoffAt:   parseProviderDateTime(getStringAny(item, "date", "fecha", "schedule", "datetime")),
	}
}

func mapStanding(item map[string]any) usecase.ProviderStanding {
	row := usecase.ProviderStanding{
		TeamRef:      getStringAny(item, "team_id", "id"),
		TeamName:     getStringAny(item, "team", "team_name", "nameShow", "name"),
		Position:     getIntAny(item, "position", "pos"),
		Played:       getIntAny(item, "played", "pj", "matches"),
		Won:          getIntAny(item, "won", "wins", "pg"),
		Draw:         getIntAny(item, "draw", "draws", "pe"),
		Lost:         getIntAny(item, "lost", "losses", "pp"),
		GoalsFor:     getIntAny(item, "gf", "goals_for", "goalsfor"),
		GoalsAgainst: getIntAny(item, "ga", "goals_against", "goalsagainst"),
		Points:       getIntAny(item, "points", "pts", "puntos"),
	}
	if team := childMap(item, "team"); team != nil {
		row.TeamRef = firstNonEmpty(getStringAny(team, "id", "team_id"), row.TeamRef)
		row.TeamName = firstNonEmpty(getStringAny(team, "nameShowTeam", "nameShow", "name"), row.TeamName)
	}
	row.GoalDifference = getIntAny(item, "gd", "goal_difference", "avg")
	if row.GoalDifference == 0 {
		row.GoalDifference = row.GoalsFor - row.GoalsAgainst
	}
	if row.Points == 0 {
		row.Points = 3*row.Won + row.Draw
	}
	return row
}

func mapScorer(item map[string]any) usecase.ProviderScorer {
	row := usecase.ProviderScorer{
		PlayerRef:  getStringAny(item, "player_id", "id"),
		PlayerName: getStringAny(item, "player", "player_name", "nameShow", "name"),
		TeamRef:    getStringAny(item, "team_id"),
		TeamName:   getStringAny(item, "team", "team_name"),
		Goals:      getIntAny(item, "goals", "goles", "total"),
	}
	if player := childMap(item, "player"); player != nil {
		row.PlayerRef = firstNonEmpty(getStringAny(player, "id"), row.PlayerRef)
		row.PlayerName = firstNonEmpty(getStringAny(player, "nameShow", "name"), row.PlayerName)
	}
	return row
}

func mapPlayer(item map[string]any) usecase.ProviderPlayer {
	return usecase.ProviderPlayer{
		APIRef:   getStringAny(item, "id", "player_id"),
		Name:     getStringAny(item, "nameShow", "name", "fullName"),
		Position: getStringAny(item, "position", "role"),
		Number:   getIntAny(item, "number", "squad_number", "dorsal"),
	}
}

// childMap unwraps a nested object under any of the given keys, tolerating
// the {"data": {...}} wrapper some endpoint generations add.
func childMap(src map[string]any, keys ...string) map[string]any {
	for _, key := range keys {
		raw, ok := src[key]
		if !ok || raw == nil {
			continue
		}
		obj, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if data, ok := obj["data"].(map[string]any); ok {
			return data
		}
		return obj
	}
	return nil
}

func getString(src map[string]any, key string) string {
	if src == nil {
		return ""
	}
	raw, ok := src[key]
	if !ok || raw == nil {
		return ""
	}
	switch typed := raw.(type) {
	case string:
		return strings.TrimSpace(typed)
	case float64:
		if typed == float64(int64(typed)) {
			return strconv.FormatInt(int64(typed), 10)
		}
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(typed)
	default:
		return ""
	}
}

func getStringAny(src map[string]any, keys ...string) string {
	for _, key := range keys {
		if value := getString(src, key); value != "" {
			return value
		}
	}
	return ""
}

func getInt(src map[string]any, key string) int {
	if src == nil {
		return 0
	}
	raw, ok := src[key]
	if !ok || raw == nil {
		return 0
	}
	switch typed := raw.(type) {
	case float64:
		return int(typed)
	case int:
		return typed
	case int64:
		return int(typed)
	case string:
		value, err := strconv.Atoi(strings.TrimSpace(typed))
		if err != nil {
			return 0
		}
		return value
	default:
		return 0
	}
}

func getIntAny(src map[string]any, keys ...string) int {
	for _, key := range keys {
		if value := getInt(src, key); value != 0 {
			return value
		}
	}
	return 0
}

func firstNonEmpty(values ...string) string {
	for _, item := range values {
		if strings.TrimSpace(item) != "" {
			return strings.TrimSpace(item)
		}
	}
	return ""
}

func parseProviderDateTime(raw string) time.Time {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}
	}

	layouts := []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05Z07:00",
		time.RFC3339,
		"2006-01-02",
		"02/01/2006 15:04",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}
