package usecase

import (
	"regexp"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
)

const (
	FallbackAnalysis   = "Prediccion generada sin analisis detallado."
	fallbackConfidence = 50.0
)

var integerRegex = regexp.MustCompile(`-?\d+`)

// Forecast is the structured result extracted from model output. Goal and
// confidence clamping is left to the caller.
type Forecast struct {
	HomeGoals  int
	AwayGoals  int
	Analysis   string
	Confidence float64
}

// ParseForecast turns free-form model text into a Forecast. Stages, tried
// in order: the substring between the first '{' and last '}' parsed as a
// JSON object; the first two integers scraped from the raw text; a fixed
// 1-1 default. Never fails.
func ParseForecast(raw string) Forecast {
	if parsed, ok := parseJSONObject(raw); ok {
		return parsed
	}
	if parsed, ok := scrapeIntegers(raw); ok {
		return parsed
	}
	return DefaultForecast()
}

// DefaultForecast is the canned low-information result used when the model
// is unreachable or its output is unusable.
func DefaultForecast() Forecast {
	return Forecast{
		HomeGoals:  1,
		AwayGoals:  1,
		Analysis:   FallbackAnalysis,
		Confidence: fallbackConfidence,
	}
}

func parseJSONObject(raw string) (Forecast, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return Forecast{}, false
	}

	var payload map[string]any
	if err := sonic.Unmarshal([]byte(raw[start:end+1]), &payload); err != nil {
		return Forecast{}, false
	}

	analysis := strings.TrimSpace(stringValue(payload["analisis"]))
	if analysis == "" {
		analysis = strings.TrimSpace(raw)
	}
	return Forecast{
		HomeGoals:  intValue(payload["goles_local"], 1),
		AwayGoals:  intValue(payload["goles_visitante"], 1),
		Analysis:   analysis,
		Confidence: floatValue(payload["confianza"], fallbackConfidence),
	}, true
}

func scrapeIntegers(raw string) (Forecast, bool) {
	found := integerRegex.FindAllString(raw, 2)
	if len(found) == 0 {
		return Forecast{}, false
	}

	home, _ := strconv.Atoi(found[0])
	away := 1
	if len(found) > 1 {
		away, _ = strconv.Atoi(found[1])
	}
	return Forecast{
		HomeGoals:  home,
		AwayGoals:  away,
		Analysis:   strings.TrimSpace(raw),
		Confidence: fallbackConfidence,
	}, true
}

func stringValue(raw any) string {
	value, _ := raw.(string)
	return value
}

func intValue(raw any, fallback int) int {
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
			return fallback
		}
		return value
	default:
		return fallback
	}
}

func floatValue(raw any, fallback float64) float64 {
	switch typed := raw.(type) {
	case float64:
		return typed
	case int:
		return float64(typed)
	case int64:
		return float64(typed)
	case string:
		value, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return fallback
		}
		return value
	default:
		return fallback
	}
}
