package usecase

import (
	"fmt"
	"strings"
)

// BuildForecastPrompt renders the match context into the instruction text
// sent to the generative model. The model is asked for a JSON object with
// goles_local, goles_visitante, analisis and confianza keys; ParseForecast
// tolerates anything it sends back anyway.
func BuildForecastPrompt(matchCtx MatchContext) string {
	home := firstFilled(matchCtx.HomeTeam.Name, "Equipo Local")
	away := firstFilled(matchCtx.AwayTeam.Name, "Equipo Visitante")

	var builder strings.Builder
	builder.WriteString("Eres un experto analista de futbol. Analiza el siguiente partido y proporciona una prediccion detallada.\n\n")
	builder.WriteString("PARTIDO:\n")
	fmt.Fprintf(&builder, "- Liga: %s\n", firstFilled(matchCtx.League.Name, "Liga"))
	fmt.Fprintf(&builder, "- Equipo Local: %s\n", home)
	fmt.Fprintf(&builder, "- Equipo Visitante: %s\n", away)
	if !matchCtx.Match.KickoffAt.IsZero() {
		fmt.Fprintf(&builder, "- Fecha: %s\n", matchCtx.Match.KickoffAt.Format("2006-01-02 15:04"))
	}

	if matchCtx.HomeStats.Played > 0 || matchCtx.AwayStats.Played > 0 {
		builder.WriteString("\nESTADISTICAS:\n")
		writeTeamLine(&builder, home, matchCtx.HomeStats, matchCtx.HomeForm)
		writeTeamLine(&builder, away, matchCtx.AwayStats, matchCtx.AwayForm)
	}

	if len(matchCtx.HeadToHead) > 0 {
		builder.WriteString("\nENFRENTAMIENTOS DIRECTOS RECIENTES:\n")
		for _, item := range matchCtx.HeadToHead {
			fmt.Fprintf(&builder, "- %s: %d-%d\n", item.KickoffAt.Format("2006-01-02"), item.HomeGoals, item.AwayGoals)
		}
	}

	if len(matchCtx.Standings) > 0 {
		builder.WriteString("\nTABLA DE POSICIONES (top):\n")
		for _, row := range matchCtx.Standings {
			fmt.Fprintf(&builder, "%d. %s - %d pts (DG %+d)\n", row.Position, row.TeamName, row.Points, row.GoalDifference)
		}
	}

	builder.WriteString("\nPor favor, proporciona:\n")
	builder.WriteString("1. Prediccion del marcador final\n")
	builder.WriteString("2. Un analisis breve explicando tu prediccion\n")
	builder.WriteString("3. Nivel de confianza (0-100)\n\n")
	builder.WriteString("Responde en formato JSON:\n")
	builder.WriteString(`{"goles_local": X, "goles_visitante": Y, "analisis": "tu analisis aqui", "confianza": Z}`)
	builder.WriteString("\n")

	return builder.String()
}

func writeTeamLine(builder *strings.Builder, name string, stats TeamStats, form string) {
	if stats.Played == 0 {
		fmt.Fprintf(builder, "- %s: sin partidos finalizados\n", name)
		return
	}
	fmt.Fprintf(builder, "- %s: PJ %d, G %d, E %d, P %d, GF %d, GC %d, forma %s\n",
		name, stats.Played, stats.Wins, stats.Draws, stats.Losses, stats.GoalsFor, stats.GoalsAgainst, form)
}
