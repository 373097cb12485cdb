// Package ktxstats derives display-ready team names and scores from the
// hub's game statistics payloads.
package ktxstats

import (
	"strconv"

	"github.com/Xerialen/qwicky-discord-bot/internal/hub"
)

// Placeholder is shown when a name or score cannot be derived.
const Placeholder = "?"

// Scoreboard is the display form of a two-team result. Scores are decimal
// text or the placeholder.
type Scoreboard struct {
	Team1Name  string
	Team1Score string
	Team2Name  string
	Team2Score string
}

// Normalize derives team names and scores from a game record. Three
// historical payload shapes are tried in priority order: object-shaped team
// entries carrying frags directly, bare team names with a team_stats
// mapping, and bare team names with a flat player roster summed per team.
// Missing data degrades to placeholders; Normalize never fails.
func Normalize(rec *hub.GameRecord) Scoreboard {
	var t1, t2 hub.Team
	if len(rec.Teams) > 0 {
		t1 = rec.Teams[0]
	}
	if len(rec.Teams) > 1 {
		t2 = rec.Teams[1]
	}

	// Hub row shape: team entries are objects with name and frags. Names
	// are already plain text there.
	if t1.IsObject() || t2.IsObject() {
		return Scoreboard{
			Team1Name:  orPlaceholder(t1.Name),
			Team1Score: scoreText(t1.Frags),
			Team2Name:  orPlaceholder(t2.Name),
			Team2Score: scoreText(t2.Frags),
		}
	}

	sb := Scoreboard{
		Team1Name:  orPlaceholder(DecodeName(t1.Name)),
		Team1Score: Placeholder,
		Team2Name:  orPlaceholder(DecodeName(t2.Name)),
		Team2Score: Placeholder,
	}

	switch {
	case rec.TeamStats != nil:
		// Lookup keys are the raw, undecoded team names.
		if ts, ok := rec.TeamStats[t1.Name]; ok {
			sb.Team1Score = scoreText(ts.Frags)
		}
		if ts, ok := rec.TeamStats[t2.Name]; ok {
			sb.Team2Score = scoreText(ts.Frags)
		}
	case rec.Players != nil:
		var s1, s2 int
		for _, p := range rec.Players {
			switch p.Team {
			case t1.Name:
				s1 += p.FragCount()
			case t2.Name:
				s2 += p.FragCount()
			}
		}
		sb.Team1Score = strconv.Itoa(s1)
		sb.Team2Score = strconv.Itoa(s2)
	}

	return sb
}

func scoreText(frags *int) string {
	if frags == nil {
		return Placeholder
	}
	return strconv.Itoa(*frags)
}

func orPlaceholder(name string) string {
	if name == "" {
		return Placeholder
	}
	return name
}
