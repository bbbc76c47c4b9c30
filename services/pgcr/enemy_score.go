package pgcr

// scoreResolver looks for the opposing team's score in one part of the record.
type scoreResolver func(detail *MatchDetail, playerTeam string) (float64, bool)

// enemyScoreResolvers are tried in order. Teams are sometimes missing from a
// record, in which case an opposing entry's score is the next best source.
var enemyScoreResolvers = []scoreResolver{
	scoreFromTeams,
	scoreFromEntries,
}

func enemyTeamScore(detail *MatchDetail, playerTeam string) float64 {
	for _, resolve := range enemyScoreResolvers {
		if score, ok := resolve(detail, playerTeam); ok {
			return score
		}
	}
	return 0
}

// scoreFromTeams takes the score of the first team not named like the player's.
func scoreFromTeams(detail *MatchDetail, playerTeam string) (float64, bool) {
	for _, team := range detail.Teams {
		if team.TeamName != playerTeam {
			return team.Score.Number()
		}
	}
	return 0, false
}

// scoreFromEntries takes the score of the first participant on another team.
func scoreFromEntries(detail *MatchDetail, playerTeam string) (float64, bool) {
	for _, entry := range detail.Entries {
		team, ok := entry.Values.Team.Display()
		if !ok {
			continue
		}
		if team != playerTeam {
			return entry.Score.Number()
		}
	}
	return 0, false
}
