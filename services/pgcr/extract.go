package pgcr

import (
	"sort"

	"clanTracker/services/report"
	"clanTracker/services/roster"
)

// MatchStrategy decides how the player's entry is located in a match.
type MatchStrategy int

const (
	// MatchByMembershipID compares membership ids and is the default.
	MatchByMembershipID MatchStrategy = iota
	// MatchByDisplayName compares display names. Names can change between
	// matches, so rows may go missing with this strategy.
	MatchByDisplayName
)

func StrategyFromString(s string) MatchStrategy {
	if s == "displayName" {
		return MatchByDisplayName
	}
	return MatchByMembershipID
}

type Extractor struct {
	Strategy MatchStrategy
}

func NewExtractor(strategy MatchStrategy) Extractor {
	return Extractor{Strategy: strategy}
}

// Extract builds the report row for player out of a single match record.
func (x Extractor) Extract(detail *MatchDetail, player roster.Player) (report.Row, error) {
	if detail == nil {
		return report.Row{}, &ExtractionError{Field: "match"}
	}
	if detail.ActivityDetails == nil {
		return report.Row{}, &ExtractionError{Field: "activityDetails"}
	}
	matchID := detail.ActivityDetails.InstanceID
	if detail.ActivityDetails.Readable == nil {
		return report.Row{}, &ExtractionError{MatchID: matchID, Field: "activityDetails.readable"}
	}

	playerEntry, ok := x.findEntry(detail.Entries, player)
	if !ok {
		return report.Row{}, ErrEntryNotFound
	}

	fireteamID, ok := playerEntry.Values.FireteamID.Number()
	if !ok {
		return report.Row{}, &ExtractionError{MatchID: matchID, Field: "values.fireteamId"}
	}
	members, err := fireteamMembers(detail.Entries, fireteamID, matchID)
	if err != nil {
		return report.Row{}, err
	}

	playerTeam, _ := playerEntry.Values.Team.Display()

	row := report.Row{
		MatchID:         matchID,
		Timestamp:       detail.Period,
		Activity:        detail.ActivityDetails.Readable.ActivityTypeName,
		Map:             detail.ActivityDetails.Readable.MapName,
		Player:          player.DisplayName,
		FireteamSize:    len(members),
		FireteamMembers: members,
		Team:            playerTeam,
		EnemyTeamScore:  enemyTeamScore(detail, playerTeam),
	}

	displays := []struct {
		field string
		value *StatValue
		dst   *string
	}{
		{"values.standing", playerEntry.Values.Standing, &row.Result},
		{"values.completed", playerEntry.Values.Completed, &row.Completed},
	}
	for _, d := range displays {
		v, ok := d.value.Display()
		if !ok {
			return report.Row{}, &ExtractionError{MatchID: matchID, Field: d.field}
		}
		*d.dst = v
	}

	numbers := []struct {
		field string
		value *StatValue
		dst   *float64
	}{
		{"values.teamScore", playerEntry.Values.TeamScore, &row.TeamScore},
		{"values.score", playerEntry.Values.Score, &row.Score},
		{"values.kills", playerEntry.Values.Kills, &row.Kills},
		{"values.assists", playerEntry.Values.Assists, &row.Assists},
		{"values.deaths", playerEntry.Values.Deaths, &row.Deaths},
	}
	for _, n := range numbers {
		v, ok := n.value.Number()
		if !ok {
			return report.Row{}, &ExtractionError{MatchID: matchID, Field: n.field}
		}
		*n.dst = v
	}

	return row, nil
}

func (x Extractor) findEntry(entries []Entry, player roster.Player) (Entry, bool) {
	for _, entry := range entries {
		if entry.Player == nil {
			continue
		}
		switch x.Strategy {
		case MatchByDisplayName:
			if entry.displayName() == player.DisplayName {
				return entry, true
			}
		default:
			if entry.membershipID() == player.ID {
				return entry, true
			}
		}
	}
	return Entry{}, false
}

// fireteamMembers returns the sorted display names of every entry sharing fireteamID,
// the player included.
func fireteamMembers(entries []Entry, fireteamID float64, matchID string) ([]string, error) {
	members := make([]string, 0)
	for _, entry := range entries {
		id, ok := entry.Values.FireteamID.Number()
		if !ok {
			return nil, &ExtractionError{MatchID: matchID, Field: "entries.values.fireteamId"}
		}
		if id == fireteamID {
			members = append(members, entry.displayName())
		}
	}
	sort.Strings(members)
	return members, nil
}
