package report

import (
	"strconv"
	"strings"
)

// Header is the fixed column order of every report file.
var Header = []string{
	"Match ID",
	"Timestamp",
	"Activity",
	"Map",
	"Player",
	"Fireteam Size",
	"Fireteam Members",
	"Team",
	"Result",
	"Team Score",
	"Enemy Team Score",
	"Score",
	"Kills",
	"Assists",
	"Deaths",
	"Completed",
}

// Row is one player's line for one match.
type Row struct {
	MatchID         string
	Timestamp       string
	Activity        string
	Map             string
	Player          string
	FireteamSize    int
	FireteamMembers []string
	Team            string
	Result          string
	TeamScore       float64
	EnemyTeamScore  float64
	Score           float64
	Kills           float64
	Assists         float64
	Deaths          float64
	Completed       string
}

// Record renders the row in Header order.
func (r Row) Record() []string {
	return []string{
		r.MatchID,
		r.Timestamp,
		r.Activity,
		r.Map,
		r.Player,
		strconv.Itoa(r.FireteamSize),
		strings.Join(r.FireteamMembers, "+"),
		r.Team,
		r.Result,
		FormatNumber(r.TeamScore),
		FormatNumber(r.EnemyTeamScore),
		FormatNumber(r.Score),
		FormatNumber(r.Kills),
		FormatNumber(r.Assists),
		FormatNumber(r.Deaths),
		r.Completed,
	}
}

// FormatNumber prints stat values the way the API writes them, without a trailing ".0".
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
