package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"clanTracker/set"

	"github.com/rs/zerolog/log"
)

// Source loads the clan roster for a run.
type Source interface {
	Load(ctx context.Context) ([]Player, error)
}

// FileSource reads a clan member export from a JSON file.
type FileSource struct {
	Path string
}

var _ Source = (*FileSource)(nil)

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Load(_ context.Context) ([]Player, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster %s: %w", s.Path, err)
	}
	defer f.Close()

	var members []Member
	if err := json.NewDecoder(f).Decode(&members); err != nil {
		return nil, fmt.Errorf("failed to parse roster %s: %w", s.Path, err)
	}
	return Dedupe(toPlayers(members)), nil
}

func toPlayers(members []Member) []Player {
	players := make([]Player, 0, len(members))
	for _, m := range members {
		players = append(players, m.DestinyUserInfo)
	}
	return players
}

// Dedupe drops repeated membership ids and players without an id, keeping
// the first occurrence and the roster order.
func Dedupe(players []Player) []Player {
	seen := set.New[string]()
	result := make([]Player, 0, len(players))
	for _, p := range players {
		if p.ID == "" {
			log.Warn().Str("displayName", p.DisplayName).Msg("Skipping roster entry without membership id")
			continue
		}
		if !seen.Add(p.ID) {
			log.Debug().Str("membershipId", p.ID).Msg("Skipping duplicate roster entry")
			continue
		}
		result = append(result, p)
	}
	return result
}
