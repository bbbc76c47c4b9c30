package pgcr

import (
	"encoding/json"
	"fmt"
)

// Decode parses a raw record as stored in the cache.
func Decode(raw []byte) (*MatchDetail, error) {
	var detail MatchDetail
	if err := json.Unmarshal(raw, &detail); err != nil {
		return nil, fmt.Errorf("failed to decode match detail: %w", err)
	}
	return &detail, nil
}
