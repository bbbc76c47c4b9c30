package tracker

import (
	"errors"
	"fmt"
)

// ErrRemote matches every failure talking to the tracker API.
var ErrRemote = errors.New("tracker request failed")

// SessionLookupError is returned when a player's session list could not be loaded.
type SessionLookupError struct {
	Network  int64
	PlayerID string
	Err      error
}

func (e *SessionLookupError) Error() string {
	return fmt.Sprintf("failed to lookup sessions for %d/%s: %v", e.Network, e.PlayerID, e.Err)
}

func (e *SessionLookupError) Unwrap() error { return e.Err }

func (e *SessionLookupError) Is(target error) bool { return target == ErrRemote }

// MatchFetchError is returned when a match detail could not be downloaded.
type MatchFetchError struct {
	MatchID string
	Err     error
}

func (e *MatchFetchError) Error() string {
	return fmt.Sprintf("failed to fetch match %s: %v", e.MatchID, e.Err)
}

func (e *MatchFetchError) Unwrap() error { return e.Err }

func (e *MatchFetchError) Is(target error) bool { return target == ErrRemote }

// StatusError carries a non 2xx response.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e StatusError) Error() string {
	return fmt.Sprintf("bad response status: %s (code: %d)", e.Status, e.StatusCode)
}

type SessionsResponse struct {
	Sessions []Session `json:"sessions"`
}

type Session struct {
	Matches []MatchRef `json:"matches"`
}

type MatchRef struct {
	ActivityDetails struct {
		InstanceID string `json:"instanceId"`
	} `json:"activityDetails"`
}

// MatchCount is the number of matches across every session.
func (r SessionsResponse) MatchCount() int {
	count := 0
	for _, s := range r.Sessions {
		count += len(s.Matches)
	}
	return count
}
