package pgcr

import (
	"errors"
	"fmt"
)

var ErrEntryNotFound = errors.New("player entry not found")

// ExtractionError reports a match record missing a structure the report needs.
type ExtractionError struct {
	MatchID string
	Field   string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("match %s: missing %s", e.MatchID, e.Field)
}

// MatchDetail is the post game carnage report as served by the tracker API.
type MatchDetail struct {
	Period          string           `json:"period"`
	ActivityDetails *ActivityDetails `json:"activityDetails"`
	Entries         []Entry          `json:"entries"`
	Teams           []Team           `json:"teams"`
}

type ActivityDetails struct {
	InstanceID string    `json:"instanceId"`
	Readable   *Readable `json:"readable"`
}

type Readable struct {
	ActivityTypeName string `json:"activityTypeName"`
	MapName          string `json:"mapName"`
}

type Entry struct {
	Player *EntryPlayer `json:"player"`
	Score  *StatValue   `json:"score"`
	Values EntryValues  `json:"values"`
}

type EntryPlayer struct {
	DestinyUserInfo UserInfo `json:"destinyUserInfo"`
}

type UserInfo struct {
	MembershipID string `json:"membershipId"`
	DisplayName  string `json:"displayName"`
}

// EntryValues holds the stat lines used by the report. Any of them may be absent
// from a record, so every member is a pointer.
type EntryValues struct {
	Team       *StatValue `json:"team"`
	FireteamID *StatValue `json:"fireteamId"`
	Standing   *StatValue `json:"standing"`
	TeamScore  *StatValue `json:"teamScore"`
	Score      *StatValue `json:"score"`
	Kills      *StatValue `json:"kills"`
	Assists    *StatValue `json:"assists"`
	Deaths     *StatValue `json:"deaths"`
	Completed  *StatValue `json:"completed"`
}

type StatValue struct {
	Basic *BasicValue `json:"basic"`
}

type BasicValue struct {
	Value        *float64 `json:"value"`
	DisplayValue *string  `json:"displayValue"`
}

type Team struct {
	TeamName string     `json:"teamName"`
	Score    *StatValue `json:"score"`
}

// Number returns the raw numeric value when present.
func (s *StatValue) Number() (float64, bool) {
	if s == nil || s.Basic == nil || s.Basic.Value == nil {
		return 0, false
	}
	return *s.Basic.Value, true
}

// Display returns the human readable value when present.
func (s *StatValue) Display() (string, bool) {
	if s == nil || s.Basic == nil || s.Basic.DisplayValue == nil {
		return "", false
	}
	return *s.Basic.DisplayValue, true
}

func (e Entry) membershipID() string {
	if e.Player == nil {
		return ""
	}
	return e.Player.DestinyUserInfo.MembershipID
}

func (e Entry) displayName() string {
	if e.Player == nil {
		return ""
	}
	return e.Player.DestinyUserInfo.DisplayName
}
