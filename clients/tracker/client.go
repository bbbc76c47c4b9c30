package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	sessionsPath = "/profile/{network}/{id}/sessions"
	pgcrPath     = "/pgcr/{matchId}"
)

// Client talks to the destinytracker d2 API. Requests are attempted once.
type Client struct {
	http *resty.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	c := resty.New()
	c.SetBaseURL(baseURL)
	c.SetTimeout(timeout)
	c.SetHeaders(map[string]string{
		"Accept":     "application/json",
		"User-Agent": "clanTracker",
	})
	return &Client{http: c}
}

// ListSessions returns every recorded session of a player.
func (c *Client) ListSessions(ctx context.Context, network int64, playerID string) (*SessionsResponse, error) {
	body, err := c.get(ctx, sessionsPath, map[string]string{
		"network": strconv.FormatInt(network, 10),
		"id":      playerID,
	})
	if err != nil {
		return nil, &SessionLookupError{Network: network, PlayerID: playerID, Err: err}
	}

	var result SessionsResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &SessionLookupError{
			Network:  network,
			PlayerID: playerID,
			Err:      fmt.Errorf("failed to decode sessions: %w", err),
		}
	}
	return &result, nil
}

// GetMatchDetail returns the post game carnage report exactly as served, so it
// can be cached verbatim.
func (c *Client) GetMatchDetail(ctx context.Context, matchID string) ([]byte, error) {
	body, err := c.get(ctx, pgcrPath, map[string]string{"matchId": matchID})
	if err != nil {
		return nil, &MatchFetchError{MatchID: matchID, Err: err}
	}
	if !json.Valid(body) {
		return nil, &MatchFetchError{MatchID: matchID, Err: fmt.Errorf("response is not valid JSON")}
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, path string, params map[string]string) ([]byte, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParams(params).
		Get(path)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, StatusError{StatusCode: resp.StatusCode(), Status: resp.Status()}
	}
	return resp.Body(), nil
}
