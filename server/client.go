package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"boardteacher/agent"
	"boardteacher/game"
	"boardteacher/utils"
)

// Client is an agent that asks a remote move server for its moves.
type Client struct {
	BaseURL string
	codec   game.Codec
	http    *http.Client
	// exploration is sent with every request when set.
	exploration *float64
}

type ClientOption func(c *Client)

func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) {
		c.http = h
	}
}

func WithRemoteExploration(exploration float64) ClientOption {
	return func(c *Client) {
		c.exploration = &exploration
	}
}

func NewClient(baseURL string, codec game.Codec, options ...ClientOption) *Client {
	c := &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		codec:   codec,
		http:    http.DefaultClient,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

var _ agent.Agent = (*Client)(nil)

// FindMove posts the position key to the server and returns the matching
// legal move.
func (c *Client) FindMove(state game.State) (game.Move, error) {
	moves := state.LegalMoves()
	if state.Outcome() != game.InProgress || len(moves) == 0 {
		return nil, agent.ErrNoLegalMoves
	}

	body, err := json.Marshal(MoveRequest{
		Key:         string(c.codec.Encode(state)),
		Exploration: c.exploration,
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1/%s/move", c.BaseURL, c.codec.Name())
	resp, err := c.http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("request move: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("move server returned status %d: %s", resp.StatusCode, bytes.TrimSpace(out))
	}

	var reply MoveResponse
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil, fmt.Errorf("decode move: %w", err)
	}
	i := utils.FindIndexFunc(moves, func(m game.Move) bool {
		return c.codec.EncodeMove(m) == reply.Move
	})
	if i < 0 {
		return nil, fmt.Errorf("%w: server played illegal move %q", game.ErrMalformedMove, reply.Move)
	}
	return moves[i], nil
}
