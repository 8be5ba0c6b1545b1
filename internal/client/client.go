// Package client talks to a game server over its JSON protocol.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tobz1000/mines/internal/protocol"
)

const maxResponseSize = 64 << 20

var ErrServer = errors.New("game server error")

// ServerError is a request the server answered with an error.
type ServerError struct {
	StatusCode int
	Message    string
}

// [ServerError] implements [error]
func (e *ServerError) Error() string {
	return fmt.Sprintf("%s (status %d): %s", ErrServer, e.StatusCode, e.Message)
}

func (e *ServerError) Unwrap() error {
	return ErrServer
}

type Client struct {
	baseURL string
	name    string
	http    *http.Client
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// New returns a client for the server at baseURL, e.g.
// "http://localhost:1066/server". name identifies the player to the server.
func New(baseURL, name string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		name:    name,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Name() string {
	return c.name
}

func (c *Client) NewGame(
	ctx context.Context, req protocol.NewGameRequest,
) (*protocol.ServerResponse, error) {
	if req.Client == "" {
		req.Client = c.name
	}
	return c.action(ctx, protocol.ActionNew, req)
}

func (c *Client) Turn(
	ctx context.Context, req protocol.TurnRequest,
) (*protocol.ServerResponse, error) {
	if req.Client == "" {
		req.Client = c.name
	}
	return c.action(ctx, protocol.ActionTurn, req)
}

func (c *Client) Status(ctx context.Context, id string) (*protocol.ServerResponse, error) {
	return c.action(ctx, protocol.ActionStatus, protocol.StatusRequest{ID: id})
}

func (c *Client) action(
	ctx context.Context, action string, body any,
) (*protocol.ServerResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("unable to encode %s request: %w", action, err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/"+action, bytes.NewReader(payload),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create %s request: %w", action, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", action, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("unable to read %s response: %w", action, err)
	}

	var errResp protocol.ErrorResponse
	_ = json.Unmarshal(data, &errResp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := errResp.Error
		if msg == "" {
			msg = strings.TrimSpace(string(data))
		}
		return nil, &ServerError{StatusCode: resp.StatusCode, Message: msg}
	}
	if errResp.Error != "" {
		return nil, &ServerError{StatusCode: resp.StatusCode, Message: errResp.Error}
	}

	var status protocol.ServerResponse
	if err := json.Unmarshal(data, &status); err != nil {
		return nil, fmt.Errorf("%w: %w", protocol.ErrMalformed, err)
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	return &status, nil
}
