// Package calling adapts the external room-based calling provider behind
// the gateways.CallingGateway port.
package calling

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/orbitcommerce/collab_backend/internal/apperrors"
	"github.com/orbitcommerce/collab_backend/internal/core/ports/gateways"
	"github.com/golang-jwt/jwt/v5"
)

// Client talks to the provider's REST API. All failures surface as
// apperrors.ErrDependency except a missing room, which is ErrNotFound.
type Client struct {
	baseURL    string
	apiKey     string
	tokenTTL   time.Duration
	httpClient *http.Client
}

// NewClient creates a calling provider client.
func NewClient(baseURL, apiKey string, tokenTTL time.Duration) *Client {
	if tokenTTL <= 0 {
		tokenTTL = 15 * time.Minute
	}
	return &Client{
		baseURL:  baseURL,
		apiKey:   apiKey,
		tokenTTL: tokenTTL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Ensure Client implements the gateways.CallingGateway interface
var _ gateways.CallingGateway = (*Client)(nil)

type roomPayload struct {
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

func (p roomPayload) toRoom() *gateways.Room {
	return &gateways.Room{
		Name:      p.Name,
		URL:       p.URL,
		CreatedAt: p.CreatedAt,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling provider unreachable: %w: %s", apperrors.ErrDependency, err.Error())
	}
	return resp, nil
}

// CreateRoom provisions a private room at the provider. Creating a name
// that already exists returns the existing room.
func (c *Client) CreateRoom(ctx context.Context, name string) (*gateways.Room, error) {
	payload := map[string]any{
		"name":    name,
		"privacy": "private",
	}
	resp, err := c.do(ctx, http.MethodPost, "/rooms", payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		var p roomPayload
		if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
			return nil, fmt.Errorf("invalid provider response: %w: %s", apperrors.ErrDependency, err.Error())
		}
		return p.toRoom(), nil
	case http.StatusConflict:
		return c.GetRoom(ctx, name)
	default:
		return nil, providerError(resp)
	}
}

// GetRoom fetches a room by name.
func (c *Client) GetRoom(ctx context.Context, name string) (*gateways.Room, error) {
	resp, err := c.do(ctx, http.MethodGet, "/rooms/"+name, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var p roomPayload
		if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
			return nil, fmt.Errorf("invalid provider response: %w: %s", apperrors.ErrDependency, err.Error())
		}
		return p.toRoom(), nil
	case http.StatusNotFound:
		return nil, fmt.Errorf("room %s: %w", name, apperrors.ErrNotFound)
	default:
		return nil, providerError(resp)
	}
}

// DeleteRoom removes a room. Deleting a missing room is a no-op.
func (c *Client) DeleteRoom(ctx context.Context, name string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/rooms/"+name, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent, http.StatusNotFound:
		return nil
	default:
		return providerError(resp)
	}
}

// CreateJoinToken mints a short-lived HS256 token the provider verifies
// with the shared API key. Owners get the provider's moderation controls.
func (c *Client) CreateJoinToken(_ context.Context, roomName, displayName string, isOwner bool) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"r":         roomName,
		"user_name": displayName,
		"o":         isOwner,
		"iat":       now.Unix(),
		"exp":       now.Add(c.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(c.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign join token: %w", err)
	}
	return signed, nil
}

func providerError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("calling provider returned %d: %w: %s", resp.StatusCode, apperrors.ErrDependency, string(body))
}
