package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mroshb/watch_club/internal/models"
	"github.com/mroshb/watch_club/internal/relationship"
	"github.com/mroshb/watch_club/pkg/errors"
)

// HTTPGateway talks to the remote API over REST+JSON with bearer auth.
type HTTPGateway struct {
	baseURL string
	token   string
	client  *http.Client

	// tokenExpiry is parsed once from the session token's exp claim.
	// Zero when the token carries no readable expiry.
	tokenExpiry time.Time
}

func NewHTTPGateway(baseURL, token string, timeout time.Duration) *HTTPGateway {
	g := &HTTPGateway{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: timeout},
	}

	// The signature is the server's business; we only read the expiry
	// so a guaranteed 401 can be short-circuited locally.
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			g.tokenExpiry = exp.Time
		}
	}

	return g
}

func (g *HTTPGateway) checkToken() error {
	if !g.tokenExpiry.IsZero() && time.Now().After(g.tokenExpiry) {
		return errors.New(errors.ErrCodeUnauthorized, "session token expired")
	}
	return nil
}

// do issues one request and decodes the response body into out when
// out is non-nil. Classification of failures happens here and nowhere
// else.
func (g *HTTPGateway) do(ctx context.Context, method, path string, body, out interface{}) error {
	if err := g.checkToken(); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeUnknown, "failed to encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeUnknown, "failed to build request")
	}
	req.Header.Set("Authorization", "Bearer "+g.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeTransport, "remote store unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return classifyStatus(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Wrap(err, errors.ErrCodeUnknown, "failed to decode response")
		}
	}

	return nil
}

func classifyStatus(resp *http.Response) error {
	// Best effort: the API reports a message field on errors.
	var payload struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&payload)
	if payload.Message == "" {
		payload.Message = http.StatusText(resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return errors.New(errors.ErrCodeUnauthorized, payload.Message)
	case http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, payload.Message)
	case http.StatusConflict:
		return errors.New(errors.ErrCodeConflict, payload.Message)
	case http.StatusRequestTimeout, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return errors.New(errors.ErrCodeTransport, payload.Message)
	}
	return errors.New(errors.ErrCodeUnknown, fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, payload.Message))
}

func (g *HTTPGateway) ListTrackedItems(ctx context.Context) ([]models.TrackedItem, error) {
	var items []models.TrackedItem
	if err := g.do(ctx, http.MethodGet, "/api/items", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (g *HTTPGateway) CreateTrackedItem(ctx context.Context, draft models.ItemDraft) (*models.TrackedItem, error) {
	var item models.TrackedItem
	if err := g.do(ctx, http.MethodPost, "/api/items", draft, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (g *HTTPGateway) UpdateTrackedItem(ctx context.Context, id int64, patch models.ItemPatch) error {
	return g.do(ctx, http.MethodPatch, fmt.Sprintf("/api/items/%d", id), patch, nil)
}

func (g *HTTPGateway) DeleteTrackedItem(ctx context.Context, id int64) error {
	return g.do(ctx, http.MethodDelete, fmt.Sprintf("/api/items/%d", id), nil, nil)
}

func (g *HTTPGateway) ListFriends(ctx context.Context) ([]models.FriendProfile, error) {
	var friends []models.FriendProfile
	if err := g.do(ctx, http.MethodGet, "/api/friends", nil, &friends); err != nil {
		return nil, err
	}
	return friends, nil
}

func (g *HTTPGateway) ListIncomingRequests(ctx context.Context) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	if err := g.do(ctx, http.MethodGet, "/api/friends/requests/incoming", nil, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (g *HTTPGateway) ListOutgoingRequests(ctx context.Context) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	if err := g.do(ctx, http.MethodGet, "/api/friends/requests/outgoing", nil, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (g *HTTPGateway) GetPendingCount(ctx context.Context) (int, error) {
	var payload struct {
		Count int `json:"count"`
	}
	if err := g.do(ctx, http.MethodGet, "/api/friends/requests/count", nil, &payload); err != nil {
		return 0, err
	}
	return payload.Count, nil
}

func (g *HTTPGateway) SendFriendRequest(ctx context.Context, userID int64) (string, error) {
	body := struct {
		UserID int64 `json:"user_id"`
	}{UserID: userID}
	var payload struct {
		Status string `json:"status"`
	}
	if err := g.do(ctx, http.MethodPost, "/api/friends/requests", body, &payload); err != nil {
		return "", err
	}
	if !relationship.ValidStatus(payload.Status) {
		return "", errors.New(errors.ErrCodeUnknown, fmt.Sprintf("unexpected friendship status %q", payload.Status))
	}
	return payload.Status, nil
}

func (g *HTTPGateway) AcceptFriendRequest(ctx context.Context, requestID int64) error {
	return g.do(ctx, http.MethodPost, fmt.Sprintf("/api/friends/requests/%d/accept", requestID), nil, nil)
}

func (g *HTTPGateway) RejectFriendRequest(ctx context.Context, requestID int64) error {
	return g.do(ctx, http.MethodPost, fmt.Sprintf("/api/friends/requests/%d/reject", requestID), nil, nil)
}

func (g *HTTPGateway) RemoveFriend(ctx context.Context, userID int64) error {
	return g.do(ctx, http.MethodDelete, fmt.Sprintf("/api/friends/%d", userID), nil, nil)
}

func (g *HTTPGateway) GetFriendshipStatus(ctx context.Context, userID int64) (*relationship.EdgeStatus, error) {
	var status relationship.EdgeStatus
	if err := g.do(ctx, http.MethodGet, fmt.Sprintf("/api/friends/status/%d", userID), nil, &status); err != nil {
		return nil, err
	}
	if !relationship.ValidStatus(status.Status) {
		return nil, errors.New(errors.ErrCodeUnknown, fmt.Sprintf("unexpected friendship status %q", status.Status))
	}
	return &status, nil
}
