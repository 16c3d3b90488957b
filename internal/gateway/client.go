// Package gateway is the HTTP client for the external rental API. It is the
// only place this application talks to the network: vehicles, authentication
// and reservations are all consumed here, never implemented. Failures are
// returned to the caller untouched; there is no retry policy at this layer.
package gateway

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

	"github.com/carrentapp/carrent/internal/models"
	"github.com/carrentapp/carrent/internal/reservation"
)

// ErrNotFound reports a vehicle or reservation id the backend no longer
// knows about.
var ErrNotFound = errors.New("not found")

// APIError is a non-success response from the rental API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("rental api: %d %s", e.Status, e.Message)
}

// Client calls the rental API over plain JSON/HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a Client for the API at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// AvailableVehicles fetches the full rentable fleet.
func (c *Client) AvailableVehicles(ctx context.Context) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	if err := c.do(ctx, http.MethodGet, "/vehicles/available", nil, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

// VehicleByID fetches one vehicle. A backend 404 is reported as ErrNotFound
// so callers can redirect to the catalogue instead of surfacing a raw error.
func (c *Client) VehicleByID(ctx context.Context, id int64) (*models.Vehicle, error) {
	var v models.Vehicle
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/vehicles/%d", id), nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// SignIn exchanges credentials for the authenticated user's identity.
func (c *Client) SignIn(ctx context.Context, req models.SignInRequest) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodPost, "/auth/signin", req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// SignUp registers a new account and returns the created identity.
func (c *Client) SignUp(ctx context.Context, req models.SignUpRequest) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodPost, "/auth/signup", req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateReservation submits an assembled wizard payload.
func (c *Client) CreateReservation(ctx context.Context, p reservation.Payload) error {
	return c.do(ctx, http.MethodPost, "/reservations", p, nil)
}

// CancelReservation cancels an existing reservation.
func (c *Client) CancelReservation(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/reservations/%d/cancel", id), nil, nil)
}

// ClientReservations lists a client's reservations.
func (c *Client) ClientReservations(ctx context.Context, clientID int64) ([]models.ReservationSummary, error) {
	var list []models.ReservationSummary
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/reservations/client/%d", clientID), nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// do performs one JSON request/response round trip. A nil out discards the
// response body; a nil in sends no body.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("rental api unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: readMessage(resp.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// readMessage extracts a human-readable error from a failure body, which the
// backend sends either as plain text or as {"message": ...}.
func readMessage(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(b) == 0 {
		return "request failed"
	}
	var wrapped struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(b, &wrapped) == nil && wrapped.Message != "" {
		return wrapped.Message
	}
	return strings.TrimSpace(string(b))
}
