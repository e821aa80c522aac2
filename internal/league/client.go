package league

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"golang.org/x/sync/singleflight"

	"nuclight.org/squashbot/internal/game"
)

const (
	DefaultBaseURL = "http://msliga.ru/api/v0"
	DefaultSiteURL = "http://msliga.ru"

	defaultTimeout  = 10 * time.Second
	maxResponseSize = 4 << 20
	maxErrorBody    = 256
)

// ErrUnexpectedStatus is returned for any non-2xx reply.
var ErrUnexpectedStatus = errors.New("league api: unexpected status")

// StatusError carries the status code and a prefix of the body of a failed call.
type StatusError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("league api: %s %s: status %d: %s", e.Method, e.Path, e.Status, e.Body)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	SiteURL    string
	Token      string
	Timeout    time.Duration
}

// Client talks to the league record-keeping service. Calls are not retried.
type Client struct {
	httpClient *http.Client
	baseURL    string
	siteURL    string
	token      string
	flight     singleflight.Group
}

func NewClient(cfg ClientConfig) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	siteURL := strings.TrimRight(strings.TrimSpace(cfg.SiteURL), "/")
	if siteURL == "" {
		siteURL = DefaultSiteURL
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		siteURL:    siteURL,
		token:      strings.TrimSpace(cfg.Token),
	}
}

type locationDTO struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type playerDTO struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type gameDTO struct {
	Player1     int64  `json:"player1"`
	Player2     int64  `json:"player2"`
	Result1     int    `json:"result1"`
	Result2     int    `json:"result2"`
	Location    int64  `json:"location"`
	League      int64  `json:"league"`
	EndDatetime string `json:"end_datetime"`
}

// Locations lists every court known to the league service.
func (c *Client) Locations(ctx context.Context) ([]game.Location, error) {
	var dtos []locationDTO
	if err := c.getJSON(ctx, "/locations/", &dtos); err != nil {
		return nil, err
	}
	out := make([]game.Location, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, game.Location{ID: d.ID, Title: strings.TrimSpace(d.Title)})
	}
	return out, nil
}

// Players lists active players of a league.
func (c *Client) Players(ctx context.Context, leagueID int64) ([]game.Player, error) {
	if leagueID <= 0 {
		return nil, fmt.Errorf("league id must be greater than zero")
	}
	var dtos []playerDTO
	if err := c.getJSON(ctx, fmt.Sprintf("/leagues/%d/players/", leagueID), &dtos); err != nil {
		return nil, err
	}
	out := make([]game.Player, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, game.Player{
			ID:        d.ID,
			FirstName: strings.TrimSpace(d.FirstName),
			LastName:  strings.TrimSpace(d.LastName),
		})
	}
	return out, nil
}

// PublishResult posts a finished game.
func (c *Client) PublishResult(ctx context.Context, p game.ResultPayload) error {
	body, err := sonic.Marshal(gameDTO{
		Player1:     p.Player1,
		Player2:     p.Player2,
		Result1:     p.Score1,
		Result2:     p.Score2,
		Location:    p.Location,
		League:      p.League,
		EndDatetime: p.EndDatetime,
	})
	if err != nil {
		return fmt.Errorf("encode game: %w", err)
	}
	_, err = c.do(ctx, http.MethodPost, "/games/", body)
	return err
}

// PlayerProfileURL links to a player's page in the league.
func (c *Client) PlayerProfileURL(leagueID, playerID int64) string {
	return fmt.Sprintf("%s/competitors/%d/leagues/%d/", c.siteURL, playerID, leagueID)
}

// getJSON fetches path and decodes it into target. Concurrent identical
// requests share one round trip.
func (c *Client) getJSON(ctx context.Context, path string, target any) error {
	out, err, _ := c.flight.Do(path, func() (any, error) {
		return c.do(ctx, http.MethodGet, path, nil)
	})
	if err != nil {
		return err
	}
	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("league api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("league api: read %s %s: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Method: method, Path: path, Status: resp.StatusCode, Body: abbreviate(raw)}
	}
	return raw, nil
}

func abbreviate(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if len(s) > maxErrorBody {
		return s[:maxErrorBody] + "..."
	}
	return s
}

var (
	_ game.LeagueDirectory = (*Client)(nil)
	_ game.Publisher       = (*Client)(nil)
)
