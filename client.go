package mess

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sudharshan-del/Hostel-Management/catalog"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrRequestFailed is returned when the server answers with a non-2xx status.
var ErrRequestFailed = errors.New("mess: request failed")

// APIError carries the status and message of a failed API call.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mess: server returned %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return ErrRequestFailed
}

// Client talks to a running feedback server.
type Client struct {
	baseURL    string
	http       *http.Client
	adminToken string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.http = hc
	}
}

// WithAdminToken makes the client authenticate admin calls with token. It
// applies to whichever HTTP client ends up configured, regardless of option
// order.
func WithAdminToken(token string) ClientOption {
	return func(c *Client) {
		c.adminToken = token
	}
}

// NewClient creates a client for the server at baseURL, e.g.
// "http://localhost:8000".
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	if c.adminToken != "" {
		hc := *c.http
		hc.Transport = AdminTransport(c.adminToken, hc.Transport)
		c.http = &hc
	}
	return c
}

// SubmitVote casts one vote.
func (c *Client) SubmitVote(ctx context.Context, v Vote) error {
	body := strings.NewReader(strconv.Itoa(v.Index()))
	_, err := c.do(ctx, http.MethodPost, "/submit", "text/plain", body)
	return err
}

// Stats fetches the current vote counts.
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	b, err := c.do(ctx, http.MethodGet, "/stats", "", nil)
	if err != nil {
		return Stats{}, err
	}
	var stats Stats
	if err := json.Unmarshal(b, &stats); err != nil {
		return Stats{}, fmt.Errorf("mess: decode stats: %w", err)
	}
	return stats, nil
}

// Menu fetches the menu served on date.
func (c *Client) Menu(ctx context.Context, date time.Time) (catalog.DayMenu, error) {
	b, err := c.do(ctx, http.MethodGet, "/menu?date="+url.QueryEscape(date.Format(DateLayout)), "", nil)
	if err != nil {
		return catalog.DayMenu{}, err
	}
	var menu catalog.DayMenu
	if err := json.Unmarshal(b, &menu); err != nil {
		return catalog.DayMenu{}, fmt.Errorf("mess: decode menu: %w", err)
	}
	return menu, nil
}

// UpdateMenu overwrites one meal of the weekly menu. The client must have been
// created with WithAdminToken when the server requires one.
func (c *Client) UpdateMenu(ctx context.Context, day time.Weekday, meal catalog.Meal, item catalog.Item) error {
	b, err := json.Marshal(updateBody{
		Day:     strings.ToUpper(day.String()),
		Meal:    meal.String(),
		Item:    item.Item,
		Carbs:   item.Carbs,
		Fat:     item.Fat,
		Protein: item.Protein,
	})
	if err != nil {
		return fmt.Errorf("mess: encode menu update: %w", err)
	}
	_, err = c.do(ctx, http.MethodPost, "/admin/update", "application/json", bytes.NewReader(b))
	return err
}

// updateBody is the JSON form of an admin menu update. Unlike the pipe form it
// carries values containing '|'.
type updateBody struct {
	Day     string `json:"day"`
	Meal    string `json:"meal"`
	Item    string `json:"item"`
	Carbs   string `json:"carbs"`
	Fat     string `json:"fat"`
	Protein string `json:"protein"`
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errorMessage(b)}
	}
	return b, nil
}

func errorMessage(b []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(b, &body) == nil && body.Error != "" {
		return body.Error
	}
	return strings.TrimSpace(string(b))
}
