// Package bbclient is a small API client for the BBShop backend, with a
// pull-based refresher and display helpers for headline prices.
package bbclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

// Product mirrors the backend's catalog item representation.
type Product struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Category        string           `json:"category"`
	Price           decimal.Decimal  `json:"price"`
	Description     string           `json:"description"`
	Image           string           `json:"image"`
	IsAvailable     bool             `json:"isAvailable"`
	IsSpecialOffer  bool             `json:"isSpecialOffer"`
	OfferPrice      *decimal.Decimal `json:"offerPrice,omitempty"`
	OfferValidUntil *time.Time       `json:"offerValidUntil,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// CategoryPrice is a current/previous pair for one headline category.
type CategoryPrice struct {
	Current  decimal.Decimal `json:"current"`
	Previous decimal.Decimal `json:"previous"`
}

// PriceItem is an ad-hoc named entry on the price board.
type PriceItem struct {
	Name     string          `json:"name"`
	Emoji    string          `json:"emoji"`
	Current  decimal.Decimal `json:"current"`
	Previous decimal.Decimal `json:"previous"`
	Unit     string          `json:"unit"`
}

// PriceBoard mirrors the backend's headline price snapshot.
type PriceBoard struct {
	Chicken     CategoryPrice        `json:"chicken"`
	Mutton      CategoryPrice        `json:"mutton"`
	Natukodi    CategoryPrice        `json:"natukodi"`
	Products    map[string]PriceItem `json:"products,omitempty"`
	LastUpdated time.Time            `json:"lastUpdated"`
}

// AdminProfile is the public identity returned on login.
type AdminProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Session holds an authenticated admin's token with an explicit lifecycle:
// obtained from Login, cleared on logout.
type Session struct {
	Token string
	Admin AdminProfile
}

// Clear drops the session credentials.
func (s *Session) Clear() {
	s.Token = ""
	s.Admin = AdminProfile{}
}

// Authenticated reports whether the session carries a token.
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}

// ProductQuery narrows product listings.
type ProductQuery struct {
	Category    string
	SpecialOnly bool
}

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client calls the BBShop HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a client for the API served at baseURL (for example
// "http://localhost:8080").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login authenticates and returns a session for subsequent calls.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}
	var resp struct {
		Token string       `json:"token"`
		Admin AdminProfile `json:"admin"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, body, nil, &resp); err != nil {
		return nil, err
	}
	return &Session{Token: resp.Token, Admin: resp.Admin}, nil
}

// Products lists catalog items.
func (c *Client) Products(ctx context.Context, query ProductQuery) ([]Product, error) {
	values := url.Values{}
	if query.Category != "" {
		values.Set("category", query.Category)
	}
	if query.SpecialOnly {
		values.Set("special", "true")
	}

	var products []Product
	if err := c.do(ctx, http.MethodGet, "/api/products", values, nil, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Product fetches one catalog item by ID.
func (c *Client) Product(ctx context.Context, id string) (*Product, error) {
	var product Product
	if err := c.do(ctx, http.MethodGet, "/api/products/"+id, nil, nil, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Prices fetches the headline price board.
func (c *Client) Prices(ctx context.Context) (*PriceBoard, error) {
	var board PriceBoard
	if err := c.do(ctx, http.MethodGet, "/api/prices", nil, nil, nil, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

// CurrentAdmin fetches the profile bound to the session token.
func (c *Client) CurrentAdmin(ctx context.Context, session *Session) (*AdminProfile, error) {
	var profile AdminProfile
	if err := c.do(ctx, http.MethodGet, "/api/auth/admin", nil, nil, session, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}, session *Session, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if session.Authenticated() {
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseAPIError(resp.StatusCode, resp.Body)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// parseAPIError unwraps the server's error envelope. The body is
// {"message": ...} where message is either a plain string or an
// {error, code} object.
func parseAPIError(status int, body io.Reader) error {
	apiErr := &APIError{StatusCode: status}

	var envelope struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.NewDecoder(body).Decode(&envelope); err != nil || len(envelope.Message) == 0 {
		return apiErr
	}

	var structured struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	if err := json.Unmarshal(envelope.Message, &structured); err == nil && structured.Error != "" {
		apiErr.Message = structured.Error
		apiErr.Code = structured.Code
		return apiErr
	}

	var plain string
	if err := json.Unmarshal(envelope.Message, &plain); err == nil {
		apiErr.Message = plain
	}
	return apiErr
}
