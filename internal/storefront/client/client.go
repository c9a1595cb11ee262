// Package client is the storefront's HTTP boundary to the backend. Every
// method is plain request/response with no retries; failures come back as
// errors the caller decides to surface or swallow.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/discgolf/storefront/internal/core/domain"
	"github.com/discgolf/storefront/internal/storefront/session"
)

// Sentinel errors mapped from backend status codes. Callers branch on
// these with errors.Is; anything else is a transport or server failure.
var (
	ErrNotFound     = errors.New("client: not found")
	ErrUnauthorized = errors.New("client: unauthorized")
	ErrConflict     = errors.New("client: conflict")
)

// Client wraps the backend's REST endpoints for users, discs, carts and
// lessons.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// New builds a Client for the backend at baseURL. A nil httpClient gets a
// default with a 10 second timeout.
func New(baseURL string, httpClient *http.Client, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: baseURL,
		http:    httpClient,
		log:     log,
	}
}

// do issues the request and decodes a JSON body into out when out is
// non-nil. Status codes 404, 401/403 and 409 collapse to the sentinel
// errors; other non-2xx codes become generic errors.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusConflict:
		return ErrConflict
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// --- Users ---

// Login authenticates against GET /users/{username}/login/{password}.
// Returns ErrNotFound for an unknown user and ErrUnauthorized for a bad
// password.
func (c *Client) Login(ctx context.Context, username, password string) (*session.Identity, error) {
	var id session.Identity
	path := "/users/" + url.PathEscape(username) + "/login/" + url.PathEscape(password)
	if err := c.do(ctx, http.MethodGet, path, nil, &id); err != nil {
		return nil, err
	}
	return &id, nil
}

// SignUp registers a new account via POST /users. Returns ErrConflict when
// the username is taken.
func (c *Client) SignUp(ctx context.Context, username, password string) (*session.Identity, error) {
	var id session.Identity
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/users", body, &id); err != nil {
		return nil, err
	}
	return &id, nil
}

// Logout calls GET /users/{username}/logout. Returns ErrUnauthorized when
// the account was not signed in.
func (c *Client) Logout(ctx context.Context, username string) error {
	return c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(username)+"/logout", nil, nil)
}

// --- Discs ---

func (c *Client) Discs(ctx context.Context) ([]domain.Disc, error) {
	var discs []domain.Disc
	if err := c.do(ctx, http.MethodGet, "/discs", nil, &discs); err != nil {
		return nil, err
	}
	return discs, nil
}

func (c *Client) Disc(ctx context.Context, id int) (*domain.Disc, error) {
	var disc domain.Disc
	if err := c.do(ctx, http.MethodGet, "/discs/"+strconv.Itoa(id), nil, &disc); err != nil {
		return nil, err
	}
	return &disc, nil
}

// DiscsByType queries GET /discs/?type=term.
func (c *Client) DiscsByType(ctx context.Context, term string) ([]domain.Disc, error) {
	var discs []domain.Disc
	path := "/discs/?type=" + url.QueryEscape(term)
	if err := c.do(ctx, http.MethodGet, path, nil, &discs); err != nil {
		return nil, err
	}
	return discs, nil
}

// FilterDiscs queries GET /discs/filter?search=term&mode=N.
func (c *Client) FilterDiscs(ctx context.Context, term string, mode domain.FilterMode) ([]domain.Disc, error) {
	var discs []domain.Disc
	path := "/discs/filter?search=" + url.QueryEscape(term) + "&mode=" + strconv.Itoa(int(mode))
	if err := c.do(ctx, http.MethodGet, path, nil, &discs); err != nil {
		return nil, err
	}
	return discs, nil
}

// --- Carts ---

// CreateCart makes an empty cart for the username via POST /carts. The
// body is the bare username, matching the backend's contract.
func (c *Client) CreateCart(ctx context.Context, username string) error {
	return c.do(ctx, http.MethodPost, "/carts", username, nil)
}

// CartContents returns the cart lines as discs carrying the requested
// quantity.
func (c *Client) CartContents(ctx context.Context, username string) ([]domain.Disc, error) {
	var discs []domain.Disc
	path := "/carts/" + url.PathEscape(username) + "/contents"
	if err := c.do(ctx, http.MethodGet, path, nil, &discs); err != nil {
		return nil, err
	}
	return discs, nil
}

func (c *Client) CartCost(ctx context.Context, username string) (float64, error) {
	var cost float64
	if err := c.do(ctx, http.MethodGet, "/carts/getCost/"+url.PathEscape(username), nil, &cost); err != nil {
		return 0, err
	}
	return cost, nil
}

func (c *Client) CartCount(ctx context.Context, username string) (int, error) {
	var count int
	if err := c.do(ctx, http.MethodGet, "/carts/getCount/"+url.PathEscape(username), nil, &count); err != nil {
		return 0, err
	}
	return count, nil
}

func (c *Client) AddToCart(ctx context.Context, username string, discID int) error {
	path := "/carts/addDisc/" + url.PathEscape(username) + "/" + strconv.Itoa(discID)
	return c.do(ctx, http.MethodPut, path, nil, nil)
}

func (c *Client) RemoveFromCart(ctx context.Context, username string, discID int) error {
	path := "/carts/removeDisc/" + url.PathEscape(username) + "/" + strconv.Itoa(discID)
	return c.do(ctx, http.MethodPut, path, nil, nil)
}

// SetQuantity overwrites a line's quantity. Mode 0 on the wire means
// "set"; zero or less removes the line.
func (c *Client) SetQuantity(ctx context.Context, username string, discID, quantity int) error {
	path := "/carts/updateDiscQuantity/" + url.PathEscape(username) + "/" +
		strconv.Itoa(discID) + "/" + strconv.Itoa(quantity) + "/0"
	return c.do(ctx, http.MethodPut, path, nil, nil)
}

// CheckCart runs the advisory stock check. The result lists discs whose
// requested quantity exceeds stock, each at its available quantity; empty
// means the cart is purchasable as requested.
func (c *Client) CheckCart(ctx context.Context, username string) ([]domain.Disc, error) {
	var conflicts []domain.Disc
	path := "/carts/checkCart/" + url.PathEscape(username)
	if err := c.do(ctx, http.MethodGet, path, nil, &conflicts); err != nil {
		return nil, err
	}
	return conflicts, nil
}

// PurchaseCart commits the purchase and returns the lines actually
// fulfilled, which may be fewer than requested.
func (c *Client) PurchaseCart(ctx context.Context, username string) ([]domain.Disc, error) {
	var purchased []domain.Disc
	path := "/carts/purchase/" + url.PathEscape(username)
	if err := c.do(ctx, http.MethodPut, path, nil, &purchased); err != nil {
		return nil, err
	}
	return purchased, nil
}

// CheckOne is CheckCart scoped to one disc. A nil disc means no conflict.
func (c *Client) CheckOne(ctx context.Context, username string, discID int) (*domain.Disc, error) {
	var conflict *domain.Disc
	path := "/carts/checkOne/" + url.PathEscape(username) + "/" + strconv.Itoa(discID)
	if err := c.do(ctx, http.MethodGet, path, nil, &conflict); err != nil {
		return nil, err
	}
	return conflict, nil
}

// PurchaseOne commits the purchase of a single cart line.
func (c *Client) PurchaseOne(ctx context.Context, username string, discID int) (*domain.Disc, error) {
	var purchased *domain.Disc
	path := "/carts/purchaseOne/" + url.PathEscape(username) + "/" + strconv.Itoa(discID)
	if err := c.do(ctx, http.MethodPut, path, nil, &purchased); err != nil {
		return nil, err
	}
	return purchased, nil
}

// --- Lessons ---

func (c *Client) Lessons(ctx context.Context) ([]domain.Lesson, error) {
	var lessons []domain.Lesson
	if err := c.do(ctx, http.MethodGet, "/lessons", nil, &lessons); err != nil {
		return nil, err
	}
	return lessons, nil
}

func (c *Client) Lesson(ctx context.Context, id int) (*domain.Lesson, error) {
	var lesson domain.Lesson
	if err := c.do(ctx, http.MethodGet, "/lessons/"+strconv.Itoa(id), nil, &lesson); err != nil {
		return nil, err
	}
	return &lesson, nil
}

// LessonsOnDate queries GET /lessons/dates/?date=MM/DD/YYYY.
func (c *Client) LessonsOnDate(ctx context.Context, date string) ([]domain.Lesson, error) {
	var lessons []domain.Lesson
	path := "/lessons/dates/?date=" + url.QueryEscape(date)
	if err := c.do(ctx, http.MethodGet, path, nil, &lessons); err != nil {
		return nil, err
	}
	return lessons, nil
}

func (c *Client) LessonsByUser(ctx context.Context, username string) ([]domain.Lesson, error) {
	var lessons []domain.Lesson
	path := "/lessons/user/" + url.PathEscape(username)
	if err := c.do(ctx, http.MethodGet, path, nil, &lessons); err != nil {
		return nil, err
	}
	return lessons, nil
}

// UpdateLesson replaces a lesson via PUT /lessons; setting the username
// claims its single subscriber slot. Returns ErrConflict when someone
// else already holds it.
func (c *Client) UpdateLesson(ctx context.Context, lesson *domain.Lesson) (*domain.Lesson, error) {
	var updated domain.Lesson
	if err := c.do(ctx, http.MethodPut, "/lessons", lesson, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
