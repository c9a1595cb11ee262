package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/discgolf/storefront/internal/core/domain"
	"github.com/discgolf/storefront/internal/core/ports"
)

type stubCartService struct {
	ports.CartService

	createFn   func(ctx context.Context, username string) (*domain.Cart, error)
	checkOneFn func(ctx context.Context, username string, discID int) (*domain.Disc, error)
	updateFn   func(ctx context.Context, username string, discID, quantity, mode int) (*domain.Cart, error)
}

func (s *stubCartService) Create(ctx context.Context, username string) (*domain.Cart, error) {
	return s.createFn(ctx, username)
}

func (s *stubCartService) CheckOne(ctx context.Context, username string, discID int) (*domain.Disc, error) {
	return s.checkOneFn(ctx, username, discID)
}

func (s *stubCartService) UpdateQuantity(ctx context.Context, username string, discID, quantity, mode int) (*domain.Cart, error) {
	return s.updateFn(ctx, username, discID, quantity, mode)
}

func TestCartHandler_Create_AcceptsBareAndQuotedUsernames(t *testing.T) {
	for _, body := range []string{"alice", `"alice"`} {
		e := echo.New()
		var got string
		stub := &stubCartService{
			createFn: func(_ context.Context, username string) (*domain.Cart, error) {
				got = username
				return domain.NewCart(1, username), nil
			},
		}
		h := NewCartHandler(stub)

		req := httptest.NewRequest(http.MethodPost, "/carts", strings.NewReader(body))
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := h.Create(c); err != nil {
			t.Fatalf("handler error for body %q: %v", body, err)
		}
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201 for body %q, got %d", body, rec.Code)
		}
		if got != "alice" {
			t.Fatalf("expected username alice for body %q, got %q", body, got)
		}
	}
}

func TestCartHandler_Create_EmptyBody(t *testing.T) {
	e := echo.New()
	h := NewCartHandler(&stubCartService{})

	req := httptest.NewRequest(http.MethodPost, "/carts", strings.NewReader(""))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestCartHandler_CheckOne_NoConflictIsNull(t *testing.T) {
	e := echo.New()
	stub := &stubCartService{
		checkOneFn: func(_ context.Context, _ string, _ int) (*domain.Disc, error) {
			return nil, nil
		},
	}
	h := NewCartHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("username", "id")
	c.SetParamValues("alice", "7")

	if err := h.CheckOne(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "null" {
		t.Fatalf("expected a JSON null, got %q", rec.Body.String())
	}
}

func TestCartHandler_UpdateQuantity_ParsesPathParams(t *testing.T) {
	e := echo.New()
	var gotDisc, gotQuantity, gotMode int
	stub := &stubCartService{
		updateFn: func(_ context.Context, _ string, discID, quantity, mode int) (*domain.Cart, error) {
			gotDisc, gotQuantity, gotMode = discID, quantity, mode
			return domain.NewCart(1, "alice"), nil
		},
	}
	h := NewCartHandler(stub)

	req := httptest.NewRequest(http.MethodPut, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("username", "id", "quantity", "mode")
	c.SetParamValues("alice", "7", "5", "0")

	if err := h.UpdateQuantity(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotDisc != 7 || gotQuantity != 5 || gotMode != domain.QuantitySet {
		t.Fatalf("unexpected args: disc=%d quantity=%d mode=%d", gotDisc, gotQuantity, gotMode)
	}
}

func TestCartHandler_UpdateQuantity_RejectsBadID(t *testing.T) {
	e := echo.New()
	h := NewCartHandler(&stubCartService{})

	req := httptest.NewRequest(http.MethodPut, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("username", "id", "quantity", "mode")
	c.SetParamValues("alice", "seven", "5", "0")

	err := h.UpdateQuantity(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}
