// Package checkout drives the cart view and the check-then-commit
// purchase sequence. The check phase is advisory: stock can move between
// check and commit, so the commit response is the only source of truth
// for what was actually bought.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/discgolf/storefront/internal/core/domain"
	"github.com/discgolf/storefront/internal/storefront/prompt"
	"github.com/discgolf/storefront/internal/storefront/session"
)

var (
	// ErrNotSignedIn means the action was gated off before any remote
	// call was issued.
	ErrNotSignedIn = errors.New("checkout: not signed in")
	// ErrDeclined means the user answered no to a confirmation.
	ErrDeclined = errors.New("checkout: declined by user")
)

// CartAPI is the slice of the backend client the workflow needs.
type CartAPI interface {
	CartContents(ctx context.Context, username string) ([]domain.Disc, error)
	CartCost(ctx context.Context, username string) (float64, error)
	CartCount(ctx context.Context, username string) (int, error)
	AddToCart(ctx context.Context, username string, discID int) error
	RemoveFromCart(ctx context.Context, username string, discID int) error
	SetQuantity(ctx context.Context, username string, discID, quantity int) error
	CheckCart(ctx context.Context, username string) ([]domain.Disc, error)
	PurchaseCart(ctx context.Context, username string) ([]domain.Disc, error)
	CheckOne(ctx context.Context, username string, discID int) (*domain.Disc, error)
	PurchaseOne(ctx context.Context, username string, discID int) (*domain.Disc, error)
}

// View is the current cart as shown to the user.
type View struct {
	Contents    []domain.Disc
	Cost        float64
	Count       int
	CanPurchase bool
}

// Workflow owns the cart interaction for the signed-in user.
type Workflow struct {
	api     CartAPI
	session *session.Store
	confirm prompt.Confirmer
	notify  prompt.Notifier
	log     zerolog.Logger

	view View
}

func New(api CartAPI, s *session.Store, confirm prompt.Confirmer, notify prompt.Notifier, log zerolog.Logger) *Workflow {
	return &Workflow{
		api:     api,
		session: s,
		confirm: confirm,
		notify:  notify,
		log:     log,
	}
}

// View returns the cart as of the last Refresh.
func (w *Workflow) View() View {
	return w.view
}

// Refresh re-fetches contents, cost and count. Signed out, the view is
// emptied without touching the network. A failed fetch logs and leaves
// that field at whatever partial state already loaded.
func (w *Workflow) Refresh(ctx context.Context) {
	if !w.session.IsSignedIn() {
		w.view = View{}
		return
	}
	username := w.session.Current().Username

	if contents, err := w.api.CartContents(ctx, username); err != nil {
		w.log.Warn().Err(err).Msg("fetch cart contents")
	} else {
		w.view.Contents = contents
		w.view.CanPurchase = len(contents) > 0
	}

	if cost, err := w.api.CartCost(ctx, username); err != nil {
		w.log.Warn().Err(err).Msg("fetch cart cost")
	} else {
		w.view.Cost = cost
	}

	if count, err := w.api.CartCount(ctx, username); err != nil {
		w.log.Warn().Err(err).Msg("fetch cart count")
	} else {
		w.view.Count = count
	}
}

// AddToCart puts one unit of the disc in the cart. Signed out it is a
// no-op with no remote call.
func (w *Workflow) AddToCart(ctx context.Context, discID int) error {
	if !w.session.IsSignedIn() {
		return ErrNotSignedIn
	}
	if err := w.api.AddToCart(ctx, w.session.Current().Username, discID); err != nil {
		return err
	}
	w.Refresh(ctx)
	return nil
}

// Remove drops the disc from the cart after confirmation.
func (w *Workflow) Remove(ctx context.Context, discID int) error {
	if !w.session.IsSignedIn() {
		return ErrNotSignedIn
	}
	if !w.confirm.Confirm("Are you sure?") {
		return ErrDeclined
	}
	if err := w.api.RemoveFromCart(ctx, w.session.Current().Username, discID); err != nil {
		return err
	}
	w.Refresh(ctx)
	return nil
}

// UpdateQuantity sets a line's quantity. Zero or less removes the line, so
// it asks first.
func (w *Workflow) UpdateQuantity(ctx context.Context, discID, quantity int) error {
	if !w.session.IsSignedIn() {
		return ErrNotSignedIn
	}
	if quantity <= 0 && !w.confirm.Confirm("This item will be removed, are you sure you'd like to proceed?") {
		return ErrDeclined
	}
	if err := w.api.SetQuantity(ctx, w.session.Current().Username, discID, quantity); err != nil {
		return err
	}
	w.Refresh(ctx)
	return nil
}

// Purchase runs the two-phase purchase over the whole cart:
//
//  1. check — fetch the conflict report for the cart
//  2. decide — empty report commits directly; otherwise the conflict is
//     shown and the user must re-confirm, and declining aborts with no
//     state change
//  3. commit — purchase whatever the backend can fulfil
//
// The receipt total is computed from the fulfilled lines, which the
// backend may have trimmed below even what the check promised.
func (w *Workflow) Purchase(ctx context.Context) (float64, error) {
	if !w.session.IsSignedIn() {
		return 0, ErrNotSignedIn
	}
	if !w.confirm.Confirm("Are you sure?") {
		return 0, ErrDeclined
	}
	username := w.session.Current().Username

	conflicts, err := w.api.CheckCart(ctx, username)
	if err != nil {
		w.log.Warn().Err(err).Msg("check cart")
		return 0, err
	}

	if len(conflicts) > 0 {
		warning := "There are only:"
		for _, d := range conflicts {
			warning += fmt.Sprintf("\n- %d %s %s's", d.Quantity, d.Color, d.Type)
		}
		if !w.confirm.Confirm(warning + "\nWould you like to buy all that is available?") {
			return 0, ErrDeclined
		}
		w.log.Info().Str("username", username).Msg("purchasing cart despite conflict")
	}

	purchased, err := w.api.PurchaseCart(ctx, username)
	if err != nil {
		w.log.Warn().Err(err).Msg("purchase cart")
		return 0, err
	}

	receipt := "Thank you for purchasing:"
	total := 0.0
	for _, d := range purchased {
		receipt += "\n- " + strconv.Itoa(d.Quantity) + " " + d.Color + " " + d.Type + plural(d.Quantity)
		total += d.Price * float64(d.Quantity)
	}
	w.notify.Notify(receiptMessage(receipt, total))
	w.Refresh(ctx)
	return total, nil
}

// PurchaseOne is Purchase scoped to a single cart line.
func (w *Workflow) PurchaseOne(ctx context.Context, discID int) (float64, error) {
	if !w.session.IsSignedIn() {
		return 0, ErrNotSignedIn
	}
	if !w.confirm.Confirm("Are you sure?") {
		return 0, ErrDeclined
	}
	username := w.session.Current().Username

	conflict, err := w.api.CheckOne(ctx, username, discID)
	if err != nil {
		w.log.Warn().Err(err).Msg("check item")
		return 0, err
	}

	if conflict != nil {
		warning := fmt.Sprintf("There is only %d %s %s's", conflict.Quantity, conflict.Color, conflict.Type)
		if !w.confirm.Confirm(warning + "\nWould you like to buy all that is available?") {
			return 0, ErrDeclined
		}
		w.log.Info().Str("username", username).Msg("purchasing item despite conflict")
	}

	purchased, err := w.api.PurchaseOne(ctx, username, discID)
	if err != nil {
		w.log.Warn().Err(err).Msg("purchase item")
		return 0, err
	}

	receipt := "Thank you for purchasing:\n" +
		strconv.Itoa(purchased.Quantity) + " " + purchased.Color + " " + purchased.Type + plural(purchased.Quantity)
	total := purchased.Price * float64(purchased.Quantity)
	w.notify.Notify(receiptMessage(receipt, total))
	w.Refresh(ctx)
	return total, nil
}

func receiptMessage(receipt string, total float64) string {
	return receipt + "\n----------\nTotal: " +
		strconv.FormatFloat(total, 'f', -1, 64) + "$\nWe hope to see you again soon!\n----------"
}

func plural(quantity int) string {
	if quantity > 1 {
		return "'s"
	}
	return ""
}
