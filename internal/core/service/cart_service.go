package service

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/discgolf/storefront/internal/api/metrics"
	"github.com/discgolf/storefront/internal/core/domain"
	"github.com/discgolf/storefront/internal/core/ports"
)

// CartService implements cart maintenance plus the two-phase purchase
// protocol. CheckCart/CheckOne are advisory: stock can change between a
// check and the purchase that follows, so the purchase result is the only
// authoritative statement of what was bought.
type CartService struct {
	carts ports.CartRepository
	discs ports.DiscRepository
	cache CatalogCache
	log   zerolog.Logger
}

func NewCartService(carts ports.CartRepository, discs ports.DiscRepository, cache CatalogCache, log zerolog.Logger) *CartService {
	return &CartService{carts: carts, discs: discs, cache: cache, log: log}
}

func (s *CartService) Create(ctx context.Context, username string) (*domain.Cart, error) {
	return s.carts.Create(ctx, username)
}

func (s *CartService) Get(ctx context.Context, id int) (*domain.Cart, error) {
	return s.carts.Get(ctx, id)
}

func (s *CartService) List(ctx context.Context) ([]domain.Cart, error) {
	return s.carts.List(ctx)
}

// FindByUsername returns the carts owned by username as a slice for wire
// compatibility; a user owns at most one cart.
func (s *CartService) FindByUsername(ctx context.Context, username string) ([]domain.Cart, error) {
	cart, err := s.carts.FindByUsername(ctx, username)
	if err != nil {
		if err == domain.ErrCartNotFound {
			return []domain.Cart{}, nil
		}
		return nil, err
	}
	return []domain.Cart{*cart}, nil
}

func (s *CartService) Update(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	return s.carts.Update(ctx, cart)
}

func (s *CartService) Delete(ctx context.Context, id int) error {
	return s.carts.Delete(ctx, id)
}

// Contents joins cart lines with catalog data. Each disc is reported with
// the cart's requested quantity, not the inventory stock. Lines whose disc
// vanished from the catalog are skipped.
func (s *CartService) Contents(ctx context.Context, username string) ([]domain.Disc, error) {
	cart, err := s.carts.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	contents := make([]domain.Disc, 0, len(cart.Contents))
	for _, id := range sortedIDs(cart.Contents) {
		disc, err := s.discs.Get(ctx, id)
		if err != nil {
			if err == domain.ErrDiscNotFound {
				continue
			}
			return nil, err
		}
		contents = append(contents, disc.WithQuantity(cart.Contents[id]))
	}
	return contents, nil
}

func (s *CartService) Cost(ctx context.Context, username string) (float64, error) {
	contents, err := s.Contents(ctx, username)
	if err != nil {
		return 0, err
	}

	cost := 0.0
	for _, d := range contents {
		cost += d.Price * float64(d.Quantity)
	}
	return cost, nil
}

func (s *CartService) Count(ctx context.Context, username string) (int, error) {
	cart, err := s.carts.FindByUsername(ctx, username)
	if err != nil {
		return 0, err
	}
	return cart.Count(), nil
}

func (s *CartService) AddDisc(ctx context.Context, username string, discID int) (*domain.Cart, error) {
	cart, err := s.carts.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !cart.AddOne(discID) {
		return nil, domain.ErrNotInCart
	}
	return s.carts.Update(ctx, cart)
}

func (s *CartService) RemoveDisc(ctx context.Context, username string, discID int) (*domain.Cart, error) {
	cart, err := s.carts.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !cart.RemoveDisc(discID) {
		return nil, domain.ErrNotInCart
	}
	return s.carts.Update(ctx, cart)
}

func (s *CartService) UpdateQuantity(ctx context.Context, username string, discID, quantity, mode int) (*domain.Cart, error) {
	cart, err := s.carts.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !cart.UpdateDiscQuantity(discID, quantity, mode) {
		return nil, domain.ErrNotInCart
	}
	return s.carts.Update(ctx, cart)
}

// CheckCart returns the conflict report for the cart: every disc whose
// requested quantity exceeds current stock, reported with the available
// quantity. An empty cart is an error, matching the wire contract.
func (s *CartService) CheckCart(ctx context.Context, username string) ([]domain.Disc, error) {
	cart, err := s.carts.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if len(cart.Contents) == 0 {
		return nil, domain.ErrCartEmpty
	}

	conflicts := []domain.Disc{}
	for _, id := range sortedIDs(cart.Contents) {
		disc, err := s.discs.Get(ctx, id)
		if err != nil {
			if err == domain.ErrDiscNotFound {
				continue
			}
			return nil, err
		}
		if disc.Quantity < cart.Contents[id] {
			conflicts = append(conflicts, *disc)
			metrics.StockConflictsTotal.Inc()
		}
	}
	return conflicts, nil
}

// PurchaseCart commits the whole cart. Every line still in the catalog is
// fulfilled up to the available stock; inventory is decremented and discs
// bought out are removed from the catalog. Fulfilled lines are cleared
// from the cart. Returns domain.ErrNothingPurchasable when every line's
// disc has vanished.
func (s *CartService) PurchaseCart(ctx context.Context, username string) ([]domain.Disc, error) {
	cart, err := s.carts.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if len(cart.Contents) == 0 {
		return nil, domain.ErrCartEmpty
	}

	purchases := []domain.Disc{}
	unpurchasable := 0

	for _, id := range sortedIDs(cart.Contents) {
		requested := cart.Contents[id]
		disc, err := s.discs.Get(ctx, id)
		if err != nil {
			if err == domain.ErrDiscNotFound {
				unpurchasable++
				continue
			}
			return nil, err
		}

		fulfilled := min(requested, disc.Quantity)
		purchases = append(purchases, disc.WithQuantity(fulfilled))
		cart.RemoveDisc(id)

		if err := s.consumeStock(ctx, disc, fulfilled); err != nil {
			return nil, err
		}
	}

	if _, err := s.carts.Update(ctx, cart); err != nil {
		return nil, err
	}
	s.invalidateCatalog(ctx)

	if unpurchasable > 0 && len(purchases) == 0 {
		return nil, domain.ErrNothingPurchasable
	}

	metrics.PurchasesTotal.WithLabelValues("cart").Inc()
	s.log.Info().Str("username", username).Int("lines", len(purchases)).Msg("cart purchased")
	return purchases, nil
}

// CheckOne reports the conflict for a single cart line, nil when stock
// covers the request.
func (s *CartService) CheckOne(ctx context.Context, username string, discID int) (*domain.Disc, error) {
	cart, err := s.carts.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	disc, err := s.discs.Get(ctx, discID)
	if err != nil {
		return nil, err
	}

	if disc.Quantity < cart.Quantity(discID) {
		conflict := *disc
		return &conflict, nil
	}
	return nil, nil
}

// PurchaseOne commits a single cart line, following the same fulfillment
// rules as PurchaseCart.
func (s *CartService) PurchaseOne(ctx context.Context, username string, discID int) (*domain.Disc, error) {
	cart, err := s.carts.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	disc, err := s.discs.Get(ctx, discID)
	if err != nil {
		return nil, err
	}

	fulfilled := min(cart.Quantity(discID), disc.Quantity)
	if err := s.consumeStock(ctx, disc, fulfilled); err != nil {
		return nil, err
	}

	cart.RemoveDisc(discID)
	if _, err := s.carts.Update(ctx, cart); err != nil {
		return nil, err
	}
	s.invalidateCatalog(ctx)

	metrics.PurchasesTotal.WithLabelValues("single").Inc()
	s.log.Info().Str("username", username).Int("disc_id", discID).Int("quantity", fulfilled).Msg("disc purchased")

	purchase := disc.WithQuantity(fulfilled)
	return &purchase, nil
}

// consumeStock removes fulfilled units from inventory, deleting the disc
// when it is bought out.
func (s *CartService) consumeStock(ctx context.Context, disc *domain.Disc, fulfilled int) error {
	if fulfilled >= disc.Quantity {
		return s.discs.Delete(ctx, disc.ID)
	}
	remaining := disc.WithQuantity(disc.Quantity - fulfilled)
	_, err := s.discs.Update(ctx, &remaining)
	return err
}

func (s *CartService) invalidateCatalog(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("catalog cache invalidation failed")
	}
}

// sortedIDs returns the cart's disc ids in ascending order so responses
// and inventory updates are deterministic.
func sortedIDs(contents map[int]int) []int {
	ids := make([]int, 0, len(contents))
	for id := range contents {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
