package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/discgolf/storefront/internal/core/domain"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// stubs
// ---------------------------------------------------------------------------

type stubCartRepo struct {
	carts  map[string]*domain.Cart
	nextID int
}

func newStubCartRepo() *stubCartRepo {
	return &stubCartRepo{carts: make(map[string]*domain.Cart)}
}

func cloneCart(c *domain.Cart) *domain.Cart {
	clone := *c
	clone.Contents = make(map[int]int, len(c.Contents))
	for id, q := range c.Contents {
		clone.Contents[id] = q
	}
	return &clone
}

func (r *stubCartRepo) Create(_ context.Context, username string) (*domain.Cart, error) {
	if _, exists := r.carts[username]; exists {
		return nil, domain.ErrCartExists
	}
	r.nextID++
	cart := domain.NewCart(r.nextID, username)
	r.carts[username] = cart
	return cloneCart(cart), nil
}

func (r *stubCartRepo) Get(_ context.Context, id int) (*domain.Cart, error) {
	for _, c := range r.carts {
		if c.ID == id {
			return cloneCart(c), nil
		}
	}
	return nil, domain.ErrCartNotFound
}

func (r *stubCartRepo) FindByUsername(_ context.Context, username string) (*domain.Cart, error) {
	cart, ok := r.carts[username]
	if !ok {
		return nil, domain.ErrCartNotFound
	}
	return cloneCart(cart), nil
}

func (r *stubCartRepo) List(_ context.Context) ([]domain.Cart, error) {
	carts := make([]domain.Cart, 0, len(r.carts))
	for _, c := range r.carts {
		carts = append(carts, *cloneCart(c))
	}
	return carts, nil
}

func (r *stubCartRepo) Update(_ context.Context, cart *domain.Cart) (*domain.Cart, error) {
	if _, ok := r.carts[cart.Username]; !ok {
		return nil, domain.ErrCartNotFound
	}
	r.carts[cart.Username] = cloneCart(cart)
	return cloneCart(cart), nil
}

func (r *stubCartRepo) Delete(_ context.Context, id int) error {
	for username, c := range r.carts {
		if c.ID == id {
			delete(r.carts, username)
			return nil
		}
	}
	return domain.ErrCartNotFound
}

type stubDiscRepo struct {
	discs  map[int]*domain.Disc
	nextID int
}

func newStubDiscRepo(discs ...domain.Disc) *stubDiscRepo {
	r := &stubDiscRepo{discs: make(map[int]*domain.Disc)}
	for _, d := range discs {
		disc := d
		r.discs[d.ID] = &disc
		if d.ID > r.nextID {
			r.nextID = d.ID
		}
	}
	return r
}

func (r *stubDiscRepo) Create(_ context.Context, disc *domain.Disc) (*domain.Disc, error) {
	r.nextID++
	created := *disc
	created.ID = r.nextID
	r.discs[created.ID] = &created
	clone := created
	return &clone, nil
}

func (r *stubDiscRepo) Get(_ context.Context, id int) (*domain.Disc, error) {
	disc, ok := r.discs[id]
	if !ok {
		return nil, domain.ErrDiscNotFound
	}
	clone := *disc
	return &clone, nil
}

func (r *stubDiscRepo) List(_ context.Context) ([]domain.Disc, error) {
	discs := make([]domain.Disc, 0, len(r.discs))
	for _, d := range r.discs {
		discs = append(discs, *d)
	}
	return discs, nil
}

func (r *stubDiscRepo) Update(_ context.Context, disc *domain.Disc) (*domain.Disc, error) {
	if _, ok := r.discs[disc.ID]; !ok {
		return nil, domain.ErrDiscNotFound
	}
	clone := *disc
	r.discs[disc.ID] = &clone
	result := clone
	return &result, nil
}

func (r *stubDiscRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.discs[id]; !ok {
		return domain.ErrDiscNotFound
	}
	delete(r.discs, id)
	return nil
}

// ---------------------------------------------------------------------------
// tests
// ---------------------------------------------------------------------------

func newCartFixture(t *testing.T, discs ...domain.Disc) (*CartService, *stubCartRepo, *stubDiscRepo) {
	t.Helper()
	carts := newStubCartRepo()
	catalog := newStubDiscRepo(discs...)
	svc := NewCartService(carts, catalog, nil, discardLogger)
	if _, err := svc.Create(context.Background(), "alice"); err != nil {
		t.Fatalf("create cart: %v", err)
	}
	return svc, carts, catalog
}

func TestCartService_CheckCart_ReportsConflicts(t *testing.T) {
	svc, _, _ := newCartFixture(t,
		domain.Disc{ID: 7, Color: "Red", Type: "Driver", Price: 15, Quantity: 3},
		domain.Disc{ID: 8, Color: "Blue", Type: "Putter", Price: 10, Quantity: 10},
	)
	ctx := context.Background()

	if _, err := svc.UpdateQuantity(ctx, "alice", 7, 0, domain.QuantitySet); err == nil {
		t.Fatalf("expected error updating a disc not in the cart")
	}

	for i := 0; i < 5; i++ {
		if _, err := svc.AddDisc(ctx, "alice", 7); err != nil {
			t.Fatalf("add disc: %v", err)
		}
	}
	if _, err := svc.AddDisc(ctx, "alice", 8); err != nil {
		t.Fatalf("add disc: %v", err)
	}

	conflicts, err := svc.CheckCart(ctx, "alice")
	if err != nil {
		t.Fatalf("check cart: %v", err)
	}
	if len(conflicts) != 1 {
		t.Fatalf("expected one conflict, got %d", len(conflicts))
	}
	if conflicts[0].ID != 7 || conflicts[0].Quantity != 3 {
		t.Fatalf("expected disc 7 at available quantity 3, got %+v", conflicts[0])
	}
}

func TestCartService_CheckCart_EmptyCart(t *testing.T) {
	svc, _, _ := newCartFixture(t)

	if _, err := svc.CheckCart(context.Background(), "alice"); err != domain.ErrCartEmpty {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}
}

func TestCartService_PurchaseCart_PartialFulfillment(t *testing.T) {
	svc, _, catalog := newCartFixture(t,
		domain.Disc{ID: 7, Color: "Red", Type: "Driver", Price: 15, Quantity: 3},
	)
	ctx := context.Background()

	if _, err := svc.AddDisc(ctx, "alice", 7); err != nil {
		t.Fatalf("add disc: %v", err)
	}
	if _, err := svc.UpdateQuantity(ctx, "alice", 7, 5, domain.QuantitySet); err != nil {
		t.Fatalf("set quantity: %v", err)
	}

	purchased, err := svc.PurchaseCart(ctx, "alice")
	if err != nil {
		t.Fatalf("purchase cart: %v", err)
	}
	if len(purchased) != 1 || purchased[0].Quantity != 3 {
		t.Fatalf("expected 3 of disc 7 fulfilled, got %+v", purchased)
	}

	total := 0.0
	for _, d := range purchased {
		total += d.Price * float64(d.Quantity)
	}
	if total != 45 {
		t.Fatalf("expected receipt total 45, got %v", total)
	}

	// Bought out, so the disc leaves the catalog.
	if _, err := catalog.Get(ctx, 7); err != domain.ErrDiscNotFound {
		t.Fatalf("expected disc 7 removed from catalog, got %v", err)
	}

	// The cart is emptied by the commit.
	if count, err := svc.Count(ctx, "alice"); err != nil || count != 0 {
		t.Fatalf("expected empty cart, count=%d err=%v", count, err)
	}
}

func TestCartService_PurchaseCart_DecrementsRemainingStock(t *testing.T) {
	svc, _, catalog := newCartFixture(t,
		domain.Disc{ID: 3, Color: "Green", Type: "Midrange", Price: 12, Quantity: 9},
	)
	ctx := context.Background()

	if _, err := svc.AddDisc(ctx, "alice", 3); err != nil {
		t.Fatalf("add disc: %v", err)
	}
	if _, err := svc.UpdateQuantity(ctx, "alice", 3, 3, domain.QuantityAdd); err != nil {
		t.Fatalf("add quantity: %v", err)
	}

	purchased, err := svc.PurchaseCart(ctx, "alice")
	if err != nil {
		t.Fatalf("purchase cart: %v", err)
	}
	if len(purchased) != 1 || purchased[0].Quantity != 4 {
		t.Fatalf("expected 4 fulfilled, got %+v", purchased)
	}

	remaining, err := catalog.Get(ctx, 3)
	if err != nil {
		t.Fatalf("expected disc to stay in catalog: %v", err)
	}
	if remaining.Quantity != 5 {
		t.Fatalf("expected 5 left in stock, got %d", remaining.Quantity)
	}
}

func TestCartService_PurchaseCart_AllLinesVanished(t *testing.T) {
	svc, carts, _ := newCartFixture(t)
	ctx := context.Background()

	// Put a line in the cart for a disc that no longer exists.
	cart, err := carts.FindByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("find cart: %v", err)
	}
	cart.AddDisc(99, 2)
	if _, err := carts.Update(ctx, cart); err != nil {
		t.Fatalf("update cart: %v", err)
	}

	if _, err := svc.PurchaseCart(ctx, "alice"); err != domain.ErrNothingPurchasable {
		t.Fatalf("expected ErrNothingPurchasable, got %v", err)
	}
}

func TestCartService_QuantityZeroRemovesLine(t *testing.T) {
	svc, _, _ := newCartFixture(t,
		domain.Disc{ID: 5, Color: "White", Type: "Putter", Price: 8, Quantity: 4},
	)
	ctx := context.Background()

	if _, err := svc.AddDisc(ctx, "alice", 5); err != nil {
		t.Fatalf("add disc: %v", err)
	}
	if _, err := svc.UpdateQuantity(ctx, "alice", 5, 0, domain.QuantitySet); err != nil {
		t.Fatalf("set quantity to zero: %v", err)
	}

	contents, err := svc.Contents(ctx, "alice")
	if err != nil {
		t.Fatalf("contents: %v", err)
	}
	if len(contents) != 0 {
		t.Fatalf("expected empty contents after zero-quantity update, got %+v", contents)
	}
}

func TestCartService_CostAndCountIdempotent(t *testing.T) {
	svc, _, _ := newCartFixture(t,
		domain.Disc{ID: 1, Color: "Red", Type: "Driver", Price: 15, Quantity: 10},
		domain.Disc{ID: 2, Color: "Blue", Type: "Putter", Price: 10, Quantity: 10},
	)
	ctx := context.Background()

	if _, err := svc.AddDisc(ctx, "alice", 1); err != nil {
		t.Fatalf("add disc: %v", err)
	}
	if _, err := svc.AddDisc(ctx, "alice", 2); err != nil {
		t.Fatalf("add disc: %v", err)
	}
	if _, err := svc.UpdateQuantity(ctx, "alice", 2, 2, domain.QuantitySet); err != nil {
		t.Fatalf("set quantity: %v", err)
	}

	cost1, err := svc.Cost(ctx, "alice")
	if err != nil {
		t.Fatalf("cost: %v", err)
	}
	cost2, _ := svc.Cost(ctx, "alice")
	if cost1 != cost2 || cost1 != 35 {
		t.Fatalf("expected stable cost 35, got %v then %v", cost1, cost2)
	}

	count1, err := svc.Count(ctx, "alice")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	count2, _ := svc.Count(ctx, "alice")
	if count1 != count2 || count1 != 3 {
		t.Fatalf("expected stable count 3, got %d then %d", count1, count2)
	}
}

func TestCartService_CheckOne(t *testing.T) {
	svc, _, _ := newCartFixture(t,
		domain.Disc{ID: 4, Color: "Pink", Type: "Driver", Price: 20, Quantity: 2},
	)
	ctx := context.Background()

	if _, err := svc.AddDisc(ctx, "alice", 4); err != nil {
		t.Fatalf("add disc: %v", err)
	}

	conflict, err := svc.CheckOne(ctx, "alice", 4)
	if err != nil {
		t.Fatalf("check one: %v", err)
	}
	if conflict != nil {
		t.Fatalf("expected no conflict at quantity 1, got %+v", conflict)
	}

	if _, err := svc.UpdateQuantity(ctx, "alice", 4, 5, domain.QuantitySet); err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	conflict, err = svc.CheckOne(ctx, "alice", 4)
	if err != nil {
		t.Fatalf("check one: %v", err)
	}
	if conflict == nil || conflict.Quantity != 2 {
		t.Fatalf("expected conflict at available 2, got %+v", conflict)
	}
}

func TestCartService_PurchaseOne(t *testing.T) {
	svc, _, catalog := newCartFixture(t,
		domain.Disc{ID: 6, Color: "Black", Type: "Midrange", Price: 11, Quantity: 5},
	)
	ctx := context.Background()

	if _, err := svc.AddDisc(ctx, "alice", 6); err != nil {
		t.Fatalf("add disc: %v", err)
	}
	if _, err := svc.UpdateQuantity(ctx, "alice", 6, 2, domain.QuantitySet); err != nil {
		t.Fatalf("set quantity: %v", err)
	}

	purchased, err := svc.PurchaseOne(ctx, "alice", 6)
	if err != nil {
		t.Fatalf("purchase one: %v", err)
	}
	if purchased.Quantity != 2 {
		t.Fatalf("expected 2 fulfilled, got %d", purchased.Quantity)
	}

	remaining, err := catalog.Get(ctx, 6)
	if err != nil {
		t.Fatalf("expected disc to stay in catalog: %v", err)
	}
	if remaining.Quantity != 3 {
		t.Fatalf("expected 3 left in stock, got %d", remaining.Quantity)
	}
}
