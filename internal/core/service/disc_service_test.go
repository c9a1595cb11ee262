package service

import (
	"context"
	"testing"

	"github.com/discgolf/storefront/internal/core/domain"
)

// stubCatalogCache records cache traffic in memory.
type stubCatalogCache struct {
	discs       []domain.Disc
	populated   bool
	gets        int
	sets        int
	invalidates int
}

func (c *stubCatalogCache) Get(_ context.Context) ([]domain.Disc, bool, error) {
	c.gets++
	if !c.populated {
		return nil, false, nil
	}
	return c.discs, true, nil
}

func (c *stubCatalogCache) Set(_ context.Context, discs []domain.Disc) error {
	c.sets++
	c.discs = discs
	c.populated = true
	return nil
}

func (c *stubCatalogCache) Invalidate(_ context.Context) error {
	c.invalidates++
	c.discs = nil
	c.populated = false
	return nil
}

func catalogFixture() *stubDiscRepo {
	return newStubDiscRepo(
		domain.Disc{ID: 1, Color: "Red", Type: "Driver", Weight: 175, Price: 15.99, Quantity: 5},
		domain.Disc{ID: 2, Color: "Blue", Type: "Putter", Weight: 170, Price: 9.99, Quantity: 3},
		domain.Disc{ID: 3, Color: "Dark Red", Type: "Midrange", Weight: 168, Price: 12.50, Quantity: 7},
	)
}

func TestDiscService_Filter(t *testing.T) {
	svc := NewDiscService(catalogFixture(), nil, discardLogger)
	ctx := context.Background()

	cases := []struct {
		name string
		term string
		mode domain.FilterMode
		want int
	}{
		{"all mode matches everything", "driver", domain.FilterAll, 3},
		{"empty term matches everything", "", domain.FilterType, 3},
		{"type substring", "er", domain.FilterType, 2},
		{"color case-insensitive", "red", domain.FilterColor, 2},
		{"weight stringified", "17", domain.FilterWeight, 2},
		{"price stringified", "9.99", domain.FilterPrice, 1},
		{"unknown mode falls back to price", "12.5", domain.FilterMode(42), 1},
		{"no match", "yellow", domain.FilterColor, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.Filter(ctx, tc.term, tc.mode)
			if err != nil {
				t.Fatalf("Filter returned error: %v", err)
			}
			if len(got) != tc.want {
				t.Fatalf("expected %d discs, got %d: %+v", tc.want, len(got), got)
			}
		})
	}
}

func TestDiscService_SearchByType(t *testing.T) {
	svc := NewDiscService(catalogFixture(), nil, discardLogger)

	discs, err := svc.SearchByType(context.Background(), "putter")
	if err != nil {
		t.Fatalf("SearchByType returned error: %v", err)
	}
	if len(discs) != 1 || discs[0].ID != 2 {
		t.Fatalf("expected disc 2, got %+v", discs)
	}
}

func TestDiscService_List_ReadThroughCache(t *testing.T) {
	cache := &stubCatalogCache{}
	svc := NewDiscService(catalogFixture(), cache, discardLogger)
	ctx := context.Background()

	// Miss then fill.
	if _, err := svc.List(ctx); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("expected cache fill after miss, sets=%d", cache.sets)
	}

	// Second read is served from the cache.
	if _, err := svc.List(ctx); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("expected no refill on hit, sets=%d", cache.sets)
	}
	if cache.gets != 2 {
		t.Fatalf("expected two cache reads, gets=%d", cache.gets)
	}
}

func TestDiscService_WritesInvalidateCache(t *testing.T) {
	cache := &stubCatalogCache{}
	svc := NewDiscService(catalogFixture(), cache, discardLogger)
	ctx := context.Background()

	if _, err := svc.Create(ctx, &domain.Disc{Color: "Orange", Type: "Driver", Weight: 172, Price: 17, Quantity: 2}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := svc.Update(ctx, &domain.Disc{ID: 1, Color: "Red", Type: "Driver", Weight: 175, Price: 14, Quantity: 5}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if err := svc.Delete(ctx, 2); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if cache.invalidates != 3 {
		t.Fatalf("expected an invalidation per write, got %d", cache.invalidates)
	}
}
