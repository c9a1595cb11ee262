package domain

import "testing"

func TestCart_UpdateDiscQuantity(t *testing.T) {
	cart := NewCart(1, "alice")
	cart.AddDisc(7, 2)

	if !cart.UpdateDiscQuantity(7, 5, QuantitySet) {
		t.Fatalf("set failed")
	}
	if cart.Quantity(7) != 5 {
		t.Fatalf("expected 5, got %d", cart.Quantity(7))
	}

	if !cart.UpdateDiscQuantity(7, 3, QuantityAdd) {
		t.Fatalf("add failed")
	}
	if cart.Quantity(7) != 8 {
		t.Fatalf("expected 8, got %d", cart.Quantity(7))
	}

	if !cart.UpdateDiscQuantity(7, 6, QuantitySub) {
		t.Fatalf("sub failed")
	}
	if cart.Quantity(7) != 2 {
		t.Fatalf("expected 2, got %d", cart.Quantity(7))
	}

	// Driving the quantity to zero removes the line.
	if !cart.UpdateDiscQuantity(7, 2, QuantitySub) {
		t.Fatalf("sub to zero failed")
	}
	if cart.Quantity(7) != 0 {
		t.Fatalf("expected the line gone, got %d", cart.Quantity(7))
	}

	if cart.UpdateDiscQuantity(7, 1, QuantitySet) {
		t.Fatalf("updating an absent line must fail")
	}
	if cart.UpdateDiscQuantity(7, 1, 99) {
		t.Fatalf("an unknown mode must fail")
	}
}

func TestCart_AddAndCount(t *testing.T) {
	cart := NewCart(1, "alice")

	if cart.AddDisc(1, 0) || cart.AddDisc(1, -2) {
		t.Fatalf("non-positive quantities must be rejected")
	}
	cart.AddDisc(1, 2)
	cart.AddOne(1)
	cart.AddOne(2)

	if cart.Count() != 4 {
		t.Fatalf("expected count 4, got %d", cart.Count())
	}
	if !cart.RemoveDisc(2) {
		t.Fatalf("remove failed")
	}
	if cart.RemoveDisc(2) {
		t.Fatalf("removing an absent line must fail")
	}
	if cart.Count() != 3 {
		t.Fatalf("expected count 3, got %d", cart.Count())
	}
}

func TestDisc_Matches(t *testing.T) {
	disc := Disc{ID: 1, Color: "Dark Red", Weight: 175, Type: "Driver", Price: 15.99}

	if !disc.Matches("anything", FilterAll) {
		t.Fatalf("FilterAll must match everything")
	}
	if !disc.Matches("", FilterColor) {
		t.Fatalf("an empty term must match everything")
	}
	if !disc.Matches("red", FilterColor) {
		t.Fatalf("color match should be case-insensitive")
	}
	if !disc.Matches("175", FilterWeight) {
		t.Fatalf("weight should match its decimal form")
	}
	if !disc.Matches("15.99", FilterPrice) {
		t.Fatalf("price should match its decimal form")
	}
	if disc.Matches("putter", FilterType) {
		t.Fatalf("non-matching type must not match")
	}
	// Unknown modes fall back to price.
	if !disc.Matches("15.9", FilterMode(42)) {
		t.Fatalf("unknown mode should match on price")
	}
}
