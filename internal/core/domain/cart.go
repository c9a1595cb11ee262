package domain

// Quantity update modes for Cart.UpdateDiscQuantity.
const (
	QuantitySet = 0
	QuantityAdd = 1
	QuantitySub = 2
)

// Cart holds a user's pending order as disc-id to requested-quantity pairs.
// A line with quantity zero is equivalent to absence: mutations that would
// drive a quantity to zero or below remove the line instead.
type Cart struct {
	ID       int         `json:"id"`
	Username string      `json:"username"`
	Contents map[int]int `json:"contents"`
}

// NewCart returns an empty cart owned by username.
func NewCart(id int, username string) *Cart {
	return &Cart{ID: id, Username: username, Contents: make(map[int]int)}
}

// Quantity returns the requested quantity for a disc, zero when absent.
func (c *Cart) Quantity(discID int) int {
	return c.Contents[discID]
}

// AddDisc adds quantity of a disc to the cart, merging with any existing
// line. Returns false when quantity is not positive.
func (c *Cart) AddDisc(discID, quantity int) bool {
	if quantity <= 0 {
		return false
	}
	if c.Contents == nil {
		c.Contents = make(map[int]int)
	}
	c.Contents[discID] += quantity
	return true
}

// AddOne adds a single disc to the cart.
func (c *Cart) AddOne(discID int) bool {
	return c.AddDisc(discID, 1)
}

// RemoveDisc drops the disc's line entirely. Returns false when the disc
// is not in the cart.
func (c *Cart) RemoveDisc(discID int) bool {
	if _, ok := c.Contents[discID]; !ok {
		return false
	}
	delete(c.Contents, discID)
	return true
}

// UpdateDiscQuantity sets, adds to, or subtracts from a line's quantity.
// A resulting quantity of zero or below removes the line. Returns false
// when the disc is not in the cart or the mode is unknown.
func (c *Cart) UpdateDiscQuantity(discID, quantity, mode int) bool {
	current, ok := c.Contents[discID]
	if !ok {
		return false
	}

	switch mode {
	case QuantitySet:
		// quantity stands as given
	case QuantityAdd:
		quantity = current + quantity
	case QuantitySub:
		quantity = current - quantity
	default:
		return false
	}

	if quantity <= 0 {
		return c.RemoveDisc(discID)
	}
	c.Contents[discID] = quantity
	return true
}

// Count returns the total number of discs requested across all lines.
func (c *Cart) Count() int {
	total := 0
	for _, q := range c.Contents {
		total += q
	}
	return total
}
