package domain

import (
	"strconv"
	"strings"
)

// FilterMode selects which disc attribute a catalog search matches against.
type FilterMode int

const (
	FilterAll    FilterMode = 0
	FilterType   FilterMode = 1
	FilterColor  FilterMode = 2
	FilterWeight FilterMode = 3
	FilterPrice  FilterMode = 4
)

// Disc is a single catalog item. Quantity is the inventory stock level,
// except inside cart views and purchase results, where it carries the
// requested or fulfilled quantity instead.
type Disc struct {
	ID       int     `json:"id"`
	Color    string  `json:"color"`
	Weight   int     `json:"weight"`
	Type     string  `json:"type"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Matches reports whether the disc matches a case-insensitive substring
// search on the attribute chosen by mode. FilterAll (or an empty term)
// matches everything; unknown modes fall back to matching on price.
func (d Disc) Matches(search string, mode FilterMode) bool {
	if search == "" || mode == FilterAll {
		return true
	}

	var attr string
	switch mode {
	case FilterType:
		attr = d.Type
	case FilterColor:
		attr = d.Color
	case FilterWeight:
		attr = strconv.Itoa(d.Weight)
	default:
		attr = strconv.FormatFloat(d.Price, 'f', -1, 64)
	}

	return strings.Contains(strings.ToLower(attr), strings.ToLower(search))
}

// WithQuantity returns a copy of the disc carrying a different quantity.
// Used when a catalog disc is reported with a cart, conflict, or purchase
// quantity instead of its stock level.
func (d Disc) WithQuantity(quantity int) Disc {
	d.Quantity = quantity
	return d
}
