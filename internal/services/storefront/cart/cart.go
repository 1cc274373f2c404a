package cart

import (
	"math"
	"strconv"
	"strings"

	"github.com/louisbranch/storefront/internal/services/storefront/catalog"
)

// Line is a display item plus the quantity ordered. Quantity is always at
// least one while the line is in a cart.
type Line struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Price       string `json:"price"`
	Image       string `json:"image"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	Quantity    int    `json:"quantity"`
}

// Cart is an insertion-ordered list holding at most one line per ID.
type Cart []Line

// Outcome describes what ChangeQuantity did.
type Outcome int

const (
	// Unchanged means no line matched the ID.
	Unchanged Outcome = iota
	// Updated means the line stayed with a new quantity.
	Updated
	// Removed means the quantity reached zero and the line was dropped.
	Removed
)

func (o Outcome) String() string {
	switch o {
	case Updated:
		return "updated"
	case Removed:
		return "removed"
	default:
		return "unchanged"
	}
}

// LineFromItem builds a single-unit line for item.
func LineFromItem(item catalog.DisplayItem) Line {
	return Line{
		ID:          item.ID,
		Title:       item.Title,
		Price:       item.Price,
		Image:       item.Image,
		Category:    item.Category,
		Description: item.Description,
		Quantity:    1,
	}
}

// Add increments the line for item.ID or appends a new line with quantity 1.
func Add(c Cart, item catalog.DisplayItem) Cart {
	next := c.clone()
	for idx := range next {
		if next[idx].ID == item.ID {
			next[idx].Quantity++
			return next
		}
	}
	return append(next, LineFromItem(item))
}

// Remove drops the line for id. Missing ids leave the cart unchanged.
func Remove(c Cart, id int) Cart {
	next := make(Cart, 0, len(c))
	for _, line := range c {
		if line.ID != id {
			next = append(next, line)
		}
	}
	return next
}

// ChangeQuantity adds delta to the line for id. A resulting quantity of
// zero or less removes the line.
func ChangeQuantity(c Cart, id int, delta int) (Cart, Outcome) {
	idx := c.indexOf(id)
	if idx < 0 {
		return c.clone(), Unchanged
	}
	quantity := c[idx].Quantity + delta
	if quantity <= 0 {
		return Remove(c, id), Removed
	}
	next := c.clone()
	next[idx].Quantity = quantity
	return next, Updated
}

// Find returns the line for id.
func (c Cart) Find(id int) (Line, bool) {
	idx := c.indexOf(id)
	if idx < 0 {
		return Line{}, false
	}
	return c[idx], true
}

func (c Cart) indexOf(id int) int {
	for idx, line := range c {
		if line.ID == id {
			return idx
		}
	}
	return -1
}

func (c Cart) clone() Cart {
	next := make(Cart, len(c))
	copy(next, c)
	return next
}

// LineSummary is one line with its computed subtotal.
type LineSummary struct {
	Line
	Subtotal float64
}

// SubtotalText renders the subtotal rounded to a whole number.
func (l LineSummary) SubtotalText() string {
	return FormatAmount(l.Subtotal)
}

// Summary is the derived view of a cart used by renderers.
type Summary struct {
	Lines     []LineSummary
	ItemCount int
	Total     float64
}

// Empty reports whether the cart has no lines.
func (s Summary) Empty() bool {
	return len(s.Lines) == 0
}

// TotalText renders the grand total rounded to a whole number.
func (s Summary) TotalText() string {
	return FormatAmount(s.Total)
}

// Summarize computes subtotals, the item count and the grand total.
// Arithmetic keeps sub-unit precision; only display text is rounded.
func Summarize(c Cart) Summary {
	summary := Summary{Lines: make([]LineSummary, 0, len(c))}
	for _, line := range c {
		subtotal := UnitPrice(line.Price) * float64(line.Quantity)
		summary.Lines = append(summary.Lines, LineSummary{Line: line, Subtotal: subtotal})
		summary.ItemCount += line.Quantity
		summary.Total += subtotal
	}
	return summary
}

// UnitPrice parses a line price. Unparsable prices count as zero.
func UnitPrice(price string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(price), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}

// FormatAmount rounds amount to a whole number for display.
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(math.Round(amount), 'f', 0, 64)
}
