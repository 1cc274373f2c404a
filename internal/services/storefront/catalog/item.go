package catalog

import (
	"math"
	"strconv"
)

const (
	// PriceMultiplier converts the remote catalog price into local currency.
	PriceMultiplier = 150
	// FetchLimit is the number of records requested per fetch.
	FetchLimit = 9

	// Category is shown on every themed product.
	Category = "Impresión 3D"
	// Description is shown on every themed product.
	Description = "Producto impreso en 3D con PLA de alta calidad."
)

// RawProduct is one record returned by the remote catalog service. Only ID
// and Price are used; the descriptive fields are replaced by the theme.
type RawProduct struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
}

// DisplayItem is a themed product ready for rendering. Price is a
// whole-number string.
type DisplayItem struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Price       string `json:"price"`
	Image       string `json:"image"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// Transform maps raw records to display items, preserving response order.
func Transform(raw []RawProduct) []DisplayItem {
	items := make([]DisplayItem, 0, len(raw))
	for idx, record := range raw {
		theme := ThemeFor(idx)
		items = append(items, DisplayItem{
			ID:          record.ID,
			Title:       theme.Title,
			Price:       FormatPrice(record.Price),
			Image:       theme.Image,
			Category:    Category,
			Description: Description,
		})
	}
	return items
}

// FormatPrice scales a raw price and renders it without decimals.
func FormatPrice(raw float64) string {
	return strconv.FormatInt(int64(math.Round(raw*PriceMultiplier)), 10)
}
