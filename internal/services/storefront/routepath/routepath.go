// Package routepath holds the storefront URL layout.
package routepath

import "strconv"

const (
	Root         = "/"
	Health       = "/health"
	Catalog      = "/catalog"
	CartPrefix   = "/cart/"
	CartItems    = "/cart/items"
	CartCheckout = "/cart/checkout"
	Inquiry      = "/inquiry"
	StaticPrefix = "/static/"
	ImagePrefix  = "/img/"
)

// Cart line actions accepted under CartItems.
const (
	ActionIncrement = "increment"
	ActionDecrement = "decrement"
	ActionRemove    = "remove"
)

// CartItemAction returns the path that applies action to line id.
func CartItemAction(id int, action string) string {
	return CartItems + "/" + strconv.Itoa(id) + "/" + action
}

// Asset returns the absolute URL for a relative asset path such as
// "img/dragon.webp".
func Asset(path string) string {
	if path == "" || path[0] == '/' {
		return path
	}
	return Root + path
}
