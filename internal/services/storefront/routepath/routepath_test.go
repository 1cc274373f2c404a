package routepath

import "testing"

func TestTopLevelRouteConstants(t *testing.T) {
	t.Parallel()

	if Root != "/" {
		t.Fatalf("Root = %q", Root)
	}
	if Health != "/health" {
		t.Fatalf("Health = %q", Health)
	}
	if CartItems != "/cart/items" {
		t.Fatalf("CartItems = %q", CartItems)
	}
	if CartCheckout != "/cart/checkout" {
		t.Fatalf("CartCheckout = %q", CartCheckout)
	}
	if Inquiry != "/inquiry" {
		t.Fatalf("Inquiry = %q", Inquiry)
	}
}

func TestCartItemAction(t *testing.T) {
	t.Parallel()

	if got := CartItemAction(7, ActionDecrement); got != "/cart/items/7/decrement" {
		t.Fatalf("CartItemAction() = %q", got)
	}
	if got := CartItemAction(12, ActionRemove); got != "/cart/items/12/remove" {
		t.Fatalf("CartItemAction() = %q", got)
	}
}

func TestAsset(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"img/a.webp":  "/img/a.webp",
		"/img/a.webp": "/img/a.webp",
		"":            "",
	}
	for in, want := range tests {
		if got := Asset(in); got != want {
			t.Fatalf("Asset(%q) = %q, want %q", in, got, want)
		}
	}
}
