package cart

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAddMergesByID(t *testing.T) {
	t.Parallel()

	c := Add(nil, item(5, "150"))
	c = Add(c, item(7, "300"))
	c = Add(c, item(5, "150"))

	want := Cart{
		{ID: 5, Title: "Item 5", Price: "150", Image: "img/item.webp", Category: item(5, "").Category, Description: item(5, "").Description, Quantity: 2},
		{ID: 7, Title: "Item 7", Price: "300", Image: "img/item.webp", Category: item(7, "").Category, Description: item(7, "").Description, Quantity: 1},
	}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Fatalf("cart mismatch (-want +got):\n%s", diff)
	}
}

func TestAddDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	original := Add(nil, item(1, "10"))
	_ = Add(original, item(1, "10"))
	if original[0].Quantity != 1 {
		t.Fatalf("input quantity = %d, want 1", original[0].Quantity)
	}
}

func TestRemove(t *testing.T) {
	t.Parallel()

	c := Add(Add(nil, item(1, "10")), item(2, "20"))
	got := Remove(c, 1)
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("Remove(1) = %+v", got)
	}
	if diff := cmp.Diff(c, Remove(c, 99)); diff != "" {
		t.Fatalf("Remove(missing) changed cart (-want +got):\n%s", diff)
	}
}

func TestChangeQuantity(t *testing.T) {
	t.Parallel()

	base := Add(Add(nil, item(5, "150")), item(5, "150"))

	tests := []struct {
		name         string
		id           int
		delta        int
		wantOutcome  Outcome
		wantQuantity int
		wantLines    int
	}{
		{name: "increment", id: 5, delta: 1, wantOutcome: Updated, wantQuantity: 3, wantLines: 1},
		{name: "decrement", id: 5, delta: -1, wantOutcome: Updated, wantQuantity: 1, wantLines: 1},
		{name: "reach zero", id: 5, delta: -2, wantOutcome: Removed, wantLines: 0},
		{name: "below zero", id: 5, delta: -10, wantOutcome: Removed, wantLines: 0},
		{name: "unknown id", id: 9, delta: 1, wantOutcome: Unchanged, wantQuantity: 2, wantLines: 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, outcome := ChangeQuantity(base, tc.id, tc.delta)
			if outcome != tc.wantOutcome {
				t.Fatalf("outcome = %v, want %v", outcome, tc.wantOutcome)
			}
			if len(got) != tc.wantLines {
				t.Fatalf("lines = %d, want %d", len(got), tc.wantLines)
			}
			if tc.wantLines > 0 && got[0].Quantity != tc.wantQuantity {
				t.Fatalf("quantity = %d, want %d", got[0].Quantity, tc.wantQuantity)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	c := Cart{
		{ID: 1, Price: "150", Quantity: 2},
		{ID: 2, Price: "12.6", Quantity: 1},
		{ID: 3, Price: "not a number", Quantity: 4},
	}
	summary := Summarize(c)
	if summary.ItemCount != 7 {
		t.Fatalf("ItemCount = %d, want 7", summary.ItemCount)
	}
	if summary.Empty() {
		t.Fatal("summary should not be empty")
	}
	if got := summary.Lines[0].SubtotalText(); got != "300" {
		t.Fatalf("subtotal[0] = %q, want 300", got)
	}
	if got := summary.Lines[1].SubtotalText(); got != "13" {
		t.Fatalf("subtotal[1] = %q, want 13", got)
	}
	if got := summary.Lines[2].Subtotal; got != 0 {
		t.Fatalf("subtotal[2] = %v, want 0", got)
	}
	if got := summary.TotalText(); got != "313" {
		t.Fatalf("TotalText() = %q, want 313", got)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	t.Parallel()

	summary := Summarize(nil)
	if !summary.Empty() || summary.ItemCount != 0 || summary.TotalText() != "0" {
		t.Fatalf("Summarize(nil) = %+v", summary)
	}
}

// Random operation sequences must keep one line per id with positive
// quantities, and the badge and total must match the lines.
func TestTransitionsPreserveInvariants(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	var c Cart
	adds := make(map[int]int)
	for step := 0; step < 500; step++ {
		id := rng.Intn(6)
		switch rng.Intn(4) {
		case 0, 1:
			c = Add(c, item(id, "150"))
			adds[id]++
		case 2:
			var outcome Outcome
			delta := rng.Intn(5) - 3
			c, outcome = ChangeQuantity(c, id, delta)
			if outcome == Removed {
				adds[id] = 0
			} else if outcome == Updated {
				adds[id] += delta
			}
		default:
			c = Remove(c, id)
			adds[id] = 0
		}

		seen := make(map[int]bool)
		count := 0
		for _, line := range c {
			if seen[line.ID] {
				t.Fatalf("step %d: duplicate id %d", step, line.ID)
			}
			seen[line.ID] = true
			if line.Quantity < 1 {
				t.Fatalf("step %d: id %d quantity %d", step, line.ID, line.Quantity)
			}
			if line.Quantity != adds[line.ID] {
				t.Fatalf("step %d: id %d quantity %d, want %d", step, line.ID, line.Quantity, adds[line.ID])
			}
			count += line.Quantity
		}
		summary := Summarize(c)
		if summary.ItemCount != count {
			t.Fatalf("step %d: ItemCount = %d, want %d", step, summary.ItemCount, count)
		}
		if summary.Total != float64(count*150) {
			t.Fatalf("step %d: Total = %v, want %d", step, summary.Total, count*150)
		}
	}
}

func TestOutcomeString(t *testing.T) {
	t.Parallel()

	for outcome, want := range map[Outcome]string{Unchanged: "unchanged", Updated: "updated", Removed: "removed"} {
		if got := outcome.String(); got != want {
			t.Fatalf("%d.String() = %q, want %q", outcome, got, want)
		}
	}
}
