package cart

import (
	"encoding/json"
	"fmt"
)

// SlotCodec converts carts to and from the persisted slot payload, a JSON
// array of lines.
type SlotCodec struct{}

// Encode serializes c. An empty cart encodes as "[]".
func (SlotCodec) Encode(c Cart) ([]byte, error) {
	if c == nil {
		c = Cart{}
	}
	payload, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode cart: %w", err)
	}
	return payload, nil
}

// Decode parses payload and enforces cart invariants. Payloads that violate
// them are rejected rather than repaired.
func (SlotCodec) Decode(payload []byte) (Cart, error) {
	var lines Cart
	if err := json.Unmarshal(payload, &lines); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	seen := make(map[int]struct{}, len(lines))
	for idx, line := range lines {
		if line.Quantity < 1 {
			return nil, fmt.Errorf("decode cart: line %d has quantity %d", idx, line.Quantity)
		}
		if _, ok := seen[line.ID]; ok {
			return nil, fmt.Errorf("decode cart: duplicate line id %d", line.ID)
		}
		seen[line.ID] = struct{}{}
	}
	if lines == nil {
		lines = Cart{}
	}
	return lines, nil
}
