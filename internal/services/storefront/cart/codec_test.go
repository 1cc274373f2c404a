package cart

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSlotCodecRoundTrip(t *testing.T) {
	t.Parallel()

	c := Add(Add(Add(nil, item(3, "450")), item(1, "150")), item(3, "450"))
	var codec SlotCodec
	payload, err := codec.Encode(c)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	decoded, err := codec.Decode(payload)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if diff := cmp.Diff(c, decoded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSlotCodecEncodesEmptyAsArray(t *testing.T) {
	t.Parallel()

	payload, err := SlotCodec{}.Encode(nil)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if string(payload) != "[]" {
		t.Fatalf("payload = %s, want []", payload)
	}
}

func TestSlotCodecReadsBrowserPayload(t *testing.T) {
	t.Parallel()

	payload := `[{"id":1,"title":"Mate Geométrico Low Poly","price":"150","image":"./img/mate.webp","category":"Impresión 3D","description":"Producto impreso en 3D con PLA de alta calidad.","quantity":2}]`
	decoded, err := SlotCodec{}.Decode([]byte(payload))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(decoded) != 1 || decoded[0].Quantity != 2 || decoded[0].Price != "150" {
		t.Fatalf("decoded = %+v", decoded)
	}
}

func TestSlotCodecRejectsInvalidPayloads(t *testing.T) {
	t.Parallel()

	for _, payload := range []string{
		"",
		"not json",
		`{"id":1}`,
		`[{"id":1,"quantity":0}]`,
		`[{"id":1,"quantity":1},{"id":1,"quantity":2}]`,
	} {
		if _, err := (SlotCodec{}).Decode([]byte(payload)); err == nil {
			t.Fatalf("Decode(%q) expected error", payload)
		}
	}
}

func TestSlotCodecDecodesNullAsEmpty(t *testing.T) {
	t.Parallel()

	decoded, err := SlotCodec{}.Decode([]byte("null"))
	if err != nil {
		t.Fatalf("Decode(null) error = %v", err)
	}
	if decoded == nil || len(decoded) != 0 {
		t.Fatalf("Decode(null) = %#v, want empty cart", decoded)
	}
}
