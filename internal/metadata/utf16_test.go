package metadata

import "testing"

func TestUTF16ToStringTruncatesAtNull(t *testing.T) {
	units := []uint16{'H', 'I', 0, 'X', 'X'}
	got := utf16ToString(units)
	if got != "HI" {
		t.Fatalf("utf16ToString = %q, want %q", got, "HI")
	}
}

func TestUTF16ToStringNoNull(t *testing.T) {
	units := []uint16{'O', 'K'}
	got := utf16ToString(units)
	if got != "OK" {
		t.Fatalf("utf16ToString = %q, want %q", got, "OK")
	}
}

func TestUTF16ToStringAllNull(t *testing.T) {
	units := []uint16{0, 0, 0}
	got := utf16ToString(units)
	if got != "" {
		t.Fatalf("utf16ToString = %q, want empty string", got)
	}
}
