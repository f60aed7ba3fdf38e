package ranking

import "testing"

func TestPublicFilterMatchesPublicSlotsOnly(t *testing.T) {
	filter := publicFilter()
	if !filter.PublicOnly {
		t.Fatalf("expected PublicOnly = true")
	}
	if filter.AttributeEq[12] != 1 || filter.AttributeEq[13] != 1 {
		t.Fatalf("AttributeEq = %v, want slots 12 and 13 set to 1", filter.AttributeEq)
	}
	if len(filter.AttributeEq) != 2 {
		t.Fatalf("expected exactly two attribute filters, got %d", len(filter.AttributeEq))
	}
}
