package utils

import "testing"

func TestValidateRangeCapsSizeAtMax(t *testing.T) {
	offset, size, err := ValidateRange(0, 500, 100)
	if err != nil {
		t.Fatalf("ValidateRange: %v", err)
	}
	if size != 100 {
		t.Fatalf("size = %d, want 100", size)
	}
	if offset != 0 {
		t.Fatalf("offset = %d, want 0", offset)
	}
}

func TestValidateRangeDefaultsZeroSizeToMax(t *testing.T) {
	_, size, err := ValidateRange(0, 0, 50)
	if err != nil {
		t.Fatalf("ValidateRange: %v", err)
	}
	if size != 50 {
		t.Fatalf("size = %d, want 50", size)
	}
}

func TestValidateRangeRejectsNegativeOffset(t *testing.T) {
	_, _, err := ValidateRange(-1, 10, 100)
	if err == nil {
		t.Fatalf("expected an error for a negative offset")
	}
}

func TestValidatePIDRejectsZero(t *testing.T) {
	if err := ValidatePID(0); err == nil {
		t.Fatalf("expected an error for pid 0")
	}
}

func TestValidatePIDAcceptsNonzero(t *testing.T) {
	if err := ValidatePID(42); err != nil {
		t.Fatalf("ValidatePID(42): %v", err)
	}
}
