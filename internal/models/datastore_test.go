package models

import "testing"

func TestBlobKeyBelowThresholdUsesGhostPath(t *testing.T) {
	key := BlobKey(BelowPersistenceThreshold-1, 42, 7)
	want := "ghosts/42/1023.bin"
	if key != want {
		t.Fatalf("BlobKey() = %q, want %q", key, want)
	}
}

func TestBlobKeyAtThresholdUsesMktvPath(t *testing.T) {
	key := BlobKey(BelowPersistenceThreshold, 42, 7)
	want := "mktv/7.bin"
	if key != want {
		t.Fatalf("BlobKey() = %q, want %q", key, want)
	}
}

func TestBlobKeyAboveThresholdUsesMktvPath(t *testing.T) {
	key := BlobKey(BelowPersistenceThreshold+500, 42, 7)
	want := "mktv/7.bin"
	if key != want {
		t.Fatalf("BlobKey() = %q, want %q", key, want)
	}
}
