package core

import (
	"errors"
	"testing"
)

func TestErrorStringWithoutCause(t *testing.T) {
	err := New(KindInvalidArgument, "bad request")
	got := err.Error()
	want := "InvalidArgument: bad request"
	if got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestErrorStringWithCause(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	err := Wrap(KindInternal, "failed to persist", cause)
	got := err.Error()
	want := "Internal: failed to persist: dial tcp: timeout"
	if got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestUnwrapReturnsCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(KindInternal, "wrapping", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("expected errors.Is to find the wrapped cause")
	}
}

func TestIsMatchesKind(t *testing.T) {
	err := New(KindAccessDenied, "nope")
	if !Is(err, KindAccessDenied) {
		t.Fatalf("expected Is to match KindAccessDenied")
	}
	if Is(err, KindInternal) {
		t.Fatalf("expected Is to reject a different kind")
	}
}

func TestIsRejectsNonDomainError(t *testing.T) {
	if Is(errors.New("plain"), KindInternal) {
		t.Fatalf("expected Is to reject a plain error")
	}
}

func TestKindStringCoversEveryKind(t *testing.T) {
	kinds := []Kind{
		KindInternal, KindInvalidArgument, KindInvalidIndex, KindAccessDenied,
		KindSessionVoid, KindSessionFull, KindNotFriend, KindNotParticipant,
		KindAlreadyParticipant, KindInvalidDataSize, KindUnderMaintenance,
		KindPermissionDenied, KindUnauthenticated,
	}
	seen := make(map[string]bool)
	for _, k := range kinds {
		s := k.String()
		if s == "" {
			t.Fatalf("Kind %d has an empty String()", k)
		}
		seen[s] = true
	}
	if len(seen) != len(kinds) {
		t.Fatalf("expected %d distinct Kind strings, got %d", len(kinds), len(seen))
	}
}
