package registry

import (
	"log"
	"os"
	"testing"
)

type fakeHandle struct {
	disconnected bool
	err          error
}

func (h *fakeHandle) Disconnect() error {
	h.disconnected = true
	return h.err
}

func newTestRegistry() *Registry {
	return New(log.New(os.Stderr, "", 0))
}

func TestAttachAndIsConnected(t *testing.T) {
	r := newTestRegistry()
	h := &fakeHandle{}
	r.Attach(1, h)

	if !r.IsConnected(1) {
		t.Fatalf("expected pid 1 to be connected")
	}
	if r.IsConnected(2) {
		t.Fatalf("expected pid 2 to not be connected")
	}
}

func TestAttachEvictsPriorHandle(t *testing.T) {
	r := newTestRegistry()
	first := &fakeHandle{}
	second := &fakeHandle{}

	r.Attach(1, first)
	r.Attach(1, second)

	if !first.disconnected {
		t.Fatalf("expected the prior handle to be disconnected on re-attach")
	}
	if second.disconnected {
		t.Fatalf("expected the new handle to remain connected")
	}
	if r.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", r.Count())
	}
}

func TestDetachIsIdempotent(t *testing.T) {
	r := newTestRegistry()
	r.Attach(1, &fakeHandle{})
	r.Detach(1)
	r.Detach(1) // no-op, must not panic

	if r.IsConnected(1) {
		t.Fatalf("expected pid 1 to be detached")
	}
}

func TestKickReportsWhetherConnected(t *testing.T) {
	r := newTestRegistry()
	h := &fakeHandle{}
	r.Attach(1, h)

	if !r.Kick(1) {
		t.Fatalf("expected Kick to report true for a connected pid")
	}
	if !h.disconnected {
		t.Fatalf("expected the handle to be disconnected")
	}
	if r.Kick(1) {
		t.Fatalf("expected a second Kick to report false")
	}
}

func TestKickAllDisconnectsEveryoneAndReturnsCount(t *testing.T) {
	r := newTestRegistry()
	handles := []*fakeHandle{{}, {}, {}}
	for i, h := range handles {
		r.Attach(uint32(i+1), h)
	}

	count := r.KickAll()
	if count != 3 {
		t.Fatalf("KickAll() = %d, want 3", count)
	}
	for i, h := range handles {
		if !h.disconnected {
			t.Fatalf("handle %d was not disconnected", i)
		}
	}
	if r.Count() != 0 {
		t.Fatalf("Count() = %d, want 0 after KickAll", r.Count())
	}
}

func TestSnapshotPIDs(t *testing.T) {
	r := newTestRegistry()
	r.Attach(1, &fakeHandle{})
	r.Attach(2, &fakeHandle{})

	pids := r.SnapshotPIDs()
	if len(pids) != 2 {
		t.Fatalf("SnapshotPIDs() has %d entries, want 2", len(pids))
	}
	seen := map[uint32]bool{}
	for _, p := range pids {
		seen[p] = true
	}
	if !seen[1] || !seen[2] {
		t.Fatalf("SnapshotPIDs() = %v, want pids 1 and 2", pids)
	}
}
