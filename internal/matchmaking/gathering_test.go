package matchmaking

import (
	"context"
	"log"
	"os"
	"testing"

	"trackday-server/internal/core"
	"trackday-server/internal/models"
	"trackday-server/internal/registry"
)

func TestRemovePIDDropsOnlyMatchingEntry(t *testing.T) {
	out := removePID([]uint32{1, 2, 3, 2}, 2)
	want := []uint32{1, 3}
	if len(out) != len(want) {
		t.Fatalf("removePID() = %v, want %v", out, want)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("removePID() = %v, want %v", out, want)
		}
	}
}

func TestRemovePIDLeavesOthersUntouched(t *testing.T) {
	src := []uint32{5, 6, 7}
	out := removePID(src, 99)
	if len(out) != 3 {
		t.Fatalf("removePID() = %v, want unchanged 3 entries", out)
	}
}

func TestGenerateSessionKeyLengthAndUniqueness(t *testing.T) {
	a, err := generateSessionKey()
	if err != nil {
		t.Fatalf("generateSessionKey: %v", err)
	}
	if len(a) != 16 {
		t.Fatalf("len(key) = %d, want 16", len(a))
	}
	b, err := generateSessionKey()
	if err != nil {
		t.Fatalf("generateSessionKey: %v", err)
	}
	allZero := true
	for i := range a {
		if a[i] != b[i] {
			allZero = false
			break
		}
	}
	if allZero {
		t.Fatalf("two generated session keys were identical")
	}
}

type panicCounters struct{}

func (panicCounters) Next(ctx context.Context, name string) (uint32, error) {
	panic("counters.Next should not be reached when template validation fails")
}

func TestCreateRejectsMaxParticipantsOverCeiling(t *testing.T) {
	e := &Engine{}
	_, _, err := e.Create(context.Background(), panicCounters{}, 1, models.GatheringTemplate{
		MaxParticipants: maxParticipantsCeiling + 1,
	})
	if !core.Is(err, core.KindInvalidArgument) {
		t.Fatalf("expected KindInvalidArgument, got %v", err)
	}
}

func TestCreateRejectsMinOverMax(t *testing.T) {
	e := &Engine{}
	_, _, err := e.Create(context.Background(), panicCounters{}, 1, models.GatheringTemplate{
		MinParticipants: 5,
		MaxParticipants: 2,
	})
	if !core.Is(err, core.KindInvalidArgument) {
		t.Fatalf("expected KindInvalidArgument, got %v", err)
	}
}

type fakeHandle struct{}

func (fakeHandle) Disconnect() error { return nil }

func TestAutoCleanupOneSkipsWhenRegistryUnset(t *testing.T) {
	e := &Engine{}
	g := &models.Gathering{GID: 1, HostPID: 7, Players: []uint32{7}}
	deleted, err := e.autoCleanupOne(context.Background(), g)
	if err != nil {
		t.Fatalf("autoCleanupOne: %v", err)
	}
	if deleted {
		t.Fatalf("expected no cleanup without a registry")
	}
}

func TestAutoCleanupOneSkipsNilGathering(t *testing.T) {
	e := &Engine{registry: registry.New(log.New(os.Stderr, "", 0))}
	deleted, err := e.autoCleanupOne(context.Background(), nil)
	if err != nil {
		t.Fatalf("autoCleanupOne: %v", err)
	}
	if deleted {
		t.Fatalf("expected no cleanup for a nil gathering")
	}
}

func TestAutoCleanupOneSkipsWhenHostConnected(t *testing.T) {
	reg := registry.New(log.New(os.Stderr, "", 0))
	reg.Attach(7, fakeHandle{})
	e := &Engine{registry: reg}

	g := &models.Gathering{GID: 1, HostPID: 7, Players: []uint32{7, 8}}
	deleted, err := e.autoCleanupOne(context.Background(), g)
	if err != nil {
		t.Fatalf("autoCleanupOne: %v", err)
	}
	if deleted {
		t.Fatalf("expected no cleanup while the host is connected")
	}
	if g.HostPID != 7 {
		t.Fatalf("expected host to remain unchanged, got %d", g.HostPID)
	}
}
