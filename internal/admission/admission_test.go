package admission

import (
	"log"
	"os"
	"testing"
	"time"

	"trackday-server/internal/core"
	"trackday-server/internal/models"
	"trackday-server/internal/registry"
)

func newTestController() *Controller {
	return &Controller{
		status:   models.ServerStatus{IsOnline: true},
		registry: registry.New(log.New(os.Stderr, "", 0)),
		logger:   log.New(os.Stderr, "", 0),
	}
}

func TestAdmitAllowsByDefault(t *testing.T) {
	c := newTestController()
	if err := c.Admit(1); err != nil {
		t.Fatalf("Admit: %v", err)
	}
}

func TestAdmitRejectsDuringMaintenance(t *testing.T) {
	c := newTestController()
	c.status.IsMaintenance = true
	err := c.Admit(1)
	if !core.Is(err, core.KindUnderMaintenance) {
		t.Fatalf("expected KindUnderMaintenance, got %v", err)
	}
}

func TestAdmitRejectsNonWhitelistedWhenWhitelistOn(t *testing.T) {
	c := newTestController()
	c.status.IsWhitelist = true
	c.status.Whitelist = []uint32{42}

	if err := c.Admit(42); err != nil {
		t.Fatalf("Admit(42): %v", err)
	}
	err := c.Admit(99)
	if !core.Is(err, core.KindPermissionDenied) {
		t.Fatalf("expected KindPermissionDenied, got %v", err)
	}
}

func TestStartAndEndMaintenance(t *testing.T) {
	c := newTestController()
	start := time.Now()
	end := start.Add(time.Hour)
	c.StartMaintenance(start, end)

	if !c.status.ShouldSwitchToMaintenance {
		t.Fatalf("expected ShouldSwitchToMaintenance to be set")
	}
	if !c.status.StartMaintenanceTime.Equal(start) || !c.status.EndMaintenanceTime.Equal(end) {
		t.Fatalf("maintenance window not recorded correctly")
	}

	c.status.IsMaintenance = true
	c.EndMaintenance()
	if c.status.IsMaintenance || c.status.ShouldSwitchToMaintenance {
		t.Fatalf("expected EndMaintenance to clear both flags")
	}
}

func TestToggleWhitelist(t *testing.T) {
	c := newTestController()
	if c.ToggleWhitelist() != true {
		t.Fatalf("expected first toggle to enable whitelisting")
	}
	if c.ToggleWhitelist() != false {
		t.Fatalf("expected second toggle to disable whitelisting")
	}
}

func TestAddAndDelWhitelistUser(t *testing.T) {
	c := newTestController()
	c.AddWhitelistUser(1)
	c.AddWhitelistUser(2)
	c.AddWhitelistUser(1) // duplicate, must not double-add

	list := c.GetWhitelist()
	if len(list) != 2 {
		t.Fatalf("GetWhitelist() = %v, want 2 entries", list)
	}

	c.DelWhitelistUser(1)
	list = c.GetWhitelist()
	if len(list) != 1 || list[0] != 2 {
		t.Fatalf("GetWhitelist() after delete = %v, want [2]", list)
	}
}

func TestSnapshotReflectsLiveRegistryCount(t *testing.T) {
	c := newTestController()
	c.registry.Attach(1, fakeHandle{})
	c.registry.Attach(2, fakeHandle{})

	snap := c.Snapshot()
	if snap.NumClients != 2 {
		t.Fatalf("Snapshot().NumClients = %d, want 2", snap.NumClients)
	}
}

type fakeHandle struct{}

func (fakeHandle) Disconnect() error { return nil }
