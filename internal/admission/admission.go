// internal/admission/admission.go
// Maintenance window + whitelist gate applied at authentication (C5), plus
// the periodic task that persists server status and flips the maintenance
// flag.

package admission

import (
	"context"
	"log"
	"sync"
	"time"

	"trackday-server/internal/core"
	"trackday-server/internal/models"
	"trackday-server/internal/registry"
	"trackday-server/internal/repositories"
)

// Controller owns the live server-status handle shared between admin RPCs
// and the periodic task. Every read and every mutation of status is
// serialised under mu, including the Whitelist slice.
type Controller struct {
	mu       sync.Mutex
	status   models.ServerStatus
	repo     *repositories.ServerStatusRepository
	registry *registry.Registry
	logger   *log.Logger
}

// New loads the persisted status (or defaults to online) and returns a
// controller ready to be started
func New(ctx context.Context, repo *repositories.ServerStatusRepository, reg *registry.Registry, logger *log.Logger) (*Controller, error) {
	status, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return &Controller{status: *status, repo: repo, registry: reg, logger: logger}, nil
}

// Admit applies the maintenance/whitelist gate at authentication time
func (c *Controller) Admit(pid uint32) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status.IsMaintenance {
		return core.ErrUnderMaintenance
	}
	if c.status.IsWhitelist && !c.status.IsWhitelisted(pid) {
		return core.ErrPermissionDenied
	}
	return nil
}

// Snapshot returns a copy of the current status, with NumClients overridden
// by the live registry count rather than the persisted shutdown artefact
func (c *Controller) Snapshot() models.ServerStatus {
	c.mu.Lock()
	status := c.status
	c.mu.Unlock()
	status.NumClients = c.registry.Count()
	return status
}

func (c *Controller) StartMaintenance(start, end time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status.ShouldSwitchToMaintenance = true
	c.status.StartMaintenanceTime = start
	c.status.EndMaintenanceTime = end
}

func (c *Controller) EndMaintenance() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status.IsMaintenance = false
	c.status.ShouldSwitchToMaintenance = false
}

func (c *Controller) ToggleWhitelist() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status.IsWhitelist = !c.status.IsWhitelist
	return c.status.IsWhitelist
}

func (c *Controller) GetWhitelist() []uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]uint32, len(c.status.Whitelist))
	copy(out, c.status.Whitelist)
	return out
}

func (c *Controller) AddWhitelistUser(pid uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status.IsWhitelisted(pid) {
		return
	}
	c.status.Whitelist = append(c.status.Whitelist, pid)
}

func (c *Controller) DelWhitelistUser(pid uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, p := range c.status.Whitelist {
		if p == pid {
			c.status.Whitelist = append(c.status.Whitelist[:i], c.status.Whitelist[i+1:]...)
			return
		}
	}
}

// Run is the periodic task: every 5 seconds it persists status and, if a
// maintenance switch is pending and due, flips to maintenance and kicks
// everyone connected. It stops when ctx is cancelled.
func (c *Controller) Run(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.drainOnShutdown(context.Background())
			return
		case <-ticker.C:
			c.tick(ctx)
		}
	}
}

func (c *Controller) tick(ctx context.Context) {
	c.mu.Lock()
	due := c.status.ShouldSwitchToMaintenance && !c.status.IsMaintenance && time.Now().After(c.status.StartMaintenanceTime)
	if due {
		c.status.IsMaintenance = true
		c.status.ShouldSwitchToMaintenance = false
	}
	snapshot := c.status
	c.mu.Unlock()

	if due {
		c.registry.KickAll()
	}

	snapshot.NumClients = c.registry.Count()
	if err := c.repo.Save(ctx, &snapshot); err != nil {
		c.logger.Printf("admission: failed to persist server status: %v", err)
	}
}

func (c *Controller) drainOnShutdown(ctx context.Context) {
	c.registry.KickAll()

	c.mu.Lock()
	snapshot := c.status
	c.mu.Unlock()
	snapshot.NumClients = 0

	if err := c.repo.Save(ctx, &snapshot); err != nil {
		c.logger.Printf("admission: failed to persist server status at shutdown: %v", err)
	}
}
