// internal/admin/engine.go
// Business logic behind the admin surface (C10): server-status/maintenance
// controls, user/connection moderation, and read-only fleet listings. The
// HTTP transport lives in router.go; this file has no gin dependency.

package admin

import (
	"context"
	"time"

	"trackday-server/internal/admission"
	"trackday-server/internal/core"
	"trackday-server/internal/models"
	"trackday-server/internal/registry"
	"trackday-server/internal/repositories"
)

const restartGamePlaceholder = "<Restart game>"

// GatheringView is one row of the admin gathering listing, with mii-names
// resolved for every player
type GatheringView struct {
	*models.Gathering
	PlayerNames map[uint32]string `json:"player_names"`
}

// UnlocksView is the admin's per-pid unlock report
type UnlocksView struct {
	*models.CommonData
}

// Engine wires the admission controller, connection registry and
// repositories the admin surface reads and moderates
type Engine struct {
	admission   *admission.Controller
	registry    *registry.Registry
	gatherings  *repositories.GatheringRepository
	tournaments *repositories.TournamentRepository
	commonData  *repositories.CommonDataRepository
}

// NewEngine builds the admin business-logic engine
func NewEngine(ctrl *admission.Controller, reg *registry.Registry, gatherings *repositories.GatheringRepository, tournaments *repositories.TournamentRepository, commonData *repositories.CommonDataRepository) *Engine {
	return &Engine{
		admission:   ctrl,
		registry:    reg,
		gatherings:  gatherings,
		tournaments: tournaments,
		commonData:  commonData,
	}
}

func (e *Engine) GetServerStatus() models.ServerStatus {
	return e.admission.Snapshot()
}

func (e *Engine) StartMaintenance(start, end time.Time) {
	e.admission.StartMaintenance(start, end)
}

func (e *Engine) EndMaintenance() {
	e.admission.EndMaintenance()
}

func (e *Engine) ToggleWhitelist() bool {
	return e.admission.ToggleWhitelist()
}

func (e *Engine) GetWhitelist() []uint32 {
	return e.admission.GetWhitelist()
}

func (e *Engine) AddWhitelistUser(pid uint32) {
	e.admission.AddWhitelistUser(pid)
}

func (e *Engine) DelWhitelistUser(pid uint32) {
	e.admission.DelWhitelistUser(pid)
}

// GetAllUsers returns the pids of every currently connected client
func (e *Engine) GetAllUsers() []uint32 {
	return e.registry.SnapshotPIDs()
}

// KickUser disconnects one client, reporting whether it was connected
func (e *Engine) KickUser(pid uint32) bool {
	return e.registry.Kick(pid)
}

// KickAllUsers disconnects every connected client, returning the count
func (e *Engine) KickAllUsers() int {
	return e.registry.KickAll()
}

// GetAllGatherings lists gatherings with player pids resolved to mii-names,
// falling back to a placeholder when a player's common-data isn't on file
func (e *Engine) GetAllGatherings(ctx context.Context, offset, limit int64) ([]GatheringView, error) {
	gatherings, err := e.gatherings.FindAll(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	pidSet := make(map[uint32]struct{})
	for _, g := range gatherings {
		for _, pid := range g.Players {
			pidSet[pid] = struct{}{}
		}
	}
	pids := make([]uint32, 0, len(pidSet))
	for pid := range pidSet {
		pids = append(pids, pid)
	}

	names, err := e.commonData.FindByPIDs(ctx, pids)
	if err != nil {
		return nil, err
	}

	views := make([]GatheringView, len(gatherings))
	for i, g := range gatherings {
		playerNames := make(map[uint32]string, len(g.Players))
		for _, pid := range g.Players {
			if cd, ok := names[pid]; ok && cd.MiiName != "" {
				playerNames[pid] = cd.MiiName
			} else {
				playerNames[pid] = restartGamePlaceholder
			}
		}
		views[i] = GatheringView{Gathering: g, PlayerNames: playerNames}
	}
	return views, nil
}

// GetAllTournaments lists only public tournaments (attributes[0] == 1)
func (e *Engine) GetAllTournaments(ctx context.Context, offset, limit int64) ([]*models.Tournament, error) {
	return e.tournaments.Search(ctx, repositories.SearchFilter{PublicOnly: true}, offset, limit, "_id", false)
}

// GetUnlocks returns the decoded common-data unlock report for one pid
func (e *Engine) GetUnlocks(ctx context.Context, pid uint32) (*UnlocksView, error) {
	cd, err := e.commonData.Find(ctx, pid)
	if err != nil {
		return nil, err
	}
	if cd == nil {
		return nil, core.New(core.KindInvalidArgument, "no common-data on file for pid")
	}
	return &UnlocksView{CommonData: cd}, nil
}
