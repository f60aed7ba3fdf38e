// internal/matchmaking/gathering.go
// The matchmake state machine (C6): create, join, leave, host migration,
// search, auto-clean.

package matchmaking

import (
	"context"
	"crypto/rand"
	"log"

	"trackday-server/internal/core"
	"trackday-server/internal/models"
	"trackday-server/internal/registry"
	"trackday-server/internal/repositories"
)

const maxParticipantsCeiling = 12
const maxSearchSize = 100

// FriendsClient is the external friends-service collaborator consulted for
// friends-only gatherings; out of scope to implement here, only its
// interface is fixed.
type FriendsClient interface {
	IsFriend(ctx context.Context, ownerPID, candidatePID uint32) (bool, error)
}

// Engine implements the gathering state machine
type Engine struct {
	repo     *repositories.GatheringRepository
	registry *registry.Registry
	friends  FriendsClient
	logger   *log.Logger
}

func NewEngine(repo *repositories.GatheringRepository, reg *registry.Registry, friends FriendsClient, logger *log.Logger) *Engine {
	return &Engine{repo: repo, registry: reg, friends: friends, logger: logger}
}

// CounterAllocator mints gathering ids; satisfied by repositories.CounterRepository
type CounterAllocator interface {
	Next(ctx context.Context, name string) (uint32, error)
}

// Create validates the template, mints a gathering id, and inserts the
// creator as owner/host/sole player
func (e *Engine) Create(ctx context.Context, counters CounterAllocator, ownerPID uint32, tmpl models.GatheringTemplate) (gid uint32, sessionKey []byte, err error) {
	if tmpl.MaxParticipants > maxParticipantsCeiling {
		return 0, nil, core.New(core.KindInvalidArgument, "max_participants exceeds 12")
	}
	if tmpl.MinParticipants > tmpl.MaxParticipants {
		return 0, nil, core.New(core.KindInvalidArgument, "min_participants exceeds max_participants")
	}
	// attributes is a fixed-width 20 array, so the "at least 5 attributes"
	// invariant is structural rather than checked here.

	gid, err = counters.Next(ctx, repositories.CounterGatheringID)
	if err != nil {
		return 0, nil, core.Wrap(core.KindInternal, "failed to allocate gathering id", err)
	}

	key, err := generateSessionKey()
	if err != nil {
		return 0, nil, core.Wrap(core.KindInternal, "failed to generate session key", err)
	}

	g := &models.Gathering{
		GID:             gid,
		OwnerPID:        ownerPID,
		HostPID:         ownerPID,
		Attributes:      tmpl.Attributes,
		Players:         []uint32{ownerPID},
		MinParticipants: tmpl.MinParticipants,
		MaxParticipants: tmpl.MaxParticipants,
		GameMode:        tmpl.GameMode,
		ApplicationData: tmpl.ApplicationData,
		SessionKey:      key,
		JoinMessage:     tmpl.JoinMessage,
		FriendsOnly:     tmpl.FriendsOnly,
	}

	if err := e.repo.Insert(ctx, g); err != nil {
		return 0, nil, core.Wrap(core.KindInternal, "failed to persist gathering", err)
	}
	return gid, key, nil
}

// JoinParams bundles Join's optional arguments
type JoinParams struct {
	GID                 uint32
	PID                 uint32
	JoinMessage         string
	IgnoreBlacklist     bool
	ParticipationCount  int
	ExtraParticipants   int
}

// Join admits a client into an existing gathering, applying friends-only
// visibility and the atomic capacity check
func (e *Engine) Join(ctx context.Context, p JoinParams) (sessionKey []byte, err error) {
	g, err := e.repo.FindByGID(ctx, p.GID)
	if err != nil {
		return nil, core.Wrap(core.KindInternal, "failed to load gathering", err)
	}
	if g == nil {
		return nil, core.ErrSessionVoid
	}

	deleted, err := e.autoCleanupOne(ctx, g)
	if err != nil {
		return nil, err
	}
	if deleted {
		return nil, core.ErrSessionVoid
	}

	if g.HasPlayer(p.PID) {
		return nil, core.ErrAlreadyParticipant
	}

	if g.FriendsOnly {
		if e.friends == nil {
			return nil, core.New(core.KindInternal, "friends service unavailable")
		}
		ok, ferr := e.friends.IsFriend(ctx, g.OwnerPID, p.PID)
		if ferr != nil {
			return nil, core.Wrap(core.KindInternal, "friends lookup failed", ferr)
		}
		if !ok {
			return nil, core.ErrNotFriend
		}
	}

	seatsNeeded := 1
	if p.ExtraParticipants > 0 {
		seatsNeeded += p.ExtraParticipants
	}
	if len(g.Players)+seatsNeeded > g.MaxParticipants {
		return nil, core.ErrSessionFull
	}

	g.Players = append(g.Players, p.PID)
	for i := 0; i < p.ExtraParticipants; i++ {
		g.Players = append(g.Players, 0) // anonymous seat
	}
	if p.JoinMessage != "" {
		g.JoinMessage = p.JoinMessage
	}

	if err := e.repo.Replace(ctx, g); err != nil {
		return nil, core.Wrap(core.KindInternal, "failed to persist gathering", err)
	}
	return g.SessionKey, nil
}

// Leave removes a client; if it was host, the oldest remaining player
// becomes host, and survivors receive a migration notification. If no
// players remain the gathering is destroyed. Notify is called with the
// survivor pids when a host migration occurred; it may be nil.
func (e *Engine) Leave(ctx context.Context, gid, pid uint32, notify func(survivors []uint32, newHost uint32)) error {
	g, err := e.repo.FindByGID(ctx, gid)
	if err != nil {
		return core.Wrap(core.KindInternal, "failed to load gathering", err)
	}
	if g == nil {
		return core.ErrSessionVoid
	}
	if !g.HasPlayer(pid) {
		return core.ErrNotParticipant
	}

	wasHost := g.HostPID == pid
	g.Players = removePID(g.Players, pid)

	if len(g.Players) == 0 {
		return e.repo.Delete(ctx, gid)
	}

	if wasHost {
		g.HostPID = g.Players[0]
		if notify != nil {
			notify(append([]uint32(nil), g.Players...), g.HostPID)
		}
	}

	return e.repo.Replace(ctx, g)
}

func removePID(players []uint32, pid uint32) []uint32 {
	out := players[:0:0]
	for _, p := range players {
		if p != pid {
			out = append(out, p)
		}
	}
	return out
}

// UpdateSessionHost lets the owner or current host reassign the host to any
// present player; OwnerPID is left unchanged, ownership is not transferred
func (e *Engine) UpdateSessionHost(ctx context.Context, gid, requester, newHostPID uint32) error {
	g, err := e.repo.FindByGID(ctx, gid)
	if err != nil {
		return core.Wrap(core.KindInternal, "failed to load gathering", err)
	}
	if g == nil {
		return core.ErrSessionVoid
	}
	if requester != g.OwnerPID && requester != g.HostPID {
		return core.ErrAccessDenied
	}
	if !g.HasPlayer(newHostPID) {
		return core.ErrNotParticipant
	}
	g.HostPID = newHostPID
	return e.repo.Replace(ctx, g)
}

// Destroy explicitly closes a gathering. Only the owner may issue it.
func (e *Engine) Destroy(ctx context.Context, gid, requester uint32) error {
	g, err := e.repo.FindByGID(ctx, gid)
	if err != nil {
		return core.Wrap(core.KindInternal, "failed to load gathering", err)
	}
	if g == nil {
		return core.ErrSessionVoid
	}
	if requester != g.OwnerPID {
		return core.ErrAccessDenied
	}
	return e.repo.Delete(ctx, gid)
}

// FindBySingleGathering fetches one gathering by id, applying the lazy
// auto-clean sweep first
func (e *Engine) FindBySingleGathering(ctx context.Context, gid uint32) (*models.Gathering, error) {
	g, err := e.repo.FindByGID(ctx, gid)
	if err != nil {
		return nil, core.Wrap(core.KindInternal, "failed to load gathering", err)
	}
	if g == nil {
		return nil, core.ErrSessionVoid
	}
	deleted, err := e.autoCleanupOne(ctx, g)
	if err != nil {
		return nil, err
	}
	if deleted {
		return nil, core.ErrSessionVoid
	}
	return g, nil
}

// FindByAttribs searches by the matchmake-exact slots (0, 3, 4), paginated
func (e *Engine) FindByAttribs(ctx context.Context, slot0, slot3, slot4 *uint32, offset, limit int) ([]*models.Gathering, error) {
	if limit > maxSearchSize || limit <= 0 {
		limit = maxSearchSize
	}
	results, err := e.repo.FindByAttribs(ctx, slot0, slot3, slot4, int64(offset), int64(limit))
	if err != nil {
		return nil, core.Wrap(core.KindInternal, "failed to search gatherings", err)
	}
	live := results[:0]
	for _, g := range results {
		deleted, err := e.autoCleanupOne(ctx, g)
		if err != nil {
			return nil, err
		}
		if !deleted {
			live = append(live, g)
		}
	}
	return live, nil
}

// autoCleanupOne closes gatherings whose host is no longer connected, as a
// lazy sweep touched by every join/search. It applies the same host-leaves
// logic as Leave: the disconnected host is dropped, the oldest remaining
// player is promoted, and the gathering is closed (deleted) if no players
// remain. Returns true if the gathering was deleted, so callers stop
// treating g as live.
func (e *Engine) autoCleanupOne(ctx context.Context, g *models.Gathering) (bool, error) {
	if g == nil || e.registry == nil {
		return false, nil
	}
	if e.registry.IsConnected(g.HostPID) {
		return false, nil
	}

	survivors := removePID(g.Players, g.HostPID)
	if len(survivors) == 0 {
		if err := e.repo.Delete(ctx, g.GID); err != nil {
			return false, core.Wrap(core.KindInternal, "failed to close stale gathering", err)
		}
		e.logger.Printf("matchmaking: closed gathering %d, host %d disconnected with no remaining players", g.GID, g.HostPID)
		return true, nil
	}

	g.Players = survivors
	g.HostPID = survivors[0]
	if err := e.repo.Replace(ctx, g); err != nil {
		return false, core.Wrap(core.KindInternal, "failed to migrate stale gathering host", err)
	}
	e.logger.Printf("matchmaking: migrated gathering %d host to %d after disconnect", g.GID, g.HostPID)
	return false, nil
}

func generateSessionKey() ([]byte, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	return buf, nil
}
