// internal/tournament/tournament.go
// Simple-search-object lifecycle: create, update, delete, search (C7).

package tournament

import (
	"context"
	"regexp"

	"trackday-server/internal/core"
	"trackday-server/internal/metadata"
	"trackday-server/internal/models"
	"trackday-server/internal/repositories"
)

const maxSearchSize = 100
const maxSearchByIDs = 100

var communityCodePattern = regexp.MustCompile(`^[0-9]{12}$`)

// CounterAllocator mints tournament ids
type CounterAllocator interface {
	Next(ctx context.Context, name string) (uint32, error)
}

// Engine implements the tournament lifecycle
type Engine struct {
	repo *repositories.TournamentRepository
}

func NewEngine(repo *repositories.TournamentRepository) *Engine {
	return &Engine{repo: repo}
}

// validateAttributes checks the per-slot domains from §4.3
func validateAttributes(attrs [models.AttributeCount]uint32) error {
	checks := []struct {
		slot int
		ok   func(v uint32) bool
	}{
		{0, oneOf(1, 2)},
		{2, lte(5)},
		{3, between(1, 8)},
		{4, oneOf(1, 2)},
		{5, oneOf(1, 2, 3)},
		{6, oneOf(1, 2)},
		{7, oneOf(1, 2)},
		{8, between(1, 9)},
		{9, lte(4)},
		{10, oneOf(1, 2)},
		{11, oneOf(1, 2, 3, 4)},
		{12, oneOf(1, 2)},
		{13, oneOf(1, 2)},
	}
	for _, c := range checks {
		if !c.ok(attrs[c.slot]) {
			return core.New(core.KindInvalidArgument, "tournament attribute out of range")
		}
	}
	return nil
}

func oneOf(vals ...uint32) func(uint32) bool {
	return func(v uint32) bool {
		for _, want := range vals {
			if v == want {
				return true
			}
		}
		return false
	}
}

func lte(max uint32) func(uint32) bool {
	return func(v uint32) bool { return v <= max }
}

func between(min, max uint32) func(uint32) bool {
	return func(v uint32) bool { return v >= min && v <= max }
}

// Create validates and persists a new tournament, returning its id
func (e *Engine) Create(ctx context.Context, counters CounterAllocator, ownerPID uint32, t *models.Tournament) (uint32, error) {
	if err := e.validate(ctx, t, true); err != nil {
		return 0, err
	}

	id, err := counters.Next(ctx, repositories.CounterTournamentID)
	if err != nil {
		return 0, core.Wrap(core.KindInternal, "failed to allocate tournament id", err)
	}

	parsed, err := metadata.Decode(t.Metadata)
	if err != nil {
		return 0, err
	}

	t.ID = id
	t.OwnerPID = ownerPID
	t.ParsedMetadata = parsed
	t.SeasonID = 1
	t.TotalParticipants = 0

	if err := e.repo.Insert(ctx, t); err != nil {
		return 0, core.Wrap(core.KindInternal, "failed to persist tournament", err)
	}
	return id, nil
}

// Update re-validates and overwrites attributes/metadata/datetime; it
// never touches season_id, total_participants, or the community id/code,
// which are immutable after creation
func (e *Engine) Update(ctx context.Context, requester, id uint32, patch *models.Tournament) error {
	existing, err := e.repo.FindByID(ctx, id)
	if err != nil {
		return core.Wrap(core.KindInternal, "failed to load tournament", err)
	}
	if existing == nil {
		return core.ErrInvalidIndex
	}
	if existing.OwnerPID != requester {
		return core.ErrAccessDenied
	}

	if err := e.validate(ctx, patch, false); err != nil {
		return err
	}
	parsed, err := metadata.Decode(patch.Metadata)
	if err != nil {
		return err
	}

	existing.Attributes = patch.Attributes
	existing.Metadata = patch.Metadata
	existing.ParsedMetadata = parsed
	existing.DateTime = patch.DateTime

	return e.repo.Update(ctx, existing)
}

// Delete removes the tournament record; score rows and counters are left
// in place (unreachable, retained for audit)
func (e *Engine) Delete(ctx context.Context, requester, id uint32) error {
	existing, err := e.repo.FindByID(ctx, id)
	if err != nil {
		return core.Wrap(core.KindInternal, "failed to load tournament", err)
	}
	if existing == nil {
		return core.ErrInvalidIndex
	}
	if existing.OwnerPID != requester {
		return core.ErrAccessDenied
	}
	return e.repo.Delete(ctx, id)
}

func (e *Engine) validate(ctx context.Context, t *models.Tournament, checkCodeUnique bool) error {
	if t.CommunityID == 0 {
		return core.New(core.KindInvalidArgument, "community_id must be nonzero")
	}
	if !communityCodePattern.MatchString(t.CommunityCode) {
		return core.New(core.KindInvalidArgument, "community_code must be 12 decimal digits")
	}
	if err := validateAttributes(t.Attributes); err != nil {
		return err
	}
	if checkCodeUnique {
		exists, err := e.repo.CommunityCodeExists(ctx, t.CommunityCode)
		if err != nil {
			return core.Wrap(core.KindInternal, "failed to check community_code uniqueness", err)
		}
		if exists {
			return core.New(core.KindInvalidArgument, "community_code already in use")
		}
	}
	return nil
}

// SearchParam is the caller-supplied search request
type SearchParam struct {
	Conditions    []Condition
	ID            uint32
	Owner         uint32
	CommunityCode string
	Offset        int
	Size          int
}

// Condition is one attribute-slot filter
type Condition struct {
	Slot     int
	Operator int
	Value    uint32
}

const (
	OpIgnore = 0
	OpEqual  = 1
	OpGT     = 2
	OpLT     = 3
	OpGE     = 4
	OpLE     = 5
)

// compile turns the wire conditions into a repository SearchFilter
func compile(param SearchParam) (repositories.SearchFilter, error) {
	filter := repositories.SearchFilter{
		AttributeEq: map[int]uint32{},
		AttributeGT: map[int]uint32{},
		AttributeLT: map[int]uint32{},
		AttributeGE: map[int]uint32{},
		AttributeLE: map[int]uint32{},
	}
	for _, c := range param.Conditions {
		switch c.Operator {
		case OpIgnore:
			continue
		case OpEqual:
			filter.AttributeEq[c.Slot] = c.Value
		case OpGT:
			filter.AttributeGT[c.Slot] = c.Value
		case OpLT:
			filter.AttributeLT[c.Slot] = c.Value
		case OpGE:
			filter.AttributeGE[c.Slot] = c.Value
		case OpLE:
			filter.AttributeLE[c.Slot] = c.Value
		default:
			return filter, core.New(core.KindInvalidArgument, "unknown search operator")
		}
	}
	if param.ID != 0 {
		id := param.ID
		filter.ID = &id
	}
	if param.Owner != 0 {
		owner := param.Owner
		filter.Owner = &owner
	}
	if param.CommunityCode != "" {
		code := param.CommunityCode
		filter.CommunityCode = &code
	}
	return filter, nil
}

// Search compiles param's conditions and returns matching tournaments
func (e *Engine) Search(ctx context.Context, param SearchParam) ([]*models.Tournament, error) {
	if param.Size <= 0 || param.Size > maxSearchSize {
		param.Size = maxSearchSize
	}
	filter, err := compile(param)
	if err != nil {
		return nil, err
	}
	return e.repo.Search(ctx, filter, int64(param.Offset), int64(param.Size), "created_at", false)
}

// SearchByIDs returns the subset of ids that exist, dropping missing ones
func (e *Engine) SearchByIDs(ctx context.Context, ids []uint32) ([]*models.Tournament, error) {
	if len(ids) > maxSearchByIDs {
		return nil, core.New(core.KindInvalidArgument, "too many ids")
	}
	return e.repo.FindByIDs(ctx, ids)
}
