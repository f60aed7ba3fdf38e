// internal/ranking/ranking.go
// Category rankings plus tournament competition scoring with per-season and
// team aggregates (C8).

package ranking

import (
	"context"
	"log"

	"trackday-server/internal/core"
	"trackday-server/internal/counterstore"
	"trackday-server/internal/metadata"
	"trackday-server/internal/models"
	"trackday-server/internal/repositories"
)

const (
	maxCompetitionRankingSeasons = 5
	competitionTopN              = 20
	maxCompetitionInfoSize       = 100
)

// Engine implements both the general-category surface and the tournament
// competition surface, which share storage
type Engine struct {
	rankingScores *repositories.RankingScoreRepository
	tournamentScores *repositories.TournamentScoreRepository
	tournaments   *repositories.TournamentRepository
	commonData    *repositories.CommonDataRepository
	counters      *counterstore.Store
	logger        *log.Logger
}

func NewEngine(
	rankingScores *repositories.RankingScoreRepository,
	tournamentScores *repositories.TournamentScoreRepository,
	tournaments *repositories.TournamentRepository,
	commonData *repositories.CommonDataRepository,
	counters *counterstore.Store,
	logger *log.Logger,
) *Engine {
	return &Engine{
		rankingScores:    rankingScores,
		tournamentScores: tournamentScores,
		tournaments:      tournaments,
		commonData:       commonData,
		counters:         counters,
		logger:           logger,
	}
}

// UploadScoreParam is the general-category upload request
type UploadScoreParam struct {
	Category   uint32
	PID        uint32
	Score      int64
	Groups     []uint8
	Param      uint64
	CommonData []byte // optional; present triggers the common-data handler
}

// UploadScore upserts a category ranking row and, when CommonData is
// present, parses and upserts it via the common-data handler
func (e *Engine) UploadScore(ctx context.Context, p UploadScoreParam) error {
	row := &models.RankingScore{
		Category: p.Category,
		PID:      p.PID,
		Score:    p.Score,
		Groups:   p.Groups,
		Param:    p.Param,
	}
	if err := e.rankingScores.Upsert(ctx, row); err != nil {
		return core.Wrap(core.KindInternal, "failed to upsert ranking score", err)
	}

	if len(p.CommonData) == 0 {
		return nil
	}
	cd, err := metadata.DecodeCommonData(p.PID, p.CommonData)
	if err != nil {
		return err
	}

	// DecodeCommonData never populates MiiName (it comes from the account-link
	// collaborator, not the client blob), and Upsert replaces the whole
	// document, so carry the existing value forward rather than blanking it
	// on every score upload.
	if existing, ferr := e.commonData.Find(ctx, p.PID); ferr == nil && existing != nil {
		cd.MiiName = existing.MiiName
	}

	if err := e.commonData.Upsert(ctx, &cd); err != nil {
		return core.Wrap(core.KindInternal, "failed to upsert common data", err)
	}
	return nil
}

// GetRankRange returns category rows ordered ascending by score (lower is
// better), from offset up to limit entries
func (e *Engine) GetRankRange(ctx context.Context, category uint32, offset, limit int) ([]*models.RankingScore, error) {
	rows, err := e.rankingScores.RankRange(ctx, category, int64(offset), int64(limit))
	if err != nil {
		return nil, core.Wrap(core.KindInternal, "failed to read ranking range", err)
	}
	return rows, nil
}

// GetByPID returns one pid's category row
func (e *Engine) GetByPID(ctx context.Context, category, pid uint32) (*models.RankingScore, error) {
	row, err := e.rankingScores.Find(ctx, category, pid)
	if err != nil {
		return nil, core.Wrap(core.KindInternal, "failed to read ranking row", err)
	}
	if row == nil {
		return nil, core.ErrInvalidIndex
	}
	return row, nil
}

// GetByFriends returns category rows for the given set of pids
func (e *Engine) GetByFriends(ctx context.Context, category uint32, pids []uint32) ([]*models.RankingScore, error) {
	rows, err := e.rankingScores.FindByPIDs(ctx, category, pids)
	if err != nil {
		return nil, core.Wrap(core.KindInternal, "failed to read friends ranking rows", err)
	}
	return rows, nil
}
