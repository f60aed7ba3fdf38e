// internal/ranking/competition.go
// Tournament competition scoring: upload, ranking retrieval, and the public
// competition listing.

package ranking

import (
	"context"
	"sort"

	"trackday-server/internal/core"
	"trackday-server/internal/counterstore"
	"trackday-server/internal/models"
	"trackday-server/internal/repositories"
)

// publicFilter matches attributes[0]==1 (public), attributes[12]!=2 and
// attributes[13]!=2; since both slots are validated to {1,2} at create
// time, "!=2" is equivalent to "==1".
func publicFilter() repositories.SearchFilter {
	return repositories.SearchFilter{
		PublicOnly: true,
		AttributeEq: map[int]uint32{
			12: 1,
			13: 1,
		},
	}
}

// UploadCompetitionScoreParam is the competition upload request
type UploadCompetitionScoreParam struct {
	TournamentID uint32
	SeasonID     uint32
	PID          uint32
	Score        int64
	TeamID       int32 // 0, 1, or other (not a team)
	Metadata     []byte
}

// UploadCompetitionScore upserts the score row for (tid, season, pid),
// advances totals and per-team counters, and advances the tournament's
// season if the upload names a later one
func (e *Engine) UploadCompetitionScore(ctx context.Context, p UploadCompetitionScoreParam) error {
	if len(p.Metadata) > models.MaxCompetitionMetadataSize {
		return core.New(core.KindInvalidArgument, "competition metadata exceeds 256 bytes")
	}

	t, err := e.tournaments.FindByID(ctx, p.TournamentID)
	if err != nil {
		return core.Wrap(core.KindInternal, "failed to load tournament", err)
	}
	if t == nil {
		return core.ErrInvalidIndex
	}

	existing, err := e.tournamentScores.Find(ctx, p.TournamentID, p.SeasonID, p.PID)
	if err != nil {
		return core.Wrap(core.KindInternal, "failed to load existing score", err)
	}

	var diff int64
	isNew := existing == nil
	if isNew {
		diff = p.Score
	} else {
		diff = p.Score - existing.Score
	}

	row := &models.TournamentScore{
		TournamentID: p.TournamentID,
		SeasonID:     p.SeasonID,
		PID:          p.PID,
		Score:        p.Score,
		TeamID:       p.TeamID,
		TeamScore:    p.Score,
		Metadata:     p.Metadata,
	}
	if err := e.tournamentScores.Upsert(ctx, row); err != nil {
		return core.Wrap(core.KindInternal, "failed to upsert competition score", err)
	}

	if isNew {
		if err := e.tournaments.IncrementTotalParticipants(ctx, p.TournamentID); err != nil {
			return core.Wrap(core.KindInternal, "failed to increment total_participants", err)
		}
		if _, err := e.counters.Incr(ctx, counterstore.ParticipationTotal(p.TournamentID)); err != nil {
			return core.Wrap(core.KindInternal, "failed to increment participation total", err)
		}
		if _, err := e.counters.Incr(ctx, counterstore.ParticipationSeasonTotal(p.TournamentID, p.SeasonID)); err != nil {
			return core.Wrap(core.KindInternal, "failed to increment participation season total", err)
		}
		if p.TeamID == 0 || p.TeamID == 1 {
			team := int(p.TeamID)
			if _, err := e.counters.Incr(ctx, counterstore.ParticipationTeam(p.TournamentID, team)); err != nil {
				return core.Wrap(core.KindInternal, "failed to increment team participation", err)
			}
			if _, err := e.counters.Incr(ctx, counterstore.ParticipationSeasonTeam(p.TournamentID, p.SeasonID, team)); err != nil {
				return core.Wrap(core.KindInternal, "failed to increment season team participation", err)
			}
		}
	}

	if p.SeasonID > t.SeasonID {
		if err := e.tournaments.AdvanceSeason(ctx, p.TournamentID, p.SeasonID); err != nil {
			return core.Wrap(core.KindInternal, "failed to advance season", err)
		}
	}

	if p.TeamID == 0 || p.TeamID == 1 {
		team := int(p.TeamID)
		if _, err := e.counters.IncrBy(ctx, counterstore.ScoreTeam(p.TournamentID, team), diff); err != nil {
			return core.Wrap(core.KindInternal, "failed to adjust team score", err)
		}
		if _, err := e.counters.IncrBy(ctx, counterstore.ScoreSeasonTeam(p.TournamentID, p.SeasonID, team), diff); err != nil {
			return core.Wrap(core.KindInternal, "failed to adjust season team score", err)
		}
	}

	return nil
}

// GetCompetitionRankingScoreParam is the ranking retrieval request
type GetCompetitionRankingScoreParam struct {
	TournamentID uint32
	Size         int // number of most-recent seasons, capped at 5
}

// GetCompetitionRankingScore returns the most recent `Size` seasons ending
// at the tournament's current season, each with a top-20 ranking and (for
// team tournaments) materialised team totals
func (e *Engine) GetCompetitionRankingScore(ctx context.Context, p GetCompetitionRankingScoreParam) ([]models.SeasonRanking, error) {
	if p.Size <= 0 || p.Size > maxCompetitionRankingSeasons {
		p.Size = maxCompetitionRankingSeasons
	}

	t, err := e.tournaments.FindByID(ctx, p.TournamentID)
	if err != nil {
		return nil, core.Wrap(core.KindInternal, "failed to load tournament", err)
	}
	if t == nil {
		return nil, core.ErrInvalidIndex
	}

	var seasons []uint32
	for s := t.SeasonID; s > 0 && len(seasons) < p.Size; s-- {
		seasons = append(seasons, s)
		if s == 1 {
			break
		}
	}

	out := make([]models.SeasonRanking, 0, len(seasons))
	for _, season := range seasons {
		rows, err := e.tournamentScores.TopNBySeason(ctx, p.TournamentID, season, competitionTopN)
		if err != nil {
			return nil, core.Wrap(core.KindInternal, "failed to read season ranking", err)
		}

		entries := make([]models.RankedEntry, len(rows))
		for i, row := range rows {
			entries[i] = models.RankedEntry{Rank: i + 1, PID: row.PID, Score: row.Score}
		}

		ranking := models.SeasonRanking{SeasonID: season, Entries: entries}

		if t.IsTeamTournament() {
			teamScores, err := e.readTeamScores(ctx, p.TournamentID, season)
			if err != nil {
				return nil, err
			}
			ranking.TeamScores = teamScores
		}

		out = append(out, ranking)
	}

	return out, nil
}

// readTeamScores reads the four per-season team counters and returns them
// as stored: the score counters already hold the running sum of signed
// score deltas, so no participation offset is subtracted
func (e *Engine) readTeamScores(ctx context.Context, tid, season uint32) (*models.TeamScores, error) {
	keys := []string{
		counterstore.ScoreSeasonTeam(tid, season, 0),
		counterstore.ScoreSeasonTeam(tid, season, 1),
		counterstore.ParticipationSeasonTeam(tid, season, 0),
		counterstore.ParticipationSeasonTeam(tid, season, 1),
	}
	vals, err := e.counters.MGet(ctx, keys...)
	if err != nil {
		return nil, core.Wrap(core.KindInternal, "failed to read team counters", err)
	}
	return &models.TeamScores{
		Team0Score:        vals[0],
		Team1Score:        vals[1],
		Team0Participants: vals[2],
		Team1Participants: vals[3],
	}, nil
}

// readTeamScoresAllSeasons reads the four across-all-seasons team counters,
// used by the public listing, which reports career totals rather than the
// current season alone
func (e *Engine) readTeamScoresAllSeasons(ctx context.Context, tid uint32) (*models.TeamScores, error) {
	keys := []string{
		counterstore.ScoreTeam(tid, 0),
		counterstore.ScoreTeam(tid, 1),
		counterstore.ParticipationTeam(tid, 0),
		counterstore.ParticipationTeam(tid, 1),
	}
	vals, err := e.counters.MGet(ctx, keys...)
	if err != nil {
		return nil, core.Wrap(core.KindInternal, "failed to read team counters", err)
	}
	return &models.TeamScores{
		Team0Score:        vals[0],
		Team1Score:        vals[1],
		Team0Participants: vals[2],
		Team1Participants: vals[3],
	}, nil
}

// GetCompetitionInfoParam is the public-listing request
type GetCompetitionInfoParam struct {
	Offset int
	Size   int
}

// CompetitionInfo is one row of the public tournament listing
type CompetitionInfo struct {
	Tournament  *models.Tournament
	TeamScores  *models.TeamScores
}

// GetCompetitionInfo lists public tournaments ordered by total_participants
// descending, with team totals computed for team tournaments
func (e *Engine) GetCompetitionInfo(ctx context.Context, p GetCompetitionInfoParam) ([]CompetitionInfo, error) {
	if p.Size <= 0 || p.Size > maxCompetitionInfoSize {
		p.Size = maxCompetitionInfoSize
	}

	filter := publicFilter()
	tournaments, err := e.tournaments.Search(ctx, filter, int64(p.Offset), int64(p.Size), "total_participants", true)
	if err != nil {
		return nil, core.Wrap(core.KindInternal, "failed to list tournaments", err)
	}

	out := make([]CompetitionInfo, 0, len(tournaments))
	for _, t := range tournaments {
		info := CompetitionInfo{Tournament: t}
		if t.IsTeamTournament() {
			teamScores, err := e.readTeamScoresAllSeasons(ctx, t.ID)
			if err != nil {
				return nil, err
			}
			info.TeamScores = teamScores
		}
		out = append(out, info)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Tournament.TotalParticipants > out[j].Tournament.TotalParticipants
	})

	return out, nil
}
