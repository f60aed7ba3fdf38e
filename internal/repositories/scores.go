// internal/repositories/scores.go

package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"trackday-server/internal/models"
)

// TournamentScoreRepository handles competition score rows keyed by
// (tournament_id, season_id, pid)
type TournamentScoreRepository struct {
	collection *mongo.Collection
}

func NewTournamentScoreRepository(collection *mongo.Collection) *TournamentScoreRepository {
	return &TournamentScoreRepository{collection: collection}
}

func scoreKey(tid, season, pid uint32) bson.M {
	return bson.M{"tournament_id": tid, "season_id": season, "pid": pid}
}

func (r *TournamentScoreRepository) Find(ctx context.Context, tid, season, pid uint32) (*models.TournamentScore, error) {
	var s models.TournamentScore
	err := r.collection.FindOne(ctx, scoreKey(tid, season, pid)).Decode(&s)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Upsert replaces the row for (tid, season, pid) with score
func (r *TournamentScoreRepository) Upsert(ctx context.Context, score *models.TournamentScore) error {
	score.LastUpdate = time.Now()
	_, err := r.collection.ReplaceOne(
		ctx,
		scoreKey(score.TournamentID, score.SeasonID, score.PID),
		score,
		options.Replace().SetUpsert(true),
	)
	return err
}

// TopNBySeason returns the top `limit` rows for (tid, season) ordered by
// score descending, ties broken by earlier last_update
func (r *TournamentScoreRepository) TopNBySeason(ctx context.Context, tid, season uint32, limit int64) ([]*models.TournamentScore, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "score", Value: -1}, {Key: "last_update", Value: 1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"tournament_id": tid, "season_id": season}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*models.TournamentScore
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RankingScoreRepository handles per-category leaderboard rows keyed by
// (category, pid)
type RankingScoreRepository struct {
	collection *mongo.Collection
}

func NewRankingScoreRepository(collection *mongo.Collection) *RankingScoreRepository {
	return &RankingScoreRepository{collection: collection}
}

func (r *RankingScoreRepository) Upsert(ctx context.Context, rs *models.RankingScore) error {
	rs.LastUpdate = time.Now()
	_, err := r.collection.ReplaceOne(
		ctx,
		bson.M{"category": rs.Category, "pid": rs.PID},
		rs,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (r *RankingScoreRepository) Find(ctx context.Context, category, pid uint32) (*models.RankingScore, error) {
	var rs models.RankingScore
	err := r.collection.FindOne(ctx, bson.M{"category": category, "pid": pid}).Decode(&rs)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rs, nil
}

// RankRange returns rows for category ordered ascending by score (lower is
// better), from offset up to limit entries
func (r *RankingScoreRepository) RankRange(ctx context.Context, category uint32, offset, limit int64) ([]*models.RankingScore, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "score", Value: 1}, {Key: "last_update", Value: 1}}).
		SetSkip(offset).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"category": category}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*models.RankingScore
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FindByPIDs returns rows for category restricted to the given pids (used
// for friends-of-pid lookups, the pid set supplied by the caller)
func (r *RankingScoreRepository) FindByPIDs(ctx context.Context, category uint32, pids []uint32) ([]*models.RankingScore, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"category": category, "pid": bson.M{"$in": pids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*models.RankingScore
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
