// internal/repositories/tournaments.go

package repositories

import (
	"context"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"trackday-server/internal/models"
)

// TournamentRepository handles tournament ("simple search object") documents
type TournamentRepository struct {
	collection *mongo.Collection
}

func NewTournamentRepository(collection *mongo.Collection) *TournamentRepository {
	return &TournamentRepository{collection: collection}
}

func (r *TournamentRepository) Insert(ctx context.Context, t *models.Tournament) error {
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, t)
	return err
}

func (r *TournamentRepository) FindByID(ctx context.Context, id uint32) (*models.Tournament, error) {
	var t models.Tournament
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TournamentRepository) FindByIDs(ctx context.Context, ids []uint32) ([]*models.Tournament, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*models.Tournament
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *TournamentRepository) CommunityCodeExists(ctx context.Context, code string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"community_code": code})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *TournamentRepository) Update(ctx context.Context, t *models.Tournament) error {
	t.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": t.ID}, t)
	return err
}

func (r *TournamentRepository) Delete(ctx context.Context, id uint32) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// IncrementTotalParticipants bumps total_participants by one, used by
// UploadCompetitionScore; season_id is advanced separately by AdvanceSeason.
func (r *TournamentRepository) IncrementTotalParticipants(ctx context.Context, id uint32) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"total_participants": 1}})
	return err
}

// AdvanceSeason sets season_id to newSeason only if newSeason is greater
// than the stored value
func (r *TournamentRepository) AdvanceSeason(ctx context.Context, id uint32, newSeason uint32) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "season_id": bson.M{"$lt": newSeason}},
		bson.M{"$set": bson.M{"season_id": newSeason}},
	)
	return err
}

// SearchFilter is a compiled set of conditions for Search
type SearchFilter struct {
	AttributeEq map[int]uint32
	AttributeGT map[int]uint32
	AttributeLT map[int]uint32
	AttributeGE map[int]uint32
	AttributeLE map[int]uint32
	ID          *uint32
	Owner       *uint32
	CommunityCode *string
	PublicOnly  bool
}

func (f SearchFilter) toBSON() bson.M {
	filter := bson.M{}
	for slot, v := range f.AttributeEq {
		filter[attrField(slot)] = v
	}
	for slot, v := range f.AttributeGT {
		mergeRange(filter, attrField(slot), "$gt", v)
	}
	for slot, v := range f.AttributeLT {
		mergeRange(filter, attrField(slot), "$lt", v)
	}
	for slot, v := range f.AttributeGE {
		mergeRange(filter, attrField(slot), "$gte", v)
	}
	for slot, v := range f.AttributeLE {
		mergeRange(filter, attrField(slot), "$lte", v)
	}
	if f.ID != nil {
		filter["_id"] = *f.ID
	}
	if f.Owner != nil {
		filter["owner_pid"] = *f.Owner
	}
	if f.CommunityCode != nil {
		filter["community_code"] = *f.CommunityCode
	}
	if f.PublicOnly {
		filter["attributes.0"] = uint32(1)
	}
	return filter
}

func attrField(slot int) string {
	return "attributes." + strconv.Itoa(slot)
}

func mergeRange(filter bson.M, field, op string, v uint32) {
	existing, ok := filter[field].(bson.M)
	if !ok {
		existing = bson.M{}
	}
	existing[op] = v
	filter[field] = existing
}

func (r *TournamentRepository) Search(ctx context.Context, filter SearchFilter, offset, limit int64, sortBy string, descending bool) ([]*models.Tournament, error) {
	sortOrder := 1
	if descending {
		sortOrder = -1
	}
	opts := options.Find().
		SetSkip(offset).
		SetLimit(limit).
		SetSort(bson.D{{Key: sortBy, Value: sortOrder}})

	cursor, err := r.collection.Find(ctx, filter.toBSON(), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*models.Tournament
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
