// internal/repositories/gatherings.go

package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"trackday-server/internal/models"
)

// GatheringRepository handles gathering documents in MongoDB
type GatheringRepository struct {
	collection *mongo.Collection
}

func NewGatheringRepository(collection *mongo.Collection) *GatheringRepository {
	return &GatheringRepository{collection: collection}
}

func (r *GatheringRepository) Insert(ctx context.Context, g *models.Gathering) error {
	now := time.Now()
	g.CreatedAt = now
	g.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, g)
	return err
}

func (r *GatheringRepository) FindByGID(ctx context.Context, gid uint32) (*models.Gathering, error) {
	var g models.Gathering
	err := r.collection.FindOne(ctx, bson.M{"gid": gid}).Decode(&g)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// Replace overwrites the full document for gid, used by the gathering
// engine after every state transition (join/leave/host migration).
func (r *GatheringRepository) Replace(ctx context.Context, g *models.Gathering) error {
	g.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"gid": g.GID}, g)
	return err
}

func (r *GatheringRepository) Delete(ctx context.Context, gid uint32) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"gid": gid})
	return err
}

// FindByAttribs filters on the fixed slots the search protocol supports
// (0, 3, 4) when every provided value is non-nil, paginated by offset/limit.
func (r *GatheringRepository) FindByAttribs(ctx context.Context, slot0, slot3, slot4 *uint32, offset, limit int64) ([]*models.Gathering, error) {
	filter := bson.M{}
	if slot0 != nil {
		filter["attributes.0"] = *slot0
	}
	if slot3 != nil {
		filter["attributes.3"] = *slot3
	}
	if slot4 != nil {
		filter["attributes.4"] = *slot4
	}

	opts := options.Find().
		SetSkip(offset).
		SetLimit(limit).
		SetSort(bson.M{"created_at": 1})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*models.Gathering
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GatheringRepository) FindAll(ctx context.Context, offset, limit int64) ([]*models.Gathering, error) {
	opts := options.Find().SetSkip(offset).SetLimit(limit).SetSort(bson.M{"created_at": 1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*models.Gathering
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
