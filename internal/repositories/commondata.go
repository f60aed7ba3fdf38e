// internal/repositories/commondata.go

package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"trackday-server/internal/models"
)

// CommonDataRepository handles the per-pid decoded upload blob
type CommonDataRepository struct {
	collection *mongo.Collection
}

func NewCommonDataRepository(collection *mongo.Collection) *CommonDataRepository {
	return &CommonDataRepository{collection: collection}
}

func (r *CommonDataRepository) Upsert(ctx context.Context, cd *models.CommonData) error {
	cd.LastUpdate = time.Now()
	_, err := r.collection.ReplaceOne(
		ctx,
		bson.M{"pid": cd.PID},
		cd,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (r *CommonDataRepository) Find(ctx context.Context, pid uint32) (*models.CommonData, error) {
	var cd models.CommonData
	err := r.collection.FindOne(ctx, bson.M{"pid": pid}).Decode(&cd)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cd, nil
}

// FindByPIDs batches lookups for the admin mii-name join
func (r *CommonDataRepository) FindByPIDs(ctx context.Context, pids []uint32) (map[uint32]*models.CommonData, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"pid": bson.M{"$in": pids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := make(map[uint32]*models.CommonData)
	for cursor.Next(ctx) {
		var cd models.CommonData
		if err := cursor.Decode(&cd); err != nil {
			return nil, err
		}
		cdCopy := cd
		out[cd.PID] = &cdCopy
	}
	return out, cursor.Err()
}
