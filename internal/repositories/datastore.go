// internal/repositories/datastore.go

package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"trackday-server/internal/models"
)

// DatastoreRepository handles datastore object metadata records
type DatastoreRepository struct {
	collection *mongo.Collection
}

func NewDatastoreRepository(collection *mongo.Collection) *DatastoreRepository {
	return &DatastoreRepository{collection: collection}
}

func (r *DatastoreRepository) Insert(ctx context.Context, obj *models.DataStoreObject) error {
	now := time.Now()
	obj.CreatedAt = now
	obj.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, obj)
	return err
}

func (r *DatastoreRepository) FindByID(ctx context.Context, dataID uint32) (*models.DataStoreObject, error) {
	var obj models.DataStoreObject
	err := r.collection.FindOne(ctx, bson.M{"_id": dataID}).Decode(&obj)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &obj, nil
}

func (r *DatastoreRepository) FindByIDs(ctx context.Context, ids []uint32) ([]*models.DataStoreObject, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*models.DataStoreObject
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *DatastoreRepository) Update(ctx context.Context, obj *models.DataStoreObject) error {
	obj.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": obj.DataID}, obj)
	return err
}

func (r *DatastoreRepository) Delete(ctx context.Context, dataID uint32) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": dataID})
	return err
}

// Search pages through datastore objects ordered by created_at; of the
// filter it honours only Owner, every other SearchFilter field is ignored
func (r *DatastoreRepository) Search(ctx context.Context, filter SearchFilter, offset, limit int64) ([]*models.DataStoreObject, error) {
	opts := options.Find().SetSkip(offset).SetLimit(limit).SetSort(bson.M{"created_at": 1})

	bsonFilter := bson.M{}
	if filter.Owner != nil {
		bsonFilter["owner_pid"] = *filter.Owner
	}

	cursor, err := r.collection.Find(ctx, bsonFilter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*models.DataStoreObject
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
