// internal/repositories/serverstatus.go

package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"trackday-server/internal/models"
)

const serverStatusDocID = "singleton"

type serverStatusDoc struct {
	ID string `bson:"_id"`
	models.ServerStatus `bson:",inline"`
}

// ServerStatusRepository persists the singleton maintenance/whitelist document
type ServerStatusRepository struct {
	collection *mongo.Collection
}

func NewServerStatusRepository(collection *mongo.Collection) *ServerStatusRepository {
	return &ServerStatusRepository{collection: collection}
}

// Load reconstructs status at boot, returning a default status that is
// online and otherwise zero-valued if none was ever persisted
func (r *ServerStatusRepository) Load(ctx context.Context) (*models.ServerStatus, error) {
	var doc serverStatusDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": serverStatusDocID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return &models.ServerStatus{IsOnline: true}, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc.ServerStatus, nil
}

// Save persists the current status, called by the periodic maintenance
// task and at shutdown; admin mutations reach storage on the next tick
func (r *ServerStatusRepository) Save(ctx context.Context, status *models.ServerStatus) error {
	doc := serverStatusDoc{ID: serverStatusDocID, ServerStatus: *status}
	_, err := r.collection.ReplaceOne(
		ctx,
		bson.M{"_id": serverStatusDocID},
		doc,
		options.Replace().SetUpsert(true),
	)
	return err
}
