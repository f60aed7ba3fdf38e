// internal/repositories/sessions.go
// The session collection tracks nothing beyond what the boot sequence needs
// to clear: it exists so a restart never reads stale session rows.

package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type SessionRepository struct {
	collection *mongo.Collection
}

func NewSessionRepository(collection *mongo.Collection) *SessionRepository {
	return &SessionRepository{collection: collection}
}

// ClearAll removes every session row, run once at boot
func (r *SessionRepository) ClearAll(ctx context.Context) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{})
	return err
}
