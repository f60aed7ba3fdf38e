// internal/repositories/counters.go
// Atomic counter allocation backed by the "counters" collection, keyed by
// string id with field "seq". FindOneAndUpdate with $inc and upsert is the
// atomicity primitive: it returns the post-increment value, and because each
// increment is atomic every caller observes a unique id.

package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CounterGatheringID       = "gathering_id"
	CounterTournamentID      = "tournament_id"
	CounterDatastoreObjectID = "datastore_object_id"
)

// Seed values for the three well-known counters, applied once at boot if
// the counter document is absent. Next() increments before returning, so
// the seed is one below each counter's first issued id (1000/20000/20000).
const (
	SeedGatheringID       = 1000 - 1
	SeedTournamentID      = 20000 - 1
	SeedDatastoreObjectID = 20000 - 1
)

type counterDoc struct {
	ID  string `bson:"_id"`
	Seq uint32 `bson:"seq"`
}

// CounterRepository allocates monotonic ids
type CounterRepository struct {
	collection *mongo.Collection
}

func NewCounterRepository(collection *mongo.Collection) *CounterRepository {
	return &CounterRepository{collection: collection}
}

// Next increments the named counter and returns the value the caller should
// use as the newly minted id (i.e. the value after increment).
func (r *CounterRepository) Next(ctx context.Context, name string) (uint32, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc counterDoc
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, err
	}
	return doc.Seq, nil
}

// EnsureSeeded inserts the three well-known counters at their initial
// values if they do not already exist, leaving any existing counter alone.
func (r *CounterRepository) EnsureSeeded(ctx context.Context) error {
	seeds := []counterDoc{
		{ID: CounterGatheringID, Seq: SeedGatheringID},
		{ID: CounterTournamentID, Seq: SeedTournamentID},
		{ID: CounterDatastoreObjectID, Seq: SeedDatastoreObjectID},
	}
	for _, seed := range seeds {
		_, err := r.collection.UpdateOne(
			ctx,
			bson.M{"_id": seed.ID},
			bson.M{"$setOnInsert": seed},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return err
		}
	}
	return nil
}
