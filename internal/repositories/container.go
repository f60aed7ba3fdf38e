// internal/repositories/container.go
// Dependency container wiring every collection-scoped repository to a
// single MongoDB database handle.

package repositories

import (
	"go.mongodb.org/mongo-driver/mongo"

	"trackday-server/internal/config"
)

// Container groups every repository so engines receive one handle instead
// of threading individual collections through constructors.
type Container struct {
	Gatherings      *GatheringRepository
	Tournaments     *TournamentRepository
	TournamentScore *TournamentScoreRepository
	RankingScore    *RankingScoreRepository
	CommonData      *CommonDataRepository
	Datastore       *DatastoreRepository
	Sessions        *SessionRepository
	Counters        *CounterRepository
	ServerStatus    *ServerStatusRepository
}

// NewContainer builds every repository against db, using the configured
// collection names so a deployment can rename them without a code change.
func NewContainer(db *mongo.Database, names config.CollectionNames) *Container {
	return &Container{
		Gatherings:      NewGatheringRepository(db.Collection(names.Gatherings)),
		Tournaments:     NewTournamentRepository(db.Collection(names.Tournaments)),
		TournamentScore: NewTournamentScoreRepository(db.Collection(names.TournamentScore)),
		RankingScore:    NewRankingScoreRepository(db.Collection(names.RankingScore)),
		CommonData:      NewCommonDataRepository(db.Collection(names.CommonData)),
		Datastore:       NewDatastoreRepository(db.Collection(names.Datastore)),
		Sessions:        NewSessionRepository(db.Collection(names.Sessions)),
		Counters:        NewCounterRepository(db.Collection(names.Counters)),
		ServerStatus:    NewServerStatusRepository(db.Collection(names.ServerStatus)),
	}
}
