// internal/rendezvous/handlers.go
// Binds the matchmaking, tournament, ranking and datastore engines to their
// protocol+method numbers, each handler doing nothing but unwrap Params,
// call the engine, and return its result.

package rendezvous

import (
	"context"
	"encoding/json"

	"trackday-server/internal/datastore"
	"trackday-server/internal/matchmaking"
	"trackday-server/internal/models"
	"trackday-server/internal/ranking"
	"trackday-server/internal/repositories"
	"trackday-server/internal/tournament"
)

// Services bundles the engines and the counter allocator the handlers close
// over; Services.NewDispatcher wires them into a ready-to-use Dispatcher.
type Services struct {
	Counters    *repositories.CounterRepository
	Matchmaking *matchmaking.Engine
	Tournament  *tournament.Engine
	Ranking     *ranking.Engine
	Datastore   *datastore.Engine
}

// NewDispatcher builds and registers the full rendezvous dispatch table
func (s *Services) NewDispatcher() *Dispatcher {
	d := NewDispatcher()

	d.Register(ProtocolMatchmakeExtension, MethodCreateSimpleSearchObject, s.handleCreateSimpleSearchObject)
	d.Register(ProtocolMatchmakeExtension, MethodUpdateSimpleSearchObject, s.handleUpdateSimpleSearchObject)
	d.Register(ProtocolMatchmakeExtension, MethodDeleteSimpleSearchObject, s.handleDeleteSimpleSearchObject)
	d.Register(ProtocolMatchmakeExtension, MethodSearchSimpleSearchObject, s.handleSearchSimpleSearchObject)
	d.Register(ProtocolMatchmakeExtension, MethodJoinMatchmakeSessionWithExtraParticipants, s.handleJoinWithExtraParticipants)
	d.Register(ProtocolMatchmakeExtension, MethodSearchSimpleSearchObjectByObjectIDs, s.handleSearchSimpleSearchObjectByObjectIDs)

	d.Register(ProtocolRanking, MethodGetCompetitionRankingScore, s.handleGetCompetitionRankingScore)
	d.Register(ProtocolRanking, MethodUploadCompetitionRankingScore, s.handleUploadCompetitionRankingScore)
	d.Register(ProtocolRanking, MethodGetCompetitionInfo, s.handleGetCompetitionInfo)

	d.Register(ProtocolDatastore, MethodGetObjectInfos, s.handleGetObjectInfos)

	return d
}

// HandleCall is the integration point an external rendezvous transport
// calls once it has authenticated a connection and decoded one request's
// protocol/method/raw params off the wire; framing and transport concerns
// stop at raw. Returns nil, false, nil when no handler is registered for
// the given protocol+method.
func (s *Services) HandleCall(ctx context.Context, dispatcher *Dispatcher, pid uint32, protocol, method int, raw json.RawMessage) (interface{}, bool, error) {
	if _, ok := dispatcher.handlers[key{protocol, method}]; !ok {
		return nil, false, nil
	}
	params, err := decodeParams(protocol, method, raw)
	if err != nil {
		return nil, true, err
	}
	return dispatcher.Dispatch(ctx, Request{PID: pid, Protocol: protocol, Method: method, Params: params})
}

func (s *Services) handleCreateSimpleSearchObject(ctx context.Context, req Request) (interface{}, error) {
	t := req.Params.(*models.Tournament)
	id, err := s.Tournament.Create(ctx, s.Counters, req.PID, t)
	return id, err
}

func (s *Services) handleUpdateSimpleSearchObject(ctx context.Context, req Request) (interface{}, error) {
	p := req.Params.(UpdateSimpleSearchObjectParams)
	return nil, s.Tournament.Update(ctx, req.PID, p.TournamentID, p.Patch)
}

func (s *Services) handleDeleteSimpleSearchObject(ctx context.Context, req Request) (interface{}, error) {
	id := req.Params.(uint32)
	return nil, s.Tournament.Delete(ctx, req.PID, id)
}

func (s *Services) handleSearchSimpleSearchObject(ctx context.Context, req Request) (interface{}, error) {
	p := req.Params.(tournament.SearchParam)
	return s.Tournament.Search(ctx, p)
}

func (s *Services) handleSearchSimpleSearchObjectByObjectIDs(ctx context.Context, req Request) (interface{}, error) {
	ids := req.Params.([]uint32)
	return s.Tournament.SearchByIDs(ctx, ids)
}

func (s *Services) handleJoinWithExtraParticipants(ctx context.Context, req Request) (interface{}, error) {
	p := req.Params.(matchmaking.JoinParams)
	p.PID = req.PID
	return s.Matchmaking.Join(ctx, p)
}

func (s *Services) handleGetCompetitionRankingScore(ctx context.Context, req Request) (interface{}, error) {
	p := req.Params.(ranking.GetCompetitionRankingScoreParam)
	return s.Ranking.GetCompetitionRankingScore(ctx, p)
}

func (s *Services) handleUploadCompetitionRankingScore(ctx context.Context, req Request) (interface{}, error) {
	p := req.Params.(ranking.UploadCompetitionScoreParam)
	p.PID = req.PID
	return nil, s.Ranking.UploadCompetitionScore(ctx, p)
}

func (s *Services) handleGetCompetitionInfo(ctx context.Context, req Request) (interface{}, error) {
	p := req.Params.(ranking.GetCompetitionInfoParam)
	return s.Ranking.GetCompetitionInfo(ctx, p)
}

func (s *Services) handleGetObjectInfos(ctx context.Context, req Request) (interface{}, error) {
	p := req.Params.(GetObjectInfosParams)
	return s.Datastore.GetObjectInfos(ctx, req.PID, p.PersistenceIDs, p.ObjectIDs)
}

// UpdateSimpleSearchObjectParams is MethodUpdateSimpleSearchObject's request
type UpdateSimpleSearchObjectParams struct {
	TournamentID uint32
	Patch        *models.Tournament
}

// GetObjectInfosParams is MethodGetObjectInfos's request
type GetObjectInfosParams struct {
	PersistenceIDs []uint32
	ObjectIDs      []uint32
}
