// internal/rendezvous/dispatch.go
// The method-number to operation binding is part of wire compatibility;
// framing, fragmentation and reliability of the transport carrying these
// calls are out of scope here (an external collaborator), but the mapping
// from protocol+method number to a handler is this package's job.

package rendezvous

import "context"

// Protocol numbers. The rendezvous platform partitions method numbers per
// protocol; only the numbers this server implements are enumerated.
const (
	ProtocolMatchmakeExtension = 1
	ProtocolRanking            = 2
	ProtocolDatastore          = 3
)

// Method numbers within each protocol
const (
	MethodCreateSimpleSearchObject                   = 36
	MethodUpdateSimpleSearchObject                   = 37
	MethodDeleteSimpleSearchObject                   = 38
	MethodSearchSimpleSearchObject                   = 39
	MethodJoinMatchmakeSessionWithExtraParticipants  = 40
	MethodSearchSimpleSearchObjectByObjectIDs        = 41

	MethodGetCompetitionRankingScore    = 14
	MethodUploadCompetitionRankingScore = 15
	MethodGetCompetitionInfo            = 16

	MethodGetObjectInfos = 43
)

// Request is one inbound rendezvous call, already authenticated, admitted
// and decoded by the transport; PID is the caller's principal, Params the
// already-decoded protocol-specific argument (one of the engines' *Param
// struct types). Framing and decoding off the wire are the transport's job,
// not this package's.
type Request struct {
	PID      uint32
	Protocol int
	Method   int
	Params   interface{}
}

// Handler processes a Request and returns a result value or an error
type Handler func(ctx context.Context, req Request) (interface{}, error)

// Dispatcher is a static {protocol, method} -> handler table, registered at
// construction rather than resolved by dynamic lookup
type Dispatcher struct {
	handlers map[key]Handler
}

type key struct {
	protocol int
	method   int
}

// NewDispatcher builds an empty dispatch table
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[key]Handler)}
}

// Register binds a handler to a protocol+method pair
func (d *Dispatcher) Register(protocol, method int, handler Handler) {
	d.handlers[key{protocol, method}] = handler
}

// Dispatch looks up and invokes the handler for req's protocol+method, or
// reports that none is registered
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (interface{}, bool, error) {
	handler, ok := d.handlers[key{req.Protocol, req.Method}]
	if !ok {
		return nil, false, nil
	}
	resp, err := handler(ctx, req)
	return resp, true, err
}
