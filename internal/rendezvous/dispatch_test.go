package rendezvous

import (
	"context"
	"errors"
	"testing"
)

func TestDispatchInvokesRegisteredHandler(t *testing.T) {
	d := NewDispatcher()
	called := false
	d.Register(ProtocolRanking, MethodGetCompetitionInfo, func(ctx context.Context, req Request) (interface{}, error) {
		called = true
		return "ok", nil
	})

	resp, handled, err := d.Dispatch(context.Background(), Request{Protocol: ProtocolRanking, Method: MethodGetCompetitionInfo})
	if !handled {
		t.Fatalf("expected handled = true")
	}
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if !called {
		t.Fatalf("expected the registered handler to be invoked")
	}
	if resp != "ok" {
		t.Fatalf("resp = %v, want ok", resp)
	}
}

func TestDispatchReportsUnregisteredPair(t *testing.T) {
	d := NewDispatcher()
	_, handled, err := d.Dispatch(context.Background(), Request{Protocol: ProtocolDatastore, Method: 999})
	if handled {
		t.Fatalf("expected handled = false for an unregistered pair")
	}
	if err != nil {
		t.Fatalf("expected no error for an unregistered pair, got %v", err)
	}
}

func TestDispatchPropagatesHandlerError(t *testing.T) {
	d := NewDispatcher()
	want := errors.New("boom")
	d.Register(ProtocolMatchmakeExtension, MethodCreateSimpleSearchObject, func(ctx context.Context, req Request) (interface{}, error) {
		return nil, want
	})

	_, handled, err := d.Dispatch(context.Background(), Request{Protocol: ProtocolMatchmakeExtension, Method: MethodCreateSimpleSearchObject})
	if !handled {
		t.Fatalf("expected handled = true")
	}
	if !errors.Is(err, want) {
		t.Fatalf("Dispatch error = %v, want %v", err, want)
	}
}

func TestDispatchDistinguishesByProtocolNotJustMethod(t *testing.T) {
	d := NewDispatcher()
	d.Register(ProtocolRanking, MethodGetCompetitionInfo, func(ctx context.Context, req Request) (interface{}, error) {
		return "ranking", nil
	})

	_, handled, _ := d.Dispatch(context.Background(), Request{Protocol: ProtocolDatastore, Method: MethodGetCompetitionInfo})
	if handled {
		t.Fatalf("expected the same method number under a different protocol to be unregistered")
	}
}
