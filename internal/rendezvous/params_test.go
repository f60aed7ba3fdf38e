package rendezvous

import (
	"encoding/json"
	"testing"
)

func TestDecodeParamsDeleteSimpleSearchObject(t *testing.T) {
	got, err := decodeParams(ProtocolMatchmakeExtension, MethodDeleteSimpleSearchObject, json.RawMessage(`42`))
	if err != nil {
		t.Fatalf("decodeParams: %v", err)
	}
	id, ok := got.(uint32)
	if !ok || id != 42 {
		t.Fatalf("decodeParams() = %#v, want uint32(42)", got)
	}
}

func TestDecodeParamsSearchByObjectIDs(t *testing.T) {
	got, err := decodeParams(ProtocolMatchmakeExtension, MethodSearchSimpleSearchObjectByObjectIDs, json.RawMessage(`[1,2,3]`))
	if err != nil {
		t.Fatalf("decodeParams: %v", err)
	}
	ids, ok := got.([]uint32)
	if !ok || len(ids) != 3 {
		t.Fatalf("decodeParams() = %#v, want []uint32 of length 3", got)
	}
}

func TestDecodeParamsRejectsUnknownPair(t *testing.T) {
	_, err := decodeParams(ProtocolDatastore, 999, json.RawMessage(`{}`))
	if err == nil {
		t.Fatalf("expected an error for an unregistered protocol+method pair")
	}
}

func TestDecodeParamsRejectsMalformedJSON(t *testing.T) {
	_, err := decodeParams(ProtocolMatchmakeExtension, MethodDeleteSimpleSearchObject, json.RawMessage(`not-json`))
	if err == nil {
		t.Fatalf("expected an error for malformed JSON")
	}
}
