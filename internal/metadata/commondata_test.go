package metadata

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"trackday-server/internal/core"
	"trackday-server/internal/models"
)

const (
	testOffAccountData  = 0x14
	testAccountDataSize = 0x74 - 0x14
)

func buildCommonDataBlob(t *testing.T, vr, br float32, accountData []byte, gpUnlock0 bool) []byte {
	t.Helper()
	raw := make([]byte, models.CommonDataBlobSize)

	binary.BigEndian.PutUint32(raw[offVRRate:offVRRate+4], math.Float32bits(vr))
	binary.BigEndian.PutUint32(raw[offBRRate:offBRRate+4], math.Float32bits(br))
	copy(raw[testOffAccountData:testOffAccountData+testAccountDataSize], accountData)

	if gpUnlock0 {
		raw[offBitfield] |= 1
	}

	return raw
}

func TestDecodeCommonDataFields(t *testing.T) {
	raw := buildCommonDataBlob(t, 1500.5, -32.25, []byte("opaque-client-bytes"), true)

	cd, err := DecodeCommonData(12345, raw)
	if err != nil {
		t.Fatalf("DecodeCommonData: %v", err)
	}
	if cd.PID != 12345 {
		t.Fatalf("PID = %d, want 12345", cd.PID)
	}
	if cd.VRRate != 1500.5 {
		t.Fatalf("VRRate = %v, want 1500.5", cd.VRRate)
	}
	if cd.BRRate != -32.25 {
		t.Fatalf("BRRate = %v, want -32.25", cd.BRRate)
	}
	if cd.GPUnlocks[0] != 1 {
		t.Fatalf("GPUnlocks[0] = %d, want 1", cd.GPUnlocks[0])
	}
	if cd.GPUnlocks[1] != 0 {
		t.Fatalf("GPUnlocks[1] = %d, want 0", cd.GPUnlocks[1])
	}
}

func TestDecodeCommonDataRejectsWrongSize(t *testing.T) {
	_, err := DecodeCommonData(1, make([]byte, 10))
	if !core.Is(err, core.KindInvalidDataSize) {
		t.Fatalf("expected KindInvalidDataSize, got %v", err)
	}
}

func TestDecodeCommonDataLeavesAccountSpanOpaqueButPreservedInRaw(t *testing.T) {
	accountData := []byte("whatever-the-client-sent-here")
	raw := buildCommonDataBlob(t, 0, 0, accountData, false)

	cd, err := DecodeCommonData(1, raw)
	if err != nil {
		t.Fatalf("DecodeCommonData: %v", err)
	}
	got := cd.Raw[testOffAccountData : testOffAccountData+len(accountData)]
	if !bytes.Equal(got, accountData) {
		t.Fatalf("Raw account span = %q, want %q", got, accountData)
	}
	if cd.MiiName != "" {
		t.Fatalf("MiiName = %q, want empty: this server never derives it from the client blob", cd.MiiName)
	}
}
