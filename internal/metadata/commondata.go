// internal/metadata/commondata.go
// Decodes the fixed-width 212-byte common-data blob uploaded alongside
// ranking scores.
//
// Layout, big-endian:
//
//	0x00..0x0C : three u32 (reserved)
//	0x0C..0x14 : vr_rate f32, br_rate f32
//	0x14..0x74 : 96-byte account-related data, opaque (kept raw, not parsed)
//	0x74..0x84 : u8 u8 _pad[2] u32 u32 u32
//	0x84..0xC3 : 63-byte open-flag bitfield (LSB-first within each byte)
//	0xC3..0xD4 : trailer

package metadata

import (
	"encoding/binary"
	"math"

	"trackday-server/internal/core"
	"trackday-server/internal/models"
)

const (
	offVRRate    = 0x0C
	offBRRate    = 0x10
	offBitfield  = 0x84
	bitfieldSize = 0xC3 - 0x84
)

// unlockByteOffset is the bit-field byte at which each vector begins,
// relative to offBitfield
var unlockByteOffset = struct {
	gp, engine, driver, body, tire, wing, stamp, dlc int
}{
	gp: 0, engine: 4, driver: 5, body: 13, tire: 21, wing: 29, stamp: 45, dlc: 61,
}

// DecodeCommonData validates the blob size and decodes rates + unlock bits
func DecodeCommonData(pid uint32, raw []byte) (models.CommonData, error) {
	if len(raw) != models.CommonDataBlobSize {
		return models.CommonData{}, core.ErrInvalidDataSize
	}

	cd := models.CommonData{PID: pid, Raw: append([]byte(nil), raw...)}
	cd.VRRate = math.Float32frombits(binary.BigEndian.Uint32(raw[offVRRate : offVRRate+4]))
	cd.BRRate = math.Float32frombits(binary.BigEndian.Uint32(raw[offBRRate : offBRRate+4]))

	// The account-related span (0x14..0x74) is carried in cd.Raw but never
	// parsed here; the client never populates it with anything this server
	// is the source of truth for, and mii_name comes from the account-link
	// collaborator, not this blob.

	bitfield := raw[offBitfield : offBitfield+bitfieldSize]

	decodeBits(bitfield, unlockByteOffset.gp, cd.GPUnlocks[:])
	decodeBits(bitfield, unlockByteOffset.engine, cd.EngineUnlocks[:])
	decodeBits(bitfield, unlockByteOffset.driver, cd.DriverUnlocks[:])
	decodeBits(bitfield, unlockByteOffset.body, cd.BodyUnlocks[:])
	decodeBits(bitfield, unlockByteOffset.tire, cd.TireUnlocks[:])
	decodeBits(bitfield, unlockByteOffset.wing, cd.WingUnlocks[:])
	decodeBits(bitfield, unlockByteOffset.stamp, cd.StampUnlocks[:])
	decodeBits(bitfield, unlockByteOffset.dlc, cd.DLCUnlocks[:])

	return cd, nil
}

// decodeBits fills out with one bit per entry, LSB-first within each byte,
// starting at byteOffset within bitfield
func decodeBits(bitfield []byte, byteOffset int, out []uint8) {
	for i := range out {
		bitIndex := byteOffset*8 + i
		byteIdx := bitIndex / 8
		bit := bitIndex % 8
		if byteIdx >= len(bitfield) {
			out[i] = 0
			continue
		}
		if bitfield[byteIdx]&(1<<uint(bit)) != 0 {
			out[i] = 1
		} else {
			out[i] = 0
		}
	}
}
