// internal/metadata/chunked.go
// Parses and emits the chunked binary tournament metadata blob.
//
// Wire layout, big-endian:
//
//	u16 magic = 0x5A5A
//	repeat: u8 chunk_id
//	        if chunk_id == 0xFF: end
//	        if chunk_id > maxChunkID: InvalidArgument
//	        u16 size; bytes[size] payload

package metadata

import (
	"bytes"
	"encoding/binary"
	"io"

	"trackday-server/internal/core"
	"trackday-server/internal/models"
)

const (
	magic         uint16 = 0x5A5A
	terminatorID  uint8  = 0xFF
	maxChunkID    uint8  = 12

	chunkRevision    uint8 = 0
	chunkVersion     uint8 = 1
	chunkName        uint8 = 2
	chunkIconType    uint8 = 3
	chunkDescription uint8 = 4
	chunkRepeatType  uint8 = 5
	chunkGamesetNum  uint8 = 6
	chunkRedTeam     uint8 = 7
	chunkBlueTeam    uint8 = 8
	chunkBattleTime  uint8 = 9
	chunkUpdateDate  uint8 = 11
)

// Chunk is one raw (id, payload) pair read off the wire, preserved for
// round-trip tests independent of the typed decode below.
type Chunk struct {
	ID      uint8
	Payload []byte
}

// ParseChunks reads the framing and returns the raw chunk list, later
// duplicate ids winning per the wire contract.
func ParseChunks(data []byte) ([]Chunk, error) {
	r := bytes.NewReader(data)

	var gotMagic uint16
	if err := binary.Read(r, binary.BigEndian, &gotMagic); err != nil {
		return nil, core.Wrap(core.KindInvalidArgument, "metadata too short for magic", err)
	}
	if gotMagic != magic {
		return nil, core.New(core.KindInvalidArgument, "bad metadata magic")
	}

	byIdx := map[uint8]int{}
	var chunks []Chunk

	for {
		id, err := r.ReadByte()
		if err != nil {
			return nil, core.Wrap(core.KindInvalidArgument, "truncated chunk id", err)
		}
		if id == terminatorID {
			break
		}
		if id > maxChunkID {
			return nil, core.New(core.KindInvalidArgument, "chunk id exceeds maximum")
		}

		var size uint16
		if err := binary.Read(r, binary.BigEndian, &size); err != nil {
			return nil, core.Wrap(core.KindInvalidArgument, "truncated chunk size", err)
		}

		payload := make([]byte, size)
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, core.Wrap(core.KindInvalidArgument, "truncated chunk payload", err)
		}

		if idx, ok := byIdx[id]; ok {
			chunks[idx] = Chunk{ID: id, Payload: payload}
		} else {
			byIdx[id] = len(chunks)
			chunks = append(chunks, Chunk{ID: id, Payload: payload})
		}
	}

	return chunks, nil
}

// EmitChunks re-serializes a chunk list into the wire framing, used by tests
// to confirm the parser round-trips and by the tournament engine's Update
// path if it ever needs to re-encode a subset.
func EmitChunks(chunks []Chunk) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, magic)
	for _, c := range chunks {
		buf.WriteByte(c.ID)
		binary.Write(&buf, binary.BigEndian, uint16(len(c.Payload)))
		buf.Write(c.Payload)
	}
	buf.WriteByte(terminatorID)
	return buf.Bytes()
}

// Decode parses the blob and decodes it into the typed structure used by
// the tournament engine
func Decode(data []byte) (models.TournamentMetadata, error) {
	chunks, err := ParseChunks(data)
	if err != nil {
		return models.TournamentMetadata{}, err
	}

	var md models.TournamentMetadata
	for _, c := range chunks {
		switch c.ID {
		case chunkRevision:
			if len(c.Payload) >= 1 {
				md.Revision = c.Payload[0]
			}
		case chunkVersion:
			md.Version = decodeU32(c.Payload)
		case chunkName:
			md.Name = decodeUTF16BE(c.Payload)
		case chunkIconType:
			if len(c.Payload) >= 1 {
				md.IconType = c.Payload[0]
			}
		case chunkDescription:
			md.Description = c.Payload
		case chunkRepeatType:
			md.RepeatType = decodeU32(c.Payload)
		case chunkGamesetNum:
			md.GamesetNum = decodeU32(c.Payload)
		case chunkRedTeam:
			md.RedTeam = c.Payload
		case chunkBlueTeam:
			md.BlueTeam = c.Payload
		case chunkBattleTime:
			md.BattleTime = decodeU32(c.Payload)
		case chunkUpdateDate:
			md.UpdateDate = decodeU32(c.Payload)
		}
	}
	return md, nil
}

func decodeU32(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

// decodeUTF16BE decodes a big-endian UTF-16 byte string and strips the
// trailing null the wire format always carries.
func decodeUTF16BE(b []byte) string {
	if len(b) < 2 {
		return ""
	}
	n := len(b) / 2
	units := make([]uint16, n)
	for i := 0; i < n; i++ {
		units[i] = binary.BigEndian.Uint16(b[i*2 : i*2+2])
	}
	if n > 0 && units[n-1] == 0 {
		units = units[:n-1]
	}
	return utf16ToString(units)
}
