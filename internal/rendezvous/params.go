// internal/rendezvous/params.go
// Decodes a call envelope's raw JSON params into the concrete type each
// protocol+method expects, so Dispatch never has to know about JSON.

package rendezvous

import (
	"encoding/json"
	"fmt"

	"trackday-server/internal/matchmaking"
	"trackday-server/internal/models"
	"trackday-server/internal/ranking"
	"trackday-server/internal/tournament"
)

func decodeParams(protocol, method int, raw json.RawMessage) (interface{}, error) {
	switch {
	case protocol == ProtocolMatchmakeExtension && method == MethodCreateSimpleSearchObject:
		var p models.Tournament
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		return &p, nil

	case protocol == ProtocolMatchmakeExtension && method == MethodUpdateSimpleSearchObject:
		var p UpdateSimpleSearchObjectParams
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		return p, nil

	case protocol == ProtocolMatchmakeExtension && method == MethodDeleteSimpleSearchObject:
		var id uint32
		if err := json.Unmarshal(raw, &id); err != nil {
			return nil, err
		}
		return id, nil

	case protocol == ProtocolMatchmakeExtension && method == MethodSearchSimpleSearchObject:
		var p tournament.SearchParam
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		return p, nil

	case protocol == ProtocolMatchmakeExtension && method == MethodJoinMatchmakeSessionWithExtraParticipants:
		var p matchmaking.JoinParams
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		return p, nil

	case protocol == ProtocolMatchmakeExtension && method == MethodSearchSimpleSearchObjectByObjectIDs:
		var ids []uint32
		if err := json.Unmarshal(raw, &ids); err != nil {
			return nil, err
		}
		return ids, nil

	case protocol == ProtocolRanking && method == MethodGetCompetitionRankingScore:
		var p ranking.GetCompetitionRankingScoreParam
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		return p, nil

	case protocol == ProtocolRanking && method == MethodUploadCompetitionRankingScore:
		var p ranking.UploadCompetitionScoreParam
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		return p, nil

	case protocol == ProtocolRanking && method == MethodGetCompetitionInfo:
		var p ranking.GetCompetitionInfoParam
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		return p, nil

	case protocol == ProtocolDatastore && method == MethodGetObjectInfos:
		var p GetObjectInfosParams
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		return p, nil
	}

	return nil, fmt.Errorf("no param decoder registered for protocol %d method %d", protocol, method)
}
