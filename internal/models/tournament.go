// internal/models/tournament.go

package models

import "time"

// Tournament is a "simple search object" record
type Tournament struct {
	ID              uint32                 `bson:"_id" json:"id"`
	OwnerPID        uint32                 `bson:"owner_pid" json:"owner_pid"`
	CommunityID     uint32                 `bson:"community_id" json:"community_id"`
	CommunityCode   string                 `bson:"community_code" json:"community_code"`
	Attributes      [AttributeCount]uint32 `bson:"attributes" json:"attributes"`
	Metadata        []byte                 `bson:"metadata" json:"metadata"`
	ParsedMetadata  TournamentMetadata     `bson:"parsed_metadata" json:"parsed_metadata"`
	DateTime        TournamentDateTime     `bson:"datetime" json:"datetime"`
	SeasonID        uint32                 `bson:"season_id" json:"season_id"`
	TotalParticipants uint32               `bson:"total_participants" json:"total_participants"`
	CreatedAt       time.Time              `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time              `bson:"updated_at" json:"updated_at"`
}

// TournamentDateTime groups the day/hour/absolute-timestamp fields named in
// the data model
type TournamentDateTime struct {
	StartDay  uint32 `bson:"start_day" json:"start_day"`
	EndDay    uint32 `bson:"end_day" json:"end_day"`
	StartHour uint32 `bson:"start_hour" json:"start_hour"`
	EndHour   uint32 `bson:"end_hour" json:"end_hour"`
	StartTime int64  `bson:"start_time" json:"start_time"`
	EndTime   int64  `bson:"end_time" json:"end_time"`
}

// TournamentMetadata is the structured decode of the chunked binary blob
type TournamentMetadata struct {
	Revision    uint8  `bson:"revision" json:"revision"`
	Version     uint32 `bson:"version" json:"version"`
	Name        string `bson:"name" json:"name"`
	IconType    uint8  `bson:"icon_type" json:"icon_type"`
	Description []byte `bson:"description" json:"description"`
	RepeatType  uint32 `bson:"repeat_type" json:"repeat_type"`
	GamesetNum  uint32 `bson:"gameset_num" json:"gameset_num"`
	RedTeam     []byte `bson:"red_team" json:"red_team"`
	BlueTeam    []byte `bson:"blue_team" json:"blue_team"`
	BattleTime  uint32 `bson:"battle_time" json:"battle_time"`
	UpdateDate  uint32 `bson:"update_date" json:"update_date"`
}

// IsTeamTournament reports whether attribute slot 4 marks a team tournament
func (t *Tournament) IsTeamTournament() bool {
	return t.Attributes[4] == 2
}

// IsPublic reports whether attribute slot 0 marks the tournament public
func (t *Tournament) IsPublic() bool {
	return t.Attributes[0] == 1
}
