// internal/models/ranking.go

package models

import "time"

// TournamentScore is keyed by (tournament_id, season_id, pid)
type TournamentScore struct {
	TournamentID uint32    `bson:"tournament_id" json:"tournament_id"`
	SeasonID     uint32    `bson:"season_id" json:"season_id"`
	PID          uint32    `bson:"pid" json:"pid"`
	Score        int64     `bson:"score" json:"score"`
	TeamID       int32     `bson:"team_id" json:"team_id"`
	TeamScore    int64     `bson:"team_score" json:"team_score"`
	Metadata     []byte    `bson:"metadata" json:"metadata"`
	LastUpdate   time.Time `bson:"last_update" json:"last_update"`
}

// MaxCompetitionMetadataSize bounds UploadCompetitionScore's metadata field
const MaxCompetitionMetadataSize = 256

// RankingScore is a per-category leaderboard row keyed by (category, pid)
type RankingScore struct {
	Category   uint32    `bson:"category" json:"category"`
	PID        uint32    `bson:"pid" json:"pid"`
	Score      int64     `bson:"score" json:"score"`
	Groups     []uint8   `bson:"groups" json:"groups"`
	Param      uint64    `bson:"param" json:"param"`
	LastUpdate time.Time `bson:"last_update" json:"last_update"`
}

// TeamScores is the 4-tuple returned alongside competition rankings for team
// tournaments: [team0_score, team1_score, team0_participants, team1_participants]
type TeamScores struct {
	Team0Score        int64
	Team1Score        int64
	Team0Participants int64
	Team1Participants int64
}

// RankedEntry is one row of a materialised competition ranking
type RankedEntry struct {
	Rank int
	PID  uint32
	Score int64
}

// SeasonRanking groups the ranked entries and team totals for one season
type SeasonRanking struct {
	SeasonID    uint32
	Entries     []RankedEntry
	TeamScores  *TeamScores // nil unless the tournament is a team tournament
}
