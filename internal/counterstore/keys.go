package counterstore

import "strconv"

// Key builders for the hot tournament aggregates named in the data model.
// tid/season are formatted without padding; team is 0 or 1.

func ParticipationTotal(tid uint32) string {
	return "tournaments:participation:" + u(tid) + "_total"
}

func ParticipationSeasonTotal(tid, season uint32) string {
	return "tournaments:participation:" + u(tid) + "_" + u(season) + "_total"
}

func ParticipationTeam(tid uint32, team int) string {
	return "tournaments:participation:" + u(tid) + "_team" + strconv.Itoa(team)
}

func ParticipationSeasonTeam(tid, season uint32, team int) string {
	return "tournaments:participation:" + u(tid) + "_" + u(season) + "_team" + strconv.Itoa(team)
}

func ScoreTeam(tid uint32, team int) string {
	return "tournaments:scores:" + u(tid) + "_team" + strconv.Itoa(team)
}

func ScoreSeasonTeam(tid, season uint32, team int) string {
	return "tournaments:scores:" + u(tid) + "_" + u(season) + "_team" + strconv.Itoa(team)
}

func u(v uint32) string { return strconv.FormatUint(uint64(v), 10) }
