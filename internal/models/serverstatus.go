// internal/models/serverstatus.go

package models

import "time"

// ServerStatus is the singleton maintenance/whitelist document. NumClients
// is a persisted artefact (written by the periodic task and zeroed at
// shutdown) and must never be read as a live metric; live counts come from
// the connection registry.
type ServerStatus struct {
	IsOnline                  bool      `bson:"is_online" json:"is_online"`
	IsMaintenance             bool      `bson:"is_maintenance" json:"is_maintenance"`
	IsWhitelist               bool      `bson:"is_whitelist" json:"is_whitelist"`
	StartMaintenanceTime      time.Time `bson:"start_maintenance_time" json:"start_maintenance_time"`
	EndMaintenanceTime        time.Time `bson:"end_maintenance_time" json:"end_maintenance_time"`
	Whitelist                 []uint32  `bson:"whitelist" json:"whitelist"`
	ShouldSwitchToMaintenance bool      `bson:"should_switch_to_maintenance" json:"should_switch_to_maintenance"`
	NumClients                int       `bson:"num_clients" json:"num_clients"`
}

// IsWhitelisted reports whether pid may authenticate while whitelisting is on
func (s *ServerStatus) IsWhitelisted(pid uint32) bool {
	for _, p := range s.Whitelist {
		if p == pid {
			return true
		}
	}
	return false
}
