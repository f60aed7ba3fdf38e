// internal/models/datastore.go

package models

import (
	"strconv"
	"time"
)

// DataStoreObject is a datastore metadata record; the blob itself lives in
// the external object store, addressed by a derived key that is never
// persisted here
type DataStoreObject struct {
	DataID            uint32    `bson:"_id" json:"data_id"`
	OwnerPID          uint32    `bson:"owner_pid" json:"owner_pid"`
	Name              string    `bson:"name" json:"name"`
	Permission        uint32    `bson:"permission" json:"permission"`
	DeletePermission  uint32    `bson:"delete_permission" json:"delete_permission"`
	Period            uint32    `bson:"period" json:"period"`
	MetaBinary        []byte    `bson:"meta_binary" json:"meta_binary"`
	Tags              []string  `bson:"tags" json:"tags"`
	UpdatePassword    string    `bson:"update_password" json:"update_password"`
	ReferredCount     uint32    `bson:"referred_count" json:"referred_count"`
	DataType          uint32    `bson:"data_type" json:"data_type"`
	Status            uint32    `bson:"status" json:"status"`
	CreatedAt         time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time `bson:"updated_at" json:"updated_at"`
}

// BelowPersistenceThreshold is the cutoff between the "ghosts" and "mktv"
// blob key namespaces
const BelowPersistenceThreshold = 1024

// BlobKey derives the object-store key for a datastore object. persistenceID
// below BelowPersistenceThreshold addresses a per-pid ghost replay;
// otherwise the key is keyed by the durable object id.
func BlobKey(persistenceID uint32, pid uint32, objectID uint32) string {
	if persistenceID < BelowPersistenceThreshold {
		return pidGhostKey(pid, persistenceID)
	}
	return mktvKey(objectID)
}

func pidGhostKey(pid uint32, persistenceID uint32) string {
	return "ghosts/" + strconv.FormatUint(uint64(pid), 10) + "/" + strconv.FormatUint(uint64(persistenceID), 10) + ".bin"
}

func mktvKey(objectID uint32) string {
	return "mktv/" + strconv.FormatUint(uint64(objectID), 10) + ".bin"
}
