// internal/registry/registry.go
// Authoritative map of connected principals to session handles. At most one
// handle per pid; a second attach for the same pid evicts and disconnects
// the prior handle, mirroring the evict-on-reattach rule a websocket hub
// applies per user id.

package registry

import (
	"log"
	"sync"
)

// Handle is whatever the transport hands the registry for a connected
// principal: something that can be told to disconnect.
type Handle interface {
	Disconnect() error
}

// Registry is the connection registry (C4). All mutation is serialised
// under one mutex; it is never held across transport I/O.
type Registry struct {
	mu      sync.Mutex
	clients map[uint32]Handle
	logger  *log.Logger
}

// New creates an empty registry
func New(logger *log.Logger) *Registry {
	return &Registry{
		clients: make(map[uint32]Handle),
		logger:  logger,
	}
}

// Attach registers handle as pid's current session, evicting and
// disconnecting any prior handle for the same pid. Disconnect of the prior
// handle happens after the lock is released.
func (r *Registry) Attach(pid uint32, handle Handle) {
	r.mu.Lock()
	prior, existed := r.clients[pid]
	r.clients[pid] = handle
	r.mu.Unlock()

	if existed {
		if err := prior.Disconnect(); err != nil {
			r.logger.Printf("registry: error evicting prior handle for pid %d: %v", pid, err)
		}
	}
}

// Detach removes pid's handle if present. A double-detach is a no-op.
func (r *Registry) Detach(pid uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, pid)
}

// Kick disconnects pid's handle if connected, reporting whether it was.
// Disconnect is best-effort: the handle is removed from the registry even
// if the transport reports an error closing it.
func (r *Registry) Kick(pid uint32) bool {
	r.mu.Lock()
	handle, ok := r.clients[pid]
	if ok {
		delete(r.clients, pid)
	}
	r.mu.Unlock()

	if !ok {
		return false
	}
	if err := handle.Disconnect(); err != nil {
		r.logger.Printf("registry: error disconnecting pid %d: %v", pid, err)
	}
	return true
}

// KickAll disconnects every connected client and returns the count kicked.
// The pid list is copied under the lock; disconnects happen without it held.
func (r *Registry) KickAll() int {
	r.mu.Lock()
	handles := make(map[uint32]Handle, len(r.clients))
	for pid, h := range r.clients {
		handles[pid] = h
	}
	r.clients = make(map[uint32]Handle)
	r.mu.Unlock()

	for pid, handle := range handles {
		if err := handle.Disconnect(); err != nil {
			r.logger.Printf("registry: error disconnecting pid %d during kick-all: %v", pid, err)
		}
	}
	return len(handles)
}

// IsConnected reports whether pid currently has a handle
func (r *Registry) IsConnected(pid uint32) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.clients[pid]
	return ok
}

// SnapshotPIDs returns every currently connected pid
func (r *Registry) SnapshotPIDs() []uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]uint32, 0, len(r.clients))
	for pid := range r.clients {
		out = append(out, pid)
	}
	return out
}

// Count returns the number of connected clients
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}
