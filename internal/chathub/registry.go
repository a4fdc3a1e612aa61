package chathub

import (
	"log"
	"sync"

	"github.com/samber/lo"
)

// Registry tracks which live connections belong to which user. It is pure
// in-memory, process-local state guarded by a single RWMutex; connection
// churn is low enough that a coarse lock is fine. The lock is never held
// across a push: readers take snapshots and send after releasing.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]map[string]Connection // userID -> connID -> conn
}

func NewRegistry() *Registry {
	return &Registry{
		conns: make(map[string]map[string]Connection),
	}
}

// Register adds a connection under its owner's set.
func (r *Registry) Register(conn Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()

	userID := conn.UserID()
	if r.conns[userID] == nil {
		r.conns[userID] = make(map[string]Connection)
	}
	r.conns[userID][conn.ID()] = conn
	log.Printf("Registered connection %s for user %s", conn.ID(), userID)
}

// Unregister removes a connection. Removing an absent or never-registered
// connection is a no-op: duplicate disconnect signals are expected and must
// not fail.
func (r *Registry) Unregister(conn Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()

	userID := conn.UserID()
	set := r.conns[userID]
	if set == nil {
		return
	}
	if _, ok := set[conn.ID()]; !ok {
		return
	}
	delete(set, conn.ID())
	if len(set) == 0 {
		delete(r.conns, userID)
	}
	log.Printf("Unregistered connection %s for user %s", conn.ID(), userID)
}

// ConnectionsFor returns a snapshot of the user's live connections,
// possibly empty. Callers iterate and push without any registry lock held.
func (r *Registry) ConnectionsFor(userID string) []Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := r.conns[userID]
	if len(set) == 0 {
		return nil
	}
	return lo.Values(set)
}

// OnlineUsers returns the IDs of every user with at least one live
// connection. Used to scope broadcast fan-out.
func (r *Registry) OnlineUsers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return lo.Keys(r.conns)
}

// ConnectionCount returns the total number of live connections.
func (r *Registry) ConnectionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, set := range r.conns {
		n += len(set)
	}
	return n
}
