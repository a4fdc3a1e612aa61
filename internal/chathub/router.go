package chathub

import (
	"log"

	"github.com/githubzohaib/Forest-MGT/internal/models"
)

// Router resolves the recipient set for one stored message and pushes it to
// every live connection in that set. Push is fire-and-forget per
// connection: the durable store is the source of truth, and a client that
// misses a push recovers it through history replay on reconnect.
type Router struct {
	Registry *Registry

	// Echo controls whether the sender's own connections receive private
	// messages back, letting the UI reconcile optimistic sends. Broadcast
	// senders always receive their echo by being part of the online set.
	Echo bool

	// Bridge, when non-nil, republishes every delivered message so other
	// nodes can push it to their own connections.
	Bridge *Bridge
}

func NewRouter(registry *Registry, echo bool) *Router {
	return &Router{Registry: registry, Echo: echo}
}

// Deliver pushes a stored message to its recipients on this node and hands
// it to the bridge. Called synchronously after append, so each user's
// connections see messages in append order.
func (rt *Router) Deliver(msg models.Message) {
	rt.deliverLocal(msg)

	if rt.Bridge != nil {
		if err := rt.Bridge.Publish(msg); err != nil {
			log.Printf("ERROR: Failed to publish message %d to bridge: %v", msg.ID, err)
		}
	}
}

func (rt *Router) deliverLocal(msg models.Message) {
	for _, userID := range rt.recipients(msg) {
		for _, conn := range rt.Registry.ConnectionsFor(userID) {
			select {
			case conn.Send() <- msg:
			default:
				// A dead or saturated connection must not stall delivery
				// to the rest; the client catches up via history replay.
				log.Printf("Dropping push of message %d to connection %s (user %s)",
					msg.ID, conn.ID(), conn.UserID())
			}
		}
	}
}

func (rt *Router) recipients(msg models.Message) []string {
	if msg.IsBroadcast {
		return rt.Registry.OnlineUsers()
	}
	if rt.Echo && msg.FromUserID != msg.ToUserID {
		return []string{msg.ToUserID, msg.FromUserID}
	}
	return []string{msg.ToUserID}
}
