package chathub

import (
	"encoding/json"
	"log"

	"github.com/githubzohaib/Forest-MGT/internal/models"
	"github.com/githubzohaib/Forest-MGT/internal/storage"
)

// Bridge relays delivered messages between nodes over Redis Pub/Sub.
// Each event carries the origin node ID; a node skips its own events since
// the router already pushed them locally.
type Bridge struct {
	Storage storage.Storage
	NodeID  string
}

func NewBridge(s storage.Storage, nodeID string) *Bridge {
	return &Bridge{Storage: s, NodeID: nodeID}
}

// Publish sends a delivered message to the other nodes.
func (b *Bridge) Publish(msg models.Message) error {
	return b.Storage.PublishMessage(models.PushEvent{
		Origin:  b.NodeID,
		Message: msg,
	})
}

// Listen starts a goroutine consuming the bridge channel and delivering
// foreign messages to this node's connections. Does nothing when Redis is
// not configured.
func (b *Bridge) Listen(rt *Router) {
	pubsub := b.Storage.SubscribeMessages()
	if pubsub == nil {
		log.Println("Redis bridge disabled, running single-node delivery only")
		return
	}

	go func() {
		defer pubsub.Close()

		for m := range pubsub.Channel() {
			var ev models.PushEvent
			if err := json.Unmarshal([]byte(m.Payload), &ev); err != nil {
				log.Printf("Error unmarshalling bridge event: %v", err)
				continue
			}
			if ev.Origin == b.NodeID {
				continue
			}
			rt.deliverLocal(ev.Message)
		}
	}()
}
