package chathub

import "github.com/githubzohaib/Forest-MGT/internal/models"

// Connection is one live transport session belonging to a user. A user may
// hold any number of simultaneous connections (tabs, devices). It abstracts
// the underlying transport so the registry and router can treat WebSocket
// connections and test fakes uniformly.
type Connection interface {
	// ID returns the unique identifier of this connection.
	ID() string
	// UserID returns the identity of the user who owns the connection.
	UserID() string

	// Send returns the channel the router pushes stored messages into.
	// It is a send-only channel drained by the connection's write loop.
	Send() chan<- models.Message

	// Run starts the connection's read and write loops.
	Run()
	// Close shuts the connection down. Safe to call more than once.
	Close()
}
