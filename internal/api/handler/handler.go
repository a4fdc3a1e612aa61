package handler

import (
	"github.com/githubzohaib/Forest-MGT/internal/chathub"
	"github.com/githubzohaib/Forest-MGT/internal/gateway"
	"github.com/githubzohaib/Forest-MGT/internal/models"
	"github.com/githubzohaib/Forest-MGT/internal/storage"
)

// Gateway is the slice of the messaging core the HTTP/WS layer talks to.
type Gateway interface {
	Submit(senderID, senderRole string, in models.SubmitRequest) (*models.Message, error)
	History(requesterID, requesterRole string, f gateway.HistoryFilter) ([]models.Message, error)
	MarkRead(requesterID string, messageID uint) error
	HandleInbound(senderID, senderRole string) func(models.SubmitRequest) error
}

// Handler wires the messaging core to Gin routes.
type Handler struct {
	Gateway   Gateway
	Registry  *chathub.Registry
	Store     storage.Storage
	JWTSecret []byte
}

func NewHandler(gw Gateway, registry *chathub.Registry, store storage.Storage, jwtSecret []byte) *Handler {
	return &Handler{
		Gateway:   gw,
		Registry:  registry,
		Store:     store,
		JWTSecret: jwtSecret,
	}
}
