// Package gateway is the single entry point for inbound chat messages.
// It validates and normalizes a submit, persists it through the message
// store, and only then hands it to the delivery router: a crash between
// append and push loses the push, never the message.
package gateway

import (
	"log"
	"strings"

	"github.com/githubzohaib/Forest-MGT/internal/models"
	"github.com/githubzohaib/Forest-MGT/internal/storage"
	apperrors "github.com/githubzohaib/Forest-MGT/pkg/errors"
)

// Broadcast policies. AdminOnly mirrors the web UI, where only the admin
// composes broadcasts; Open lets any participant broadcast.
const (
	PolicyAdminOnly = "admin-only"
	PolicyOpen      = "open"
)

// Router pushes a stored message to its recipients' live connections.
type Router interface {
	Deliver(msg models.Message)
}

// Notifier mirrors broadcast messages to an out-of-band alert channel.
type Notifier interface {
	AnnounceBroadcast(msg models.Message)
}

// HistoryFilter carries the caller-supplied history query parameters.
// Role visibility is applied by the gateway on top of these.
type HistoryFilter struct {
	ToUser      string
	FromUser    string
	IsBroadcast *bool
	Skip        int
	Limit       int
}

type Service struct {
	store  storage.Storage
	router Router
	policy string

	notifier Notifier
}

func NewService(store storage.Storage, router Router, policy string) *Service {
	if policy != PolicyOpen {
		policy = PolicyAdminOnly
	}
	return &Service{store: store, router: router, policy: policy}
}

// SetNotifier attaches an optional broadcast notifier.
func (s *Service) SetNotifier(n Notifier) {
	s.notifier = n
}

// Submit validates, persists and routes one inbound message. senderID and
// senderRole come from the authenticated session, never from the payload.
// A ranger submit with no explicit target default-routes to the designated
// admin. Validation failures are returned before anything is persisted.
func (s *Service) Submit(senderID, senderRole string, in models.SubmitRequest) (*models.Message, error) {
	body := strings.TrimSpace(in.Body)
	if body == "" {
		return nil, apperrors.ErrEmptyBody
	}
	if in.IsBroadcast && in.ToUserID != "" {
		return nil, apperrors.ErrAmbiguousRecipient
	}

	var msg models.Message
	switch {
	case in.IsBroadcast:
		if s.policy == PolicyAdminOnly && senderRole != models.RoleAdmin {
			return nil, apperrors.ErrBroadcastForbidden
		}
		msg = models.NewBroadcastMessage(senderID, body)

	case in.ToUserID != "":
		msg = models.NewPrivateMessage(senderID, in.ToUserID, body)

	default:
		// No target given: ranger messages go to the admin by default,
		// everyone else has to say who they are talking to.
		if senderRole != models.RoleRanger {
			return nil, apperrors.ErrMissingRecipient
		}
		admin, err := s.store.FindDesignatedAdmin()
		if err != nil {
			return nil, err
		}
		msg = models.NewPrivateMessage(senderID, admin.ID, body)
	}

	if err := s.store.SaveMessage(&msg); err != nil {
		return nil, err
	}

	// Append and delivery are deliberately not transactional. A push
	// failure leaves the message recoverable through history replay.
	s.router.Deliver(msg)

	if msg.IsBroadcast && s.notifier != nil {
		s.notifier.AnnounceBroadcast(msg)
	}

	return &msg, nil
}

// History returns one page of past messages visible to the requester.
// Rangers see broadcasts plus their own private thread; admins see
// everything, narrowed only by the explicit filters.
func (s *Service) History(requesterID, requesterRole string, f HistoryFilter) ([]models.Message, error) {
	mf := models.MessageFilter{
		ToUser:      f.ToUser,
		FromUser:    f.FromUser,
		IsBroadcast: f.IsBroadcast,
		Skip:        f.Skip,
		Limit:       f.Limit,
	}
	if requesterRole != models.RoleAdmin {
		mf.VisibleTo = requesterID
	}
	return s.store.QueryMessages(mf)
}

// MarkRead records that the requester has seen the message. Idempotent.
func (s *Service) MarkRead(requesterID string, messageID uint) error {
	return s.store.MarkMessageRead(messageID, requesterID)
}

// HandleInbound adapts Submit for frame transports. On success the sender
// learns the outcome from the echoed message; a rejection is logged and
// returned so the transport can ack it back on the same connection.
func (s *Service) HandleInbound(senderID, senderRole string) func(models.SubmitRequest) error {
	return func(req models.SubmitRequest) error {
		if _, err := s.Submit(senderID, senderRole, req); err != nil {
			log.Printf("Rejected inbound message from %s: %v", senderID, err)
			return err
		}
		return nil
	}
}
