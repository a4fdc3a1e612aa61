package models

import (
	"strings"
	"time"

	"github.com/lib/pq"

	apperrors "github.com/githubzohaib/Forest-MGT/pkg/errors"
)

// DefaultHistoryLimit is the page size used when a history query does not
// specify one.
const DefaultHistoryLimit = 20

// Message is a persisted chat message, either a broadcast to every
// participant or a private message to a single recipient. Rows are
// append-only: apart from ReadBy, every field is immutable once created.
type Message struct {
	// ID is assigned by the database on insert. Auto-increment also gives
	// us the insertion-order tie-break for messages sharing a timestamp.
	ID uint `gorm:"primaryKey" json:"id"`
	// FromUserID is the ID of the user who sent the message.
	FromUserID string `gorm:"type:text;not null;index:idx_msg_from" json:"fromUserId"`
	// ToUserID is the sole recipient. Empty when IsBroadcast is true.
	ToUserID string `gorm:"type:text;index:idx_msg_to" json:"toUserId,omitempty"`
	// Body is the text payload.
	Body string `gorm:"type:text;not null" json:"body"`
	// IsBroadcast marks a message addressed to everyone rather than one user.
	IsBroadcast bool `gorm:"not null" json:"isBroadcast"`
	// ReadBy is the set of user IDs that acknowledged the message. Grows only.
	ReadBy pq.StringArray `gorm:"type:text[]" json:"readBy"`
	// CreatedAt is assigned at persistence time.
	CreatedAt time.Time `json:"createdAt"`
}

// NewBroadcastMessage builds an unsaved broadcast message.
func NewBroadcastMessage(fromUserID, body string) Message {
	return Message{
		FromUserID:  fromUserID,
		Body:        body,
		IsBroadcast: true,
	}
}

// NewPrivateMessage builds an unsaved private message to a single recipient.
func NewPrivateMessage(fromUserID, toUserID, body string) Message {
	return Message{
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Body:       body,
	}
}

// Validate enforces the broadcast/recipient invariant: exactly one of
// IsBroadcast and ToUserID must be set, and the body must be non-empty.
// Input from the network is re-checked here even though the gateway
// validates first.
func (m *Message) Validate() error {
	if strings.TrimSpace(m.Body) == "" {
		return apperrors.ErrEmptyBody
	}
	if m.IsBroadcast && m.ToUserID != "" {
		return apperrors.ErrAmbiguousRecipient
	}
	if !m.IsBroadcast && m.ToUserID == "" {
		return apperrors.ErrMissingRecipient
	}
	return nil
}

// MessageFilter selects messages for a history query.
type MessageFilter struct {
	ToUser      string
	FromUser    string
	IsBroadcast *bool

	// VisibleTo, when set, restricts results to broadcasts plus the private
	// thread of the given user. Used for ranger-role queries.
	VisibleTo string

	Skip  int
	Limit int
}

// Normalize clamps pagination to sane values.
func (f *MessageFilter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = DefaultHistoryLimit
	}
	if f.Skip < 0 {
		f.Skip = 0
	}
}
