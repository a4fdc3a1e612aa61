package storage

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/githubzohaib/Forest-MGT/internal/models"
	apperrors "github.com/githubzohaib/Forest-MGT/pkg/errors"
)

// SaveMessage appends a message to the chat log. The database assigns ID
// and CreatedAt; the insert is the single serialization point that orders
// the log. The broadcast/recipient invariant is re-checked here so a bad
// row can never be persisted even if a caller skips its own validation.
func (s *Service) SaveMessage(msg *models.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	if err := s.DB.Create(msg).Error; err != nil {
		log.Printf("ERROR: Failed to save message from %s: %v", msg.FromUserID, err)
		return apperrors.ErrStoreUnavailable(err)
	}
	return nil
}

// buildMessageQuery translates a filter into the paged, ordered SELECT.
func (s *Service) buildMessageQuery(f models.MessageFilter) *gorm.DB {
	f.Normalize()

	q := s.DB.Model(&models.Message{})
	if f.ToUser != "" {
		q = q.Where("to_user_id = ?", f.ToUser)
	}
	if f.FromUser != "" {
		q = q.Where("from_user_id = ?", f.FromUser)
	}
	if f.IsBroadcast != nil {
		q = q.Where("is_broadcast = ?", *f.IsBroadcast)
	}
	if f.VisibleTo != "" {
		// Rangers only see broadcasts plus their own private thread.
		q = q.Where("is_broadcast = ? OR to_user_id = ? OR from_user_id = ?",
			true, f.VisibleTo, f.VisibleTo)
	}

	return q.Order("created_at desc, id desc").
		Offset(f.Skip).
		Limit(f.Limit)
}

// QueryMessages returns one page of messages matching the filter, newest
// first with ties broken by insertion order. Role visibility is expressed
// by the caller through MessageFilter.VisibleTo.
func (s *Service) QueryMessages(f models.MessageFilter) ([]models.Message, error) {
	var messages []models.Message
	if err := s.buildMessageQuery(f).Find(&messages).Error; err != nil {
		log.Printf("ERROR: Failed to query messages: %v", err)
		return nil, apperrors.ErrStoreUnavailable(err)
	}
	return messages, nil
}

// MarkMessageRead adds userID to the message's read_by set. The guarded
// array_append runs as one statement, so concurrent receipts for the same
// message cannot lose updates, and repeating the call is a no-op.
func (s *Service) MarkMessageRead(messageID uint, userID string) error {
	res := s.DB.Exec(
		`UPDATE messages
		 SET read_by = array_append(COALESCE(read_by, '{}'), ?)
		 WHERE id = ? AND NOT (? = ANY(COALESCE(read_by, '{}')))`,
		userID, messageID, userID,
	)
	if res.Error != nil {
		log.Printf("ERROR: Failed to mark message %d read by %s: %v", messageID, userID, res.Error)
		return apperrors.ErrStoreUnavailable(res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// Zero rows means either the receipt already exists or the message id
	// is unknown; only the latter is an error.
	var count int64
	err := s.DB.Model(&models.Message{}).Where("id = ?", messageID).Count(&count).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrStoreUnavailable(err)
	}
	if count == 0 {
		return apperrors.ErrMessageNotFound
	}
	return nil
}
