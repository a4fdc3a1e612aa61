package handler_test

import (
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"

	"github.com/githubzohaib/Forest-MGT/internal/gateway"
	"github.com/githubzohaib/Forest-MGT/internal/models"
)

// MockGateway is a testify mock of the handler.Gateway interface.
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Submit(senderID, senderRole string, in models.SubmitRequest) (*models.Message, error) {
	args := m.Called(senderID, senderRole, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockGateway) History(requesterID, requesterRole string, f gateway.HistoryFilter) ([]models.Message, error) {
	args := m.Called(requesterID, requesterRole, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockGateway) MarkRead(requesterID string, messageID uint) error {
	args := m.Called(requesterID, messageID)
	return args.Error(0)
}

func (m *MockGateway) HandleInbound(senderID, senderRole string) func(models.SubmitRequest) error {
	return func(models.SubmitRequest) error { return nil }
}

// MockStorage only needs FindUserByID for the auth middleware; the rest of
// the storage.Storage interface is mocked for completeness.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) SaveMessage(msg *models.Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockStorage) QueryMessages(f models.MessageFilter) ([]models.Message, error) {
	args := m.Called(f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockStorage) MarkMessageRead(messageID uint, userID string) error {
	args := m.Called(messageID, userID)
	return args.Error(0)
}

func (m *MockStorage) FindUserByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) FindDesignatedAdmin() (*models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) EnsureDefaultAdmin(name, email string) (*models.User, error) {
	args := m.Called(name, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) PublishMessage(ev models.PushEvent) error {
	args := m.Called(ev)
	return args.Error(0)
}

func (m *MockStorage) SubscribeMessages() *redis.PubSub {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*redis.PubSub)
}
