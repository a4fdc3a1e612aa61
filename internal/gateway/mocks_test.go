package gateway_test

import (
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"

	"github.com/githubzohaib/Forest-MGT/internal/models"
)

// MockStorage is a testify mock of the storage.Storage interface.
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

// fakeRouter records delivered messages.
type fakeRouter struct {
	delivered []models.Message
}

func (r *fakeRouter) Deliver(msg models.Message) {
	r.delivered = append(r.delivered, msg)
}

// fakeNotifier records announced broadcasts.
type fakeNotifier struct {
	announced []models.Message
}

func (n *fakeNotifier) AnnounceBroadcast(msg models.Message) {
	n.announced = append(n.announced, msg)
}
