package chathub_test

import (
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"

	"github.com/githubzohaib/Forest-MGT/internal/chathub"
	"github.com/githubzohaib/Forest-MGT/internal/models"
)

// fakeConn is an in-memory Connection for exercising the registry and
// router without a transport.
type fakeConn struct {
	id     string
	userID string
	SendCh chan models.Message

	mu     sync.Mutex
	closed bool
}

var _ chathub.Connection = (*fakeConn)(nil)

func newFakeConn(userID string) *fakeConn {
	return &fakeConn{
		id:     uuid.New().String(),
		userID: userID,
		SendCh: make(chan models.Message, 16),
	}
}

// newSaturatedConn returns a connection whose send buffer is already full,
// standing in for a dead or stalled client.
func newSaturatedConn(userID string) *fakeConn {
	c := &fakeConn{
		id:     uuid.New().String(),
		userID: userID,
		SendCh: make(chan models.Message, 1),
	}
	c.SendCh <- models.Message{Body: "stuck"}
	return c
}

func (c *fakeConn) ID() string                  { return c.id }
func (c *fakeConn) UserID() string              { return c.userID }
func (c *fakeConn) Send() chan<- models.Message { return c.SendCh }
func (c *fakeConn) Run()                        {}

func (c *fakeConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// received drains everything currently queued on the connection.
func (c *fakeConn) received() []models.Message {
	var out []models.Message
	for {
		select {
		case msg := <-c.SendCh:
			out = append(out, msg)
		default:
			return out
		}
	}
}

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
