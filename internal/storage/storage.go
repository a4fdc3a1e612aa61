package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/githubzohaib/Forest-MGT/internal/models"
	apperrors "github.com/githubzohaib/Forest-MGT/pkg/errors"
)

// messageChannel is the Redis Pub/Sub channel carrying PushEvents between
// nodes.
const messageChannel = "chat:events"

type Storage interface {
	SaveMessage(msg *models.Message) error
	QueryMessages(f models.MessageFilter) ([]models.Message, error)
	MarkMessageRead(messageID uint, userID string) error

	FindUserByID(id string) (*models.User, error)
	FindDesignatedAdmin() (*models.User, error)
	EnsureDefaultAdmin(name, email string) (*models.User, error)

	PublishMessage(ev models.PushEvent) error
	SubscribeMessages() *redis.PubSub
}

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor. The Redis client may be nil; the Pub/Sub
// bridge is then disabled and the node runs standalone.
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// FindUserByID loads a user from PostgreSQL by primary key.
func (s *Service) FindUserByID(id string) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		log.Printf("ERROR: Failed to load user %s: %v", id, err)
		return nil, apperrors.ErrStoreUnavailable(err)
	}
	return &user, nil
}

// FindDesignatedAdmin returns the admin account that untargeted ranger
// messages default-route to: the earliest-created admin.
func (s *Service) FindDesignatedAdmin() (*models.User, error) {
	var admin models.User
	err := s.DB.Where("role = ?", models.RoleAdmin).
		Order("created_at asc").
		First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNoAdminRegistered
	}
	if err != nil {
		log.Printf("ERROR: Failed to find designated admin: %v", err)
		return nil, apperrors.ErrStoreUnavailable(err)
	}
	return &admin, nil
}

// EnsureDefaultAdmin creates the admin account on first start if no admin
// exists yet, so ranger default routing always has a target.
func (s *Service) EnsureDefaultAdmin(name, email string) (*models.User, error) {
	var admin models.User
	result := s.DB.Where("role = ?", models.RoleAdmin).
		Attrs(models.User{Name: name, Email: email, Role: models.RoleAdmin}).
		FirstOrCreate(&admin)
	if result.Error != nil {
		log.Printf("ERROR: Failed to ensure default admin: %v", result.Error)
		return nil, apperrors.ErrStoreUnavailable(result.Error)
	}
	if result.RowsAffected > 0 {
		log.Printf("Default admin created: %s (%s)", admin.Email, admin.ID)
	}
	return &admin, nil
}

// PublishMessage publishes a push event on the Redis bridge channel.
// No-op when Redis is not configured.
func (s *Service) PublishMessage(ev models.PushEvent) error {
	if s.Redis == nil {
		return nil
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return s.Redis.Publish(s.Ctx, messageChannel, payload).Err()
}

// SubscribeMessages subscribes to the bridge channel. Returns nil when
// Redis is not configured; callers must tolerate that.
func (s *Service) SubscribeMessages() *redis.PubSub {
	if s.Redis == nil {
		return nil
	}
	return s.Redis.Subscribe(s.Ctx, messageChannel)
}
