package services

import (
	"context"
	"errors"

	"github.com/ieplsoft/user-management/internal/logger"
	"github.com/ieplsoft/user-management/internal/models"
	"github.com/ieplsoft/user-management/internal/repositories"
)

// ErrUserNotFound is returned when an operation targets a user that does not exist.
var ErrUserNotFound = errors.New("user not found")

// UserReadStore defines read operations for user records.
type UserReadStore interface {
	GetByID(ctx context.Context, id int64) (*models.UserDB, error)
	List(ctx context.Context) ([]models.UserDB, error)
}

// UserWriteStore defines write operations for user records.
type UserWriteStore interface {
	Save(ctx context.Context, name, email, phone, dateOfBirth, passwordHash string) (int64, error)
	Update(ctx context.Context, id int64, name, email, phone, dateOfBirth string) error
	Delete(ctx context.Context, id int64) error
}

// UserCache caches sanitized user views.
type UserCache interface {
	Get(ctx context.Context, id int64) (*models.User, error)
	Set(ctx context.Context, user models.User) error
	Delete(ctx context.Context, id int64) error
}

// UserService handles user CRUD, the cache and lifecycle events.
type UserService struct {
	readStore   UserReadStore
	writeStore  UserWriteStore
	cache       UserCache
	kafkaWriter KafkaWriter
}

// NewUserService creates a new UserService.
func NewUserService(readStore UserReadStore, writeStore UserWriteStore, cache UserCache, kafkaWriter KafkaWriter) *UserService {
	return &UserService{
		readStore:   readStore,
		writeStore:  writeStore,
		cache:       cache,
		kafkaWriter: kafkaWriter,
	}
}

// List returns sanitized views of all users.
func (svc *UserService) List(ctx context.Context) ([]models.User, error) {
	records, err := svc.readStore.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list users", "err", err)
		return nil, err
	}

	users := make([]models.User, 0, len(records))
	for i := range records {
		users = append(users, records[i].View())
	}

	return users, nil
}

// Get returns the sanitized view of one user, served from the cache when
// possible. Cache failures fall through to the store.
func (svc *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	if svc.cache != nil {
		if cached, err := svc.cache.Get(ctx, id); err == nil && cached != nil {
			return cached, nil
		}
	}

	record, err := svc.readStore.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get user", "id", id, "err", err)
		return nil, err
	}
	if record == nil {
		return nil, ErrUserNotFound
	}

	view := record.View()
	if svc.cache != nil {
		_ = svc.cache.Set(ctx, view)
	}

	return &view, nil
}

// Create inserts a user record without credentials. Accounts created this
// way carry an empty password hash and can never authenticate.
func (svc *UserService) Create(ctx context.Context, name, email, phone, dateOfBirth string) (int64, error) {
	id, err := svc.writeStore.Save(ctx, name, email, phone, dateOfBirth, "")
	if err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) {
			return 0, ErrEmailAlreadyRegistered
		}
		logger.Log.Errorw("failed to create user", "err", err)
		return 0, err
	}

	publishUserEvent(ctx, svc.kafkaWriter, id, models.ActionCreated)

	return id, nil
}

// Update replaces a user's profile fields. The password hash is immutable
// through this path.
func (svc *UserService) Update(ctx context.Context, id int64, name, email, phone, dateOfBirth string) error {
	err := svc.writeStore.Update(ctx, id, name, email, phone, dateOfBirth)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrUserNotFound):
			return ErrUserNotFound
		case errors.Is(err, repositories.ErrEmailTaken):
			return ErrEmailAlreadyRegistered
		}
		logger.Log.Errorw("failed to update user", "id", id, "err", err)
		return err
	}

	if svc.cache != nil {
		_ = svc.cache.Delete(ctx, id)
	}
	publishUserEvent(ctx, svc.kafkaWriter, id, models.ActionUpdated)

	return nil
}

// Delete removes a user record permanently.
func (svc *UserService) Delete(ctx context.Context, id int64) error {
	err := svc.writeStore.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		logger.Log.Errorw("failed to delete user", "id", id, "err", err)
		return err
	}

	if svc.cache != nil {
		_ = svc.cache.Delete(ctx, id)
	}
	publishUserEvent(ctx, svc.kafkaWriter, id, models.ActionDeleted)

	return nil
}
