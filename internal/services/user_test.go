package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/ieplsoft/user-management/internal/models"
	"github.com/ieplsoft/user-management/internal/repositories"
	"github.com/ieplsoft/user-management/internal/services"
)

func newUserServiceMocks(t *testing.T) (*gomock.Controller, *services.MockUserReadStore, *services.MockUserWriteStore, *services.MockUserCache) {
	ctrl := gomock.NewController(t)
	return ctrl,
		services.NewMockUserReadStore(ctrl),
		services.NewMockUserWriteStore(ctrl),
		services.NewMockUserCache(ctrl)
}

func TestUserService_List(t *testing.T) {
	ctrl, readStore, writeStore, cache := newUserServiceMocks(t)
	defer ctrl.Finish()

	svc := services.NewUserService(readStore, writeStore, cache, nil)

	records := []models.UserDB{
		{ID: 1, Name: "Ada", Email: "ada@x.com", PasswordHash: "secret-hash"},
		{ID: 2, Name: "Bob", Email: "bob@x.com", PasswordHash: "other-hash"},
	}
	readStore.EXPECT().List(gomock.Any()).Return(records, nil)

	users, err := svc.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, int64(1), users[0].ID)
	assert.Equal(t, "Bob", users[1].Name)

	readStore.EXPECT().List(gomock.Any()).Return(nil, errors.New("db error"))
	users, err = svc.List(context.Background())
	assert.Error(t, err)
	assert.Nil(t, users)
}

func TestUserService_Get_CacheHit(t *testing.T) {
	ctrl, readStore, writeStore, cache := newUserServiceMocks(t)
	defer ctrl.Finish()

	svc := services.NewUserService(readStore, writeStore, cache, nil)

	cached := &models.User{ID: 1, Name: "Ada"}
	cache.EXPECT().Get(gomock.Any(), int64(1)).Return(cached, nil)

	user, err := svc.Get(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, cached, user)
}

func TestUserService_Get_CacheMiss(t *testing.T) {
	ctrl, readStore, writeStore, cache := newUserServiceMocks(t)
	defer ctrl.Finish()

	svc := services.NewUserService(readStore, writeStore, cache, nil)

	cache.EXPECT().Get(gomock.Any(), int64(1)).Return(nil, nil)
	readStore.EXPECT().GetByID(gomock.Any(), int64(1)).
		Return(&models.UserDB{ID: 1, Name: "Ada", PasswordHash: "h"}, nil)
	cache.EXPECT().Set(gomock.Any(), models.User{ID: 1, Name: "Ada"}).Return(nil)

	user, err := svc.Get(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, &models.User{ID: 1, Name: "Ada"}, user)
}

func TestUserService_Get_NotFound(t *testing.T) {
	ctrl, readStore, writeStore, cache := newUserServiceMocks(t)
	defer ctrl.Finish()

	svc := services.NewUserService(readStore, writeStore, cache, nil)

	cache.EXPECT().Get(gomock.Any(), int64(9)).Return(nil, nil)
	readStore.EXPECT().GetByID(gomock.Any(), int64(9)).Return(nil, nil)

	user, err := svc.Get(context.Background(), 9)
	assert.ErrorIs(t, err, services.ErrUserNotFound)
	assert.Nil(t, user)
}

func TestUserService_Get_CacheFailureFallsThrough(t *testing.T) {
	ctrl, readStore, writeStore, cache := newUserServiceMocks(t)
	defer ctrl.Finish()

	svc := services.NewUserService(readStore, writeStore, cache, nil)

	cache.EXPECT().Get(gomock.Any(), int64(1)).Return(nil, errors.New("redis down"))
	readStore.EXPECT().GetByID(gomock.Any(), int64(1)).
		Return(&models.UserDB{ID: 1, Name: "Ada"}, nil)
	cache.EXPECT().Set(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	user, err := svc.Get(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
}

func TestUserService_Create(t *testing.T) {
	ctrl, readStore, writeStore, cache := newUserServiceMocks(t)
	defer ctrl.Finish()

	svc := services.NewUserService(readStore, writeStore, cache, nil)

	// Records added this way get an empty password hash.
	writeStore.EXPECT().
		Save(gomock.Any(), "Bob", "bob@x.com", "9123456780", "1985-05-05", "").
		Return(int64(2), nil)

	id, err := svc.Create(context.Background(), "Bob", "bob@x.com", "9123456780", "1985-05-05")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), id)

	writeStore.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), "").
		Return(int64(0), repositories.ErrEmailTaken)

	_, err = svc.Create(context.Background(), "Bob", "bob@x.com", "9123456780", "1985-05-05")
	assert.ErrorIs(t, err, services.ErrEmailAlreadyRegistered)
}

func TestUserService_Update(t *testing.T) {
	ctrl, readStore, writeStore, cache := newUserServiceMocks(t)
	defer ctrl.Finish()

	mockKafka := services.NewMockKafkaWriter(ctrl)
	svc := services.NewUserService(readStore, writeStore, cache, mockKafka)

	tests := []struct {
		name     string
		storeErr error
		wantErr  error
	}{
		{name: "success"},
		{name: "not found", storeErr: repositories.ErrUserNotFound, wantErr: services.ErrUserNotFound},
		{name: "email taken", storeErr: repositories.ErrEmailTaken, wantErr: services.ErrEmailAlreadyRegistered},
		{name: "store error", storeErr: errors.New("db error"), wantErr: errors.New("db error")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writeStore.EXPECT().
				Update(gomock.Any(), int64(1), "Ada", "ada@x.com", "9876543210", "1990-01-01").
				Return(tt.storeErr)

			if tt.storeErr == nil {
				cache.EXPECT().Delete(gomock.Any(), int64(1)).Return(nil)
				mockKafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)
			}

			err := svc.Update(context.Background(), 1, "Ada", "ada@x.com", "9876543210", "1990-01-01")
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUserService_Delete(t *testing.T) {
	ctrl, readStore, writeStore, cache := newUserServiceMocks(t)
	defer ctrl.Finish()

	svc := services.NewUserService(readStore, writeStore, cache, nil)

	writeStore.EXPECT().Delete(gomock.Any(), int64(1)).Return(nil)
	cache.EXPECT().Delete(gomock.Any(), int64(1)).Return(nil)
	assert.NoError(t, svc.Delete(context.Background(), 1))

	writeStore.EXPECT().Delete(gomock.Any(), int64(9)).Return(repositories.ErrUserNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), 9), services.ErrUserNotFound)

	writeStore.EXPECT().Delete(gomock.Any(), int64(2)).Return(errors.New("db error"))
	assert.EqualError(t, svc.Delete(context.Background(), 2), "db error")
}
