package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Venom-999/ALDA-FINAL-KURS/internal/domain"
	"github.com/Venom-999/ALDA-FINAL-KURS/internal/mocks"
	"github.com/Venom-999/ALDA-FINAL-KURS/internal/service"
	"github.com/Venom-999/ALDA-FINAL-KURS/internal/store"
)

func emptyBackend() *mocks.Backend {
	backend := new(mocks.Backend)
	backend.On("Load", mock.Anything, mock.Anything).Return(nil, store.ErrNotFound)
	return backend
}

func TestNewLoadsEveryDocument(t *testing.T) {
	backend := emptyBackend()

	_, err := service.New(context.Background(), backend, nil, testLogger())
	require.NoError(t, err)

	for _, name := range []string{
		store.DocServices, store.DocRequests, store.DocReviews, store.DocSubscriptions,
		store.DocFavorites, store.DocProfiles, store.DocUsers, store.DocMessages,
	} {
		backend.AssertCalled(t, "Load", mock.Anything, name)
	}
	backend.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestRegisterWritesOnlyUsers(t *testing.T) {
	ctx := context.Background()
	backend := emptyBackend()
	backend.On("Save", mock.Anything, store.DocUsers, mock.MatchedBy(func(data []byte) bool {
		return len(data) > 0 && data[0] == '['
	})).Return(nil).Once()

	hasher := &mocks.MockPasswordHasher{ShouldSucceed: true}
	m, err := service.New(ctx, backend, nil, testLogger(), service.WithPasswordHasher(hasher))
	require.NoError(t, err)

	require.NoError(t, m.Register(ctx, "a@x.com", "", domain.RoleClient, "secret1"))

	backend.AssertExpectations(t)
	assert.Equal(t, 1, hasher.HashCallCount)
}

func TestLoginUsesStoredHash(t *testing.T) {
	ctx := context.Background()
	backend := emptyBackend()
	backend.On("Save", mock.Anything, store.DocUsers, mock.Anything).Return(nil)

	hasher := &mocks.MockPasswordHasher{}
	m, err := service.New(ctx, backend, nil, testLogger(), service.WithPasswordHasher(hasher))
	require.NoError(t, err)
	require.NoError(t, m.Register(ctx, "a@x.com", "", domain.RoleClient, "secret1"))
	m.Logout(ctx)

	err = m.Login(ctx, "a@x.com", "secret1")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	assert.NotErrorIs(t, err, mocks.ErrMockPasswordMismatch, "the cause is not exposed")
	assert.Equal(t, "hashed:secret1", hasher.CompareCalledWith.HashedPassword)

	hasher.ShouldSucceed = true
	assert.NoError(t, m.Login(ctx, "a@x.com", "secret1"))
}

func TestRegisterHashFailure(t *testing.T) {
	ctx := context.Background()
	backend := emptyBackend()

	hasher := &mocks.MockPasswordHasher{HashFn: func(string) (string, error) {
		return "", errors.New("entropy exhausted")
	}}
	m, err := service.New(ctx, backend, nil, testLogger(), service.WithPasswordHasher(hasher))
	require.NoError(t, err)

	err = m.Register(ctx, "a@x.com", "", domain.RoleClient, "secret1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrValidation)
	assert.False(t, m.LoggedIn())
	backend.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}
