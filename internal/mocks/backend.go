package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Backend is a mock of store.Backend for use with testify/mock.
type Backend struct {
	mock.Mock
}

// Load is a mock implementation of store.Backend.Load
func (m *Backend) Load(ctx context.Context, name string) ([]byte, error) {
	args := m.Called(ctx, name)
	if data, ok := args.Get(0).([]byte); ok {
		return data, args.Error(1)
	}
	return nil, args.Error(1)
}

// Save is a mock implementation of store.Backend.Save
func (m *Backend) Save(ctx context.Context, name string, data []byte) error {
	args := m.Called(ctx, name, data)
	return args.Error(0)
}

// Close is a mock implementation of store.Backend.Close
func (m *Backend) Close() error {
	args := m.Called()
	return args.Error(0)
}
