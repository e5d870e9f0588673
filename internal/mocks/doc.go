// Package mocks provides shared test doubles for the storage backend, the
// password hasher and event handlers.
//
// Backend is a testify/mock double; set expectations with On and check them
// with AssertExpectations. MockPasswordHasher uses function fields and call
// counters instead. EventRecorder keeps every event it handles so tests can
// assert which kinds were emitted:
//
//	hasher := &mocks.MockPasswordHasher{ShouldSucceed: true}
//	m, err := service.New(ctx, backend, nil, logger, service.WithPasswordHasher(hasher))
package mocks
