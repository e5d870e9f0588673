package mocks

import "errors"

// ErrMockPasswordMismatch is returned by MockPasswordHasher.Compare when
// ShouldSucceed is false.
var ErrMockPasswordMismatch = errors.New("password mismatch")

// MockPasswordHasher implements auth.PasswordHasher for testing. Hashes are
// the password with a "hashed:" prefix unless HashFn says otherwise.
type MockPasswordHasher struct {
	// ShouldSucceed determines whether Compare succeeds when CompareFn is nil
	ShouldSucceed bool

	// HashFn and CompareFn allow custom behavior in tests
	HashFn    func(password string) (string, error)
	CompareFn func(hashedPassword, password string) error

	// CompareCalledWith stores the arguments of the last Compare call
	CompareCalledWith struct {
		HashedPassword string
		Password       string
	}

	HashCallCount    int
	CompareCallCount int
}

// Hash implements auth.PasswordHasher.
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	m.HashCallCount++
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return "hashed:" + password, nil
}

// Compare implements auth.PasswordVerifier.
func (m *MockPasswordHasher) Compare(hashedPassword, password string) error {
	m.CompareCalledWith.HashedPassword = hashedPassword
	m.CompareCalledWith.Password = password
	m.CompareCallCount++

	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if m.ShouldSucceed {
		return nil
	}
	return ErrMockPasswordMismatch
}
