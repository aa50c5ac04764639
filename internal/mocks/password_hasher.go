package mocks

import (
	"errors"

	"github.com/ruslex/ruslex-api/internal/service/auth"
)

// ErrPasswordMismatch is returned by the default Compare implementation
// when the plaintext does not match the "hash".
var ErrPasswordMismatch = errors.New("password mismatch")

// MockPasswordHasher implements auth.PasswordHasher for testing. The
// default implementation "hashes" by prefixing the plaintext, which
// keeps assertions readable.
type MockPasswordHasher struct {
	HashFn    func(password string) (string, error)
	CompareFn func(hashedPassword, password string) error
}

var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

const mockHashPrefix = "hashed:"

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return mockHashPrefix + password, nil
}

func (m *MockPasswordHasher) Compare(hashedPassword, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if hashedPassword != mockHashPrefix+password {
		return ErrPasswordMismatch
	}
	return nil
}
