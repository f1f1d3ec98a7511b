package service

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/crier-dev/crier/internal/domain"
	internal_errors "github.com/crier-dev/crier/internal/errors"
)

// MockAuthStorage mocks the AuthStorage interface.
type MockAuthStorage struct {
	saveUserFunc   func(user domain.User) (domain.UserId, error)
	userFunc       func(username domain.Username) (domain.User, error)
	deleteUserFunc func(id domain.UserId) error
}

func (m *MockAuthStorage) SaveUser(user domain.User) (domain.UserId, error) {
	if m.saveUserFunc != nil {
		return m.saveUserFunc(user)
	}
	return 1, nil
}

func (m *MockAuthStorage) User(username domain.Username) (domain.User, error) {
	if m.userFunc != nil {
		return m.userFunc(username)
	}
	return domain.User{}, nil
}

func (m *MockAuthStorage) DeleteUser(id domain.UserId) error {
	if m.deleteUserFunc != nil {
		return m.deleteUserFunc(id)
	}
	return nil
}

// MockJwt mocks the Jwt interface.
type MockJwt struct {
	newTokenFunc func(user domain.User) (string, error)
}

func (m *MockJwt) NewToken(user domain.User) (string, error) {
	if m.newTokenFunc != nil {
		return m.newTokenFunc(user)
	}
	return "token", nil
}

// MockCredentialsValidator mocks the CredentialsValidator interface.
type MockCredentialsValidator struct {
	usernameFunc func(username string) error
	passwordFunc func(password string) error
}

func (m *MockCredentialsValidator) Username(username string) error {
	if m.usernameFunc != nil {
		return m.usernameFunc(username)
	}
	return nil
}

func (m *MockCredentialsValidator) Password(password string) error {
	if m.passwordFunc != nil {
		return m.passwordFunc(password)
	}
	return nil
}

func TestAuthRegister(t *testing.T) {
	t.Run("hashes password before saving", func(t *testing.T) {
		var saved domain.User
		storage := &MockAuthStorage{
			saveUserFunc: func(user domain.User) (domain.UserId, error) {
				saved = user
				return 42, nil
			},
		}
		s := NewAuth(storage, &MockJwt{}, &MockCredentialsValidator{}, nil)

		id, err := s.Register(domain.Credentials{Username: "alice", Password: "secret123"})

		assert.NoError(t, err)
		assert.Equal(t, domain.UserId(42), id)
		assert.NotEqual(t, "secret123", saved.PassHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PassHash), []byte("secret123")))
	})

	t.Run("admin list bootstraps the admin flag", func(t *testing.T) {
		var saved domain.User
		storage := &MockAuthStorage{
			saveUserFunc: func(user domain.User) (domain.UserId, error) {
				saved = user
				return 1, nil
			},
		}
		s := NewAuth(storage, &MockJwt{}, &MockCredentialsValidator{}, []domain.Username{"root"})

		_, err := s.Register(domain.Credentials{Username: "root", Password: "secret123"})
		assert.NoError(t, err)
		assert.True(t, saved.Admin)

		_, err = s.Register(domain.Credentials{Username: "alice", Password: "secret123"})
		assert.NoError(t, err)
		assert.False(t, saved.Admin)
	})

	t.Run("invalid username", func(t *testing.T) {
		validator := &MockCredentialsValidator{
			usernameFunc: func(username string) error { return errors.New("too short") },
		}
		s := NewAuth(&MockAuthStorage{}, &MockJwt{}, validator, nil)

		_, err := s.Register(domain.Credentials{Username: "a", Password: "secret123"})

		assert.Error(t, err)
	})

	t.Run("duplicate username", func(t *testing.T) {
		storage := &MockAuthStorage{
			saveUserFunc: func(user domain.User) (domain.UserId, error) {
				return 0, &internal_errors.ErrorWithStatusCode{Message: "Username already taken", StatusCode: http.StatusConflict}
			},
		}
		s := NewAuth(storage, &MockJwt{}, &MockCredentialsValidator{}, nil)

		_, err := s.Register(domain.Credentials{Username: "alice", Password: "secret123"})

		var statusErr *internal_errors.ErrorWithStatusCode
		assert.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusConflict, statusErr.StatusCode)
	})
}

func TestAuthLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	assert.NoError(t, err)
	alice := domain.User{Id: 1, Username: "alice", PassHash: string(hash)}

	storage := &MockAuthStorage{
		userFunc: func(username domain.Username) (domain.User, error) {
			if username == "alice" {
				return alice, nil
			}
			return domain.User{}, internal_errors.NotFound
		},
	}

	t.Run("successful login returns token", func(t *testing.T) {
		jwt := &MockJwt{newTokenFunc: func(user domain.User) (string, error) {
			assert.Equal(t, alice.Id, user.Id)
			return "jwt-token", nil
		}}
		s := NewAuth(storage, jwt, &MockCredentialsValidator{}, nil)

		token, err := s.Login(domain.Credentials{Username: "alice", Password: "secret123"})

		assert.NoError(t, err)
		assert.Equal(t, "jwt-token", token)
	})

	t.Run("unknown user and wrong password yield the same error", func(t *testing.T) {
		s := NewAuth(storage, &MockJwt{}, &MockCredentialsValidator{}, nil)

		_, errUnknown := s.Login(domain.Credentials{Username: "bob", Password: "secret123"})
		_, errWrongPass := s.Login(domain.Credentials{Username: "alice", Password: "nope"})

		assert.Error(t, errUnknown)
		assert.Error(t, errWrongPass)
		assert.Equal(t, errUnknown.Error(), errWrongPass.Error())

		var statusErr *internal_errors.ErrorWithStatusCode
		assert.ErrorAs(t, errUnknown, &statusErr)
		assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	})
}

func TestAuthDeleteAccount(t *testing.T) {
	deleted := domain.UserId(0)
	storage := &MockAuthStorage{
		deleteUserFunc: func(id domain.UserId) error {
			deleted = id
			return nil
		},
	}
	s := NewAuth(storage, &MockJwt{}, &MockCredentialsValidator{}, nil)

	assert.NoError(t, s.DeleteAccount(42))
	assert.Equal(t, domain.UserId(42), deleted)
}
