package service

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/crier-dev/crier/internal/domain"
	"github.com/crier-dev/crier/internal/errors"
	"github.com/crier-dev/crier/internal/logger"
)

type AuthService interface {
	Register(creds domain.Credentials) (domain.UserId, error)
	Login(creds domain.Credentials) (string, error)
	DeleteAccount(userId domain.UserId) error
}

type Auth struct {
	storage   AuthStorage
	jwt       Jwt
	validator CredentialsValidator
	admins    map[domain.Username]bool
}

type AuthStorage interface {
	SaveUser(user domain.User) (domain.UserId, error)
	User(username domain.Username) (domain.User, error)
	DeleteUser(id domain.UserId) error
}

type Jwt interface {
	NewToken(user domain.User) (string, error)
}

type CredentialsValidator interface {
	Username(username string) error
	Password(password string) error
}

// adminUsernames bootstraps the admin flag: accounts registered under
// one of these names become admins. Everyone else can only be promoted
// by editing the user row.
func NewAuth(storage AuthStorage, jwt Jwt, validator CredentialsValidator, adminUsernames []domain.Username) *Auth {
	admins := make(map[domain.Username]bool, len(adminUsernames))
	for _, name := range adminUsernames {
		admins[name] = true
	}
	return &Auth{storage, jwt, validator, admins}
}

func (a *Auth) Register(creds domain.Credentials) (domain.UserId, error) {
	if err := a.validator.Username(creds.Username); err != nil {
		return 0, err
	}
	if err := a.validator.Password(creds.Password); err != nil {
		return 0, err
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return 0, err
	}

	return a.storage.SaveUser(domain.User{
		Username: creds.Username,
		PassHash: string(passHash),
		Admin:    a.admins[creds.Username],
	})
}

func (a *Auth) Login(creds domain.Credentials) (string, error) {
	user, err := a.storage.User(creds.Username)
	if err != nil {
		// Same message for unknown user and bad password so login
		// failures don't leak which usernames exist.
		return "", &errors.ErrorWithStatusCode{Message: "Invalid username or password", StatusCode: http.StatusUnauthorized}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(creds.Password)); err != nil {
		return "", &errors.ErrorWithStatusCode{Message: "Invalid username or password", StatusCode: http.StatusUnauthorized}
	}

	return a.jwt.NewToken(user)
}

func (a *Auth) DeleteAccount(userId domain.UserId) error {
	return a.storage.DeleteUser(userId)
}
