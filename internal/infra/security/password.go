package security

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrBadCredentials = errors.New("security: bad credentials")

type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(password), h.cost())
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (h BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func (h BcryptHasher) cost() int {
	if h.Cost >= bcrypt.MinCost {
		return h.Cost
	}
	return bcrypt.DefaultCost
}

// Credentials is the single staff account guarding the admin pages.
type Credentials struct {
	Username     string
	PasswordHash string
	Hasher       BcryptHasher
}

// Configured reports whether both a username and a hash are set.
func (c Credentials) Configured() bool {
	return c.Username != "" && c.PasswordHash != ""
}

// Verify checks a username/password pair. The username comparison takes
// constant time; the password goes through bcrypt.
func (c Credentials) Verify(username, password string) error {
	if !c.Configured() {
		return ErrBadCredentials
	}
	userOK := len(username) == len(c.Username) &&
		subtle.ConstantTimeCompare([]byte(username), []byte(c.Username)) == 1
	passErr := c.Hasher.Compare(c.PasswordHash, password)
	if !userOK || passErr != nil {
		return ErrBadCredentials
	}
	return nil
}
