package session

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/swms/internal/client/models"
)

// DemoPassword is the password printed on the login screen and given to
// accounts created by an administrator.
const DemoPassword = "SWMS1234"

// Verifier decides whether password unlocks the stored user record.
type Verifier interface {
	Verify(u models.User, password []byte) bool
}

// Enroller derives the value stored in User.PasswordHash. Verifiers that do
// not keep per-user secrets do not implement it.
type Enroller interface {
	Enroll(password []byte) (string, error)
}

// DemoVerifier accepts the same three passwords for every account:
// DemoPassword, "demo" and the empty string. It is only meant for demos.
type DemoVerifier struct{}

var demoPasswords = [][]byte{[]byte(DemoPassword), []byte("demo"), {}}

func (DemoVerifier) Verify(_ models.User, password []byte) bool {
	ok := 0
	for _, p := range demoPasswords {
		ok |= subtle.ConstantTimeCompare(p, password)
	}
	return ok == 1
}

// BcryptVerifier checks passwords against User.PasswordHash. Accounts
// without a hash and empty passwords are always rejected.
type BcryptVerifier struct {
	Cost int
}

func NewBcryptVerifier(cost int) BcryptVerifier {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return BcryptVerifier{Cost: cost}
}

func (v BcryptVerifier) Verify(u models.User, password []byte) bool {
	if u.PasswordHash == "" || len(password) == 0 {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), password) == nil
}

var ErrEmptyPassword = errors.New("password must not be empty")

func (v BcryptVerifier) Enroll(password []byte) (string, error) {
	if len(password) == 0 {
		return "", ErrEmptyPassword
	}
	cost := v.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword(password, cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// EnrollMissing gives every user without a hash one derived from password.
// It returns the updated slice and the number of users changed.
func EnrollMissing(e Enroller, users []models.User, password []byte) ([]models.User, int, error) {
	n := 0
	for i := range users {
		if users[i].PasswordHash != "" {
			continue
		}
		h, err := e.Enroll(password)
		if err != nil {
			return nil, 0, err
		}
		users[i].PasswordHash = h
		n++
	}
	return users, n, nil
}
