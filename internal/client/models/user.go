package models

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CreatedBySelf marks users that registered themselves.
const CreatedBySelf = "self-registered"

// User is one entry of the account registry (slot swms_users).
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Area      string    `json:"area"`
	Address   string    `json:"address"`
	WA        string    `json:"wa"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`

	// PasswordHash is only set when bcrypt authentication is enabled.
	PasswordHash string `json:"passwordHash,omitempty"`
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address
// with the root locale, so "ADMIN@swms.com" and "admin@swms.com" compare
// equal while "straße" and "strasse" stay distinct. A Caser holds state, so
// one is built per call.
func NormalizeEmail(email string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(email))
}

// FindByEmail returns the index of the user registered under email, or -1.
func FindByEmail(users []User, email string) int {
	want := NormalizeEmail(email)
	if want == "" {
		return -1
	}
	for i, u := range users {
		if NormalizeEmail(u.Email) == want {
			return i
		}
	}
	return -1
}

// EmailTaken reports whether email belongs to a user other than exceptID.
func EmailTaken(users []User, email, exceptID string) bool {
	want := NormalizeEmail(email)
	for _, u := range users {
		if u.ID == exceptID {
			continue
		}
		if NormalizeEmail(u.Email) == want {
			return true
		}
	}
	return false
}

// FindByID returns the index of the user with id, or -1.
func FindByID(users []User, id string) int {
	for i, u := range users {
		if u.ID == id {
			return i
		}
	}
	return -1
}
