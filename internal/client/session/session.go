package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/swms/internal/client/models"
	"github.com/dmitrijs2005/swms/internal/common"
	"github.com/dmitrijs2005/swms/internal/logging"
)

// MinPasswordLength applies to self-registration.
const MinPasswordLength = 4

type State int

const (
	LoggedOut State = iota
	LoggedIn
)

func (s State) String() string {
	if s == LoggedIn {
		return "logged-in"
	}
	return "logged-out"
}

// Session is the identity of the signed-in operator. It never carries a
// password or hash.
type Session struct {
	ID    string
	Name  string
	Email string
	Role  models.Role
	Area  string
}

func fromUser(u models.User) Session {
	return Session{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Area: u.Area}
}

// Registry is the user registry slot. *store.Binding[[]models.User]
// satisfies it.
type Registry interface {
	Get() []models.User
	Update(ctx context.Context, fn func(cur []models.User) ([]models.User, error)) error
}

type RegisterRequest struct {
	Name            string
	Address         string
	WA              string
	Email           string
	Password        []byte
	PasswordConfirm []byte
}

type Manager struct {
	users    Registry
	verifier Verifier
	log      logging.Logger
	now      func() time.Time

	mu      sync.RWMutex
	current *Session
}

// NewManager returns a Manager in the LoggedOut state.
func NewManager(users Registry, verifier Verifier, log logging.Logger) *Manager {
	if verifier == nil {
		verifier = DemoVerifier{}
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Manager{
		users:    users,
		verifier: verifier,
		log:      log.With("component", "session"),
		now:      time.Now,
	}
}

func (m *Manager) Verifier() Verifier { return m.verifier }

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return LoggedOut
	}
	return LoggedIn
}

// Current returns a copy of the active session, or nil when logged out.
func (m *Manager) Current() *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil
	}
	s := *m.current
	return &s
}

// Login signs in the user registered under email. A failed attempt leaves
// the current state untouched.
func (m *Manager) Login(ctx context.Context, email string, password []byte) (Session, error) {
	users := m.users.Get()
	idx := models.FindByEmail(users, email)
	if idx < 0 {
		m.log.Info(ctx, "login rejected", "reason", "account not found")
		return Session{}, common.ErrAccountNotFound
	}
	u := users[idx]
	if !m.verifier.Verify(u, password) {
		m.log.Info(ctx, "login rejected", "reason", "invalid credential", "user", u.ID)
		return Session{}, common.ErrInvalidCredential
	}

	s := fromUser(u)
	m.mu.Lock()
	m.current = &s
	m.mu.Unlock()

	m.log.Info(ctx, "logged in", "user", u.ID, "role", string(u.Role))
	return s, nil
}

// Logout returns to LoggedOut. Calling it while logged out is a no-op.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	prev := m.current
	m.current = nil
	m.mu.Unlock()

	if prev != nil {
		m.log.Info(ctx, "logged out", "user", prev.ID)
	}
}

// Register adds a self-registered viewer account. It never signs the new
// user in. On any error the registry is unchanged.
func (m *Manager) Register(ctx context.Context, req RegisterRequest) (models.User, error) {
	email := models.NormalizeEmail(req.Email)
	switch {
	case strings.TrimSpace(req.Name) == "":
		return models.User{}, common.NewValidationError("name", "is required")
	case strings.TrimSpace(req.Address) == "":
		return models.User{}, common.NewValidationError("address", "is required")
	case strings.TrimSpace(req.WA) == "":
		return models.User{}, common.NewValidationError("wa", "is required")
	case email == "":
		return models.User{}, common.NewValidationError("email", "is required")
	case len(req.Password) < MinPasswordLength:
		return models.User{}, common.NewValidationError("password",
			fmt.Sprintf("must be at least %d characters", MinPasswordLength))
	case string(req.Password) != string(req.PasswordConfirm):
		return models.User{}, common.NewValidationError("password", "does not match confirmation")
	}

	nu := models.User{
		ID:        common.NewID("user"),
		Name:      strings.TrimSpace(req.Name),
		Email:     email,
		Role:      models.RoleViewer,
		Area:      "-",
		Address:   strings.TrimSpace(req.Address),
		WA:        strings.TrimSpace(req.WA),
		CreatedBy: models.CreatedBySelf,
		CreatedAt: m.now().UTC(),
	}
	if e, ok := m.verifier.(Enroller); ok {
		h, err := e.Enroll(req.Password)
		if err != nil {
			return models.User{}, fmt.Errorf("enroll password: %w", err)
		}
		nu.PasswordHash = h
	}

	err := m.users.Update(ctx, func(cur []models.User) ([]models.User, error) {
		if models.EmailTaken(cur, email, "") {
			return nil, common.ErrDuplicateEmail
		}
		return append([]models.User{nu}, cur...), nil
	})
	if err != nil {
		return models.User{}, err
	}

	m.log.Info(ctx, "user registered", "user", nu.ID)
	return nu, nil
}

// Refresh re-reads the signed-in user from the registry so that edits made
// by an administrator (name, role, area) take effect. If the account was
// deleted the session ends.
func (m *Manager) Refresh(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return
	}
	users := m.users.Get()
	idx := models.FindByID(users, m.current.ID)
	if idx < 0 {
		m.log.Info(ctx, "session ended, account removed", "user", m.current.ID)
		m.current = nil
		return
	}
	s := fromUser(users[idx])
	m.current = &s
}
