package services

import (
	"context"
	"sort"
	"strings"

	"github.com/dmitrijs2005/swms/internal/client/appctx"
	"github.com/dmitrijs2005/swms/internal/client/menu"
	"github.com/dmitrijs2005/swms/internal/client/models"
	"github.com/dmitrijs2005/swms/internal/client/session"
	"github.com/dmitrijs2005/swms/internal/common"
)

type SortKey string

const (
	SortByName  SortKey = "name"
	SortByEmail SortKey = "email"
	SortByRole  SortKey = "role"
)

type UserQuery struct {
	// Role restricts the listing; empty means every role.
	Role models.Role
	Sort SortKey
	Desc bool
}

// UserInput carries the editable fields of a user record.
type UserInput struct {
	Name    string
	Email   string
	Role    models.Role
	Area    string
	Address string
	WA      string
}

type RoleCounts struct {
	All     int
	Admin   int
	Petugas int
	Viewer  int
}

// UserService manages the user registry. All methods require the
// manage-users capability.
type UserService interface {
	List(q UserQuery) ([]models.User, error)
	Counts() (RoleCounts, error)
	Add(ctx context.Context, in UserInput) (models.User, error)
	Edit(ctx context.Context, id string, in UserInput) (models.User, error)
	Delete(ctx context.Context, id string) error
}

type userService struct {
	app *appctx.App
}

func NewUserService(app *appctx.App) UserService {
	return &userService{app: app}
}

func (s *userService) List(q UserQuery) ([]models.User, error) {
	if _, err := authorize(s.app, menu.ManageUsers); err != nil {
		return nil, err
	}

	var rows []models.User
	for _, u := range s.app.Slots.Users.Get() {
		if q.Role != "" && u.Role != q.Role {
			continue
		}
		rows = append(rows, u)
	}

	key := q.Sort
	if key == "" {
		key = SortByName
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := sortValue(rows[i], key), sortValue(rows[j], key)
		if q.Desc {
			return a > b
		}
		return a < b
	})
	return rows, nil
}

func sortValue(u models.User, key SortKey) string {
	switch key {
	case SortByEmail:
		return strings.ToLower(u.Email)
	case SortByRole:
		return strings.ToLower(string(u.Role))
	default:
		return strings.ToLower(u.Name)
	}
}

func (s *userService) Counts() (RoleCounts, error) {
	if _, err := authorize(s.app, menu.ManageUsers); err != nil {
		return RoleCounts{}, err
	}
	var c RoleCounts
	for _, u := range s.app.Slots.Users.Get() {
		c.All++
		switch u.Role {
		case models.RoleAdmin:
			c.Admin++
		case models.RolePetugas:
			c.Petugas++
		case models.RoleViewer:
			c.Viewer++
		}
	}
	return c, nil
}

func validateUserInput(in *UserInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = models.NormalizeEmail(in.Email)
	if in.Name == "" {
		return common.NewValidationError("name", "is required")
	}
	if in.Email == "" {
		return common.NewValidationError("email", "is required")
	}
	if !strings.Contains(in.Email, "@") {
		return common.NewValidationError("email", "is not a valid address")
	}
	if !in.Role.Valid() {
		return common.NewValidationError("role", "must be admin, petugas or viewer")
	}
	if strings.TrimSpace(in.Area) == "" {
		in.Area = "-"
	}
	return nil
}

// Add creates a user on behalf of the signed-in administrator. Under bcrypt
// authentication the new account gets the demo password.
func (s *userService) Add(ctx context.Context, in UserInput) (models.User, error) {
	actor, err := authorize(s.app, menu.ManageUsers)
	if err != nil {
		return models.User{}, err
	}
	if in.Role == "" {
		in.Role = models.RoleViewer
	}
	if err := validateUserInput(&in); err != nil {
		return models.User{}, err
	}

	nu := models.User{
		ID:        common.NewID("user"),
		Name:      in.Name,
		Email:     in.Email,
		Role:      in.Role,
		Area:      in.Area,
		Address:   in.Address,
		WA:        in.WA,
		CreatedBy: actor.Name,
		CreatedAt: s.app.Now().UTC(),
	}
	if e, ok := s.app.Session.Verifier().(session.Enroller); ok {
		h, err := e.Enroll([]byte(session.DemoPassword))
		if err != nil {
			return models.User{}, err
		}
		nu.PasswordHash = h
	}

	err = s.app.Slots.Users.Update(ctx, func(cur []models.User) ([]models.User, error) {
		if models.EmailTaken(cur, nu.Email, "") {
			return nil, common.ErrDuplicateEmail
		}
		return append([]models.User{nu}, cur...), nil
	})
	if err != nil {
		return models.User{}, err
	}
	s.app.Log.Info(ctx, "user added", "user", nu.ID, "by", actor.ID)
	return nu, nil
}

func (s *userService) Edit(ctx context.Context, id string, in UserInput) (models.User, error) {
	actor, err := authorize(s.app, menu.ManageUsers)
	if err != nil {
		return models.User{}, err
	}
	if err := validateUserInput(&in); err != nil {
		return models.User{}, err
	}

	var updated models.User
	err = s.app.Slots.Users.Update(ctx, func(cur []models.User) ([]models.User, error) {
		idx := models.FindByID(cur, id)
		if idx < 0 {
			return nil, common.ErrNotFound
		}
		if models.EmailTaken(cur, in.Email, id) {
			return nil, common.ErrDuplicateEmail
		}
		u := cur[idx]
		u.Name, u.Email, u.Role, u.Area, u.Address, u.WA =
			in.Name, in.Email, in.Role, in.Area, in.Address, in.WA
		cur[idx] = u
		updated = u
		return cur, nil
	})
	if err != nil {
		return models.User{}, err
	}

	s.app.Session.Refresh(ctx)
	s.app.Log.Info(ctx, "user edited", "user", id, "by", actor.ID)
	return updated, nil
}

// Delete removes a user. Administrators cannot delete their own account.
func (s *userService) Delete(ctx context.Context, id string) error {
	actor, err := authorize(s.app, menu.ManageUsers)
	if err != nil {
		return err
	}
	if id == actor.ID {
		return common.NewValidationError("id", "cannot delete the signed-in account")
	}

	err = s.app.Slots.Users.Update(ctx, func(cur []models.User) ([]models.User, error) {
		idx := models.FindByID(cur, id)
		if idx < 0 {
			return nil, common.ErrNotFound
		}
		return append(cur[:idx], cur[idx+1:]...), nil
	})
	if err != nil {
		return err
	}
	s.app.Log.Info(ctx, "user deleted", "user", id, "by", actor.ID)
	return nil
}
