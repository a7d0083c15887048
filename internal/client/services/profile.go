package services

import (
	"context"
	"slices"
	"strings"

	"github.com/dmitrijs2005/swms/internal/client/appctx"
	"github.com/dmitrijs2005/swms/internal/client/models"
	"github.com/dmitrijs2005/swms/internal/common"
)

// Profile is the personal card shown on the profile view. Profiles are kept
// per email address in the swms_profiles slot.
type Profile struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	WA      string `json:"wa"`
	Address string `json:"address"`
}

var profileFields = []string{"name", "wa", "address"}

var themes = []string{models.ThemeDevice, models.ThemeLight, models.ThemeDark}

type ProfileService interface {
	Get() (Profile, error)
	Set(ctx context.Context, field, value string) (Profile, error)
	Theme() string
	SetTheme(ctx context.Context, theme string) error
}

type profileService struct {
	app *appctx.App
}

func NewProfileService(app *appctx.App) ProfileService {
	return &profileService{app: app}
}

func (s *profileService) Get() (Profile, error) {
	sess, err := requireSession(s.app)
	if err != nil {
		return Profile{}, err
	}
	fallback := Profile{Name: sess.Name, Email: sess.Email}
	return profileFrom(s.app.Slots.Profiles.Get()[sess.Email], fallback), nil
}

// profileFrom reads a stored profile record. The slot is shared with other
// clients, so missing or oddly typed fields fall back to the session values.
func profileFrom(raw any, fallback Profile) Profile {
	rec, ok := raw.(map[string]any)
	if !ok {
		return fallback
	}
	str := func(k, def string) string {
		if v, ok := rec[k].(string); ok {
			return v
		}
		return def
	}
	return Profile{
		Name:    str("name", fallback.Name),
		Email:   str("email", fallback.Email),
		WA:      str("wa", fallback.WA),
		Address: str("address", fallback.Address),
	}
}

func (s *profileService) Set(ctx context.Context, field, value string) (Profile, error) {
	sess, err := requireSession(s.app)
	if err != nil {
		return Profile{}, err
	}
	field = strings.ToLower(strings.TrimSpace(field))
	if !slices.Contains(profileFields, field) {
		return Profile{}, common.NewValidationError(field, "is not a profile field")
	}
	if field == "name" && strings.TrimSpace(value) == "" {
		return Profile{}, common.NewValidationError("name", "is required")
	}

	var saved Profile
	err = s.app.Slots.Profiles.Update(ctx, func(cur map[string]any) (map[string]any, error) {
		if cur == nil {
			cur = map[string]any{}
		}
		p := profileFrom(cur[sess.Email], Profile{Name: sess.Name, Email: sess.Email})
		switch field {
		case "name":
			p.Name = strings.TrimSpace(value)
		case "wa":
			p.WA = strings.TrimSpace(value)
		case "address":
			p.Address = strings.TrimSpace(value)
		}
		cur[sess.Email] = map[string]any{"name": p.Name, "email": p.Email, "wa": p.WA, "address": p.Address}
		saved = p
		return cur, nil
	})
	if err != nil {
		return Profile{}, err
	}
	return saved, nil
}

func (s *profileService) Theme() string {
	return s.app.Slots.Theme.Get()
}

func (s *profileService) SetTheme(ctx context.Context, theme string) error {
	theme = strings.ToLower(strings.TrimSpace(theme))
	if !slices.Contains(themes, theme) {
		return common.NewValidationError("theme", "must be device, light or dark")
	}
	s.app.Slots.Theme.Set(ctx, theme)
	return nil
}
