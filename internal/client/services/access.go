package services

import (
	"fmt"

	"github.com/dmitrijs2005/swms/internal/client/appctx"
	"github.com/dmitrijs2005/swms/internal/client/menu"
	"github.com/dmitrijs2005/swms/internal/client/session"
	"github.com/dmitrijs2005/swms/internal/common"
)

// requireSession returns the signed-in session or ErrForbidden.
func requireSession(app *appctx.App) (*session.Session, error) {
	s := app.Session.Current()
	if s == nil {
		return nil, fmt.Errorf("%w: not logged in", common.ErrForbidden)
	}
	return s, nil
}

// authorize returns the signed-in session if it holds c.
func authorize(app *appctx.App, c menu.Capability) (*session.Session, error) {
	s, err := requireSession(app)
	if err != nil {
		return nil, err
	}
	if !menu.Can(s, c) {
		return nil, fmt.Errorf("%w: %s requires %s", common.ErrForbidden, s.Role.Label(), c)
	}
	return s, nil
}

// prepend adds v in front of list and trims the result to max entries.
func prepend[T any](list []T, v T, max int) []T {
	out := append([]T{v}, list...)
	if max > 0 && len(out) > max {
		out = out[:max]
	}
	return out
}
