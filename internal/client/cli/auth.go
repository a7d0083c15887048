package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/swms/internal/client/menu"
	"github.com/dmitrijs2005/swms/internal/client/session"
	"github.com/dmitrijs2005/swms/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the registration form and creates a viewer account.
// The new account is not signed in. Password buffers are wiped before
// returning. It is refused while a session is open.
func (a *App) Register(ctx context.Context) error {
	if a.isLoggedIn() {
		return errAlreadyLoggedIn
	}
	var req session.RegisterRequest
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Full name", &req.Name},
		{"Address", &req.Address},
		{"WhatsApp number", &req.WA},
		{"Email", &req.Email},
	}
	for _, f := range fields {
		v, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	req.Password, req.PasswordConfirm = password, confirm
	if _, err := a.core.Session.Register(ctx, req); err != nil {
		return err
	}

	a.core.Notify.Success("Registration complete. You can log in now.")
	return nil
}

// Login prompts for credentials and opens the first menu the role may see.
// It is refused while a session is open; log out first.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		return errAlreadyLoggedIn
	}
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.core.Session.Login(ctx, email, password)
	if err != nil {
		return err
	}

	a.location = ""
	a.view, _ = menu.Home(&s)
	a.core.Notify.Success(fmt.Sprintf("Welcome, %s (%s).", s.Name, s.Role.Label()))
	return a.Menu(ctx)
}

// Logout ends the session and forgets the open view. Logging out twice is
// harmless.
func (a *App) Logout(ctx context.Context) error {
	a.core.Session.Logout(ctx)
	a.view, a.location = "", ""
	a.core.Notify.Info("Logged out.")
	return nil
}
