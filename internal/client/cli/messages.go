package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/swms/internal/common"
)

var (
	errNotLoggedIn     = fmt.Errorf("%w: log in first", common.ErrForbidden)
	errAlreadyLoggedIn = fmt.Errorf("%w: log out first", common.ErrForbidden)
)

// describe turns an error into the text of an error toast.
func describe(err error) string {
	var ve *common.ValidationError
	switch {
	case errors.As(err, &ve):
		if ve.Field == "" {
			return ve.Reason
		}
		return fmt.Sprintf("%s %s.", ve.Field, ve.Reason)
	case errors.Is(err, common.ErrAccountNotFound):
		return "Account not found."
	case errors.Is(err, common.ErrInvalidCredential):
		return "Wrong password."
	case errors.Is(err, common.ErrDuplicateEmail):
		return "Email is already registered."
	case errors.Is(err, errNotLoggedIn):
		return "Please log in first."
	case errors.Is(err, errAlreadyLoggedIn):
		return "Already logged in. Log out first."
	case errors.Is(err, common.ErrForbidden):
		return "Access denied: " + err.Error()
	case errors.Is(err, common.ErrNotFound):
		return "Not found: " + err.Error()
	default:
		return err.Error()
	}
}

func (a *App) report(ctx context.Context, err error) {
	a.core.Log.Debug(ctx, "command failed", "err", err)
	a.core.Notify.Error(describe(err))
}
