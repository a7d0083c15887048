package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/swms/internal/client/models"
	"github.com/dmitrijs2005/swms/internal/client/services"
	"github.com/dmitrijs2005/swms/internal/common"
)

// parseUserQuery reads "[role] [name|email|role] [desc]" in any order.
func parseUserQuery(args []string) (services.UserQuery, error) {
	var q services.UserQuery
	for _, arg := range args {
		switch v := strings.ToLower(arg); v {
		case "desc":
			q.Desc = true
		case "asc":
			q.Desc = false
		case string(services.SortByName), string(services.SortByEmail), string(services.SortByRole):
			q.Sort = services.SortKey(v)
		case "all":
			q.Role = ""
		default:
			r, err := models.ParseRole(v)
			if err != nil {
				return q, common.NewValidationError("filter", fmt.Sprintf("%q is not a role or sort key", arg))
			}
			q.Role = r
		}
	}
	return q, nil
}

func (a *App) listUsers(ctx context.Context, args []string) error {
	q, err := parseUserQuery(args)
	if err != nil {
		return err
	}
	rows, err := a.users.List(q)
	if err != nil {
		return err
	}
	c, err := a.users.Counts()
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "All %d | Admin %d | Petugas %d | Pelihat %d\n", c.All, c.Admin, c.Petugas, c.Viewer)
	tw := a.table()
	fmt.Fprintln(tw, "  ID\tNAME\tEMAIL\tROLE\tAREA\tCREATED BY")
	for _, u := range rows {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role.Label(), u.Area, u.CreatedBy)
	}
	return tw.Flush()
}

// promptUser fills a UserInput from the operator, offering cur's values as
// defaults.
func (a *App) promptUser(cur services.UserInput) (services.UserInput, error) {
	in := cur
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Name", &in.Name},
		{"Email", &in.Email},
		{"Area", &in.Area},
		{"Address", &in.Address},
		{"WhatsApp number", &in.WA},
	}
	for _, f := range fields {
		var (
			v   string
			err error
		)
		if *f.dst != "" {
			v, err = GetTextWithDefault(a.reader, f.prompt, *f.dst, a.out)
		} else {
			v, err = getSimpleText(a.reader, f.prompt, a.out)
		}
		if err != nil {
			return in, err
		}
		*f.dst = v
	}

	def := cur.Role
	if def == "" {
		def = models.RoleViewer
	}
	role, err := GetTextWithDefault(a.reader, "Role (admin, petugas, viewer)", string(def), a.out)
	if err != nil {
		return in, err
	}
	if in.Role, err = models.ParseRole(role); err != nil {
		return in, common.NewValidationError("role", "must be admin, petugas or viewer")
	}
	return in, nil
}

func (a *App) addUser(ctx context.Context, args []string) error {
	in, err := a.promptUser(services.UserInput{})
	if err != nil {
		return err
	}
	u, err := a.users.Add(ctx, in)
	if err != nil {
		return err
	}
	a.core.Notify.Success(fmt.Sprintf("User %s added.", u.Email))
	return nil
}

func (a *App) editUser(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return common.NewValidationError("id", "usage: useredit <id>")
	}
	rows, err := a.users.List(services.UserQuery{})
	if err != nil {
		return err
	}
	idx := models.FindByID(rows, args[0])
	if idx < 0 {
		return fmt.Errorf("user %q: %w", args[0], common.ErrNotFound)
	}

	u := rows[idx]
	in, err := a.promptUser(services.UserInput{
		Name: u.Name, Email: u.Email, Role: u.Role, Area: u.Area, Address: u.Address, WA: u.WA,
	})
	if err != nil {
		return err
	}
	if _, err := a.users.Edit(ctx, u.ID, in); err != nil {
		return err
	}
	a.core.Notify.Success(fmt.Sprintf("User %s updated.", in.Email))
	return nil
}

func (a *App) deleteUser(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return common.NewValidationError("id", "usage: userdel <id>")
	}
	if err := a.users.Delete(ctx, args[0]); err != nil {
		return err
	}
	a.core.Notify.Success("User deleted.")
	return nil
}
