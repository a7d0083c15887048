package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/swms/internal/client/menu"
	"github.com/dmitrijs2005/swms/internal/common"
)

// command is a view command. A command bound to a view can only run when
// the session may open that view; view == "" means any signed-in session.
type command struct {
	name string
	args string
	view menu.ID
	help string
	run  func(a *App, ctx context.Context, args []string) error
}

var commands = []command{
	{"bins", "[location]", menu.Dashboard, "bin fill levels", (*App).showBins},
	{"feed", "[n]", menu.Dashboard, "recent activity", (*App).showFeed},
	{"loc", "[location]", menu.Dashboard, "list or select the location", (*App).selectLocation},
	{"addlog", "", menu.Dashboard, "add a demo sensor event", (*App).addDemoLog},

	{"reset", "<bin|all>", menu.Pengangkutan, "empty a bin after collection", (*App).resetBins},

	{"stats", "", menu.Analisis, "activity and dataset summary", (*App).showStats},
	{"reviews", "", menu.Ulasan, "reviews and replies", (*App).showReviews},

	{"hw", "", menu.Config, "show hardware config", (*App).showHardware},
	{"hwset", "<field> <value>", menu.Config, "change a hardware field", (*App).setHardware},
	{"hwrandom", "", menu.Config, "randomise sensor calibration", (*App).randomizeHardware},
	{"buzzer", "", menu.Config, "test the buzzer", (*App).testBuzzer},
	{"restart", "", menu.Config, "restart the device", (*App).restartDevice},

	{"hwlogs", "[n]", menu.Logs, "device console log", (*App).showHardwareLogs},

	{"users", "[role] [name|email|role] [desc]", menu.Users, "list users", (*App).listUsers},
	{"useradd", "", menu.Users, "add a user", (*App).addUser},
	{"useredit", "<id>", menu.Users, "edit a user", (*App).editUser},
	{"userdel", "<id>", menu.Users, "delete a user", (*App).deleteUser},

	{"cms", "", menu.CMS, "login cards and team", (*App).showCMS},
	{"broadcasts", "", menu.Broadcast, "templates and sent broadcasts", (*App).showBroadcasts},

	{"profile", "", menu.Profile, "show your profile", (*App).showProfile},
	{"profileset", "<field> <value>", menu.Profile, "change a profile field", (*App).setProfile},
	{"theme", "[device|light|dark]", menu.Profile, "show or change the theme", (*App).setTheme},

	{"export", "<slot|all>", "", "write slot JSON to the export dir", (*App).exportSlots},
	{"reset-demo", "", "", "restore the demo data", (*App).resetDemo},
}

func lookupCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func (a *App) Exec(ctx context.Context, name string, args []string) error {
	c, ok := lookupCommand(name)
	if !ok {
		return errUnknownCommand
	}
	s := a.core.Session.Current()
	if s == nil {
		return errNotLoggedIn
	}
	if c.view != "" {
		if !menu.CanNavigate(s, c.view) {
			return fmt.Errorf("%w: %s is not available to %s", common.ErrForbidden, c.view, s.Role.Label())
		}
		a.view = c.view
	}
	return c.run(a, ctx, args)
}

func (a *App) Help(ctx context.Context) error {
	s := a.core.Session.Current()
	if s == nil {
		fmt.Fprintln(a.out, "Available commands: register, login, status, toasts [clear], exit")
		return nil
	}

	fmt.Fprintln(a.out, "Available commands: menu, open <menu>, status, toasts [clear], logout, exit")
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, c := range commands {
		if c.view != "" && !menu.CanNavigate(s, c.view) {
			continue
		}
		where := string(c.view)
		if where == "" {
			where = "-"
		}
		fmt.Fprintf(tw, "  %s %s\t%s\t%s\n", c.name, c.args, where, c.help)
	}
	return tw.Flush()
}

// Menu lists the menus the session may open; the open one is starred.
func (a *App) Menu(ctx context.Context) error {
	s := a.core.Session.Current()
	if s == nil {
		return errNotLoggedIn
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for _, d := range menu.Visible(s) {
		mark := " "
		if d.ID == a.view {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s %s\t%s\n", mark, d.ID, d.Label)
	}
	return tw.Flush()
}

// Open navigates to a menu and renders its view.
func (a *App) Open(ctx context.Context, id string) error {
	s := a.core.Session.Current()
	if s == nil {
		return errNotLoggedIn
	}
	d, ok := menu.Lookup(menu.ID(strings.ToLower(id)))
	if !ok {
		return fmt.Errorf("menu %q: %w", id, common.ErrNotFound)
	}
	if !menu.CanNavigate(s, d.ID) {
		return fmt.Errorf("%w: %s is not available to %s", common.ErrForbidden, d.ID, s.Role.Label())
	}

	a.view = d.ID
	fmt.Fprintf(a.out, "== %s ==\n", d.Label)
	return views[d.ID](a, ctx, nil)
}

func (a *App) Status(ctx context.Context) error {
	st := a.maint.Status(ctx)
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)

	if s := a.core.Session.Current(); s != nil {
		fmt.Fprintf(tw, "session\t%s\n", a.core.Session.State())
		fmt.Fprintf(tw, "user\t%s <%s>\n", s.Name, s.Email)
		fmt.Fprintf(tw, "role\t%s\n", s.Role.Label())
		if a.view != "" {
			fmt.Fprintf(tw, "view\t%s\n", a.view)
		}
		if a.location != "" {
			fmt.Fprintf(tw, "location\t%s\n", a.location)
		}
	} else {
		fmt.Fprintf(tw, "session\t%s\n", a.core.Session.State())
	}

	fmt.Fprintf(tw, "storage\t%s (%s)\n", st.Mode, a.core.Config.Storage)
	if st.Stored >= 0 {
		fmt.Fprintf(tw, "slots\t%d bound, %d stored\n", st.Bound, st.Stored)
	} else {
		fmt.Fprintf(tw, "slots\t%d bound\n", st.Bound)
	}
	if len(st.StrayKeys) > 0 {
		fmt.Fprintf(tw, "stray\t%s\n", strings.Join(st.StrayKeys, ", "))
	}
	if len(st.DirtyKeys) > 0 {
		fmt.Fprintf(tw, "unsaved\t%s\n", strings.Join(st.DirtyKeys, ", "))
	}
	fmt.Fprintf(tw, "toasts\t%d active, shown for %s\n", len(a.core.Notify.Active()), st.ToastTTL)
	fmt.Fprintf(tw, "clock\t%s\n", a.clockText())
	return tw.Flush()
}

// Toasts lists the notifications that have not expired yet. With "clear"
// it dismisses them instead.
func (a *App) Toasts(ctx context.Context, args []string) error {
	active := a.core.Notify.Active()
	if len(args) > 0 {
		if !strings.EqualFold(args[0], "clear") {
			return common.NewValidationError("toasts", "accepts only clear")
		}
		for _, t := range active {
			a.core.Notify.Remove(t.ID)
		}
		fmt.Fprintf(a.out, "Dismissed %d notifications.\n", len(active))
		return nil
	}
	if len(active) == 0 {
		fmt.Fprintln(a.out, "No notifications.")
		return nil
	}
	for _, t := range active {
		fmt.Fprintf(a.out, "%s [%s] %s\n", t.At.Format(clockLayout), strings.ToUpper(string(t.Kind)), t.Message)
	}
	return nil
}
