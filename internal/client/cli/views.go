package cli

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/swms/internal/client/menu"
	"github.com/dmitrijs2005/swms/internal/client/models"
	"github.com/dmitrijs2005/swms/internal/client/services"
	"github.com/dmitrijs2005/swms/internal/common"
)

const (
	defaultFeedSize = 10
	defaultLogSize  = 20
	barWidth        = 20
)

// views renders each menu when it is opened.
var views = map[menu.ID]func(a *App, ctx context.Context, args []string) error{
	menu.Dashboard:    (*App).dashboardView,
	menu.Pengangkutan: (*App).collectionView,
	menu.Analisis:     (*App).showStats,
	menu.Ulasan:       (*App).showReviews,
	menu.Config:       (*App).showHardware,
	menu.Logs:         (*App).showHardwareLogs,
	menu.Users:        (*App).listUsers,
	menu.CMS:          (*App).showCMS,
	menu.Broadcast:    (*App).showBroadcasts,
	menu.Profile:      (*App).showProfile,
}

func (a *App) dashboardView(ctx context.Context, args []string) error {
	if err := a.showBins(ctx, nil); err != nil {
		return err
	}
	return a.showFeed(ctx, nil)
}

func (a *App) collectionView(ctx context.Context, args []string) error {
	if err := a.showBins(ctx, nil); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Use 'reset <bin>' or 'reset all' after collection.")
	return nil
}

func (a *App) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
}

// currentLocation returns the selected location, picking the session's
// default on first use.
func (a *App) currentLocation() (string, error) {
	if a.location != "" {
		return a.location, nil
	}
	loc, err := a.activity.DefaultLocation()
	if err != nil {
		return "", err
	}
	a.location = loc
	return loc, nil
}

// countArg parses an optional positive count argument.
func countArg(args []string, def int) (int, error) {
	if len(args) == 0 {
		return def, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		return 0, common.NewValidationError("n", "must be a positive number")
	}
	return n, nil
}

func bar(pct int) string {
	pct = max(0, min(pct, 100))
	filled := pct * barWidth / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", barWidth-filled) + "]"
}

func (a *App) showBins(ctx context.Context, args []string) error {
	loc := strings.Join(args, " ")
	if loc == "" {
		var err error
		if loc, err = a.currentLocation(); err != nil {
			return err
		}
	}
	levels, err := a.activity.Bins(loc)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Bins at %s\n", loc)
	tw := a.table()
	for _, b := range models.AllBins {
		fmt.Fprintf(tw, "  %s\t%s\t%3d%%\n", b, bar(levels[b]), levels[b])
	}
	return tw.Flush()
}

func (a *App) showFeed(ctx context.Context, args []string) error {
	n, err := countArg(args, defaultFeedSize)
	if err != nil {
		return err
	}
	loc, err := a.currentLocation()
	if err != nil {
		return err
	}
	logs, err := a.activity.List(loc, n)
	if err != nil {
		return err
	}
	if len(logs) == 0 {
		fmt.Fprintln(a.out, "No activity yet.")
		return nil
	}

	tw := a.table()
	for _, l := range logs {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", l.At.Format("2006-01-02 15:04"), l.Location, l.Type, l.Message)
	}
	return tw.Flush()
}

func (a *App) selectLocation(ctx context.Context, args []string) error {
	locs := a.activity.Locations()
	if len(args) == 0 {
		cur, _ := a.currentLocation()
		for _, l := range locs {
			mark := " "
			if l == cur {
				mark = "*"
			}
			fmt.Fprintf(a.out, "%s %s\n", mark, l)
		}
		return nil
	}

	loc := strings.Join(args, " ")
	if !slices.Contains(locs, loc) {
		return common.NewValidationError("location", fmt.Sprintf("%q is not a known location", loc))
	}
	a.location = loc
	a.core.Notify.Info("Location: " + loc)
	return nil
}

func (a *App) addDemoLog(ctx context.Context, args []string) error {
	loc, err := a.currentLocation()
	if err != nil {
		return err
	}
	entry, err := a.activity.AddDemoLog(ctx, loc)
	if err != nil {
		return err
	}
	a.core.Notify.Success(entry.Message)
	return nil
}

func (a *App) resetBins(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return common.NewValidationError("bin", "usage: reset <plastik|kertas|kaleng|all>")
	}
	loc, err := a.currentLocation()
	if err != nil {
		return err
	}

	var entry models.ActivityLog
	if strings.EqualFold(args[0], "all") {
		entry, err = a.activity.ResetAll(ctx, loc)
	} else {
		entry, err = a.activity.ResetBin(ctx, loc, models.Bin(strings.ToLower(args[0])))
	}
	if err != nil {
		return err
	}
	a.core.Notify.Success(entry.Message)
	return nil
}

func (a *App) showStats(ctx context.Context, args []string) error {
	dataset, err := a.records.List(models.SlotDataset)
	if err != nil {
		return err
	}
	loc, err := a.currentLocation()
	if err != nil {
		return err
	}
	logs, err := a.activity.List(loc, 0)
	if err != nil {
		return err
	}

	byType := map[models.LogType]int{}
	byLocation := map[string]int{}
	for _, l := range logs {
		byType[l.Type]++
		byLocation[l.Location]++
	}

	tw := a.table()
	fmt.Fprintf(tw, "dataset entries\t%d\n", len(dataset))
	fmt.Fprintf(tw, "activity entries\t%d\n", len(logs))
	for _, t := range []models.LogType{models.LogEvent, models.LogStatus, models.LogInfo} {
		fmt.Fprintf(tw, "  %s\t%d\n", t, byType[t])
	}
	locs := make([]string, 0, len(byLocation))
	for l := range byLocation {
		locs = append(locs, l)
	}
	sort.Strings(locs)
	for _, l := range locs {
		fmt.Fprintf(tw, "  @%s\t%d\n", l, byLocation[l])
	}
	return tw.Flush()
}

// text returns the first non-empty string among the keys of r.
func text(r models.Record, keys ...string) string {
	for _, k := range keys {
		if v, ok := r[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func hidden(r models.Record) bool {
	h, _ := r["hidden"].(bool)
	return h
}

func (a *App) showReviews(ctx context.Context, args []string) error {
	reviews, err := a.records.List(models.SlotReviews)
	if err != nil {
		return err
	}
	moderator := menu.Can(a.core.Session.Current(), menu.ModerateReviews)

	shown := 0
	for _, r := range reviews {
		if hidden(r) && !moderator {
			continue
		}
		shown++
		mark := ""
		if hidden(r) {
			mark = " [hidden]"
		}
		fmt.Fprintf(a.out, "%v/5  %s%s\n", r["rating"], text(r, "text"), mark)
		replies, _ := r["replies"].([]any)
		for _, raw := range replies {
			rep, ok := raw.(map[string]any)
			if !ok || (hidden(rep) && !moderator) {
				continue
			}
			fmt.Fprintf(a.out, "      > %s\n", text(rep, "text"))
		}
	}
	if shown == 0 {
		fmt.Fprintln(a.out, "No reviews yet.")
	}
	return nil
}

func (a *App) showHardware(ctx context.Context, args []string) error {
	hw, err := a.hardware.Config()
	if err != nil {
		return err
	}

	tw := a.table()
	fmt.Fprintf(tw, "location\t%s\n", hw.Location)
	fmt.Fprintf(tw, "servo1\t%d°\n", hw.Servo1)
	fmt.Fprintf(tw, "servo2\t%d°\n", hw.Servo2)
	fmt.Fprintf(tw, "lcd1\t%q\n", hw.LCDLine1)
	fmt.Fprintf(tw, "lcd2\t%q\n", hw.LCDLine2)
	for _, b := range models.AllBins {
		u := hw.Ultrasonic[b]
		fmt.Fprintf(tw, "%s\tempty %d cm, full %d cm\n", b, u.Empty, u.Full)
	}
	return tw.Flush()
}

func (a *App) setHardware(ctx context.Context, args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(a.out, "Usage: hwset <field> <value>")
		fmt.Fprintln(a.out, "Fields: "+strings.Join(services.HardwareFields, ", "))
		return nil
	}
	if _, err := a.hardware.Set(ctx, args[0], strings.Join(args[1:], " ")); err != nil {
		return err
	}
	a.core.Notify.Success("Hardware config saved.")
	return nil
}

func (a *App) randomizeHardware(ctx context.Context, args []string) error {
	if _, err := a.hardware.Randomize(ctx); err != nil {
		return err
	}
	a.core.Notify.Success("Sensor calibration randomised.")
	return a.showHardware(ctx, nil)
}

func (a *App) testBuzzer(ctx context.Context, args []string) error {
	if err := a.hardware.TestBuzzer(ctx); err != nil {
		return err
	}
	a.core.Notify.Info("Buzzer test sent.")
	return nil
}

func (a *App) restartDevice(ctx context.Context, args []string) error {
	if err := a.hardware.Restart(ctx); err != nil {
		return err
	}
	a.core.Notify.Info("Restart sent.")
	return nil
}

func (a *App) showHardwareLogs(ctx context.Context, args []string) error {
	n, err := countArg(args, defaultLogSize)
	if err != nil {
		return err
	}
	logs, err := a.hardware.Logs(n)
	if err != nil {
		return err
	}
	if len(logs) == 0 {
		fmt.Fprintln(a.out, "Device log is empty.")
		return nil
	}
	for _, l := range logs {
		fmt.Fprintf(a.out, "  %s  %s\n", l.At.Format("2006-01-02 15:04:05"), l.Msg)
	}
	return nil
}

func (a *App) showCMS(ctx context.Context, args []string) error {
	cards, err := a.records.List(models.SlotCMSLogin)
	if err != nil {
		return err
	}
	team, err := a.records.List(models.SlotTeam)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Login cards:")
	tw := a.table()
	for _, c := range cards {
		fmt.Fprintf(tw, "  %s\t%s\n", text(c, "title"), text(c, "status"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Team:")
	tw = a.table()
	for _, m := range team {
		name := text(m, "name")
		if hidden(m) {
			name += " [hidden]"
		}
		fmt.Fprintf(tw, "  %s\t%s\n", name, text(m, "motivasi"))
	}
	return tw.Flush()
}

func (a *App) showBroadcasts(ctx context.Context, args []string) error {
	templates, err := a.records.List(models.SlotBroadcastTemplates)
	if err != nil {
		return err
	}
	sent, err := a.records.List(models.SlotBroadcasts)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Templates:")
	tw := a.table()
	for _, t := range templates {
		fmt.Fprintf(tw, "  %s\t%s\n", text(t, "label"), text(t, "text"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Sent: %d\n", len(sent))
	for _, b := range sent {
		fmt.Fprintf(a.out, "  %s\n", text(b, "title", "label", "text", "message"))
	}
	return nil
}

func (a *App) showProfile(ctx context.Context, args []string) error {
	p, err := a.profile.Get()
	if err != nil {
		return err
	}
	tw := a.table()
	fmt.Fprintf(tw, "name\t%s\n", p.Name)
	fmt.Fprintf(tw, "email\t%s\n", p.Email)
	fmt.Fprintf(tw, "wa\t%s\n", p.WA)
	fmt.Fprintf(tw, "address\t%s\n", p.Address)
	fmt.Fprintf(tw, "theme\t%s\n", a.profile.Theme())
	return tw.Flush()
}

func (a *App) setProfile(ctx context.Context, args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(a.out, "Usage: profileset <name|wa|address> <value>")
		return nil
	}
	if _, err := a.profile.Set(ctx, args[0], strings.Join(args[1:], " ")); err != nil {
		return err
	}
	a.core.Notify.Success("Profile saved.")
	return nil
}

func (a *App) setTheme(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Theme: "+a.profile.Theme())
		return nil
	}
	if err := a.profile.SetTheme(ctx, args[0]); err != nil {
		return err
	}
	a.core.Notify.Success("Theme: " + a.profile.Theme())
	return nil
}

func (a *App) exportSlots(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: export <slot|all>")
		fmt.Fprintln(a.out, "Slots: "+strings.Join(models.AllSlots, ", "))
		return nil
	}

	var paths []string
	if strings.EqualFold(args[0], "all") {
		var err error
		if paths, err = a.export.ExportAll(ctx); err != nil {
			return err
		}
	} else {
		p, err := a.export.Export(ctx, args[0])
		if err != nil {
			return err
		}
		paths = []string{p}
	}

	for _, p := range paths {
		fmt.Fprintln(a.out, "  "+p)
	}
	a.core.Notify.Success(fmt.Sprintf("Exported %d slot(s).", len(paths)))
	return nil
}

func (a *App) resetDemo(ctx context.Context, args []string) error {
	answer, err := getSimpleText(a.reader, "Restore all demo data? Type YES to confirm", a.out)
	if err != nil {
		return err
	}
	if answer != "YES" {
		a.core.Notify.Info("Reset cancelled.")
		return nil
	}

	if err := a.maint.ResetDemoData(ctx); err != nil {
		return err
	}
	a.location = ""
	if !a.isLoggedIn() {
		a.view = ""
	}
	a.core.Notify.Success("Demo data restored.")
	return nil
}
