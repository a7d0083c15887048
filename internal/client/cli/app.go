package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/swms/internal/client/appctx"
	"github.com/dmitrijs2005/swms/internal/client/menu"
	"github.com/dmitrijs2005/swms/internal/client/notify"
	"github.com/dmitrijs2005/swms/internal/client/services"
)

const clockLayout = "15:04:05"

type App struct {
	core     *appctx.App
	users    services.UserService
	hardware services.HardwareService
	activity services.ActivityService
	profile  services.ProfileService
	records  services.RecordService
	export   services.ExportService
	maint    services.MaintenanceService

	reader *bufio.Reader
	out    io.Writer

	// view is the menu the operator last opened; location is the location
	// selected on the dashboard.
	view     menu.ID
	location string

	clockMu sync.RWMutex
	clock   string
}

// NewApp builds the terminal front end over core. Commands read from in and
// print to out.
func NewApp(core *appctx.App, in io.Reader, out io.Writer) *App {
	a := &App{
		core:     core,
		users:    services.NewUserService(core),
		hardware: services.NewHardwareService(core),
		activity: services.NewActivityService(core),
		profile:  services.NewProfileService(core),
		records:  services.NewRecordService(core),
		export:   services.NewExportService(core),
		maint:    services.NewMaintenanceService(core),
		reader:   bufio.NewReader(in),
		out:      out,
	}
	a.tick()
	return a
}

// Run starts the display clock and blocks in the REPL until the operator
// exits, stdin is exhausted or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.core.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartClock(ctx, a.core.Config.ClockInterval)

	fmt.Fprintln(a.out, "SWMS dashboard. Type 'help' for commands.")

	// A blocked stdin read cannot observe ctx, so the loop runs on its own
	// goroutine and Run returns on whichever finishes first.
	done := make(chan struct{})
	go func() {
		defer close(done)
		runREPL(ctx, a, a.statusLine, a.reader)
	}()

	select {
	case <-done:
	case <-ctx.Done():
	}
}

func (a *App) isLoggedIn() bool {
	return a.core.Session.Current() != nil
}

// StartClock refreshes the clock shown in the prompt every interval until
// ctx is done.
func (a *App) StartClock(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.tick()
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) tick() {
	now := a.core.Now().Format(clockLayout)
	a.clockMu.Lock()
	a.clock = now
	a.clockMu.Unlock()
}

func (a *App) clockText() string {
	a.clockMu.RLock()
	defer a.clockMu.RUnlock()
	return a.clock
}

// statusLine is shown in the prompt: who is signed in, the open view, the
// storage mode and the clock.
func (a *App) statusLine() string {
	parts := make([]string, 0, 4)

	if s := a.core.Session.Current(); s != nil {
		who := fmt.Sprintf("%s (%s)", s.Name, s.Role.Label())
		if a.view != "" {
			who += " @" + string(a.view)
		}
		parts = append(parts, who)
	} else {
		parts = append(parts, "guest")
	}

	parts = append(parts, "storage: "+string(a.core.Store.Mode()))
	parts = append(parts, a.clockText())
	return strings.Join(parts, " | ")
}

// ToastSink prints every toast to w as it is pushed.
func ToastSink(w io.Writer) notify.Sink {
	return func(t notify.Toast) {
		fmt.Fprintf(w, "[%s] %s\n", strings.ToUpper(string(t.Kind)), t.Message)
	}
}
