package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/swms/internal/client/menu"
	"github.com/dmitrijs2005/swms/internal/client/models"
	"github.com/dmitrijs2005/swms/internal/client/notify"
	"github.com/dmitrijs2005/swms/internal/common"
)

func TestStatusLine(t *testing.T) {
	a, _ := newTestCLI(t, "")
	assert.Equal(t, "guest | storage: persistent | 08:00:00", a.statusLine())

	signIn(t, a, models.DemoAdminEmail)
	a.view = menu.Users
	assert.Equal(t, "Admin Utama (ADMIN) @users | storage: persistent | 08:00:00", a.statusLine())
}

func TestStartClock(t *testing.T) {
	a, _ := newTestCLI(t, "")

	var ticks atomic.Int64
	a.core.Now = func() time.Time {
		return fixedNow.Add(time.Duration(ticks.Add(1)) * time.Second)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		a.StartClock(ctx, 5*time.Millisecond)
	}()

	require.Eventually(t, func() bool {
		return a.clockText() != "08:00:00"
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("clock did not stop")
	}
}

func TestToastSink(t *testing.T) {
	var buf bytes.Buffer
	n := notify.New(time.Minute, ToastSink(&buf))
	n.Error("Wrong password.")
	n.Success("Saved.")
	assert.Equal(t, "[ERROR] Wrong password.\n[SUCCESS] Saved.\n", buf.String())
}

func TestExec_Gating(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestCLI(t, "")

	require.ErrorIs(t, a.Exec(ctx, "nope", nil), errUnknownCommand)
	require.ErrorIs(t, a.Exec(ctx, "users", nil), errNotLoggedIn)

	signIn(t, a, models.DemoViewerEmail)
	err := a.Exec(ctx, "users", nil)
	require.ErrorIs(t, err, common.ErrForbidden)
	assert.Empty(t, a.view, "refused command does not navigate")

	err = a.Exec(ctx, "reset", []string{"all"})
	require.ErrorIs(t, err, common.ErrForbidden)

	require.NoError(t, a.Exec(ctx, "reviews", nil))
	assert.Equal(t, menu.Ulasan, a.view)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	a, out := newTestCLI(t, "")

	require.ErrorIs(t, a.Open(ctx, "config"), errNotLoggedIn)

	signIn(t, a, models.DemoPetugasEmail)
	require.ErrorIs(t, a.Open(ctx, "nowhere"), common.ErrNotFound)
	require.ErrorIs(t, a.Open(ctx, "config"), common.ErrForbidden)

	require.NoError(t, a.Open(ctx, "Pengangkutan"))
	assert.Equal(t, menu.Pengangkutan, a.view)
	assert.Contains(t, out.String(), "== Pengangkutan ==")
	assert.Contains(t, out.String(), "Bins at LOK-001")
}

func TestOpen_EveryVisibleMenuRenders(t *testing.T) {
	ctx := context.Background()
	for _, email := range []string{models.DemoAdminEmail, models.DemoPetugasEmail, models.DemoViewerEmail} {
		t.Run(email, func(t *testing.T) {
			a, _ := newTestCLI(t, "")
			signIn(t, a, email)
			for _, d := range menu.Visible(a.core.Session.Current()) {
				require.NoError(t, a.Open(ctx, string(d.ID)), d.ID)
			}
		})
	}
}

func TestMenu_ListsVisibleOnly(t *testing.T) {
	a, out := newTestCLI(t, "")
	signIn(t, a, models.DemoViewerEmail)
	a.view = menu.Profile

	require.NoError(t, a.Menu(context.Background()))
	s := out.String()
	assert.Contains(t, s, "* profile")
	assert.Contains(t, s, "  dashboard")
	assert.NotContains(t, s, "users")
	assert.NotContains(t, s, "pengangkutan")
}

func TestHelp(t *testing.T) {
	ctx := context.Background()
	a, out := newTestCLI(t, "")

	require.NoError(t, a.Help(ctx))
	assert.Contains(t, out.String(), "register, login")

	out.Reset()
	signIn(t, a, models.DemoViewerEmail)
	require.NoError(t, a.Help(ctx))
	assert.Contains(t, out.String(), "reviews")
	assert.NotContains(t, out.String(), "useradd")
}

func TestStatusAndToasts(t *testing.T) {
	ctx := context.Background()
	a, out := newTestCLI(t, "")

	require.NoError(t, a.Toasts(ctx, nil))
	assert.Contains(t, out.String(), "No notifications.")

	signIn(t, a, models.DemoAdminEmail)
	a.core.Notify.Info("hello")
	out.Reset()

	require.NoError(t, a.Status(ctx))
	require.NoError(t, a.Toasts(ctx, nil))
	s := out.String()
	assert.Contains(t, s, "logged-in")
	assert.Contains(t, s, "Admin Utama <admin@swms.com>")
	assert.Contains(t, s, "persistent (memory)")
	assert.Contains(t, s, "13 bound, 13 stored")
	assert.Contains(t, s, "1 active, shown for 1m0s")
	assert.Contains(t, s, "[INFO] hello")
}

func TestToasts_Clear(t *testing.T) {
	ctx := context.Background()
	a, out := newTestCLI(t, "")
	a.core.Notify.Info("one")
	a.core.Notify.Success("two")

	require.NoError(t, a.Toasts(ctx, []string{"CLEAR"}))
	assert.Contains(t, out.String(), "Dismissed 2 notifications.")
	assert.Empty(t, a.core.Notify.Active())

	require.ErrorIs(t, a.Toasts(ctx, []string{"all"}), common.ErrValidation)
}

func TestStatus_ReportsStraySlots(t *testing.T) {
	ctx := context.Background()
	a, out := newTestCLI(t, "")
	a.core.Store.Save(ctx, "swms_old_cart", []int{1})

	require.NoError(t, a.Status(ctx))
	assert.Contains(t, out.String(), "13 bound, 14 stored")
	assert.Contains(t, out.String(), "swms_old_cart")
}

func TestReport(t *testing.T) {
	a, out := newTestCLI(t, "")
	a.report(context.Background(), common.NewValidationError("servo1", "must be between 0 and 180"))
	assert.Contains(t, out.String(), "[ERROR] servo1 must be between 0 and 180.")
}

func TestRun_ScriptedSession(t *testing.T) {
	script := strings.Join([]string{
		"login",
		"admin@swms.com",
		"SWMS1234",
		"open users",
		"hwset servo1 200",
		"logout",
		"exit",
	}, "\n") + "\n"
	a, out := newTestCLI(t, script)

	a.Run(context.Background())

	s := out.String()
	assert.Contains(t, s, "SWMS dashboard.")
	assert.Contains(t, s, "[SUCCESS] Welcome, Admin Utama (ADMIN).")
	assert.Contains(t, s, "Budi Santoso")
	assert.Contains(t, s, "[ERROR] servo1")
	assert.Contains(t, s, "[INFO] Logged out.")
	assert.Contains(t, s, "Bye!")
	assert.False(t, a.isLoggedIn())
}

func TestRun_ReturnsOnCancelledContext(t *testing.T) {
	a, out := newTestCLI(t, "login\n")
	a.reader = blockingReader(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		a.Run(ctx)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return")
	}
	assert.NotContains(t, out.String(), "swms [")
}

// blockingReader never yields a line until the test ends.
func blockingReader(t *testing.T) *bufio.Reader {
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })
	return bufio.NewReader(pr)
}
