package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/swms/internal/client/appctx"
	"github.com/dmitrijs2005/swms/internal/client/config"
	"github.com/dmitrijs2005/swms/internal/client/notify"
	"github.com/dmitrijs2005/swms/internal/client/repositories/slots"
	"github.com/dmitrijs2005/swms/internal/client/session"
	"github.com/dmitrijs2005/swms/internal/client/store"
)

var fixedNow = time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

// newTestCLI builds an App over an in-memory store. input feeds the
// interactive prompts; everything the App, the REPL and the toast sink print
// ends up in the returned buffer.
func newTestCLI(t *testing.T, input string) (*App, *bytes.Buffer) {
	t.Helper()

	out := &bytes.Buffer{}

	origPrint, origTerm := printlnFn, isTerminal
	printlnFn = func(a ...any) (int, error) { return fmt.Fprintln(out, a...) }
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() {
		printlnFn = origPrint
		isTerminal = origTerm
	})

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.Storage = config.StorageMemory
	cfg.ExportDir = t.TempDir()

	core := appctx.New(context.Background(), store.New(slots.NewMemoryRepository(), nil), appctx.Options{
		Notifier: notify.New(time.Minute, ToastSink(out)),
		Now:      func() time.Time { return fixedNow },
		Config:   cfg,
	})
	return NewApp(core, strings.NewReader(input), out), out
}

// signIn logs in directly through the session manager.
func signIn(t *testing.T, a *App, email string) {
	t.Helper()
	s, err := a.core.Session.Login(context.Background(), email, []byte(session.DemoPassword))
	require.NoError(t, err)
	a.view, a.location = "", ""
	require.NotEmpty(t, s.ID)
}
