package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/swms/internal/client/appctx"
	"github.com/dmitrijs2005/swms/internal/client/config"
	"github.com/dmitrijs2005/swms/internal/client/models"
	"github.com/dmitrijs2005/swms/internal/client/repositories/slots"
	"github.com/dmitrijs2005/swms/internal/client/session"
	"github.com/dmitrijs2005/swms/internal/client/store"
)

var fixedNow = time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T) *appctx.App {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.ExportDir = t.TempDir()
	return appctx.New(context.Background(), store.New(slots.NewMemoryRepository(), nil), appctx.Options{
		Now:    func() time.Time { return fixedNow },
		Config: cfg,
	})
}

func loginAs(t *testing.T, app *appctx.App, email string) *session.Session {
	t.Helper()
	_, err := app.Session.Login(context.Background(), email, []byte(session.DemoPassword))
	require.NoError(t, err)
	return app.Session.Current()
}

func asAdmin(t *testing.T) *appctx.App {
	app := newTestApp(t)
	loginAs(t, app, models.DemoAdminEmail)
	return app
}

// seq returns an intn stub that replays values (modulo n) in order.
func seq(values ...int) func(int) int {
	i := 0
	return func(n int) int {
		v := values[i%len(values)] % n
		i++
		return v
	}
}
