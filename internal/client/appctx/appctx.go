// Package appctx builds the application context: the single object, created
// once in main, that carries the store, the typed slot bindings, the session
// manager, the notifier and the logger to every service and command.
package appctx

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/swms/internal/client/config"
	"github.com/dmitrijs2005/swms/internal/client/localdb"
	"github.com/dmitrijs2005/swms/internal/client/models"
	"github.com/dmitrijs2005/swms/internal/client/notify"
	"github.com/dmitrijs2005/swms/internal/client/repositories/slots"
	"github.com/dmitrijs2005/swms/internal/client/session"
	"github.com/dmitrijs2005/swms/internal/client/store"
	"github.com/dmitrijs2005/swms/internal/filex"
	"github.com/dmitrijs2005/swms/internal/logging"
)

// Slots holds one binding per catalogue slot.
type Slots struct {
	Users              *store.Binding[[]models.User]
	CMSLogin           *store.Binding[[]models.Record]
	Team               *store.Binding[[]models.Record]
	BroadcastTemplates *store.Binding[[]models.Record]
	Broadcasts         *store.Binding[[]models.Record]
	Reviews            *store.Binding[[]models.Record]
	Profiles           *store.Binding[map[string]any]
	Hardware           *store.Binding[models.HardwareConfig]
	HardwareLogs       *store.Binding[[]models.HardwareLog]
	Dataset            *store.Binding[[]models.Record]
	Logs               *store.Binding[[]models.ActivityLog]
	Locations          *store.Binding[[]string]
	Theme              *store.Binding[string]
}

// BindSlots binds every catalogue slot on s, seeding absent slots with the
// demo data.
func BindSlots(ctx context.Context, s *store.Store, now time.Time) Slots {
	return Slots{
		Users:              store.Bind(ctx, s, models.SlotUsers, models.DefaultUsers(now)),
		CMSLogin:           store.Bind(ctx, s, models.SlotCMSLogin, models.DefaultCMSLogin(now)),
		Team:               store.Bind(ctx, s, models.SlotTeam, models.DefaultTeam()),
		BroadcastTemplates: store.Bind(ctx, s, models.SlotBroadcastTemplates, models.DefaultBroadcastTemplates(now)),
		Broadcasts:         store.Bind(ctx, s, models.SlotBroadcasts, []models.Record{}),
		Reviews:            store.Bind(ctx, s, models.SlotReviews, models.DefaultReviews(now)),
		Profiles:           store.Bind(ctx, s, models.SlotProfiles, map[string]any{}),
		Hardware:           store.Bind(ctx, s, models.SlotHardware, models.DefaultHardware()),
		HardwareLogs:       store.Bind(ctx, s, models.SlotHardwareLogs, []models.HardwareLog{}),
		Dataset:            store.Bind(ctx, s, models.SlotDataset, []models.Record{}),
		Logs:               store.Bind(ctx, s, models.SlotLogs, []models.ActivityLog{}),
		Locations:          store.Bind(ctx, s, models.SlotLocations, models.DefaultLocations()),
		Theme:              store.Bind(ctx, s, models.SlotTheme, models.ThemeDevice),
	}
}

type App struct {
	Store   *store.Store
	Slots   Slots
	Session *session.Manager
	Notify  *notify.Notifier
	Log     logging.Logger
	Config  *config.Config

	// Now is the clock used for timestamps on new records.
	Now func() time.Time

	db *sql.DB
}

// Options carries the collaborators of New. Zero values fall back to
// demo authentication, a 2.5s notifier without a sink, a discarding
// logger and time.Now.
type Options struct {
	Verifier session.Verifier
	Notifier *notify.Notifier
	Logger   logging.Logger
	Now      func() time.Time
	Config   *config.Config
}

// New builds an App over an existing store.
func New(ctx context.Context, s *store.Store, opts Options) *App {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.New(notify.DefaultTTL, nil)
	}
	if opts.Config == nil {
		opts.Config = &config.Config{}
		opts.Config.LoadDefaults()
	}

	sl := BindSlots(ctx, s, opts.Now().UTC())

	if e, ok := opts.Verifier.(session.Enroller); ok {
		enrollSeeded(ctx, sl.Users, e, opts.Logger)
	}

	return &App{
		Store:   s,
		Slots:   sl,
		Session: session.NewManager(sl.Users, opts.Verifier, opts.Logger),
		Notify:  opts.Notifier,
		Log:     opts.Logger,
		Config:  opts.Config,
		Now:     opts.Now,
	}
}

// enrollSeeded hashes the demo password for accounts that have no hash yet,
// so the seeded users stay usable under bcrypt authentication.
func enrollSeeded(ctx context.Context, users *store.Binding[[]models.User], e session.Enroller, log logging.Logger) {
	var enrolled int
	err := users.Update(ctx, func(cur []models.User) ([]models.User, error) {
		out, n, err := session.EnrollMissing(e, cur, []byte(session.DemoPassword))
		enrolled = n
		return out, err
	})
	if err != nil {
		log.Error(ctx, "enroll seeded users", "err", err)
		return
	}
	if enrolled > 0 {
		log.Info(ctx, "enrolled users with the demo password", "count", enrolled)
	}
}

// Open builds the App described by cfg: it opens the configured medium,
// binds all slots and picks the verifier. A medium that cannot be opened is
// logged and replaced by no medium at all, so the client always starts.
func Open(ctx context.Context, cfg *config.Config, log logging.Logger, sink notify.Sink) (*App, error) {
	if log == nil {
		log = logging.Discard()
	}

	var (
		repo slots.Repository
		db   *sql.DB
	)
	switch cfg.Storage {
	case config.StorageSQLite:
		var err error
		db, err = openSQLite(ctx, cfg.DataFile)
		if err != nil {
			log.Warn(ctx, "local storage unavailable, running without persistence",
				"file", cfg.DataFile, "err", err)
		} else {
			repo = slots.NewSQLiteRepository(db)
		}
	case config.StorageMemory:
		repo = slots.NewMemoryRepository()
	case config.StorageDisabled:
	default:
		return nil, fmt.Errorf("unknown storage mode %q", cfg.Storage)
	}

	var verifier session.Verifier = session.DemoVerifier{}
	if cfg.AuthMode == config.AuthBcrypt {
		verifier = session.NewBcryptVerifier(cfg.BcryptCost)
	}

	app := New(ctx, store.New(repo, log), Options{
		Verifier: verifier,
		Notifier: notify.New(cfg.ToastTTL, sink),
		Logger:   log,
		Config:   cfg,
	})
	app.db = db
	return app, nil
}

func openSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if _, err := filex.EnsureDir(filepath.Dir(path)); err != nil {
		return nil, err
	}
	return localdb.InitDatabase(ctx, path)
}

// Close releases the database, if one was opened.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// ResetDemoData restores every slot to its demo data, re-enrolls the demo
// accounts when hashes are in use and re-reads the session, which ends if
// the signed-in account is gone.
func (a *App) ResetDemoData(ctx context.Context) {
	a.Store.Reset(ctx)
	if e, ok := a.Session.Verifier().(session.Enroller); ok {
		enrollSeeded(ctx, a.Slots.Users, e, a.Log)
	}
	a.Session.Refresh(ctx)
}
