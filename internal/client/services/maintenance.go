package services

import (
	"context"
	"slices"
	"time"

	"github.com/dmitrijs2005/swms/internal/client/appctx"
	"github.com/dmitrijs2005/swms/internal/client/menu"
	"github.com/dmitrijs2005/swms/internal/client/store"
)

type StorageStatus struct {
	Available bool
	Mode      store.Mode
	DirtyKeys []string
	// Bound counts the slots this client keeps in memory.
	Bound int
	// Stored counts the keys on the medium; -1 when it cannot be listed.
	Stored int
	// StrayKeys are stored keys no slot is bound to. ResetDemoData
	// removes them.
	StrayKeys []string
	ToastTTL  time.Duration
}

type MaintenanceService interface {
	Status(ctx context.Context) StorageStatus
	// ResetDemoData restores every slot to its demo data. The session ends
	// if the signed-in account is not part of the demo data.
	ResetDemoData(ctx context.Context) error
}

type maintenanceService struct {
	app *appctx.App
}

func NewMaintenanceService(app *appctx.App) MaintenanceService {
	return &maintenanceService{app: app}
}

func (s *maintenanceService) Status(ctx context.Context) StorageStatus {
	st := StorageStatus{
		Available: s.app.Store.Available(),
		Mode:      s.app.Store.Mode(),
		DirtyKeys: s.app.Store.DirtyKeys(),
		Stored:    -1,
		ToastTTL:  s.app.Notify.TTL(),
	}
	bound := s.app.Store.BoundKeys()
	st.Bound = len(bound)
	if !st.Available {
		return st
	}

	stored, err := s.app.Store.StoredKeys(ctx)
	if err != nil {
		s.app.Log.Warn(ctx, "cannot list stored slots", "err", err)
		return st
	}
	st.Stored = len(stored)
	for _, key := range stored {
		if !slices.Contains(bound, key) {
			st.StrayKeys = append(st.StrayKeys, key)
		}
	}
	return st
}

func (s *maintenanceService) ResetDemoData(ctx context.Context) error {
	actor, err := authorize(s.app, menu.ResetDemoData)
	if err != nil {
		return err
	}
	s.app.ResetDemoData(ctx)
	s.app.Log.Info(ctx, "demo data restored", "by", actor.ID)
	return nil
}
