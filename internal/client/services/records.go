package services

import (
	"fmt"

	"github.com/dmitrijs2005/swms/internal/client/appctx"
	"github.com/dmitrijs2005/swms/internal/client/menu"
	"github.com/dmitrijs2005/swms/internal/client/models"
	"github.com/dmitrijs2005/swms/internal/client/store"
	"github.com/dmitrijs2005/swms/internal/common"
)

// RecordService reads the slots whose editors are not part of the terminal
// client. The records are shown as-is; they can be exported but not edited.
type RecordService interface {
	List(slot string) ([]models.Record, error)
}

type recordService struct {
	app *appctx.App
}

func NewRecordService(app *appctx.App) RecordService {
	return &recordService{app: app}
}

// owners maps each record slot to the view that displays it. Reading a slot
// needs the same access as opening that view.
var owners = map[string]menu.ID{
	models.SlotDataset:            menu.Analisis,
	models.SlotReviews:            menu.Ulasan,
	models.SlotCMSLogin:           menu.CMS,
	models.SlotTeam:               menu.CMS,
	models.SlotBroadcastTemplates: menu.Broadcast,
	models.SlotBroadcasts:         menu.Broadcast,
}

func (s *recordService) binding(slot string) *store.Binding[[]models.Record] {
	sl := s.app.Slots
	switch slot {
	case models.SlotDataset:
		return sl.Dataset
	case models.SlotReviews:
		return sl.Reviews
	case models.SlotCMSLogin:
		return sl.CMSLogin
	case models.SlotTeam:
		return sl.Team
	case models.SlotBroadcastTemplates:
		return sl.BroadcastTemplates
	case models.SlotBroadcasts:
		return sl.Broadcasts
	}
	return nil
}

func (s *recordService) List(slot string) ([]models.Record, error) {
	view, ok := owners[slot]
	if !ok {
		return nil, fmt.Errorf("record slot %q: %w", slot, common.ErrNotFound)
	}
	sess, err := requireSession(s.app)
	if err != nil {
		return nil, err
	}
	if !menu.CanNavigate(sess, view) {
		return nil, fmt.Errorf("%w: %s cannot open %s", common.ErrForbidden, sess.Role.Label(), view)
	}
	return s.binding(slot).Get(), nil
}
