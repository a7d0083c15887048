package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/dmitrijs2005/swms/internal/client/appctx"
	"github.com/dmitrijs2005/swms/internal/client/menu"
	"github.com/dmitrijs2005/swms/internal/client/models"
	"github.com/dmitrijs2005/swms/internal/client/session"
	"github.com/dmitrijs2005/swms/internal/common"
)

// BinLevels maps each compartment to its fill percentage.
type BinLevels map[models.Bin]int

// ActivityService runs the dashboard and collection views: the field
// activity feed, demo events and bin resets.
type ActivityService interface {
	Locations() []string
	// DefaultLocation is the location preselected for the signed-in user.
	DefaultLocation() (string, error)
	List(location string, limit int) ([]models.ActivityLog, error)
	AddDemoLog(ctx context.Context, location string) (models.ActivityLog, error)
	ResetBin(ctx context.Context, location string, bin models.Bin) (models.ActivityLog, error)
	ResetAll(ctx context.Context, location string) (models.ActivityLog, error)
	Bins(location string) (BinLevels, error)
}

type activityService struct {
	app  *appctx.App
	intn func(n int) int
}

func NewActivityService(app *appctx.App) ActivityService {
	return &activityService{app: app, intn: rand.IntN}
}

func (s *activityService) Locations() []string {
	return s.app.Slots.Locations.Get()
}

func (s *activityService) DefaultLocation() (string, error) {
	sess, err := requireSession(s.app)
	if err != nil {
		return "", err
	}
	if sess.Role == models.RolePetugas && sess.Area != "" && sess.Area != "-" {
		return sess.Area, nil
	}
	if locs := s.Locations(); len(locs) > 0 {
		return locs[0], nil
	}
	return models.DefaultLocation, nil
}

// List returns the newest entries the signed-in user may see. Administrators
// see everything, operators see their own area and the selected location,
// viewers only see status and info entries.
func (s *activityService) List(location string, limit int) ([]models.ActivityLog, error) {
	sess, err := requireSession(s.app)
	if err != nil {
		return nil, err
	}

	var out []models.ActivityLog
	for _, l := range s.app.Slots.Logs.Get() {
		if visibleLog(sess, l, location) {
			out = append(out, l)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func visibleLog(sess *session.Session, l models.ActivityLog, location string) bool {
	if menu.Can(sess, menu.ViewAllLogs) {
		return true
	}
	if sess.Role == models.RolePetugas {
		return l.Location == sess.Area || l.Location == location
	}
	return l.Type == models.LogStatus || l.Type == models.LogInfo
}

func (s *activityService) checkLocation(location string) error {
	if !slices.Contains(s.Locations(), location) {
		return common.NewValidationError("location", fmt.Sprintf("%q is not a known location", location))
	}
	return nil
}

func (s *activityService) AddDemoLog(ctx context.Context, location string) (models.ActivityLog, error) {
	if _, err := authorize(s.app, menu.AddActivityLog); err != nil {
		return models.ActivityLog{}, err
	}
	if err := s.checkLocation(location); err != nil {
		return models.ActivityLog{}, err
	}
	return s.add(ctx, location, fmt.Sprintf("Sensor mendeteksi sampah di %s. Servo bergerak.", location))
}

func (s *activityService) ResetBin(ctx context.Context, location string, bin models.Bin) (models.ActivityLog, error) {
	if _, err := authorize(s.app, menu.ResetBins); err != nil {
		return models.ActivityLog{}, err
	}
	if err := s.checkLocation(location); err != nil {
		return models.ActivityLog{}, err
	}
	if !slices.Contains(models.AllBins, bin) {
		return models.ActivityLog{}, common.NewValidationError("bin", fmt.Sprintf("%q is not a bin", bin))
	}
	return s.add(ctx, location, fmt.Sprintf("Reset tong %s di %s (demo).", bin, location))
}

func (s *activityService) ResetAll(ctx context.Context, location string) (models.ActivityLog, error) {
	if _, err := authorize(s.app, menu.ResetBins); err != nil {
		return models.ActivityLog{}, err
	}
	if err := s.checkLocation(location); err != nil {
		return models.ActivityLog{}, err
	}
	return s.add(ctx, location, fmt.Sprintf("Reset semua tong di %s (demo).", location))
}

func (s *activityService) add(ctx context.Context, location, msg string) (models.ActivityLog, error) {
	entry := models.ActivityLog{
		ID:       common.NewID("log"),
		At:       models.NewTimestamp(s.app.Now().UTC()),
		Location: location,
		Type:     models.LogEvent,
		Message:  msg,
	}
	err := s.app.Slots.Logs.Update(ctx, func(cur []models.ActivityLog) ([]models.ActivityLog, error) {
		return prepend(cur, entry, models.MaxLogEntries), nil
	})
	if err != nil {
		return models.ActivityLog{}, err
	}
	return entry, nil
}

// Bins returns demo fill levels between 10 and 89 percent.
func (s *activityService) Bins(location string) (BinLevels, error) {
	if _, err := requireSession(s.app); err != nil {
		return nil, err
	}
	if err := s.checkLocation(location); err != nil {
		return nil, err
	}
	levels := make(BinLevels, len(models.AllBins))
	for _, b := range models.AllBins {
		levels[b] = 10 + s.intn(80)
	}
	return levels, nil
}
