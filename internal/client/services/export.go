package services

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/swms/internal/client/appctx"
	"github.com/dmitrijs2005/swms/internal/client/menu"
	"github.com/dmitrijs2005/swms/internal/client/models"
	"github.com/dmitrijs2005/swms/internal/common"
	"github.com/dmitrijs2005/swms/internal/filex"
)

// ExportService writes slot values to disk as indented JSON for debugging.
// Exports are one-way; nothing reads these files back.
type ExportService interface {
	Export(ctx context.Context, slot string) (string, error)
	ExportAll(ctx context.Context) ([]string, error)
}

type exportService struct {
	app *appctx.App
}

func NewExportService(app *appctx.App) ExportService {
	return &exportService{app: app}
}

// Export writes the current value of slot to <export dir>/<slot>.json and
// returns the file path.
func (s *exportService) Export(ctx context.Context, slot string) (string, error) {
	if _, err := authorize(s.app, menu.ExportData); err != nil {
		return "", err
	}
	if !models.KnownSlot(slot) {
		return "", fmt.Errorf("slot %q: %w", slot, common.ErrNotFound)
	}

	v, ok := s.app.Store.Snapshot(ctx, slot)
	if !ok {
		return "", fmt.Errorf("slot %q has no value: %w", slot, common.ErrNotFound)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", slot, err)
	}

	dir, err := filex.EnsureDir(s.app.Config.ExportDir)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, slot+".json")
	if err := filex.WriteFileAtomic(path, append(data, '\n')); err != nil {
		return "", err
	}

	s.app.Log.Info(ctx, "slot exported", "slot", slot, "path", path)
	return path, nil
}

func (s *exportService) ExportAll(ctx context.Context) ([]string, error) {
	paths := make([]string, 0, len(models.AllSlots))
	for _, slot := range models.AllSlots {
		p, err := s.Export(ctx, slot)
		if err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}
