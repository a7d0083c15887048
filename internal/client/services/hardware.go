package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/swms/internal/client/appctx"
	"github.com/dmitrijs2005/swms/internal/client/menu"
	"github.com/dmitrijs2005/swms/internal/client/models"
	"github.com/dmitrijs2005/swms/internal/common"
)

const (
	maxServoAngle = 180
	maxLCDColumns = 16
)

// HardwareFields lists the names accepted by HardwareService.Set.
var HardwareFields = []string{
	"location", "servo1", "servo2", "lcd1", "lcd2",
	"plastik.empty", "plastik.full",
	"kertas.empty", "kertas.full",
	"kaleng.empty", "kaleng.full",
}

// HardwareService edits the device configuration and its console log.
// Changes require the edit-hardware capability; Config and Logs only need
// a session.
type HardwareService interface {
	Config() (models.HardwareConfig, error)
	Logs(limit int) ([]models.HardwareLog, error)
	Set(ctx context.Context, field, value string) (models.HardwareConfig, error)
	Randomize(ctx context.Context) (models.HardwareConfig, error)
	TestBuzzer(ctx context.Context) error
	Restart(ctx context.Context) error
}

type hardwareService struct {
	app *appctx.App
	// intn returns a value in [0, n).
	intn func(n int) int
}

func NewHardwareService(app *appctx.App) HardwareService {
	return &hardwareService{app: app, intn: rand.IntN}
}

func (s *hardwareService) Config() (models.HardwareConfig, error) {
	if _, err := requireSession(s.app); err != nil {
		return models.HardwareConfig{}, err
	}
	return s.app.Slots.Hardware.Get(), nil
}

func (s *hardwareService) Logs(limit int) ([]models.HardwareLog, error) {
	if _, err := requireSession(s.app); err != nil {
		return nil, err
	}
	logs := s.app.Slots.HardwareLogs.Get()
	if limit > 0 && len(logs) > limit {
		logs = logs[:limit]
	}
	return logs, nil
}

// Set changes one field, validates the whole configuration and saves it.
func (s *hardwareService) Set(ctx context.Context, field, value string) (models.HardwareConfig, error) {
	if _, err := authorize(s.app, menu.EditHardware); err != nil {
		return models.HardwareConfig{}, err
	}

	locations := s.app.Slots.Locations.Get()
	var saved models.HardwareConfig
	err := s.app.Slots.Hardware.Update(ctx, func(cur models.HardwareConfig) (models.HardwareConfig, error) {
		if err := applyHardwareField(&cur, field, value); err != nil {
			return cur, err
		}
		if err := validateHardware(cur, locations); err != nil {
			return cur, err
		}
		saved = cur
		return cur, nil
	})
	if err != nil {
		return models.HardwareConfig{}, err
	}

	s.appendLog(ctx, fmt.Sprintf("Konfigurasi disimpan: %s = %s.", field, value))
	return saved, nil
}

func applyHardwareField(hw *models.HardwareConfig, field, value string) error {
	field = strings.ToLower(strings.TrimSpace(field))

	atoi := func() (int, error) {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return 0, common.NewValidationError(field, "must be a whole number")
		}
		return n, nil
	}

	switch field {
	case "location":
		hw.Location = strings.TrimSpace(value)
		return nil
	case "lcd1":
		hw.LCDLine1 = value
		return nil
	case "lcd2":
		hw.LCDLine2 = value
		return nil
	case "servo1", "servo2":
		n, err := atoi()
		if err != nil {
			return err
		}
		if field == "servo1" {
			hw.Servo1 = n
		} else {
			hw.Servo2 = n
		}
		return nil
	}

	bin, edge, ok := strings.Cut(field, ".")
	if !ok || !slices.Contains(models.AllBins, models.Bin(bin)) || (edge != "empty" && edge != "full") {
		return common.NewValidationError(field, "is not a hardware field")
	}
	n, err := atoi()
	if err != nil {
		return err
	}
	if hw.Ultrasonic == nil {
		hw.Ultrasonic = map[models.Bin]models.Ultrasonic{}
	}
	u := hw.Ultrasonic[models.Bin(bin)]
	if edge == "empty" {
		u.Empty = n
	} else {
		u.Full = n
	}
	hw.Ultrasonic[models.Bin(bin)] = u
	return nil
}

func validateHardware(hw models.HardwareConfig, locations []string) error {
	if !slices.Contains(locations, hw.Location) {
		return common.NewValidationError("location", "is not a known location")
	}
	for name, v := range map[string]int{"servo1": hw.Servo1, "servo2": hw.Servo2} {
		if v < 0 || v > maxServoAngle {
			return common.NewValidationError(name, fmt.Sprintf("must be between 0 and %d", maxServoAngle))
		}
	}
	for name, v := range map[string]string{"lcd1": hw.LCDLine1, "lcd2": hw.LCDLine2} {
		if utf8.RuneCountInString(v) > maxLCDColumns {
			return common.NewValidationError(name, fmt.Sprintf("must fit in %d characters", maxLCDColumns))
		}
	}
	for _, b := range models.AllBins {
		u := hw.Ultrasonic[b]
		if u.Full <= 0 || u.Empty <= u.Full {
			return common.NewValidationError(string(b), "needs empty > full > 0")
		}
	}
	return nil
}

// Randomize draws a new demo calibration for every compartment.
func (s *hardwareService) Randomize(ctx context.Context) (models.HardwareConfig, error) {
	if _, err := authorize(s.app, menu.EditHardware); err != nil {
		return models.HardwareConfig{}, err
	}

	var saved models.HardwareConfig
	err := s.app.Slots.Hardware.Update(ctx, func(cur models.HardwareConfig) (models.HardwareConfig, error) {
		cur.Ultrasonic = make(map[models.Bin]models.Ultrasonic, len(models.AllBins))
		for _, b := range models.AllBins {
			// full reads 5..20 cm, empty sits 20..60 cm further away
			full := 5 + s.intn(16)
			empty := full + 20 + s.intn(41)
			cur.Ultrasonic[b] = models.Ultrasonic{Empty: empty, Full: full}
		}
		saved = cur
		return cur, nil
	})
	if err != nil {
		return models.HardwareConfig{}, err
	}

	s.appendLog(ctx, "Kalibrasi sensor diacak (demo).")
	return saved, nil
}

func (s *hardwareService) TestBuzzer(ctx context.Context) error {
	if _, err := authorize(s.app, menu.EditHardware); err != nil {
		return err
	}
	s.appendLog(ctx, "Test buzzer ditekan (demo).")
	return nil
}

func (s *hardwareService) Restart(ctx context.Context) error {
	if _, err := authorize(s.app, menu.EditHardware); err != nil {
		return err
	}
	s.appendLog(ctx, "Restart alat ditekan (demo).")
	return nil
}

func (s *hardwareService) appendLog(ctx context.Context, msg string) {
	entry := models.HardwareLog{ID: common.NewID("hwlog"), At: models.NewTimestamp(s.app.Now().UTC()), Msg: msg}
	_ = s.app.Slots.HardwareLogs.Update(ctx, func(cur []models.HardwareLog) ([]models.HardwareLog, error) {
		return prepend(cur, entry, models.MaxLogEntries), nil
	})
}
