package menu

import (
	"slices"

	"github.com/dmitrijs2005/swms/internal/client/models"
	"github.com/dmitrijs2005/swms/internal/client/session"
)

// Capability is an action offered inside a view.
type Capability string

const (
	EditHardware    Capability = "edit-hardware"
	ManageUsers     Capability = "manage-users"
	ManageCMS       Capability = "manage-cms"
	SendBroadcast   Capability = "send-broadcast"
	ModerateReviews Capability = "moderate-reviews"
	AddActivityLog  Capability = "add-activity-log"
	ViewAllLogs     Capability = "view-all-logs"
	ResetBins       Capability = "reset-bins"
	ExportData      Capability = "export-data"
	ResetDemoData   Capability = "reset-demo-data"
)

var capabilities = map[Capability][]models.Role{
	EditHardware:    adminsOnly,
	ManageUsers:     adminsOnly,
	ManageCMS:       adminsOnly,
	SendBroadcast:   adminsOnly,
	ModerateReviews: adminsOnly,
	AddActivityLog:  staff,
	ViewAllLogs:     adminsOnly,
	ResetBins:       staff,
	ExportData:      adminsOnly,
	ResetDemoData:   adminsOnly,
}

// Can reports whether s holds capability c. Unknown capabilities and a nil
// session are always denied.
func Can(s *session.Session, c Capability) bool {
	if s == nil {
		return false
	}
	return slices.Contains(capabilities[c], s.Role)
}
