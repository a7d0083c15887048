package models

// Slot keys. The names are shared with the browser dashboard so that
// exported files are interchangeable.
const (
	SlotUsers              = "swms_users"
	SlotCMSLogin           = "swms_cms_login"
	SlotTeam               = "swms_team"
	SlotBroadcastTemplates = "swms_broadcast_templates"
	SlotBroadcasts         = "swms_broadcasts"
	SlotReviews            = "swms_reviews"
	SlotProfiles           = "swms_profiles"
	SlotHardware           = "swms_hw"
	SlotHardwareLogs       = "swms_hw_logs"
	SlotDataset            = "swms_dataset"
	SlotLogs               = "swms_logs"
	SlotLocations          = "swms_locations"
	SlotTheme              = "swms_theme"
)

// AllSlots lists every slot key in catalogue order.
var AllSlots = []string{
	SlotUsers,
	SlotCMSLogin,
	SlotTeam,
	SlotBroadcastTemplates,
	SlotBroadcasts,
	SlotReviews,
	SlotProfiles,
	SlotHardware,
	SlotHardwareLogs,
	SlotDataset,
	SlotLogs,
	SlotLocations,
	SlotTheme,
}

// KnownSlot reports whether key is part of the catalogue.
func KnownSlot(key string) bool {
	for _, k := range AllSlots {
		if k == key {
			return true
		}
	}
	return false
}

// Theme values for SlotTheme.
const (
	ThemeDevice = "device"
	ThemeLight  = "light"
	ThemeDark   = "dark"
)
