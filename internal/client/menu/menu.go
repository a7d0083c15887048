// Package menu holds the static navigation table of the SWMS client and the
// role checks derived from it. Views must ask this package whether the
// current session may see a menu or use a capability; they never compare
// roles themselves.
package menu

import (
	"slices"

	"github.com/dmitrijs2005/swms/internal/client/models"
	"github.com/dmitrijs2005/swms/internal/client/session"
)

type ID string

const (
	Dashboard    ID = "dashboard"
	Pengangkutan ID = "pengangkutan"
	Analisis     ID = "analisis"
	Ulasan       ID = "ulasan"
	Config       ID = "config"
	Logs         ID = "logs"
	Users        ID = "users"
	CMS          ID = "cms"
	Broadcast    ID = "broadcast"
	Profile      ID = "profile"
)

// Descriptor describes one navigation entry. AllowedRoles is never empty.
type Descriptor struct {
	ID           ID
	Label        string
	ShortLabel   string
	Icon         string
	AllowedRoles []models.Role
}

func (d Descriptor) Allows(r models.Role) bool {
	return slices.Contains(d.AllowedRoles, r)
}

var (
	everyone   = []models.Role{models.RoleAdmin, models.RolePetugas, models.RoleViewer}
	staff      = []models.Role{models.RoleAdmin, models.RolePetugas}
	adminsOnly = []models.Role{models.RoleAdmin}
)

var descriptors = []Descriptor{
	{Dashboard, "Dashboard", "Home", "activity", everyone},
	{Pengangkutan, "Pengangkutan", "Ambil", "truck", staff},
	{Analisis, "Analisis Data", "Data", "bar-chart", everyone},
	{Ulasan, "Ulasan & Rating", "Ulasan", "message", everyone},
	{Config, "Config Hardware", "Config", "settings", adminsOnly},
	{Logs, "ESP32 Logs", "Logs", "image", adminsOnly},
	{Users, "User Management", "User", "users", adminsOnly},
	{CMS, "CMS Editor", "CMS", "menu", adminsOnly},
	{Broadcast, "Broadcast", "Notif", "bell", adminsOnly},
	{Profile, "Profil Saya", "Profil", "user", everyone},
}

// All returns a copy of the full descriptor list in display order.
func All() []Descriptor {
	out := make([]Descriptor, len(descriptors))
	for i, d := range descriptors {
		d.AllowedRoles = slices.Clone(d.AllowedRoles)
		out[i] = d
	}
	return out
}

// Lookup returns the descriptor for id.
func Lookup(id ID) (Descriptor, bool) {
	for _, d := range All() {
		if d.ID == id {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Visible returns, in display order, the menus s may open. A nil session
// (logged out) sees nothing.
func Visible(s *session.Session) []Descriptor {
	if s == nil {
		return nil
	}
	var out []Descriptor
	for _, d := range All() {
		if d.Allows(s.Role) {
			out = append(out, d)
		}
	}
	return out
}

// CanNavigate reports whether id is among Visible(s).
func CanNavigate(s *session.Session, id ID) bool {
	for _, d := range Visible(s) {
		if d.ID == id {
			return true
		}
	}
	return false
}

// Home is the view shown right after login.
func Home(s *session.Session) (ID, bool) {
	v := Visible(s)
	if len(v) == 0 {
		return "", false
	}
	return v[0].ID, true
}
