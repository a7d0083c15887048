package models

import (
	"time"

	"github.com/dmitrijs2005/swms/internal/common"
)

// Demo accounts.
const (
	DemoAdminEmail   = "admin@swms.com"
	DemoPetugasEmail = "petugas@swms.com"
	DemoViewerEmail  = "viewer@swms.com"
)

// DefaultUsers returns the three demo accounts, one per role.
func DefaultUsers(now time.Time) []User {
	return []User{
		{
			ID:        common.NewID("user"),
			Name:      "Admin Utama",
			Email:     DemoAdminEmail,
			Role:      RoleAdmin,
			Area:      "-",
			Address:   "-",
			WA:        "-",
			CreatedBy: "System",
			CreatedAt: now,
		},
		{
			ID:        common.NewID("user"),
			Name:      "Budi Santoso",
			Email:     DemoPetugasEmail,
			Role:      RolePetugas,
			Area:      DefaultLocation,
			Address:   "Kampus",
			WA:        "+62 812 0000 0000",
			CreatedBy: "Admin Utama",
			CreatedAt: now,
		},
		{
			ID:        common.NewID("user"),
			Name:      "Viewer Demo",
			Email:     DemoViewerEmail,
			Role:      RoleViewer,
			Area:      "-",
			Address:   "-",
			WA:        "+62 812 1111 1111",
			CreatedBy: "Mandiri",
			CreatedAt: now,
		},
	}
}

func DefaultHardware() HardwareConfig {
	return HardwareConfig{
		Location: DefaultLocation,
		Servo1:   90,
		Servo2:   90,
		LCDLine1: "SWMS READY",
		LCDLine2: DefaultLocation,
		Ultrasonic: map[Bin]Ultrasonic{
			BinPlastik: {Empty: 50, Full: 10},
			BinKertas:  {Empty: 50, Full: 10},
			BinKaleng:  {Empty: 50, Full: 10},
		},
	}
}

func DefaultLocations() []string {
	return []string{DefaultLocation, "Kantin FTI", "Gedung A"}
}

func DefaultCMSLogin(now time.Time) []Record {
	return []Record{
		{
			"id":    common.NewID("cms"),
			"title": "Selamat Datang di SWMS",
			"desc": "SWMS adalah sistem pengelolaan sampah cerdas berbasis IoT dan AI. " +
				"Anda bisa memantau kondisi tong secara realtime dan menerima notifikasi.",
			"links": []any{
				Record{"label": "YouTube Demo", "url": "https://youtube.com"},
				Record{"label": "Instagram", "url": "https://instagram.com"},
			},
			"images": []any{
				Record{"url": "https://images.unsplash.com/photo-1528323273322-d81458248d40?auto=format&fit=crop&w=900&q=80"},
				Record{"url": "https://images.unsplash.com/photo-1611284446314-60a58ac0deb9?auto=format&fit=crop&w=900&q=80"},
			},
			"videos":    []any{Record{"url": "https://www.youtube.com/watch?v=dQw4w9WgXcQ"}},
			"status":    "tayang",
			"showFrom":  "",
			"showUntil": "",
			"createdAt": now,
		},
	}
}

func DefaultTeam() []Record {
	member := func(name, nim, motivasi, wa, email string) Record {
		return Record{
			"id":       common.NewID("team"),
			"name":     name,
			"nim":      nim,
			"kelas":    "CD 32",
			"motivasi": motivasi,
			"ig":       "https://instagram.com",
			"wa":       wa,
			"email":    email,
			"photoUrl": "",
			"hidden":   false,
		}
	}
	return []Record{
		member("Rif Dmz", "-", "Tetap semangat, jaga lingkungan!",
			"https://wa.me/6281234567890", "mailto:kuwagataohger27@gmail.com?subject=Halo%20SWMS"),
		member("Anggota 2", "123456", "Bersih itu keren.",
			"https://wa.me/6280000000000", "mailto:contoh@email.com"),
		member("Anggota 3", "123457", "Sampah terpilah, bumi sehat.",
			"https://wa.me/6280000000001", "mailto:contoh@email.com"),
	}
}

func DefaultBroadcastTemplates(now time.Time) []Record {
	return []Record{
		{
			"id":        common.NewID("tpl"),
			"label":     "[ALERT] Sampah Penuh",
			"text":      "Tong {tong} di {lokasi} penuh. Mohon segera ditangani.",
			"createdBy": "Admin Utama",
			"createdAt": now,
		},
		{
			"id":        common.NewID("tpl"),
			"label":     "[INFO] Maintenance",
			"text":      "Jadwal maintenance alat di {lokasi} pukul {jam}.",
			"createdBy": "Admin Utama",
			"createdAt": now,
		},
	}
}

func DefaultReviews(now time.Time) []Record {
	return []Record{
		{
			"id":        common.NewID("rev"),
			"rating":    4,
			"text":      "Alatnya membantu, tapi kadang sensor lambat.",
			"photoUrl":  "",
			"createdAt": now,
			"hidden":    false,
			"replies": []any{
				Record{
					"id":        common.NewID("rep"),
					"text":      "Terima kasih, kami cek kalibrasi sensornya.",
					"createdAt": now,
					"hidden":    false,
				},
			},
		},
	}
}
