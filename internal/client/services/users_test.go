package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/swms/internal/client/models"
	"github.com/dmitrijs2005/swms/internal/common"
)

func names(users []models.User) []string {
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = u.Name
	}
	return out
}

func TestUserService_RequiresAdmin(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)
	svc := NewUserService(app)

	_, err := svc.List(UserQuery{})
	require.ErrorIs(t, err, common.ErrForbidden, "logged out")

	loginAs(t, app, models.DemoPetugasEmail)
	_, err = svc.Add(ctx, UserInput{Name: "X", Email: "x@swms.com"})
	require.ErrorIs(t, err, common.ErrForbidden)
	assert.Len(t, app.Slots.Users.Get(), 3)
}

func TestUserService_ListFilterAndSort(t *testing.T) {
	app := asAdmin(t)
	svc := NewUserService(app)

	rows, err := svc.List(UserQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Admin Utama", "Budi Santoso", "Viewer Demo"}, names(rows))

	rows, err = svc.List(UserQuery{Sort: SortByName, Desc: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Viewer Demo", "Budi Santoso", "Admin Utama"}, names(rows))

	rows, err = svc.List(UserQuery{Sort: SortByRole})
	require.NoError(t, err)
	assert.Equal(t, []models.Role{models.RoleAdmin, models.RolePetugas, models.RoleViewer},
		[]models.Role{rows[0].Role, rows[1].Role, rows[2].Role})

	rows, err = svc.List(UserQuery{Role: models.RolePetugas})
	require.NoError(t, err)
	assert.Equal(t, []string{"Budi Santoso"}, names(rows))

	c, err := svc.Counts()
	require.NoError(t, err)
	assert.Equal(t, RoleCounts{All: 3, Admin: 1, Petugas: 1, Viewer: 1}, c)
}

func TestUserService_Add(t *testing.T) {
	ctx := context.Background()
	app := asAdmin(t)
	svc := NewUserService(app)

	u, err := svc.Add(ctx, UserInput{Name: " Siti ", Email: "Siti@SWMS.com", Role: models.RolePetugas, Area: "Gedung A"})
	require.NoError(t, err)
	assert.Equal(t, "Siti", u.Name)
	assert.Equal(t, "siti@swms.com", u.Email)
	assert.Equal(t, "Admin Utama", u.CreatedBy)
	assert.True(t, fixedNow.Equal(u.CreatedAt))

	users := app.Slots.Users.Get()
	require.Len(t, users, 4)
	assert.Equal(t, u.ID, users[0].ID)

	_, err = app.Session.Login(ctx, "siti@swms.com", []byte("SWMS1234"))
	require.NoError(t, err, "new accounts use the demo password")
}

func TestUserService_AddRejects(t *testing.T) {
	ctx := context.Background()
	app := asAdmin(t)
	svc := NewUserService(app)

	tests := []struct {
		name string
		in   UserInput
		want error
	}{
		{"missing name", UserInput{Email: "a@b.c"}, common.ErrValidation},
		{"missing email", UserInput{Name: "A"}, common.ErrValidation},
		{"bad email", UserInput{Name: "A", Email: "nope"}, common.ErrValidation},
		{"bad role", UserInput{Name: "A", Email: "a@b.c", Role: "root"}, common.ErrValidation},
		{"duplicate", UserInput{Name: "A", Email: "VIEWER@swms.com"}, common.ErrDuplicateEmail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Add(ctx, tt.in)
			require.ErrorIs(t, err, tt.want)
			assert.Len(t, app.Slots.Users.Get(), 3)
		})
	}
}

func TestUserService_Edit(t *testing.T) {
	ctx := context.Background()
	app := asAdmin(t)
	svc := NewUserService(app)
	viewer := app.Slots.Users.Get()[2]

	u, err := svc.Edit(ctx, viewer.ID, UserInput{
		Name: "Viewer Baru", Email: viewer.Email, Role: models.RolePetugas, Area: "Kantin FTI",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RolePetugas, u.Role)
	assert.Equal(t, viewer.CreatedBy, u.CreatedBy)
	assert.Equal(t, "Viewer Baru", app.Slots.Users.Get()[2].Name)

	_, err = svc.Edit(ctx, viewer.ID, UserInput{Name: "X", Email: models.DemoAdminEmail, Role: models.RoleViewer})
	require.ErrorIs(t, err, common.ErrDuplicateEmail)
	assert.Equal(t, viewer.Email, app.Slots.Users.Get()[2].Email)

	_, err = svc.Edit(ctx, "missing", UserInput{Name: "X", Email: "x@y.z", Role: models.RoleViewer})
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestUserService_EditSelfRefreshesSession(t *testing.T) {
	ctx := context.Background()
	app := asAdmin(t)
	me := app.Session.Current()

	_, err := NewUserService(app).Edit(ctx, me.ID, UserInput{Name: "Admin Baru", Email: me.Email, Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, "Admin Baru", app.Session.Current().Name)
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()
	app := asAdmin(t)
	svc := NewUserService(app)
	users := app.Slots.Users.Get()

	require.NoError(t, svc.Delete(ctx, users[1].ID))
	assert.Len(t, app.Slots.Users.Get(), 2)

	require.ErrorIs(t, svc.Delete(ctx, users[1].ID), common.ErrNotFound)
	require.ErrorIs(t, svc.Delete(ctx, app.Session.Current().ID), common.ErrValidation)
	assert.Len(t, app.Slots.Users.Get(), 2)
}
