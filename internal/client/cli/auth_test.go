package cli

import (
	"bufio"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/swms/internal/client/menu"
	"github.com/dmitrijs2005/swms/internal/client/models"
	"github.com/dmitrijs2005/swms/internal/client/session"
	"github.com/dmitrijs2005/swms/internal/common"
)

// stubInputs replays texts and passwords, in order, from the prompt seams.
func stubInputs(t *testing.T, texts []string, passwords ...string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(texts) == 0 {
			return "", io.EOF
		}
		v := texts[0]
		texts = texts[1:]
		return v, nil
	}
	getPassword = func(_ *bufio.Reader, _ string, _ io.Writer) ([]byte, error) {
		if len(passwords) == 0 {
			return nil, io.EOF
		}
		v := passwords[0]
		passwords = passwords[1:]
		return []byte(v), nil
	}
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

func TestRegister_Success(t *testing.T) {
	a, out := newTestCLI(t, "")
	stubInputs(t, []string{"Siti Aminah", "Jl. Mawar 1", "+62 811", " Siti@Example.org "}, "rahasia", "rahasia")

	require.NoError(t, a.Register(context.Background()))

	users := a.core.Slots.Users.Get()
	require.Len(t, users, 4)
	assert.Equal(t, "siti@example.org", users[0].Email)
	assert.Equal(t, models.RoleViewer, users[0].Role)
	assert.Equal(t, models.CreatedBySelf, users[0].CreatedBy)

	assert.False(t, a.isLoggedIn(), "registration does not sign in")
	assert.Contains(t, out.String(), "[SUCCESS] Registration complete")
}

func TestRegister_PasswordMismatch(t *testing.T) {
	a, _ := newTestCLI(t, "")
	stubInputs(t, []string{"Siti", "Jl. Mawar", "+62", "siti@example.org"}, "rahasia", "rahasiA")

	err := a.Register(context.Background())
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Len(t, a.core.Slots.Users.Get(), 3)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	a, _ := newTestCLI(t, "")
	stubInputs(t, []string{"Admin 2", "Kampus", "+62", "ADMIN@swms.com"}, "1234", "1234")

	err := a.Register(context.Background())
	require.ErrorIs(t, err, common.ErrDuplicateEmail)
}

func TestRegister_InputError(t *testing.T) {
	a, _ := newTestCLI(t, "")
	stubInputs(t, []string{"Siti"})

	err := a.Register(context.Background())
	require.ErrorIs(t, err, io.EOF)
	assert.Len(t, a.core.Slots.Users.Get(), 3)
}

func TestLogin_OpensHome(t *testing.T) {
	tests := []struct {
		email string
		pw    string
		home  menu.ID
	}{
		{models.DemoAdminEmail, session.DemoPassword, menu.Dashboard},
		{models.DemoPetugasEmail, "demo", menu.Dashboard},
		{models.DemoViewerEmail, "", menu.Dashboard},
	}
	for _, tc := range tests {
		t.Run(tc.email, func(t *testing.T) {
			a, out := newTestCLI(t, "")
			stubInputs(t, []string{tc.email}, tc.pw)

			require.NoError(t, a.Login(context.Background()))
			require.True(t, a.isLoggedIn())
			assert.Equal(t, tc.home, a.view)
			assert.Contains(t, out.String(), "[SUCCESS] Welcome,")
			assert.Contains(t, out.String(), "* dashboard")
		})
	}
}

func TestLogin_Failures(t *testing.T) {
	a, _ := newTestCLI(t, "")

	stubInputs(t, []string{"nobody@swms.com"}, session.DemoPassword)
	require.ErrorIs(t, a.Login(context.Background()), common.ErrAccountNotFound)
	assert.False(t, a.isLoggedIn())

	stubInputs(t, []string{models.DemoAdminEmail}, "wrong")
	require.ErrorIs(t, a.Login(context.Background()), common.ErrInvalidCredential)
	assert.False(t, a.isLoggedIn())
}

func TestLoginAndRegister_RefusedWhileLoggedIn(t *testing.T) {
	ctx := context.Background()
	a, out := newTestCLI(t, "")
	signIn(t, a, models.DemoViewerEmail)
	a.view = menu.Profile

	stubInputs(t, []string{models.DemoAdminEmail}, session.DemoPassword)
	err := a.Login(ctx)
	require.ErrorIs(t, err, common.ErrForbidden)
	assert.Equal(t, models.DemoViewerEmail, a.core.Session.Current().Email, "session is not replaced")
	assert.Equal(t, menu.Profile, a.view)

	stubInputs(t, []string{"Siti", "Jl. Mawar", "+62", "siti@example.org"}, "rahasia", "rahasia")
	err = a.Register(ctx)
	require.ErrorIs(t, err, common.ErrForbidden)
	assert.Len(t, a.core.Slots.Users.Get(), 3)

	a.report(ctx, err)
	assert.Contains(t, out.String(), "[ERROR] Already logged in. Log out first.")

	require.NoError(t, a.Logout(ctx))
	stubInputs(t, []string{models.DemoAdminEmail}, session.DemoPassword)
	require.NoError(t, a.Login(ctx))
	assert.Equal(t, models.DemoAdminEmail, a.core.Session.Current().Email)
}

func TestLogout(t *testing.T) {
	a, out := newTestCLI(t, "")
	signIn(t, a, models.DemoAdminEmail)
	a.view, a.location = menu.Config, "Gedung A"

	require.NoError(t, a.Logout(context.Background()))
	assert.False(t, a.isLoggedIn())
	assert.Empty(t, a.view)
	assert.Empty(t, a.location)
	assert.Contains(t, out.String(), "[INFO] Logged out.")
}

func TestLogout_Idempotent(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestCLI(t, "")
	signIn(t, a, models.DemoViewerEmail)

	require.NoError(t, a.Logout(ctx))
	require.NoError(t, a.Logout(ctx))
	assert.False(t, a.isLoggedIn())
	assert.Nil(t, menu.Visible(a.core.Session.Current()))
	assert.False(t, menu.CanNavigate(a.core.Session.Current(), menu.Dashboard))
}
