package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"hrms/audit"
	"hrms/models"
	"hrms/tenant"
	"hrms/testutil"
	"hrms/utils"
)

func newAuthService(t *testing.T) (*AuthService, *fakeRecorder, *utils.TokenService) {
	t.Helper()

	db := testutil.NewDB(t)
	tokens := utils.NewTokenService("test-secret", 30*24*time.Hour)
	recorder := &fakeRecorder{}
	svc := NewAuthService(db, tokens, recorder, testutil.NewLogger())
	svc.hashCost = bcrypt.MinCost
	return svc, recorder, tokens
}

func TestAuthServiceRegisterLogin(t *testing.T) {
	svc, recorder, tokens := newAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterInput{
		OrgName:   "Acme",
		AdminName: "Ada",
		Email:     "Ada@Acme.test",
		Password:  "s3cret-pass",
	})
	require.NoError(t, err)
	require.NotZero(t, registered.UserID)
	require.NotZero(t, registered.OrgID)

	claims, err := tokens.Verify(registered.Token)
	require.NoError(t, err)
	require.Equal(t, registered.UserID, claims.UserID)
	require.Equal(t, registered.OrgID, claims.OrgID)

	var user models.User
	require.NoError(t, svc.db.First(&user, registered.UserID).Error)
	require.Equal(t, "ada@acme.test", user.Email)
	require.NotEqual(t, "s3cret-pass", user.PasswordHash)

	loggedIn, err := svc.Login(ctx, LoginInput{Email: "ada@acme.test", Password: "s3cret-pass", OrgName: "Acme"})
	require.NoError(t, err)
	require.Equal(t, registered.UserID, loggedIn.UserID)
	require.Equal(t, registered.OrgID, loggedIn.OrgID)

	claims, err = tokens.Verify(loggedIn.Token)
	require.NoError(t, err)
	require.Equal(t, registered.UserID, claims.UserID)
	require.Equal(t, registered.OrgID, claims.OrgID)

	require.Equal(t, []string{audit.ActionOrganisationRegistered, audit.ActionUserLoggedIn}, recorder.actions())
	require.Equal(t, registered.OrgID, recorder.last().OrgID)
}

func TestAuthServiceRegisterErrors(t *testing.T) {
	svc, recorder, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{OrgName: "Acme", Email: "ada@acme.test", Password: "pw"})
	require.Error(t, err)
	require.Equal(t, utils.KindValidation, utils.KindOf(err))

	_, err = svc.Register(ctx, RegisterInput{OrgName: "Acme", AdminName: "Ada", Email: "not-an-email", Password: "pw"})
	require.Equal(t, utils.KindValidation, utils.KindOf(err))

	_, err = svc.Register(ctx, RegisterInput{OrgName: "Acme", AdminName: "Ada", Email: "ada@acme.test", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{OrgName: "Other", AdminName: "Ada", Email: "ada@acme.test", Password: "pw"})
	require.Equal(t, utils.KindValidation, utils.KindOf(err))
	require.Equal(t, "Email already exists.", err.Error())

	_, err = svc.Register(ctx, RegisterInput{OrgName: "Acme", AdminName: "Bob", Email: "bob@acme.test", Password: "pw"})
	require.Equal(t, utils.KindConflict, utils.KindOf(err))

	var orgs int64
	require.NoError(t, svc.db.Model(&models.Organisation{}).Count(&orgs).Error)
	require.Equal(t, int64(1), orgs)
	require.Len(t, recorder.actions(), 1)
}

func TestAuthServiceLoginErrors(t *testing.T) {
	svc, recorder, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{OrgName: "Acme", AdminName: "Ada", Email: "ada@acme.test", Password: "right"})
	require.NoError(t, err)
	_, err = svc.Register(ctx, RegisterInput{OrgName: "Globex", AdminName: "Hank", Email: "hank@globex.test", Password: "right"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginInput{Email: "ada@acme.test", Password: "right"})
	require.Equal(t, utils.KindValidation, utils.KindOf(err))

	_, err = svc.Login(ctx, LoginInput{Email: "ada@acme.test", Password: "right", OrgName: "Initech"})
	require.Equal(t, utils.KindNotFound, utils.KindOf(err))
	require.Equal(t, "Organisation not found.", err.Error())

	_, wrongPassword := svc.Login(ctx, LoginInput{Email: "ada@acme.test", Password: "wrong", OrgName: "Acme"})
	_, unknownUser := svc.Login(ctx, LoginInput{Email: "nobody@acme.test", Password: "right", OrgName: "Acme"})
	_, otherOrg := svc.Login(ctx, LoginInput{Email: "hank@globex.test", Password: "right", OrgName: "Acme"})

	for _, err := range []error{wrongPassword, unknownUser, otherOrg} {
		require.Equal(t, utils.KindValidation, utils.KindOf(err))
		require.Equal(t, "Invalid credentials.", err.Error())
	}

	require.Equal(t, []string{audit.ActionOrganisationRegistered, audit.ActionOrganisationRegistered}, recorder.actions())
}

func TestAuthServiceLogout(t *testing.T) {
	svc, recorder, _ := newAuthService(t)

	err := svc.Logout(context.Background())
	require.Equal(t, utils.KindUnauthenticated, utils.KindOf(err))
	require.Empty(t, recorder.actions())

	ctx := tenant.WithContext(context.Background(), tenant.Context{UserID: 4, OrgID: 2})
	require.NoError(t, svc.Logout(ctx))
	require.Equal(t, recordedEntry{
		Action: audit.ActionUserLoggedOut,
		UserID: 4,
		OrgID:  2,
		Meta:   audit.Meta{"userId": uint(4)},
	}, recorder.last())
}
