package auth_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zenflow/backend/internal/auth"
	"github.com/zenflow/backend/internal/database/models"
	"github.com/zenflow/backend/internal/testutil"
	"gorm.io/gorm"
)

type stubVerifier struct {
	identity *auth.GoogleIdentity
	err      error
}

func (s *stubVerifier) Verify(ctx context.Context, credential string) (*auth.GoogleIdentity, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.identity, nil
}

type recordingNotifier struct {
	welcomes []string
	err      error
}

func (n *recordingNotifier) SendWelcome(ctx context.Context, email, firstName string) error {
	n.welcomes = append(n.welcomes, email)
	return n.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T, db *gorm.DB, verifier auth.IdentityVerifier, notifier auth.Notifier) *auth.Service {
	t.Helper()
	return auth.NewService(db, testutil.CreateTestJWTService(), verifier, notifier, testLogger())
}

func validRegisterInput() auth.RegisterInput {
	return auth.RegisterInput{
		FirstName:    "Ana",
		LastName:     "Silva",
		Email:        "ana@x.com",
		Password:     "secret1",
		BusinessName: "Padaria",
		BusinessType: "food",
		CEP:          "00000-000",
		Phone:        "11999999999",
	}
}

func TestService_Register(t *testing.T) {
	t.Run("creates organization and owner together", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.CleanupTestDB(t, db)
		notifier := &recordingNotifier{}
		svc := newTestService(t, db, nil, notifier)

		user, err := svc.Register(context.Background(), validRegisterInput())
		require.NoError(t, err)

		assert.Equal(t, "Ana Silva", user.Name)
		assert.Equal(t, "ana@x.com", user.Email)
		assert.Equal(t, "owner", user.Role)
		assert.NotEmpty(t, user.PasswordHash)
		assert.NotEqual(t, "secret1", user.PasswordHash)
		require.NotNil(t, user.Organization)
		assert.Equal(t, "Padaria", user.Organization.Name)
		assert.Equal(t, models.PlanFree, user.Organization.Plan)
		assert.Equal(t, models.SubscriptionNone, user.Organization.SubscriptionStatus)

		var orgCount, userCount int64
		db.Model(&models.Organization{}).Count(&orgCount)
		db.Model(&models.User{}).Count(&userCount)
		assert.Equal(t, int64(1), orgCount)
		assert.Equal(t, int64(1), userCount)

		assert.Equal(t, []string{"ana@x.com"}, notifier.welcomes)
	})

	t.Run("lowercases email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.CleanupTestDB(t, db)
		svc := newTestService(t, db, nil, nil)

		input := validRegisterInput()
		input.Email = "Ana.Silva@X.COM"
		user, err := svc.Register(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, "ana.silva@x.com", user.Email)
	})

	t.Run("duplicate email leaves first pair untouched", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.CleanupTestDB(t, db)
		svc := newTestService(t, db, nil, nil)

		_, err := svc.Register(context.Background(), validRegisterInput())
		require.NoError(t, err)

		second := validRegisterInput()
		second.BusinessName = "Outra Padaria"
		_, err = svc.Register(context.Background(), second)
		assert.ErrorIs(t, err, auth.ErrEmailTaken)

		// No partial second organization
		var orgCount, userCount int64
		db.Model(&models.Organization{}).Count(&orgCount)
		db.Model(&models.User{}).Count(&userCount)
		assert.Equal(t, int64(1), orgCount)
		assert.Equal(t, int64(1), userCount)
	})

	t.Run("user insert failure rolls back the organization", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.CleanupTestDB(t, db)
		svc := newTestService(t, db, nil, nil)

		// Force the users insert to fail after the organization insert
		// has already run inside the same transaction.
		err := db.Callback().Create().Before("gorm:create").Register("reject_users_insert", func(tx *gorm.DB) {
			if tx.Statement.Table == "users" {
				tx.AddError(errors.New("users insert rejected"))
			}
		})
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), validRegisterInput())
		require.Error(t, err)
		assert.NotErrorIs(t, err, auth.ErrEmailTaken)

		var orgCount, userCount int64
		db.Model(&models.Organization{}).Count(&orgCount)
		db.Model(&models.User{}).Count(&userCount)
		assert.Equal(t, int64(0), orgCount)
		assert.Equal(t, int64(0), userCount)
	})

	t.Run("notification failure does not fail registration", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.CleanupTestDB(t, db)
		notifier := &recordingNotifier{err: errors.New("queue down")}
		svc := newTestService(t, db, nil, notifier)

		_, err := svc.Register(context.Background(), validRegisterInput())
		assert.NoError(t, err)
	})
}

func TestService_Login(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	svc := newTestService(t, db, nil, nil)

	_, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	t.Run("valid credentials issue a token", func(t *testing.T) {
		res, err := svc.Login(context.Background(), auth.LoginInput{Email: "ana@x.com", Password: "secret1"})
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
		assert.Equal(t, "ana@x.com", res.User.Email)
	})

	t.Run("wrong password and unknown email fail alike", func(t *testing.T) {
		_, wrongPw := svc.Login(context.Background(), auth.LoginInput{Email: "ana@x.com", Password: "nope"})
		_, unknown := svc.Login(context.Background(), auth.LoginInput{Email: "ghost@x.com", Password: "secret1"})

		assert.ErrorIs(t, wrongPw, auth.ErrInvalidCredentials)
		assert.ErrorIs(t, unknown, auth.ErrInvalidCredentials)
		assert.Equal(t, wrongPw, unknown)
	})

	t.Run("email lookup is case-insensitive", func(t *testing.T) {
		res, err := svc.Login(context.Background(), auth.LoginInput{Email: "ANA@X.COM", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, "ana@x.com", res.User.Email)
	})
}

func TestService_LoginWithGoogle(t *testing.T) {
	identity := &auth.GoogleIdentity{
		Subject: "google-subject-123",
		Email:   "maria@x.com",
		Name:    "Maria Souza",
		Picture: "https://example.com/maria.png",
	}

	t.Run("unknown email creates organization and user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.CleanupTestDB(t, db)
		svc := newTestService(t, db, &stubVerifier{identity: identity}, nil)

		res, err := svc.LoginWithGoogle(context.Background(), "stub-credential")
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
		assert.Equal(t, "maria@x.com", res.User.Email)
		assert.Equal(t, "google-subject-123", res.User.GoogleID)
		assert.Equal(t, "https://example.com/maria.png", res.User.AvatarURL)
		assert.Equal(t, "owner", res.User.Role)
		assert.Empty(t, res.User.PasswordHash)
		require.NotNil(t, res.User.Organization)
		assert.Equal(t, "Maria Souza's Business", res.User.Organization.Name)

		var orgCount int64
		db.Model(&models.Organization{}).Count(&orgCount)
		assert.Equal(t, int64(1), orgCount)
	})

	t.Run("links onto existing password account without duplicating", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.CleanupTestDB(t, db)
		svc := newTestService(t, db, &stubVerifier{identity: &auth.GoogleIdentity{
			Subject: "google-subject-456",
			Email:   "ana@x.com",
			Name:    "Ana Silva",
			Picture: "https://example.com/ana.png",
		}}, nil)

		registered, err := svc.Register(context.Background(), validRegisterInput())
		require.NoError(t, err)

		res, err := svc.LoginWithGoogle(context.Background(), "stub-credential")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, res.User.ID)
		assert.Equal(t, "google-subject-456", res.User.GoogleID)

		var userCount int64
		db.Model(&models.User{}).Count(&userCount)
		assert.Equal(t, int64(1), userCount)

		// Dual-mode: the password still works after linking
		_, err = svc.Login(context.Background(), auth.LoginInput{Email: "ana@x.com", Password: "secret1"})
		assert.NoError(t, err)
	})

	t.Run("second federated login does not re-link or duplicate", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.CleanupTestDB(t, db)
		svc := newTestService(t, db, &stubVerifier{identity: identity}, nil)

		first, err := svc.LoginWithGoogle(context.Background(), "stub-credential")
		require.NoError(t, err)
		second, err := svc.LoginWithGoogle(context.Background(), "stub-credential")
		require.NoError(t, err)

		assert.Equal(t, first.User.ID, second.User.ID)
		assert.Equal(t, first.User.GoogleID, second.User.GoogleID)

		var orgCount, userCount int64
		db.Model(&models.Organization{}).Count(&orgCount)
		db.Model(&models.User{}).Count(&userCount)
		assert.Equal(t, int64(1), orgCount)
		assert.Equal(t, int64(1), userCount)
	})

	t.Run("invalid assertion aborts without side effects", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.CleanupTestDB(t, db)
		svc := newTestService(t, db, &stubVerifier{err: auth.ErrInvalidGoogleToken}, nil)

		_, err := svc.LoginWithGoogle(context.Background(), "bad-credential")
		assert.ErrorIs(t, err, auth.ErrInvalidGoogleToken)

		var userCount int64
		db.Model(&models.User{}).Count(&userCount)
		assert.Equal(t, int64(0), userCount)
	})
}

func TestService_GetUserByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	svc := newTestService(t, db, nil, nil)

	user, err := svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	t.Run("returns existing user with organization", func(t *testing.T) {
		got, err := svc.GetUserByID(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.Email, got.Email)
		require.NotNil(t, got.Organization)
		assert.Equal(t, "Padaria", got.Organization.Name)
	})

	t.Run("deleted user yields not found", func(t *testing.T) {
		require.NoError(t, db.Unscoped().Delete(&models.User{}, "id = ?", user.ID).Error)

		_, err := svc.GetUserByID(context.Background(), user.ID)
		assert.ErrorIs(t, err, auth.ErrUserNotFound)
	})
}
