package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/zenflow/backend/internal/database/models"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Notifier delivers out-of-band notifications. Delivery is fire-and-forget:
// the service logs failures and never surfaces or retries them.
type Notifier interface {
	SendWelcome(ctx context.Context, email, firstName string) error
}

type Service struct {
	db       *gorm.DB
	jwt      *JWTService
	verifier IdentityVerifier
	notifier Notifier
	logger   *slog.Logger
}

func NewService(db *gorm.DB, jwt *JWTService, verifier IdentityVerifier, notifier Notifier, logger *slog.Logger) *Service {
	return &Service{
		db:       db,
		jwt:      jwt,
		verifier: verifier,
		notifier: notifier,
		logger:   logger,
	}
}

type RegisterInput struct {
	FirstName    string
	LastName     string
	Email        string
	Password     string
	BusinessName string
	BusinessType string
	CEP          string
	Phone        string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	Token string
	User  *models.User
}

// Register provisions a new organization together with its owner user in a
// single transaction. Either both rows commit or neither does.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	email := normalizeEmail(input.Email)

	// Fast path for the common duplicate case. The unique index on email is
	// what actually decides a concurrent race.
	var existing models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	org := models.Organization{
		Name:         input.BusinessName,
		BusinessType: input.BusinessType,
		CEP:          input.CEP,
		Phone:        input.Phone,
	}

	var user models.User
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&org).Error; err != nil {
			return err
		}

		user = models.User{
			OrganizationID: org.ID,
			Name:           input.FirstName + " " + input.LastName,
			Email:          email,
			PasswordHash:   hash,
			Role:           "owner",
		}

		return tx.Create(&user).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	user.Organization = &org

	// Post-commit. A failed enqueue must not affect the already-committed
	// registration.
	s.sendWelcome(ctx, user.Email, input.FirstName)

	return &user, nil
}

// Login verifies password credentials and issues a session token. Unknown
// emails and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	var user models.User
	if err := s.db.WithContext(ctx).
		Where("email = ?", normalizeEmail(input.Email)).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.HasPassword() || !CheckPassword(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, user.OrganizationID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, User: &user}, nil
}

// LoginWithGoogle verifies a Google ID token and resolves it to a user:
// a fresh organization+user for an unknown email, a one-time link of the
// Google identity onto an existing password account, or a plain login for an
// already linked account. It always ends by issuing a session token.
func (s *Service) LoginWithGoogle(ctx context.Context, credential string) (*AuthResult, error) {
	identity, err := s.verifier.Verify(ctx, credential)
	if err != nil {
		return nil, err
	}

	email := normalizeEmail(identity.Email)

	var user models.User
	err = s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		org := models.Organization{
			Name: identity.Name + "'s Business",
		}
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&org).Error; err != nil {
				return err
			}

			user = models.User{
				OrganizationID: org.ID,
				Name:           identity.Name,
				Email:          email,
				GoogleID:       identity.Subject,
				AvatarURL:      identity.Picture,
				Role:           "owner",
			}

			return tx.Create(&user).Error
		})
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrEmailTaken
			}
			return nil, err
		}
		user.Organization = &org

	case err != nil:
		return nil, err

	default:
		if user.GoogleID == "" {
			// Existing password account: link the federated identity once.
			updates := map[string]interface{}{
				"google_id":  identity.Subject,
				"avatar_url": identity.Picture,
			}
			if err := s.db.WithContext(ctx).Model(&user).Updates(updates).Error; err != nil {
				return nil, err
			}
			user.GoogleID = identity.Subject
			user.AvatarURL = identity.Picture
		}
	}

	token, err := s.jwt.GenerateToken(user.ID, user.OrganizationID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, User: &user}, nil
}

func (s *Service) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).
		Preload("Organization").
		First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *Service) sendWelcome(ctx context.Context, email, firstName string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendWelcome(ctx, email, firstName); err != nil {
		s.logger.Warn("failed to enqueue welcome notification", "email", email, "error", err)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
