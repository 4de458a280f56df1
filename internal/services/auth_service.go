package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yukikurage/task-management-api/internal/models"
	"github.com/yukikurage/task-management-api/internal/repository"
	"github.com/yukikurage/task-management-api/internal/utils"
)

var (
	ErrPasswordsNotMatching = errors.New("passwords are not matching")
	ErrEmailTaken           = errors.New("email already taken")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrAccountDisabled      = errors.New("account is disabled")
	ErrAccountLocked        = errors.New("account is locked")
	ErrTokenNotFound        = errors.New("confirmation token not found")
	ErrTokenConfirmed       = errors.New("confirmation token already confirmed")
	ErrTokenExpired         = errors.New("confirmation token expired")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService owns the registration, authentication and email confirmation
// workflow. Every confirmation token moves pending -> confirmed exactly once;
// expiry is detected lazily when the token is exchanged.
type AuthService struct {
	userRepo    repository.UserRepository
	tokenRepo   repository.TokenRepository
	jwtService  *JWTService
	emailSender EmailSender
	baseURL     string
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	userRepo repository.UserRepository,
	tokenRepo repository.TokenRepository,
	jwtService *JWTService,
	emailSender EmailSender,
	baseURL string,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		tokenRepo:   tokenRepo,
		jwtService:  jwtService,
		emailSender: emailSender,
		baseURL:     baseURL,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Email            string
	Password         string
	MatchingPassword string
	Name             string
}

// AuthenticationResult carries the session token issued for a user, and for
// registration also the raw confirmation token value.
type AuthenticationResult struct {
	JWT               string
	ConfirmationToken string
}

// Register creates a disabled user, persists a pending confirmation token,
// emails the confirmation link and issues a session token. Nothing is
// persisted when validation fails.
func (s *AuthService) Register(input RegisterInput) (*AuthenticationResult, error) {
	if input.Password != input.MatchingPassword {
		return nil, ErrPasswordsNotMatching
	}

	taken, err := s.userRepo.ExistsByEmail(input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Name:         input.Name,
		Role:         models.RoleUser,
	}

	token := utils.NewConfirmationToken(0, time.Now())
	if err := s.userRepo.CreateWithToken(user, &token); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	jwtToken, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	s.dispatchConfirmationEmail(user, token.Token)

	return &AuthenticationResult{
		JWT:               jwtToken,
		ConfirmationToken: token.Token,
	}, nil
}

// Authenticate verifies credentials and issues a session token. Account state
// checks mirror the order of the credential provider: existence, lock,
// enablement, then the password itself.
func (s *AuthService) Authenticate(email, password string) (*AuthenticationResult, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user.Locked {
		return nil, ErrAccountLocked
	}
	if !user.Enabled {
		return nil, ErrAccountDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	jwtToken, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	return &AuthenticationResult{JWT: jwtToken}, nil
}

// Confirm exchanges a pending confirmation token and enables its user. A
// confirmed token is never accepted again; an expired one is rejected even if
// it was never confirmed.
func (s *AuthService) Confirm(tokenValue string) error {
	token, err := s.tokenRepo.FindByValue(tokenValue)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTokenNotFound
		}
		return fmt.Errorf("failed to find confirmation token: %w", err)
	}

	if token.Confirmed() {
		return ErrTokenConfirmed
	}

	now := time.Now()
	if token.Expired(now) {
		return ErrTokenExpired
	}

	token.ConfirmedAt = &now
	if err := s.tokenRepo.ConfirmAndEnableUser(token); err != nil {
		return fmt.Errorf("failed to confirm token: %w", err)
	}

	return nil
}

// UpdateProfileInput represents the full replacement profile of a user.
type UpdateProfileInput struct {
	Email    string
	Password string
	Name     string
}

// UpdateProfile re-hashes the password and replaces the name unconditionally.
// When the email changes the account is disabled again and a fresh
// confirmation token is issued for the new address. Earlier outstanding
// tokens stay valid until they expire.
func (s *AuthService) UpdateProfile(actor *models.User, input UpdateProfileInput) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return ErrFailedToHashPassword
	}
	actor.PasswordHash = string(hashedPassword)
	actor.Name = input.Name

	if input.Email == actor.Email {
		if err := s.userRepo.Update(actor); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		return nil
	}

	taken, err := s.userRepo.ExistsByEmail(input.Email)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return ErrEmailTaken
	}

	actor.Email = input.Email
	actor.Enabled = false

	token := utils.NewConfirmationToken(actor.ID, time.Now())
	if err := s.userRepo.UpdateWithToken(actor, &token); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	s.dispatchConfirmationEmail(actor, token.Token)

	return nil
}

// dispatchConfirmationEmail builds the confirmation link and hands it to the
// sender. Delivery failure does not fail the surrounding operation; the user
// can still be enabled through the returned raw token.
func (s *AuthService) dispatchConfirmationEmail(user *models.User, tokenValue string) {
	link := fmt.Sprintf("%s/api/auth/confirm?token=%s", s.baseURL, tokenValue)
	if err := s.emailSender.SendConfirmationEmail(user.Email, user.Name, link); err != nil {
		log.Printf("failed to send confirmation email to %s: %v", user.Email, err)
	}
}
