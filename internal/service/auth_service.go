package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"jobportal/internal/auth"
	"jobportal/internal/mail"
	"jobportal/internal/model"
	"jobportal/internal/repository"
)

const (
	bcryptCost = 10

	verifyTokenTTL = time.Hour
	resetTokenTTL  = 15 * time.Minute
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailAlreadyRegistered is returned when registering an existing email.
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	// ErrEmailNotVerified is returned when an unverified user tries to login.
	ErrEmailNotVerified = errors.New("please verify your email to login")
	// ErrRoleMismatch is returned when the login role does not match the account.
	ErrRoleMismatch = errors.New("user with provided email not found")
	// ErrInvalidVerifyToken is returned for unknown or expired verification tokens.
	ErrInvalidVerifyToken = errors.New("invalid or expired verification token")
	// ErrInvalidResetToken is returned for unknown or expired reset tokens.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
	// ErrPasswordMismatch is returned when password and confirmation differ.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrInvalidRefreshToken is returned when refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	// ErrMailDelivery is returned when a transactional email cannot be sent.
	ErrMailDelivery = errors.New("email could not be sent")
	// ErrUserNotFoundByEmail is returned when forgot-password targets an unknown email.
	ErrUserNotFoundByEmail = errors.New("user not found with that email")
)

// RegisterInput is the registration form.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     model.Role
}

// TokenPair carries the issued access and refresh tokens.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService handles account creation and session operations.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	VerifyEmail(ctx context.Context, token string) error
	Login(ctx context.Context, email, password string, role model.Role) (*TokenPair, *model.User, error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken, accessToken string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password, confirmPassword string) (*TokenPair, *model.User, error)
}

type authService struct {
	users       repository.UserRepository
	jwtService  *auth.JWTService
	tokenStore  auth.TokenStoreInterface
	mailer      mail.Mailer
	frontendURL string
	now         func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	users repository.UserRepository,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	mailer mail.Mailer,
	frontendURL string,
) AuthService {
	return &authService{
		users:       users,
		jwtService:  jwtService,
		tokenStore:  tokenStore,
		mailer:      mailer,
		frontendURL: frontendURL,
		now:         time.Now,
	}
}

// Register creates an unverified user and emails a time-boxed verification link.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err == nil && existing != nil {
		return nil, ErrEmailAlreadyRegistered
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	verifyToken, err := randomToken(32)
	if err != nil {
		return nil, fmt.Errorf("generate verify token: %w", err)
	}
	expiry := s.now().Add(verifyTokenTTL)

	user := &model.User{
		Name:              in.Name,
		Email:             in.Email,
		Phone:             in.Phone,
		PasswordHash:      string(hashedPassword),
		Role:              in.Role,
		VerifyToken:       verifyToken,
		VerifyTokenExpiry: &expiry,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	verifyURL := fmt.Sprintf("%s/verify/%s", s.frontendURL, verifyToken)
	message := fmt.Sprintf("Click here to verify your account: %s", verifyURL)
	if err := s.mailer.Send(ctx, user.Email, "Verify your Job Portal account", message); err != nil {
		return nil, ErrMailDelivery
	}

	return user, nil
}

// VerifyEmail marks the token's user as verified and burns the token.
func (s *authService) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.users.FindByVerifyToken(ctx, token, s.now())
	if err != nil {
		return ErrInvalidVerifyToken
	}

	user.IsVerified = true
	user.VerifyToken = ""
	user.VerifyTokenExpiry = nil
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// Login authenticates a verified user and issues access and refresh tokens.
// The supplied role must match the account's role.
func (s *authService) Login(ctx context.Context, email, password string, role model.Role) (*TokenPair, *model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	if !user.IsVerified {
		return nil, nil, ErrEmailNotVerified
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	if user.Role != role {
		return nil, nil, ErrRoleMismatch
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

// RefreshToken validates a refresh token and returns a new access token.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	storedUserID, storedEmail, storedRole, err := s.tokenStore.GetRefreshToken(ctx, tokenID)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	if storedUserID != claims.UserID || storedEmail != claims.Email || storedRole != claims.Role {
		return "", ErrInvalidRefreshToken
	}

	accessToken, err := s.jwtService.GenerateAccessToken(claims.UserID, claims.Email, claims.Role)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout invalidates a refresh token and blacklists the current access token
// for its remaining lifetime, so a stolen pair dies together.
func (s *authService) Logout(ctx context.Context, refreshToken, accessToken string) error {
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return ErrInvalidRefreshToken
	}
	if err := s.tokenStore.DeleteRefreshToken(ctx, tokenID); err != nil {
		return err
	}

	if accessToken == "" {
		return nil
	}
	claims, err := s.jwtService.ValidateToken(accessToken)
	if err != nil || claims.ID == "" {
		// an already expired or malformed access token needs no blacklisting
		return nil
	}
	if ttl := claims.ExpiresAt.Time.Sub(s.now()); ttl > 0 {
		if err := s.tokenStore.BlacklistAccessToken(ctx, claims.ID, ttl); err != nil {
			return fmt.Errorf("blacklist access token: %w", err)
		}
	}
	return nil
}

// ForgotPassword stores a hashed, time-boxed reset token and emails the raw
// token. The stored token is rolled back when the email cannot be delivered.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrUserNotFoundByEmail
		}
		return fmt.Errorf("find user: %w", err)
	}

	resetToken, err := randomToken(20)
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}

	expiry := s.now().Add(resetTokenTTL)
	user.ResetPasswordToken = hashToken(resetToken)
	user.ResetPasswordExpiry = &expiry
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/password/reset/%s", s.frontendURL, resetToken)
	message := fmt.Sprintf("You requested a password reset. Click here to set a new password:\n\n%s\n\nIf you didn't request this, please ignore.", resetURL)
	if err := s.mailer.Send(ctx, user.Email, "Password Reset Request", message); err != nil {
		// roll the token back so a half-delivered reset cannot be used
		user.ResetPasswordToken = ""
		user.ResetPasswordExpiry = nil
		_ = s.users.Update(ctx, user)
		return ErrMailDelivery
	}

	return nil
}

// ResetPassword burns a valid reset token, replaces the password, and logs
// the user in with fresh tokens.
func (s *authService) ResetPassword(ctx context.Context, token, password, confirmPassword string) (*TokenPair, *model.User, error) {
	if password != confirmPassword {
		return nil, nil, ErrPasswordMismatch
	}

	user, err := s.users.FindByResetToken(ctx, hashToken(token), s.now())
	if err != nil {
		return nil, nil, ErrInvalidResetToken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = string(hashedPassword)
	user.ResetPasswordToken = ""
	user.ResetPasswordExpiry = nil
	if err := s.users.Update(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("update user: %w", err)
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

func (s *authService) issueTokens(ctx context.Context, user *model.User) (*TokenPair, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.ID, user.Email, user.Role, auth.RefreshTokenExpiry); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func randomToken(bytes int) (string, error) {
	buf := make([]byte, bytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
