package usecase

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"trazot/internal/domain/entity"
	"trazot/internal/domain/repository"
	"trazot/pkg/errors"
	"trazot/pkg/logger"
)

const minPasswordLength = 8

// AuthUseCase manages the single shared admin credential: first-run setup,
// login, and recovery-key reset. Passwords are stored as bcrypt hashes and
// sessions are signed JWTs; there is no master bypass.
type AuthUseCase struct {
	store     repository.Store
	jwtSecret []byte
	jwtExpiry time.Duration
}

func NewAuthUseCase(store repository.Store, jwtSecret string, jwtExpirySeconds int64) *AuthUseCase {
	return &AuthUseCase{
		store:     store,
		jwtSecret: []byte(jwtSecret),
		jwtExpiry: time.Duration(jwtExpirySeconds) * time.Second,
	}
}

type SetupResult struct {
	// RecoveryKey is displayed exactly once; it is not retrievable later.
	RecoveryKey string `json:"recovery_key"`
}

type LoginResult struct {
	Token string `json:"token"`
}

// NeedsSetup reports whether no credential exists yet, which forces the
// first-run setup flow.
func (uc *AuthUseCase) NeedsSetup(ctx context.Context) (bool, error) {
	credential, err := uc.store.AdminCredential(ctx)
	if err != nil {
		return false, errors.Internal("Failed to read admin credential", err)
	}
	return credential == nil, nil
}

// Setup creates the credential on first run.
func (uc *AuthUseCase) Setup(ctx context.Context, password string) (*SetupResult, error) {
	existing, err := uc.store.AdminCredential(ctx)
	if err != nil {
		return nil, errors.Internal("Failed to read admin credential", err)
	}
	if existing != nil {
		return nil, errors.Conflict("Admin credential already configured")
	}
	if len(password) < minPasswordLength {
		return nil, errors.BadRequest("Password must be at least 8 characters", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Internal("Failed to hash password", err)
	}

	credential := &entity.AdminCredential{
		PasswordHash: string(hash),
		RecoveryKey:  uuid.New().String(),
		UpdatedAt:    time.Now(),
	}
	if err := uc.store.SaveAdminCredential(ctx, credential); err != nil {
		return nil, errors.Internal("Failed to save admin credential", err)
	}

	logger.Info("Admin credential configured")
	return &SetupResult{RecoveryKey: credential.RecoveryKey}, nil
}

// Login verifies the password and issues a session token.
func (uc *AuthUseCase) Login(ctx context.Context, password string) (*LoginResult, error) {
	credential, err := uc.store.AdminCredential(ctx)
	if err != nil {
		return nil, errors.Internal("Failed to read admin credential", err)
	}
	if credential == nil {
		return nil, errors.NotFound("Admin credential", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(credential.PasswordHash), []byte(password)); err != nil {
		return nil, errors.Unauthorized("Invalid credentials", err)
	}

	token, err := uc.issueToken()
	if err != nil {
		return nil, errors.Internal("Failed to issue session token", err)
	}
	return &LoginResult{Token: token}, nil
}

// Reset overwrites the password when the recovery key matches. The recovery
// key itself is kept.
func (uc *AuthUseCase) Reset(ctx context.Context, recoveryKey, newPassword string) error {
	credential, err := uc.store.AdminCredential(ctx)
	if err != nil {
		return errors.Internal("Failed to read admin credential", err)
	}
	if credential == nil {
		return errors.NotFound("Admin credential", nil)
	}
	if credential.RecoveryKey != recoveryKey {
		return errors.Unauthorized("Invalid recovery key", nil)
	}
	if len(newPassword) < minPasswordLength {
		return errors.BadRequest("Password must be at least 8 characters", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.Internal("Failed to hash password", err)
	}

	credential.PasswordHash = string(hash)
	credential.UpdatedAt = time.Now()
	if err := uc.store.SaveAdminCredential(ctx, credential); err != nil {
		return errors.Internal("Failed to save admin credential", err)
	}

	logger.Info("Admin password reset via recovery key")
	return nil
}

func (uc *AuthUseCase) issueToken() (string, error) {
	claims := jwt.MapClaims{
		"role": "admin",
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(uc.jwtExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(uc.jwtSecret)
}

// VerifyToken validates a session token and confirms the admin role claim.
func (uc *AuthUseCase) VerifyToken(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Unauthorized("Unexpected signing method", nil)
		}
		return uc.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return errors.Unauthorized("Invalid or expired token", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["role"] != "admin" {
		return errors.Forbidden("Admin privileges required", nil)
	}
	return nil
}
