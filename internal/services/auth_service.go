package services

import (
	"strings"
	"time"

	"recruitdesk_backend/internal/auth"
	"recruitdesk_backend/internal/logger"
	"recruitdesk_backend/internal/models"
	"recruitdesk_backend/internal/repositories"
	"recruitdesk_backend/internal/services/dto"
	"recruitdesk_backend/pkg/apperrors"
)

const refreshTokenTTL = 30 * 24 * time.Hour

type AuthService interface {
	Register(req *dto.RegisterRequest) (string, error)
	Login(req *dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(refreshToken string) (*dto.LoginResponse, error)
	Logout(refreshToken string) error
}

type AuthServiceImpl struct {
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	tokenManager     *auth.TokenManager
}

func NewAuthService(
	userRepo repositories.UserRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	tokenManager *auth.TokenManager,
) AuthService {
	return &AuthServiceImpl{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		tokenManager:     tokenManager,
	}
}

// Register creates a user. Email and username are normalized to lowercase;
// the username becomes the mention-resolution key.
func (s *AuthServiceImpl) Register(req *dto.RegisterRequest) (string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.ToLower(strings.TrimSpace(req.Username))

	// Pre-flight uniqueness checks for field-level errors; the unique
	// indexes still enforce this under races.
	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return "", apperrors.ErrEmailAlreadyExists.WithDetails(map[string]string{"email": "Email already in use"})
	} else if !apperrors.Is(err, repositories.ErrUserNotFound) {
		return "", apperrors.InternalError(err)
	}
	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return "", apperrors.ErrUsernameAlreadyExists.WithDetails(map[string]string{"username": "Username already taken"})
	} else if !apperrors.Is(err, repositories.ErrUserNotFound) {
		return "", apperrors.InternalError(err)
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return "", apperrors.InternalError(err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
	}

	if err := s.userRepo.Create(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			// Raced past the preflight checks; the driver does not say
			// which unique index fired.
			return "", apperrors.ErrUserAlreadyExists
		}
		return "", apperrors.InternalError(err)
	}

	return user.ID, nil
}

func (s *AuthServiceImpl) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// Refresh rotates the refresh token and issues a new access token.
func (s *AuthServiceImpl) Refresh(refreshToken string) (*dto.LoginResponse, error) {
	stored, err := s.refreshTokenRepo.FindByToken(refreshToken)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRefreshTokenNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}

	if time.Now().After(stored.ExpiresAt) {
		_ = s.refreshTokenRepo.Delete(refreshToken)
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(stored.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	if err := s.refreshTokenRepo.Delete(refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.issueTokens(user)
}

func (s *AuthServiceImpl) Logout(refreshToken string) error {
	if err := s.refreshTokenRepo.Delete(refreshToken); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) issueTokens(user *models.User) (*dto.LoginResponse, error) {
	// Opportunistic sweep so expired tokens do not accumulate.
	if err := s.refreshTokenRepo.DeleteExpired(); err != nil {
		logger.Warn("expired refresh token sweep failed", "error", err)
	}

	accessToken, err := s.tokenManager.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refresh, err := auth.GenerateRefreshToken()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.refreshTokenRepo.Create(&models.RefreshToken{
		UserID:    user.ID,
		Token:     refresh,
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refresh,
		User: dto.UserResponse{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			Username:  user.Username,
			CreatedAt: user.CreatedAt,
		},
	}, nil
}
