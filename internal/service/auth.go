package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"

	"team-project-api/internal/repository"
)

// AuthService 负责登录和签发 JWT
type AuthService struct {
	tx        repository.Transactor
	userRepo  repository.UserRepository
	jwtSecret []byte
	jwtExpiry time.Duration
}

// NewAuthService 创建 AuthService 实例。
// jwtExpiryMinutes 非正数时使用默认的 60 分钟。
func NewAuthService(tx repository.Transactor, userRepo repository.UserRepository, jwtSecretKey string, jwtExpiryMinutes int) (*AuthService, error) {
	if tx == nil || userRepo == nil {
		panic("Transactor and UserRepository cannot be nil for AuthService")
	}
	if jwtSecretKey == "" {
		return nil, fmt.Errorf("JWT secret key cannot be empty")
	}
	if jwtExpiryMinutes <= 0 {
		jwtExpiryMinutes = 60
	}
	return &AuthService{
		tx:        tx,
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecretKey),
		jwtExpiry: time.Duration(jwtExpiryMinutes) * time.Minute,
	}, nil
}

// Login 校验用户名和密码，成功时返回 token 及其过期时间
func (s *AuthService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	logCtx := logrus.WithField("username", username)

	// 1. 查找用户
	var hash string
	var userID uint
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		user, err := s.userRepo.FindByUsername(ctx, username)
		if err != nil {
			return err
		}
		hash, userID = user.PasswordHash, user.ID
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logCtx.Warn("Login attempt failed: User not found")
			return "", time.Time{}, ErrAuthenticationFailed
		}
		// 存储不可用等错误不能伪装成认证失败
		return "", time.Time{}, mapRepoError(err, logCtx)
	}

	// 2. 验证密码
	if !checkPassword(password, hash) {
		logCtx.Warn("Login attempt failed: Invalid password")
		return "", time.Time{}, ErrAuthenticationFailed
	}

	// 3. 生成 JWT Token
	token, expiresAt, err := s.generateJWT(userID)
	if err != nil {
		logCtx.WithError(err).Error("Failed to generate JWT token during login")
		return "", time.Time{}, ErrInternalServer
	}

	logCtx.WithField("user_id", userID).Info("User logged in successfully")
	return token, expiresAt, nil
}

// generateJWT 为指定用户 ID 生成 JWT Token
func (s *AuthService) generateJWT(userID uint) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.jwtExpiry)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     expiresAt.Unix(),
		"iat":     now.Unix(),
	})
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, expiresAt, nil
}
