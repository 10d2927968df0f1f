package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"
)

// ContextUserIDKey 是认证通过后写入 gin.Context 的用户 ID 键
const ContextUserIDKey = "user_id"

var (
	// ErrMissingAuthHeader 表示请求没有 Authorization 头
	ErrMissingAuthHeader = errors.New("missing Authorization header")
	errInvalidSubject    = errors.New("token has no valid user_id claim")
)

// Auth 返回一个验证 Bearer JWT 的 Gin 中间件，通过后把用户 ID 写入上下文。
// jwtSecret 必须与签发 token 的 AuthService 使用同一个。
func Auth(jwtSecret string) gin.HandlerFunc {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty for Auth middleware")
	}
	secret := []byte(jwtSecret)

	return func(c *gin.Context) {
		// 1. 提取 Token
		tokenStr, err := extractToken(c)
		if err != nil {
			if errors.Is(err, ErrMissingAuthHeader) {
				logrus.Warn("Auth middleware: Missing Authorization header")
				abortUnauthorized(c, "Authorization header is required")
			} else {
				logrus.WithError(err).Warn("Auth middleware: Malformed Authorization header")
				abortUnauthorized(c, "Invalid token format")
			}
			return
		}

		// 2. 验证签名、过期时间和 user_id
		userID, err := validateToken(tokenStr, secret)
		if err != nil {
			logCtx := logrus.WithError(err)
			var validationError *jwt.ValidationError
			if errors.As(err, &validationError) && validationError.Errors&jwt.ValidationErrorExpired != 0 {
				logCtx = logCtx.WithField("reason", "expired")
			}
			logCtx.Warn("Auth middleware: Invalid token")
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(ContextUserIDKey, userID)
		logrus.WithField("user_id", userID).Debug("Auth middleware: User authenticated via JWT")
		c.Next()
	}
}

// UserIDFromContext 返回 Auth 中间件写入的用户 ID
func UserIDFromContext(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}

// extractToken 从 "Bearer <token>" 格式的 Authorization 头中取出 token
func extractToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", ErrMissingAuthHeader
	}
	scheme, token, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", jwt.ErrTokenMalformed
	}
	return strings.TrimSpace(token), nil
}

// validateToken 校验 HMAC 签名并要求 exp 存在，返回 user_id
func validateToken(tokenStr string, secret []byte) (uint, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return 0, fmt.Errorf("token validation failed: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, errors.New("invalid token or claims type")
	}
	if !claims.VerifyExpiresAt(time.Now().Unix(), true) {
		return 0, errors.New("token has no expiry")
	}

	// JSON 数字解码为 float64
	raw, ok := claims["user_id"].(float64)
	if !ok || raw <= 0 || raw != float64(uint(raw)) {
		return 0, errInvalidSubject
	}
	return uint(raw), nil
}
