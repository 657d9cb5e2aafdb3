package services

import (
	"fmt"
	"strings"
	"time"

	apperrors "hotelpms/errors"

	"github.com/dgrijalva/jwt-go"
)

// ActorClaims claims của token nhân viên: sub = actor id, role = vai trò
type ActorClaims struct {
	Role string `json:"role"`
	jwt.StandardClaims
}

// ParseActorToken xác thực chữ ký HS256 và lấy actor id, role
func ParseActorToken(tokenString, secret string) (*ActorClaims, error) {
	tokenString = strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer "))
	if tokenString == "" {
		return nil, apperrors.NewAppError(apperrors.ErrCodeUnauthorized, "Token không được để trống", apperrors.ErrUnauthorized)
	}

	claims := &ActorClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Token không hợp lệ", err)
	}

	if claims.Subject == "" {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Không tìm thấy ID trong token", nil)
	}
	if claims.Role == "" {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Không tìm thấy role trong token", nil)
	}
	return claims, nil
}

// IssueActorToken ký token cho actor, dùng cho công cụ nội bộ và test
func IssueActorToken(actorID, role, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := ActorClaims{
		Role: role,
		StandardClaims: jwt.StandardClaims{
			Subject:   actorID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
