package services

import (
	"testing"
	"time"

	apperrors "hotelpms/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestActorToken_RoundTrip(t *testing.T) {
	token, err := IssueActorToken("clerk-7", "front_desk", testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseActorToken("Bearer "+token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "clerk-7", claims.Subject)
	assert.Equal(t, "front_desk", claims.Role)
}

func TestParseActorToken_Rejects(t *testing.T) {
	valid, err := IssueActorToken("clerk-7", "front_desk", testSecret, time.Hour)
	require.NoError(t, err)
	expired, err := IssueActorToken("clerk-7", "front_desk", testSecret, -time.Minute)
	require.NoError(t, err)
	noRole, err := IssueActorToken("clerk-7", "", testSecret, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		code  apperrors.ErrorCode
	}{
		{"empty", "", apperrors.ErrCodeUnauthorized},
		{"bearer only", "Bearer ", apperrors.ErrCodeUnauthorized},
		{"garbage", "not-a-jwt", apperrors.ErrCodeInvalidToken},
		{"wrong secret", valid, apperrors.ErrCodeInvalidToken},
		{"expired", expired, apperrors.ErrCodeInvalidToken},
		{"missing role", noRole, apperrors.ErrCodeInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			secret := testSecret
			if tt.name == "wrong secret" {
				secret = "other-secret"
			}
			_, err := ParseActorToken(tt.token, secret)
			requireCode(t, err, tt.code)
		})
	}
}
