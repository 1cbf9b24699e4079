package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/oknastroy/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateToken("test-secret", userID, models.RoleAssembler, time.Hour)
	require.NoError(t, err)

	principal, err := ParseToken("test-secret", token)
	require.NoError(t, err)
	assert.Equal(t, userID, principal.ID)
	assert.Equal(t, models.RoleAssembler, principal.Role)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken("test-secret", uuid.New(), models.RoleClient, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken("other-secret", token)
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, err := GenerateToken("test-secret", uuid.New(), models.RoleClient, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken("test-secret", token)
	assert.Error(t, err)
}
