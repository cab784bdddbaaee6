package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshmart/backend/internal/apperr"
	"github.com/freshmart/backend/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenManager("test-secret")

	token, err := tokens.Generate(42, models.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, role, err := tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, models.RoleAdmin, role)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-one").Generate(7, models.RoleCustomer)
	require.NoError(t, err)

	_, _, err = NewTokenManager("secret-two").Validate(token)
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestValidateRejectsGarbage(t *testing.T) {
	tokens := NewTokenManager("test-secret")

	_, _, err := tokens.Validate("not.a.token")
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}
