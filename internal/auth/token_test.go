package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/superfruitcenter/fruitmart/internal/models"
)

func TestAuthToken_RoundTrip(t *testing.T) {
	at := NewAuthToken([]byte("0123456789abcdef"))

	user := &models.User{ID: uuid.New(), Login: "asha"}

	token, err := at.CreateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	payload, err := at.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, payload.UserID)
}

func TestAuthToken_RejectsForeignKey(t *testing.T) {
	issuer := NewAuthToken([]byte("0123456789abcdef"))
	verifier := NewAuthToken([]byte("fedcba9876543210"))

	token, err := issuer.CreateToken(&models.User{ID: uuid.New()})
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.Error(t, err)
}

func TestAuthToken_RejectsGarbage(t *testing.T) {
	at := NewAuthToken([]byte("0123456789abcdef"))

	_, err := at.VerifyToken("not.a.token")
	assert.Error(t, err)
}
