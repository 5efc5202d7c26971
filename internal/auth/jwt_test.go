package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goofitre/carcare-api/internal/domain/user"
	"github.com/goofitre/carcare-api/internal/models"
)

func TestTokens_RoundTrip(t *testing.T) {
	tk := NewTokens("s3cret")

	raw, err := tk.Issue(&models.User{ID: "u1", Email: "a@b.co", Role: "ORGANIZA"})
	require.NoError(t, err)

	actor, err := tk.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, user.Actor{UserID: "u1", Role: user.RoleOrganiza}, actor)
}

func TestTokens_RejectsOtherSecret(t *testing.T) {
	raw, err := NewTokens("a").Issue(&models.User{ID: "u1", Role: "USER"})
	require.NoError(t, err)

	_, err = NewTokens("b").Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokens_Expired(t *testing.T) {
	tk := NewTokens("s")
	tk.now = func() time.Time { return time.Now().Add(-25 * time.Hour) }
	raw, err := tk.Issue(&models.User{ID: "u1", Role: "USER"})
	require.NoError(t, err)

	_, err = NewTokens("s").Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokens_UnknownRole(t *testing.T) {
	tk := NewTokens("s")
	raw, err := tk.Issue(&models.User{ID: "u1", Role: "OWNER"})
	require.NoError(t, err)

	_, err = tk.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
