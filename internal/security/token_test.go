package security

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	mgr := NewTokenManager("test-secret", time.Hour)
	id := uuid.New()

	token, err := mgr.Issue(id, KindStaff)
	require.NoError(t, err)

	subject, kind, err := mgr.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, id, subject)
	assert.Equal(t, KindStaff, kind)
}

func TestTokenRejectedByOtherSecret(t *testing.T) {
	token, err := NewTokenManager("first", time.Hour).Issue(uuid.New(), KindCustomer)
	require.NoError(t, err)

	_, _, err = NewTokenManager("second", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredTokenRejected(t *testing.T) {
	mgr := NewTokenManager("test-secret", -time.Minute)
	token, err := mgr.Issue(uuid.New(), KindStaff)
	require.NoError(t, err)

	_, _, err = mgr.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
