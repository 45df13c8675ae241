package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frostdesk/frostdesk/internal/auth"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)

	userID := uuid.New()
	companyID := uuid.New()

	token, err := issuer.Issue(userID, companyID, time.Now())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, id.UserID)
	assert.Equal(t, companyID, id.CompanyID)
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.Issue(uuid.New(), uuid.New(), time.Now())
	require.NoError(t, err)

	other := auth.NewTokenIssuer("other-secret", time.Hour)

	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Minute)

	token, err := issuer.Issue(uuid.New(), uuid.New(), time.Now().Add(-time.Hour))
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.Error(t, err)
}
