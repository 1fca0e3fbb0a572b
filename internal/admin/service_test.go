package admin

import (
	"testing"
	"time"

	"stagepass/internal/shared/apperr"
	"stagepass/internal/shared/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig(t *testing.T, passphrase string) config.AdminConfig {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(passphrase), bcrypt.MinCost)
	require.NoError(t, err)
	return config.AdminConfig{
		PassphraseHash: string(hash),
		JWTSecret:      "test-secret",
		TokenExpiresIn: time.Hour,
	}
}

func TestLoginIssuesValidToken(t *testing.T) {
	svc := NewService(testConfig(t, "open-sesame"))

	session, err := svc.Login("open-sesame")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, time.Hour, session.ExpiresIn)

	claims, err := svc.ValidateToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "access", claims.Type)
	assert.Equal(t, "stagepass", claims.Issuer)
}

func TestLoginRejectsWrongPassphrase(t *testing.T) {
	svc := NewService(testConfig(t, "open-sesame"))

	_, err := svc.Login("guess")
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewService(testConfig(t, "open-sesame"))

	_, err := svc.ValidateToken("not-a-jwt")
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewService(testConfig(t, "open-sesame"))
	session, err := issuer.Login("open-sesame")
	require.NoError(t, err)

	other := testConfig(t, "open-sesame")
	other.JWTSecret = "different-secret"
	verifier := NewService(other)

	_, err = verifier.ValidateToken(session.Token)
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	cfg := testConfig(t, "open-sesame")
	cfg.TokenExpiresIn = -time.Minute
	svc := NewService(cfg)

	session, err := svc.Login("open-sesame")
	require.NoError(t, err)

	_, err = svc.ValidateToken(session.Token)
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}
