package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parakh/internal/auth"
	"parakh/internal/config"
	"parakh/internal/domain"
)

func TestTokenValidator_RoundTrip(t *testing.T) {
	v := auth.NewTokenValidator(config.JWTConfig{Secret: "test-secret", Issuer: "parakh"})

	token, err := v.Generate("auditor@example.com", time.Hour)
	require.NoError(t, err)

	claims, err := v.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "auditor@example.com", claims.Subject)
	assert.Equal(t, "parakh", claims.Issuer)
}

func TestTokenValidator_RejectsExpiredToken(t *testing.T) {
	v := auth.NewTokenValidator(config.JWTConfig{Secret: "test-secret", Issuer: "parakh"})

	token, err := v.Generate("auditor@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = v.Validate(token)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestTokenValidator_RejectsWrongSecret(t *testing.T) {
	issuing := auth.NewTokenValidator(config.JWTConfig{Secret: "other-secret", Issuer: "parakh"})
	v := auth.NewTokenValidator(config.JWTConfig{Secret: "test-secret", Issuer: "parakh"})

	token, err := issuing.Generate("auditor@example.com", time.Hour)
	require.NoError(t, err)

	_, err = v.Validate(token)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestTokenValidator_RejectsWrongIssuer(t *testing.T) {
	issuing := auth.NewTokenValidator(config.JWTConfig{Secret: "test-secret", Issuer: "someone-else"})
	v := auth.NewTokenValidator(config.JWTConfig{Secret: "test-secret", Issuer: "parakh"})

	token, err := issuing.Generate("auditor@example.com", time.Hour)
	require.NoError(t, err)

	_, err = v.Validate(token)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}
