package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-catalog/backend/internal/auth"
)

const secret = "operator-secret"

func TestRunPrintsAdminToken(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"-subject", "ops@example.com", "-ttl", "1h"}, secret, &out))

	validator, err := auth.NewJWTValidator(secret)
	require.NoError(t, err)
	claims, err := validator.ValidateToken(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", claims.Subject)
	assert.True(t, claims.IsAdmin())
}

func TestRunCustomRole(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"-subject", "viewer", "-role", "reader"}, secret, &out))

	validator, err := auth.NewJWTValidator(secret)
	require.NoError(t, err)
	claims, err := validator.ValidateToken(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.False(t, claims.IsAdmin())
}

func TestRunRejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		secret string
	}{
		{"missing subject", nil, secret},
		{"non-positive ttl", []string{"-subject", "ops", "-ttl", "0s"}, secret},
		{"unknown flag", []string{"-subject", "ops", "-scope", "all"}, secret},
		{"empty secret", []string{"-subject", "ops"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			assert.Error(t, run(tt.args, tt.secret, &out))
			assert.Empty(t, out.String())
		})
	}
}
