package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Pumpcalc/internal/auth"
	"Pumpcalc/internal/calc/pump"
	"Pumpcalc/internal/calc/sweep"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCalcCmd(t *testing.T) {
	out, err := run(t, "calc", "--flow", "0.01", "--head", "20", "--density", "1000", "--efficiency", "0.7")
	require.NoError(t, err)
	assert.Contains(t, out, "Hydraulic power: 1.962 kW")
	assert.Contains(t, out, "Brake power:     2.803 kW")
}

func TestCalcCmd_Invalid(t *testing.T) {
	_, err := run(t, "calc", "--efficiency", "0")
	assert.True(t, errors.Is(err, pump.ErrInvalidEfficiency))

	_, err = run(t, "calc", "--flow=-1")
	assert.True(t, errors.Is(err, pump.ErrInvalidPhysicalQuantity))
}

func TestSweepCmd(t *testing.T) {
	out, err := run(t, "sweep", "--head", "20", "--efficiency", "0.7", "--center", "0.05", "--points", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "0.0750")
	assert.Contains(t, out, "0.0010")
	assert.Contains(t, out, "0.0380")
}

func TestSweepCmd_Invalid(t *testing.T) {
	_, err := run(t, "sweep", "--density=-850")
	assert.True(t, errors.Is(err, pump.ErrInvalidPhysicalQuantity))

	_, err = run(t, "sweep", "--points", "1")
	assert.True(t, errors.Is(err, sweep.ErrInvalidPoints))
}

func TestTokenCmd(t *testing.T) {
	t.Setenv("TOKEN_KEY", "cli-key")

	out, err := run(t, "token", "--subject", "ops")
	require.NoError(t, err)

	subject, err := (&auth.Authenv{JWTkey: []byte("cli-key")}).Validate(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "ops", subject)
}
