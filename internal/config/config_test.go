package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	// Money is int64 minor units end to end: the default welcome credit
	// is 50.00, not 0.50.
	assert.Equal(t, int64(5000), cfg.Bonus.SignupCredit)
	assert.Equal(t, int64(5), cfg.Bonus.EarnPercent)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "shift-engine", cfg.App.Name)
}
