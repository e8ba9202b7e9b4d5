package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRefreshTestMode(t *testing.T) {
	t.Setenv(TestModeEnv, "1")
	assert.True(t, RefreshTestMode())
	assert.True(t, InTestMode())

	t.Setenv(TestModeEnv, "0")
	assert.True(t, InTestMode(), "cached until refreshed")
	assert.False(t, RefreshTestMode())
	assert.False(t, InTestMode())
}
