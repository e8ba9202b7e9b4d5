package app

import (
	"os"
	"sync/atomic"
)

// TestModeEnv disables runtime side effects when set to "1".
const TestModeEnv = "CARPET_TEST_MODE"

var testMode atomic.Pointer[bool]

// InTestMode reports whether the binaries should exit before connecting to
// Postgres or Redis. The environment is read on first use.
func InTestMode() bool {
	if v := testMode.Load(); v != nil {
		return *v
	}
	return RefreshTestMode()
}

// RefreshTestMode re-reads the environment and returns the new value.
func RefreshTestMode() bool {
	v := os.Getenv(TestModeEnv) == "1"
	testMode.Store(&v)
	return v
}
