// Package guard switches the process into test mode when imported, so
// binaries under test skip connecting to Postgres and Redis.
package guard

import (
	"os"

	"github.com/carpetdist/carpet-erp/internal/app"
)

func init() {
	if os.Getenv(app.TestModeEnv) == "" {
		_ = os.Setenv(app.TestModeEnv, "1")
	}
	app.RefreshTestMode()
}
