package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/carpetdist/carpet-erp/internal/app"
	_ "github.com/carpetdist/carpet-erp/internal/testing/guard"
)

func TestMainSkipsStartupInTestMode(t *testing.T) {
	require.True(t, app.InTestMode())
	main()
}
