package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	_ "github.com/odyssey-erp/bizdesk/internal/testing/guard"
)

func TestInTestModeFromGuard(t *testing.T) {
	require.True(t, InTestMode())

	t.Setenv(testModeEnv, "")
	require.False(t, InTestMode())
}
