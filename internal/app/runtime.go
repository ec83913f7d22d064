package app

import "os"

const testModeEnv = "BIZDESK_TEST_MODE"

// InTestMode reports whether BIZDESK_TEST_MODE=1, in which case the
// binaries exit before dialing Postgres or Redis.
func InTestMode() bool {
	return os.Getenv(testModeEnv) == "1"
}
