// Package guard marks the process as a test run. Test files import it for
// its side effect so that app.InTestMode reports true.
package guard

import "os"

func init() {
	if os.Getenv("BIZDESK_TEST_MODE") == "" {
		_ = os.Setenv("BIZDESK_TEST_MODE", "1")
	}
}
