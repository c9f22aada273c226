// Package testutils provides shared helpers for tests that need external
// resources. Integration tests against a real PostgreSQL instance are gated
// on the PROFILED_TEST_DB_URL environment variable and skipped otherwise.
package testutils

import "os"

// testDBEnvVar names the environment variable holding the test database URL.
const testDBEnvVar = "PROFILED_TEST_DB_URL"

// IsIntegrationTestEnvironment reports whether a test database is configured.
func IsIntegrationTestEnvironment() bool {
	return os.Getenv(testDBEnvVar) != ""
}

// GetTestDatabaseURL returns the configured test database URL, or the empty
// string when integration tests are not enabled.
func GetTestDatabaseURL() string {
	return os.Getenv(testDBEnvVar)
}
