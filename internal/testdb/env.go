package testdb

import "os"

// Environment variables consulted for the test database, in order of precedence.
const (
	EnvTestDBURL   = "GUESTBOOK_TEST_DB_URL"
	EnvDatabaseURL = "DATABASE_URL"
)

// IsIntegrationTestEnvironment returns true if a test database URL is set.
func IsIntegrationTestEnvironment() bool {
	return GetTestDatabaseURL() != ""
}

// ShouldSkipDatabaseTest returns true if no test database is configured.
func ShouldSkipDatabaseTest() bool {
	return !IsIntegrationTestEnvironment()
}

// GetTestDatabaseURL returns the first configured test database URL, or "".
func GetTestDatabaseURL() string {
	for _, envVar := range []string{EnvTestDBURL, EnvDatabaseURL} {
		if v := os.Getenv(envVar); v != "" {
			return v
		}
	}
	return ""
}
