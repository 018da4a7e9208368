//go:build integration

// Package testdb provides helpers for tests that run against a real PostgreSQL.
//
// Each test gets a migrated connection from GetTestDBWithT and runs its work
// inside WithTx, which always rolls back, so tests can share one database
// and run in parallel.
//
// Set LEXI_TEST_DATABASE_URL (or DATABASE_URL) and run with -tags=integration.
// Without a URL the tests are skipped.
package testdb
