// Package testdb provides helpers for integration tests that need a real
// PostgreSQL or Redis backend.
//
// Tests call GetTestDBWithT or GetTestRedisURLWithT; both skip the test when
// the corresponding environment variable is unset, so the default `go test`
// run never needs external services. Relational tests run inside WithTx so
// every change is rolled back when the test completes.
package testdb
