// Package postgres provides PostgreSQL implementations of the interfaces in
// internal/store, the transaction manager that retries serialization
// failures, and the embedded goose migrations that create the schema.
//
// All stores accept a store.DBTX so they run against either the pool or a
// transaction obtained from TxManager.
package postgres
