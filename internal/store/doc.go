// Package store defines the persistence interfaces of the practice and
// progression engine. Implementations live in internal/platform/postgres.
//
// Every store offers WithTx so services can combine several stores in one
// transaction obtained from a TxManager.
package store
