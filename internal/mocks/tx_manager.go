package mocks

import (
	"context"
	"database/sql"

	"github.com/phrazzld/lexi-api/internal/store"
)

// MockTxManager runs the function directly with a nil *sql.Tx.
// Set Err to make every transaction fail before fn runs.
type MockTxManager struct {
	Err   error
	Calls int
}

// NewMockTxManager returns a MockTxManager that always runs fn.
func NewMockTxManager() *MockTxManager {
	return &MockTxManager{}
}

var _ store.TxManager = (*MockTxManager)(nil)

// RunInTx implements store.TxManager.
func (m *MockTxManager) RunInTx(ctx context.Context, fn store.TxFn) error {
	m.Calls++
	if m.Err != nil {
		return m.Err
	}
	return fn(ctx, (*sql.Tx)(nil))
}
