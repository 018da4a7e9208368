// Package mocks provides centralized testify mock implementations of the
// store interfaces, the transaction manager and the services other services
// depend on.
//
// Usage:
//
//	xpStore := &mocks.MockXPStore{}
//	xpStore.On("GetForUpdate", mock.Anything, userID).Return(domain.NewUserXP(userID), nil)
//
//	txManager := mocks.NewMockTxManager()
//	svc := progression.NewService(txManager, xpStore, ...)
//
// WithTx methods return the receiver so expectations set on a store also
// apply inside transactions.
package mocks
