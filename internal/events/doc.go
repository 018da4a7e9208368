// Package events carries progress events between services.
//
// The practice and progression services emit events after their transactions
// commit; the achievement engine subscribes to them to re-evaluate unlocks.
// Emitters never know which handlers exist, which keeps the services free of
// import cycles.
package events
