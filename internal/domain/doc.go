// Package domain contains the entities of the practice and progression engine:
// vocabulary items as read from the catalog, mastery records, practice sessions
// and results, the XP ledger, achievements and leaderboard entries.
//
// Types here hold data and enforce their own invariants through Validate
// methods and small pure functions. Persistence and orchestration live in the
// store and service packages.
package domain
