// Package api exposes the practice engine, the XP ledger and the
// achievement engine over HTTP. Handlers translate requests into service
// calls and map service errors onto status codes with sanitized messages.
package api
