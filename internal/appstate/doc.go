// Package appstate implements the process-wide state container bridging
// presentation layers (CLI runner, TUI) and the persistence service.
//
// The [Store] is a synchronous mirror, not a cache with independent
// invalidation logic: it loads both collections at startup and re-fetches the
// authoritative collection from the persistence service after every mutation,
// so its cached copies can never diverge from durable state. Selection
// setters are pure local writes with no persistence effect.
//
// Every action wraps its service call; on failure the error message is
// recorded in a single last-error field (cleared explicitly, not
// auto-expiring) and the error is returned to the caller so call sites can
// react as well. Subscribers registered with [Store.Subscribe] are notified
// after every state change, letting the TUI refresh without polling.
package appstate
