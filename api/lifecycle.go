// Package api defines public API contracts for plugin-css.
package api

import "context"

// AppProps carries the application properties the orchestrator passes to
// every lifecycle call. The adapter only uses them for log and metric
// labels; the orchestrator owns their meaning.
type AppProps struct {
	Name string
}

// Lifecycle is the surface the orchestrator drives. The invocation contract
// is the orchestrator's: exactly one Bootstrap, then any number of
// Mount/Unmount cycles, never concurrent calls of the same phase for the
// same instance. Unmount may however overlap with an Unmount issued through
// another application instance sharing the adapter.
type Lifecycle interface {
	// Bootstrap inserts preload hints for every configured stylesheet. It
	// returns once all insertions have been attempted; it never waits for
	// a prefetch to complete.
	Bootstrap(ctx context.Context, props AppProps) error
	// Mount ensures every configured stylesheet is present in the document,
	// returning once each one is either adopted or confirmed loaded.
	Mount(ctx context.Context, props AppProps) error
	// Unmount removes the stylesheet elements this adapter created and is
	// responsible for, leaving adopted elements untouched.
	Unmount(ctx context.Context, props AppProps) error
}
