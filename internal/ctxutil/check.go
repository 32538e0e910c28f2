// Package ctxutil provides context utility functions.
package ctxutil

import "context"

// Canceled returns the context error if ctx is done, nil otherwise.
// Git helpers call it on entry so a canceled session never spawns
// another process.
func Canceled(ctx context.Context) error {
	return ctx.Err()
}
