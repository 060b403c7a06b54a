// Package delivery defines the contract every transport entrypoint satisfies.
package delivery

import "context"

// Delivery is a long-running entrypoint, typically a server loop.
type Delivery interface {
	// Serve blocks until the delivery stops or the context is cancelled.
	Serve(ctx context.Context) error
}
