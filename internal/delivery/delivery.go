// Package delivery defines the contract served by every transport front-end.
package delivery

import "context"

// Delivery is implemented by each serving surface (HTTP today).
type Delivery interface {
	Serve(ctx context.Context) error
}
