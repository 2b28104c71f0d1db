// Package store holds per-user scan counters and pro-tier membership
// behind a small key-value abstraction so the backend (in-memory map for
// tests, Redis or Postgres in production) is swappable without touching
// business logic. Every implementation is safe for concurrent use.
package store

import "context"

type Store interface {
	// IncrScans bumps the user's scan counter and returns the new value.
	IncrScans(ctx context.Context, userID string) (int64, error)
	Scans(ctx context.Context, userID string) (int64, error)
	GrantPro(ctx context.Context, userID string) error
	IsPro(ctx context.Context, userID string) (bool, error)
}
