// Package storage defines the dedup cache interface and its implementations.
package storage

import "time"

// Storage is the interface for the posted-deal dedup cache.
type Storage interface {
	// IsPosted reports whether a deal key has already been announced.
	IsPosted(key string) bool
	// MarkPosted records a deal key with its first-seen time and persists.
	// Marking an already-present key keeps the original timestamp.
	MarkPosted(key string, firstSeen time.Time) error
	// Reset clears all recorded keys and persists the empty cache.
	Reset() error
	// Len returns the number of recorded keys.
	Len() int
}
