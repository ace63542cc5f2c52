package domain

import "time"

// Entry is a stored value. Entries past their expiry are logically absent
// even while still resident.
type Entry struct {
	Value     []byte
	ExpiresAt time.Time
}

// HasExpiry reports whether the entry carries a TTL.
func (e Entry) HasExpiry() bool {
	return !e.ExpiresAt.IsZero()
}

// Expired reports whether the entry's expiry is at or before now.
func (e Entry) Expired(now time.Time) bool {
	return e.HasExpiry() && !now.Before(e.ExpiresAt)
}
