package model

import "time"

// Profile is a player's identity outside any particular room. Room seats
// reference it by PlayerID, which is what lets a reconnecting transport
// re-attach to its seat.
type Profile struct {
	ID        PlayerID
	Name      string
	IsGuest   bool // true for players without an account
	CreatedAt time.Time
}

// Account extends a Profile with login credentials.
// Stored separately so the hash never travels with session data.
type Account struct {
	PlayerID     PlayerID
	Username     string // login username (immutable)
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
