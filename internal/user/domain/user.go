package domain

import "time"

type UUID string

type User struct {
	UUID         UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Identity is the caller-facing projection of a User. It never carries the
// password hash.
type Identity struct {
	UUID  UUID   `json:"uuid"`
	Email string `json:"email"`
}

func (u User) Identity() Identity {
	return Identity{UUID: u.UUID, Email: u.Email}
}
