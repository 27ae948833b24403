package domain

import "time"

// Todo is owned by exactly one user; OwnerUUID never changes after creation.
type Todo struct {
	ID        int64     `json:"id"`
	UUID      string    `json:"uuid"`
	Content   string    `json:"content"`
	OwnerUUID string    `json:"owner_uuid"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
