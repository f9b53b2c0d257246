package entities

import "time"

// Client is the customer a work order is executed for.
//
// Storage model (DynamoDB):
//   - PK: id
//
// The full client CRUD lives in another service; the sync engine only needs
// enough of the record to enforce ownership and denormalize display fields.
type Client struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
