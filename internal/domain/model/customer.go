package model

import "time"

// Customer is managed by the external customer collaborator; the order engine
// only needs existence and the active flag.
type Customer struct {
	ID           int64
	Name         string
	Email        string
	Active       bool
	RegisteredAt time.Time
}
