package models

import "time"

// User represents a registered account.
type User struct {
	ID           string    `json:"id" bson:"_id"`
	Username     string    `json:"username" bson:"username"`
	PasswordHash string    `json:"-" bson:"password_hash"` // Never expose this to the client
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
}
