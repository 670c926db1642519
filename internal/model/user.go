// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// PASSWORD HANDLING:
// PasswordHash holds the bcrypt output and nothing else. The `json:"-"` tag
// keeps it out of every JSON encoding, and the API layer always reports the
// password field as null. The plaintext never reaches this struct.
//
// WHY NO CreatedEvents FIELD?
// The events a user created are derived by querying events by creator_id.
// Storing the list on the user would need a second write after every event
// insert, and the two could drift apart if that write failed.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"` // lower-cased, unique across users
	PasswordHash string    `json:"-"`
	Phone        int64     `json:"phone"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Public returns a copy of the user with the password hash cleared.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}
