package model

import "time"

// Event represents a listed event.
//
// CreatorID is set once at creation and never changes. Creator is populated
// by reads that join the users table; it is nil when only the event row was
// loaded.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Date        time.Time `json:"date"`
	CreatorID   string    `json:"creatorId"`
	Creator     *User     `json:"creator,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
