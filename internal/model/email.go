package model

import "time"

// Email is a trackable outbound email. ID is the canonical identity,
// ShortID is the compact alternate key embedded in tracking links.
type Email struct {
	ID        string    `json:"id"`
	ShortID   string    `json:"shortid"`
	Subject   string    `json:"subject,omitempty"`
	SendCount int       `json:"send_count"`
	CreatedAt time.Time `json:"created_at"`
}
