package model

import "time"

// Issue is a content report. At most one exists per
// (EmailID, AddedBy) pair; repeated reports update it in place.
type Issue struct {
	ID          int       `json:"id"`
	EmailID     string    `json:"email_id"` // shortid of the reported email
	AddedBy     string    `json:"added_by"` // reporter's email address
	Type        string    `json:"type,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
