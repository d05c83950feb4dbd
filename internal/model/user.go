package model

import "time"

type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	AuthProvider string    `json:"auth_provider,omitempty"`
	LastLogin    time.Time `json:"last_login"`
	// Shortids this user has been counted as sending / has suppressed.
	SentEmailList    []string  `json:"sent_email_list"`
	IgnoredEmailList []string  `json:"ignored_email_list"`
	CreatedAt        time.Time `json:"created_at"`
}
