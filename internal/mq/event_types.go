package mq

import "time"

// Routing keys published by the tracking service.
const (
	RoutingKeyEmailTracked   = "email.tracked"
	RoutingKeyUserRegistered = "user.registered"
)

// EmailTrackedEvent is emitted after a tracking mutation is applied.
type EmailTrackedEvent struct {
	ShortID    string    `json:"shortid"`
	Action     string    `json:"action"`
	ActorEmail string    `json:"actor_email"`
	OccurredAt time.Time `json:"occurred_at"`
}

// UserRegisteredEvent is emitted when a new account is created.
type UserRegisteredEvent struct {
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
