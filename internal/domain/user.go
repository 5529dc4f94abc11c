package domain

import "time"

type UserID string

type User struct {
	ID               UserID
	Email            string
	FullName         string
	CompanyName      string
	Role             string
	SubscriptionTier string
	CreatedAt        time.Time
}

// Session pairs the authenticated identity with its bearer token. Either both
// fields are set or the session does not exist; they are never split.
type Session struct {
	User  User
	Token string
}

type Registration struct {
	Email       string
	Password    string
	FullName    string
	CompanyName string
}
