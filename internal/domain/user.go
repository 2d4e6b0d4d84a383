package domain

import "time"

// User represents a storefront account. PasswordHash is always populated:
// locally registered users store a hash of their chosen password, while
// accounts created through a federated login store a hash of a random
// throwaway value that no caller can ever present.
type User struct {
	ID              int64
	FirstName       string
	LastName        string
	Email           string
	PasswordHash    string
	FederatedID     string
	IsFederatedUser bool
	ProfilePicture  string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
