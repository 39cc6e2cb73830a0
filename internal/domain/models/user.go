package models

import "time"

// User is an authenticated account (passenger or coordinator).
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	Role         string
	PasswordHash string
	CreatedAt    time.Time
}
