package models

import "time"

// PlaceholderPhone is stored for every new account; the phone column is not
// collected at signup.
const PlaceholderPhone = "022"

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Phone        string
	CreatedAt    time.Time
}
