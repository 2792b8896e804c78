package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the display-facing identity handed to views.
type User struct {
	ID    string
	Email string
}

// UserAuth is the credential-store record, including the password hash.
// Never handed to views.
type UserAuth struct {
	ID        string
	Email     string
	Password  string // bcrypt hash
	CreatedAt time.Time
}

// Product is a managed catalog entry created through the dashboard.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       float64
	Image       string
	CreatedAt   time.Time
}
