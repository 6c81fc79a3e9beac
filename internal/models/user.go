package models

import "time"

// UserDB represents a user record in the database.
type UserDB struct {
	ID           int64     `json:"id" db:"id"`                       // Primary key
	Name         string    `json:"name" db:"name"`                   // Display name
	Email        string    `json:"email" db:"email"`                 // Unique email
	Phone        string    `json:"phone" db:"phone"`                 // Contact phone
	DateOfBirth  string    `json:"dateOfBirth" db:"date_of_birth"`   // Date of birth, YYYY-MM-DD
	PasswordHash string    `json:"-" db:"password_hash"`             // Hashed password, never serialized
	CreatedAt    time.Time `json:"created_at" db:"created_at"`       // Creation timestamp
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`       // Last update timestamp
}

// User is the sanitized view of a user returned to clients.
// It never carries the password hash.
type User struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"dateOfBirth"`
}

// View converts a database record into its sanitized client view.
func (u *UserDB) View() User {
	return User{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Phone:       u.Phone,
		DateOfBirth: u.DateOfBirth,
	}
}
