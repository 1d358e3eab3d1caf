package models

import "time"

// User is the full account record. The password hash never leaves the
// backend. Balance is not stored here; it is derived from the meal-card
// transaction log.
type User struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	EmailVerified      bool      `json:"email_verified"`
	IsAdmin            bool      `json:"is_admin"`
	PasswordHash       string    `json:"password_hash"`
	Phone              string    `json:"phone,omitempty"`
	DietaryConstraints []string  `json:"dietary_constraints"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// UserResponse is the public projection of a user.
type UserResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	EmailVerified      bool      `json:"email_verified"`
	IsAdmin            bool      `json:"is_admin"`
	Phone              string    `json:"phone,omitempty"`
	DietaryConstraints []string  `json:"dietary_constraints"`
	CreatedAt          time.Time `json:"created_at"`
}

// ConstraintsUpdate replaces a user's dietary constraint set. The vocabulary
// is open: allergen labels plus dietary-regime labels (végétarien, halal, …).
type ConstraintsUpdate struct {
	Constraints []string `json:"constraints"`
}
