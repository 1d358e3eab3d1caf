package models

import (
	"errors"
	"time"

	menumodels "cantine-backend/internal/features/menu/models"
)

var (
	ErrNotAvailableForDinner = errors.New("dish is not available for dinner")
	ErrDinnerAlreadyBooked   = errors.New("a confirmed dinner reservation already exists")
)

// MealType distinguishes lunch and dinner bookings.
type MealType string

const (
	MealTypeLunch  MealType = "lunch"
	MealTypeDinner MealType = "dinner"
)

// Status is the lifecycle state of a reservation.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Reservation books a dish for a user on a date.
type Reservation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	DishID    string    `json:"dish_id"`
	Date      string    `json:"date"`
	MealType  MealType  `json:"meal_type"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// IsActiveDinner reports whether the reservation occupies the single
// dinner slot a user may hold.
func (r *Reservation) IsActiveDinner() bool {
	return r.MealType == MealTypeDinner && r.Status == StatusConfirmed
}

// ActiveDinner returns the confirmed dinner reservation among existing, if any.
func ActiveDinner(existing []*Reservation) *Reservation {
	for _, r := range existing {
		if r.IsActiveDinner() {
			return r
		}
	}
	return nil
}

// CanReserve reports whether the dish can be reserved for dinner given the
// user's existing reservations. A confirmed dinner reservation for the same
// dish does not block: that case is surfaced as "already reserved" instead
// of an error.
func CanReserve(dish *menumodels.Dish, existing []*Reservation) bool {
	if !dish.AvailableForDinner {
		return false
	}
	if active := ActiveDinner(existing); active != nil && active.DishID != dish.ID {
		return false
	}
	return true
}

// ReservationCreate is the booking payload.
type ReservationCreate struct {
	DishID string `json:"dish_id" binding:"required"`
}

// ReservationResponse wraps a reservation with the advisory flags the
// client renders.
type ReservationResponse struct {
	Reservation     *Reservation `json:"reservation"`
	AllergenWarning bool         `json:"allergen_warning"`
	AlreadyReserved bool         `json:"already_reserved"`
}

// AdminRow is one line of the admin reservation table.
type AdminRow struct {
	ID     string `json:"id"`
	Client string `json:"client"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Dish   string `json:"dish"`
	Date   string `json:"date"`
	Time   string `json:"time"`
	Status Status `json:"status"`
}

// AdminFilter narrows the admin reservation list.
type AdminFilter struct {
	Date   string
	Status Status
}
