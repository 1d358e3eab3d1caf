package models

import (
	"testing"

	menumodels "cantine-backend/internal/features/menu/models"

	"github.com/stretchr/testify/assert"
)

func TestActiveDinner(t *testing.T) {
	cancelled := &Reservation{ID: "1", DishID: "a", MealType: MealTypeDinner, Status: StatusCancelled}
	lunch := &Reservation{ID: "2", DishID: "b", MealType: MealTypeLunch, Status: StatusConfirmed}
	dinner := &Reservation{ID: "3", DishID: "c", MealType: MealTypeDinner, Status: StatusConfirmed}

	assert.Nil(t, ActiveDinner(nil))
	assert.Nil(t, ActiveDinner([]*Reservation{cancelled, lunch}))
	assert.Equal(t, dinner, ActiveDinner([]*Reservation{cancelled, lunch, dinner}))
}

func TestCanReserve(t *testing.T) {
	dinnerDish := &menumodels.Dish{ID: "dish-1", AvailableForDinner: true}
	lunchOnly := &menumodels.Dish{ID: "dish-2", AvailableForDinner: false}

	sameDish := &Reservation{DishID: "dish-1", MealType: MealTypeDinner, Status: StatusConfirmed}
	otherDish := &Reservation{DishID: "dish-9", MealType: MealTypeDinner, Status: StatusConfirmed}
	cancelledOther := &Reservation{DishID: "dish-9", MealType: MealTypeDinner, Status: StatusCancelled}

	tests := []struct {
		name     string
		dish     *menumodels.Dish
		existing []*Reservation
		want     bool
	}{
		{"no existing reservations", dinnerDish, nil, true},
		{"not available for dinner", lunchOnly, nil, false},
		{"other dish already booked", dinnerDish, []*Reservation{otherDish}, false},
		{"same dish already booked", dinnerDish, []*Reservation{sameDish}, true},
		{"cancelled booking does not block", dinnerDish, []*Reservation{cancelledOther}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanReserve(tt.dish, tt.existing))
		})
	}
}
