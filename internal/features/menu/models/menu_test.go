package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryValid(t *testing.T) {
	assert.True(t, CategoryVolaille.Valid())
	assert.True(t, CategoryViande.Valid())
	assert.True(t, CategoryPoisson.Valid())
	assert.False(t, Category("dessert").Valid())
	assert.False(t, Category("").Valid())
}

func TestDishHasConflict(t *testing.T) {
	tests := []struct {
		name        string
		allergens   []string
		constraints []string
		want        bool
	}{
		{
			name:        "shared allergen",
			allergens:   []string{"gluten", "lactose"},
			constraints: []string{"gluten"},
			want:        true,
		},
		{
			name:        "disjoint",
			allergens:   []string{"lactose"},
			constraints: []string{"gluten", "poisson"},
			want:        false,
		},
		{
			name:        "no constraints",
			allergens:   []string{"gluten"},
			constraints: nil,
			want:        false,
		},
		{
			name:        "no allergens",
			allergens:   nil,
			constraints: []string{"gluten"},
			want:        false,
		},
		{
			name:        "both empty",
			allergens:   nil,
			constraints: nil,
			want:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dish := Dish{Allergens: tt.allergens}
			assert.Equal(t, tt.want, dish.HasConflict(tt.constraints))
		})
	}
}

func TestDishCreateValidate(t *testing.T) {
	valid := DishCreate{
		Name:     "Poulet rôti",
		Price:    3.40,
		Category: CategoryVolaille,
	}
	require.NoError(t, valid.Validate())

	badCategory := valid
	badCategory.Category = "dessert"
	require.ErrorIs(t, badCategory.Validate(), ErrInvalidCategory)

	badPrice := valid
	badPrice.Price = 0
	require.ErrorIs(t, badPrice.Validate(), ErrInvalidPrice)
}
