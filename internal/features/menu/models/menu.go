package models

import "errors"

var (
	ErrInvalidCategory = errors.New("category must be one of: volaille, viande, poisson")
	ErrInvalidPrice    = errors.New("price must be positive")
)

// Category identifies a cafeteria stand.
type Category string

const (
	CategoryVolaille Category = "volaille"
	CategoryViande   Category = "viande"
	CategoryPoisson  Category = "poisson"
)

// Categories lists all stands in display order.
var Categories = []Category{CategoryVolaille, CategoryViande, CategoryPoisson}

func (c Category) Valid() bool {
	for _, cat := range Categories {
		if c == cat {
			return true
		}
	}
	return false
}

// Sourcing describes where the ingredients of a dish come from.
type Sourcing struct {
	Organic bool   `json:"organic"`
	Local   bool   `json:"local"`
	Origin  string `json:"origin"`
}

// NutritionalInfo holds the nutrition facts of a dish. All values are
// non-negative; salt, sugar and the macros are grams per portion.
type NutritionalInfo struct {
	Calories float64 `json:"calories"`
	Proteins float64 `json:"proteins"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
	Salt     float64 `json:"salt"`
}

// Dish is a single menu entry at a stand.
type Dish struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	Price              float64         `json:"price"`
	Category           Category        `json:"category"`
	Allergens          []string        `json:"allergens"`
	Sourcing           Sourcing        `json:"sourcing"`
	NutritionalInfo    NutritionalInfo `json:"nutritional_info"`
	ImageURL           string          `json:"image_url,omitempty"`
	AvailableForDinner bool            `json:"available_for_dinner"`
}

// HasConflict reports whether the dish contains an allergen that is part of
// the user's dietary constraints. The warning is advisory: a conflicting dish
// can still be reserved.
func (d *Dish) HasConflict(constraints []string) bool {
	for _, allergen := range d.Allergens {
		for _, constraint := range constraints {
			if allergen == constraint {
				return true
			}
		}
	}
	return false
}

// DailyMenu groups the dishes served on one day by stand.
type DailyMenu struct {
	Date     string `json:"date"`
	Volaille []Dish `json:"volaille"`
	Viande   []Dish `json:"viande"`
	Poisson  []Dish `json:"poisson"`
}

// WeeklyMenu is the menu for a whole week.
type WeeklyMenu struct {
	Week  string      `json:"week"`
	Menus []DailyMenu `json:"menus"`
}

// DailyMenuRecord is the stored form of a daily menu: dish ids per stand.
// Dishes are stored once under their own key and joined on read, so an admin
// edit is visible everywhere the dish appears.
type DailyMenuRecord struct {
	Date     string   `json:"date"`
	Volaille []string `json:"volaille"`
	Viande   []string `json:"viande"`
	Poisson  []string `json:"poisson"`
}

// WeeklyMenuRecord is the stored form of the weekly menu.
type WeeklyMenuRecord struct {
	Week  string            `json:"week"`
	Menus []DailyMenuRecord `json:"menus"`
}

// StandQueue is the live queue at one stand.
type StandQueue struct {
	Current   int `json:"current"`
	Estimated int `json:"estimated"` // minutes
}

// QueueInfo is the per-stand queue display data. Read-only for this service;
// a separate collector would update it in a real deployment.
type QueueInfo struct {
	Volaille StandQueue `json:"volaille"`
	Viande   StandQueue `json:"viande"`
	Poisson  StandQueue `json:"poisson"`
}

// DishCreate is the admin payload for adding a dish.
type DishCreate struct {
	Name               string          `json:"name" binding:"required"`
	Description        string          `json:"description"`
	Price              float64         `json:"price" binding:"required"`
	Category           Category        `json:"category" binding:"required"`
	Allergens          []string        `json:"allergens"`
	Sourcing           Sourcing        `json:"sourcing"`
	NutritionalInfo    NutritionalInfo `json:"nutritional_info"`
	AvailableForDinner bool            `json:"available_for_dinner"`
}

// Validate checks category and price on admin input.
func (in *DishCreate) Validate() error {
	if !in.Category.Valid() {
		return ErrInvalidCategory
	}
	if in.Price <= 0 {
		return ErrInvalidPrice
	}
	return nil
}

// DishUpdate is the admin payload for editing a dish. All fields replace the
// stored values; the id and image association are immutable here.
type DishUpdate struct {
	Name               string          `json:"name" binding:"required"`
	Description        string          `json:"description"`
	Price              float64         `json:"price" binding:"required"`
	Category           Category        `json:"category" binding:"required"`
	Allergens          []string        `json:"allergens"`
	Sourcing           Sourcing        `json:"sourcing"`
	NutritionalInfo    NutritionalInfo `json:"nutritional_info"`
	AvailableForDinner bool            `json:"available_for_dinner"`
}

// Validate checks category and price on admin input.
func (in *DishUpdate) Validate() error {
	if !in.Category.Valid() {
		return ErrInvalidCategory
	}
	if in.Price <= 0 {
		return ErrInvalidPrice
	}
	return nil
}
