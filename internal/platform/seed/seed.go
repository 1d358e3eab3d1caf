package seed

import (
	"context"
	"time"

	"cantine-backend/internal/common/logger"
	cardmodels "cantine-backend/internal/features/card/models"
	cardrepo "cantine-backend/internal/features/card/repository"
	menumodels "cantine-backend/internal/features/menu/models"
	menurepo "cantine-backend/internal/features/menu/repository"
	reservationmodels "cantine-backend/internal/features/reservation/models"
	reservationrepo "cantine-backend/internal/features/reservation/repository"
	usermodels "cantine-backend/internal/features/user/models"
	userrepo "cantine-backend/internal/features/user/repository"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

const keySeedDone = "seed:done"

// DemoPassword is the password of the seeded demo accounts.
const DemoPassword = "cantine123"

// Run loads the demo dataset (menu, queues, accounts, one reservation and a
// card history) unless a previous run already did.
func Run(
	ctx context.Context,
	client *redis.Client,
	users userrepo.UserRepository,
	menu menurepo.MenuRepository,
	reservations reservationrepo.ReservationRepository,
	cards cardrepo.CardRepository,
) error {
	done, err := client.Exists(ctx, keySeedDone).Result()
	if err != nil {
		return err
	}
	if done > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now()

	student := &usermodels.User{
		ID:                 "1",
		Name:               "Marie Dupont",
		Email:              "marie.dupont@mines-albi.fr",
		EmailVerified:      true,
		PasswordHash:       string(hash),
		Phone:              "+33 6 12 34 56 78",
		DietaryConstraints: []string{"gluten", "poisson"},
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	admin := &usermodels.User{
		ID:            "2",
		Name:          "Chef Cuisine",
		Email:         "chef@mines-albi.fr",
		EmailVerified: true,
		IsAdmin:       true,
		PasswordHash:  string(hash),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, u := range []*usermodels.User{student, admin} {
		if err := users.Create(ctx, u); err != nil {
			return err
		}
	}

	for _, dish := range demoDishes() {
		d := dish
		if err := menu.CreateDish(ctx, &d); err != nil {
			return err
		}
	}
	if err := menu.SetWeeklyMenu(ctx, demoWeeklyMenu()); err != nil {
		return err
	}
	if err := menu.SetQueueInfo(ctx, &menumodels.QueueInfo{
		Volaille: menumodels.StandQueue{Current: 8, Estimated: 5},
		Viande:   menumodels.StandQueue{Current: 12, Estimated: 8},
		Poisson:  menumodels.StandQueue{Current: 4, Estimated: 3},
	}); err != nil {
		return err
	}

	if err := reservations.Create(ctx, &reservationmodels.Reservation{
		ID:        "1",
		UserID:    student.ID,
		DishID:    "1",
		Date:      "2025-01-13",
		MealType:  reservationmodels.MealTypeDinner,
		Status:    reservationmodels.StatusConfirmed,
		CreatedAt: mustParse("2025-01-12T14:30:00Z"),
	}); err != nil {
		return err
	}

	// Oldest first so the log reads newest-first. The signed sum is the
	// balance the demo account starts with (45.80).
	history := []cardmodels.Transaction{
		{ID: "4", Type: cardmodels.TransactionRecharge, Amount: 5.50, Description: "Solde initial", Date: mustParse("2025-01-05T08:00:00Z")},
		{ID: "3", Type: cardmodels.TransactionPayment, Amount: -5.50, Description: "Bœuf bourguignon", Date: mustParse("2025-01-09T12:45:00Z")},
		{ID: "2", Type: cardmodels.TransactionRecharge, Amount: 50.00, Description: "Rechargement carte", Date: mustParse("2025-01-10T09:15:00Z")},
		{ID: "1", Type: cardmodels.TransactionPayment, Amount: -4.20, Description: "Poulet aux herbes de Provence", Date: mustParse("2025-01-12T12:30:00Z")},
	}
	for i := range history {
		if err := cards.Prepend(ctx, student.ID, &history[i]); err != nil {
			return err
		}
	}

	if err := client.Set(ctx, keySeedDone, "1", 0).Err(); err != nil {
		return err
	}

	logger.Info().Msg("Demo data seeded")
	return nil
}

func mustParse(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}

func demoWeeklyMenu() *menumodels.WeeklyMenuRecord {
	return &menumodels.WeeklyMenuRecord{
		Week: "Semaine du 13-17 Janvier 2025",
		Menus: []menumodels.DailyMenuRecord{
			{
				Date:     "2025-01-13",
				Volaille: []string{"1", "2"},
				Viande:   []string{"3"},
				Poisson:  []string{"4"},
			},
		},
	}
}

func demoDishes() []menumodels.Dish {
	return []menumodels.Dish{
		{
			ID:          "1",
			Name:        "Poulet aux herbes de Provence",
			Description: "Suprême de poulet fermier mariné aux herbes fraîches",
			Price:       3.40,
			Category:    menumodels.CategoryVolaille,
			Allergens:   []string{"lactose"},
			Sourcing:    menumodels.Sourcing{Organic: true, Local: true, Origin: "Ferme du Tarn (15km)"},
			NutritionalInfo: menumodels.NutritionalInfo{
				Calories: 285, Proteins: 32, Carbs: 2, Fats: 15, Fiber: 0, Sugar: 1, Salt: 0.8,
			},
			AvailableForDinner: true,
		},
		{
			ID:          "2",
			Name:        "Escalope de dinde panée",
			Description: "Escalope de dinde française, panure maison",
			Price:       3.10,
			Category:    menumodels.CategoryVolaille,
			Allergens:   []string{"gluten"},
			Sourcing:    menumodels.Sourcing{Organic: false, Local: true, Origin: "Élevage Occitanie"},
			NutritionalInfo: menumodels.NutritionalInfo{
				Calories: 320, Proteins: 28, Carbs: 12, Fats: 18, Fiber: 1, Sugar: 2, Salt: 1.2,
			},
			AvailableForDinner: false,
		},
		{
			ID:          "3",
			Name:        "Bœuf bourguignon",
			Description: "Mijoté de bœuf aux légumes et vin rouge",
			Price:       3.50,
			Category:    menumodels.CategoryViande,
			Allergens:   []string{"sulfites"},
			Sourcing:    menumodels.Sourcing{Organic: false, Local: true, Origin: "Boucherie locale Albi"},
			NutritionalInfo: menumodels.NutritionalInfo{
				Calories: 380, Proteins: 35, Carbs: 8, Fats: 22, Fiber: 3, Sugar: 4, Salt: 1.5,
			},
			AvailableForDinner: true,
		},
		{
			ID:          "4",
			Name:        "Saumon grillé au citron",
			Description: "Filet de saumon atlantique grillé, sauce citron",
			Price:       4.20,
			Category:    menumodels.CategoryPoisson,
			Allergens:   []string{"poisson"},
			Sourcing:    menumodels.Sourcing{Organic: true, Local: false, Origin: "Élevage responsable Norvège"},
			NutritionalInfo: menumodels.NutritionalInfo{
				Calories: 340, Proteins: 38, Carbs: 0, Fats: 20, Fiber: 0, Sugar: 0, Salt: 0.9,
			},
			AvailableForDinner: true,
		},
	}
}
