package service

import (
	"context"
	"testing"
	"time"

	"cantine-backend/internal/common/token"
	"cantine-backend/internal/features/auth/models"
	usermodels "cantine-backend/internal/features/user/models"
	userrepo "cantine-backend/internal/features/user/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepository struct {
	byID    map[string]*usermodels.User
	byEmail map[string]*usermodels.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		byID:    make(map[string]*usermodels.User),
		byEmail: make(map[string]*usermodels.User),
	}
}

func (r *fakeUserRepository) Create(_ context.Context, user *usermodels.User) error {
	r.byID[user.ID] = user
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepository) GetByID(_ context.Context, id string) (*usermodels.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, userrepo.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepository) GetByEmail(_ context.Context, email string) (*usermodels.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, userrepo.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepository) Update(_ context.Context, user *usermodels.User) error {
	r.byID[user.ID] = user
	return nil
}

func (r *fakeUserRepository) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

func (r *fakeUserRepository) List(context.Context) ([]*usermodels.User, error) { return nil, nil }

func newTestService() (AuthService, *fakeUserRepository, *token.Manager) {
	repo := newFakeUserRepository()
	tokens := token.NewManager("test-secret", "cantine-backend", time.Hour)
	return NewAuthService(repo, tokens), repo, tokens
}

func TestRegister(t *testing.T) {
	svc, repo, tokens := newTestService()

	resp, err := svc.Register(context.Background(), &models.RegisterInput{
		Name:     "Marie Dupont",
		Email:    "  Marie.Dupont@mines-albi.fr ",
		Password: "cantine123",
	})
	require.NoError(t, err)

	assert.Equal(t, "marie.dupont@mines-albi.fr", resp.User.Email)
	assert.False(t, resp.User.IsAdmin)
	assert.False(t, resp.User.EmailVerified)
	assert.NotNil(t, resp.User.DietaryConstraints)

	claims, err := tokens.Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)

	stored := repo.byEmail["marie.dupont@mines-albi.fr"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "cantine123", stored.PasswordHash, "password must be stored hashed")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &models.RegisterInput{
		Name:     "Marie Dupont",
		Email:    "marie.dupont@mines-albi.fr",
		Password: "cantine123",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &models.RegisterInput{
		Name:     "Imposteur",
		Email:    "MARIE.DUPONT@mines-albi.fr",
		Password: "autre-mot-de-passe",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &models.RegisterInput{
		Name:     "Marie Dupont",
		Email:    "marie.dupont@mines-albi.fr",
		Password: "cantine123",
	})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, &models.LoginInput{
		Email:    "Marie.Dupont@mines-albi.fr",
		Password: "cantine123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "marie.dupont@mines-albi.fr", resp.User.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &models.RegisterInput{
		Name:     "Marie Dupont",
		Email:    "marie.dupont@mines-albi.fr",
		Password: "cantine123",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &models.LoginInput{
		Email:    "marie.dupont@mines-albi.fr",
		Password: "mauvais",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &models.LoginInput{
		Email:    "inconnu@mines-albi.fr",
		Password: "cantine123",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
