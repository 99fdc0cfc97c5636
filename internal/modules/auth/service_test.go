package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"salonbook/internal/domain"
	"salonbook/internal/repository"
)

type fakeUserRepo struct {
	byEmail map[string]*domain.User
	nextID  int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	f.nextID++
	u.ID = f.nextID
	cp := *u
	f.byEmail[u.Email] = &cp
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

type fakeJWT struct{}

func (fakeJWT) GenerateToken(userID int64, role string) (string, error) {
	return "token", nil
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, fakeJWT{})
	ctx := context.Background()

	user, token, err := svc.Register(ctx, RegisterRequest{
		Name: "Aigerim", Email: "  Aigerim@Example.com ", Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "aigerim@example.com", user.Email)
	assert.Equal(t, domain.RoleCustomer, user.Role)
	assert.Empty(t, user.PasswordHash)
	assert.NotEmpty(t, token)

	// stored hash is bcrypt, not the raw password
	stored := repo.byEmail["aigerim@example.com"]
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")))

	_, _, err = svc.Register(ctx, RegisterRequest{
		Name: "Other", Email: "aigerim@example.com", Password: "secret2",
	})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	_, token, err = svc.Login(ctx, LoginRequest{Email: "aigerim@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, _, err = svc.Login(ctx, LoginRequest{Email: "aigerim@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetCurrentUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, fakeJWT{})
	ctx := context.Background()

	user, _, err := svc.Register(ctx, RegisterRequest{
		Name: "Dana", Email: "dana@example.com", Password: "secret1",
	})
	require.NoError(t, err)

	got, err := svc.GetCurrentUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dana", got.Name)
	assert.Empty(t, got.PasswordHash)

	_, err = svc.GetCurrentUser(ctx, 404)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
