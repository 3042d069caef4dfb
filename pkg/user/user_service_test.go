package user

import (
	"context"
	"testing"

	"Little-Gardener-Backend/domain"
	"Little-Gardener-Backend/entities"
	"Little-Gardener-Backend/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	users      map[string]*entities.User
	itemCounts map[uuid.UUID]int64
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		users:      map[string]*entities.User{},
		itemCounts: map[uuid.UUID]int64{},
	}
}

func (r *fakeUserRepository) CreateUser(ctx context.Context, user *entities.User) error {
	r.users[user.Username] = user
	return nil
}

func (r *fakeUserRepository) GetUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	if user, ok := r.users[username]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	for _, user := range r.users {
		if user.ID.String() == id {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepository) CountGardenItems(ctx context.Context, userID uuid.UUID) (int64, error) {
	return r.itemCounts[userID], nil
}

func newTestService() (UserService, *fakeUserRepository) {
	repo := newFakeUserRepository()
	return NewUserService(repo, jwt.NewJWTService()), repo
}

func TestRegister_HashesPassword(t *testing.T) {
	svc, repo := newTestService()

	res, err := svc.Register(context.Background(), domain.RegisterRequest{
		Username: "ferdinand",
		Password: "hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, "ferdinand", res.Username)
	assert.Equal(t, 0, res.PlantCount)

	stored := repo.users["ferdinand"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "hunter2", stored.Password, "plaintext password must never be stored")
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.Register(context.Background(), domain.RegisterRequest{Username: "ferdinand", Password: "hunter2"})
	require.NoError(t, err)
	firstHash := repo.users["ferdinand"].Password

	_, err = svc.Register(context.Background(), domain.RegisterRequest{Username: "ferdinand", Password: "other"})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
	assert.Equal(t, firstHash, repo.users["ferdinand"].Password, "existing account must be untouched")
}

func TestLogin_RoundTrip(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.Register(context.Background(), domain.RegisterRequest{Username: "ferdinand", Password: "hunter2"})
	require.NoError(t, err)
	repo.itemCounts[repo.users["ferdinand"].ID] = 3

	res, err := svc.Login(context.Background(), domain.LoginRequest{Username: "ferdinand", Password: "hunter2"})
	require.NoError(t, err)
	assert.Equal(t, "ferdinand", res.Username)
	assert.Equal(t, 3, res.PlantCount)
	assert.NotEmpty(t, res.Token)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), domain.RegisterRequest{Username: "ferdinand", Password: "hunter2"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), domain.LoginRequest{Username: "ferdinand", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Login(context.Background(), domain.LoginRequest{Username: "nobody", Password: "hunter2"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestMe(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.Register(context.Background(), domain.RegisterRequest{Username: "ferdinand", Password: "hunter2"})
	require.NoError(t, err)
	stored := repo.users["ferdinand"]

	res, err := svc.Me(context.Background(), stored.ID.String())
	require.NoError(t, err)
	assert.Equal(t, stored.ID.String(), res.ID)
	assert.Equal(t, "ferdinand", res.Username)

	_, err = svc.Me(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
