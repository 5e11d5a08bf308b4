package services

import (
	"testing"
	"time"

	"comandero/configs"
	"comandero/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(env *testEnv) *AuthService {
	cfg := &configs.Config{JWTSecret: "test-secret", JWTTTL: time.Hour}
	return NewAuthService(repository.NewUserRepository(env.db), cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)

	user, err := auth.Register(&RegisterReq{
		FirstName:    "Nadia",
		LastName:     "Fuentes",
		Email:        "nadia@test.local",
		Password:     "correct-horse",
		Role:         "kitchen",
		RestaurantID: env.RestaurantID,
	})
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse", user.Password, "password must be stored hashed")

	res, err := auth.Login("nadia@test.local", "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, user.ID, res.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)

	req := &RegisterReq{
		Email:        "dup@test.local",
		Password:     "correct-horse",
		Role:         "waiter",
		RestaurantID: env.RestaurantID,
	}
	_, err := auth.Register(req)
	require.NoError(t, err)

	_, err = auth.Register(req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLoginWrongCredentials(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)

	_, err := auth.Register(&RegisterReq{
		Email:        "casey@test.local",
		Password:     "correct-horse",
		Role:         "cashier",
		RestaurantID: env.RestaurantID,
	})
	require.NoError(t, err)

	_, err = auth.Login("casey@test.local", "wrong-horse")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = auth.Login("nobody@test.local", "correct-horse")
	assert.ErrorIs(t, err, ErrValidation)
}
