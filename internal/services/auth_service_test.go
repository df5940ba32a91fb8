package services

import (
	"testing"

	"github.com/Abeltade/derese/internal/models"
	"github.com/Abeltade/derese/internal/repository"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthService(t *testing.T) *AuthService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return NewAuthService(repository.NewUserRepository(db), bcrypt.MinCost)
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	service := setupAuthService(t)

	user, err := service.Register(RegisterInput{Username: "alice", Password: "secret"})
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
	require.NotEqual(t, "secret", user.PasswordHash)

	loggedIn, err := service.Login(LoginInput{Username: "alice", Password: "secret"})
	require.NoError(t, err)
	require.Equal(t, user.ID, loggedIn.ID)

	_, err = service.Login(LoginInput{Username: "alice", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	service := setupAuthService(t)

	_, err := service.Register(RegisterInput{Username: "alice", Password: "secret"})
	require.NoError(t, err)

	_, err = service.Register(RegisterInput{Username: "alice", Password: "other"})
	require.ErrorIs(t, err, ErrUsernameTaken)

	// The first registration still works
	_, err = service.Login(LoginInput{Username: "alice", Password: "secret"})
	require.NoError(t, err)
}

func TestAuthService_Register_EmptyUsername(t *testing.T) {
	service := setupAuthService(t)

	_, err := service.Register(RegisterInput{Username: "   ", Password: "secret"})
	require.ErrorIs(t, err, ErrUsernameRequired)
}

func TestAuthService_Register_NoPasswordPolicy(t *testing.T) {
	service := setupAuthService(t)

	// Short and even empty passwords are accepted
	_, err := service.Register(RegisterInput{Username: "bob", Password: "x"})
	require.NoError(t, err)

	_, err = service.Login(LoginInput{Username: "bob", Password: "x"})
	require.NoError(t, err)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	service := setupAuthService(t)

	_, err := service.Login(LoginInput{Username: "ghost", Password: "whatever"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
