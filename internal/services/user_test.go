package services_test

import (
	"context"
	"encoding/json"
	"testing"

	"talenttrack-backend/internal/models"
	"talenttrack-backend/internal/services"
	"talenttrack-backend/internal/token"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserService() (*services.UserService, *fakeUserRepo, *token.Service) {
	repo := newFakeUserRepo()
	tokens := token.NewService("test-secret")
	return services.NewUserService(repo, tokens), repo, tokens
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, repo, _ := newUserService()

	user, err := svc.Register(context.Background(), services.RegisterInput{
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: "secret-pw",
		Role:     models.RolePlayer,
	})
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)

	stored := repo.users[user.ID]
	require.NotEqual(t, "secret-pw", stored.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret-pw")))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newUserService()

	_, err := svc.Register(context.Background(), services.RegisterInput{
		Name: "Asha", Email: "asha@example.com", Password: "pw1", Role: models.RoleScout,
	})
	require.NoError(t, err)

	// Same email, everything else different: still a conflict.
	_, err = svc.Register(context.Background(), services.RegisterInput{
		Name: "Other", Email: "asha@example.com", Password: "pw2", Role: models.RolePlayer,
	})
	require.ErrorIs(t, err, services.ErrEmailTaken)
}

func TestLoginRoundtrip(t *testing.T) {
	svc, _, tokens := newUserService()

	registered, err := svc.Register(context.Background(), services.RegisterInput{
		Name: "Asha", Email: "asha@example.com", Password: "secret-pw", Role: models.RoleScout,
	})
	require.NoError(t, err)

	user, signed, err := svc.Login(context.Background(), "asha@example.com", "secret-pw")
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)

	claims, err := tokens.Verify(signed)
	require.NoError(t, err)
	require.Equal(t, registered.ID, claims.UserID)
	require.Equal(t, models.RoleScout, claims.Role)
}

func TestLoginFailures(t *testing.T) {
	svc, _, _ := newUserService()

	_, err := svc.Register(context.Background(), services.RegisterInput{
		Name: "Asha", Email: "asha@example.com", Password: "secret-pw", Role: models.RolePlayer,
	})
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "secret-pw")
	require.ErrorIs(t, err, services.ErrUnknownUser)

	_, _, err = svc.Login(context.Background(), "asha@example.com", "wrong-pw")
	require.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestUserJSONNeverCarriesHash(t *testing.T) {
	svc, _, _ := newUserService()

	_, err := svc.Register(context.Background(), services.RegisterInput{
		Name: "Asha", Email: "asha@example.com", Password: "secret-pw", Role: models.RolePlayer,
	})
	require.NoError(t, err)

	users, err := svc.Feed(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)

	data, err := json.Marshal(users[0])
	require.NoError(t, err)
	require.NotContains(t, string(data), "secret-pw")
	require.NotContains(t, string(data), users[0].PasswordHash)
	require.NotContains(t, string(data), "password")
}

func TestUpdateProfilePartial(t *testing.T) {
	svc, _, _ := newUserService()

	registered, err := svc.Register(context.Background(), services.RegisterInput{
		Name: "Asha", Email: "asha@example.com", Password: "pw", Role: models.RolePlayer,
		Sport: "Cricket", Location: "Pune",
	})
	require.NoError(t, err)

	bio := "All-rounder"
	age := 19
	updated, err := svc.UpdateProfile(context.Background(), registered.ID, models.ProfileUpdate{
		Bio: &bio,
		Age: &age,
	})
	require.NoError(t, err)
	require.Equal(t, "All-rounder", updated.Bio)
	require.NotNil(t, updated.Age)
	require.Equal(t, 19, *updated.Age)

	// Untouched fields survive the partial update.
	require.Equal(t, "Cricket", updated.Sport)
	require.Equal(t, "Pune", updated.Location)
	require.Equal(t, "asha@example.com", updated.Email)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	svc, _, _ := newUserService()

	bio := "bio"
	_, err := svc.UpdateProfile(context.Background(), "missing-id", models.ProfileUpdate{Bio: &bio})
	require.ErrorIs(t, err, services.ErrUserNotFound)
}

func TestSetProfilePic(t *testing.T) {
	svc, repo, _ := newUserService()

	registered, err := svc.Register(context.Background(), services.RegisterInput{
		Name: "Asha", Email: "asha@example.com", Password: "pw", Role: models.RolePlayer,
	})
	require.NoError(t, err)

	require.NoError(t, svc.SetProfilePic(context.Background(), registered.ID, "/uploads/profile-1.jpg"))
	require.Equal(t, "/uploads/profile-1.jpg", repo.users[registered.ID].ProfilePic)

	require.ErrorIs(t, svc.SetProfilePic(context.Background(), "missing-id", "/uploads/x.jpg"), services.ErrUserNotFound)
}
