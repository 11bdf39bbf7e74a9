package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibleapp/bible-prayer-api/pkg/util"
)

type stubRepo struct {
	Repository

	usernameTaken bool
	emailTaken    bool
	user          *User
	userErr       error

	createdUsername string
	createdPassword string
	createdAvatar   string
	createdLanguage string
	updatedFields   map[string]interface{}
	emailExcludeID  int
}

func (s *stubRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.usernameTaken, nil
}

func (s *stubRepo) EmailExists(ctx context.Context, email string, excludeUserID int) (bool, error) {
	s.emailExcludeID = excludeUserID
	return s.emailTaken, nil
}

func (s *stubRepo) CreateUser(ctx context.Context, username, email, hashedPassword, avatar, language string) (int, error) {
	s.createdUsername = username
	s.createdPassword = hashedPassword
	s.createdAvatar = avatar
	s.createdLanguage = language
	return 1, nil
}

func (s *stubRepo) GetUserByID(ctx context.Context, id int) (*User, error) {
	return s.user, s.userErr
}

func (s *stubRepo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return s.user, s.userErr
}

func (s *stubRepo) UpdateProfile(ctx context.Context, userID int, fields map[string]interface{}) error {
	s.updatedFields = fields
	return nil
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc := NewService(&stubRepo{usernameTaken: true}, nil, "")

	err := svc.Register(context.Background(), "alice", "alice@example.com", "secret")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := NewService(&stubRepo{emailTaken: true}, nil, "")

	err := svc.Register(context.Background(), "alice", "alice@example.com", "secret")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_HashesPasswordAndSetsDefaults(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo, nil, "")

	require.NoError(t, svc.Register(context.Background(), "alice", "alice@example.com", "secret"))

	assert.Equal(t, "alice", repo.createdUsername)
	assert.NotEqual(t, "secret", repo.createdPassword)
	assert.NoError(t, util.ComparePassword(repo.createdPassword, "secret"))
	assert.Equal(t, DefaultAvatar, repo.createdAvatar)
	assert.Equal(t, DefaultLanguage, repo.createdLanguage)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := NewService(&stubRepo{userErr: ErrUserNotFound}, nil, "")

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_WrongPassword(t *testing.T) {
	hashed, err := util.HashPassword("right")
	require.NoError(t, err)

	svc := NewService(&stubRepo{user: &User{ID: 1, Email: "a@b.c", Password: hashed}}, nil, "")

	_, _, err = svc.Login(context.Background(), "a@b.c", "wrong")
	// Same client-facing error as an unknown email.
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_IssuesToken(t *testing.T) {
	hashed, err := util.HashPassword("secret")
	require.NoError(t, err)

	svc := NewService(&stubRepo{user: &User{ID: 1, Email: "a@b.c", Password: hashed}}, nil, "test-secret")

	u, token, err := svc.Login(context.Background(), "a@b.c", "secret")
	require.NoError(t, err)
	assert.Equal(t, 1, u.ID)

	claims, err := util.ValidateJWT("test-secret", token)
	require.NoError(t, err)
	assert.Equal(t, 1, claims.UserID)
	assert.Equal(t, "a@b.c", claims.Email)
}

func TestUpdateProfile_UsernameOnlySkipsPasswordCheck(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo, nil, "")

	name := "newname"
	err := svc.UpdateProfile(context.Background(), 1, UpdateProfileRequest{Username: &name})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"username": "newname"}, repo.updatedFields)
}

func TestUpdateProfile_EmailChangeNeedsCurrentPassword(t *testing.T) {
	hashed, err := util.HashPassword("right")
	require.NoError(t, err)

	repo := &stubRepo{user: &User{ID: 1, Password: hashed}}
	svc := NewService(repo, nil, "")

	email := "new@example.com"
	err = svc.UpdateProfile(context.Background(), 1, UpdateProfileRequest{
		Email:           &email,
		CurrentPassword: "wrong",
	})
	assert.ErrorIs(t, err, ErrWrongPassword)
	assert.Nil(t, repo.updatedFields)
}

func TestUpdateProfile_EmailUniquenessExcludesOwnRow(t *testing.T) {
	hashed, err := util.HashPassword("right")
	require.NoError(t, err)

	repo := &stubRepo{user: &User{ID: 1, Password: hashed}}
	svc := NewService(repo, nil, "")

	email := "new@example.com"
	err = svc.UpdateProfile(context.Background(), 1, UpdateProfileRequest{
		Email:           &email,
		CurrentPassword: "right",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.emailExcludeID)
	assert.Equal(t, "new@example.com", repo.updatedFields["email"])
}

func TestUpdateProfile_NewPasswordIsHashed(t *testing.T) {
	hashed, err := util.HashPassword("right")
	require.NoError(t, err)

	repo := &stubRepo{user: &User{ID: 1, Password: hashed}}
	svc := NewService(repo, nil, "")

	newPass := "fresh-secret"
	err = svc.UpdateProfile(context.Background(), 1, UpdateProfileRequest{
		NewPassword:     &newPass,
		CurrentPassword: "right",
	})
	require.NoError(t, err)

	stored, ok := repo.updatedFields["password"].(string)
	require.True(t, ok)
	assert.NotEqual(t, "fresh-secret", stored)
	assert.NoError(t, util.ComparePassword(stored, "fresh-secret"))
}
