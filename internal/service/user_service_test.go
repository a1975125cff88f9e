package service

import (
	"context"
	"testing"

	"aurum/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	deleteFn        func(context.Context, uint) error
	listFn          func(context.Context) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, u *models.User) error { return s.createFn(ctx, u) }
func (s *userRepoStub) Update(ctx context.Context, u *models.User) error { return s.updateFn(ctx, u) }
func (s *userRepoStub) Delete(ctx context.Context, id uint) error        { return s.deleteFn(ctx, id) }
func (s *userRepoStub) List(ctx context.Context) ([]models.User, error)  { return s.listFn(ctx) }

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(_ context.Context, _ uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
		listFn:          func(_ context.Context) ([]models.User, error) { return nil, nil },
	}
}

func TestSignupValidation(t *testing.T) {
	svc := NewUserService(noopUserRepo())

	_, err := svc.Signup(context.Background(), SignupInput{Username: "a", Email: "a@b.c"})
	assert.ErrorContains(t, err, "required")

	_, err = svc.Signup(context.Background(), SignupInput{Username: "a", Email: "a@b.c", Password: "short"})
	assert.ErrorContains(t, err, "at least 8 characters")
}

func TestSignupHashesPassword(t *testing.T) {
	var created *models.User
	repo := noopUserRepo()
	repo.createFn = func(_ context.Context, u *models.User) error {
		u.ID = 1
		created = u
		return nil
	}
	svc := NewUserService(repo)

	_, err := svc.Signup(context.Background(), SignupInput{
		Username: "goldbug", Email: "g@example.com", Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, models.RoleUser, created.Role)
	assert.NotEqual(t, "hunter2hunter2", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("hunter2hunter2")))
}

func TestAuthenticate(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.DefaultCost)
	require.NoError(t, err)

	repo := noopUserRepo()
	repo.getByEmailFn = func(_ context.Context, email string) (*models.User, error) {
		if email == "known@example.com" {
			return &models.User{ID: 1, Email: email, Password: string(hashed)}, nil
		}
		return nil, nil
	}
	svc := NewUserService(repo)

	u, err := svc.Authenticate(context.Background(), "known@example.com", "correct-horse")
	require.NoError(t, err)
	assert.EqualValues(t, 1, u.ID)

	// Unknown account and wrong password fail identically.
	_, err = svc.Authenticate(context.Background(), "known@example.com", "wrong")
	wrongPass := err
	_, err = svc.Authenticate(context.Background(), "missing@example.com", "whatever")
	require.Error(t, wrongPass)
	require.Error(t, err)
	assert.Equal(t, wrongPass.Error(), err.Error())
}

func TestUpdateUserRoleRules(t *testing.T) {
	stored := &models.User{ID: 2, Username: "author", Email: "a@e.com", Role: models.RoleUser}
	repo := noopUserRepo()
	repo.getByIDFn = func(_ context.Context, _ uint) (*models.User, error) {
		u := *stored
		return &u, nil
	}
	svc := NewUserService(repo)
	ctx := context.Background()

	selfP := models.Principal{ID: 2, Role: models.RoleUser}
	adminP := models.Principal{ID: 1, Role: models.RoleAdmin}

	// Users cannot touch other accounts.
	_, err := svc.Update(ctx, 2, UpdateUserInput{Title: "x"}, models.Principal{ID: 9, Role: models.RoleUser})
	require.Error(t, err)
	assert.Equal(t, 403, models.StatusForError(err))

	// Users cannot change their own username, email, or role.
	_, err = svc.Update(ctx, 2, UpdateUserInput{Role: "admin"}, selfP)
	require.Error(t, err)
	assert.Equal(t, 403, models.StatusForError(err))

	// Users may change their own title and social links.
	u, err := svc.Update(ctx, 2, UpdateUserInput{
		Title:       "Head of Research",
		SocialLinks: &models.SocialLinks{Twitter: "https://twitter.com/author"},
	}, selfP)
	require.NoError(t, err)
	assert.Equal(t, "Head of Research", u.Title)
	assert.Equal(t, "https://twitter.com/author", u.SocialLinks.Twitter)

	// Admins may change any field, but bad roles are rejected.
	_, err = svc.Update(ctx, 2, UpdateUserInput{Role: "superuser"}, adminP)
	require.Error(t, err)
	assert.Equal(t, 400, models.StatusForError(err))

	u, err = svc.Update(ctx, 2, UpdateUserInput{Role: "admin", Username: "renamed"}, adminP)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, u.Role)
	assert.Equal(t, "renamed", u.Username)
}

func TestDeleteUserRules(t *testing.T) {
	repo := noopUserRepo()
	svc := NewUserService(repo)
	ctx := context.Background()

	err := svc.Delete(ctx, 2, models.Principal{ID: 2, Role: models.RoleUser})
	require.Error(t, err)
	assert.Equal(t, 403, models.StatusForError(err))

	// Admins cannot delete themselves.
	err = svc.Delete(ctx, 1, models.Principal{ID: 1, Role: models.RoleAdmin})
	require.Error(t, err)
	assert.Equal(t, 400, models.StatusForError(err))

	err = svc.Delete(ctx, 2, models.Principal{ID: 1, Role: models.RoleAdmin})
	assert.NoError(t, err)
}
