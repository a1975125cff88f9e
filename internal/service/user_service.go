package service

import (
	"context"

	"aurum/internal/models"
	"aurum/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// SignupInput holds new account details.
type SignupInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserInput holds a partial profile edit. Role changes and username or
// email changes are admin-only; users may change their own password, title,
// and social links.
type UpdateUserInput struct {
	Username    string              `json:"username"`
	Email       string              `json:"email"`
	Password    string              `json:"password"`
	Role        string              `json:"role"`
	Title       string              `json:"title"`
	SocialLinks *models.SocialLinks `json:"social_links"`
}

// UserService implements account management.
type UserService struct {
	users repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// Signup creates a regular user account with a bcrypt-hashed password.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, models.NewValidationError("Username, email and password are required")
	}
	if len(in.Password) < 8 {
		return nil, models.NewValidationError("Password must be at least 8 characters")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: string(hashed),
		Role:     models.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks credentials and returns the user on success. The same
// error comes back for a missing account and a wrong password.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return user, nil
}

// Get returns a user by ID.
func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// List returns all users. Admin-only at the handler layer.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

// Update applies a profile edit under the role rules: admins may change any
// field on any account, non-admins only their own password, title, and
// social links.
func (s *UserService) Update(ctx context.Context, id uint, in UpdateUserInput, principal models.Principal) (*models.User, error) {
	if !principal.IsAdmin() && principal.ID != id {
		return nil, models.NewForbiddenError("You can only update your own account")
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if principal.IsAdmin() {
		if in.Username != "" {
			user.Username = in.Username
		}
		if in.Email != "" {
			user.Email = in.Email
		}
		if in.Role != "" {
			role := models.UserRole(in.Role)
			if role != models.RoleUser && role != models.RoleAdmin {
				return nil, models.NewValidationError("role must be one of: user, admin")
			}
			user.Role = role
		}
	} else if in.Username != "" || in.Email != "" || in.Role != "" {
		return nil, models.NewForbiddenError("Only admins can change username, email, or role")
	}

	if in.Password != "" {
		if len(in.Password) < 8 {
			return nil, models.NewValidationError("Password must be at least 8 characters")
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		user.Password = string(hashed)
	}
	if in.Title != "" {
		user.Title = in.Title
	}
	if in.SocialLinks != nil {
		user.SocialLinks = *in.SocialLinks
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes an account. Admin-only, and admins cannot delete themselves.
func (s *UserService) Delete(ctx context.Context, id uint, principal models.Principal) error {
	if !principal.IsAdmin() {
		return models.NewForbiddenError("Admin access required")
	}
	if principal.ID == id {
		return models.NewValidationError("You cannot delete your own account")
	}
	return s.users.Delete(ctx, id)
}
