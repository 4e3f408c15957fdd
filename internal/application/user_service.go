package application

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/shareit-platform/service-rental/internal/domain/apperr"
	"github.com/shareit-platform/service-rental/internal/domain/user"
)

// CreateUserRequest is the request DTO for registering a user.
type CreateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

// UpdateUserRequest is the request DTO for a partial user update.
type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// UserService implements user management use cases and serves as the user
// directory consumed by the other services.
type UserService struct {
	repo   user.Repository
	logger *zap.Logger
}

// NewUserService creates a new UserService.
func NewUserService(repo user.Repository, logger *zap.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// Exists implements user.Directory.
func (s *UserService) Exists(ctx context.Context, userID int64) (bool, error) {
	return s.repo.Exists(ctx, userID)
}

// Get implements user.Snapshots.
func (s *UserService) Get(ctx context.Context, userID int64) (user.Snapshot, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return user.Snapshot{}, err
	}
	return toUserSnapshot(u), nil
}

// Create registers a new user with a unique email.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*UserDTO, error) {
	u, err := user.NewUser(req.Name, req.Email)
	if err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsByEmail(ctx, u.Email(), 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if taken {
		return nil, apperr.Conflict("email is already in use")
	}

	if err := s.repo.Save(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	s.logger.Info("user created", zap.Int64("user_id", u.ID()))
	dto := toUserDTO(u)
	return &dto, nil
}

// Update applies a partial user update.
func (s *UserService) Update(ctx context.Context, userID int64, req UpdateUserRequest) (*UserDTO, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		taken, err := s.repo.ExistsByEmail(ctx, *req.Email, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
		}
		if taken {
			return nil, apperr.Conflict("email is already in use")
		}
	}

	if err := u.Update(req.Name, req.Email); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("user updated", zap.Int64("user_id", userID))
	dto := toUserDTO(u)
	return &dto, nil
}

// FindByID retrieves one user.
func (s *UserService) FindByID(ctx context.Context, userID int64) (*UserDTO, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	dto := toUserDTO(u)
	return &dto, nil
}

// FindAll lists every registered user.
func (s *UserService) FindAll(ctx context.Context) ([]UserDTO, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = toUserDTO(u)
	}
	return dtos, nil
}

// Delete removes a user.
func (s *UserService) Delete(ctx context.Context, userID int64) error {
	exists, err := s.repo.Exists(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to check user existence: %w", err)
	}
	if !exists {
		return apperr.NotFound("user", userID)
	}
	if err := s.repo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.logger.Info("user deleted", zap.Int64("user_id", userID))
	return nil
}
