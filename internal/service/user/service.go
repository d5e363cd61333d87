package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/salescope/salestracker-backend-go/internal/domain/user"
	"github.com/salescope/salestracker-backend-go/internal/pkg/database"
	"github.com/salescope/salestracker-backend-go/internal/repository/postgresql"
)

type UserServiceImpl struct {
	db       *database.DB
	userRepo user.UserRepository
	jwtRepo  postgresql.JWTRepository
}

func NewUserService(db *database.DB, userRepo user.UserRepository, jwtRepo postgresql.JWTRepository) user.UserService {
	return &UserServiceImpl{
		db:       db,
		userRepo: userRepo,
		jwtRepo:  jwtRepo,
	}
}

// GetUser implements user.UserService.
func (s *UserServiceImpl) GetUser(ctx context.Context, id string) (user.UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.NewUserResponse(u), nil
}

// CreateUser implements user.UserService.
func (s *UserServiceImpl) CreateUser(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	taken, err := s.userRepo.ExistsByUsername(ctx, req.Username, "")
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return user.UserResponse{}, user.ErrUsernameExists
	}

	if req.Email != nil && strings.TrimSpace(*req.Email) != "" {
		taken, err := s.userRepo.ExistsByEmail(ctx, *req.Email, "")
		if err != nil {
			return user.UserResponse{}, fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			return user.UserResponse{}, user.ErrEmailExists
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.userRepo.Create(ctx, user.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         user.Role(req.Role),
		IsActive:     true,
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	return user.NewUserResponse(created), nil
}

// UpdateUser implements user.UserService. Demoting or deactivating the
// last active admin is refused so the instance cannot lock itself out.
func (s *UserServiceImpl) UpdateUser(ctx context.Context, req user.UpdateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	existing, err := s.userRepo.GetByID(ctx, req.ID)
	if err != nil {
		return user.UserResponse{}, err
	}

	demoted := req.Role != nil && user.Role(*req.Role) != user.RoleAdmin
	deactivated := req.IsActive != nil && !*req.IsActive
	if existing.Role == user.RoleAdmin && existing.IsActive && (demoted || deactivated) {
		admins, err := s.userRepo.CountActiveAdmins(ctx)
		if err != nil {
			return user.UserResponse{}, fmt.Errorf("failed to count admins: %w", err)
		}
		if admins <= 1 {
			return user.UserResponse{}, user.ErrLastAdmin
		}
	}

	if req.Email != nil && strings.TrimSpace(*req.Email) != "" {
		taken, err := s.userRepo.ExistsByEmail(ctx, *req.Email, req.ID)
		if err != nil {
			return user.UserResponse{}, fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			return user.UserResponse{}, user.ErrEmailExists
		}
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)

		if err := s.userRepo.Update(txCtx, req); err != nil {
			return err
		}

		if req.Password != nil {
			hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}
			if err := s.userRepo.UpdatePassword(txCtx, req.ID, string(hash)); err != nil {
				return err
			}
			// An admin password reset invalidates the user's sessions.
			if err := s.jwtRepo.RevokeAllForUser(txCtx, req.ID); err != nil {
				return fmt.Errorf("failed to revoke refresh tokens: %w", err)
			}
		}

		if deactivated {
			if err := s.jwtRepo.RevokeAllForUser(txCtx, req.ID); err != nil {
				return fmt.Errorf("failed to revoke refresh tokens: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	updated, err := s.userRepo.GetByID(ctx, req.ID)
	if err != nil {
		return user.UserResponse{}, err
	}

	return user.NewUserResponse(updated), nil
}

// DeleteUser implements user.UserService.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, callerID, id string) error {
	if callerID == id {
		return user.ErrCannotDeleteSelf
	}

	target, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if target.Role == user.RoleAdmin && target.IsActive {
		admins, err := s.userRepo.CountActiveAdmins(ctx)
		if err != nil {
			return fmt.Errorf("failed to count admins: %w", err)
		}
		if admins <= 1 {
			return user.ErrLastAdmin
		}
	}

	// Refresh tokens go with the row via ON DELETE CASCADE.
	return s.userRepo.Delete(ctx, id)
}

// ListUsers implements user.UserService.
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]user.UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.NewUserResponse(u))
	}
	return responses, nil
}
