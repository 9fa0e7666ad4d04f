package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/innlodge/lodgebook_app/internal/apperrors"
	"github.com/innlodge/lodgebook_app/internal/core/domain"
	portsrepo "github.com/innlodge/lodgebook_app/internal/core/ports/repositories"
	portssvc "github.com/innlodge/lodgebook_app/internal/core/ports/services"
	"github.com/innlodge/lodgebook_app/internal/dto"
	"github.com/innlodge/lodgebook_app/internal/utils"
)

// userService implements the UserSvcFacade interface
type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new user service
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{
		userRepo: userRepo,
	}
}

// Ensure userService implements the UserSvcFacade interface
var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	// Reject duplicate emails up front for a clean error message.
	existing, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check for existing user", slog.String("email", req.Email))
		return nil, fmt.Errorf("failed to check for existing user: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: a user with this email already exists", apperrors.ErrDuplicate)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	newUserID := uuid.NewString()

	user := domain.User{
		UserID:       newUserID,
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		AuthProvider: domain.ProviderLocal,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     newUserID, // Self-registration
			LastUpdatedAt: now,
			LastUpdatedBy: newUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user in repository", slog.String("email", req.Email))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.LogInfo(ctx, "User created successfully", slog.String("user_id", newUserID))
	return &user, nil
}

// CreateOAuthUser creates a user from an external identity, reusing an
// existing account when the provider identity or email is already known.
func (s *userService) CreateOAuthUser(ctx context.Context, name, email, provider, providerUserID string, isEmailVerified bool) (*domain.User, error) {
	existing, err := s.userRepo.FindUserByProviderID(ctx, provider, providerUserID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up user by provider identity", slog.String("provider", provider))
		return nil, fmt.Errorf("failed to look up user by provider identity: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	// An account registered locally with the same email gets the provider
	// identity attached instead of a second account.
	byEmail, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up user by email", slog.String("email", email))
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}
	if byEmail != nil {
		byEmail.ProviderUserID = providerUserID
		if isEmailVerified {
			byEmail.IsEmailVerified = true
		}
		byEmail.LastUpdatedAt = time.Now()
		byEmail.LastUpdatedBy = byEmail.UserID
		if err := s.userRepo.UpdateUser(ctx, *byEmail); err != nil {
			s.LogError(ctx, err, "Failed to attach provider identity", slog.String("user_id", byEmail.UserID))
			return nil, fmt.Errorf("failed to attach provider identity: %w", err)
		}
		s.LogInfo(ctx, "Linked provider identity to existing user", slog.String("user_id", byEmail.UserID))
		return byEmail, nil
	}

	now := time.Now()
	newUserID := uuid.NewString()

	user := domain.User{
		UserID:          newUserID,
		Name:            name,
		Email:           email,
		AuthProvider:    domain.AuthProvider(provider),
		ProviderUserID:  providerUserID,
		IsEmailVerified: isEmailVerified,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     newUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: newUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save OAuth user", slog.String("email", email))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.LogInfo(ctx, "OAuth user created successfully",
		slog.String("user_id", newUserID),
		slog.String("provider", provider))
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user by ID", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user by email", slog.String("email", email))
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// No effective change, skip the write.
	if req.Name == nil || *req.Name == user.Name {
		return user, nil
	}

	user.Name = *req.Name
	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = requestingUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.LogInfo(ctx, "User updated successfully", slog.String("user_id", userID))
	return user, nil
}

func (s *userService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	if err := s.userRepo.UpdateRefreshTokenDetails(ctx, userID, refreshTokenHash, refreshTokenExpiryTime); err != nil {
		s.LogError(ctx, err, "Failed to update refresh token details", slog.String("user_id", userID))
		return fmt.Errorf("failed to update refresh token details: %w", err)
	}
	return nil
}

func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	if err := s.userRepo.ClearRefreshTokenDetails(ctx, userID); err != nil {
		s.LogError(ctx, err, "Failed to clear refresh token details", slog.String("user_id", userID))
		return fmt.Errorf("failed to clear refresh token details: %w", err)
	}
	return nil
}

func (s *userService) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	if err := s.userRepo.MarkUserDeleted(ctx, userID, time.Now(), requestingUserID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to mark user deleted", slog.String("user_id", userID))
		}
		return err
	}
	s.LogInfo(ctx, "User deleted successfully", slog.String("user_id", userID))
	return nil
}

// AuthenticateUser verifies local credentials. Lookup misses and password
// mismatches come back as the same unauthorized error.
func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		s.LogError(ctx, err, "Failed to find user during authentication", slog.String("email", email))
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	// OAuth-only accounts have no password to check.
	if user.PasswordHash == "" {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	return user, nil
}
