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
)

// propertyService implements the PropertySvcFacade interface
type propertyService struct {
	BaseService
	propertyRepo portsrepo.PropertyRepositoryFacade
}

// NewPropertyService creates a new property service
func NewPropertyService(repo portsrepo.PropertyRepositoryFacade) portssvc.PropertySvcFacade {
	return &propertyService{
		propertyRepo: repo,
	}
}

// Ensure propertyService implements the PropertySvcFacade interface
var _ portssvc.PropertySvcFacade = (*propertyService)(nil)

// AuthorizeUserForProperty checks that the user owns the property. Other
// services lean on this check through their property authorizer option.
func (s *propertyService) AuthorizeUserForProperty(ctx context.Context, userID, propertyID string) error {
	property, err := s.propertyRepo.FindPropertyByID(ctx, propertyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load property for authorization",
				slog.String("property_id", propertyID))
		}
		return err
	}
	if property.OwnerUserID != userID {
		return fmt.Errorf("%w: user %s does not own property %s", apperrors.ErrForbidden, userID, propertyID)
	}
	return nil
}

func (s *propertyService) CreateProperty(ctx context.Context, req dto.CreatePropertyRequest, creatorUserID string) (*domain.Property, error) {
	now := time.Now()
	property := domain.Property{
		PropertyID:  uuid.NewString(),
		Name:        req.Name,
		Address:     req.Address,
		OwnerUserID: creatorUserID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.propertyRepo.SaveProperty(ctx, property); err != nil {
		s.LogError(ctx, err, "Failed to save property in repository",
			slog.String("property_name", req.Name))
		return nil, fmt.Errorf("failed to create property: %w", err)
	}

	s.LogInfo(ctx, "Property created successfully",
		slog.String("property_id", property.PropertyID),
		slog.String("owner_user_id", creatorUserID))
	return &property, nil
}

func (s *propertyService) GetPropertyByID(ctx context.Context, propertyID string, requestingUserID string) (*domain.Property, error) {
	if err := s.AuthorizeUserForProperty(ctx, requestingUserID, propertyID); err != nil {
		return nil, err
	}

	property, err := s.propertyRepo.FindPropertyByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	return property, nil
}

func (s *propertyService) ListProperties(ctx context.Context, requestingUserID string) ([]domain.Property, error) {
	properties, err := s.propertyRepo.ListPropertiesByOwner(ctx, requestingUserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list properties",
			slog.String("owner_user_id", requestingUserID))
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return properties, nil
}

func (s *propertyService) UpdateProperty(ctx context.Context, propertyID string, req dto.UpdatePropertyRequest, requestingUserID string) (*domain.Property, error) {
	if err := s.AuthorizeUserForProperty(ctx, requestingUserID, propertyID); err != nil {
		return nil, err
	}

	property, err := s.propertyRepo.FindPropertyByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		property.Name = *req.Name
	}
	if req.Address != nil {
		property.Address = *req.Address
	}
	property.LastUpdatedAt = time.Now()
	property.LastUpdatedBy = requestingUserID

	if err := s.propertyRepo.UpdateProperty(ctx, *property); err != nil {
		s.LogError(ctx, err, "Failed to update property in repository",
			slog.String("property_id", propertyID))
		return nil, fmt.Errorf("failed to update property: %w", err)
	}

	s.LogInfo(ctx, "Property updated successfully", slog.String("property_id", propertyID))
	return property, nil
}

func (s *propertyService) DeleteProperty(ctx context.Context, propertyID string, requestingUserID string) error {
	if err := s.AuthorizeUserForProperty(ctx, requestingUserID, propertyID); err != nil {
		return err
	}

	if err := s.propertyRepo.MarkPropertyDeleted(ctx, propertyID, time.Now(), requestingUserID); err != nil {
		s.LogError(ctx, err, "Failed to mark property deleted",
			slog.String("property_id", propertyID))
		return fmt.Errorf("failed to delete property: %w", err)
	}

	s.LogInfo(ctx, "Property deleted successfully", slog.String("property_id", propertyID))
	return nil
}
