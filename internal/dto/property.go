package dto

import (
	"github.com/innlodge/lodgebook_app/internal/core/domain"
)

// CreatePropertyRequest defines the data needed to create a property.
type CreatePropertyRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}

// UpdatePropertyRequest defines the data allowed for updating a property.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdatePropertyRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
}

// PropertyResponse defines the data returned for a property.
type PropertyResponse struct {
	PropertyID  string `json:"propertyID"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	OwnerUserID string `json:"ownerUserID"`
}

// ToPropertyResponse converts a domain.Property to PropertyResponse DTO.
func ToPropertyResponse(p *domain.Property) PropertyResponse {
	return PropertyResponse{
		PropertyID:  p.PropertyID,
		Name:        p.Name,
		Address:     p.Address,
		OwnerUserID: p.OwnerUserID,
	}
}

// ListPropertiesResponse wraps the list of properties.
type ListPropertiesResponse struct {
	Properties []PropertyResponse `json:"properties"`
}

// ToListPropertiesResponse converts a slice of domain.Property to ListPropertiesResponse DTO
func ToListPropertiesResponse(properties []domain.Property) ListPropertiesResponse {
	responses := make([]PropertyResponse, len(properties))
	for i, p := range properties {
		responses[i] = ToPropertyResponse(&p)
	}
	return ListPropertiesResponse{
		Properties: responses,
	}
}
