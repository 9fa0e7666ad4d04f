package mapping

import (
	"database/sql"
	"time"

	"github.com/innlodge/lodgebook_app/internal/core/domain"
	"github.com/innlodge/lodgebook_app/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	refreshExpiry := sql.NullTime{}
	if d.RefreshTokenExpiryTime != nil {
		refreshExpiry = sql.NullTime{Time: *d.RefreshTokenExpiryTime, Valid: true}
	}
	return models.User{
		UserID:                 d.UserID,
		Name:                   d.Name,
		Email:                  d.Email,
		PasswordHash:           nullString(d.PasswordHash),
		AuthProvider:           string(d.AuthProvider),
		ProviderUserID:         nullString(d.ProviderUserID),
		IsEmailVerified:        d.IsEmailVerified,
		AuditFields:            ToModelAuditFields(d.AuditFields),
		DeletedAt:              d.DeletedAt,
		RefreshTokenHash:       nullString(d.RefreshTokenHash),
		RefreshTokenExpiryTime: refreshExpiry,
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	var refreshExpiry *time.Time
	if m.RefreshTokenExpiryTime.Valid {
		t := m.RefreshTokenExpiryTime.Time
		refreshExpiry = &t
	}
	return domain.User{
		UserID:                 m.UserID,
		Name:                   m.Name,
		Email:                  m.Email,
		PasswordHash:           m.PasswordHash.String,
		AuthProvider:           domain.AuthProvider(m.AuthProvider),
		ProviderUserID:         m.ProviderUserID.String,
		IsEmailVerified:        m.IsEmailVerified,
		AuditFields:            ToDomainAuditFields(m.AuditFields),
		DeletedAt:              m.DeletedAt,
		RefreshTokenHash:       m.RefreshTokenHash.String,
		RefreshTokenExpiryTime: refreshExpiry,
	}
}

// ToDomainUserSlice converts a slice of model Users to a slice of domain Users
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}
