package partners

import (
	"github.com/angelmondragon/ooh-agent-backend/pkg/db/models"
	"github.com/google/uuid"
)

type Partner struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Phone *string   `json:"phone,omitempty"`
	Notes *string   `json:"notes,omitempty"`
}

type CreateInput struct {
	Name  string  `json:"name" validate:"required"`
	Email string  `json:"email" validate:"required,email"`
	Phone *string `json:"phone,omitempty"`
	Notes *string `json:"notes,omitempty"`
}

// UpdateInput patches only the fields that are set.
type UpdateInput struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone *string `json:"phone,omitempty"`
	Notes *string `json:"notes,omitempty"`
}

type CreateResult struct {
	PartnerID uuid.UUID `json:"partnerId"`
}

type Result struct {
	Success bool `json:"success"`
}

type EmailsInput struct {
	NewEmail string `json:"newEmail" validate:"required,email"`
}

type EmailsResult struct {
	Success         bool   `json:"success"`
	PartnersUpdated int64  `json:"partnersUpdated"`
	NewEmail        string `json:"newEmail"`
}

type Contact struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
}

// ContactLookup tells the agent whom to email about a third-party support.
type ContactLookup struct {
	Found             bool     `json:"found"`
	Reason            string   `json:"reason,omitempty"`
	Partner           *Contact `json:"partner,omitempty"`
	InventoryCode     string   `json:"inventoryCode,omitempty"`
	InventoryLocation string   `json:"inventoryLocation,omitempty"`
}

func toPartner(row models.Partner) Partner {
	return Partner{ID: row.ID, Name: row.Name, Email: row.Email, Phone: row.Phone, Notes: row.Notes}
}
