package model

import "time"

// Company is a client organisation whose members book facilities.
// It corresponds to a row in the `companies` table.
type Company struct {
	ID           string    `json:"company_id"`    // companies.company_id
	Name         string    `json:"name"`          // companies.name
	Address      *string   `json:"address"`       // companies.address (nullable)
	ContactEmail *string   `json:"contact_email"` // companies.contact_email (nullable)
	CreatedAt    time.Time `json:"created_at"`    // companies.created_at
	UpdatedAt    time.Time `json:"updated_at"`    // companies.updated_at
}
