package model

import "time"

// User is an employee of a client company.  Users are looked up by ID only;
// there is no login, so no credential columns exist.
type User struct {
	ID        string    `json:"user_id"`    // users.user_id
	Name      string    `json:"name"`       // users.name
	Email     string    `json:"email"`      // users.email
	CompanyID *string   `json:"company_id"` // users.company_id (nullable)
	CreatedAt time.Time `json:"created_at"` // users.created_at
}
