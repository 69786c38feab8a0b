// Package client provides the Client catalog: the freight customers quotes
// are issued to.
package client

import (
	"context"
	"regexp"

	"logiprofit/internal/core/apperror"
	"logiprofit/internal/core/entity"
)

// Pre-compiled regex patterns for validation
var (
	rfcRE   = regexp.MustCompile(`^[A-ZÑ&]{3,4}\d{6}[A-Z0-9]{3}$`)
	emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// Client represents a freight customer.
type Client struct {
	entity.Catalog

	// LegalName is the official registered name
	LegalName *string `db:"legal_name" json:"legalName,omitempty"`

	// RFC is the tax identification number, unique within tenant
	RFC *string `db:"rfc" json:"rfc,omitempty"`

	Address       *string `db:"address" json:"address,omitempty"`
	Phone         *string `db:"phone" json:"phone,omitempty"`
	Email         *string `db:"email" json:"email,omitempty"`
	ContactPerson *string `db:"contact_person" json:"contactPerson,omitempty"`

	// CreditDays is the agreed payment term, 0 means cash
	CreditDays int `db:"credit_days" json:"creditDays"`

	Comment *string `db:"comment" json:"comment,omitempty"`
}

// NewClient creates a new Client with required fields.
func NewClient(code, name string) *Client {
	return &Client{
		Catalog: entity.NewCatalog(code, name),
	}
}

// Validate implements entity.Validatable.
func (c *Client) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}
	if c.RFC != nil && *c.RFC != "" && !rfcRE.MatchString(*c.RFC) {
		return apperror.NewValidation("invalid RFC format").
			WithDetail("field", "rfc")
	}
	if c.Email != nil && *c.Email != "" && !emailRE.MatchString(*c.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}
	if c.CreditDays < 0 {
		return apperror.NewValidation("credit days must not be negative").
			WithDetail("field", "creditDays")
	}
	return nil
}
