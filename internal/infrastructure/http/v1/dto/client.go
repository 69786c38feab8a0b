package dto

import (
	"logiprofit/internal/domain/catalogs/client"
)

// ClientResponse represents a freight customer in API responses.
type ClientResponse struct {
	CatalogResponse
	LegalName     *string `json:"legalName,omitempty"`
	RFC           *string `json:"rfc,omitempty"`
	Address       *string `json:"address,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Email         *string `json:"email,omitempty"`
	ContactPerson *string `json:"contactPerson,omitempty"`
	CreditDays    int     `json:"creditDays"`
	Comment       *string `json:"comment,omitempty"`
}

// FromClient creates ClientResponse from a domain client.
func FromClient(c *client.Client) ClientResponse {
	return ClientResponse{
		CatalogResponse: FromCatalog(c.Catalog),
		LegalName:       c.LegalName,
		RFC:             c.RFC,
		Address:         c.Address,
		Phone:           c.Phone,
		Email:           c.Email,
		ContactPerson:   c.ContactPerson,
		CreditDays:      c.CreditDays,
		Comment:         c.Comment,
	}
}

// CreateClientRequest for creating clients.
type CreateClientRequest struct {
	Code          string  `json:"code"`
	Name          string  `json:"name" binding:"required"`
	LegalName     *string `json:"legalName"`
	RFC           *string `json:"rfc"`
	Address       *string `json:"address"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	ContactPerson *string `json:"contactPerson"`
	CreditDays    int     `json:"creditDays"`
	Comment       *string `json:"comment"`
}

// ToEntity converts request to domain entity.
func (r *CreateClientRequest) ToEntity() *client.Client {
	c := client.NewClient(r.Code, r.Name)
	c.LegalName = r.LegalName
	c.RFC = r.RFC
	c.Address = r.Address
	c.Phone = r.Phone
	c.Email = r.Email
	c.ContactPerson = r.ContactPerson
	c.CreditDays = r.CreditDays
	c.Comment = r.Comment
	return c
}

// UpdateClientRequest for updating clients. Nil fields are left untouched.
type UpdateClientRequest struct {
	Code          *string `json:"code"`
	Name          *string `json:"name"`
	LegalName     *string `json:"legalName"`
	RFC           *string `json:"rfc"`
	Address       *string `json:"address"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	ContactPerson *string `json:"contactPerson"`
	CreditDays    *int    `json:"creditDays"`
	Comment       *string `json:"comment"`
	Version       int     `json:"version" binding:"required,min=1"`
}

// ApplyTo writes the present fields onto an existing client.
func (r *UpdateClientRequest) ApplyTo(c *client.Client) {
	if r.Code != nil {
		c.Code = *r.Code
	}
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.LegalName != nil {
		c.LegalName = r.LegalName
	}
	if r.RFC != nil {
		c.RFC = r.RFC
	}
	if r.Address != nil {
		c.Address = r.Address
	}
	if r.Phone != nil {
		c.Phone = r.Phone
	}
	if r.Email != nil {
		c.Email = r.Email
	}
	if r.ContactPerson != nil {
		c.ContactPerson = r.ContactPerson
	}
	if r.CreditDays != nil {
		c.CreditDays = *r.CreditDays
	}
	if r.Comment != nil {
		c.Comment = r.Comment
	}
	c.Version = r.Version
}
