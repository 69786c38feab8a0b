package dto

import (
	"time"

	"logiprofit/internal/core/apperror"
	"logiprofit/internal/core/id"
	"logiprofit/internal/core/types"
	"logiprofit/internal/domain/documents/flete"
)

// CreateFleteRequest for planning an ad-hoc trip.
type CreateFleteRequest struct {
	ClientID     string      `json:"clientId" binding:"required,uuid"`
	Origin       string      `json:"origin" binding:"required"`
	Destination  string      `json:"destination" binding:"required"`
	VehicleID    *string     `json:"vehicleId"`
	DriverID     *string     `json:"driverId"`
	AgreedPrice  types.Money `json:"agreedPrice"`
	BudgetedCost types.Money `json:"budgetedCost"`
	Comment      string      `json:"comment"`
}

// ToCreateInput converts to the domain create input.
func (r *CreateFleteRequest) ToCreateInput() (flete.CreateInput, error) {
	clientID, err := id.Parse(r.ClientID)
	if err != nil {
		return flete.CreateInput{}, apperror.NewValidation("invalid clientId format")
	}
	in := flete.CreateInput{
		ClientID:     clientID,
		Origin:       r.Origin,
		Destination:  r.Destination,
		AgreedPrice:  r.AgreedPrice,
		BudgetedCost: r.BudgetedCost,
		Comment:      r.Comment,
	}
	if r.VehicleID != nil {
		vid, err := id.Parse(*r.VehicleID)
		if err != nil {
			return flete.CreateInput{}, apperror.NewValidation("invalid vehicleId format")
		}
		in.VehicleID = &vid
	}
	if r.DriverID != nil {
		did, err := id.Parse(*r.DriverID)
		if err != nil {
			return flete.CreateInput{}, apperror.NewValidation("invalid driverId format")
		}
		in.DriverID = &did
	}
	return in, nil
}

// AddExpenseRequest records one actual expense against a trip.
type AddExpenseRequest struct {
	Category    string      `json:"category" binding:"required"`
	Description string      `json:"description"`
	Amount      types.Money `json:"amount" binding:"required"`
	IncurredAt  *time.Time  `json:"incurredAt"`
}

// ToExpenseInput converts to the domain expense input.
func (r *AddExpenseRequest) ToExpenseInput() flete.ExpenseInput {
	return flete.ExpenseInput{
		Category:    flete.ExpenseCategory(r.Category),
		Description: r.Description,
		Amount:      r.Amount,
		IncurredAt:  r.IncurredAt,
	}
}

// ExpenseLineResponse is one recorded expense.
type ExpenseLineResponse struct {
	LineID      string      `json:"lineId"`
	LineNo      int         `json:"lineNo"`
	Category    string      `json:"category"`
	Description string      `json:"description,omitempty"`
	Amount      types.Money `json:"amount"`
	IncurredAt  time.Time   `json:"incurredAt"`
}

// FleteResponse represents a trip in API responses.
type FleteResponse struct {
	ID           string    `json:"id"`
	Folio        string    `json:"folio"`
	Date         time.Time `json:"date"`
	Status       string    `json:"status"`
	DeletionMark bool      `json:"deletionMark"`
	Version      int       `json:"version"`

	SourceQuoteID *string `json:"sourceQuoteId,omitempty"`

	ClientID    string `json:"clientId"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Comment     string `json:"comment,omitempty"`

	VehicleID *string `json:"vehicleId,omitempty"`
	DriverID  *string `json:"driverId,omitempty"`

	AgreedPrice  types.Money `json:"agreedPrice"`
	BudgetedCost types.Money `json:"budgetedCost"`

	Expenses []ExpenseLineResponse `json:"expenses"`

	TotalExpenses       types.Money `json:"totalExpenses"`
	ActualProfit        types.Money `json:"actualProfit"`
	ActualMarginPercent types.Money `json:"actualMarginPercent"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	CreatedBy string    `json:"createdBy,omitempty"`
	UpdatedBy string    `json:"updatedBy,omitempty"`
}

// FromFlete creates FleteResponse from a domain trip.
func FromFlete(f *flete.Flete) *FleteResponse {
	expenses := make([]ExpenseLineResponse, len(f.Expenses))
	for i, line := range f.Expenses {
		expenses[i] = ExpenseLineResponse{
			LineID:      line.LineID.String(),
			LineNo:      line.LineNo,
			Category:    string(line.Category),
			Description: line.Description,
			Amount:      line.Amount,
			IncurredAt:  line.IncurredAt,
		}
	}

	return &FleteResponse{
		ID:           f.ID.String(),
		Folio:        f.Number,
		Date:         f.Date,
		Status:       string(f.Status),
		DeletionMark: f.DeletionMark,
		Version:      f.Version,

		SourceQuoteID: idString(f.SourceQuoteID),

		ClientID:    f.ClientID.String(),
		Origin:      f.Origin,
		Destination: f.Destination,
		Comment:     f.Comment,

		VehicleID: idString(f.VehicleID),
		DriverID:  idString(f.DriverID),

		AgreedPrice:  f.AgreedPrice,
		BudgetedCost: f.BudgetedCost,

		Expenses: expenses,

		TotalExpenses:       f.TotalExpenses,
		ActualProfit:        f.ActualProfit,
		ActualMarginPercent: f.ActualMarginPercent,

		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
		CreatedBy: f.CreatedBy,
		UpdatedBy: f.UpdatedBy,
	}
}
