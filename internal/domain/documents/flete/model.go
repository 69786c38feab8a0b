// Package flete provides the Flete document: an executed trip, usually born
// from an approved quote, accumulating actual expenses against the budget.
package flete

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"logiprofit/internal/core/apperror"
	"logiprofit/internal/core/entity"
	"logiprofit/internal/core/id"
	"logiprofit/internal/core/types"
)

// Status is the trip lifecycle state.
type Status string

const (
	StatusPlanned   Status = "PLANNED"
	StatusInTransit Status = "IN_TRANSIT"
	StatusDelivered Status = "DELIVERED"
	StatusClosed    Status = "CLOSED"
	StatusCancelled Status = "CANCELLED"
)

var allowedTransitions = map[Status][]Status{
	StatusPlanned:   {StatusInTransit, StatusCancelled},
	StatusInTransit: {StatusDelivered, StatusCancelled},
	StatusDelivered: {StatusClosed},
}

// Valid reports whether the status is a known lifecycle state.
func (s Status) Valid() bool {
	switch s {
	case StatusPlanned, StatusInTransit, StatusDelivered, StatusClosed, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the state machine allows s -> next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ExpenseCategory classifies a trip expense line.
type ExpenseCategory string

const (
	ExpenseFuel        ExpenseCategory = "fuel"
	ExpenseTolls       ExpenseCategory = "tolls"
	ExpensePerDiem     ExpenseCategory = "per_diem"
	ExpenseDriverPay   ExpenseCategory = "driver_pay"
	ExpensePermits     ExpenseCategory = "permits"
	ExpenseMaintenance ExpenseCategory = "maintenance"
	ExpensePilotCar    ExpenseCategory = "pilot_car"
	ExpenseOther       ExpenseCategory = "other"
)

// ExpenseLine is one actual expense recorded against the trip.
type ExpenseLine struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	Category    ExpenseCategory `db:"category" json:"category"`
	Description string          `db:"description" json:"description,omitempty"`
	Amount      types.Money     `db:"amount" json:"amount"`
	IncurredAt  time.Time       `db:"incurred_at" json:"incurredAt"`
}

// Flete represents one executed trip.
type Flete struct {
	entity.Document

	// SourceQuoteID links back to the converted quote, nil for ad-hoc trips
	SourceQuoteID *id.ID `db:"source_quote_id" json:"sourceQuoteId,omitempty"`

	ClientID id.ID `db:"client_id" json:"clientId"`

	Origin      string `db:"origin" json:"origin"`
	Destination string `db:"destination" json:"destination"`

	VehicleID *id.ID `db:"vehicle_id" json:"vehicleId,omitempty"`
	DriverID  *id.ID `db:"driver_id" json:"driverId,omitempty"`

	Status Status `db:"status" json:"status"`

	// AgreedPrice and BudgetedCost carry over from the quote
	AgreedPrice  types.Money `db:"agreed_price" json:"agreedPrice"`
	BudgetedCost types.Money `db:"budgeted_cost" json:"budgetedCost"`

	// Table part: actual expenses
	Expenses []ExpenseLine `db:"-" json:"expenses"`

	// Totals (calculated from lines)
	TotalExpenses       types.Money `db:"total_expenses" json:"totalExpenses"`
	ActualProfit        types.Money `db:"actual_profit" json:"actualProfit"`
	ActualMarginPercent types.Money `db:"actual_margin_percent" json:"actualMarginPercent"`
}

// NewFlete creates a planned trip.
func NewFlete(clientID id.ID, origin, destination string, agreedPrice, budgetedCost types.Money) *Flete {
	f := &Flete{
		Document:     entity.NewDocument(),
		ClientID:     clientID,
		Origin:       origin,
		Destination:  destination,
		Status:       StatusPlanned,
		AgreedPrice:  agreedPrice,
		BudgetedCost: budgetedCost,
		Expenses:     make([]ExpenseLine, 0),
	}
	f.recalculateTotals()
	return f
}

// AddExpense appends an expense line and recalculates totals.
func (f *Flete) AddExpense(category ExpenseCategory, description string, amount types.Money, incurredAt time.Time) error {
	if amount.IsNegative() {
		return apperror.NewValidation("expense amount must not be negative").
			WithDetail("field", "amount")
	}
	f.Expenses = append(f.Expenses, ExpenseLine{
		LineID:      id.New(),
		LineNo:      len(f.Expenses) + 1,
		Category:    category,
		Description: description,
		Amount:      amount,
		IncurredAt:  incurredAt,
	})
	f.recalculateTotals()
	return nil
}

// recalculateTotals updates trip totals from expense lines.
func (f *Flete) recalculateTotals() {
	total := decimal.Zero
	for _, line := range f.Expenses {
		total = total.Add(line.Amount)
	}
	f.TotalExpenses = total.Round(2)
	f.ActualProfit = f.AgreedPrice.Sub(total).Round(2)
	if f.AgreedPrice.IsPositive() {
		f.ActualMarginPercent = f.AgreedPrice.Sub(total).Div(f.AgreedPrice).Mul(decimal.NewFromInt(100)).Round(2)
	} else {
		f.ActualMarginPercent = decimal.Zero
	}
}

// ChangeStatus moves the trip to the next lifecycle state.
func (f *Flete) ChangeStatus(next Status) error {
	if !next.Valid() {
		return apperror.NewValidation("invalid status").
			WithDetail("value", string(next))
	}
	if !f.Status.CanTransitionTo(next) {
		return apperror.NewInvalidTransition(string(f.Status), string(next))
	}
	f.Status = next
	return nil
}

// Validate implements entity.Validatable.
func (f *Flete) Validate(ctx context.Context) error {
	if err := f.Document.Validate(ctx); err != nil {
		return err
	}
	if id.IsNil(f.ClientID) {
		return apperror.NewValidation("client is required").
			WithDetail("field", "clientId")
	}
	if f.Origin == "" {
		return apperror.NewValidation("origin is required").
			WithDetail("field", "origin")
	}
	if f.Destination == "" {
		return apperror.NewValidation("destination is required").
			WithDetail("field", "destination")
	}
	if !f.Status.Valid() {
		return apperror.NewValidation("invalid status").
			WithDetail("field", "status").
			WithDetail("value", string(f.Status))
	}
	if f.AgreedPrice.IsNegative() || f.BudgetedCost.IsNegative() {
		return apperror.NewValidation("amounts must not be negative")
	}
	for _, line := range f.Expenses {
		if line.Amount.IsNegative() {
			return apperror.NewValidation("expense amount must not be negative").
				WithDetail("lineNo", line.LineNo)
		}
	}
	return nil
}
