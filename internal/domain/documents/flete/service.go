package flete

import (
	"context"
	"fmt"
	"time"

	"logiprofit/internal/core/apperror"
	"logiprofit/internal/core/folio"
	"logiprofit/internal/core/id"
	"logiprofit/internal/core/tenant"
	"logiprofit/internal/core/tx"
	"logiprofit/internal/core/types"
	"logiprofit/internal/domain"
	"logiprofit/internal/domain/audit"
	"logiprofit/pkg/logger"
)

// Service provides business logic for trips: ad-hoc creation, expense
// capture and lifecycle transitions. Conversion from a quote lives on the
// quote side.
type Service struct {
	repo      Repository
	numbers   folio.Generator
	auditor   audit.Recorder
	txManager tx.Manager // optional for Database-per-Tenant
}

// ServiceConfig wires the trip service dependencies.
type ServiceConfig struct {
	Repo      Repository
	Numbers   folio.Generator
	Auditor   audit.Recorder // optional
	TxManager tx.Manager     // optional for Database-per-Tenant
}

// NewService creates a new trip service.
func NewService(cfg ServiceConfig) *Service {
	auditor := cfg.Auditor
	if auditor == nil {
		auditor = audit.NopRecorder{}
	}
	return &Service{
		repo:      cfg.Repo,
		numbers:   cfg.Numbers,
		auditor:   auditor,
		txManager: cfg.TxManager,
	}
}

func (s *Service) getTxManager(ctx context.Context) (tx.Manager, error) {
	if s.txManager != nil {
		return s.txManager, nil
	}
	return tenant.GetTxManager(ctx)
}

// CreateInput carries everything needed to plan an ad-hoc trip.
type CreateInput struct {
	ClientID     id.ID
	Origin       string
	Destination  string
	VehicleID    *id.ID
	DriverID     *id.ID
	AgreedPrice  types.Money
	BudgetedCost types.Money
	Comment      string
}

// Create plans an ad-hoc trip, without a source quote.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Flete, error) {
	f := NewFlete(in.ClientID, in.Origin, in.Destination, in.AgreedPrice, in.BudgetedCost)
	f.VehicleID = in.VehicleID
	f.DriverID = in.DriverID
	f.Comment = in.Comment
	audit.EnrichCreatedBy(ctx, &f.CreatedBy, &f.UpdatedBy)

	if err := f.Validate(ctx); err != nil {
		return nil, err
	}

	txm, err := s.getTxManager(ctx)
	if err != nil {
		return nil, apperror.NewInternal(err).WithDetail("missing", "tx_manager")
	}
	err = txm.RunInTransaction(ctx, func(ctx context.Context) error {
		number, err := s.numbers.NextFolio(ctx, folio.DefaultConfig("FLT"))
		if err != nil {
			return fmt.Errorf("allocate trip folio: %w", err)
		}
		f.Number = number

		if err := s.repo.Create(ctx, f); err != nil {
			return fmt.Errorf("create trip: %w", err)
		}
		return s.auditor.Record(ctx, "flete", f.ID, audit.ActionCreate, f)
	})
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "trip created", "folio", f.Number)
	return f, nil
}

// GetByID retrieves a trip by ID.
func (s *Service) GetByID(ctx context.Context, fleteID id.ID) (*Flete, error) {
	f, err := s.repo.GetByID(ctx, fleteID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("flete", fleteID.String())
		}
		return nil, err
	}
	return f, nil
}

// GetByFolio retrieves a trip by its folio.
func (s *Service) GetByFolio(ctx context.Context, number string) (*Flete, error) {
	f, err := s.repo.GetByFolio(ctx, number)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("flete", number)
		}
		return nil, err
	}
	return f, nil
}

// List retrieves trips with filtering.
func (s *Service) List(ctx context.Context, filter Filter) (domain.ListResult[*Flete], error) {
	return s.repo.List(ctx, filter)
}

// ExpenseInput is one actual expense to record against a trip.
type ExpenseInput struct {
	Category    ExpenseCategory
	Description string
	Amount      types.Money
	IncurredAt  *time.Time // defaults to now
}

// AddExpense records an actual expense and refreshes the trip totals.
// Closed and cancelled trips no longer accept expenses.
func (s *Service) AddExpense(ctx context.Context, fleteID id.ID, in ExpenseInput) (*Flete, error) {
	txm, err := s.getTxManager(ctx)
	if err != nil {
		return nil, apperror.NewInternal(err).WithDetail("missing", "tx_manager")
	}

	var updated *Flete
	err = txm.RunInTransaction(ctx, func(ctx context.Context) error {
		f, err := s.repo.GetByID(ctx, fleteID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("flete", fleteID.String())
			}
			return err
		}
		if f.Status == StatusClosed || f.Status == StatusCancelled {
			return apperror.NewBusinessRule("TRIP_NOT_OPEN",
				fmt.Sprintf("trip %s does not accept expenses in status %s", f.Number, f.Status))
		}

		incurredAt := time.Now().UTC()
		if in.IncurredAt != nil {
			incurredAt = *in.IncurredAt
		}
		if err := f.AddExpense(in.Category, in.Description, in.Amount, incurredAt); err != nil {
			return err
		}
		audit.EnrichUpdatedBy(ctx, &f.UpdatedBy)
		f.Touch()

		if err := s.repo.Update(ctx, f); err != nil {
			return fmt.Errorf("record expense: %w", err)
		}
		if err := s.auditor.Record(ctx, "flete", f.ID, audit.ActionUpdate, in); err != nil {
			return err
		}
		updated = f
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ChangeStatus applies one lifecycle transition.
func (s *Service) ChangeStatus(ctx context.Context, fleteID id.ID, next Status) (*Flete, error) {
	txm, err := s.getTxManager(ctx)
	if err != nil {
		return nil, apperror.NewInternal(err).WithDetail("missing", "tx_manager")
	}

	var updated *Flete
	err = txm.RunInTransaction(ctx, func(ctx context.Context) error {
		f, err := s.repo.GetByID(ctx, fleteID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("flete", fleteID.String())
			}
			return err
		}
		from := f.Status
		if err := f.ChangeStatus(next); err != nil {
			return err
		}
		audit.EnrichUpdatedBy(ctx, &f.UpdatedBy)
		f.Touch()

		if err := s.repo.Update(ctx, f); err != nil {
			return fmt.Errorf("change trip status: %w", err)
		}
		if err := s.auditor.Record(ctx, "flete", f.ID, audit.ActionStatusChange,
			map[string]string{"from": string(from), "to": string(next)}); err != nil {
			return err
		}
		updated = f
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
