package cotizacion

import (
	"context"
	"fmt"

	"logiprofit/internal/core/apperror"
	"logiprofit/internal/core/folio"
	"logiprofit/internal/core/id"
	"logiprofit/internal/core/tenant"
	"logiprofit/internal/core/tx"
	"logiprofit/internal/domain"
	"logiprofit/internal/domain/audit"
	"logiprofit/internal/domain/documents/flete"
	"logiprofit/internal/domain/policy"
	"logiprofit/internal/domain/simulation"
	"logiprofit/pkg/logger"
)

// ClientChecker verifies a client reference resolves to a live catalog entry.
type ClientChecker interface {
	ExistsLive(ctx context.Context, clientID id.ID) (bool, error)
}

// Service provides business logic for quotes: creation from a simulation,
// patch updates with recompute, lifecycle transitions and conversion to a
// trip.
type Service struct {
	repo      Repository
	fleteRepo flete.Repository
	numbers   folio.Generator
	engine    *simulation.Engine
	vehicles  simulation.VehicleLookup
	drivers   simulation.DriverLookup
	clients   ClientChecker
	review    *policy.ReviewPolicy
	auditor   audit.Recorder
	txManager tx.Manager // optional for Database-per-Tenant
}

// ServiceConfig wires the quote service dependencies.
type ServiceConfig struct {
	Repo      Repository
	FleteRepo flete.Repository
	Numbers   folio.Generator
	Engine    *simulation.Engine
	Vehicles  simulation.VehicleLookup
	Drivers   simulation.DriverLookup
	Clients   ClientChecker
	Review    *policy.ReviewPolicy // optional, nil disables review flagging
	Auditor   audit.Recorder       // optional, nil disables auditing
	TxManager tx.Manager           // optional for Database-per-Tenant
}

// NewService creates a new quote service.
func NewService(cfg ServiceConfig) *Service {
	auditor := cfg.Auditor
	if auditor == nil {
		auditor = audit.NopRecorder{}
	}
	return &Service{
		repo:      cfg.Repo,
		fleteRepo: cfg.FleteRepo,
		numbers:   cfg.Numbers,
		engine:    cfg.Engine,
		vehicles:  cfg.Vehicles,
		drivers:   cfg.Drivers,
		clients:   cfg.Clients,
		review:    cfg.Review,
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

// Simulate runs the cost pipeline without persisting anything. Used for the
// preview endpoint and internally on create and recompute.
func (s *Service) Simulate(ctx context.Context, in simulation.Input) (*simulation.Result, error) {
	return s.engine.Simulate(ctx, in, s.vehicles, s.drivers)
}

// CreateInput carries everything needed to issue a quote.
type CreateInput struct {
	ClientID         id.ID
	Origin           string
	Destination      string
	CargoDescription *string
	Comment          string
	Params           simulation.Input
}

// Create simulates, allocates a folio and persists a draft quote.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Cotizacion, error) {
	c := NewCotizacion(in.ClientID, in.Origin, in.Destination)
	c.CargoDescription = in.CargoDescription
	c.Comment = in.Comment
	audit.EnrichCreatedBy(ctx, &c.CreatedBy, &c.UpdatedBy)

	if err := c.Validate(ctx); err != nil {
		return nil, err
	}
	if s.clients != nil {
		alive, err := s.clients.ExistsLive(ctx, in.ClientID)
		if err != nil {
			return nil, fmt.Errorf("check client: %w", err)
		}
		if !alive {
			return nil, apperror.NewNotFound("client", in.ClientID.String())
		}
	}

	res, err := s.Simulate(ctx, in.Params)
	if err != nil {
		return nil, err
	}
	c.ApplySimulation(in.Params, res)

	if err := s.applyReview(c, res); err != nil {
		return nil, err
	}

	txm, err := s.getTxManager(ctx)
	if err != nil {
		return nil, apperror.NewInternal(err).WithDetail("missing", "tx_manager")
	}
	err = txm.RunInTransaction(ctx, func(ctx context.Context) error {
		number, err := s.numbers.NextFolio(ctx, folio.DefaultConfig("COT"))
		if err != nil {
			return fmt.Errorf("allocate folio: %w", err)
		}
		c.Number = number

		if err := s.repo.Create(ctx, c); err != nil {
			return fmt.Errorf("create quote: %w", err)
		}
		return s.auditor.Record(ctx, "cotizacion", c.ID, audit.ActionCreate, c)
	})
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "quote created", "folio", c.Number, "risk", string(c.RiskLevel))
	return c, nil
}

func (s *Service) applyReview(c *Cotizacion, res *simulation.Result) error {
	if s.review == nil {
		return nil
	}
	flagged, err := s.review.Evaluate(res, c.Params.RequiresPilotCar)
	if err != nil {
		return fmt.Errorf("review policy: %w", err)
	}
	c.RequiresReview = flagged
	return nil
}

// GetByID retrieves a quote by ID.
func (s *Service) GetByID(ctx context.Context, quoteID id.ID) (*Cotizacion, error) {
	c, err := s.repo.GetByID(ctx, quoteID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("cotizacion", quoteID.String())
		}
		return nil, err
	}
	return c, nil
}

// GetByFolio retrieves a quote by its folio.
func (s *Service) GetByFolio(ctx context.Context, number string) (*Cotizacion, error) {
	c, err := s.repo.GetByFolio(ctx, number)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("cotizacion", number)
		}
		return nil, err
	}
	return c, nil
}

// List retrieves quotes with filtering.
func (s *Service) List(ctx context.Context, filter Filter) (domain.ListResult[*Cotizacion], error) {
	return s.repo.List(ctx, filter)
}

// Update merges the patch into the stored quote. When the patch touches the
// recompute trigger set the merged parameters are re-simulated in full and
// the derived fields overwritten; otherwise only verbatim fields change.
func (s *Service) Update(ctx context.Context, quoteID id.ID, patch UpdatePatch) (*Cotizacion, error) {
	txm, err := s.getTxManager(ctx)
	if err != nil {
		return nil, apperror.NewInternal(err).WithDetail("missing", "tx_manager")
	}

	var updated *Cotizacion
	err = txm.RunInTransaction(ctx, func(ctx context.Context) error {
		c, err := s.repo.GetForUpdate(ctx, quoteID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("cotizacion", quoteID.String())
			}
			return err
		}
		if c.Status == StatusConverted {
			return apperror.NewQuoteConverted(c.Number)
		}
		if !c.IsEditable() {
			return apperror.NewBusinessRule("QUOTE_NOT_EDITABLE",
				fmt.Sprintf("quote %s cannot be edited in status %s", c.Number, c.Status))
		}

		merged := patch.MergeParams(c.Params)
		patch.ApplyDescriptive(c)

		if patch.RequiresRecompute() {
			res, err := s.Simulate(ctx, merged)
			if err != nil {
				return err
			}
			c.ApplySimulation(merged, res)
			if err := s.applyReview(c, res); err != nil {
				return err
			}
		} else {
			// keep the snapshot current for future recomputes
			c.Params = merged
		}

		if err := c.Validate(ctx); err != nil {
			return err
		}
		audit.EnrichUpdatedBy(ctx, &c.UpdatedBy)
		c.Touch()

		if err := s.repo.Update(ctx, c); err != nil {
			return fmt.Errorf("update quote: %w", err)
		}
		if err := s.auditor.Record(ctx, "cotizacion", c.ID, audit.ActionUpdate, patch); err != nil {
			return err
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ChangeStatus applies one lifecycle transition.
func (s *Service) ChangeStatus(ctx context.Context, quoteID id.ID, next Status) (*Cotizacion, error) {
	txm, err := s.getTxManager(ctx)
	if err != nil {
		return nil, apperror.NewInternal(err).WithDetail("missing", "tx_manager")
	}

	var updated *Cotizacion
	err = txm.RunInTransaction(ctx, func(ctx context.Context) error {
		c, err := s.repo.GetForUpdate(ctx, quoteID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("cotizacion", quoteID.String())
			}
			return err
		}
		from := c.Status
		if err := c.ChangeStatus(next); err != nil {
			return err
		}
		audit.EnrichUpdatedBy(ctx, &c.UpdatedBy)
		c.Touch()

		if err := s.repo.Update(ctx, c); err != nil {
			return fmt.Errorf("change quote status: %w", err)
		}
		if err := s.auditor.Record(ctx, "cotizacion", c.ID, audit.ActionStatusChange,
			map[string]string{"from": string(from), "to": string(next)}); err != nil {
			return err
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "quote status changed", "folio", updated.Number, "status", string(next))
	return updated, nil
}

// Send, Approve, Reject, Cancel are the lifecycle shorthands the API exposes.

func (s *Service) Send(ctx context.Context, quoteID id.ID) (*Cotizacion, error) {
	return s.ChangeStatus(ctx, quoteID, StatusSent)
}

func (s *Service) Approve(ctx context.Context, quoteID id.ID) (*Cotizacion, error) {
	return s.ChangeStatus(ctx, quoteID, StatusApproved)
}

func (s *Service) Reject(ctx context.Context, quoteID id.ID) (*Cotizacion, error) {
	return s.ChangeStatus(ctx, quoteID, StatusRejected)
}

func (s *Service) Cancel(ctx context.Context, quoteID id.ID) (*Cotizacion, error) {
	return s.ChangeStatus(ctx, quoteID, StatusCancelled)
}

// Convert turns an approved quote into a planned trip, at most once. The
// check and the create run in one transaction over a row lock, so two
// concurrent conversions cannot both succeed.
func (s *Service) Convert(ctx context.Context, quoteID id.ID) (*flete.Flete, error) {
	txm, err := s.getTxManager(ctx)
	if err != nil {
		return nil, apperror.NewInternal(err).WithDetail("missing", "tx_manager")
	}

	var trip *flete.Flete
	err = txm.RunInTransaction(ctx, func(ctx context.Context) error {
		c, err := s.repo.GetForUpdate(ctx, quoteID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("cotizacion", quoteID.String())
			}
			return err
		}

		f := flete.NewFlete(c.ClientID, c.Origin, c.Destination, c.QuotedPrice, c.TotalCost)
		f.SourceQuoteID = &c.ID
		f.VehicleID = c.VehicleID
		f.DriverID = c.DriverID
		f.Comment = c.Comment
		audit.EnrichCreatedBy(ctx, &f.CreatedBy, &f.UpdatedBy)

		if err := c.MarkConverted(f.ID); err != nil {
			return err
		}

		number, err := s.numbers.NextFolio(ctx, folio.DefaultConfig("FLT"))
		if err != nil {
			return fmt.Errorf("allocate trip folio: %w", err)
		}
		f.Number = number

		if err := s.fleteRepo.Create(ctx, f); err != nil {
			return fmt.Errorf("create trip: %w", err)
		}
		audit.EnrichUpdatedBy(ctx, &c.UpdatedBy)
		c.Touch()
		if err := s.repo.Update(ctx, c); err != nil {
			return fmt.Errorf("mark quote converted: %w", err)
		}
		if err := s.auditor.Record(ctx, "cotizacion", c.ID, audit.ActionConvert,
			map[string]string{"fleteId": f.ID.String(), "fleteFolio": f.Number}); err != nil {
			return err
		}
		trip = f
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "quote converted", "quote_id", quoteID.String(), "trip_folio", trip.Number)
	return trip, nil
}

// CountByStatus aggregates live quotes per lifecycle state.
func (s *Service) CountByStatus(ctx context.Context) (map[Status]int64, error) {
	return s.repo.CountByStatus(ctx)
}
