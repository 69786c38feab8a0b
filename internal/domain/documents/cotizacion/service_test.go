package cotizacion

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logiprofit/internal/core/apperror"
	"logiprofit/internal/core/folio"
	"logiprofit/internal/core/id"
	"logiprofit/internal/domain"
	"logiprofit/internal/domain/audit"
	"logiprofit/internal/domain/documents/flete"
	"logiprofit/internal/domain/policy"
	"logiprofit/internal/domain/simulation"
)

// --- test doubles ---

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memQuoteRepo struct {
	byID    map[id.ID]*Cotizacion
	byFolio map[string]*Cotizacion
}

func newMemQuoteRepo() *memQuoteRepo {
	return &memQuoteRepo{
		byID:    make(map[id.ID]*Cotizacion),
		byFolio: make(map[string]*Cotizacion),
	}
}

func (r *memQuoteRepo) Create(_ context.Context, c *Cotizacion) error {
	cp := *c
	r.byID[c.ID] = &cp
	r.byFolio[c.Number] = &cp
	return nil
}

func (r *memQuoteRepo) GetByID(_ context.Context, quoteID id.ID) (*Cotizacion, error) {
	c, ok := r.byID[quoteID]
	if !ok {
		return nil, apperror.NewNotFound("cotizacion", quoteID.String())
	}
	cp := *c
	return &cp, nil
}

func (r *memQuoteRepo) GetByFolio(_ context.Context, number string) (*Cotizacion, error) {
	c, ok := r.byFolio[number]
	if !ok {
		return nil, apperror.NewNotFound("cotizacion", number)
	}
	cp := *c
	return &cp, nil
}

func (r *memQuoteRepo) GetForUpdate(ctx context.Context, quoteID id.ID) (*Cotizacion, error) {
	return r.GetByID(ctx, quoteID)
}

func (r *memQuoteRepo) Update(_ context.Context, c *Cotizacion) error {
	if _, ok := r.byID[c.ID]; !ok {
		return apperror.NewNotFound("cotizacion", c.ID.String())
	}
	cp := *c
	r.byID[c.ID] = &cp
	r.byFolio[c.Number] = &cp
	return nil
}

func (r *memQuoteRepo) List(_ context.Context, _ Filter) (domain.ListResult[*Cotizacion], error) {
	items := make([]*Cotizacion, 0, len(r.byID))
	for _, c := range r.byID {
		cp := *c
		items = append(items, &cp)
	}
	return domain.ListResult[*Cotizacion]{Items: items, TotalCount: int64(len(items))}, nil
}

func (r *memQuoteRepo) CountByStatus(_ context.Context) (map[Status]int64, error) {
	out := make(map[Status]int64)
	for _, c := range r.byID {
		out[c.Status]++
	}
	return out, nil
}

type memFleteRepo struct {
	byID map[id.ID]*flete.Flete
}

func newMemFleteRepo() *memFleteRepo {
	return &memFleteRepo{byID: make(map[id.ID]*flete.Flete)}
}

func (r *memFleteRepo) Create(_ context.Context, f *flete.Flete) error {
	cp := *f
	r.byID[f.ID] = &cp
	return nil
}

func (r *memFleteRepo) GetByID(_ context.Context, fleteID id.ID) (*flete.Flete, error) {
	f, ok := r.byID[fleteID]
	if !ok {
		return nil, apperror.NewNotFound("flete", fleteID.String())
	}
	cp := *f
	return &cp, nil
}

func (r *memFleteRepo) GetByFolio(_ context.Context, number string) (*flete.Flete, error) {
	for _, f := range r.byID {
		if f.Number == number {
			cp := *f
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("flete", number)
}

func (r *memFleteRepo) GetBySourceQuote(_ context.Context, quoteID id.ID) (*flete.Flete, error) {
	for _, f := range r.byID {
		if f.SourceQuoteID != nil && *f.SourceQuoteID == quoteID {
			cp := *f
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("flete", quoteID.String())
}

func (r *memFleteRepo) Update(_ context.Context, f *flete.Flete) error {
	cp := *f
	r.byID[f.ID] = &cp
	return nil
}

func (r *memFleteRepo) List(_ context.Context, _ flete.Filter) (domain.ListResult[*flete.Flete], error) {
	items := make([]*flete.Flete, 0, len(r.byID))
	for _, f := range r.byID {
		cp := *f
		items = append(items, &cp)
	}
	return domain.ListResult[*flete.Flete]{Items: items, TotalCount: int64(len(items))}, nil
}

type allowAllClients struct{}

func (allowAllClients) ExistsLive(context.Context, id.ID) (bool, error) { return true, nil }

type recordingAuditor struct {
	actions []audit.Action
}

func (a *recordingAuditor) Record(_ context.Context, _ string, _ id.ID, action audit.Action, _ any) error {
	a.actions = append(a.actions, action)
	return nil
}

type fixture struct {
	svc     *Service
	quotes  *memQuoteRepo
	fletes  *memFleteRepo
	auditor *recordingAuditor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	quotes := newMemQuoteRepo()
	fletes := newMemFleteRepo()
	auditor := &recordingAuditor{}
	review, err := policy.NewReviewPolicy(policy.DefaultReviewExpr)
	require.NoError(t, err)

	svc := NewService(ServiceConfig{
		Repo:      quotes,
		FleteRepo: fletes,
		Numbers:   folio.NewMockGenerator(),
		Engine:    simulation.NewEngine(simulation.DefaultCosts()),
		Clients:   allowAllClients{},
		Review:    review,
		Auditor:   auditor,
		TxManager: passthroughTx{},
	})
	return &fixture{svc: svc, quotes: quotes, fletes: fletes, auditor: auditor}
}

func createQuote(t *testing.T, f *fixture) *Cotizacion {
	t.Helper()
	c, err := f.svc.Create(context.Background(), CreateInput{
		ClientID:    id.New(),
		Origin:      "CDMX",
		Destination: "Monterrey",
		Params: simulation.Input{
			LoadedKm:         dec("2500"),
			EmptyKm:          dec("2150"),
			QuotedPrice:      dec("218008.09"),
			RequiresPilotCar: true,
		},
	})
	require.NoError(t, err)
	return c
}

// --- tests ---

func TestService_Create(t *testing.T) {
	f := newFixture(t)
	c := createQuote(t, f)

	assert.Equal(t, "COT-00001", c.Number)
	assert.Equal(t, StatusDraft, c.Status)
	assert.True(t, c.TotalCost.Equal(dec("208712.75")))
	assert.Equal(t, simulation.RiskHigh, c.RiskLevel)
	// margin 4.26% trips the default review rule
	assert.True(t, c.RequiresReview)
	assert.Equal(t, []audit.Action{audit.ActionCreate}, f.auditor.actions)

	second := createQuote(t, f)
	assert.Equal(t, "COT-00002", second.Number)
}

func TestService_Create_UnknownClient(t *testing.T) {
	f := newFixture(t)
	f.svc.clients = deadClients{}

	_, err := f.svc.Create(context.Background(), CreateInput{
		ClientID:    id.New(),
		Origin:      "CDMX",
		Destination: "Monterrey",
		Params:      simulation.Input{LoadedKm: dec("100"), EmptyKm: dec("0"), QuotedPrice: dec("1000")},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

type deadClients struct{}

func (deadClients) ExistsLive(context.Context, id.ID) (bool, error) { return false, nil }

func TestService_Update_Recompute(t *testing.T) {
	f := newFixture(t)
	c := createQuote(t, f)

	updated, err := f.svc.Update(context.Background(), c.ID, UpdatePatch{
		LoadedKm: moneyPtr("3000"),
	})
	require.NoError(t, err)

	assert.True(t, updated.LoadedKm.Equal(dec("3000")))
	assert.True(t, updated.TotalKm.Equal(dec("5150")))
	assert.Equal(t, int64(13), updated.TravelDays)
	assert.False(t, updated.TotalCost.Equal(c.TotalCost), "derived fields must be overwritten")
	assert.True(t, updated.Params.LoadedKm.Equal(dec("3000")), "snapshot must track the merge")
}

func TestService_Update_VerbatimOnly(t *testing.T) {
	f := newFixture(t)
	c := createQuote(t, f)

	updated, err := f.svc.Update(context.Background(), c.ID, UpdatePatch{
		Origin:  strPtr("Puebla"),
		Comment: strPtr("urgent delivery"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Puebla", updated.Origin)
	assert.Equal(t, "urgent delivery", updated.Comment)
	// no recompute: every derived figure survives untouched
	assert.True(t, updated.TotalCost.Equal(c.TotalCost))
	assert.True(t, updated.FuelCost.Equal(c.FuelCost))
	assert.Equal(t, c.TravelDays, updated.TravelDays)
}

func TestService_Update_ConvertedQuoteIsImmutable(t *testing.T) {
	f := newFixture(t)
	c := createQuote(t, f)

	_, err := f.svc.Send(context.Background(), c.ID)
	require.NoError(t, err)
	_, err = f.svc.Approve(context.Background(), c.ID)
	require.NoError(t, err)
	_, err = f.svc.Convert(context.Background(), c.ID)
	require.NoError(t, err)

	_, err = f.svc.Update(context.Background(), c.ID, UpdatePatch{Origin: strPtr("Puebla")})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeQuoteConverted, appErr.Code)
}

func TestService_ChangeStatus_InvalidTransition(t *testing.T) {
	f := newFixture(t)
	c := createQuote(t, f)

	_, err := f.svc.Approve(context.Background(), c.ID)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidTransition, appErr.Code)
}

func TestService_Convert(t *testing.T) {
	f := newFixture(t)
	c := createQuote(t, f)

	_, err := f.svc.Send(context.Background(), c.ID)
	require.NoError(t, err)
	_, err = f.svc.Approve(context.Background(), c.ID)
	require.NoError(t, err)

	trip, err := f.svc.Convert(context.Background(), c.ID)
	require.NoError(t, err)

	assert.Equal(t, "FLT-00001", trip.Number)
	assert.Equal(t, flete.StatusPlanned, trip.Status)
	require.NotNil(t, trip.SourceQuoteID)
	assert.Equal(t, c.ID, *trip.SourceQuoteID)
	assert.True(t, trip.AgreedPrice.Equal(c.QuotedPrice))
	assert.True(t, trip.BudgetedCost.Equal(c.TotalCost))

	stored, err := f.svc.GetByID(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusConverted, stored.Status)
	require.NotNil(t, stored.ConvertedFleteID)
	assert.Equal(t, trip.ID, *stored.ConvertedFleteID)
}

func TestService_Convert_AtMostOnce(t *testing.T) {
	f := newFixture(t)
	c := createQuote(t, f)

	_, err := f.svc.Send(context.Background(), c.ID)
	require.NoError(t, err)
	_, err = f.svc.Approve(context.Background(), c.ID)
	require.NoError(t, err)
	_, err = f.svc.Convert(context.Background(), c.ID)
	require.NoError(t, err)

	_, err = f.svc.Convert(context.Background(), c.ID)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeQuoteConverted, appErr.Code)
}

func TestService_Convert_RequiresApproval(t *testing.T) {
	f := newFixture(t)
	c := createQuote(t, f)

	_, err := f.svc.Convert(context.Background(), c.ID)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidTransition, appErr.Code)
}

func TestService_SimulatePreview(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.Simulate(context.Background(), simulation.Input{
		LoadedKm:    dec("2500"),
		EmptyKm:     dec("2150"),
		QuotedPrice: dec("218008.09"),
	})
	require.NoError(t, err)
	assert.True(t, res.Subtotal.Equal(dec("80395")))

	// nothing persisted
	list, err := f.svc.List(context.Background(), DefaultFilter())
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}
