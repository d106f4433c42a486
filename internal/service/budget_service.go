package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/tripplanner/internal/auth"
	"github.com/mmynk/tripplanner/internal/calculator"
	"github.com/mmynk/tripplanner/internal/events"
	"github.com/mmynk/tripplanner/internal/models"
	"github.com/mmynk/tripplanner/internal/storage"
	"github.com/mmynk/tripplanner/pkg/api"
)

const expensesTable = "gastos"

// ErrDerivedLine is returned when a client tries to edit a ledger line that
// is computed from the itinerary.
var ErrDerivedLine = errors.New("line is derived from the itinerary; edit the itinerary event instead")

// BudgetConfig holds the fixed figures of the budget view.
type BudgetConfig struct {
	// Ceiling is the personal budget the projected total is measured against.
	Ceiling decimal.Decimal

	Lodging calculator.LodgingEstimate

	// Classifier categorizes derived lines. Nil means the default rules.
	Classifier *calculator.Classifier
}

// BudgetService implements the Connect BudgetService.
type BudgetService struct {
	store    storage.Store
	notifier *events.Notifier
	cfg      BudgetConfig
}

// NewBudgetService creates a new BudgetService. notifier may be nil.
func NewBudgetService(store storage.Store, cfg BudgetConfig, notifier *events.Notifier) *BudgetService {
	if cfg.Classifier == nil {
		cfg.Classifier = calculator.DefaultClassifier()
	}
	return &BudgetService{
		store:    store,
		notifier: notifier,
		cfg:      cfg,
	}
}

// GetBudget builds the caller's ledger for one tab: manual expenses visible
// to the caller merged with lines derived from priced itinerary events.
func (s *BudgetService) GetBudget(ctx context.Context, req *connect.Request[api.GetBudgetRequest]) (*connect.Response[api.GetBudgetResponse], error) {
	session, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}

	kind, err := models.ParseExpenseKind(req.Msg.Kind)
	if err != nil {
		return nil, invalidArgument(err)
	}

	var (
		itinerary []*models.ItineraryEvent
		progress  []*models.Progress
		expenses  []*models.Expense
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		itinerary, err = s.store.ListItinerary(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		progress, err = s.store.ListProgress(gctx, models.ItineraryDomain, session.UserID)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.store.ListExpenses(gctx, session.UserID)
		return err
	})
	if err := g.Wait(); err != nil {
		slog.Error("GetBudget failed", "user_id", session.UserID, "error", err)
		return nil, storeError(err)
	}

	ids := make([]string, len(itinerary))
	for i, ev := range itinerary {
		ids[i] = ev.ID
	}
	completed := calculator.MergeProgress(ids, progress)

	derived := calculator.DeriveLines(itinerary, completed, s.cfg.Classifier)
	derived = calculator.WithLodgingEstimate(derived, s.cfg.Lodging)
	lines := calculator.MergeLedger(expenses, derived, session.UserID)

	summary := calculator.SummarizeBudget(lines, calculator.BudgetParams{
		Kind:    kind,
		Ceiling: s.cfg.Ceiling,
		People:  int(req.Msg.People),
	})

	slog.Info("GetBudget successful",
		"user_id", session.UserID,
		"kind", kind,
		"lines", len(summary.Lines),
		"total_projected", summary.TotalProjected,
	)

	return connect.NewResponse(toAPIBudget(summary)), nil
}

// CreateExpense records an expense owned by the caller.
func (s *BudgetService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	session, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}

	kind, err := models.ParseExpenseKind(req.Msg.Kind)
	if err != nil {
		return nil, invalidArgument(err)
	}
	expense := &models.Expense{
		Category:    models.ExpenseCategory(req.Msg.Category),
		Amount:      req.Msg.Amount,
		Description: req.Msg.Description,
		Date:        req.Msg.Date,
		Kind:        kind,
		UserID:      session.UserID,
	}
	if err := expense.Validate(); err != nil {
		return nil, invalidArgument(err)
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "user_id", session.UserID, "error", err)
		return nil, storeError(err)
	}
	s.notifier.Notify(ctx, expensesTable, events.OpCreate, expense.ID, session.UserID)

	slog.Info("Expense created", "expense_id", expense.ID, "user_id", session.UserID, "kind", kind)

	return connect.NewResponse(&api.CreateExpenseResponse{
		Expense: toAPIExpense(expense),
	}), nil
}

// UpdateExpense edits an expense. Owner or admin only; the owner never changes.
func (s *BudgetService) UpdateExpense(ctx context.Context, req *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error) {
	session, expense, err := s.loadForWrite(ctx, req.Msg.ID)
	if err != nil {
		return nil, err
	}

	kind, err := models.ParseExpenseKind(req.Msg.Kind)
	if err != nil {
		return nil, invalidArgument(err)
	}
	expense.Category = models.ExpenseCategory(req.Msg.Category)
	expense.Amount = req.Msg.Amount
	expense.Description = req.Msg.Description
	expense.Date = req.Msg.Date
	expense.Kind = kind
	if err := expense.Validate(); err != nil {
		return nil, invalidArgument(err)
	}

	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		slog.Error("UpdateExpense failed", "expense_id", expense.ID, "error", err)
		return nil, storeError(err)
	}
	s.notifier.Notify(ctx, expensesTable, events.OpUpdate, expense.ID, session.UserID)

	return connect.NewResponse(&api.UpdateExpenseResponse{
		Expense: toAPIExpense(expense),
	}), nil
}

// DeleteExpense removes an expense. Owner or admin only.
func (s *BudgetService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	session, expense, err := s.loadForWrite(ctx, req.Msg.ID)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteExpense(ctx, expense.ID); err != nil {
		slog.Error("DeleteExpense failed", "expense_id", expense.ID, "error", err)
		return nil, storeError(err)
	}
	s.notifier.Notify(ctx, expensesTable, events.OpDelete, expense.ID, session.UserID)

	slog.Info("Expense deleted", "expense_id", expense.ID, "user_id", session.UserID)
	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// loadForWrite resolves the session and the expense and checks that the
// session may change it.
func (s *BudgetService) loadForWrite(ctx context.Context, id string) (*auth.Session, *models.Expense, error) {
	session, err := requireSession(ctx)
	if err != nil {
		return nil, nil, err
	}
	if calculator.IsDerivedID(id) {
		return nil, nil, connect.NewError(connect.CodeFailedPrecondition, ErrDerivedLine)
	}

	expense, err := s.store.GetExpense(ctx, id)
	if err != nil {
		return nil, nil, storeError(err)
	}
	if !session.CanModify(expense.UserID) {
		slog.Warn("Expense write refused",
			"expense_id", id,
			"user_id", session.UserID,
			"owner_id", expense.UserID)
		return nil, nil, connect.NewError(connect.CodePermissionDenied, auth.ErrForbidden)
	}
	return session, expense, nil
}
