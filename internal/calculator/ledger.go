package calculator

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripplanner/internal/models"
)

const (
	// OptionalMarker flags an itinerary event as optional spending.
	OptionalMarker = "(opcional)"

	// DerivedIDPrefix prefixes ledger line ids projected from itinerary events.
	DerivedIDPrefix = "itinerario:"

	// EstimateID is the id of the synthetic lodging line.
	EstimateID = "estimado:alojamiento"
)

// LedgerLine is one row of the budget: a manual expense, a priced itinerary
// event or the synthetic lodging estimate.
type LedgerLine struct {
	ID string

	// ItemID is the backing itinerary event of a derived line.
	ItemID string

	Description string
	Category    models.ExpenseCategory
	Amount      decimal.Decimal
	Date        string
	Time        string
	Kind        models.ExpenseKind

	// UserID is the owner of a manual expense.
	UserID string

	// Derived lines are computed from the itinerary and are read-only.
	Derived bool

	// Optional lines carry OptionalMarker in title or description.
	Optional bool

	// Estimated marks the synthetic lodging backfill.
	Estimated bool

	// Completed is the current user's progress flag of the backing event.
	Completed bool
}

// LodgingEstimate configures the synthetic lodging line. A zero amount
// disables it.
type LodgingEstimate struct {
	Amount      decimal.Decimal
	Date        string
	Description string
}

// IsOptional reports whether title or description carry OptionalMarker.
func IsOptional(title, description string) bool {
	return strings.Contains(strings.ToLower(title+" "+description), OptionalMarker)
}

// IsDerivedID reports whether id names a line that was not entered by hand.
func IsDerivedID(id string) bool {
	return strings.HasPrefix(id, DerivedIDPrefix) || id == EstimateID
}

// DeriveLines projects every itinerary event with a positive price into a
// personal ledger line. completed is the current user's progress state.
func DeriveLines(events []*models.ItineraryEvent, completed map[string]bool, classifier *Classifier) []LedgerLine {
	var lines []LedgerLine
	for _, ev := range events {
		if !ev.Priced() {
			continue
		}
		lines = append(lines, LedgerLine{
			ID:          DerivedIDPrefix + ev.ID,
			ItemID:      ev.ID,
			Description: ev.Title,
			Category:    classifier.Classify(ev.Title, ev.Description),
			Amount:      ev.Price,
			Date:        ev.Date,
			Time:        ev.Time,
			Kind:        models.KindPersonal,
			Derived:     true,
			Optional:    IsOptional(ev.Title, ev.Description),
			Completed:   completed[ev.ID],
		})
	}
	return lines
}

// WithLodgingEstimate appends the synthetic lodging line unless a derived
// line already falls into lodging with a positive amount.
func WithLodgingEstimate(derived []LedgerLine, est LodgingEstimate) []LedgerLine {
	if !est.Amount.IsPositive() {
		return derived
	}
	for _, line := range derived {
		if line.Derived && line.Category == models.CategoryLodging && line.Amount.IsPositive() {
			return derived
		}
	}

	description := est.Description
	if description == "" {
		description = "Alojamiento (estimado)"
	}
	return append(derived, LedgerLine{
		ID:          EstimateID,
		Description: description,
		Category:    models.CategoryLodging,
		Amount:      est.Amount,
		Date:        est.Date,
		Kind:        models.KindPersonal,
		Derived:     true,
		Estimated:   true,
	})
}

// ExpenseLine converts a manual expense into a ledger line.
func ExpenseLine(e *models.Expense) LedgerLine {
	kind := e.Kind
	if kind == "" {
		kind = models.KindPersonal
	}
	return LedgerLine{
		ID:          e.ID,
		Description: e.Description,
		Category:    e.Category,
		Amount:      e.Amount,
		Date:        e.Date,
		Kind:        kind,
		UserID:      e.UserID,
	}
}

// MergeLedger combines the manual expenses visible to userID with derived
// lines and sorts them by (date, time) ascending. A missing time sorts as
// midnight; ties keep manual expenses first.
func MergeLedger(expenses []*models.Expense, derived []LedgerLine, userID string) []LedgerLine {
	lines := make([]LedgerLine, 0, len(expenses)+len(derived))
	for _, e := range expenses {
		if !e.VisibleTo(userID) {
			continue
		}
		lines = append(lines, ExpenseLine(e))
	}
	lines = append(lines, derived...)

	sort.SliceStable(lines, func(i, j int) bool {
		return lineBefore(lines[i], lines[j])
	})
	return lines
}

func lineBefore(a, b LedgerLine) bool {
	ta, errA := models.Moment(a.Date, a.Time)
	tb, errB := models.Moment(b.Date, b.Time)
	switch {
	case errA == nil && errB == nil:
		return ta.Before(tb)
	case errA != nil && errB != nil:
		return a.Date+a.Time < b.Date+b.Time
	default:
		// unparseable dates go last
		return errA == nil
	}
}

// CategoryTotal is one bucket of the per-category breakdown.
type CategoryTotal struct {
	Category models.ExpenseCategory
	Amount   decimal.Decimal

	// Share is Amount as a percentage of the projected total.
	Share float64
}

// BudgetParams selects the tab and the figures it is measured against.
type BudgetParams struct {
	Kind    models.ExpenseKind
	Ceiling decimal.Decimal

	// People is the head count for the group split, clamped to at least one.
	People int
}

// BudgetSummary is the aggregate view of one tab.
type BudgetSummary struct {
	Kind  models.ExpenseKind
	Lines []LedgerLine

	// TotalProjected sums every line regardless of completion.
	TotalProjected decimal.Decimal

	// TotalObligatory leaves out optional lines and the lodging estimate.
	TotalObligatory decimal.Decimal

	// TotalReal is money already committed: manual expenses plus derived
	// lines whose event the user completed. Personal tab only.
	TotalReal decimal.Decimal

	Ceiling decimal.Decimal

	// Available is Ceiling minus TotalProjected and may be negative.
	Available decimal.Decimal

	PercentSpent float64

	People int

	// PerPerson is TotalProjected split across People. Group tab only.
	PerPerson decimal.Decimal

	ByCategory []CategoryTotal
}

// SummarizeBudget aggregates the lines of params.Kind.
func SummarizeBudget(lines []LedgerLine, params BudgetParams) BudgetSummary {
	kind := params.Kind
	if kind == "" {
		kind = models.KindPersonal
	}

	summary := BudgetSummary{
		Kind:    kind,
		Lines:   []LedgerLine{},
		Ceiling: params.Ceiling,
		People:  ClampPeople(params.People),
	}

	byCategory := make(map[models.ExpenseCategory]decimal.Decimal, len(models.ExpenseCategories))
	for _, line := range lines {
		if line.Kind != kind {
			continue
		}
		summary.Lines = append(summary.Lines, line)
		summary.TotalProjected = summary.TotalProjected.Add(line.Amount)
		if !line.Optional && !line.Estimated {
			summary.TotalObligatory = summary.TotalObligatory.Add(line.Amount)
		}
		if kind == models.KindPersonal && countsAsReal(line) {
			summary.TotalReal = summary.TotalReal.Add(line.Amount)
		}
		byCategory[line.Category] = byCategory[line.Category].Add(line.Amount)
	}

	summary.Available = params.Ceiling.Sub(summary.TotalProjected)
	summary.PercentSpent = Percent(summary.TotalProjected, params.Ceiling)
	if kind == models.KindGroup {
		summary.PerPerson = PerPersonShare(summary.TotalProjected, summary.People)
	}

	for _, category := range models.ExpenseCategories {
		amount := byCategory[category]
		summary.ByCategory = append(summary.ByCategory, CategoryTotal{
			Category: category,
			Amount:   amount,
			Share:    Percent(amount, summary.TotalProjected),
		})
	}
	return summary
}

func countsAsReal(line LedgerLine) bool {
	if !line.Derived {
		return true
	}
	return line.Completed && !line.Estimated
}
