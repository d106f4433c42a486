package service

import (
	"github.com/mmynk/tripplanner/internal/calculator"
	"github.com/mmynk/tripplanner/internal/models"
	"github.com/mmynk/tripplanner/pkg/api"
)

func toAPICompletion(c calculator.Completion) *api.Completion {
	return &api.Completion{
		Completed: int32(c.Completed),
		Total:     int32(c.Total),
		Percent:   c.Percent,
	}
}

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        string(u.Role),
	}
}

func toAPIEvent(ev *models.ItineraryEvent, completed bool) *api.Event {
	return &api.Event{
		ID:          ev.ID,
		Date:        ev.Date,
		Time:        ev.Time,
		Title:       ev.Title,
		Description: ev.Description,
		Location:    ev.Location,
		Price:       ev.Price,
		CreatedAt:   ev.CreatedAt,
		Completed:   completed,
	}
}

func toAPIPlace(p *models.Place, completed bool) *api.Place {
	return &api.Place{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Priority:    int32(p.Priority),
		CreatedAt:   p.CreatedAt,
		Completed:   completed,
	}
}

// toAPIPackingItem reports packed as the effective state for the caller,
// which differs from item.Packed under personal tracking.
func toAPIPackingItem(item *models.PackingItem, packed bool) *api.PackingItem {
	return &api.PackingItem{
		ID:        item.ID,
		Name:      item.Name,
		Category:  item.Category,
		Packed:    packed,
		CreatedAt: item.CreatedAt,
	}
}

func toAPIExpense(e *models.Expense) *api.Expense {
	return &api.Expense{
		ID:          e.ID,
		Category:    string(e.Category),
		Amount:      e.Amount,
		Description: e.Description,
		Date:        e.Date,
		Kind:        string(e.Kind),
		UserID:      e.UserID,
		CreatedAt:   e.CreatedAt,
	}
}

func toAPILedgerLine(l calculator.LedgerLine) *api.LedgerLine {
	return &api.LedgerLine{
		ID:          l.ID,
		ItemID:      l.ItemID,
		Description: l.Description,
		Category:    string(l.Category),
		Amount:      l.Amount,
		Date:        l.Date,
		Time:        l.Time,
		Kind:        string(l.Kind),
		UserID:      l.UserID,
		Derived:     l.Derived,
		Optional:    l.Optional,
		Estimated:   l.Estimated,
		Completed:   l.Completed,
	}
}

func toAPIBudget(s calculator.BudgetSummary) *api.GetBudgetResponse {
	resp := &api.GetBudgetResponse{
		Kind:            string(s.Kind),
		Lines:           make([]*api.LedgerLine, len(s.Lines)),
		TotalProjected:  s.TotalProjected,
		TotalObligatory: s.TotalObligatory,
		TotalReal:       s.TotalReal,
		Ceiling:         s.Ceiling,
		Available:       s.Available,
		PercentSpent:    s.PercentSpent,
		People:          int32(s.People),
		PerPerson:       s.PerPerson,
		ByCategory:      make([]*api.CategoryTotal, len(s.ByCategory)),
	}
	for i, line := range s.Lines {
		resp.Lines[i] = toAPILedgerLine(line)
	}
	for i, c := range s.ByCategory {
		resp.ByCategory[i] = &api.CategoryTotal{
			Category: string(c.Category),
			Amount:   c.Amount,
			Share:    c.Share,
		}
	}
	return resp
}
