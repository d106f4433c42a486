package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/tripplanner/internal/calculator"
	"github.com/mmynk/tripplanner/internal/models"
	"github.com/mmynk/tripplanner/pkg/api"
)

func TestGetBudgetEndToEnd(t *testing.T) {
	env := setupTestServer(t, envOptions{lodging: decimal.NewFromInt(1200000)})
	ctx := context.Background()
	_, adminToken := env.user(t, testAdminEmail, models.RoleAdmin)
	_, anaToken := env.user(t, "ana@example.com", models.RoleUser)

	var ids []string
	for _, req := range []*api.CreateEventRequest{
		{Date: "2026-03-30", Title: "Llegada"},
		{Date: "2026-03-31", Time: "09:00", Title: "Tour islas", Price: decimal.NewFromInt(200000)},
		{Date: "2026-04-01", Title: "Regreso"},
	} {
		resp, err := env.itinerary.CreateEvent(ctx, as(adminToken, req))
		if err != nil {
			t.Fatalf("CreateEvent failed: %v", err)
		}
		ids = append(ids, resp.Msg.Event.ID)
	}
	if _, err := env.itinerary.ToggleEvent(ctx, as(anaToken, &api.ToggleEventRequest{ID: ids[1]})); err != nil {
		t.Fatalf("ToggleEvent failed: %v", err)
	}

	resp, err := env.budget.GetBudget(ctx, as(anaToken, &api.GetBudgetRequest{}))
	if err != nil {
		t.Fatalf("GetBudget failed: %v", err)
	}
	b := resp.Msg

	if b.Kind != "personal" {
		t.Errorf("kind = %s, want personal", b.Kind)
	}
	if len(b.Lines) != 2 {
		t.Fatalf("expected derived line plus lodging estimate, got %d lines", len(b.Lines))
	}
	if b.Lines[0].ID != calculator.EstimateID || !b.Lines[0].Estimated {
		t.Errorf("first line should be the lodging estimate, got %+v", b.Lines[0])
	}
	tour := b.Lines[1]
	if tour.ItemID != ids[1] || !tour.Derived || !tour.Completed || tour.Category != "actividades" {
		t.Errorf("unexpected derived line %+v", tour)
	}

	checks := []struct {
		name string
		got  decimal.Decimal
		want int64
	}{
		{"totalObligatory", b.TotalObligatory, 200000},
		{"totalReal", b.TotalReal, 200000},
		{"totalProjected", b.TotalProjected, 1400000},
		{"available", b.Available, 1600000},
	}
	for _, c := range checks {
		if !c.got.Equal(decimal.NewFromInt(c.want)) {
			t.Errorf("%s = %s, want %d", c.name, c.got, c.want)
		}
	}

	t.Run("other user has not completed the tour", func(t *testing.T) {
		resp, err := env.budget.GetBudget(ctx, as(adminToken, &api.GetBudgetRequest{Kind: "personal"}))
		if err != nil {
			t.Fatalf("GetBudget failed: %v", err)
		}
		if !resp.Msg.TotalReal.IsZero() {
			t.Errorf("admin totalReal = %s, want 0", resp.Msg.TotalReal)
		}
	})
}

func TestGetBudgetGroupTab(t *testing.T) {
	env := setupTestServer(t, envOptions{})
	ctx := context.Background()
	_, anaToken := env.user(t, "ana@example.com", models.RoleUser)

	for _, req := range []*api.CreateExpenseRequest{
		{Category: "comida", Amount: decimal.NewFromInt(90000), Description: "Mercado", Date: "2026-03-30", Kind: "grupal"},
		{Category: "transporte", Amount: decimal.NewFromInt(60000), Description: "Taxi", Date: "2026-03-31", Kind: "grupal"},
		{Category: "compras", Amount: decimal.NewFromInt(40000), Description: "Souvenirs", Date: "2026-03-31"},
	} {
		if _, err := env.budget.CreateExpense(ctx, as(anaToken, req)); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
	}

	tests := []struct {
		people     int32
		perPerson  int64
		wantPeople int32
	}{
		{people: 3, perPerson: 50000, wantPeople: 3},
		{people: 0, perPerson: 150000, wantPeople: 1},
		{people: -2, perPerson: 150000, wantPeople: 1},
	}
	for _, tt := range tests {
		resp, err := env.budget.GetBudget(ctx, as(anaToken, &api.GetBudgetRequest{Kind: "grupal", People: tt.people}))
		if err != nil {
			t.Fatalf("GetBudget failed: %v", err)
		}
		b := resp.Msg
		if len(b.Lines) != 2 || !b.TotalProjected.Equal(decimal.NewFromInt(150000)) {
			t.Errorf("unexpected group ledger: %d lines, total %s", len(b.Lines), b.TotalProjected)
		}
		if b.People != tt.wantPeople || !b.PerPerson.Equal(decimal.NewFromInt(tt.perPerson)) {
			t.Errorf("people %d: got %d people, %s each", tt.people, b.People, b.PerPerson)
		}
		if !b.TotalReal.IsZero() {
			t.Errorf("group tab has no real total, got %s", b.TotalReal)
		}
	}

	_, err := env.budget.GetBudget(ctx, as(anaToken, &api.GetBudgetRequest{Kind: "familiar"}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestExpenseOwnership(t *testing.T) {
	env := setupTestServer(t, envOptions{})
	ctx := context.Background()
	_, adminToken := env.user(t, testAdminEmail, models.RoleAdmin)
	ana, anaToken := env.user(t, "ana@example.com", models.RoleUser)
	_, beaToken := env.user(t, "bea@example.com", models.RoleUser)

	created, err := env.budget.CreateExpense(ctx, as(anaToken, &api.CreateExpenseRequest{
		Category:    "comida",
		Amount:      decimal.NewFromInt(45000),
		Description: "Almuerzo",
		Date:        "2026-03-31",
	}))
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}
	expense := created.Msg.Expense
	if expense.UserID != ana.ID || expense.Kind != "personal" {
		t.Errorf("unexpected expense %+v", expense)
	}

	legacy := &models.Expense{
		Category:    models.CategoryTransport,
		Amount:      decimal.NewFromInt(30000),
		Description: "Taxi compartido",
		Date:        "2026-03-30",
		Kind:        models.KindPersonal,
	}
	if err := env.store.CreateExpense(ctx, legacy); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	update := func(id string) *api.UpdateExpenseRequest {
		return &api.UpdateExpenseRequest{
			ID:          id,
			Category:    "comida",
			Amount:      decimal.NewFromInt(50000),
			Description: "Almuerzo y postre",
			Date:        "2026-03-31",
		}
	}

	tests := []struct {
		name  string
		token string
		id    string
		want  connect.Code
	}{
		{name: "other user", token: beaToken, id: expense.ID, want: connect.CodePermissionDenied},
		{name: "shared row as user", token: anaToken, id: legacy.ID, want: connect.CodePermissionDenied},
		{name: "derived line", token: adminToken, id: calculator.DerivedIDPrefix + "abc", want: connect.CodeFailedPrecondition},
		{name: "lodging estimate", token: anaToken, id: calculator.EstimateID, want: connect.CodeFailedPrecondition},
		{name: "missing", token: anaToken, id: "missing", want: connect.CodeNotFound},
		{name: "anonymous", token: "", id: expense.ID, want: connect.CodeUnauthenticated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.budget.UpdateExpense(ctx, as(tt.token, update(tt.id)))
			assertCode(t, err, tt.want)
			_, err = env.budget.DeleteExpense(ctx, as(tt.token, &api.DeleteExpenseRequest{ID: tt.id}))
			assertCode(t, err, tt.want)
		})
	}

	t.Run("owner updates", func(t *testing.T) {
		resp, err := env.budget.UpdateExpense(ctx, as(anaToken, update(expense.ID)))
		if err != nil {
			t.Fatalf("UpdateExpense failed: %v", err)
		}
		if resp.Msg.Expense.UserID != ana.ID || !resp.Msg.Expense.Amount.Equal(decimal.NewFromInt(50000)) {
			t.Errorf("unexpected expense %+v", resp.Msg.Expense)
		}
	})

	t.Run("visibility", func(t *testing.T) {
		resp, err := env.budget.GetBudget(ctx, as(beaToken, &api.GetBudgetRequest{}))
		if err != nil {
			t.Fatalf("GetBudget failed: %v", err)
		}
		if len(resp.Msg.Lines) != 1 || resp.Msg.Lines[0].ID != legacy.ID {
			t.Errorf("bea should only see the shared row, got %+v", resp.Msg.Lines)
		}
	})

	t.Run("admin deletes shared row", func(t *testing.T) {
		if _, err := env.budget.DeleteExpense(ctx, as(adminToken, &api.DeleteExpenseRequest{ID: legacy.ID})); err != nil {
			t.Fatalf("DeleteExpense failed: %v", err)
		}
	})

	t.Run("invalid expense", func(t *testing.T) {
		_, err := env.budget.CreateExpense(ctx, as(anaToken, &api.CreateExpenseRequest{
			Category:    "lujos",
			Amount:      decimal.NewFromInt(1),
			Description: "x",
			Date:        "2026-03-31",
		}))
		assertCode(t, err, connect.CodeInvalidArgument)
	})
}
