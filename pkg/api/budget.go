package api

import "github.com/shopspring/decimal"

// Expense is a manually entered expense.
type Expense struct {
	ID          string          `json:"id"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	Kind        string          `json:"kind"`
	UserID      string          `json:"userId,omitempty"`
	CreatedAt   int64           `json:"createdAt"`
}

// LedgerLine is one budget row, manual or derived from the itinerary.
type LedgerLine struct {
	ID          string          `json:"id"`
	ItemID      string          `json:"itemId,omitempty"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Time        string          `json:"time,omitempty"`
	Kind        string          `json:"kind"`
	UserID      string          `json:"userId,omitempty"`
	Derived     bool            `json:"derived"`
	Optional    bool            `json:"optional"`
	Estimated   bool            `json:"estimated"`
	Completed   bool            `json:"completed"`
}

type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Share    float64         `json:"share"`
}

// GetBudgetRequest selects the tab. Kind is "personal" (default) or
// "grupal"; People is clamped to at least one.
type GetBudgetRequest struct {
	Kind   string `json:"kind,omitempty"`
	People int32  `json:"people,omitempty"`
}

type GetBudgetResponse struct {
	Kind            string           `json:"kind"`
	Lines           []*LedgerLine    `json:"lines"`
	TotalProjected  decimal.Decimal  `json:"totalProjected"`
	TotalObligatory decimal.Decimal  `json:"totalObligatory"`
	TotalReal       decimal.Decimal  `json:"totalReal"`
	Ceiling         decimal.Decimal  `json:"ceiling"`
	Available       decimal.Decimal  `json:"available"`
	PercentSpent    float64          `json:"percentSpent"`
	People          int32            `json:"people"`
	PerPerson       decimal.Decimal  `json:"perPerson"`
	ByCategory      []*CategoryTotal `json:"byCategory"`
}

type CreateExpenseRequest struct {
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	Kind        string          `json:"kind,omitempty"`
}

type CreateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type UpdateExpenseRequest struct {
	ID          string          `json:"id"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	Kind        string          `json:"kind,omitempty"`
}

type UpdateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	ID string `json:"id"`
}

type DeleteExpenseResponse struct{}
