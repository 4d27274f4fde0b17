// Package calculator computes gathering totals, member balances and
// settlements. Every function is pure: it reads a snapshot and never touches
// the store.
package calculator

import "github.com/mmynk/gatherings/internal/models"

// Totals summarizes the money recorded in one gathering.
type Totals struct {
	TotalExpenses    models.Amount `json:"totalExpenses"`
	TotalPayments    models.Amount `json:"totalPayments"`
	ExpensePerMember models.Amount `json:"expensePerMember"`
}

// GatheringTotals sums every expense and payment in the gathering and applies
// the equal-split policy: each member's fair share is the total expense divided
// by the member count, regardless of who spent it.
func GatheringTotals(g models.Gathering) Totals {
	var t Totals
	for _, m := range g.Members {
		t.TotalExpenses = t.TotalExpenses.Add(sumExpenses(m.Expenses))
		t.TotalPayments = t.TotalPayments.Add(sumPayments(m.Payments))
	}
	if n := len(g.Members); n > 0 {
		t.ExpensePerMember = t.TotalExpenses.DivInt(n)
	}
	return t
}

func sumExpenses(expenses []models.Expense) models.Amount {
	total := models.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

func sumPayments(payments []models.Payment) models.Amount {
	total := models.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}
