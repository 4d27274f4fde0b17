package calculator

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mmynk/gatherings/internal/models"
)

// UnknownMemberName is shown for participations whose global member is missing.
const UnknownMemberName = "Unknown Member"

// SettledThreshold absorbs rounding noise: balances smaller than one cent in
// absolute value count as settled.
var SettledThreshold = models.MustAmount("0.01")

// BalanceStatus classifies a member's net position.
type BalanceStatus string

const (
	StatusSettled     BalanceStatus = "settled"
	StatusIsOwedMoney BalanceStatus = "isOwedMoney"
	StatusOwesMoney   BalanceStatus = "owesMoney"
)

// MemberBalance represents the balance information for one gathering member.
type MemberBalance struct {
	MemberID      string        `json:"memberId"`
	Name          string        `json:"name"`
	TotalExpenses models.Amount `json:"totalExpenses"`
	TotalPayments models.Amount `json:"totalPayments"`
	Balance       models.Amount `json:"balance"` // Positive = owed money, Negative = owes money
	Status        BalanceStatus `json:"status"`
}

// GlobalMemberBalance aggregates one global member across every gathering,
// open or closed.
type GlobalMemberBalance struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	TotalExpenses models.Amount `json:"totalExpenses"`
	TotalPayments models.Amount `json:"totalPayments"`
	NetBalance    models.Amount `json:"netBalance"`
}

// IsSettled reports whether a balance is within the rounding threshold of zero.
func IsSettled(balance models.Amount) bool {
	return balance.Abs().LessThan(SettledThreshold)
}

// StatusOf classifies a balance.
func StatusOf(balance models.Amount) BalanceStatus {
	switch {
	case IsSettled(balance):
		return StatusSettled
	case balance.IsPositive():
		return StatusIsOwedMoney
	default:
		return StatusOwesMoney
	}
}

// memberBalance computes expenses + payments - fair share for one participation.
func memberBalance(m models.GatheringMember, share models.Amount) (expenses, payments, balance models.Amount) {
	expenses = sumExpenses(m.Expenses)
	payments = sumPayments(m.Payments)
	balance = expenses.Add(payments).Sub(share)
	return expenses, payments, balance
}

// MemberBalances computes the balance of every member of the gathering, sorted
// by display name using locale collation. Names are resolved from directory;
// missing members are reported as UnknownMemberName.
//
// Algorithm:
//   - share = total expenses / member count
//   - balance(m) = expenses(m) + payments(m) - share
//   - |balance| < 0.01 is settled, positive is owed money, negative owes money
func MemberBalances(g models.Gathering, directory []models.GlobalMember) []MemberBalance {
	names := make(map[string]string, len(directory))
	for _, gm := range directory {
		names[gm.ID] = gm.Name
	}

	share := GatheringTotals(g).ExpensePerMember
	balances := make([]MemberBalance, 0, len(g.Members))
	for _, m := range g.Members {
		name, ok := names[m.MemberID]
		if !ok {
			name = UnknownMemberName
		}
		expenses, payments, balance := memberBalance(m, share)
		balances = append(balances, MemberBalance{
			MemberID:      m.MemberID,
			Name:          name,
			TotalExpenses: expenses,
			TotalPayments: payments,
			Balance:       balance,
			Status:        StatusOf(balance),
		})
	}

	// Collators keep internal buffers, so one per call.
	c := collate.New(language.Und)
	slices.SortStableFunc(balances, func(a, b MemberBalance) int {
		return c.CompareString(a.Name, b.Name)
	})
	return balances
}

// GlobalMemberBalances sums expenses, payments and net balance for every global
// member across all gatherings they participate in. Members without any
// participation get all-zero totals. Order follows data.GlobalMembers.
func GlobalMemberBalances(data models.AppData) []GlobalMemberBalance {
	result := make([]GlobalMemberBalance, 0, len(data.GlobalMembers))
	for _, gm := range data.GlobalMembers {
		gb := GlobalMemberBalance{ID: gm.ID, Name: gm.Name}
		for i := range data.Gatherings {
			g := &data.Gatherings[i]
			m := g.Member(gm.ID)
			if m == nil {
				continue
			}
			share := GatheringTotals(*g).ExpensePerMember
			expenses, payments, balance := memberBalance(*m, share)
			gb.TotalExpenses = gb.TotalExpenses.Add(expenses)
			gb.TotalPayments = gb.TotalPayments.Add(payments)
			gb.NetBalance = gb.NetBalance.Add(balance)
		}
		result = append(result, gb)
	}
	return result
}
