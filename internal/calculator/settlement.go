package calculator

import (
	"slices"

	"github.com/mmynk/gatherings/internal/models"
)

// SettlementEntry is the payment that brings one member's balance to zero.
type SettlementEntry struct {
	MemberID string
	Amount   models.Amount // always -balance
}

// Settlement returns one entry per unsettled member (|balance| >= 0.01), in
// member balance order. Appending each entry as a payment zeroes every balance
// of the gathering.
func Settlement(balances []MemberBalance) []SettlementEntry {
	var entries []SettlementEntry
	for _, b := range balances {
		if IsSettled(b.Balance) {
			continue
		}
		entries = append(entries, SettlementEntry{MemberID: b.MemberID, Amount: b.Balance.Neg()})
	}
	return entries
}

// Transfer is a suggested payment from a member who owes money to one who is owed.
type Transfer struct {
	From     string        `json:"from"` // Member who owes
	FromName string        `json:"fromName"`
	To       string        `json:"to"` // Member who is owed
	ToName   string        `json:"toName"`
	Amount   models.Amount `json:"amount"`
}

// SuggestTransfers answers "who pays whom" for the current balances.
//
// Algorithm: greedy matching of the largest debt with the largest credit until
// every unsettled balance is consumed. Amounts under one cent are dropped as
// rounding noise. The result is advisory and never persisted.
func SuggestTransfers(balances []MemberBalance) []Transfer {
	var creditors, debtors []MemberBalance
	for _, b := range balances {
		switch b.Status {
		case StatusIsOwedMoney:
			creditors = append(creditors, b)
		case StatusOwesMoney:
			debtors = append(debtors, b)
		}
	}
	slices.SortStableFunc(creditors, func(a, b MemberBalance) int { return b.Balance.Cmp(a.Balance) })
	slices.SortStableFunc(debtors, func(a, b MemberBalance) int { return a.Balance.Cmp(b.Balance) })

	debtorLeft := make([]models.Amount, len(debtors))
	for i, d := range debtors {
		debtorLeft[i] = d.Balance.Neg() // Make positive
	}
	creditorLeft := make([]models.Amount, len(creditors))
	for i, c := range creditors {
		creditorLeft[i] = c.Balance
	}

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		// Amount to settle is minimum of what debtor owes and creditor is owed
		amount := debtorLeft[i].Min(creditorLeft[j])

		if amount.GreaterThanOrEqual(SettledThreshold) {
			transfers = append(transfers, Transfer{
				From:     debtors[i].MemberID,
				FromName: debtors[i].Name,
				To:       creditors[j].MemberID,
				ToName:   creditors[j].Name,
				Amount:   amount,
			})
		}

		debtorLeft[i] = debtorLeft[i].Sub(amount)
		creditorLeft[j] = creditorLeft[j].Sub(amount)

		// Move to next debtor/creditor if fully settled
		if debtorLeft[i].LessThan(SettledThreshold) {
			i++
		}
		if creditorLeft[j].LessThan(SettledThreshold) {
			j++
		}
	}
	return transfers
}
