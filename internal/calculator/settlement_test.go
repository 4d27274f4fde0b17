package calculator

import (
	"testing"

	"github.com/mmynk/gatherings/internal/models"
)

func TestSettlement(t *testing.T) {
	g, directory := dinner()

	entries := Settlement(MemberBalances(g, directory))
	want := map[string]string{"a": "-60", "b": "30", "c": "30"}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for _, e := range entries {
		if !e.Amount.Equal(amt(want[e.MemberID])) {
			t.Errorf("%s settlement = %s, want %s", e.MemberID, e.Amount, want[e.MemberID])
		}
	}

	// Applying the entries zeroes every balance.
	for _, e := range entries {
		m := g.Member(e.MemberID)
		m.Payments = append(m.Payments, models.Payment{ID: "settle-" + e.MemberID, Amount: e.Amount})
	}
	for _, b := range MemberBalances(g, directory) {
		if !b.Balance.IsZero() {
			t.Errorf("%s balance after settlement = %s, want 0", b.MemberID, b.Balance)
		}
	}
}

func TestSettlementSkipsSettledMembers(t *testing.T) {
	balances := []MemberBalance{
		{MemberID: "a", Balance: amt("0.004"), Status: StatusSettled},
		{MemberID: "b", Balance: amt("-0.004"), Status: StatusSettled},
	}
	if entries := Settlement(balances); len(entries) != 0 {
		t.Errorf("expected no entries, got %v", entries)
	}
}

func TestSettlementUnevenSplit(t *testing.T) {
	g := models.Gathering{Members: []models.GatheringMember{
		{MemberID: "a", Expenses: []models.Expense{expense("100")}},
		{MemberID: "b"},
		{MemberID: "c"},
	}}

	for _, e := range Settlement(MemberBalances(g, nil)) {
		m := g.Member(e.MemberID)
		m.Payments = append(m.Payments, models.Payment{Amount: e.Amount})
	}
	for _, b := range MemberBalances(g, nil) {
		if b.Status != StatusSettled {
			t.Errorf("%s not settled: %s", b.MemberID, b.Balance)
		}
	}
}

func TestSuggestTransfers(t *testing.T) {
	tests := []struct {
		name     string
		balances []MemberBalance
		want     []Transfer
	}{
		{
			name: "one creditor two debtors",
			balances: []MemberBalance{
				{MemberID: "a", Name: "A", Balance: amt("60"), Status: StatusIsOwedMoney},
				{MemberID: "b", Name: "B", Balance: amt("-30"), Status: StatusOwesMoney},
				{MemberID: "c", Name: "C", Balance: amt("-30"), Status: StatusOwesMoney},
			},
			want: []Transfer{
				{From: "b", To: "a", Amount: amt("30")},
				{From: "c", To: "a", Amount: amt("30")},
			},
		},
		{
			name: "largest debt matched with largest credit",
			balances: []MemberBalance{
				{MemberID: "a", Balance: amt("10"), Status: StatusIsOwedMoney},
				{MemberID: "b", Balance: amt("40"), Status: StatusIsOwedMoney},
				{MemberID: "c", Balance: amt("-50"), Status: StatusOwesMoney},
			},
			want: []Transfer{
				{From: "c", To: "b", Amount: amt("40")},
				{From: "c", To: "a", Amount: amt("10")},
			},
		},
		{
			name: "settled members are ignored",
			balances: []MemberBalance{
				{MemberID: "a", Balance: amt("0.001"), Status: StatusSettled},
				{MemberID: "b", Balance: amt("-0.001"), Status: StatusSettled},
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuggestTransfers(tt.balances)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d transfers, want %d: %+v", len(got), len(tt.want), got)
			}
			for i, w := range tt.want {
				if got[i].From != w.From || got[i].To != w.To || !got[i].Amount.Equal(w.Amount) {
					t.Errorf("transfer %d = %s->%s %s, want %s->%s %s",
						i, got[i].From, got[i].To, got[i].Amount, w.From, w.To, w.Amount)
				}
			}
		})
	}
}
