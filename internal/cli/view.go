package cli

import (
	"time"

	"github.com/mmynk/gatherings/internal/calculator"
	"github.com/mmynk/gatherings/internal/models"
)

type gatheringRow struct {
	ID            string
	Description   string
	Status        models.GatheringStatus
	CreatedAt     time.Time
	MemberCount   int
	TotalExpenses models.Amount
}

type gatheringView struct {
	Gathering models.Gathering
	Closed    bool
	Totals    calculator.Totals
	Balances  []calculator.MemberBalance
	Transfers []calculator.Transfer
}

func newGatheringView(g models.Gathering, balances []calculator.MemberBalance) gatheringView {
	return gatheringView{
		Gathering: g,
		Closed:    g.IsClosed(),
		Totals:    calculator.GatheringTotals(g),
		Balances:  balances,
		Transfers: calculator.SuggestTransfers(balances),
	}
}

func gatheringRows(gatherings []models.Gathering) []gatheringRow {
	rows := make([]gatheringRow, 0, len(gatherings))
	for _, g := range gatherings {
		rows = append(rows, gatheringRow{
			ID:            g.ID,
			Description:   g.Description,
			Status:        g.Status,
			CreatedAt:     g.CreatedAt,
			MemberCount:   len(g.Members),
			TotalExpenses: calculator.GatheringTotals(g).TotalExpenses,
		})
	}
	return rows
}
