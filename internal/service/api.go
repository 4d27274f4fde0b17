package service

import (
	"time"

	"github.com/mmynk/gatherings/internal/calculator"
	"github.com/mmynk/gatherings/internal/models"
)

// GatheringSummary is one entry of the gathering list.
type GatheringSummary struct {
	ID            string                 `json:"id"`
	Description   string                 `json:"description"`
	Status        models.GatheringStatus `json:"status"`
	CreatedAt     time.Time              `json:"createdAt"`
	MemberCount   int                    `json:"memberCount"`
	TotalExpenses models.Amount          `json:"totalExpenses"`
}

// GatheringDetail is everything a gathering screen shows.
type GatheringDetail struct {
	Gathering models.Gathering           `json:"gathering"`
	Totals    calculator.Totals          `json:"totals"`
	Balances  []calculator.MemberBalance `json:"balances"`
	Transfers []calculator.Transfer      `json:"transfers"`
}

type ListGatheringsRequest struct{}

type ListGatheringsResponse struct {
	Gatherings []GatheringSummary `json:"gatherings"`
}

type GetGatheringRequest struct {
	GatheringID string `json:"gatheringId"`
}

type GetGatheringResponse struct {
	GatheringDetail
}

type CreateGatheringRequest struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

type CreateGatheringResponse struct {
	Gathering models.Gathering `json:"gathering"`
}

type DeleteGatheringRequest struct {
	GatheringID string `json:"gatheringId"`
}

type DeleteGatheringResponse struct{}

type CloseGatheringRequest struct {
	GatheringID string `json:"gatheringId"`
}

type CloseGatheringResponse struct {
	GatheringDetail
}

type AddMemberRequest struct {
	GatheringID string `json:"gatheringId"`
	MemberID    string `json:"memberId"`
}

type AddMemberResponse struct{}

type RemoveMemberRequest struct {
	GatheringID string `json:"gatheringId"`
	MemberID    string `json:"memberId"`
}

type RemoveMemberResponse struct{}

type AddExpenseRequest struct {
	GatheringID string        `json:"gatheringId"`
	MemberID    string        `json:"memberId"`
	Amount      models.Amount `json:"amount"`
}

type AddExpenseResponse struct {
	Expense models.Expense `json:"expense"`
}

type RecordPaymentRequest struct {
	GatheringID string        `json:"gatheringId"`
	MemberID    string        `json:"memberId"`
	Amount      models.Amount `json:"amount"`
}

type RecordPaymentResponse struct {
	Payment models.Payment `json:"payment"`
}

type SettleMemberRequest struct {
	GatheringID string `json:"gatheringId"`
	MemberID    string `json:"memberId"`
}

// SettleMemberResponse carries no payment when the member was already settled.
type SettleMemberResponse struct {
	Payment *models.Payment `json:"payment,omitempty"`
}

type ListMembersRequest struct{}

type ListMembersResponse struct {
	Members []models.GlobalMember `json:"members"`
}

type CreateMemberRequest struct {
	Name string `json:"name"`
}

type CreateMemberResponse struct {
	Member models.GlobalMember `json:"member"`
}

type ListAvailableMembersRequest struct {
	GatheringID string `json:"gatheringId"`
}

type ListAvailableMembersResponse struct {
	Members []models.GlobalMember `json:"members"`
}

type GetMemberBalancesRequest struct{}

type GetMemberBalancesResponse struct {
	Balances []calculator.GlobalMemberBalance `json:"balances"`
}

type ExportDataRequest struct{}

type ExportDataResponse struct {
	Token string `json:"token"`
}

type ImportDataRequest struct {
	Token string `json:"token"`
}

type ImportDataResponse struct {
	Gatherings int `json:"gatherings"`
	Members    int `json:"members"`
}

// GetReportRequest bounds are optional YYYY-MM-DD dates.
type GetReportRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type GetReportResponse struct {
	Filename string `json:"filename"`
	CSV      string `json:"csv"`
}
