package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/gatherings/internal/calculator"
	"github.com/mmynk/gatherings/internal/report"
	"github.com/mmynk/gatherings/internal/repository"
)

// Ensure GatheringService implements GatheringServiceHandler
var _ GatheringServiceHandler = (*GatheringService)(nil)

// GatheringService implements the Connect GatheringService
type GatheringService struct {
	repo *repository.Repository
}

// NewGatheringService creates a new GatheringService over the given repository.
func NewGatheringService(repo *repository.Repository) *GatheringService {
	return &GatheringService{repo: repo}
}

// ListGatherings returns every gathering, newest first, with its expense total.
func (s *GatheringService) ListGatherings(ctx context.Context, req *connect.Request[ListGatheringsRequest]) (*connect.Response[ListGatheringsResponse], error) {
	gatherings := s.repo.ListGatherings(ctx)

	summaries := make([]GatheringSummary, len(gatherings))
	for i, g := range gatherings {
		summaries[i] = GatheringSummary{
			ID:            g.ID,
			Description:   g.Description,
			Status:        g.Status,
			CreatedAt:     g.CreatedAt,
			MemberCount:   len(g.Members),
			TotalExpenses: calculator.GatheringTotals(g).TotalExpenses,
		}
	}

	return connect.NewResponse(&ListGatheringsResponse{Gatherings: summaries}), nil
}

// GetGathering returns a gathering with totals, balances and suggested transfers.
func (s *GatheringService) GetGathering(ctx context.Context, req *connect.Request[GetGatheringRequest]) (*connect.Response[GetGatheringResponse], error) {
	detail, err := s.detail(ctx, req.Msg.GatheringID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&GetGatheringResponse{GatheringDetail: detail}), nil
}

// CreateGathering creates an open gathering.
func (s *GatheringService) CreateGathering(ctx context.Context, req *connect.Request[CreateGatheringRequest]) (*connect.Response[CreateGatheringResponse], error) {
	g, err := s.repo.CreateGathering(ctx, req.Msg.ID, req.Msg.Description)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&CreateGatheringResponse{Gathering: g}), nil
}

// DeleteGathering deletes a gathering. Unknown IDs are not an error.
func (s *GatheringService) DeleteGathering(ctx context.Context, req *connect.Request[DeleteGatheringRequest]) (*connect.Response[DeleteGatheringResponse], error) {
	if err := s.repo.DeleteGathering(ctx, req.Msg.GatheringID); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&DeleteGatheringResponse{}), nil
}

// CloseGathering settles and closes a gathering and returns its final state.
func (s *GatheringService) CloseGathering(ctx context.Context, req *connect.Request[CloseGatheringRequest]) (*connect.Response[CloseGatheringResponse], error) {
	if _, err := s.repo.CloseGathering(ctx, req.Msg.GatheringID); err != nil {
		return nil, toConnectError(err)
	}
	detail, err := s.detail(ctx, req.Msg.GatheringID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&CloseGatheringResponse{GatheringDetail: detail}), nil
}

func (s *GatheringService) AddMember(ctx context.Context, req *connect.Request[AddMemberRequest]) (*connect.Response[AddMemberResponse], error) {
	if err := s.repo.AddMemberToGathering(ctx, req.Msg.GatheringID, req.Msg.MemberID); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&AddMemberResponse{}), nil
}

func (s *GatheringService) RemoveMember(ctx context.Context, req *connect.Request[RemoveMemberRequest]) (*connect.Response[RemoveMemberResponse], error) {
	if err := s.repo.RemoveMemberFromGathering(ctx, req.Msg.GatheringID, req.Msg.MemberID); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&RemoveMemberResponse{}), nil
}

func (s *GatheringService) AddExpense(ctx context.Context, req *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error) {
	expense, err := s.repo.AddExpense(ctx, req.Msg.GatheringID, req.Msg.MemberID, req.Msg.Amount)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&AddExpenseResponse{Expense: expense}), nil
}

// RecordPayment records a user payment. Zero payments are rejected here; the
// repository itself accepts any amount.
func (s *GatheringService) RecordPayment(ctx context.Context, req *connect.Request[RecordPaymentRequest]) (*connect.Response[RecordPaymentResponse], error) {
	if req.Msg.Amount.IsZero() {
		return nil, connect.NewError(connect.CodeInvalidArgument,
			fmt.Errorf("payment must not be zero: %w", repository.ErrInvalidAmount))
	}
	payment, err := s.repo.RecordPayment(ctx, req.Msg.GatheringID, req.Msg.MemberID, req.Msg.Amount)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&RecordPaymentResponse{Payment: payment}), nil
}

func (s *GatheringService) SettleMember(ctx context.Context, req *connect.Request[SettleMemberRequest]) (*connect.Response[SettleMemberResponse], error) {
	payment, err := s.repo.SettleMember(ctx, req.Msg.GatheringID, req.Msg.MemberID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&SettleMemberResponse{Payment: payment}), nil
}

func (s *GatheringService) ListMembers(ctx context.Context, req *connect.Request[ListMembersRequest]) (*connect.Response[ListMembersResponse], error) {
	return connect.NewResponse(&ListMembersResponse{Members: s.repo.ListGlobalMembers(ctx)}), nil
}

func (s *GatheringService) CreateMember(ctx context.Context, req *connect.Request[CreateMemberRequest]) (*connect.Response[CreateMemberResponse], error) {
	member, err := s.repo.CreateGlobalMember(ctx, req.Msg.Name)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&CreateMemberResponse{Member: member}), nil
}

func (s *GatheringService) ListAvailableMembers(ctx context.Context, req *connect.Request[ListAvailableMembersRequest]) (*connect.Response[ListAvailableMembersResponse], error) {
	members, err := s.repo.AvailableMembers(ctx, req.Msg.GatheringID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&ListAvailableMembersResponse{Members: members}), nil
}

func (s *GatheringService) GetMemberBalances(ctx context.Context, req *connect.Request[GetMemberBalancesRequest]) (*connect.Response[GetMemberBalancesResponse], error) {
	return connect.NewResponse(&GetMemberBalancesResponse{Balances: s.repo.GlobalMemberBalances(ctx)}), nil
}

func (s *GatheringService) ExportData(ctx context.Context, req *connect.Request[ExportDataRequest]) (*connect.Response[ExportDataResponse], error) {
	token, err := s.repo.ExportData(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&ExportDataResponse{Token: token}), nil
}

// ImportData replaces the whole store with the decoded token.
func (s *GatheringService) ImportData(ctx context.Context, req *connect.Request[ImportDataRequest]) (*connect.Response[ImportDataResponse], error) {
	data, err := s.repo.ImportData(ctx, req.Msg.Token)
	if err != nil {
		slog.Warn("ImportData rejected", "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&ImportDataResponse{
		Gatherings: len(data.Gatherings),
		Members:    len(data.GlobalMembers),
	}), nil
}

// GetReport renders the CSV report for the requested date range.
func (s *GatheringService) GetReport(ctx context.Context, req *connect.Request[GetReportRequest]) (*connect.Response[GetReportResponse], error) {
	rng, err := report.ParseRange(strings.TrimSpace(req.Msg.StartDate), strings.TrimSpace(req.Msg.EndDate))
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	rep, err := report.Build(s.repo.Snapshot(ctx), rng)
	if err != nil {
		return nil, toConnectError(err)
	}

	var sb strings.Builder
	if err := rep.WriteCSV(&sb); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&GetReportResponse{Filename: rng.Filename(), CSV: sb.String()}), nil
}

func (s *GatheringService) detail(ctx context.Context, gatheringID string) (GatheringDetail, error) {
	g, balances, err := s.repo.GatheringWithBalances(ctx, gatheringID)
	if err != nil {
		return GatheringDetail{}, err
	}
	return GatheringDetail{
		Gathering: g,
		Totals:    calculator.GatheringTotals(g),
		Balances:  balances,
		Transfers: calculator.SuggestTransfers(balances),
	}, nil
}
