package service

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"connectrpc.com/connect"
)

// GatheringServiceName is the fully-qualified name of the GatheringService service.
const GatheringServiceName = "gatherings.v1.GatheringService"

// Procedure paths of the GatheringService RPCs.
const (
	GatheringServiceListGatheringsProcedure       = "/gatherings.v1.GatheringService/ListGatherings"
	GatheringServiceGetGatheringProcedure         = "/gatherings.v1.GatheringService/GetGathering"
	GatheringServiceCreateGatheringProcedure      = "/gatherings.v1.GatheringService/CreateGathering"
	GatheringServiceDeleteGatheringProcedure      = "/gatherings.v1.GatheringService/DeleteGathering"
	GatheringServiceCloseGatheringProcedure       = "/gatherings.v1.GatheringService/CloseGathering"
	GatheringServiceAddMemberProcedure            = "/gatherings.v1.GatheringService/AddMember"
	GatheringServiceRemoveMemberProcedure         = "/gatherings.v1.GatheringService/RemoveMember"
	GatheringServiceAddExpenseProcedure           = "/gatherings.v1.GatheringService/AddExpense"
	GatheringServiceRecordPaymentProcedure        = "/gatherings.v1.GatheringService/RecordPayment"
	GatheringServiceSettleMemberProcedure         = "/gatherings.v1.GatheringService/SettleMember"
	GatheringServiceListMembersProcedure          = "/gatherings.v1.GatheringService/ListMembers"
	GatheringServiceCreateMemberProcedure         = "/gatherings.v1.GatheringService/CreateMember"
	GatheringServiceListAvailableMembersProcedure = "/gatherings.v1.GatheringService/ListAvailableMembers"
	GatheringServiceGetMemberBalancesProcedure    = "/gatherings.v1.GatheringService/GetMemberBalances"
	GatheringServiceExportDataProcedure           = "/gatherings.v1.GatheringService/ExportData"
	GatheringServiceImportDataProcedure           = "/gatherings.v1.GatheringService/ImportData"
	GatheringServiceGetReportProcedure            = "/gatherings.v1.GatheringService/GetReport"
)

// GatheringServiceHandler is implemented by GatheringService.
type GatheringServiceHandler interface {
	ListGatherings(context.Context, *connect.Request[ListGatheringsRequest]) (*connect.Response[ListGatheringsResponse], error)
	GetGathering(context.Context, *connect.Request[GetGatheringRequest]) (*connect.Response[GetGatheringResponse], error)
	CreateGathering(context.Context, *connect.Request[CreateGatheringRequest]) (*connect.Response[CreateGatheringResponse], error)
	DeleteGathering(context.Context, *connect.Request[DeleteGatheringRequest]) (*connect.Response[DeleteGatheringResponse], error)
	CloseGathering(context.Context, *connect.Request[CloseGatheringRequest]) (*connect.Response[CloseGatheringResponse], error)
	AddMember(context.Context, *connect.Request[AddMemberRequest]) (*connect.Response[AddMemberResponse], error)
	RemoveMember(context.Context, *connect.Request[RemoveMemberRequest]) (*connect.Response[RemoveMemberResponse], error)
	AddExpense(context.Context, *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error)
	RecordPayment(context.Context, *connect.Request[RecordPaymentRequest]) (*connect.Response[RecordPaymentResponse], error)
	SettleMember(context.Context, *connect.Request[SettleMemberRequest]) (*connect.Response[SettleMemberResponse], error)
	ListMembers(context.Context, *connect.Request[ListMembersRequest]) (*connect.Response[ListMembersResponse], error)
	CreateMember(context.Context, *connect.Request[CreateMemberRequest]) (*connect.Response[CreateMemberResponse], error)
	ListAvailableMembers(context.Context, *connect.Request[ListAvailableMembersRequest]) (*connect.Response[ListAvailableMembersResponse], error)
	GetMemberBalances(context.Context, *connect.Request[GetMemberBalancesRequest]) (*connect.Response[GetMemberBalancesResponse], error)
	ExportData(context.Context, *connect.Request[ExportDataRequest]) (*connect.Response[ExportDataResponse], error)
	ImportData(context.Context, *connect.Request[ImportDataRequest]) (*connect.Response[ImportDataResponse], error)
	GetReport(context.Context, *connect.Request[GetReportRequest]) (*connect.Response[GetReportResponse], error)
}

// NewGatheringServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself. Messages are exchanged as JSON.
func NewGatheringServiceHandler(svc GatheringServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)
	readOpts := append(slices.Clone(opts), connect.WithIdempotency(connect.IdempotencyNoSideEffects))
	handlers := map[string]http.Handler{
		GatheringServiceListGatheringsProcedure:       connect.NewUnaryHandler(GatheringServiceListGatheringsProcedure, svc.ListGatherings, readOpts...),
		GatheringServiceGetGatheringProcedure:         connect.NewUnaryHandler(GatheringServiceGetGatheringProcedure, svc.GetGathering, readOpts...),
		GatheringServiceCreateGatheringProcedure:      connect.NewUnaryHandler(GatheringServiceCreateGatheringProcedure, svc.CreateGathering, opts...),
		GatheringServiceDeleteGatheringProcedure:      connect.NewUnaryHandler(GatheringServiceDeleteGatheringProcedure, svc.DeleteGathering, opts...),
		GatheringServiceCloseGatheringProcedure:       connect.NewUnaryHandler(GatheringServiceCloseGatheringProcedure, svc.CloseGathering, opts...),
		GatheringServiceAddMemberProcedure:            connect.NewUnaryHandler(GatheringServiceAddMemberProcedure, svc.AddMember, opts...),
		GatheringServiceRemoveMemberProcedure:         connect.NewUnaryHandler(GatheringServiceRemoveMemberProcedure, svc.RemoveMember, opts...),
		GatheringServiceAddExpenseProcedure:           connect.NewUnaryHandler(GatheringServiceAddExpenseProcedure, svc.AddExpense, opts...),
		GatheringServiceRecordPaymentProcedure:        connect.NewUnaryHandler(GatheringServiceRecordPaymentProcedure, svc.RecordPayment, opts...),
		GatheringServiceSettleMemberProcedure:         connect.NewUnaryHandler(GatheringServiceSettleMemberProcedure, svc.SettleMember, opts...),
		GatheringServiceListMembersProcedure:          connect.NewUnaryHandler(GatheringServiceListMembersProcedure, svc.ListMembers, readOpts...),
		GatheringServiceCreateMemberProcedure:         connect.NewUnaryHandler(GatheringServiceCreateMemberProcedure, svc.CreateMember, opts...),
		GatheringServiceListAvailableMembersProcedure: connect.NewUnaryHandler(GatheringServiceListAvailableMembersProcedure, svc.ListAvailableMembers, readOpts...),
		GatheringServiceGetMemberBalancesProcedure:    connect.NewUnaryHandler(GatheringServiceGetMemberBalancesProcedure, svc.GetMemberBalances, readOpts...),
		GatheringServiceExportDataProcedure:           connect.NewUnaryHandler(GatheringServiceExportDataProcedure, svc.ExportData, readOpts...),
		GatheringServiceImportDataProcedure:           connect.NewUnaryHandler(GatheringServiceImportDataProcedure, svc.ImportData, opts...),
		GatheringServiceGetReportProcedure:            connect.NewUnaryHandler(GatheringServiceGetReportProcedure, svc.GetReport, readOpts...),
	}
	return "/" + GatheringServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := handlers[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

// GatheringServiceClient is a client for the GatheringService.
type GatheringServiceClient struct {
	listGatherings       *connect.Client[ListGatheringsRequest, ListGatheringsResponse]
	getGathering         *connect.Client[GetGatheringRequest, GetGatheringResponse]
	createGathering      *connect.Client[CreateGatheringRequest, CreateGatheringResponse]
	deleteGathering      *connect.Client[DeleteGatheringRequest, DeleteGatheringResponse]
	closeGathering       *connect.Client[CloseGatheringRequest, CloseGatheringResponse]
	addMember            *connect.Client[AddMemberRequest, AddMemberResponse]
	removeMember         *connect.Client[RemoveMemberRequest, RemoveMemberResponse]
	addExpense           *connect.Client[AddExpenseRequest, AddExpenseResponse]
	recordPayment        *connect.Client[RecordPaymentRequest, RecordPaymentResponse]
	settleMember         *connect.Client[SettleMemberRequest, SettleMemberResponse]
	listMembers          *connect.Client[ListMembersRequest, ListMembersResponse]
	createMember         *connect.Client[CreateMemberRequest, CreateMemberResponse]
	listAvailableMembers *connect.Client[ListAvailableMembersRequest, ListAvailableMembersResponse]
	getMemberBalances    *connect.Client[GetMemberBalancesRequest, GetMemberBalancesResponse]
	exportData           *connect.Client[ExportDataRequest, ExportDataResponse]
	importData           *connect.Client[ImportDataRequest, ImportDataResponse]
	getReport            *connect.Client[GetReportRequest, GetReportResponse]
}

// NewGatheringServiceClient constructs a client for the GatheringService at
// baseURL (for example, http://localhost:8080).
func NewGatheringServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *GatheringServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
	return &GatheringServiceClient{
		listGatherings:       connect.NewClient[ListGatheringsRequest, ListGatheringsResponse](httpClient, baseURL+GatheringServiceListGatheringsProcedure, opts...),
		getGathering:         connect.NewClient[GetGatheringRequest, GetGatheringResponse](httpClient, baseURL+GatheringServiceGetGatheringProcedure, opts...),
		createGathering:      connect.NewClient[CreateGatheringRequest, CreateGatheringResponse](httpClient, baseURL+GatheringServiceCreateGatheringProcedure, opts...),
		deleteGathering:      connect.NewClient[DeleteGatheringRequest, DeleteGatheringResponse](httpClient, baseURL+GatheringServiceDeleteGatheringProcedure, opts...),
		closeGathering:       connect.NewClient[CloseGatheringRequest, CloseGatheringResponse](httpClient, baseURL+GatheringServiceCloseGatheringProcedure, opts...),
		addMember:            connect.NewClient[AddMemberRequest, AddMemberResponse](httpClient, baseURL+GatheringServiceAddMemberProcedure, opts...),
		removeMember:         connect.NewClient[RemoveMemberRequest, RemoveMemberResponse](httpClient, baseURL+GatheringServiceRemoveMemberProcedure, opts...),
		addExpense:           connect.NewClient[AddExpenseRequest, AddExpenseResponse](httpClient, baseURL+GatheringServiceAddExpenseProcedure, opts...),
		recordPayment:        connect.NewClient[RecordPaymentRequest, RecordPaymentResponse](httpClient, baseURL+GatheringServiceRecordPaymentProcedure, opts...),
		settleMember:         connect.NewClient[SettleMemberRequest, SettleMemberResponse](httpClient, baseURL+GatheringServiceSettleMemberProcedure, opts...),
		listMembers:          connect.NewClient[ListMembersRequest, ListMembersResponse](httpClient, baseURL+GatheringServiceListMembersProcedure, opts...),
		createMember:         connect.NewClient[CreateMemberRequest, CreateMemberResponse](httpClient, baseURL+GatheringServiceCreateMemberProcedure, opts...),
		listAvailableMembers: connect.NewClient[ListAvailableMembersRequest, ListAvailableMembersResponse](httpClient, baseURL+GatheringServiceListAvailableMembersProcedure, opts...),
		getMemberBalances:    connect.NewClient[GetMemberBalancesRequest, GetMemberBalancesResponse](httpClient, baseURL+GatheringServiceGetMemberBalancesProcedure, opts...),
		exportData:           connect.NewClient[ExportDataRequest, ExportDataResponse](httpClient, baseURL+GatheringServiceExportDataProcedure, opts...),
		importData:           connect.NewClient[ImportDataRequest, ImportDataResponse](httpClient, baseURL+GatheringServiceImportDataProcedure, opts...),
		getReport:            connect.NewClient[GetReportRequest, GetReportResponse](httpClient, baseURL+GatheringServiceGetReportProcedure, opts...),
	}
}

// ListGatherings calls gatherings.v1.GatheringService.ListGatherings.
func (c *GatheringServiceClient) ListGatherings(ctx context.Context, req *connect.Request[ListGatheringsRequest]) (*connect.Response[ListGatheringsResponse], error) {
	return c.listGatherings.CallUnary(ctx, req)
}

// GetGathering calls gatherings.v1.GatheringService.GetGathering.
func (c *GatheringServiceClient) GetGathering(ctx context.Context, req *connect.Request[GetGatheringRequest]) (*connect.Response[GetGatheringResponse], error) {
	return c.getGathering.CallUnary(ctx, req)
}

// CreateGathering calls gatherings.v1.GatheringService.CreateGathering.
func (c *GatheringServiceClient) CreateGathering(ctx context.Context, req *connect.Request[CreateGatheringRequest]) (*connect.Response[CreateGatheringResponse], error) {
	return c.createGathering.CallUnary(ctx, req)
}

// DeleteGathering calls gatherings.v1.GatheringService.DeleteGathering.
func (c *GatheringServiceClient) DeleteGathering(ctx context.Context, req *connect.Request[DeleteGatheringRequest]) (*connect.Response[DeleteGatheringResponse], error) {
	return c.deleteGathering.CallUnary(ctx, req)
}

// CloseGathering calls gatherings.v1.GatheringService.CloseGathering.
func (c *GatheringServiceClient) CloseGathering(ctx context.Context, req *connect.Request[CloseGatheringRequest]) (*connect.Response[CloseGatheringResponse], error) {
	return c.closeGathering.CallUnary(ctx, req)
}

// AddMember calls gatherings.v1.GatheringService.AddMember.
func (c *GatheringServiceClient) AddMember(ctx context.Context, req *connect.Request[AddMemberRequest]) (*connect.Response[AddMemberResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}

// RemoveMember calls gatherings.v1.GatheringService.RemoveMember.
func (c *GatheringServiceClient) RemoveMember(ctx context.Context, req *connect.Request[RemoveMemberRequest]) (*connect.Response[RemoveMemberResponse], error) {
	return c.removeMember.CallUnary(ctx, req)
}

// AddExpense calls gatherings.v1.GatheringService.AddExpense.
func (c *GatheringServiceClient) AddExpense(ctx context.Context, req *connect.Request[AddExpenseRequest]) (*connect.Response[AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

// RecordPayment calls gatherings.v1.GatheringService.RecordPayment.
func (c *GatheringServiceClient) RecordPayment(ctx context.Context, req *connect.Request[RecordPaymentRequest]) (*connect.Response[RecordPaymentResponse], error) {
	return c.recordPayment.CallUnary(ctx, req)
}

// SettleMember calls gatherings.v1.GatheringService.SettleMember.
func (c *GatheringServiceClient) SettleMember(ctx context.Context, req *connect.Request[SettleMemberRequest]) (*connect.Response[SettleMemberResponse], error) {
	return c.settleMember.CallUnary(ctx, req)
}

// ListMembers calls gatherings.v1.GatheringService.ListMembers.
func (c *GatheringServiceClient) ListMembers(ctx context.Context, req *connect.Request[ListMembersRequest]) (*connect.Response[ListMembersResponse], error) {
	return c.listMembers.CallUnary(ctx, req)
}

// CreateMember calls gatherings.v1.GatheringService.CreateMember.
func (c *GatheringServiceClient) CreateMember(ctx context.Context, req *connect.Request[CreateMemberRequest]) (*connect.Response[CreateMemberResponse], error) {
	return c.createMember.CallUnary(ctx, req)
}

// ListAvailableMembers calls gatherings.v1.GatheringService.ListAvailableMembers.
func (c *GatheringServiceClient) ListAvailableMembers(ctx context.Context, req *connect.Request[ListAvailableMembersRequest]) (*connect.Response[ListAvailableMembersResponse], error) {
	return c.listAvailableMembers.CallUnary(ctx, req)
}

// GetMemberBalances calls gatherings.v1.GatheringService.GetMemberBalances.
func (c *GatheringServiceClient) GetMemberBalances(ctx context.Context, req *connect.Request[GetMemberBalancesRequest]) (*connect.Response[GetMemberBalancesResponse], error) {
	return c.getMemberBalances.CallUnary(ctx, req)
}

// ExportData calls gatherings.v1.GatheringService.ExportData.
func (c *GatheringServiceClient) ExportData(ctx context.Context, req *connect.Request[ExportDataRequest]) (*connect.Response[ExportDataResponse], error) {
	return c.exportData.CallUnary(ctx, req)
}

// ImportData calls gatherings.v1.GatheringService.ImportData.
func (c *GatheringServiceClient) ImportData(ctx context.Context, req *connect.Request[ImportDataRequest]) (*connect.Response[ImportDataResponse], error) {
	return c.importData.CallUnary(ctx, req)
}

// GetReport calls gatherings.v1.GatheringService.GetReport.
func (c *GatheringServiceClient) GetReport(ctx context.Context, req *connect.Request[GetReportRequest]) (*connect.Response[GetReportResponse], error) {
	return c.getReport.CallUnary(ctx, req)
}
