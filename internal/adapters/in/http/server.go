// Package http exposes the engine's commands and queries over a REST API.
// Handlers translate transport concerns only; every business rule lives in
// the application and domain layers.
package http

import (
	"errors"
	"net/http"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/commission"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	claimOrderHandler        commands.ClaimOrderCommandHandler
	releaseClaimHandler      commands.ReleaseClaimCommandHandler
	reportCheckpointHandler  commands.ReportCheckpointCommandHandler
	confirmDeliveryHandler   commands.ConfirmDeliveryCommandHandler
	confirmReceiptHandler    commands.ConfirmReceiptCommandHandler
	reportIssueHandler       commands.ReportIssueCommandHandler
	resolveIssueHandler      commands.ResolveIssueCommandHandler
	recordEarningsHandler    commands.RecordEarningsCommandHandler
	approveSettlementHandler commands.ApproveSettlementCommandHandler
	reviewPaymentHandler     commands.ReviewPaymentCommandHandler
	requestWithdrawalHandler commands.RequestWithdrawalCommandHandler
	processWithdrawalHandler commands.ProcessWithdrawalCommandHandler

	claimableOrdersHandler    queries.GetClaimableOrdersQueryHandler
	orderHistoryHandler       queries.GetOrderHistoryQueryHandler
	availableBalanceHandler   queries.GetAvailableBalanceQueryHandler
	pendingWithdrawalsHandler queries.GetPendingWithdrawalsQueryHandler
}

// ServerParams bundles the handlers the server depends on.
type ServerParams struct {
	ClaimOrder        commands.ClaimOrderCommandHandler
	ReleaseClaim      commands.ReleaseClaimCommandHandler
	ReportCheckpoint  commands.ReportCheckpointCommandHandler
	ConfirmDelivery   commands.ConfirmDeliveryCommandHandler
	ConfirmReceipt    commands.ConfirmReceiptCommandHandler
	ReportIssue       commands.ReportIssueCommandHandler
	ResolveIssue      commands.ResolveIssueCommandHandler
	RecordEarnings    commands.RecordEarningsCommandHandler
	ApproveSettlement commands.ApproveSettlementCommandHandler
	ReviewPayment     commands.ReviewPaymentCommandHandler
	RequestWithdrawal commands.RequestWithdrawalCommandHandler
	ProcessWithdrawal commands.ProcessWithdrawalCommandHandler

	ClaimableOrders    queries.GetClaimableOrdersQueryHandler
	OrderHistory       queries.GetOrderHistoryQueryHandler
	AvailableBalance   queries.GetAvailableBalanceQueryHandler
	PendingWithdrawals queries.GetPendingWithdrawalsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(params ServerParams) *Server {
	return &Server{
		claimOrderHandler:        params.ClaimOrder,
		releaseClaimHandler:      params.ReleaseClaim,
		reportCheckpointHandler:  params.ReportCheckpoint,
		confirmDeliveryHandler:   params.ConfirmDelivery,
		confirmReceiptHandler:    params.ConfirmReceipt,
		reportIssueHandler:       params.ReportIssue,
		resolveIssueHandler:      params.ResolveIssue,
		recordEarningsHandler:    params.RecordEarnings,
		approveSettlementHandler: params.ApproveSettlement,
		reviewPaymentHandler:     params.ReviewPayment,
		requestWithdrawalHandler: params.RequestWithdrawal,
		processWithdrawalHandler: params.ProcessWithdrawal,

		claimableOrdersHandler:    params.ClaimableOrders,
		orderHistoryHandler:       params.OrderHistory,
		availableBalanceHandler:   params.AvailableBalance,
		pendingWithdrawalsHandler: params.PendingWithdrawals,
	}
}

// RegisterRoutes wires the API endpoints onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.GET("/orders/claimable", s.GetClaimableOrders)
	api.GET("/orders/:orderID/history", s.GetOrderHistory)
	api.POST("/orders/:orderID/claim", s.ClaimOrder)
	api.POST("/orders/:orderID/release", s.ReleaseClaim)
	api.POST("/orders/:orderID/checkpoints", s.ReportCheckpoint)
	api.POST("/orders/:orderID/delivery", s.ConfirmDelivery)
	api.POST("/orders/:orderID/receipt", s.ConfirmReceipt)
	api.POST("/orders/:orderID/issues", s.ReportIssue)
	api.POST("/orders/:orderID/issues/resolve", s.ResolveIssue)
	api.POST("/orders/:orderID/earnings", s.RecordEarnings)
	api.POST("/orders/:orderID/settlement", s.ApproveSettlement)
	api.POST("/orders/:orderID/payment-review", s.ReviewPayment)

	api.GET("/workers/:workerID/balance", s.GetAvailableBalance)
	api.POST("/workers/:workerID/withdrawals", s.RequestWithdrawal)
	api.GET("/withdrawals/pending", s.GetPendingWithdrawals)
	api.POST("/withdrawals/:requestID/process", s.ProcessWithdrawal)
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// writeError maps application errors to HTTP statuses. Conflicts are 409,
// business rejections that passed validation are 422, unknown identifiers
// are 404 and malformed input is 400.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusBadRequest

	switch {
	case errors.Is(err, errs.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrInsufficientBalance),
		errors.Is(err, order.ErrLocationOutOfRange),
		errors.Is(err, commands.ErrVerificationCodeMismatch),
		errors.Is(err, commands.ErrGracePeriodActive),
		errors.Is(err, commands.ErrOrderIsNotDelivered),
		errors.Is(err, commands.ErrOrderNotEligibleForEarnings),
		errors.Is(err, order.ErrOrderHasOpenIssue):
		status = http.StatusUnprocessableEntity
	}

	return ctx.JSON(status, errorResponse{Code: status, Message: err.Error()})
}

type claimOrderRequest struct {
	WorkerID string `json:"worker_id"`
}

// ClaimOrder handles POST /api/v1/orders/:orderID/claim.
func (s *Server) ClaimOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeError(ctx, err)
	}

	var request claimOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	workerID, err := kernel.UUIDFromString(request.WorkerID)
	if err != nil {
		return writeError(ctx, err)
	}

	command, err := commands.NewClaimOrderCommand(orderID, workerID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.claimOrderHandler.Handle(ctx.Request().Context(), command); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReleaseClaim handles POST /api/v1/orders/:orderID/release.
func (s *Server) ReleaseClaim(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeError(ctx, err)
	}

	var request claimOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	workerID, err := kernel.UUIDFromString(request.WorkerID)
	if err != nil {
		return writeError(ctx, err)
	}

	command, err := commands.NewReleaseClaimCommand(orderID, workerID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.releaseClaimHandler.Handle(ctx.Request().Context(), command); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type reportCheckpointRequest struct {
	WorkerID   string   `json:"worker_id"`
	Checkpoint string   `json:"checkpoint"`
	Lat        *float64 `json:"lat"`
	Lon        *float64 `json:"lon"`
}

// ReportCheckpoint handles POST /api/v1/orders/:orderID/checkpoints.
func (s *Server) ReportCheckpoint(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeError(ctx, err)
	}

	var request reportCheckpointRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	workerID, err := kernel.UUIDFromString(request.WorkerID)
	if err != nil {
		return writeError(ctx, err)
	}

	checkpoint, ok := checkpointFromString(request.Checkpoint)
	if !ok {
		return badRequest(ctx, "unknown checkpoint: "+request.Checkpoint)
	}

	location, err := optionalPoint(request.Lat, request.Lon)
	if err != nil {
		return writeError(ctx, err)
	}

	command, err := commands.NewReportCheckpointCommand(orderID, workerID, checkpoint, location)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.reportCheckpointHandler.Handle(ctx.Request().Context(), command); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type confirmDeliveryRequest struct {
	WorkerID string  `json:"worker_id"`
	Code     string  `json:"code"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
}

// ConfirmDelivery handles POST /api/v1/orders/:orderID/delivery.
func (s *Server) ConfirmDelivery(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeError(ctx, err)
	}

	var request confirmDeliveryRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	workerID, err := kernel.UUIDFromString(request.WorkerID)
	if err != nil {
		return writeError(ctx, err)
	}
	location, err := kernel.NewGeoPoint(request.Lat, request.Lon)
	if err != nil {
		return writeError(ctx, err)
	}

	command, err := commands.NewConfirmDeliveryCommand(orderID, workerID, location,
		order.VerificationCode(request.Code))
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.confirmDeliveryHandler.Handle(ctx.Request().Context(), command); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type confirmReceiptRequest struct {
	BuyerID string `json:"buyer_id"`
}

// ConfirmReceipt handles POST /api/v1/orders/:orderID/receipt.
func (s *Server) ConfirmReceipt(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeError(ctx, err)
	}

	var request confirmReceiptRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	buyerID, err := kernel.UUIDFromString(request.BuyerID)
	if err != nil {
		return writeError(ctx, err)
	}

	command, err := commands.NewConfirmReceiptCommand(orderID, buyerID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.confirmReceiptHandler.Handle(ctx.Request().Context(), command); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type reportIssueRequest struct {
	WorkerID string `json:"worker_id"`
	Kind     string `json:"kind"`
	Note     string `json:"note"`
}

// ReportIssue handles POST /api/v1/orders/:orderID/issues.
func (s *Server) ReportIssue(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeError(ctx, err)
	}

	var request reportIssueRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	workerID, err := kernel.UUIDFromString(request.WorkerID)
	if err != nil {
		return writeError(ctx, err)
	}

	kind, ok := issueKindFromString(request.Kind)
	if !ok {
		return badRequest(ctx, "unknown issue kind: "+request.Kind)
	}

	command, err := commands.NewReportIssueCommand(orderID, workerID, kind, request.Note)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.reportIssueHandler.Handle(ctx.Request().Context(), command); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type resolveIssueRequest struct {
	AdminID    string `json:"admin_id"`
	Resolution string `json:"resolution"`
}

// ResolveIssue handles POST /api/v1/orders/:orderID/issues/resolve.
func (s *Server) ResolveIssue(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeError(ctx, err)
	}

	var request resolveIssueRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	adminID, err := kernel.UUIDFromString(request.AdminID)
	if err != nil {
		return writeError(ctx, err)
	}

	resolution, ok := resolutionFromString(request.Resolution)
	if !ok {
		return badRequest(ctx, "unknown resolution: "+request.Resolution)
	}

	command, err := commands.NewResolveIssueCommand(orderID, adminID, resolution)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.resolveIssueHandler.Handle(ctx.Request().Context(), command); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type recordEarningsRequest struct {
	BeneficiaryID string  `json:"beneficiary_id"`
	EntryType     string  `json:"entry_type"`
	Amount        *string `json:"amount"`
}

// RecordEarnings handles POST /api/v1/orders/:orderID/earnings.
func (s *Server) RecordEarnings(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeError(ctx, err)
	}

	var request recordEarningsRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	beneficiaryID, err := kernel.UUIDFromString(request.BeneficiaryID)
	if err != nil {
		return writeError(ctx, err)
	}

	entryType, ok := entryTypeFromString(request.EntryType)
	if !ok {
		return badRequest(ctx, "unknown entry type: "+request.EntryType)
	}

	var manualAmount *kernel.Money
	if request.Amount != nil {
		amount, amountErr := kernel.NewMoneyFromString(*request.Amount)
		if amountErr != nil {
			return writeError(ctx, amountErr)
		}
		manualAmount = &amount
	}

	command, err := commands.NewRecordEarningsCommand(orderID, beneficiaryID, entryType, manualAmount)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.recordEarningsHandler.Handle(ctx.Request().Context(), command); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

type actorRequest struct {
	ActorID string `json:"actor_id"`
}

// ApproveSettlement handles POST /api/v1/orders/:orderID/settlement.
func (s *Server) ApproveSettlement(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeError(ctx, err)
	}

	var request actorRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	actorID, err := kernel.UUIDFromString(request.ActorID)
	if err != nil {
		return writeError(ctx, err)
	}

	command, err := commands.NewApproveSettlementCommand(orderID, actorID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.approveSettlementHandler.Handle(ctx.Request().Context(), command); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type reviewPaymentRequest struct {
	ReviewerID string `json:"reviewer_id"`
	Approved   bool   `json:"approved"`
}

// ReviewPayment handles POST /api/v1/orders/:orderID/payment-review.
func (s *Server) ReviewPayment(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeError(ctx, err)
	}

	var request reviewPaymentRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	reviewerID, err := kernel.UUIDFromString(request.ReviewerID)
	if err != nil {
		return writeError(ctx, err)
	}

	command, err := commands.NewReviewPaymentCommand(orderID, reviewerID, request.Approved)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.reviewPaymentHandler.Handle(ctx.Request().Context(), command); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type requestWithdrawalRequest struct {
	RequestID string `json:"request_id"`
	Amount    string `json:"amount"`
}

// RequestWithdrawal handles POST /api/v1/workers/:workerID/withdrawals.
// The client supplies the request ID, so a retried submission is answered
// with a conflict instead of a second hold.
func (s *Server) RequestWithdrawal(ctx echo.Context) error {
	workerID, err := kernel.UUIDFromString(ctx.Param("workerID"))
	if err != nil {
		return writeError(ctx, err)
	}

	var request requestWithdrawalRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	requestID, err := kernel.UUIDFromString(request.RequestID)
	if err != nil {
		return writeError(ctx, err)
	}
	amount, err := kernel.NewMoneyFromString(request.Amount)
	if err != nil {
		return writeError(ctx, err)
	}

	command, err := commands.NewRequestWithdrawalCommand(requestID, workerID, amount)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.requestWithdrawalHandler.Handle(ctx.Request().Context(), command); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

type processWithdrawalRequest struct {
	AdminID string `json:"admin_id"`
	Approve bool   `json:"approve"`
	Reason  string `json:"reason"`
}

// ProcessWithdrawal handles POST /api/v1/withdrawals/:requestID/process.
func (s *Server) ProcessWithdrawal(ctx echo.Context) error {
	requestID, err := kernel.UUIDFromString(ctx.Param("requestID"))
	if err != nil {
		return writeError(ctx, err)
	}

	var request processWithdrawalRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	adminID, err := kernel.UUIDFromString(request.AdminID)
	if err != nil {
		return writeError(ctx, err)
	}

	command, err := commands.NewProcessWithdrawalCommand(requestID, adminID, request.Approve, request.Reason)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.processWithdrawalHandler.Handle(ctx.Request().Context(), command); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type claimableOrderResponse struct {
	ID          string  `json:"id"`
	Category    string  `json:"category"`
	PickupLat   float64 `json:"pickup_lat"`
	PickupLon   float64 `json:"pickup_lon"`
	DeliveryLat float64 `json:"delivery_lat"`
	DeliveryLon float64 `json:"delivery_lon"`
	GrossValue  string  `json:"gross_value"`
}

// GetClaimableOrders handles GET /api/v1/orders/claimable.
func (s *Server) GetClaimableOrders(ctx echo.Context) error {
	orders, err := s.claimableOrdersHandler.Handle(ctx.Request().Context(),
		queries.NewGetClaimableOrdersQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]claimableOrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, claimableOrderResponse{
			ID:          o.ID.String(),
			Category:    string(o.Category),
			PickupLat:   o.Pickup.Latitude(),
			PickupLon:   o.Pickup.Longitude(),
			DeliveryLat: o.Delivery.Latitude(),
			DeliveryLon: o.Delivery.Longitude(),
			GrossValue:  o.GrossValue.String(),
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

type historyEntryResponse struct {
	From       string   `json:"from"`
	To         string   `json:"to"`
	Event      string   `json:"event"`
	Actor      string   `json:"actor"`
	Lat        *float64 `json:"lat,omitempty"`
	Lon        *float64 `json:"lon,omitempty"`
	OccurredAt string   `json:"occurred_at"`
}

// GetOrderHistory handles GET /api/v1/orders/:orderID/history.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetOrderHistoryQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	history, err := s.orderHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]historyEntryResponse, 0, len(history))
	for _, record := range history {
		entry := historyEntryResponse{
			From:       record.From.String(),
			To:         record.To.String(),
			Event:      record.Event.String(),
			Actor:      record.Actor.String(),
			OccurredAt: record.OccurredAt.UTC().Format(time.RFC3339),
		}
		if record.Location != nil {
			lat := record.Location.Latitude()
			lon := record.Location.Longitude()
			entry.Lat = &lat
			entry.Lon = &lon
		}
		response = append(response, entry)
	}

	return ctx.JSON(http.StatusOK, response)
}

type balanceResponse struct {
	WorkerID  string `json:"worker_id"`
	Earned    string `json:"earned"`
	Withdrawn string `json:"withdrawn"`
	Held      string `json:"held"`
	Available string `json:"available"`
}

// GetAvailableBalance handles GET /api/v1/workers/:workerID/balance.
func (s *Server) GetAvailableBalance(ctx echo.Context) error {
	workerID, err := kernel.UUIDFromString(ctx.Param("workerID"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetAvailableBalanceQuery(workerID)
	if err != nil {
		return writeError(ctx, err)
	}

	balance, err := s.availableBalanceHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, balanceResponse{
		WorkerID:  balance.WorkerID.String(),
		Earned:    balance.Earned.String(),
		Withdrawn: balance.Withdrawn.String(),
		Held:      balance.Held.String(),
		Available: balance.Available.String(),
	})
}

type pendingWithdrawalResponse struct {
	ID          string `json:"id"`
	WorkerID    string `json:"worker_id"`
	Amount      string `json:"amount"`
	RequestedAt string `json:"requested_at"`
}

// GetPendingWithdrawals handles GET /api/v1/withdrawals/pending.
func (s *Server) GetPendingWithdrawals(ctx echo.Context) error {
	pending, err := s.pendingWithdrawalsHandler.Handle(ctx.Request().Context(),
		queries.NewGetPendingWithdrawalsQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]pendingWithdrawalResponse, 0, len(pending))
	for _, request := range pending {
		response = append(response, pendingWithdrawalResponse{
			ID:          request.ID.String(),
			WorkerID:    request.WorkerID.String(),
			Amount:      request.Amount.String(),
			RequestedAt: request.RequestedAt.UTC().Format(time.RFC3339),
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func optionalPoint(lat, lon *float64) (*kernel.GeoPoint, error) {
	if lat == nil || lon == nil {
		return nil, nil
	}
	point, err := kernel.NewGeoPoint(*lat, *lon)
	if err != nil {
		return nil, err
	}
	return &point, nil
}

func checkpointFromString(s string) (commands.Checkpoint, bool) {
	switch s {
	case "arrived_pickup":
		return commands.CheckpointArrivedPickup, true
	case "picked_up":
		return commands.CheckpointPickedUp, true
	case "in_transit":
		return commands.CheckpointInTransit, true
	case "arrived_delivery":
		return commands.CheckpointArrivedDelivery, true
	default:
		return commands.CheckpointUnknown, false
	}
}

func issueKindFromString(s string) (commands.IssueKind, bool) {
	switch s {
	case "pickup":
		return commands.IssueKindPickup, true
	case "delivery":
		return commands.IssueKindDelivery, true
	default:
		return commands.IssueKindUnknown, false
	}
}

func resolutionFromString(s string) (commands.Resolution, bool) {
	switch s {
	case "resume":
		return commands.ResolutionResume, true
	case "requeue":
		return commands.ResolutionRequeue, true
	case "cancel":
		return commands.ResolutionCancel, true
	default:
		return commands.ResolutionUnknown, false
	}
}

func entryTypeFromString(s string) (commission.Type, bool) {
	switch s {
	case "delivery":
		return commission.TypeDelivery, true
	case "referral":
		return commission.TypeReferral, true
	case "manual_site":
		return commission.TypeManualSite, true
	default:
		return commission.TypeUnknown, false
	}
}
