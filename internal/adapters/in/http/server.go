// Package http exposes the fulfillment workflow over a REST API. Handlers
// translate payloads into commands and queries and map errors to status
// codes; all business rules live behind the use case layer.
package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/invoice"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createInvoiceHandler    commands.CreateInvoiceCommandHandler
	claimStageHandler       commands.ClaimStageCommandHandler
	completeStageHandler    commands.CompleteStageCommandHandler
	returnToBillingHandler  commands.ReturnToBillingCommandHandler
	markReInvoicedHandler   commands.MarkReInvoicedCommandHandler
	resubmitInvoiceHandler  commands.ResubmitInvoiceCommandHandler
	dispatchDirectHandler   commands.DispatchDirectCommandHandler
	dispatchCourierHandler  commands.DispatchCourierCommandHandler
	dispatchInternalHandler commands.DispatchInternalCommandHandler
	uploadSlipHandler       commands.UploadSlipCommandHandler
	confirmInternalHandler  commands.ConfirmInternalCommandHandler

	// Query handlers
	getInvoiceHandler           queries.GetInvoiceQueryHandler
	listInvoicesByStatusHandler queries.ListInvoicesByStatusQueryHandler
	listConsiderListHandler     queries.ListConsiderListQueryHandler
	listReturnsHandler          queries.ListReturnsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	createInvoiceHandler commands.CreateInvoiceCommandHandler,
	claimStageHandler commands.ClaimStageCommandHandler,
	completeStageHandler commands.CompleteStageCommandHandler,
	returnToBillingHandler commands.ReturnToBillingCommandHandler,
	markReInvoicedHandler commands.MarkReInvoicedCommandHandler,
	resubmitInvoiceHandler commands.ResubmitInvoiceCommandHandler,
	dispatchDirectHandler commands.DispatchDirectCommandHandler,
	dispatchCourierHandler commands.DispatchCourierCommandHandler,
	dispatchInternalHandler commands.DispatchInternalCommandHandler,
	uploadSlipHandler commands.UploadSlipCommandHandler,
	confirmInternalHandler commands.ConfirmInternalCommandHandler,
	getInvoiceHandler queries.GetInvoiceQueryHandler,
	listInvoicesByStatusHandler queries.ListInvoicesByStatusQueryHandler,
	listConsiderListHandler queries.ListConsiderListQueryHandler,
	listReturnsHandler queries.ListReturnsQueryHandler,
) *Server {
	return &Server{
		createInvoiceHandler:        createInvoiceHandler,
		claimStageHandler:           claimStageHandler,
		completeStageHandler:        completeStageHandler,
		returnToBillingHandler:      returnToBillingHandler,
		markReInvoicedHandler:       markReInvoicedHandler,
		resubmitInvoiceHandler:      resubmitInvoiceHandler,
		dispatchDirectHandler:       dispatchDirectHandler,
		dispatchCourierHandler:      dispatchCourierHandler,
		dispatchInternalHandler:     dispatchInternalHandler,
		uploadSlipHandler:           uploadSlipHandler,
		confirmInternalHandler:      confirmInternalHandler,
		getInvoiceHandler:           getInvoiceHandler,
		listInvoicesByStatusHandler: listInvoicesByStatusHandler,
		listConsiderListHandler:     listConsiderListHandler,
		listReturnsHandler:          listReturnsHandler,
	}
}

// RegisterRoutes mounts all API routes on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/invoices", s.CreateInvoice)
	api.GET("/invoices", s.ListInvoices)
	api.GET("/invoices/:invoiceNo", s.GetInvoice)
	api.GET("/invoices/:invoiceNo/returns", s.ListReturns)

	api.POST("/invoices/:invoiceNo/claim", s.ClaimStage)
	api.POST("/invoices/:invoiceNo/complete", s.CompleteStage)
	api.POST("/invoices/:invoiceNo/return", s.ReturnToBilling)
	api.POST("/invoices/:invoiceNo/reinvoiced", s.MarkReInvoiced)
	api.POST("/invoices/:invoiceNo/resubmit", s.ResubmitInvoice)

	api.POST("/invoices/:invoiceNo/dispatch/direct", s.DispatchDirect)
	api.POST("/invoices/:invoiceNo/dispatch/courier", s.DispatchCourier)
	api.POST("/invoices/:invoiceNo/dispatch/internal", s.DispatchInternal)
	api.POST("/invoices/:invoiceNo/delivery/slip", s.UploadSlip)
	api.POST("/invoices/:invoiceNo/delivery/confirm", s.ConfirmInternal)

	api.GET("/consider-list", s.ListConsiderList)
}

// CreateInvoice handles POST /api/v1/invoices - imports a billed invoice.
func (s *Server) CreateInvoice(ctx echo.Context) error {
	var req CreateInvoiceRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	priority, err := invoice.PriorityFromString(req.Priority)
	if err != nil {
		return writeError(ctx, err)
	}

	lineItems := make([]invoice.LineItem, 0, len(req.LineItems))
	for _, li := range req.LineItems {
		item, itemErr := invoice.NewLineItem(
			li.Name, li.Code, li.Quantity, li.UnitPrice, li.BatchNo, li.Expiry, li.ShelfLocation)
		if itemErr != nil {
			return writeError(ctx, itemErr)
		}
		lineItems = append(lineItems, item)
	}

	cmd, err := commands.NewCreateInvoiceCommand(
		req.InvoiceNo, req.InvoiceDate, priority, req.Remarks, lineItems)
	if err != nil {
		return writeError(ctx, err)
	}

	id, err := s.createInvoiceHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: id.String()})
}

// GetInvoice handles GET /api/v1/invoices/:invoiceNo - full invoice view.
func (s *Server) GetInvoice(ctx echo.Context) error {
	query, err := queries.NewGetInvoiceQuery(ctx.Param("invoiceNo"))
	if err != nil {
		return writeError(ctx, err)
	}

	view, err := s.getInvoiceHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toInvoiceResponse(view))
}

// ListInvoices handles GET /api/v1/invoices?status=... - status worklists.
func (s *Server) ListInvoices(ctx echo.Context) error {
	status, err := invoice.StatusFromString(ctx.QueryParam("status"))
	if err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("status", err))
	}

	query, err := queries.NewListInvoicesByStatusQuery(status)
	if err != nil {
		return writeError(ctx, err)
	}

	invoices, err := s.listInvoicesByStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]InvoiceSummaryResponse, len(invoices))
	for i, inv := range invoices {
		response[i] = InvoiceSummaryResponse{
			ID:          inv.ID.String(),
			InvoiceNo:   inv.InvoiceNo,
			InvoiceDate: inv.InvoiceDate,
			Priority:    inv.Priority,
			Remarks:     inv.Remarks,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ListReturns handles GET /api/v1/invoices/:invoiceNo/returns.
func (s *Server) ListReturns(ctx echo.Context) error {
	query, err := queries.NewListReturnsQuery(ctx.Param("invoiceNo"))
	if err != nil {
		return writeError(ctx, err)
	}

	records, err := s.listReturnsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]ReturnResponse, len(records))
	for i, record := range records {
		response[i] = toReturnResponse(record)
	}

	return ctx.JSON(http.StatusOK, response)
}

// ClaimStage handles POST /api/v1/invoices/:invoiceNo/claim.
func (s *Server) ClaimStage(ctx echo.Context) error {
	var req StageRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	stage, err := kernel.StageFromString(req.Stage)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewClaimStageCommand(ctx.Param("invoiceNo"), stage, req.ActorEmail)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.claimStageHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteStage handles POST /api/v1/invoices/:invoiceNo/complete.
func (s *Server) CompleteStage(ctx echo.Context) error {
	var req StageRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	stage, err := kernel.StageFromString(req.Stage)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCompleteStageCommand(ctx.Param("invoiceNo"), stage, req.ActorEmail, req.Notes)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.completeStageHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReturnToBilling handles POST /api/v1/invoices/:invoiceNo/return.
func (s *Server) ReturnToBilling(ctx echo.Context) error {
	var req ReturnRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	stage, err := kernel.StageFromString(req.Stage)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewReturnToBillingCommand(ctx.Param("invoiceNo"), stage, req.ActorEmail, req.Reason)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.returnToBillingHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkReInvoiced handles POST /api/v1/invoices/:invoiceNo/reinvoiced.
// Called by the billing system when it finishes correcting a returned
// invoice.
func (s *Server) MarkReInvoiced(ctx echo.Context) error {
	cmd, err := commands.NewMarkReInvoicedCommand(ctx.Param("invoiceNo"))
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.markReInvoicedHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ResubmitInvoice handles POST /api/v1/invoices/:invoiceNo/resubmit.
func (s *Server) ResubmitInvoice(ctx echo.Context) error {
	var req ResubmitRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewResubmitInvoiceCommand(ctx.Param("invoiceNo"), req.ActorEmail)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.resubmitInvoiceHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DispatchDirect handles POST /api/v1/invoices/:invoiceNo/dispatch/direct.
func (s *Server) DispatchDirect(ctx echo.Context) error {
	var req DispatchDirectRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var subMode delivery.SubMode
	switch req.SubMode {
	case "Patient":
		subMode = delivery.SubModePatient
	case "Company":
		subMode = delivery.SubModeCompany
	default:
		return writeError(ctx, errs.NewValueIsInvalidError("sub_mode"))
	}

	var company *delivery.Company
	if subMode == delivery.SubModeCompany {
		company = &delivery.Company{
			Name:           req.CompanyName,
			RegistrationID: req.CompanyRegistID,
		}
	}

	cmd, err := commands.NewDispatchDirectCommand(
		ctx.Param("invoiceNo"),
		req.ActorEmail,
		subMode,
		delivery.Pickup{
			Username: req.PickupUsername,
			Name:     req.PickupName,
			Phone:    req.PickupPhone,
		},
		company,
	)
	if err != nil {
		return writeError(ctx, err)
	}

	id, err := s.dispatchDirectHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: id.String()})
}

// DispatchCourier handles POST /api/v1/invoices/:invoiceNo/dispatch/courier.
func (s *Server) DispatchCourier(ctx echo.Context) error {
	var req DispatchCourierRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewDispatchCourierCommand(
		ctx.Param("invoiceNo"), req.ActorEmail, courierID, req.TrackingNo)
	if err != nil {
		return writeError(ctx, err)
	}

	id, err := s.dispatchCourierHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: id.String()})
}

// DispatchInternal handles POST /api/v1/invoices/:invoiceNo/dispatch/internal.
func (s *Server) DispatchInternal(ctx echo.Context) error {
	var req DispatchInternalRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewDispatchInternalCommand(
		ctx.Param("invoiceNo"), req.ActorEmail, req.StaffEmail)
	if err != nil {
		return writeError(ctx, err)
	}

	id, err := s.dispatchInternalHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: id.String()})
}

// UploadSlip handles POST /api/v1/invoices/:invoiceNo/delivery/slip.
func (s *Server) UploadSlip(ctx echo.Context) error {
	var req UploadSlipRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUploadSlipCommand(ctx.Param("invoiceNo"), req.ActorEmail, req.SlipRef)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.uploadSlipHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ConfirmInternal handles POST /api/v1/invoices/:invoiceNo/delivery/confirm.
func (s *Server) ConfirmInternal(ctx echo.Context) error {
	var req ConfirmInternalRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewConfirmInternalCommand(ctx.Param("invoiceNo"), req.ActorEmail)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.confirmInternalHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ListConsiderList handles GET /api/v1/consider-list.
func (s *Server) ListConsiderList(ctx echo.Context) error {
	pending, err := s.listConsiderListHandler.Handle(
		ctx.Request().Context(), queries.NewListConsiderListQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]ConsiderListItemResponse, len(pending))
	for i, item := range pending {
		response[i] = ConsiderListItemResponse{
			SessionID:    item.SessionID.String(),
			InvoiceID:    item.InvoiceID.String(),
			InvoiceNo:    item.InvoiceNo,
			DeliveryType: item.DeliveryType,
			TrackingNo:   item.TrackingNo,
			StartedAt:    item.StartedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func toInvoiceResponse(view queries.GetInvoiceQueryResponse) InvoiceResponse {
	response := InvoiceResponse{
		ID:            view.ID.String(),
		InvoiceNo:     view.InvoiceNo,
		InvoiceDate:   view.InvoiceDate,
		Priority:      view.Priority,
		Remarks:       view.Remarks,
		Status:        view.Status,
		BillingStatus: view.BillingStatus,
		TotalOverride: view.TotalOverride,
		LineItems:     make([]LineItemResponse, len(view.LineItems)),
		Sessions:      make([]StageSessionResponse, len(view.Sessions)),
		Returns:       make([]ReturnResponse, len(view.Returns)),
	}

	for i, li := range view.LineItems {
		response.LineItems[i] = LineItemResponse{
			Name:          li.Name,
			Code:          li.Code,
			Quantity:      li.Quantity,
			UnitPrice:     li.UnitPrice,
			BatchNo:       li.BatchNo,
			ShelfLocation: li.ShelfLocation,
		}
	}

	for i, sess := range view.Sessions {
		response.Sessions[i] = StageSessionResponse{
			ID:         sess.ID.String(),
			Stage:      sess.Stage,
			AssignedTo: sess.AssignedTo.String(),
			State:      sess.State,
			StartedAt:  sess.StartedAt,
			EndedAt:    sess.EndedAt,
			Notes:      sess.Notes,
		}
	}

	for i, record := range view.Returns {
		response.Returns[i] = toReturnResponse(record)
	}

	return response
}

func toReturnResponse(record queries.ReturnView) ReturnResponse {
	return ReturnResponse{
		ID:       record.ID.String(),
		Stage:    record.Stage,
		ActorID:  record.ActorID.String(),
		Reason:   record.Reason,
		RaisedAt: record.RaisedAt,
	}
}
