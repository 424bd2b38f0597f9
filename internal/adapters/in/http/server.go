// Package http exposes the order lifecycle over a REST API. Handlers are a
// thin translation layer: bind and validate the request, build a command or
// query, invoke its handler, and map the outcome to a status code. No
// business rules live here.
package http

import (
	"encoding/json"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/changerequest"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server holds the command and query handlers behind the REST API.
type Server struct {
	createOrderHandler   commands.CreateOrderCommandHandler
	transitionHandler    commands.TransitionOrderCommandHandler
	createCRHandler      commands.CreateChangeRequestCommandHandler
	decideCRHandler      commands.DecideChangeRequestCommandHandler
	rollbackHandler      commands.RollbackVersionCommandHandler
	getOrderHandler      queries.GetOrderQueryHandler
	getGatesHandler      queries.GetOrderGatesQueryHandler
	getVersionsHandler   queries.GetVersionHistoryQueryHandler
	getChangeReqsHandler queries.GetChangeRequestsQueryHandler
	getJournalHandler    queries.GetJournalQueryHandler
}

// NewServer creates an HTTP server over the given handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	transitionHandler commands.TransitionOrderCommandHandler,
	createCRHandler commands.CreateChangeRequestCommandHandler,
	decideCRHandler commands.DecideChangeRequestCommandHandler,
	rollbackHandler commands.RollbackVersionCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getGatesHandler queries.GetOrderGatesQueryHandler,
	getVersionsHandler queries.GetVersionHistoryQueryHandler,
	getChangeReqsHandler queries.GetChangeRequestsQueryHandler,
	getJournalHandler queries.GetJournalQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:   createOrderHandler,
		transitionHandler:    transitionHandler,
		createCRHandler:      createCRHandler,
		decideCRHandler:      decideCRHandler,
		rollbackHandler:      rollbackHandler,
		getOrderHandler:      getOrderHandler,
		getGatesHandler:      getGatesHandler,
		getVersionsHandler:   getVersionsHandler,
		getChangeReqsHandler: getChangeReqsHandler,
		getJournalHandler:    getJournalHandler,
	}
}

// RegisterRoutes wires every route onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Validator = NewRequestValidator()

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/transitions", s.TransitionOrder)
	api.GET("/orders/:id/gates", s.GetOrderGates)
	api.GET("/orders/:id/versions", s.GetVersionHistory)
	api.POST("/orders/:id/rollback", s.RollbackVersion)
	api.POST("/orders/:id/change-requests", s.CreateChangeRequest)
	api.GET("/orders/:id/change-requests", s.GetChangeRequests)
	api.GET("/orders/:id/journal", s.GetJournal)
	api.POST("/change-requests/:id/decision", s.DecideChangeRequest)

	e.GET("/health", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	})
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := bind(ctx, &req); err != nil {
		return respondError(ctx, err)
	}

	ownerRole, err := order.RoleFromString(req.OwnerRole)
	if err != nil {
		return respondError(ctx, err)
	}

	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("actorId", err))
	}

	var snapshot order.Snapshot
	if err = json.Unmarshal(req.Snapshot, &snapshot); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("snapshot", err))
	}

	orderID := kernel.NewUUID()

	cmd, err := commands.NewCreateOrderCommand(orderID, req.Number, ownerRole, actorID, snapshot)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: orderID.String()})
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := OrderResponse{
		ID:              result.ID.String(),
		Number:          result.Number,
		Status:          result.Status,
		OwnerRole:       result.OwnerRole,
		StatusChangedAt: result.StatusChangedAt,
		UpdatedAt:       result.UpdatedAt,
	}
	if result.AssignedTo != nil {
		assignedTo := result.AssignedTo.String()
		response.AssignedTo = &assignedTo
	}

	return ctx.JSON(http.StatusOK, response)
}

// TransitionOrder handles POST /api/v1/orders/:id/transitions.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var req TransitionRequest
	if err = bind(ctx, &req); err != nil {
		return respondError(ctx, err)
	}

	actorID, actorRole, err := actor(req.ActorID, req.ActorRole)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewTransitionOrderCommand(
		orderID, services.TransitionKey(req.Key), actorID, actorRole)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.transitionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrderGates handles GET /api/v1/orders/:id/gates.
func (s *Server) GetOrderGates(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetOrderGatesQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.getGatesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, GatesResponse{Gates: result.Gates})
}

// GetVersionHistory handles GET /api/v1/orders/:id/versions.
func (s *Server) GetVersionHistory(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetVersionHistoryQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	entries, err := s.getVersionsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]VersionResponse, len(entries))
	for i, entry := range entries {
		snapshot, marshalErr := json.Marshal(entry.Snapshot)
		if marshalErr != nil {
			return respondError(ctx, marshalErr)
		}

		response[i] = VersionResponse{
			Version:   entry.Version,
			CreatedAt: entry.CreatedAt,
			ActorID:   entry.ActorID.String(),
			Comment:   entry.Comment,
			Snapshot:  snapshot,
		}
		if entry.ChangeRequestID != nil {
			crID := entry.ChangeRequestID.String()
			response[i].ChangeRequestID = &crID
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// RollbackVersion handles POST /api/v1/orders/:id/rollback.
func (s *Server) RollbackVersion(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var req RollbackRequest
	if err = bind(ctx, &req); err != nil {
		return respondError(ctx, err)
	}

	actorID, err := kernel.UUIDFromString(req.ActorID)
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("actorId", err))
	}

	cmd, err := commands.NewRollbackVersionCommand(orderID, req.TargetVersion, req.Reason, actorID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.rollbackHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateChangeRequest handles POST /api/v1/orders/:id/change-requests.
func (s *Server) CreateChangeRequest(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var req CreateChangeRequestRequest
	if err = bind(ctx, &req); err != nil {
		return respondError(ctx, err)
	}

	actorID, actorRole, err := actor(req.ActorID, req.ActorRole)
	if err != nil {
		return respondError(ctx, err)
	}

	edits, err := changerequest.UnmarshalEdits(req.Edits)
	if err != nil {
		return respondError(ctx, err)
	}

	changeRequestID := kernel.NewUUID()

	cmd, err := commands.NewCreateChangeRequestCommand(
		changeRequestID, orderID, req.Rationale, edits, req.BaseVersion, actorID, actorRole)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.createCRHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: changeRequestID.String()})
}

// GetChangeRequests handles GET /api/v1/orders/:id/change-requests.
func (s *Server) GetChangeRequests(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetChangeRequestsQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	results, err := s.getChangeReqsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]ChangeRequestResponse, len(results))
	for i, cr := range results {
		response[i] = ChangeRequestResponse{
			ID:            cr.ID.String(),
			Status:        cr.Status,
			Rationale:     cr.Rationale,
			BaseVersion:   cr.BaseVersion,
			CreatedByRole: cr.CreatedByRole,
			CreatedAt:     cr.CreatedAt,
			AppliedAt:     cr.AppliedAt,
			RejectedAt:    cr.RejectedAt,
			Edits:         cr.Edits,
			Approvals:     cr.Approvals,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetJournal handles GET /api/v1/orders/:id/journal.
func (s *Server) GetJournal(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetJournalQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	events, err := s.getJournalHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]JournalEventResponse, len(events))
	for i, event := range events {
		response[i] = JournalEventResponse{
			ID:         event.ID.String(),
			OccurredAt: event.OccurredAt,
			EventType:  event.EventType,
			Payload:    event.Payload,
		}
		if event.ActorID != nil {
			actorID := event.ActorID.String()
			response[i].ActorID = &actorID
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// DecideChangeRequest handles POST /api/v1/change-requests/:id/decision.
func (s *Server) DecideChangeRequest(ctx echo.Context) error {
	changeRequestID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var req DecisionRequest
	if err = bind(ctx, &req); err != nil {
		return respondError(ctx, err)
	}

	actorID, actorRole, err := actor(req.ActorID, req.ActorRole)
	if err != nil {
		return respondError(ctx, err)
	}

	decision, err := changerequest.DecisionFromString(req.Decision)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewDecideChangeRequestCommand(
		changeRequestID, decision, actorID, actorRole, req.Comment)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.decideCRHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// bind decodes and validates a request body.
func bind(ctx echo.Context, req any) error {
	if err := ctx.Bind(req); err != nil {
		return err
	}

	return ctx.Validate(req)
}

func pathUUID(ctx echo.Context, param string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param(param))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(param, err)
	}

	return id, nil
}

func actor(rawID, rawRole string) (kernel.UUID, order.Role, error) {
	actorID, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return kernel.UUID{}, order.RoleUnknown, errs.NewValueIsInvalidErrorWithCause("actorId", err)
	}

	actorRole, err := order.RoleFromString(rawRole)
	if err != nil {
		return kernel.UUID{}, order.RoleUnknown, err
	}

	return actorID, actorRole, nil
}
