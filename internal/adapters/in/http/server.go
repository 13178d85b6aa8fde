// Package http exposes the interactive delivery operations over a JSON API.
// Authentication happens at the gateway; the acting user arrives in headers.
package http

import (
	"errors"
	"net/http"
	"time"

	"datadelivery/internal/core/application/usecases/commands"
	"datadelivery/internal/core/application/usecases/queries"
	"datadelivery/internal/core/domain/model/actor"
	"datadelivery/internal/core/domain/model/delivery"
	"datadelivery/internal/core/domain/model/kernel"
	"datadelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Gateway headers carrying the authenticated identity.
const (
	HeaderActorID       = "X-Actor-Id"
	HeaderActorRole     = "X-Actor-Role"
	HeaderActorLocation = "X-Actor-Location"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createDataDeliveryHandler    commands.CreateDataDeliveryCommandHandler
	setDmsVoteHandler            commands.SetDmsVoteCommandHandler
	initDeliveryInfoHandler      commands.InitDeliveryInfoCommandHandler
	setDeliveryInfoStatusHandler commands.SetDeliveryInfoStatusCommandHandler
	syncDeliveryHandler          commands.SyncDeliveryCommandHandler
	extendDeliveryDateHandler    commands.ExtendDeliveryDateCommandHandler
	rateSubDeliveryHandler       commands.RateSubDeliveryCommandHandler
	concludeResearchHandler      commands.ConcludeResearchCommandHandler

	// Query handlers
	getDataDeliveryHandler queries.GetDataDeliveryQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	createDataDeliveryHandler commands.CreateDataDeliveryCommandHandler,
	setDmsVoteHandler commands.SetDmsVoteCommandHandler,
	initDeliveryInfoHandler commands.InitDeliveryInfoCommandHandler,
	setDeliveryInfoStatusHandler commands.SetDeliveryInfoStatusCommandHandler,
	syncDeliveryHandler commands.SyncDeliveryCommandHandler,
	extendDeliveryDateHandler commands.ExtendDeliveryDateCommandHandler,
	rateSubDeliveryHandler commands.RateSubDeliveryCommandHandler,
	concludeResearchHandler commands.ConcludeResearchCommandHandler,
	getDataDeliveryHandler queries.GetDataDeliveryQueryHandler,
) *Server {
	return &Server{
		createDataDeliveryHandler:    createDataDeliveryHandler,
		setDmsVoteHandler:            setDmsVoteHandler,
		initDeliveryInfoHandler:      initDeliveryInfoHandler,
		setDeliveryInfoStatusHandler: setDeliveryInfoStatusHandler,
		syncDeliveryHandler:          syncDeliveryHandler,
		extendDeliveryDateHandler:    extendDeliveryDateHandler,
		rateSubDeliveryHandler:       rateSubDeliveryHandler,
		concludeResearchHandler:      concludeResearchHandler,
		getDataDeliveryHandler:       getDataDeliveryHandler,
	}
}

// RegisterRoutes mounts every delivery route on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	group := e.Group("/api/v1/proposals/:proposalId/delivery")
	group.POST("", s.CreateDataDelivery)
	group.GET("", s.GetDataDelivery)
	group.PUT("/vote", s.SetDmsVote)
	group.POST("/infos", s.InitDeliveryInfo)
	group.PUT("/infos/:infoId/status", s.SetDeliveryInfoStatus)
	group.POST("/infos/:infoId/sync", s.SyncDeliveryInfo)
	group.PUT("/infos/:infoId/date", s.ExtendDeliveryDate)
	group.PUT("/infos/:infoId/sub-deliveries/:subId/rating", s.RateSubDelivery)
	group.POST("/conclude", s.ConcludeResearch)
}

// Error is the JSON body of every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// CreateDataDelivery handles POST /api/v1/proposals/:proposalId/delivery -
// creates the delivery container for a proposal.
func (s *Server) CreateDataDelivery(ctx echo.Context) error {
	proposalID, err := pathUUID(ctx, "proposalId")
	if err != nil {
		return badRequest(ctx, err)
	}

	var body struct {
		ManagementSiteID string `json:"managementSiteId"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewCreateDataDeliveryCommand(proposalID, body.ManagementSiteID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.createDataDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}
	return ctx.NoContent(http.StatusCreated)
}

// GetDataDelivery handles GET /api/v1/proposals/:proposalId/delivery -
// returns the full delivery projection of a proposal.
func (s *Server) GetDataDelivery(ctx echo.Context) error {
	proposalID, err := pathUUID(ctx, "proposalId")
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetDataDeliveryQuery(proposalID)
	if err != nil {
		return badRequest(ctx, err)
	}

	projection, err := s.getDataDeliveryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toDeliveryResponse(projection))
}

// SetDmsVote handles PUT /api/v1/proposals/:proposalId/delivery/vote -
// records the management site's acceptance vote.
func (s *Server) SetDmsVote(ctx echo.Context) error {
	proposalID, err := pathUUID(ctx, "proposalId")
	if err != nil {
		return badRequest(ctx, err)
	}
	requester, err := actorFromHeaders(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var body struct {
		Vote string `json:"vote"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, err)
	}
	vote, err := delivery.AcceptanceStatusFromString(body.Vote)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewSetDmsVoteCommand(proposalID, vote, requester)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.setDmsVoteHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// InitDeliveryInfo handles POST /api/v1/proposals/:proposalId/delivery/infos -
// initiates one delivery round, automated or manual.
func (s *Server) InitDeliveryInfo(ctx echo.Context) error {
	proposalID, err := pathUUID(ctx, "proposalId")
	if err != nil {
		return badRequest(ctx, err)
	}
	requester, err := actorFromHeaders(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}

	var body struct {
		Name         string    `json:"name"`
		DeliveryDate time.Time `json:"deliveryDate"`
		LocationIDs  []string  `json:"locationIds"`
		ManualEntry  bool      `json:"manualEntry"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, err)
	}

	deliveryInfoID := kernel.NewUUID()
	cmd, err := commands.NewInitDeliveryInfoCommand(
		proposalID, deliveryInfoID, body.Name, body.DeliveryDate,
		body.LocationIDs, body.ManualEntry, requester,
	)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.initDeliveryInfoHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, map[string]string{"id": deliveryInfoID.String()})
}

// SetDeliveryInfoStatus handles
// PUT /api/v1/proposals/:proposalId/delivery/infos/:infoId/status -
// forwards or cancels a delivery round.
func (s *Server) SetDeliveryInfoStatus(ctx echo.Context) error {
	proposalID, err := pathUUID(ctx, "proposalId")
	if err != nil {
		return badRequest(ctx, err)
	}
	infoID, err := pathUUID(ctx, "infoId")
	if err != nil {
		return badRequest(ctx, err)
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, err)
	}
	status, err := delivery.StatusFromString(body.Status)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewSetDeliveryInfoStatusCommand(proposalID, infoID, status)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.setDeliveryInfoStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// SyncDeliveryInfo handles
// POST /api/v1/proposals/:proposalId/delivery/infos/:infoId/sync -
// reconciles one delivery round against the coordination system on demand.
func (s *Server) SyncDeliveryInfo(ctx echo.Context) error {
	proposalID, err := pathUUID(ctx, "proposalId")
	if err != nil {
		return badRequest(ctx, err)
	}
	infoID, err := pathUUID(ctx, "infoId")
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewSyncDeliveryCommand(proposalID, infoID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.syncDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ExtendDeliveryDate handles
// PUT /api/v1/proposals/:proposalId/delivery/infos/:infoId/date -
// moves the delivery date and the coordination release window forward.
func (s *Server) ExtendDeliveryDate(ctx echo.Context) error {
	proposalID, err := pathUUID(ctx, "proposalId")
	if err != nil {
		return badRequest(ctx, err)
	}
	infoID, err := pathUUID(ctx, "infoId")
	if err != nil {
		return badRequest(ctx, err)
	}

	var body struct {
		NewDate time.Time `json:"newDate"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewExtendDeliveryDateCommand(proposalID, infoID, body.NewDate)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.extendDeliveryDateHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RateSubDelivery handles
// PUT /api/v1/proposals/:proposalId/delivery/infos/:infoId/sub-deliveries/:subId/rating -
// records the management site's rating of one sub-delivery.
func (s *Server) RateSubDelivery(ctx echo.Context) error {
	proposalID, err := pathUUID(ctx, "proposalId")
	if err != nil {
		return badRequest(ctx, err)
	}
	infoID, err := pathUUID(ctx, "infoId")
	if err != nil {
		return badRequest(ctx, err)
	}
	subID, err := pathUUID(ctx, "subId")
	if err != nil {
		return badRequest(ctx, err)
	}

	var body struct {
		Rating string `json:"rating"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, err)
	}
	rating, err := delivery.SubStatusFromString(body.Rating)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewRateSubDeliveryCommand(proposalID, infoID, subID, rating)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.rateSubDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ConcludeResearch handles POST /api/v1/proposals/:proposalId/delivery/conclude -
// closes every open delivery round when the research project ends.
func (s *Server) ConcludeResearch(ctx echo.Context) error {
	proposalID, err := pathUUID(ctx, "proposalId")
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewConcludeResearchCommand(proposalID)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.concludeResearchHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

func actorFromHeaders(ctx echo.Context) (actor.Actor, error) {
	role, err := actor.RoleFromString(ctx.Request().Header.Get(HeaderActorRole))
	if err != nil {
		return actor.Actor{}, err
	}
	return actor.NewActor(
		ctx.Request().Header.Get(HeaderActorID),
		role,
		ctx.Request().Header.Get(HeaderActorLocation),
	)
}

func badRequest(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
	})
}

// mapError translates application errors to HTTP status codes.
func mapError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrObjectAlreadyExists):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrAccessForbidden):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrInvalidState):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	}

	return ctx.JSON(code, Error{Code: code, Message: err.Error()})
}

type subDeliveryResponse struct {
	ID         string `json:"id"`
	LocationID string `json:"locationId"`
	Status     string `json:"status"`
}

type deliveryInfoResponse struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	DeliveryDate  time.Time             `json:"deliveryDate"`
	Status        string                `json:"status"`
	ManualEntry   bool                  `json:"manualEntry"`
	ResultURL     string                `json:"resultUrl,omitempty"`
	ForwardedAt   *time.Time            `json:"forwardedAt,omitempty"`
	FetchedAt     *time.Time            `json:"fetchedAt,omitempty"`
	LastSyncedAt  *time.Time            `json:"lastSyncedAt,omitempty"`
	SubDeliveries []subDeliveryResponse `json:"subDeliveries"`
}

type deliveryResponse struct {
	ProposalID       string                 `json:"proposalId"`
	ManagementSiteID string                 `json:"managementSiteId"`
	Acceptance       string                 `json:"acceptance"`
	Infos            []deliveryInfoResponse `json:"infos"`
}

func toDeliveryResponse(projection queries.GetDataDeliveryQueryResponse) deliveryResponse {
	infos := make([]deliveryInfoResponse, len(projection.Infos))
	for i, info := range projection.Infos {
		subs := make([]subDeliveryResponse, len(info.SubDeliveries))
		for j, sub := range info.SubDeliveries {
			subs[j] = subDeliveryResponse{
				ID:         sub.ID.String(),
				LocationID: sub.LocationID,
				Status:     sub.Status,
			}
		}

		infos[i] = deliveryInfoResponse{
			ID:            info.ID.String(),
			Name:          info.Name,
			DeliveryDate:  info.DeliveryDate,
			Status:        info.Status,
			ManualEntry:   info.ManualEntry,
			ResultURL:     info.ResultURL,
			ForwardedAt:   info.ForwardedAt,
			FetchedAt:     info.FetchedAt,
			LastSyncedAt:  info.LastSyncedAt,
			SubDeliveries: subs,
		}
	}

	return deliveryResponse{
		ProposalID:       projection.ProposalID.String(),
		ManagementSiteID: projection.ManagementSiteID,
		Acceptance:       projection.Acceptance,
		Infos:            infos,
	}
}
