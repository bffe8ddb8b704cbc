package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/funil/core"
	"github.com/trezcool/funil/core/proposal"
)

var (
	errUnknownOpportunity = core.NewValidationError(nil, core.FieldError{Field: "opportunity_id", Error: "unknown opportunity"})
	errProposalExists     = core.NewValidationError(nil, core.FieldError{Field: "id", Error: "already exists"})
	errUnknownStatus      = core.NewValidationError(nil, core.FieldError{Field: "status", Error: "unknown proposal status"})
)

type proposalApi struct {
	svc      *proposal.Service
	validate *validator.Validate
}

func registerProposalAPI(g *echo.Group, svc *proposal.Service, validate *validator.Validate) {
	api := proposalApi{svc: svc, validate: validate}

	pg := g.Group("/proposals")
	pg.GET("", api.query)
	pg.POST("", api.create)
	pg.GET("/:id", api.retrieve)
	pg.PUT("/:id", api.update)
	pg.POST("/:id/move", api.move)
}

func (api *proposalApi) query(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.Columns())
}

func (api *proposalApi) create(ctx echo.Context) error {
	var data proposal.Proposal
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to proposal.Proposal")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	p, err := api.svc.Create(data)
	switch errors.Cause(err) {
	case nil:
		return ctx.JSON(http.StatusCreated, p)
	case proposal.ErrUnknownOpportunity:
		return errUnknownOpportunity
	case proposal.ErrDuplicateID:
		return errProposalExists
	case proposal.ErrUnknownStatus:
		return errUnknownStatus
	default:
		return errors.Wrap(err, "creating proposal")
	}
}

func (api *proposalApi) retrieve(ctx echo.Context) error {
	p, ok := api.svc.GetByID(ctx.Param("id"))
	if !ok {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *proposalApi) update(ctx echo.Context) error {
	var data proposal.Patch
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to proposal.Patch")
	}
	data.ID = ctx.Param("id")
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	p, ok := api.svc.Update(data)
	if !ok {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *proposalApi) move(ctx echo.Context) error {
	var data proposal.MoveProposal
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to proposal.MoveProposal")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	p, ok := api.svc.Move(ctx.Param("id"), data.From, data.To)
	if !ok {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, p)
}
