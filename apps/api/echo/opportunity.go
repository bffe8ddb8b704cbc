package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/funil/core/opportunity"
	"github.com/trezcool/funil/core/proposal"
)

type opportunityApi struct {
	svc       *opportunity.Service
	proposals *proposal.Service
	validate  *validator.Validate
}

// CardResponse is a card with the title of the column holding it.
type CardResponse[T any] struct {
	Card  T      `json:"card"`
	Stage string `json:"stage"`
}

func registerOpportunityAPI(g *echo.Group, svc *opportunity.Service, proposals *proposal.Service, validate *validator.Validate) {
	api := opportunityApi{svc: svc, proposals: proposals, validate: validate}

	og := g.Group("/opportunities")
	og.GET("", api.query)
	og.POST("", api.create)
	og.GET("/:id", api.retrieve)
	og.PUT("/:id", api.update)
	og.DELETE("/:id", api.destroy)
	og.POST("/:id/move", api.move)
	og.GET("/:id/proposals", api.queryProposals)
}

func (api *opportunityApi) query(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.Columns())
}

func (api *opportunityApi) create(ctx echo.Context) error {
	var data opportunity.Card
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to opportunity.Card")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, api.svc.Create(data))
}

func (api *opportunityApi) retrieve(ctx echo.Context) error {
	card, stage, ok := api.svc.GetByID(ctx.Param("id"))
	if !ok {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, CardResponse[opportunity.Card]{Card: card, Stage: stage})
}

func (api *opportunityApi) update(ctx echo.Context) error {
	var data opportunity.Card
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to opportunity.Card")
	}
	data.ID = ctx.Param("id")
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	card, ok := api.svc.Update(data)
	if !ok {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, card)
}

func (api *opportunityApi) move(ctx echo.Context) error {
	var data opportunity.MoveCard
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to opportunity.MoveCard")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	id := ctx.Param("id")
	if !api.svc.Move(id, data.From, data.To, data.Patch) {
		return errHttpNotFound
	}
	card, stage, ok := api.svc.GetByID(id)
	if !ok {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, CardResponse[opportunity.Card]{Card: card, Stage: stage})
}

func (api *opportunityApi) destroy(ctx echo.Context) error {
	if !api.svc.Delete(ctx.Param("id")) {
		return errHttpNotFound
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *opportunityApi) queryProposals(ctx echo.Context) error {
	id := ctx.Param("id")
	if _, _, ok := api.svc.GetByID(id); !ok {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, api.proposals.ByOpportunity(id))
}
