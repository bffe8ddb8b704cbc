package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/funil/core/lead"
)

type leadApi struct {
	svc      *lead.Service
	validate *validator.Validate
}

func registerLeadAPI(g *echo.Group, svc *lead.Service, validate *validator.Validate) {
	api := leadApi{svc: svc, validate: validate}

	lg := g.Group("/leads")
	lg.GET("", api.query)
	lg.POST("", api.create)
	lg.GET("/:id", api.retrieve)
	lg.PUT("/:id", api.update)
	lg.DELETE("/:id", api.destroy)
	lg.POST("/:id/move", api.move)
}

func (api *leadApi) query(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.Columns())
}

func (api *leadApi) create(ctx echo.Context) error {
	var data lead.Card
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to lead.Card")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, api.svc.Create(data))
}

func (api *leadApi) retrieve(ctx echo.Context) error {
	card, stage, ok := api.svc.GetByID(ctx.Param("id"))
	if !ok {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, CardResponse[lead.Card]{Card: card, Stage: stage})
}

func (api *leadApi) update(ctx echo.Context) error {
	var data lead.Card
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to lead.Card")
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

func (api *leadApi) move(ctx echo.Context) error {
	var data lead.MoveCard
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to lead.MoveCard")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	id := ctx.Param("id")
	if !api.svc.Move(id, data.From, data.To) {
		return errHttpNotFound
	}
	card, stage, ok := api.svc.GetByID(id)
	if !ok {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, CardResponse[lead.Card]{Card: card, Stage: stage})
}

func (api *leadApi) destroy(ctx echo.Context) error {
	if !api.svc.Delete(ctx.Param("id")) {
		return errHttpNotFound
	}
	return ctx.NoContent(http.StatusNoContent)
}
