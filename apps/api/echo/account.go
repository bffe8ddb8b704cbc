package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/funil/core/account"
)

type accountApi struct {
	svc      *account.Service
	validate *validator.Validate
}

func registerAccountAPI(g *echo.Group, svc *account.Service, validate *validator.Validate) {
	api := accountApi{svc: svc, validate: validate}

	ag := g.Group("/accounts")
	ag.GET("", api.query)
	ag.POST("", api.create)
	ag.GET("/:id", api.retrieve)
	ag.PUT("/:id", api.update)
	ag.DELETE("/:id", api.destroy)
}

func (api *accountApi) query(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.QueryAll())
}

func (api *accountApi) create(ctx echo.Context) error {
	var data account.Account
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to account.Account")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, api.svc.Create(data))
}

func (api *accountApi) retrieve(ctx echo.Context) error {
	a, ok := api.svc.GetByID(ctx.Param("id"))
	if !ok {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *accountApi) update(ctx echo.Context) error {
	var data account.Account
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to account.Account")
	}
	data.ID = ctx.Param("id")
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	a, ok := api.svc.Update(data)
	if !ok {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *accountApi) destroy(ctx echo.Context) error {
	if !api.svc.Delete(ctx.Param("id")) {
		return errHttpNotFound
	}
	return ctx.NoContent(http.StatusNoContent)
}
