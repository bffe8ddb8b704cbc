package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/funil/core/contact"
)

type contactApi struct {
	svc      *contact.Service
	validate *validator.Validate
}

func registerContactAPI(g *echo.Group, svc *contact.Service, validate *validator.Validate) {
	api := contactApi{svc: svc, validate: validate}

	cg := g.Group("/contacts")
	cg.GET("", api.query)
	cg.POST("", api.create)
	cg.GET("/:id", api.retrieve)
	cg.PUT("/:id", api.update)
	cg.DELETE("/:id", api.destroy)
}

func (api *contactApi) query(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.QueryAll())
}

func (api *contactApi) create(ctx echo.Context) error {
	var data contact.Contact
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to contact.Contact")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, api.svc.Create(data))
}

func (api *contactApi) retrieve(ctx echo.Context) error {
	c, ok := api.svc.GetByID(ctx.Param("id"))
	if !ok {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *contactApi) update(ctx echo.Context) error {
	var data contact.Contact
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to contact.Contact")
	}
	data.ID = ctx.Param("id")
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	c, ok := api.svc.Update(data)
	if !ok {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *contactApi) destroy(ctx echo.Context) error {
	if !api.svc.Delete(ctx.Param("id")) {
		return errHttpNotFound
	}
	return ctx.NoContent(http.StatusNoContent)
}
