package controller

import (
	"pharaohvault-be/internal/pkg/serverutils"
	"pharaohvault-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IMetalPriceController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Sync(ctx *fiber.Ctx) error
}

type metalPriceController struct {
	service service.IMetalPriceService
	auth    fiber.Handler
}

func NewMetalPriceController(service service.IMetalPriceService, auth fiber.Handler) IMetalPriceController {
	return &metalPriceController{service: service, auth: auth}
}

func (c *metalPriceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/metal-prices")
	h.Get("", c.List)
	h.Post("/sync", c.auth, serverutils.RequireAdmin, c.Sync)
}

func (c *metalPriceController) List(ctx *fiber.Ctx) error {
	res, err := c.service.List(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get metal prices", res))
}

func (c *metalPriceController) Sync(ctx *fiber.Ctx) error {
	res, err := c.service.Sync(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Metal prices updated", res))
}
