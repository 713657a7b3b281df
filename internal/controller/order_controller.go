package controller

import (
	"pharaohvault-be/internal/dto"
	"pharaohvault-be/internal/pkg/serverutils"
	"pharaohvault-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IOrderController interface {
	RegisterRoutes(r fiber.Router)
	Query(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Await(ctx *fiber.Ctx) error
}

type orderController struct {
	service service.IOrderService
	auth    fiber.Handler
}

func NewOrderController(service service.IOrderService, auth fiber.Handler) IOrderController {
	return &orderController{service: service, auth: auth}
}

func (c *orderController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/orders")
	h.Use(c.auth)
	h.Get("", c.Query)
	h.Get("/:id", c.Show)
	h.Get("/:id/await", c.Await)
}

func (c *orderController) Query(ctx *fiber.Ctx) error {
	sess, err := serverutils.CurrentSession(ctx)
	if err != nil {
		return err
	}

	var query dto.OrderQuery
	if err := ctx.QueryParser(&query); err != nil {
		return err
	}

	res, err := c.service.Query(ctx.UserContext(), sess, query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get orders", res))
}

func (c *orderController) Show(ctx *fiber.Ctx) error {
	sess, err := serverutils.CurrentSession(ctx)
	if err != nil {
		return err
	}
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.Get(ctx.UserContext(), sess, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get order", res))
}

// Await blocks until the payment settles or the poll budget is spent.
func (c *orderController) Await(ctx *fiber.Ctx) error {
	sess, err := serverutils.CurrentSession(ctx)
	if err != nil {
		return err
	}
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.Await(ctx.UserContext(), sess, id)
	if err != nil {
		return err
	}

	message := "Payment confirmed"
	if res.Outcome != service.OutcomeSucceeded {
		message = "Your order is being reviewed"
	}
	return ctx.JSON(serverutils.SuccessResponse(message, res))
}
