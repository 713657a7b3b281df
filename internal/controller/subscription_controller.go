package controller

import (
	"pharaohvault-be/internal/dto"
	"pharaohvault-be/internal/pkg/serverutils"
	"pharaohvault-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISubscriptionController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	ModifyInvestment(ctx *fiber.Ctx) error
	Orders(ctx *fiber.Ctx) error
}

type subscriptionController struct {
	service service.ISubscriptionService
	orders  service.IOrderService
	auth    fiber.Handler
}

func NewSubscriptionController(service service.ISubscriptionService, orders service.IOrderService, auth fiber.Handler) ISubscriptionController {
	return &subscriptionController{service: service, orders: orders, auth: auth}
}

func (c *subscriptionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/subscriptions")
	h.Use(c.auth)
	h.Get("", c.List)
	h.Get("/:id", c.Show)
	h.Put("/:id/investment", c.ModifyInvestment)
	h.Get("/:id/orders", c.Orders)
}

func (c *subscriptionController) List(ctx *fiber.Ctx) error {
	sess, err := serverutils.CurrentSession(ctx)
	if err != nil {
		return err
	}

	var query dto.SubscriptionListQuery
	if err := ctx.QueryParser(&query); err != nil {
		return err
	}

	res, err := c.service.List(ctx.UserContext(), sess, query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get subscriptions", res))
}

func (c *subscriptionController) Show(ctx *fiber.Ctx) error {
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
	return ctx.JSON(serverutils.SuccessResponse("Success get subscription", res))
}

func (c *subscriptionController) ModifyInvestment(ctx *fiber.Ctx) error {
	sess, err := serverutils.CurrentSession(ctx)
	if err != nil {
		return err
	}
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.ModifyInvestmentRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.ModifyInvestment(ctx.UserContext(), sess, id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Monthly investment updated. The new amount applies from the next billing cycle.", res))
}

func (c *subscriptionController) Orders(ctx *fiber.Ctx) error {
	sess, err := serverutils.CurrentSession(ctx)
	if err != nil {
		return err
	}
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.orders.ListBySubscription(ctx.UserContext(), sess, id, ctx.QueryInt("limit", 0))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get subscription orders", res))
}
