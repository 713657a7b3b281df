package controller

import (
	"pharaohvault-be/internal/dto"
	"pharaohvault-be/internal/pkg/apperror"
	"pharaohvault-be/internal/pkg/serverutils"
	"pharaohvault-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const headerIdempotencyKey = "Idempotency-Key"

type ICheckoutController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
}

type checkoutController struct {
	service service.ICheckoutService
	auth    fiber.Handler
}

func NewCheckoutController(service service.ICheckoutService, auth fiber.Handler) ICheckoutController {
	return &checkoutController{service: service, auth: auth}
}

func (c *checkoutController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/checkout")
	h.Use(c.auth)
	h.Post("/sessions", c.CreateSession)
	h.Post("/create-session", c.CreateSession)
}

// CreateSession leaves field validation to the checkout service.
func (c *checkoutController) CreateSession(ctx *fiber.Ctx) error {
	sess, err := serverutils.CurrentSession(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateCheckoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("Invalid request body")
	}

	res, err := c.service.CreateCheckoutSession(ctx.UserContext(), service.CheckoutInput{
		UserId:           sess.UserID,
		Email:            sess.Email,
		Metal:            req.Metal,
		TargetWeight:     req.TargetWeight,
		TargetUnit:       req.TargetUnit,
		InvestmentAmount: req.InvestmentAmount.String(),
		IdempotencyKey:   ctx.Get(headerIdempotencyKey),
	})
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Checkout session created", res))
}
