package controller

import (
	"pharaohvault-be/internal/dto"
	"pharaohvault-be/internal/pkg/serverutils"
	"pharaohvault-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRequestController interface {
	RegisterRoutes(r fiber.Router)
	CreateCancellation(ctx *fiber.Ctx) error
	ListCancellations(ctx *fiber.Ctx) error
	UpdateCancellation(ctx *fiber.Ctx) error
	CreateWithdrawal(ctx *fiber.Ctx) error
	ListWithdrawals(ctx *fiber.Ctx) error
	UpdateWithdrawal(ctx *fiber.Ctx) error
}

type requestController struct {
	service service.IRequestService
	auth    fiber.Handler
}

func NewRequestController(service service.IRequestService, auth fiber.Handler) IRequestController {
	return &requestController{service: service, auth: auth}
}

func (c *requestController) RegisterRoutes(r fiber.Router) {
	cancellations := r.Group("/cancellation-requests")
	cancellations.Use(c.auth)
	cancellations.Post("", c.CreateCancellation)
	cancellations.Get("", c.ListCancellations)
	cancellations.Put("/:id", serverutils.RequireAdmin, c.UpdateCancellation)

	withdrawals := r.Group("/withdrawal-requests")
	withdrawals.Use(c.auth)
	withdrawals.Post("", c.CreateWithdrawal)
	withdrawals.Get("", c.ListWithdrawals)
	withdrawals.Put("/:id", serverutils.RequireAdmin, c.UpdateWithdrawal)
}

func (c *requestController) CreateCancellation(ctx *fiber.Ctx) error {
	sess, err := serverutils.CurrentSession(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateCancellationRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.CreateCancellation(ctx.UserContext(), sess, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.BaseResponse[*dto.CancellationRequestResponse]{
		Success: true,
		Code:    fiber.StatusCreated,
		Message: "Cancellation request submitted",
		Data:    res,
	})
}

func (c *requestController) ListCancellations(ctx *fiber.Ctx) error {
	sess, err := serverutils.CurrentSession(ctx)
	if err != nil {
		return err
	}

	var query dto.RequestListQuery
	if err := ctx.QueryParser(&query); err != nil {
		return err
	}

	res, err := c.service.ListCancellations(ctx.UserContext(), sess, query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get cancellation requests", res))
}

func (c *requestController) UpdateCancellation(ctx *fiber.Ctx) error {
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateRequestStatusRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.UpdateCancellation(ctx.UserContext(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Cancellation request updated", res))
}

func (c *requestController) CreateWithdrawal(ctx *fiber.Ctx) error {
	sess, err := serverutils.CurrentSession(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateWithdrawalRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.CreateWithdrawal(ctx.UserContext(), sess, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.BaseResponse[*dto.WithdrawalRequestResponse]{
		Success: true,
		Code:    fiber.StatusCreated,
		Message: "Withdrawal request submitted",
		Data:    res,
	})
}

func (c *requestController) ListWithdrawals(ctx *fiber.Ctx) error {
	sess, err := serverutils.CurrentSession(ctx)
	if err != nil {
		return err
	}

	var query dto.RequestListQuery
	if err := ctx.QueryParser(&query); err != nil {
		return err
	}

	res, err := c.service.ListWithdrawals(ctx.UserContext(), sess, query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get withdrawal requests", res))
}

func (c *requestController) UpdateWithdrawal(ctx *fiber.Ctx) error {
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateRequestStatusRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.UpdateWithdrawal(ctx.UserContext(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Withdrawal request updated", res))
}
