package controller

import (
	"pharaohvault-be/internal/dto"
	"pharaohvault-be/internal/pkg/serverutils"
	"pharaohvault-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)

	// Dashboard
	GetDashboardStats(ctx *fiber.Ctx) error
	GetUsersWithSubscriptions(ctx *fiber.Ctx) error

	// User Management
	GetAllUsers(ctx *fiber.Ctx) error
	UpdateUser(ctx *fiber.Ctx) error
	UpdateUserRole(ctx *fiber.Ctx) error
	DeleteUser(ctx *fiber.Ctx) error

	// Subscription Management
	UpdateSubscription(ctx *fiber.Ctx) error
	DeleteSubscription(ctx *fiber.Ctx) error
	DeletePendingSubscriptions(ctx *fiber.Ctx) error
	SweepPendingSubscriptions(ctx *fiber.Ctx) error
}

type adminController struct {
	service service.IAdminService
	auth    fiber.Handler
}

func NewAdminController(service service.IAdminService, auth fiber.Handler) IAdminController {
	return &adminController{service: service, auth: auth}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin")
	h.Use(c.auth, serverutils.RequireAdmin)

	h.Get("/dashboard/stats", c.GetDashboardStats)
	h.Get("/users/subscriptions", c.GetUsersWithSubscriptions)

	h.Get("/users", c.GetAllUsers)
	h.Put("/users/:id", c.UpdateUser)
	h.Patch("/users/:id/role", c.UpdateUserRole)
	h.Delete("/users/:id", c.DeleteUser)

	h.Delete("/subscriptions/pending", c.DeletePendingSubscriptions)
	h.Post("/subscriptions/pending/sweep", c.SweepPendingSubscriptions)
	h.Put("/subscriptions/:id", c.UpdateSubscription)
	h.Delete("/subscriptions/:id", c.DeleteSubscription)
}

func (c *adminController) GetDashboardStats(ctx *fiber.Ctx) error {
	res, err := c.service.GetDashboardStats(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get dashboard stats", res))
}

func (c *adminController) GetUsersWithSubscriptions(ctx *fiber.Ctx) error {
	res, err := c.service.GetUsersWithSubscriptions(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get users with subscriptions", res))
}

func (c *adminController) GetAllUsers(ctx *fiber.Ctx) error {
	var req dto.AdminUserListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}

	res, err := c.service.GetAllUsers(ctx.UserContext(), req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get users", res))
}

func (c *adminController) UpdateUser(ctx *fiber.Ctx) error {
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.UpdateUser(ctx.UserContext(), id, req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("User updated successfully", res))
}

func (c *adminController) UpdateUserRole(ctx *fiber.Ctx) error {
	sess, err := serverutils.CurrentSession(ctx)
	if err != nil {
		return err
	}
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.AdminUpdateRoleRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.UpdateUserRole(ctx.UserContext(), sess.UserID, id, req.Role)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("User role updated", res))
}

func (c *adminController) DeleteUser(ctx *fiber.Ctx) error {
	sess, err := serverutils.CurrentSession(ctx)
	if err != nil {
		return err
	}
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.service.DeleteUser(ctx.UserContext(), sess.UserID, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("User deleted successfully", nil))
}

func (c *adminController) UpdateSubscription(ctx *fiber.Ctx) error {
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.AdminUpdateSubscriptionRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.UpdateSubscription(ctx.UserContext(), id, req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Subscription updated successfully", res))
}

func (c *adminController) DeleteSubscription(ctx *fiber.Ctx) error {
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.service.DeleteSubscription(ctx.UserContext(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Subscription deleted successfully", nil))
}

func (c *adminController) DeletePendingSubscriptions(ctx *fiber.Ctx) error {
	res, err := c.service.DeletePendingSubscriptions(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Pending subscriptions deleted", res))
}

func (c *adminController) SweepPendingSubscriptions(ctx *fiber.Ctx) error {
	res, err := c.service.SweepPendingSubscriptions(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Stale pending subscriptions expired", res))
}
