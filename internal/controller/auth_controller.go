package controller

import (
	"time"

	"pharaohvault-be/internal/dto"
	"pharaohvault-be/internal/pkg/serverutils"
	"pharaohvault-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	SignUp(ctx *fiber.Ctx) error
	SignIn(ctx *fiber.Ctx) error
	SignOut(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
}

// CookieSettings controls the session cookie written on sign in.
type CookieSettings struct {
	Name   string
	Secure bool
}

type authController struct {
	service service.IAuthService
	auth    fiber.Handler
	cookie  CookieSettings
}

func NewAuthController(service service.IAuthService, auth fiber.Handler, cookie CookieSettings) IAuthController {
	return &authController{service: service, auth: auth, cookie: cookie}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/signup", c.SignUp)
	h.Post("/signin", c.SignIn)
	h.Post("/signout", c.auth, c.SignOut)
	h.Get("/me", c.auth, c.Me)
}

func (c *authController) SignUp(ctx *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.SignUp(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	c.setCookie(ctx, res.AccessToken, res.ExpiresAt)
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.BaseResponse[*dto.AuthResponse]{
		Success: true,
		Code:    fiber.StatusCreated,
		Message: "User registered successfully",
		Data:    res,
	})
}

func (c *authController) SignIn(ctx *fiber.Ctx) error {
	var req dto.SignInRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.SignIn(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	c.setCookie(ctx, res.AccessToken, res.ExpiresAt)
	return ctx.JSON(serverutils.SuccessResponse("Signed in successfully", res))
}

func (c *authController) SignOut(ctx *fiber.Ctx) error {
	sess, err := serverutils.CurrentSession(ctx)
	if err != nil {
		return err
	}

	if err := c.service.SignOut(ctx.UserContext(), sess); err != nil {
		return err
	}

	c.setCookie(ctx, "", time.Unix(0, 0))
	return ctx.JSON(serverutils.SuccessResponse[any]("Signed out successfully", nil))
}

func (c *authController) Me(ctx *fiber.Ctx) error {
	sess, err := serverutils.CurrentSession(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Me(ctx.UserContext(), sess.UserID)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get current user", res))
}

func (c *authController) setCookie(ctx *fiber.Ctx, value string, expires time.Time) {
	ctx.Cookie(&fiber.Cookie{
		Name:     c.cookie.Name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   c.cookie.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
