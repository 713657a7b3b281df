package serverutils

import (
	"strings"

	"pharaohvault-be/internal/pkg/apperror"
	"pharaohvault-be/internal/pkg/session"

	"github.com/gofiber/fiber/v2"
)

const sessionLocal = "session"

// SessionMiddleware resolves the access token from the Authorization header or
// the session cookie and injects the Session into the request.
func SessionMiddleware(mgr *session.Manager, cookieName string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		token := bearerToken(ctx.Get(fiber.HeaderAuthorization))
		if token == "" {
			token = ctx.Cookies(cookieName)
		}
		if token == "" {
			return apperror.Unauthorized("Missing token")
		}

		s, err := mgr.Resolve(ctx.UserContext(), token)
		if err != nil {
			return apperror.Unauthorized("Invalid or expired session")
		}

		ctx.Locals(sessionLocal, s)
		ctx.Locals("user_id", s.UserID.String())
		return ctx.Next()
	}
}

// RequireAdmin must run after SessionMiddleware.
func RequireAdmin(ctx *fiber.Ctx) error {
	s, err := CurrentSession(ctx)
	if err != nil {
		return err
	}
	if !s.IsAdmin() {
		return apperror.Forbidden("Admin access required")
	}
	return ctx.Next()
}

func CurrentSession(ctx *fiber.Ctx) (*session.Session, error) {
	s, ok := ctx.Locals(sessionLocal).(*session.Session)
	if !ok || s == nil {
		return nil, apperror.Unauthorized("Missing session")
	}
	return s, nil
}

func bearerToken(header string) string {
	if len(header) < 7 || !strings.EqualFold(header[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
