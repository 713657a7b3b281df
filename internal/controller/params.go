package controller

import (
	"pharaohvault-be/internal/pkg/apperror"
	"pharaohvault-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func paramUUID(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, apperror.Validation("Invalid " + name)
	}
	return id, nil
}

// parseBody decodes and validates a JSON body into req.
func parseBody(ctx *fiber.Ctx, req interface{}) error {
	if err := ctx.BodyParser(req); err != nil {
		return apperror.Validation("Invalid request body")
	}
	return serverutils.ValidateRequest(req)
}
