package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/sentinela-pm/sentinela-api/internal/application/dto"
	"github.com/sentinela-pm/sentinela-api/internal/domain"
)

// fail traduz os erros sentinela do domínio para status HTTP e corpo padrão.
// Validação -> 400, não encontrado -> 404, conflito de estado -> 409.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrMissingSignature):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_SIGNATURE", Message: err.Error()})
	case errors.Is(err, domain.ErrMaterialIndisponivel):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MATERIAL_UNAVAILABLE", Message: err.Error()})
	case errors.Is(err, domain.ErrPessoaInativa):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "PERSONNEL_INACTIVE", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrMatriculaExists), errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciais inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "permissão insuficiente"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
