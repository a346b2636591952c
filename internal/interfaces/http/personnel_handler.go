package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sentinela-pm/sentinela-api/internal/application/dto"
	"github.com/sentinela-pm/sentinela-api/internal/application/usecase"
)

// PersonnelHandler trata as requisições do efetivo (protegido).
type PersonnelHandler struct {
	uc   *usecase.PersonnelUseCase
	auth *AuthHandler
}

// NewPersonnelHandler constrói o handler.
func NewPersonnelHandler(uc *usecase.PersonnelUseCase, auth *AuthHandler) *PersonnelHandler {
	return &PersonnelHandler{uc: uc, auth: auth}
}

// Create godoc
// @Summary      Cadastrar policial
// @Tags         personnel
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePersonnelRequest  true  "Dados do policial"
// @Success      201   {object}  dto.PersonnelResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/personnel [post]
func (h *PersonnelHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePersonnelRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Create(h.auth.armorerName(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Buscar policial por ID
// @Tags         personnel
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do policial"
// @Success      200  {object}  dto.PersonnelResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/personnel/{id} [get]
func (h *PersonnelHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "policial não encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar o efetivo
// @Tags         personnel
// @Security     Bearer
// @Produce      json
// @Param        q  query  string  false  "Busca textual (insensível a acento)"
// @Success      200  {object}  dto.PersonnelListResponse
// @Router       /api/personnel [get]
func (h *PersonnelHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Query("q"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Atualizar policial
// @Tags         personnel
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do policial"
// @Param        body  body  dto.UpdatePersonnelRequest  true  "Dados a atualizar"
// @Success      200   {object}  dto.PersonnelResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/personnel/{id} [put]
func (h *PersonnelHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePersonnelRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Update(h.auth.armorerName(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "policial não encontrado"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Excluir policial
// @Tags         personnel
// @Security     Bearer
// @Param        id  path  string  true  "ID do policial"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/personnel/{id} [delete]
func (h *PersonnelHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(h.auth.armorerName(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
