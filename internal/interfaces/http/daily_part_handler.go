package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sentinela-pm/sentinela-api/internal/application/dto"
	"github.com/sentinela-pm/sentinela-api/internal/application/usecase"
)

// DailyPartHandler trata o Livro de Alterações (protegido).
type DailyPartHandler struct {
	uc         *usecase.DailyPartUseCase
	auth       *AuthHandler
	normalizer usecase.ImageNormalizer
}

// NewDailyPartHandler constrói o handler.
func NewDailyPartHandler(uc *usecase.DailyPartUseCase, auth *AuthHandler, normalizer usecase.ImageNormalizer) *DailyPartHandler {
	return &DailyPartHandler{uc: uc, auth: auth, normalizer: normalizer}
}

// Create godoc
// @Summary      Abrir edição em rascunho
// @Tags         daily-parts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveDailyPartRequest  true  "Conteúdo das cinco partes"
// @Success      201   {object}  dto.DailyPartResponse
// @Router       /api/daily-parts [post]
func (h *DailyPartHandler) Create(c *fiber.Ctx) error {
	var in dto.SaveDailyPartRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Create(GetMatricula(c), h.auth.armorerName(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Atualizar rascunho
// @Tags         daily-parts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID da edição"
// @Param        body  body  dto.SaveDailyPartRequest  true  "Conteúdo das cinco partes"
// @Success      200   {object}  dto.DailyPartResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/daily-parts/{id} [put]
func (h *DailyPartHandler) Update(c *fiber.Ctx) error {
	var in dto.SaveDailyPartRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Update(h.auth.armorerName(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "parte diária não encontrada"})
	}
	return c.JSON(out)
}

// Finalize godoc
// @Summary      Finalizar edição (assinatura obrigatória, transição terminal)
// @Tags         daily-parts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID da edição"
// @Param        body  body  dto.FinalizeDailyPartRequest  true  "Assinatura do armeiro"
// @Success      200   {object}  dto.DailyPartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/daily-parts/{id}/finalize [post]
func (h *DailyPartHandler) Finalize(c *fiber.Ctx) error {
	var in dto.FinalizeDailyPartRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.Signature != "" {
		sig, err := h.normalizer.NormalizeDataURL(in.Signature, signatureMaxDim)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "assinatura ilegível"})
		}
		in.Signature = sig
	}
	out, err := h.uc.Finalize(h.auth.armorerName(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "parte diária não encontrada"})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Buscar edição por ID
// @Tags         daily-parts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da edição"
// @Success      200  {object}  dto.DailyPartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/daily-parts/{id} [get]
func (h *DailyPartHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "parte diária não encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar edições
// @Tags         daily-parts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DailyPartListResponse
// @Router       /api/daily-parts [get]
func (h *DailyPartHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Excluir rascunho
// @Tags         daily-parts
// @Security     Bearer
// @Param        id  path  string  true  "ID da edição"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/daily-parts/{id} [delete]
func (h *DailyPartHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(h.auth.armorerName(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ExportPDF godoc
// @Summary      Exportar edição em PDF
// @Tags         daily-parts
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID da edição"
// @Success      200
// @Router       /api/daily-parts/{id}/pdf [get]
func (h *DailyPartHandler) ExportPDF(c *fiber.Ctx) error {
	data, err := h.uc.ExportPDF(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="livro_de_alteracoes.pdf"`)
	return c.Send(data)
}

// ExportDocx godoc
// @Summary      Exportar edição em Word (.docx)
// @Tags         daily-parts
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.wordprocessingml.document
// @Param        id  path  string  true  "ID da edição"
// @Success      200
// @Router       /api/daily-parts/{id}/docx [get]
func (h *DailyPartHandler) ExportDocx(c *fiber.Ctx) error {
	data, err := h.uc.ExportDocx(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="livro_de_alteracoes.docx"`)
	return c.Send(data)
}
