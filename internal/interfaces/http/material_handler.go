package http

import (
	"encoding/csv"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sentinela-pm/sentinela-api/internal/application/dto"
	"github.com/sentinela-pm/sentinela-api/internal/application/usecase"
)

// MaterialHandler trata as requisições do acervo (protegido).
type MaterialHandler struct {
	uc   *usecase.MaterialUseCase
	auth *AuthHandler
}

// NewMaterialHandler constrói o handler.
func NewMaterialHandler(uc *usecase.MaterialUseCase, auth *AuthHandler) *MaterialHandler {
	return &MaterialHandler{uc: uc, auth: auth}
}

// Create godoc
// @Summary      Cadastrar material
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMaterialRequest  true  "Dados do material"
// @Success      201   {object}  dto.MaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/materials [post]
func (h *MaterialHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.Category == "" || in.Type == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "category e type são obrigatórios"})
	}
	out, err := h.uc.Create(h.auth.armorerName(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Buscar material por ID
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do material"
// @Success      200  {object}  dto.MaterialResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materials/{id} [get]
func (h *MaterialHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "material não encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar o acervo
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        category  query  string  false  "Filtro por categoria"
// @Param        q         query  string  false  "Busca textual (insensível a acento)"
// @Success      200  {object}  dto.MaterialListResponse
// @Router       /api/materials [get]
func (h *MaterialHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Query("category"), c.Query("q"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Atualizar material
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do material"
// @Param        body  body  dto.UpdateMaterialRequest  true  "Dados a atualizar"
// @Success      200   {object}  dto.MaterialResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/materials/{id} [put]
func (h *MaterialHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Update(h.auth.armorerName(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "material não encontrado"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Excluir material
// @Tags         materials
// @Security     Bearer
// @Param        id  path  string  true  "ID do material"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/materials/{id} [delete]
func (h *MaterialHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(h.auth.armorerName(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ExportCSV godoc
// @Summary      Exportar o acervo em CSV
// @Tags         materials
// @Security     Bearer
// @Produce      text/csv
// @Success      200
// @Router       /api/materials/export [get]
func (h *MaterialHandler) ExportCSV(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Query("category"), "")
	if err != nil {
		return fail(c, err)
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	_ = w.Write([]string{"categoria", "tipo", "modelo", "serie", "fabricante", "calibre", "condicao", "status", "local", "quantidade", "validade"})
	for _, m := range out.Items {
		expiry := ""
		if m.ExpiryDate != nil {
			expiry = m.ExpiryDate.Format("2006-01-02")
		}
		_ = w.Write([]string{
			m.Category, m.Type, m.Model, m.SerialNumber, m.Manufacturer, m.Caliber,
			m.Condition, m.Status, m.Location, strconv.Itoa(m.Quantity), expiry,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fail(c, err)
	}

	filename := "acervo_" + time.Now().Format("2006-01-02") + ".csv"
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.SendString(sb.String())
}
