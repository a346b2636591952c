package http

import (
	"encoding/csv"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sentinela-pm/sentinela-api/internal/application/armory"
	"github.com/sentinela-pm/sentinela-api/internal/application/dto"
	"github.com/sentinela-pm/sentinela-api/internal/application/usecase"
)

// Limite de dimensão das assinaturas normalizadas.
const signatureMaxDim = 1024

// CautelaHandler trata o livro de cautelas (protegido).
type CautelaHandler struct {
	uc         *armory.CautelaUseCase
	normalizer usecase.ImageNormalizer
}

// NewCautelaHandler constrói o handler.
func NewCautelaHandler(uc *armory.CautelaUseCase, normalizer usecase.ImageNormalizer) *CautelaHandler {
	return &CautelaHandler{uc: uc, normalizer: normalizer}
}

// normalizeSignature valida e reencoda a assinatura recebida como data-URL.
// Assinatura vazia passa direto: obrigatoriedade é regra do núcleo.
func (h *CautelaHandler) normalizeSignature(sig string) (string, error) {
	if sig == "" {
		return "", nil
	}
	return h.normalizer.NormalizeDataURL(sig, signatureMaxDim)
}

// Issue godoc
// @Summary      Registrar saída de material
// @Tags         cautelas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IssueCautelaRequest  true  "Itens, policial e assinatura"
// @Success      201   {object}  dto.CautelaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cautelas [post]
func (h *CautelaHandler) Issue(c *fiber.Ctx) error {
	var in dto.IssueCautelaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	sig, err := h.normalizeSignature(in.Signature)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "assinatura ilegível"})
	}
	in.Signature = sig
	out, err := h.uc.Issue(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Close godoc
// @Summary      Registrar devolução de material
// @Tags         cautelas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID da cautela"
// @Param        body  body  dto.CloseCautelaRequest  true  "Assinatura e observação (opcionais)"
// @Success      200   {object}  dto.CautelaResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cautelas/{id}/close [post]
func (h *CautelaHandler) Close(c *fiber.Ctx) error {
	var in dto.CloseCautelaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	sig, err := h.normalizeSignature(in.Signature)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "assinatura ilegível"})
	}
	in.Signature = sig
	out, err := h.uc.Close(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Buscar cautela por ID
// @Tags         cautelas
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da cautela"
// @Success      200  {object}  dto.CautelaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cautelas/{id} [get]
func (h *CautelaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cautela não encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Histórico de cautelas (mais recente primeiro)
// @Tags         cautelas
// @Security     Bearer
// @Produce      json
// @Param        open  query  bool  false  "Apenas cautelas abertas"
// @Success      200  {object}  dto.CautelaListResponse
// @Router       /api/cautelas [get]
func (h *CautelaHandler) List(c *fiber.Ctx) error {
	if c.QueryBool("open") {
		out, err := h.uc.ListOpen()
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(out)
	}
	out, err := h.uc.List()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Search godoc
// @Summary      Buscar no histórico com filtros
// @Tags         cautelas
// @Security     Bearer
// @Produce      json
// @Param        personnel_id  query  string  false  "Policial"
// @Param        material_id   query  string  false  "Material"
// @Param        status        query  string  false  "ABERTA ou FECHADA"
// @Param        area          query  string  false  "Área de atuação"
// @Param        from          query  string  false  "Data inicial (AAAA-MM-DD)"
// @Param        to            query  string  false  "Data final (AAAA-MM-DD)"
// @Success      200  {object}  dto.CautelaListResponse
// @Router       /api/cautelas/search [get]
func (h *CautelaHandler) Search(c *fiber.Ctx) error {
	var in dto.CautelaSearchRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
	}
	out, err := h.uc.Search(in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// ExportCSV godoc
// @Summary      Exportar o histórico de cautelas em CSV
// @Tags         cautelas
// @Security     Bearer
// @Produce      text/csv
// @Success      200
// @Router       /api/cautelas/export [get]
func (h *CautelaHandler) ExportCSV(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return fail(c, err)
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	_ = w.Write([]string{"cautela", "policial", "armeiro_saida", "saida", "devolucao", "armeiro_devolucao", "status", "area", "categoria", "serie", "quantidade"})
	for _, cta := range out.Items {
		returned := ""
		if cta.ReturnedAt != nil {
			returned = cta.ReturnedAt.Format(time.RFC3339)
		}
		// Uma linha de CSV por item da cautela.
		for _, it := range cta.Items {
			_ = w.Write([]string{
				cta.ID, cta.PersonnelName, cta.ArmorerName,
				cta.IssuedAt.Format(time.RFC3339), returned, cta.ArmorerInName,
				cta.Status, cta.Area, it.Category, it.SerialNumber, strconv.Itoa(it.Quantity),
			})
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fail(c, err)
	}

	filename := "cautelas_" + time.Now().Format("2006-01-02") + ".csv"
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.SendString(sb.String())
}
