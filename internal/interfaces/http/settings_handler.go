package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sentinela-pm/sentinela-api/internal/application/backup"
	"github.com/sentinela-pm/sentinela-api/internal/application/dto"
	"github.com/sentinela-pm/sentinela-api/internal/application/usecase"
)

// SettingsHandler trata configurações e backup (protegido).
type SettingsHandler struct {
	uc     *usecase.SettingsUseCase
	backup *backup.UseCase
	auth   *AuthHandler
}

// NewSettingsHandler constrói o handler.
func NewSettingsHandler(uc *usecase.SettingsUseCase, backupUC *backup.UseCase, auth *AuthHandler) *SettingsHandler {
	return &SettingsHandler{uc: uc, backup: backupUC, auth: auth}
}

// Get godoc
// @Summary      Configurações vigentes
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SettingsResponse
// @Router       /api/settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Atualizar configurações
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateSettingsRequest  true  "Campos a alterar"
// @Success      200   {object}  dto.SettingsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings [put]
func (h *SettingsHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Update(in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// ExportBackup godoc
// @Summary      Exportar backup completo (ZIP com snapshot JSON)
// @Tags         settings
// @Security     Bearer
// @Produce      application/zip
// @Success      200
// @Router       /api/settings/backup [get]
func (h *SettingsHandler) ExportBackup(c *fiber.Ctx) error {
	data, err := h.backup.Export(c.UserContext(), h.auth.armorerName(c))
	if err != nil {
		return fail(c, err)
	}
	_ = h.uc.MarkBackupDone(time.Now())

	filename := "sentinela_backup_" + time.Now().Format("2006-01-02") + ".zip"
	c.Set(fiber.HeaderContentType, "application/zip")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// ImportBackup godoc
// @Summary      Restaurar backup (substituição integral)
// @Tags         settings
// @Security     Bearer
// @Accept       application/octet-stream
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/settings/backup [post]
func (h *SettingsHandler) ImportBackup(c *fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "arquivo de backup vazio"})
	}
	if err := h.backup.Import(c.UserContext(), h.auth.armorerName(c), body); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
