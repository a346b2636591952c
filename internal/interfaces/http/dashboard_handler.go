package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sentinela-pm/sentinela-api/internal/application/dto"
	"github.com/sentinela-pm/sentinela-api/internal/application/report"
	"github.com/sentinela-pm/sentinela-api/internal/application/usecase"
)

// DashboardHandler trata o painel e o registro de auditoria (protegido).
type DashboardHandler struct {
	reportUC *report.UseCase
	logUC    *usecase.LogUseCase
}

// NewDashboardHandler constrói o handler.
func NewDashboardHandler(reportUC *report.UseCase, logUC *usecase.LogUseCase) *DashboardHandler {
	return &DashboardHandler{reportUC: reportUC, logUC: logUC}
}

// Dashboard godoc
// @Summary      Contadores do painel inicial
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.reportUC.Dashboard()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Logs godoc
// @Summary      Registro de auditoria (mais recente primeiro)
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limite"  default(50)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.SystemLogListResponse
// @Router       /api/logs [get]
func (h *DashboardHandler) Logs(c *fiber.Ctx) error {
	page := dto.PageRequest{
		Limit:  c.QueryInt("limit", 50),
		Offset: c.QueryInt("offset", 0),
	}
	out, err := h.logUC.List(page)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
