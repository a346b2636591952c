package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sentinela-pm/sentinela-api/internal/application/armory"
	"github.com/sentinela-pm/sentinela-api/internal/application/auth"
	"github.com/sentinela-pm/sentinela-api/internal/application/backup"
	"github.com/sentinela-pm/sentinela-api/internal/application/report"
	"github.com/sentinela-pm/sentinela-api/internal/application/usecase"
	"github.com/sentinela-pm/sentinela-api/internal/domain/entity"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	MaterialUC  *usecase.MaterialUseCase
	PersonnelUC *usecase.PersonnelUseCase
	CautelaUC   *armory.CautelaUseCase
	DailyPartUC *usecase.DailyPartUseCase
	SettingsUC  *usecase.SettingsUseCase
	BackupUC    *backup.UseCase
	ReportUC    *report.UseCase
	LogUC       *usecase.LogUseCase
	Normalizer  usecase.ImageNormalizer
	JWTSecret   string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Get("/setup", authHandler.SetupRequired)
	authGroup.Post("/login", authHandler.Login)

	// Rotas protegidas (Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Gestão de armeiros (apenas SUPER_ADMIN)
	users := protected.Group("/users", RequireRole(entity.RoleSuperAdmin))
	users.Post("/", authHandler.CreateUser)
	users.Get("/", authHandler.ListUsers)
	users.Put("/:id", authHandler.UpdateUser)
	users.Delete("/:id", authHandler.DeleteUser)

	// Acervo
	materials := protected.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialUC, authHandler)
	materials.Post("/", materialHandler.Create)
	materials.Get("/", materialHandler.List)
	materials.Get("/export", materialHandler.ExportCSV)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Put("/:id", materialHandler.Update)
	materials.Delete("/:id", materialHandler.Delete)

	// Efetivo
	personnel := protected.Group("/personnel")
	personnelHandler := NewPersonnelHandler(deps.PersonnelUC, authHandler)
	personnel.Post("/", personnelHandler.Create)
	personnel.Get("/", personnelHandler.List)
	personnel.Get("/:id", personnelHandler.GetByID)
	personnel.Put("/:id", personnelHandler.Update)
	personnel.Delete("/:id", personnelHandler.Delete)

	// Livro de cautelas
	cautelas := protected.Group("/cautelas")
	cautelaHandler := NewCautelaHandler(deps.CautelaUC, deps.Normalizer)
	cautelas.Post("/", cautelaHandler.Issue)
	cautelas.Get("/", cautelaHandler.List)
	cautelas.Get("/search", cautelaHandler.Search)
	cautelas.Get("/export", cautelaHandler.ExportCSV)
	cautelas.Get("/:id", cautelaHandler.GetByID)
	cautelas.Post("/:id/close", cautelaHandler.Close)

	// Livro de Alterações
	dailyParts := protected.Group("/daily-parts")
	dailyPartHandler := NewDailyPartHandler(deps.DailyPartUC, authHandler, deps.Normalizer)
	dailyParts.Post("/", dailyPartHandler.Create)
	dailyParts.Get("/", dailyPartHandler.List)
	dailyParts.Get("/:id", dailyPartHandler.GetByID)
	dailyParts.Put("/:id", dailyPartHandler.Update)
	dailyParts.Delete("/:id", dailyPartHandler.Delete)
	dailyParts.Post("/:id/finalize", dailyPartHandler.Finalize)
	dailyParts.Get("/:id/pdf", dailyPartHandler.ExportPDF)
	dailyParts.Get("/:id/docx", dailyPartHandler.ExportDocx)

	// Configurações e backup
	settings := protected.Group("/settings")
	settingsHandler := NewSettingsHandler(deps.SettingsUC, deps.BackupUC, authHandler)
	settings.Get("/", settingsHandler.Get)
	settings.Put("/", settingsHandler.Update)
	settings.Get("/backup", settingsHandler.ExportBackup)
	// Restauração sobrescreve a base inteira; restrita ao SUPER_ADMIN.
	settings.Post("/backup", RequireRole(entity.RoleSuperAdmin), settingsHandler.ImportBackup)

	// Painel e auditoria
	dashboardHandler := NewDashboardHandler(deps.ReportUC, deps.LogUC)
	protected.Get("/dashboard", dashboardHandler.Dashboard)
	protected.Get("/logs", dashboardHandler.Logs)
}
