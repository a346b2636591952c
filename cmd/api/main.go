package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/sentinela-pm/sentinela-api/internal/application/armory"
	"github.com/sentinela-pm/sentinela-api/internal/application/auth"
	"github.com/sentinela-pm/sentinela-api/internal/application/backup"
	"github.com/sentinela-pm/sentinela-api/internal/application/report"
	"github.com/sentinela-pm/sentinela-api/internal/application/usecase"
	"github.com/sentinela-pm/sentinela-api/internal/infrastructure/docx"
	"github.com/sentinela-pm/sentinela-api/internal/infrastructure/imaging"
	infrapdf "github.com/sentinela-pm/sentinela-api/internal/infrastructure/pdf"
	"github.com/sentinela-pm/sentinela-api/internal/infrastructure/postgres"
	"github.com/sentinela-pm/sentinela-api/internal/infrastructure/postgres/migrations"
	httpRouter "github.com/sentinela-pm/sentinela-api/internal/interfaces/http"
	"github.com/sentinela-pm/sentinela-api/pkg/config"
	"github.com/sentinela-pm/sentinela-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	if err := migrations.Up(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migrações do banco")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	materialRepo := postgres.NewMaterialRepository(pool)
	personnelRepo := postgres.NewPersonnelRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	cautelaRepo := postgres.NewCautelaRepository(pool)
	dailyPartRepo := postgres.NewDailyPartRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	logRepo := postgres.NewSystemLogRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, logRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	materialUC := usecase.NewMaterialUseCase(materialRepo, cautelaRepo, logRepo)
	personnelUC := usecase.NewPersonnelUseCase(personnelRepo, cautelaRepo, logRepo)
	cautelaUC := armory.NewCautelaUseCase(txRunner, cautelaRepo, personnelRepo, userRepo, logRepo)

	// Exportadores do Livro de Alterações (PDF e Word)
	pdfGenerator := infrapdf.NewMarotoPartGenerator()
	docxGenerator := docx.NewWordPartGenerator()
	dailyPartUC := usecase.NewDailyPartUseCase(dailyPartRepo, settingsRepo, logRepo, pdfGenerator, docxGenerator)

	normalizer := imaging.NewNormalizer()
	settingsUC := usecase.NewSettingsUseCase(settingsRepo, normalizer)
	backupUC := backup.NewUseCase(postgres.NewSnapshotStore(pool), logRepo)
	reportUC := report.NewUseCase(materialRepo, cautelaRepo, personnelRepo)
	logUC := usecase.NewLogUseCase(logRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    32 * 1024 * 1024, // importação de backup e assinaturas em data URL
	})
	app.Use(recover.New())

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Sentinela API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		MaterialUC:  materialUC,
		PersonnelUC: personnelUC,
		CautelaUC:   cautelaUC,
		DailyPartUC: dailyPartUC,
		SettingsUC:  settingsUC,
		BackupUC:    backupUC,
		ReportUC:    reportUC,
		LogUC:       logUC,
		Normalizer:  normalizer,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
