package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Abraxas-365/jobboard/board/assist/assistapi"
	"github.com/Abraxas-365/jobboard/board/category/categoryapi"
	"github.com/Abraxas-365/jobboard/board/category/categoryinfra"
	"github.com/Abraxas-365/jobboard/board/category/categorysrv"
	"github.com/Abraxas-365/jobboard/board/company/companyapi"
	"github.com/Abraxas-365/jobboard/board/job/jobapi"
	"github.com/Abraxas-365/jobboard/board/profile/profileapi"
	"github.com/Abraxas-365/jobboard/migrations"
	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/logx"
	"github.com/alecthomas/kong"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// CLI is the command tree of the jobboard binary
type CLI struct {
	EnvFile string `help:"Environment file loaded before reading configuration." default:".env" name:"env-file"`

	Serve   ServeCmd   `cmd:"" default:"1" help:"Run the HTTP API and mail workers."`
	Migrate MigrateCmd `cmd:"" help:"Apply the database schema."`
	Seed    SeedCmd    `cmd:"" help:"Insert the default categories."`
}

type ServeCmd struct{}
type MigrateCmd struct {
	Down bool `help:"Roll back the most recent migration instead."`
}
type SeedCmd struct{}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("jobboard"),
		kong.Description("Job board API."),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)

	cfg := LoadConfig(cli.EnvFile)
	logx.SetLevel(logx.ParseLevel(cfg.LogLevel))
	if cfg.LogFormat == "console" {
		logx.SetOutput(os.Stderr, true)
	}

	kctx.FatalIfErrorf(kctx.Run(cfg))
}

// Run applies the embedded migrations
func (m MigrateCmd) Run(cfg *Config) error {
	container := NewContainer(cfg)
	defer container.Close()

	ctx := context.Background()
	migrate := migrations.Apply
	if m.Down {
		migrate = migrations.Rollback
	}
	if err := migrate(ctx, container.DB); err != nil {
		return err
	}
	version, err := migrations.Version(ctx, container.DB)
	if err != nil {
		return err
	}
	logx.Infof("schema at version %d", version)
	return nil
}

// Run inserts the categories that are missing
func (SeedCmd) Run(cfg *Config) error {
	container := NewContainer(cfg)
	defer container.Close()

	categories := categorysrv.NewCategoryService(categoryinfra.NewPostgresCategoryRepository(container.DB))
	n, err := categories.SeedDefaults(context.Background())
	if err != nil {
		return err
	}
	logx.Infof("seeded %d categories", n)
	return nil
}

// Run serves the API until SIGINT or SIGTERM
func (ServeCmd) Run(cfg *Config) error {
	logx.Info("Starting Job Board API Server...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container := NewContainer(cfg)
	defer container.Close()
	container.InitServices(ctx)

	if container.MailWorker != nil {
		container.MailWorker.Start(ctx)
	}

	app := newApp(container)

	errCh := make(chan error, 1)
	go func() {
		logx.Infof("Server listening on port %s", cfg.Port)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		stop()
		if container.MailWorker != nil {
			container.MailWorker.Wait()
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logx.Info("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}
	if container.MailWorker != nil {
		container.MailWorker.Wait()
	}

	logx.Info("Server exited")
	return nil
}

func newApp(container *Container) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Job Board API",
		DisableStartupMessage: true,
		ErrorHandler:          globalErrorHandler,
		BodyLimit:             profileapi.MaxResumeSize + 1<<20,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, PATCH, HEAD",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		status := fiber.Map{
			"status": "ok",
			"db":     container.DB.PingContext(c.Context()) == nil,
		}
		if container.MailQueue != nil {
			status["redis"] = container.MailQueue.Ping(c.Context()) == nil
		}
		return c.JSON(status)
	})

	app.Get("/health/mail", func(c *fiber.Ctx) error {
		stats, err := container.MailQueue.Stats(c.Context())
		if err != nil {
			return errx.Wrap(err, "mail queue unavailable", errx.TypeExternal)
		}
		return c.JSON(stats)
	})

	// Reference data: /api/categories, /api/companies
	categoryapi.RegisterRoutes(app, container.CategoryHandlers, container.RequireAuth)
	companyapi.RegisterRoutes(app, container.CompanyHandlers, container.RequireAuth)

	// Profiles: /api/users/:userId/*, /api/jobs/:id/applicants
	profileapi.RegisterRoutes(app, container.ProfileHandlers, container.RequireAuth, container.OptionalAuth)

	// Jobs: /api/jobs
	jobapi.RegisterRoutes(app, container.JobHandlers, container.RequireAuth, container.OptionalAuth)

	// Drafting helpers: /api/assist/*
	assistapi.RegisterRoutes(app, container.AssistHandlers, container.RequireAuth)

	return app
}

// globalErrorHandler converts internal errors to standard HTTP responses
func globalErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{
			"error": fe.Message,
			"code":  fe.Code,
		})
	}

	var e *errx.Error
	if errors.As(err, &e) {
		if e.HTTPStatus >= fiber.StatusInternalServerError {
			logx.Errorf("%s %s: %v", c.Method(), c.Path(), e)
		}
		return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
	}

	logx.Errorf("Internal Server Error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal Server Error",
		"type":    "INTERNAL",
		"code":    "INTERNAL_ERROR",
		"message": "An unexpected error occurred",
	})
}
