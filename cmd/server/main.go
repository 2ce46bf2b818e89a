package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/calvintech/inhouse-pos/internal/config"
	"github.com/calvintech/inhouse-pos/internal/contractdoc"
	"github.com/calvintech/inhouse-pos/internal/email"
	"github.com/calvintech/inhouse-pos/internal/export"
	httpserver "github.com/calvintech/inhouse-pos/internal/interfaces/http"
	"github.com/calvintech/inhouse-pos/internal/invoicedoc"
	"github.com/calvintech/inhouse-pos/internal/render"
	"github.com/calvintech/inhouse-pos/internal/repository"
	"github.com/calvintech/inhouse-pos/internal/service"
	"github.com/calvintech/inhouse-pos/internal/signedcopy"
	"github.com/calvintech/inhouse-pos/pkg/database"
	"github.com/calvintech/inhouse-pos/pkg/utils"
)

func main() {
	// Local development secrets live in .env; absence is fine.
	gotenv.Load()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting InHouse POS",
		zap.String("company", cfg.Company.Name),
		zap.Int("port", cfg.Server.Port))

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	for _, dir := range []string{cfg.Storage.DocumentDir, cfg.Storage.UploadDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Fatal("Failed to create storage directory",
				zap.String("dir", dir),
				zap.Error(err))
		}
	}

	projectRepo := repository.NewProjectRepository(db.DB, logger)
	contractRepo := repository.NewContractRepository(db.DB, logger)
	invoiceRepo := repository.NewInvoiceRepository(db.DB, logger)

	pdfRenderer := render.NewPDFRenderer(logger)
	contractComposer := contractdoc.NewComposer(contractdoc.Config{
		IssuerName:     cfg.Company.Name,
		CurrencySymbol: cfg.Company.CurrencySymbol,
		GoverningLaw:   cfg.Company.GoverningLaw,
	})
	invoiceComposer := invoicedoc.NewComposer(invoicedoc.Config{
		CurrencySymbol: cfg.Company.CurrencySymbol,
	})

	emailSender := email.NewSender(cfg.Email, logger)

	projectService := service.NewProjectService(projectRepo, logger)
	contractService := service.NewContractService(
		contractRepo,
		projectRepo,
		contractComposer,
		pdfRenderer,
		signedcopy.NewVerifier(logger),
		emailSender,
		cfg.Storage.DocumentDir,
		cfg.Storage.UploadDir,
		logger,
	)
	invoiceService := service.NewInvoiceService(
		invoiceRepo,
		projectRepo,
		invoiceComposer,
		pdfRenderer,
		emailSender,
		cfg.Storage.DocumentDir,
		logger,
	)
	statementService := service.NewStatementService(
		projectRepo,
		contractRepo,
		invoiceRepo,
		invoiceComposer,
		pdfRenderer,
		export.NewStatementWriter(cfg.Company.Name, logger),
		cfg.Storage.DocumentDir,
		logger,
	)

	server := httpserver.NewServer(
		httpserver.ServerConfig{
			Host:         cfg.Server.Host,
			Port:         cfg.Server.Port,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		projectService,
		contractService,
		invoiceService,
		statementService,
		logger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("Shutting down server...")
		cancel()
	}()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}

	logger.Info("Server exited successfully")
}
