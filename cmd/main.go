package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"resale/internal/backup"
	"resale/internal/config"
	"resale/internal/database"
	"resale/internal/docstore"
	"resale/internal/eventbus"
	"resale/internal/httphandlers"
	"resale/internal/integrations/commerce"
	"resale/internal/security"
	"resale/internal/service"
	"resale/internal/storage"
	"resale/logger"
)

const sessionTTL = 24 * time.Hour

func main() {
	cfg, err := config.New()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		return
	}

	if err := logger.InitLogger(cfg.Mode); err != nil {
		fmt.Printf("Error initializing logger: %v\n", err)
		return
	}
	defer logger.Sync()

	srv, teardown, err := setup(cfg)
	if err != nil {
		log.Fatal(err)
	}

	go func() {
		logger.Info("serving http(s)", zap.String("addr", cfg.HTTPAddr))
		if cfg.HasTLSConfig() {
			if err := srv.ListenAndServeTLS(cfg.ServerSSLCertFile, cfg.ServerSSLKeyFile); err != nil {
				log.Fatal("server closed: ", err)
			}
		} else {
			if err := srv.ListenAndServe(); err != nil {
				log.Fatal("server closed: ", err)
			}
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	<-done
	log.Println("Shutting down...")

	if teardown != nil {
		if err := teardown(); err != nil {
			logger.Error("teardown failed", zap.Error(err))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %s\n", err)
	}
}

func setup(cfg config.Config) (*http.Server, func() error, error) {
	eventBus := eventbus.New()
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	db, err := docstore.Open(cfg.DatabasePath)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	docs := docstore.New(db)

	productRepo := database.NewProductRepository(docs)
	customerRepo := database.NewCustomerRepository(docs)
	wishlistRepo := database.NewWishlistRepository(docs)
	submissionRepo := database.NewSubmissionRepository(docs)
	staffRepo := database.NewStaffRepository(docs)
	auditRepo := database.NewAuditRepository(docs)
	backupRepo := database.NewBackupRepository(docs)
	backupConfigRepo := database.NewBackupConfigRepository(docs)

	archives, storageType, err := archiveStorage(cfg)
	if err != nil {
		cancel()
		return nil, nil, err
	}

	commerceClient := commerce.NewClient(cfg.CommerceAPIBaseURL, cfg.CommerceAPIToken)
	tokens := security.NewTokenManager(cfg.JWTSecret, sessionTTL)

	builder := backup.NewBuilder(docs, backupRepo, commerceClient)
	backupStore := backup.NewStore(backupRepo, archives, storageType)
	lock := backup.NewLockManager(db)
	restorer := backup.NewRestorer(docs, backupStore, lock)
	scheduler := backup.NewScheduler(backupConfigRepo, backupRepo, builder, backupStore, lock, eventBus)

	auditService := service.NewAuditService(auditRepo)
	customerService := service.NewCustomerService(customerRepo, wishlistRepo, tokens)
	staffService := service.NewStaffService(staffRepo, tokens)
	catalogService := service.NewCatalogService(productRepo)
	tradeInService := service.NewTradeInService(submissionRepo, catalogService, eventBus)
	backupService := service.NewBackupService(builder, backupStore, restorer, lock,
		scheduler, backupConfigRepo, backupRepo, auditService, eventBus)

	service.NewNotifier(eventBus).Start(ctx)

	if password, err := staffService.EnsureAdmin(ctx, adminEmail()); err != nil {
		cancel()
		return nil, nil, err
	} else if password != "" {
		// printed once, on first boot of an empty staff directory
		fmt.Printf("admin account created: %s / %s\n", adminEmail(), password)
	}

	if err := scheduler.Start(ctx); err != nil {
		cancel()
		return nil, nil, err
	}

	apiHandler := httphandlers.NewApiHandler(customerService, staffService, catalogService,
		tradeInService, backupService, auditService, tokens, cfg.BackupTriggerSecret)
	routes := httphandlers.Routes(apiHandler)

	return &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: routes,
		}, func() error {
			scheduler.Stop()
			sqlDB, _ := db.DB()
			if sqlDB != nil {
				err = sqlDB.Close()
				logger.Info("DB Closed", zap.Error(err))
			}
			cancel()
			return nil
		}, nil
}

func archiveStorage(cfg config.Config) (storage.Storage, storage.Type, error) {
	if cfg.ObjectStorage != nil {
		s, err := storage.NewObjectStorage(*cfg.ObjectStorage)
		if err != nil {
			return nil, storage.TypeS3, err
		}
		return s, storage.TypeS3, nil
	}
	return storage.NewFileStorage(storage.ArchiveDir), storage.TypeFS, nil
}

func adminEmail() string {
	if v := os.Getenv("ADMIN_EMAIL"); v != "" {
		return v
	}
	return "admin@localhost"
}
