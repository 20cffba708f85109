package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"procurement/auth"
	"procurement/config"
	"procurement/db"
	"procurement/db/mongo"
	"procurement/db/postgres"
	"procurement/handlers"
	"procurement/logging"
	"procurement/repository"
	"procurement/routes"
	"procurement/utils"
)

func main() {
	logger := logging.New(os.Getenv("LOG_FORMAT"))
	if err := run(logger); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	// Load config from .env or environment
	cfg, err := config.LoadConfig(logger)
	if err != nil {
		return err
	}
	logger = logging.New(cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		conn       db.DB
		vendorRepo repository.VendorRepository
		itemRepo   repository.ItemRepository
		userRepo   repository.UserRepository
	)

	switch db.DBType(cfg.DBType) {
	case db.Postgres:
		// Run migrations (for Postgres)
		if err := db.RunMigrations(logger, cfg.PostgresURL, cfg.MigrationsURL); err != nil {
			return err
		}
		pg := postgres.NewPostgresDB(cfg.PostgresURL)
		if err := pg.Connect(ctx); err != nil {
			return err
		}
		conn = pg

		vendorRepo = repository.NewPostgresVendorRepo(pg.Conn)
		itemRepo = repository.NewPostgresItemRepo(pg.Conn)
		userRepo = repository.NewPostgresUserRepo(pg.Conn)

	case db.Mongo:
		mg := mongo.NewMongoDB(cfg.MongoURL, cfg.MongoDatabase)
		if err := mg.Connect(ctx); err != nil {
			return err
		}
		conn = mg
		if err := repository.EnsureMongoIndexes(ctx, mg.Database()); err != nil {
			return err
		}

		vendorRepo = repository.NewMongoVendorRepo(mg.Database())
		itemRepo = repository.NewMongoItemRepo(mg.Database())
		userRepo = repository.NewMongoUserRepo(mg.Database())

	case db.Memory:
		logger.Warn("DB_TYPE=memory, data is lost on restart")
		vendorRepo = repository.NewMemoryVendorRepo()
		itemRepo = repository.NewMemoryItemRepo()
		userRepo = repository.NewMemoryUserRepo()

	default:
		return errors.New("DB_TYPE not supported: " + cfg.DBType)
	}
	defer func() {
		if conn == nil {
			return
		}
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := conn.Disconnect(closeCtx); err != nil {
			logger.Error("database disconnect", "error", err)
		}
	}()

	var denylist auth.Denylist = auth.NoopDenylist{}
	if cfg.RedisAddr != "" {
		client, err := auth.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			return err
		}
		defer client.Close()
		denylist = auth.NewRedisDenylist(client)
	} else {
		logger.Warn("REDIS_ADDR not set, logout will not revoke tokens server-side")
	}

	created, err := auth.EnsureAdmin(ctx, userRepo, cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		return err
	}
	if created {
		logger.Info("bootstrap admin created", "username", cfg.AdminUsername)
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)

	exportHandler := &handlers.ExportHandler{
		Repo:     vendorRepo,
		Renderer: utils.ChromePDF{Timeout: 30 * time.Second},
		Logger:   logger,
	}
	if cfg.R2.Enabled() {
		uploader, err := utils.NewR2Uploader(ctx, cfg.R2)
		if err != nil {
			return err
		}
		exportHandler.Uploader = uploader
	}

	router := routes.NewRouter(
		routes.Deps{Config: cfg, Logger: logger, Tokens: tokens, Denylist: denylist},
		routes.Handlers{
			Users: &handlers.UserHandler{
				Repo:     userRepo,
				Vendors:  vendorRepo,
				Tokens:   tokens,
				Denylist: denylist,
				Logger:   logger,
			},
			Vendors: &handlers.VendorHandler{Repo: vendorRepo, Users: userRepo, Logger: logger},
			Items:   &handlers.ItemHandler{Repo: itemRepo, Logger: logger},
			Export:  exportHandler,
		},
	)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server running", "port", cfg.Port, "db", cfg.DBType)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
