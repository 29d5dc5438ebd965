package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"list-reconciler/core/config"
	"list-reconciler/core/loader"
	"list-reconciler/core/logger"
	"list-reconciler/core/middleware/auth"
	"list-reconciler/core/middleware/rayid"
	"list-reconciler/core/storage"
	"list-reconciler/feature/integrity"
	"list-reconciler/feature/lists"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "list-reconciler/docs/swagger"
)

// @title List Reconciler API
// @version 1.0
// @description API for diffing and storing list snapshots.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the list reconciler server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		db := openDatabase(cmd.Context(), cfg, logg)
		store := openStorage(cfg, logg)

		app, err := newApp(cfg, logg, db, store)
		if err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout()); err != nil {
			logg.Error("Graceful shutdown failed", zap.Error(err))
		}
	},
}

// newApp builds the fiber application with middleware and features.
// db and store may be nil.
func newApp(cfg *config.Config, logg *zap.Logger, db *gorm.DB, store storage.Client) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             cfg.Server.BodyLimit(),
	})

	mgr := loader.NewManager()
	mgr.Register(lists.NewFeature(db, store, cfg.Storage.Bucket, logg, cfg.Lists))
	mgr.Register(integrity.NewFeature(store, cfg.Storage.Bucket, cfg.Lists.ArchivePrefix, logg, db))

	// RayID must be first so every log line carries it.
	app.Use(rayid.New())

	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		l.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey, Skip: []string{"/swagger"}}))

	if err := mgr.LoadAll(app); err != nil {
		return nil, err
	}
	return app, nil
}

func init() {
	RootCmd.AddCommand(startCmd)
}
