package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gartstein/hradmin/internal/admin/auth"
	"github.com/gartstein/hradmin/internal/admin/config"
	"github.com/gartstein/hradmin/internal/admin/controller"
	gorm "github.com/gartstein/hradmin/internal/admin/db"
	"github.com/gartstein/hradmin/internal/admin/events"
	"github.com/gartstein/hradmin/internal/admin/handlers"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

func main() {
	logger := initLogger()
	defer func(logger *zap.Logger) {
		err := logger.Sync()
		if err != nil {
			logger.Error("failed to sync logger", zap.Error(err))
		}
	}(logger)

	flags := pflag.NewFlagSet("hradmin", pflag.ExitOnError)
	configPath := flags.String("config", config.DefaultPath, "path to the YAML config file")
	envFiles := flags.StringSlice("env-file", nil, "dotenv files overriding the config file")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load(*configPath, *envFiles...)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}

	repo, err := gorm.NewRepository(initDatabase(cfg))
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer repo.Close()

	invalidator, closeInvalidator := initInvalidator(cfg, logger)
	defer closeInvalidator()

	adminSvc := controller.NewAdminService(repo, invalidator, logger)
	adminHandler := handlers.NewAdminHandler(adminSvc, logger)

	authInterceptor := auth.NewAuthInterceptor(cfg.JWTSecret, handlers.FullMethods()...)
	server := handlers.NewServer(cfg.GRPCPort, cfg.HTTPPort, logger, grpc.UnaryInterceptor(authInterceptor.Unary()))
	server.RegisterGRPCHandler(adminHandler)

	if err := server.RegisterHTTPGateway(adminHandler, cfg.JWTSecret); err != nil {
		logger.Fatal("Failed to register HTTP gateway", zap.Error(err))
	}

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("Failed to start servers", zap.Error(err))
		}
	}()

	waitForShutdown(server, logger)
}

// initLogger initializes a Zap production logger.
func initLogger() *zap.Logger {
	logger, _ := zap.NewProduction()
	return logger
}

// initDatabase maps the loaded config onto the repository settings.
func initDatabase(cfg *config.Config) *gorm.Config {
	return &gorm.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	}
}

// initInvalidator publishes to Kafka when brokers are configured and only
// logs otherwise.
func initInvalidator(cfg *config.Config, logger *zap.Logger) (controller.Invalidator, func()) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Warn("No Kafka brokers configured, view invalidations are logged only")
		return events.NewLogInvalidator(logger), func() {}
	}

	producer, err := events.NewProducer(cfg.KafkaBrokers, logger, cfg.Topic)
	if err != nil {
		logger.Fatal("failed to initialize Kafka producer", zap.Error(err))
	}
	return producer, producer.Close
}

// waitForShutdown blocks until an interrupt or SIGTERM is received, then shuts down servers.
func waitForShutdown(server *handlers.Server, logger *zap.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	server.Stop()
	logger.Info("Servers stopped properly")
}
