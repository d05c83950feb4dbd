package main

import (
	"go.uber.org/zap"

	"mailtrack/config"
	"mailtrack/internal/api"
	"mailtrack/internal/db"
	"mailtrack/internal/mq"
	mtredis "mailtrack/internal/redis"
	"mailtrack/internal/repository"
	"mailtrack/internal/service"
	"mailtrack/pkg/logger"
	"mailtrack/pkg/otel"
)

func main() {
	// 1. Load config
	cfg := config.Load()

	log := logger.NewLogger()
	defer log.Sync()

	// 2. Tracing
	shutdownOtel, err := otel.Init(otel.Config{
		ServiceName:    "mailtrack",
		ServiceVersion: "1.0.0",
		Endpoint:       cfg.Otel.Endpoint,
		Enabled:        cfg.Otel.Enabled,
	}, log)
	if err != nil {
		log.Fatal("OpenTelemetry initialization failed", zap.Error(err))
	}
	defer shutdownOtel()

	// 3. Init DB and apply migrations
	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		log.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	if err := db.RunMigrations(db.DSN(cfg.DB)); err != nil {
		log.Fatal("DB migration failed", zap.Error(err))
	}

	// 4. Init RabbitMQ producer (tracking events are fire-and-forget)
	producer, err := mq.NewProducer(cfg.MQ.URL)
	if err != nil {
		log.Fatal("failed to init producer", zap.Error(err))
	}
	defer producer.Close()

	// 5. Redis cache for the read path
	redisClient := mtredis.NewClient(cfg.Redis)
	emailCache := mtredis.NewEmailCache(redisClient)

	// 6. Init repositories
	userRepo := repository.NewUserRepository(dbConn)
	emailRepo := repository.NewEmailRepository(dbConn)
	issueRepo := repository.NewIssueRepository(dbConn)
	trackingRepo := repository.NewTrackingRepository(dbConn)

	// 7. Init services
	sink := service.NewFailureSink(log)
	authService := service.NewAuthService(userRepo, producer, cfg.JWT.Secret, log)
	trackingService := service.NewTrackingService(
		emailRepo,
		userRepo,
		issueRepo,
		trackingRepo,
		emailCache,
		producer,
		sink,
	)

	// 8. Init handlers
	authHandler := api.NewAuthHandler(authService)
	emailHandler := api.NewEmailHandler(trackingService, sink, cfg.JWT.Secret)

	// 9. Init router
	router := api.NewRouter(authHandler, emailHandler, log)

	// 10. Run server
	if err := router.Run(cfg.Server.Port); err != nil {
		log.Fatal("server start failed", zap.Error(err))
	}
}
