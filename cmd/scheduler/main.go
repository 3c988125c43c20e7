package main

import (
	"context"
	"log"
	"net/http"

	"github.com/avlasov/legal-planner-backend/internal/api"
	schedule_service "github.com/avlasov/legal-planner-backend/internal/business/schedule"
	"github.com/avlasov/legal-planner-backend/internal/config"
	"github.com/avlasov/legal-planner-backend/internal/database"
	"github.com/avlasov/legal-planner-backend/internal/database/cases"
	"github.com/avlasov/legal-planner-backend/internal/database/events"
	"github.com/avlasov/legal-planner-backend/internal/database/hearings"
	"github.com/avlasov/legal-planner-backend/internal/database/matters"
	"github.com/avlasov/legal-planner-backend/internal/database/rules"
	"github.com/avlasov/legal-planner-backend/internal/database/tasks"
	"github.com/xlab/closer"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	ctx := context.Background()

	logger, err := initLogger()
	if err != nil {
		log.Fatalf("unable to initialize logger: %v", err)
	}

	db, err := database.NewPGX(ctx)
	if err != nil {
		logger.Fatalw("unable to initialize db", "err", err)
	}

	rulesRepository := rules.NewRepository()
	tasksRepository := tasks.NewRepository()
	eventsRepository := events.NewRepository()
	hearingsRepository := hearings.NewRepository()
	casesRepository := cases.NewRepository()
	mattersRepository := matters.NewRepository()

	scheduleService := schedule_service.NewService(
		db,
		logger,
		rulesRepository,
		tasksRepository,
		eventsRepository,
		hearingsRepository,
		casesRepository,
		mattersRepository,
	)

	api := api.NewApi(logger, scheduleService)

	errLogger, err := zap.NewStdLogAt(logger.Desugar(), zap.ErrorLevel)
	if err != nil {
		logger.Fatalw("error initiating server logger", "err", err)
	}

	server := &http.Server{
		Addr:     ":" + config.Port(),
		Handler:  api,
		ErrorLog: errLogger,
	}

	logger.Infow("Started server", "port", config.Port())
	logger.Fatalw("server error", "err", server.ListenAndServe())
}

func initLogger() (*zap.SugaredLogger, error) {
	var logger *zap.Logger
	var err error

	if config.Production() {
		logger, err = zap.NewProduction()
	} else {
		conf := zap.NewDevelopmentConfig()
		conf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		logger, err = conf.Build()
	}

	if err != nil {
		return nil, err
	}

	closer.Bind(func() {
		_ = logger.Sync()
	})

	return logger.Sugar(), nil
}
