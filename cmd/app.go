package main

import (
	"github.com/lshigami/qbank/config"
	"github.com/lshigami/qbank/database"
	"github.com/lshigami/qbank/internal/logger"
	"github.com/lshigami/qbank/internal/repository"
	"github.com/lshigami/qbank/internal/service"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"gorm.io/gorm"
)

// coreModule provides everything below the HTTP layer. Both the server and
// the import command build on it.
func coreModule() fx.Option {
	return fx.Options(
		fx.WithLogger(func() fxevent.Logger { return logger.FxLogger{} }),

		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
		),

		fx.Provide(
			repository.NewQuestionRepository,
			repository.NewTagRepository,
			repository.NewHistoryRepository,
		),

		fx.Provide(
			service.NewQuestionService,
			service.NewTagService,
			service.NewTestService,
			func(repo repository.HistoryRepository, cfg *config.Config) service.HistoryService {
				return service.NewHistoryService(repo, cfg.Stats.DefaultDays)
			},
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(CloseDatabaseOnStop),
	)
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	if err := database.Migrate(db); err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully")
	return nil
}

func CloseDatabaseOnStop(lc fx.Lifecycle, db *gorm.DB) {
	lc.Append(fx.StopHook(func() error {
		log.Info().Msg("Closing database connection")
		return database.Close(db)
	}))
}
