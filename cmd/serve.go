package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/qbank/config"
	_ "github.com/lshigami/qbank/docs"
	"github.com/lshigami/qbank/internal/controller"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func runServer() error {
	app := fx.New(
		coreModule(),

		fx.Provide(
			NewGinEngine,
			controller.NewQuestionController,
			controller.NewTagController,
			controller.NewHistoryController,
			controller.NewHealthController,
		),

		fx.Invoke(controller.RegisterRoutes),
		fx.Invoke(StartServer),
	)
	app.Run()
	return app.Err()
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	r := controller.NewGinEngine(controller.EngineOptions{
		Release:           cfg.IsProduction(),
		AllowOrigins:      cfg.Server.CORSAllowOrigins,
		ExposeErrorDetail: !cfg.IsProduction(),
	})

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	return r
}

func StartServer(lc fx.Lifecycle, shutdowner fx.Shutdowner, router *gin.Engine, cfg *config.Config) {
	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Str("env", cfg.Server.Env).Msgf("Question bank API starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error().Err(err).Msg("Server ListenAndServe failed")
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}
