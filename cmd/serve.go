package cmd

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	config "flowstate.app/flowstate-api/internal/configs"
	httpapi "flowstate.app/flowstate-api/internal/http"
	repository "flowstate.app/flowstate-api/internal/repositories"
	"flowstate.app/flowstate-api/internal/services"
	"flowstate.app/flowstate-api/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the FlowState task API backed by the JSON file store",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()

		store := storage.NewStore(cfg.DataFile, cfg.SeedSampleData)
		if tasks, err := store.Load(); err != nil {
			log.Printf("failed to initialize tasks file: %v", err)
		} else {
			log.Printf("tasks file %s holds %d tasks", store.Path(), len(tasks))
		}

		taskRepo := repository.NewTaskRepository(store)
		taskService := services.NewTaskService(taskRepo)
		statsService := services.NewStatsService(taskRepo)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		e := echo.New()
		e.HideBanner = true

		handler := httpapi.NewHandler(taskService, statsService, store, cfg.Env)
		httpapi.Register(e, handler, cfg)

		go func() {
			log.Printf("HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil {
				log.Printf("server stopped: %v", err)
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()
		_ = e.Shutdown(shutdownCtx)

		log.Println("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
