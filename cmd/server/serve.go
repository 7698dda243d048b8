package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rohits-web03/lumina/internal/api"
	"github.com/rohits-web03/lumina/internal/config"
	"github.com/rohits-web03/lumina/internal/repositories"
	"github.com/rohits-web03/lumina/internal/services"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server and the reminder scheduler",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := repositories.ConnectDatabase(config.Envs)
		if err != nil {
			return err
		}
		repositories.Close(db)
		log.Println("Migration complete")
		return nil
	},
}

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Run one reminder sweep and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(config.Envs)
		if err != nil {
			return err
		}
		defer a.close()

		result, err := a.reminder.Sweep(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "checked=%d notified=%d failed=%d\n", result.Checked, result.Notified, result.Failed)
		return nil
	},
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Envs

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(cfg)
	if err != nil {
		return err
	}
	defer a.close()

	scheduler, err := newReminderScheduler(ctx, cfg, a.reminder)
	if err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: api.SetupRouter(a.handler, a.users, cfg.CorsConfig),
		// Timeouts prevent resource exhaustion from slow clients
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting Lumina server on port: %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("could not listen on port %s: %w", cfg.Port, err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newReminderScheduler wires the daily fire and, when configured, the
// interval fire. Both call the same sweep; its guard drops overlapping runs.
func newReminderScheduler(ctx context.Context, cfg config.Config, reminder *services.ReminderService) (*services.SchedulerService, error) {
	scheduler := services.NewSchedulerService(cfg.Location)
	sweep := func() {
		if _, err := reminder.Sweep(ctx); err != nil {
			log.Printf("reminder sweep: %v", err)
		}
	}

	if cfg.Reminder.DailyAt != "" {
		if _, err := scheduler.ScheduleDaily(cfg.Reminder.DailyAt, sweep); err != nil {
			return nil, fmt.Errorf("schedule daily reminder: %w", err)
		}
		log.Printf("Reminder scheduled daily at %s", cfg.Reminder.DailyAt)
	}
	if cfg.Reminder.Interval > 0 {
		if _, err := scheduler.ScheduleInterval(cfg.Reminder.Interval, sweep); err != nil {
			return nil, fmt.Errorf("schedule interval reminder: %w", err)
		}
		log.Printf("Reminder scheduled every %s", cfg.Reminder.Interval)
	}
	return scheduler, nil
}
