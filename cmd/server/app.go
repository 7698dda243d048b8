package main

import (
	"fmt"
	"log"
	"time"

	"github.com/rohits-web03/lumina/internal/api/handlers"
	oauth "github.com/rohits-web03/lumina/internal/api/services"
	"github.com/rohits-web03/lumina/internal/auth"
	"github.com/rohits-web03/lumina/internal/config"
	"github.com/rohits-web03/lumina/internal/repositories"
	"github.com/rohits-web03/lumina/internal/services"
	"gorm.io/gorm"
)

// app holds everything built from the configuration for one process.
type app struct {
	db       *gorm.DB
	users    *services.UserService
	reminder *services.ReminderService
	handler  *handlers.Handler
}

func newApp(cfg config.Config) (*app, error) {
	db, err := repositories.ConnectDatabase(cfg)
	if err != nil {
		return nil, err
	}
	store := repositories.NewStore(db)
	clock := services.NewClock(cfg.Location)

	tokens, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTAlgorithm, time.Duration(cfg.AccessTokenMinutes)*time.Minute)
	if err != nil {
		repositories.Close(db)
		return nil, fmt.Errorf("token issuer: %w", err)
	}

	var notifier services.Notifier = services.LogNotifier{}
	if cfg.Mail.ResendAPIKey != "" {
		notifier = services.NewResendNotifier(cfg.Mail.ResendAPIKey, cfg.Mail.From)
	} else {
		log.Println("RESEND_API_KEY not set, emails will only be logged")
	}

	var objects services.ObjectStore
	if cfg.R2.Enabled() {
		objects = repositories.NewR2Store(cfg.R2)
	}

	users := services.NewUserService(store, tokens, notifier)
	return &app{
		db:       db,
		users:    users,
		reminder: services.NewReminderService(store, notifier, cfg.Mail.AppURL),
		handler: &handlers.Handler{
			Users:       users,
			Todos:       services.NewTodoService(store, clock, services.NewRolloverEngine(clock, cfg.RolloverOnRead)),
			Diaries:     services.NewDiaryService(store, clock),
			Notes:       services.NewNoteService(store, clock),
			Goals:       services.NewGoalService(store, clock),
			Exports:     services.NewExportService(store, objects, clock),
			Google:      oauth.NewGoogleOAuthConfig(cfg.Google),
			StateSecret: cfg.JWTSecret,
			FrontendURL: cfg.FrontendURL,
		},
	}, nil
}

func (a *app) close() {
	repositories.Close(a.db)
}
