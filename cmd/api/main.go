package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	fbauth "firebase.google.com/go/v4/auth"

	"github.com/uptask-dev/uptask-backend/config"
	"github.com/uptask-dev/uptask-backend/internal/auth"
	"github.com/uptask-dev/uptask-backend/internal/bootstrap"
	"github.com/uptask-dev/uptask-backend/internal/mailer"
	projrepo "github.com/uptask-dev/uptask-backend/internal/projects/repository"
	"github.com/uptask-dev/uptask-backend/internal/reminders"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: cfg.Database.DSN()})
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	if rdb != nil {
		defer rdb.Close()
	}

	var authClient *fbauth.Client
	if cfg.Firebase.CredentialsPath != "" {
		authClient, err = auth.InitializeFirebase(ctx, &cfg.Firebase)
		if err != nil {
			log.Fatalf("firebase: %v", err)
		}
	} else {
		log.Println("FIREBASE_CREDENTIALS_PATH not set, token verification disabled (dev mode)")
	}

	var mail mailer.Mailer = mailer.LogMailer{}
	if cfg.Mail.Sender != "" {
		ses, err := mailer.NewSESMailer(ctx, cfg.Mail.Region, cfg.Mail.Sender)
		if err != nil {
			log.Fatalf("mailer: %v", err)
		}
		mail = ses
	}

	if cfg.Reminders.Enabled {
		sched := reminders.NewScheduler(projrepo.NewProjectRepository(db), mail,
			cfg.Reminders.CronSpec, cfg.Reminders.LookaheadDays)
		if err := sched.Start(); err != nil {
			log.Fatalf("reminders: %v", err)
		}
		defer sched.Stop()
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		Cfg:        cfg,
		DB:         db,
		Redis:      rdb,
		AuthClient: authClient,
		Mailer:     mail,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Printf("listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
