package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reels-dash-go/pkg/config"
	"reels-dash-go/pkg/stubapi"
	"reels-dash-go/pkg/stubapi/handlers"
	"reels-dash-go/pkg/stubapi/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	var (
		seed     = flag.Bool("seed", false, "Preload a finished sample job")
		envelope = flag.String("envelope", "", "Response envelope: inline, wrapped or mixed (default from config)")
		port     = flag.Int("port", 0, "Port to listen on (default from config)")
	)
	flag.Parse()

	// .env is optional
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if lvl, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		log.SetLevel(lvl)
	}

	if *envelope == "" {
		*envelope = cfg.Stub.Envelope
	}
	mode, err := handlers.ParseEnvelope(*envelope)
	if err != nil {
		log.Fatalf("invalid envelope: %v", err)
	}
	if *port == 0 {
		*port = cfg.Stub.Port
	}

	if log.GetLevel() < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	st := store.New()
	if *seed {
		store.Seed(st)
		log.Info("seeded sample job")
	}

	server := stubapi.NewServer(st, stubapi.Options{
		Envelope:  mode,
		RateLimit: cfg.Stub.RateLimit,
		Logger:    log,
		Port:      *port,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Stub.Host, *port),
		Handler:      server.Router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{"addr": srv.Addr, "envelope": mode}).Info("stub API starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Info("server exited")
}
