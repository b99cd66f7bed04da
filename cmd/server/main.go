package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/logpile/logpile/internal/interfaces/middleware"
	"github.com/logpile/logpile/internal/interfaces/rest"
	"github.com/logpile/logpile/pkg/events"
	"github.com/logpile/logpile/pkg/sink"
)

func main() {
	loadEnv()

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}

	s, err := sink.New(sink.Options{
		ConnString: os.Getenv("DATABASE_URL"),
		MaxConns:   envInt("LOG_MAX_CONNS"),
		SSLMode:    os.Getenv("LOG_SSL_MODE"),
		Schema:     os.Getenv("LOG_SCHEMA"),
		Table:      os.Getenv("LOG_TABLE"),
		Timezone:   os.Getenv("LOG_TZ"),
		Level:      os.Getenv("LOG_LEVEL"),
		Silent:     os.Getenv("LOG_SILENT") == "true",
		Retention: sink.RetentionOptions{
			Interval: os.Getenv("LOG_RETENTION"),
			Schedule: os.Getenv("LOG_RETENTION_SCHEDULE"),
		},
	})
	if err != nil {
		log.Fatalf("Failed to initialize log sink: %v", err)
	}
	defer s.Close()
	log.Printf("Log sink ready: table %s, level %s", s.Table().Name, s.Level())

	s.Events().Subscribe(events.Error, func(payload any) {
		log.Printf("write failed: %v", payload)
	})

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	rest.NewLogHandler(s).Register(router)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Printf("Server listening on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
}

// loadEnv walks upward looking for a .env file, mirroring how the server
// is started from either the repo root or cmd/server
func loadEnv() {
	paths := []string{".env", "../.env", "../../.env"}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			if err := godotenv.Load(p); err == nil {
				log.Printf("Loaded .env from %s", p)
				return
			}
		}
	}
}

func envInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Ignoring non-numeric %s=%q", key, v)
		return 0
	}
	return n
}
