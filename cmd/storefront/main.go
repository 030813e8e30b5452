package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Joao-ahah/centro-artesanato-api/internal/admin"
	"github.com/Joao-ahah/centro-artesanato-api/internal/auth"
	"github.com/Joao-ahah/centro-artesanato-api/internal/blog"
	"github.com/Joao-ahah/centro-artesanato-api/internal/cart"
	"github.com/Joao-ahah/centro-artesanato-api/internal/catalog"
	"github.com/Joao-ahah/centro-artesanato-api/internal/config"
	"github.com/Joao-ahah/centro-artesanato-api/internal/db"
	"github.com/Joao-ahah/centro-artesanato-api/internal/events"
	"github.com/Joao-ahah/centro-artesanato-api/internal/httpapi"
	"github.com/Joao-ahah/centro-artesanato-api/internal/order"
	"github.com/Joao-ahah/centro-artesanato-api/internal/upload"
)

func main() {
	cfg := config.Load()
	logger := log.New(os.Stdout, "", log.LstdFlags|log.Lmicroseconds)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- DB ---
	pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
			logger.Fatalf("db migrate: %v", err)
		}
	}

	productRepo := catalog.NewPostgresRepository(pool)
	userRepo := auth.NewPostgresRepository(pool)
	orderRepo := order.NewPostgresRepository(pool)
	blogRepo := blog.NewPostgresRepository(pool)
	sessions := cart.NewSessions(cart.NewPostgresStore(pool), cfg.Pricing())

	// --- AMQP ---
	var publisher events.OrderEventsPublisher = events.NopPublisher{}
	if cfg.RabbitURL != "" {
		conn, err := events.Dial(cfg.RabbitURL)
		if err != nil {
			logger.Fatalf("rabbitmq connect: %v", err)
		}
		defer conn.Close()

		publisher, err = events.NewRabbitPublisher(conn, events.NewSequenceRepository(pool))
		if err != nil {
			logger.Fatalf("rabbitmq publisher: %v", err)
		}
		defer publisher.Close()
	} else {
		logger.Printf("RABBITMQ_URL not set, events disabled")
	}

	// --- Uploads ---
	uploadStore, err := upload.NewDiskStore(cfg.UploadDir, cfg.UploadPublicPath)
	if err != nil {
		logger.Fatalf("upload dir: %v", err)
	}

	// --- HTTP ---
	tokens := auth.NewTokens(cfg.JWTSecret)
	r := httpapi.NewRouter(httpapi.Deps{
		Cart:    httpapi.NewCartHandler(sessions, productRepo, orderRepo, publisher),
		Catalog: httpapi.NewCatalogHandler(productRepo),
		Auth:    httpapi.NewAuthHandler(auth.NewService(userRepo, tokens)),
		Admin:   httpapi.NewAdminHandler(admin.NewDashboard(productRepo, orderRepo, userRepo)),
		Blog:    httpapi.NewBlogHandler(blogRepo),
		Order:   httpapi.NewOrderHandler(orderRepo),
		Upload:  httpapi.NewUploadHandler(uploadStore),

		Tokens:           tokens,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
		UploadDir:        cfg.UploadDir,
		UploadPublicPath: cfg.UploadPublicPath,
	})

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Printf("http listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// --- graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Printf("shutdown signal: %s", sig)
	case err := <-errCh:
		logger.Printf("fatal error: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = httpServer.Shutdown(shutdownCtx)
	cancel()

	logger.Printf("shutdown complete")
}
