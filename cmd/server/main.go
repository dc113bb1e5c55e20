package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"pceshop_back_end/internal/cache"
	"pceshop_back_end/internal/config"
	"pceshop_back_end/internal/database"
	"pceshop_back_end/internal/handlers/admin"
	"pceshop_back_end/internal/handlers/product"
	"pceshop_back_end/internal/handlers/user"
	"pceshop_back_end/internal/repository"
	"pceshop_back_end/internal/routes"
	"pceshop_back_end/internal/services"
	"pceshop_back_end/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Configuration: %v", err)
	}

	vault, err := services.NewCardVault(cfg.EncryptionKey)
	if err != nil {
		log.Fatalf("❌ Card vault: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	rdb, err := database.ConnectRedis(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	store := cache.New(rdb)
	defer store.Close()

	minioClient, err := database.ConnectMinIO(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	images := services.NewImageStore(minioClient, cfg.MinIO.Bucket)

	session, err := database.ConnectScylla(cfg)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	if session != nil {
		defer session.Close()
		if err := database.EnsureLedgerSchema(session); err != nil {
			log.Fatalf("❌ %v", err)
		}
	}
	ledger := services.NewLedger(session)
	mailer := services.NewMailer(cfg.SMTP)

	users := repository.NewUserRepository(db)
	orders := repository.NewOrderRepository(db)
	tokens := utils.NewTokenIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	r := gin.Default()
	r.MaxMultipartMemory = services.MaxImageSize
	routes.RegisterRoutes(r, routes.Dependencies{
		CORSOrigins: cfg.CORSOrigins,
		Tokens:      tokens,
		Users:       users,
		Cache:       store,
		Ledger:      ledger,
		Products:    product.NewHandler(repository.NewCatalogRepository(db), store, images, ledger),
		Accounts: user.NewHandler(
			users,
			repository.NewCartRepository(db),
			orders,
			services.NewCheckoutService(orders, ledger, mailer),
			services.NewCardService(repository.NewCardRepository(db), vault),
			tokens,
			images,
		),
		Admin: admin.NewHandler(orders, ledger, mailer),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Println("🚀 PC e-shop API listening on port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("⚠️ Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Shutdown: %v", err)
	}
}
