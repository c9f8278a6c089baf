package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"avicena/internal/config"
	httpapi "avicena/internal/http"
	"avicena/internal/repository"
	"avicena/internal/service"

	_ "avicena/docs"
)

func main() {
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	db, err := repository.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer db.Close()

	drugs := repository.NewGormDrugs(db)
	suppliers := repository.NewGormSuppliers(db)
	orders := repository.NewGormOrders(db)
	users := repository.NewGormUsers(db)
	tx := repository.NewGormTx(db)

	catalogSvc := service.NewCatalogService(drugs, suppliers)
	ordersSvc := service.NewOrderService(drugs, suppliers, orders, tx)
	reportsSvc := service.NewReportService(drugs)
	authSvc := service.NewAuthService(users)

	srv := httpapi.NewServer(catalogSvc, ordersSvc, reportsSvc, authSvc, httpapi.Config{
		JWTSecret:    cfg.JWTSecret,
		AllowOrigins: cfg.AllowOrigins,
	})

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Engine(),
	}

	go func() {
		log.Printf("HTTP server listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
