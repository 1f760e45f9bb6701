package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/romchhh/13vplus-site-sub001/internal/config"
	"github.com/romchhh/13vplus-site-sub001/internal/gateway/wayforpay"
	"github.com/romchhh/13vplus-site-sub001/internal/model"
	"github.com/romchhh/13vplus-site-sub001/internal/notifier"
	"github.com/romchhh/13vplus-site-sub001/internal/repository/pg"
	"github.com/romchhh/13vplus-site-sub001/internal/service"
	"github.com/romchhh/13vplus-site-sub001/pgk/logger"

	httpController "github.com/romchhh/13vplus-site-sub001/internal/controller/http"
)

func Run(cfg config.Config, lg *zap.SugaredLogger) error {
	storage, err := pg.New(cfg.DatabaseURI, lg)
	if err != nil {
		return err
	}

	notify := notifier.New(cfg.NotifyAddress)

	s := service.New(storage, notify, lg, service.GatewayConfig{
		WayforpayMerchant: cfg.WayforpayMerchant,
		WayforpayDomain:   cfg.WayforpayDomain,
		WayforpaySecret:   cfg.WayforpaySecret,
		PlisioSecret:      cfg.PlisioSecret,
		Currency:          cfg.Currency,
	})

	router := chi.NewRouter()
	router.Use(logger.LoggingMiddleware(lg))
	router.Use(middleware.Recoverer)

	handlers := httpController.New(s, lg)
	router = httpController.InitRoutes(router, handlers, cfg.ServiceTokenSecret)

	statusClient := wayforpay.NewClient(cfg.WayforpayMerchant, cfg.WayforpaySecret)
	storage.RunPendingOrdersUpdater(cfg.PollInterval, cfg.StaleAfter, statusClient,
		func(ctx context.Context, order *model.Order, bonus int) {
			if err := notify.OrderPaid(ctx, order, bonus); err != nil {
				lg.Errorf("order paid notification %s error: %v", order.InvoiceID, err)
			}
		})

	srv := &http.Server{
		Addr:    cfg.RunAddress,
		Handler: router,
	}

	signalCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lg.Infof("starting server on %s", cfg.RunAddress)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatalf("server ListenAndServe error: %v", err)
		}
	}()

	<-signalCtx.Done()
	lg.Info("shutting down server...")

	storage.StopPendingOrdersUpdater()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown (server) error: %v", err)
	}

	if err := storage.Shutdown(); err != nil {
		return fmt.Errorf("shutdown (repo) error: %v", err)
	}

	lg.Info("server shutdown success")
	return nil
}
