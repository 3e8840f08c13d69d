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

	"github.com/api-sage/fx-bank-teller/src/internal/adapter/accountservice"
	"github.com/api-sage/fx-bank-teller/src/internal/adapter/http/controller"
	"github.com/api-sage/fx-bank-teller/src/internal/adapter/http/middleware"
	"github.com/api-sage/fx-bank-teller/src/internal/adapter/http/router"
	"github.com/api-sage/fx-bank-teller/src/internal/adapter/repository/memory"
	"github.com/api-sage/fx-bank-teller/src/internal/config"
	"github.com/api-sage/fx-bank-teller/src/internal/domain"
	"github.com/api-sage/fx-bank-teller/src/internal/logger"
	"github.com/api-sage/fx-bank-teller/src/internal/session"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := logger.Init(cfg.LogLevel); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	service, err := newAccountService(ctx, cfg)
	if err != nil {
		logger.Error("teller account service setup failed", err, nil)
		os.Exit(1)
	}

	machine := session.NewMachine(service, session.WithRequestTimeout(cfg.RequestTimeout))
	mux := router.New(
		controller.NewSessionController(machine),
		middleware.BasicAuth(cfg.ChannelID, cfg.ChannelKey),
	)

	srv := &http.Server{
		Addr:              cfg.TellerAddr,
		Handler:           middleware.RequestID(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("teller listening", logger.Fields{
			"addr":           cfg.TellerAddr,
			"accountService": cfg.AccountServiceMode,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("teller stopped with error", err, nil)
		os.Exit(1)
	}
	logger.Info("teller stopped", nil)
}

func newAccountService(ctx context.Context, cfg config.Config) (session.AccountService, error) {
	if cfg.AccountServiceMode == config.AccountServiceModeRemote {
		client := &http.Client{Timeout: cfg.RequestTimeout + time.Second}
		return accountservice.NewHTTPClient(cfg.AccountServiceURL, client, cfg.Breaker), nil
	}

	directory := accountservice.NewDirectory(memory.NewAccountHolderRepository(), 0)
	if _, err := directory.Enroll(ctx, domain.AccountHolder{
		FirstName:  cfg.Seed.FirstName,
		LastName:   cfg.Seed.LastName,
		Balance:    cfg.Seed.Balance,
		DailyLimit: cfg.Seed.DailyLimit,
	}, cfg.Seed.Pin); err != nil {
		return nil, err
	}
	return directory, nil
}
