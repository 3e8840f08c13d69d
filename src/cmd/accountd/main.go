package main

import (
	"context"
	"errors"
	"io/fs"
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
	"github.com/api-sage/fx-bank-teller/src/internal/adapter/repository/implementations"
	"github.com/api-sage/fx-bank-teller/src/internal/adapter/repository/memory"
	"github.com/api-sage/fx-bank-teller/src/internal/config"
	"github.com/api-sage/fx-bank-teller/src/internal/domain"
	"github.com/api-sage/fx-bank-teller/src/internal/logger"
	"github.com/api-sage/fx-bank-teller/src/migrations"
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

	repo, closeRepo, err := openRepository(ctx, cfg)
	if err != nil {
		logger.Error("accountd repository setup failed", err, logger.Fields{"store": cfg.Store})
		os.Exit(1)
	}
	defer closeRepo()

	directory := accountservice.NewDirectory(repo, 0)
	if err := seed(ctx, directory, repo, cfg.Seed); err != nil {
		logger.Error("accountd seed failed", err, nil)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              cfg.AccountdAddr,
		Handler:           middleware.RequestID(router.NewAccountService(controller.NewAccountServiceController(directory))),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("accountd listening", logger.Fields{"addr": cfg.AccountdAddr, "store": cfg.Store})
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
		logger.Error("accountd stopped with error", err, nil)
		os.Exit(1)
	}
	logger.Info("accountd stopped", nil)
}

func openRepository(ctx context.Context, cfg config.Config) (domain.AccountHolderRepository, func(), error) {
	if cfg.Store == config.StoreMemory {
		return memory.NewAccountHolderRepository(), func() {}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	db, err := implementations.Open(connectCtx, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}

	var files fs.FS = migrations.Files
	if cfg.MigrationsDir != "" {
		files = os.DirFS(cfg.MigrationsDir)
	}

	applied, err := implementations.RunMigrations(connectCtx, db, files)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	logger.Info("accountd migrations completed", logger.Fields{"applied": applied})

	return implementations.NewAccountHolderRepository(db), func() { _ = db.Close() }, nil
}

// seed enrolls the configured demo holder unless the directory already has holders.
func seed(ctx context.Context, directory *accountservice.Directory, repo domain.AccountHolderRepository, holder config.SeedHolder) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	_, err = directory.Enroll(ctx, domain.AccountHolder{
		FirstName:  holder.FirstName,
		LastName:   holder.LastName,
		Balance:    holder.Balance,
		DailyLimit: holder.DailyLimit,
	}, holder.Pin)
	return err
}
